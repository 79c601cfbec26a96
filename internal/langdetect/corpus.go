package langdetect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Corpus holds the word sets backing the enhanced detection signals. It is
// loaded once at startup and passed by reference; the sets are never mutated
// after construction.
type Corpus struct {
	Words     map[string]bool
	Stopwords map[string]bool
}

// LoadCorpus reads the English word list and stopword list from a corpora
// directory (english_words.txt, stopwords.txt, one entry per line). A
// missing directory or file is not an error to callers that can fall back to
// basic detection; they should treat a nil corpus as "unavailable".
func LoadCorpus(dir string) (*Corpus, error) {
	words, err := loadWordFile(filepath.Join(dir, "english_words.txt"))
	if err != nil {
		return nil, err
	}
	stopwords, err := loadWordFile(filepath.Join(dir, "stopwords.txt"))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("words", len(words)).
		Int("stopwords", len(stopwords)).
		Str("dir", dir).
		Msg("Language corpus loaded")

	return &Corpus{Words: words, Stopwords: stopwords}, nil
}

// Contains reports whether a token is a known English word.
func (c *Corpus) Contains(token string) bool {
	return c.Words[strings.ToLower(token)]
}

func loadWordFile(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	words := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words[word] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return words, nil
}
