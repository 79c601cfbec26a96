package quality

import "strings"

// FleschReadingEase computes the standard reading-ease score for a body of
// text. The check only applies to texts with more than ten words; anything
// shorter (or anything that defeats sentence counting) is reported as
// skipped, which downstream treats the same as passing.
func FleschReadingEase(text string) (result SoftCheck) {
	// Degenerate input must never abort the record.
	defer func() {
		if recover() != nil {
			result = SkippedCheck()
		}
	}()

	words := strings.Fields(text)
	if len(words) <= 10 {
		return SkippedCheck()
	}

	sentences := countSentences(text)
	if sentences == 0 {
		return SkippedCheck()
	}

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(cleanWord(word))
	}

	awl := float64(len(words)) / float64(sentences)
	asw := float64(syllables) / float64(len(words))
	return Applied(206.835 - 1.015*awl - 84.6*asw)
}

func countSentences(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inRun {
				count++
			}
			inRun = true
		} else {
			inRun = false
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		count = 1
	}
	return count
}

func countSyllables(word string) int {
	if word == "" {
		return 0
	}

	vowelGroups := 0
	prevWasVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevWasVowel {
			vowelGroups++
		}
		prevWasVowel = isVowel
	}

	// Silent trailing 'e', consonant+'le' endings.
	if strings.HasSuffix(word, "e") {
		vowelGroups--
	}
	if strings.HasSuffix(word, "le") && len(word) > 2 {
		if !strings.ContainsRune("aeiouy", rune(word[len(word)-3])) {
			vowelGroups++
		}
	}

	if vowelGroups <= 0 {
		vowelGroups = 1
	}
	return vowelGroups
}

func cleanWord(word string) string {
	return strings.Trim(strings.ToLower(word), `.,;:!?'"()[]{}-`)
}
