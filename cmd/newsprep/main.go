package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phalanx-cyber/datakit/internal/config"
	"github.com/phalanx-cyber/datakit/internal/pipeline"
	"github.com/phalanx-cyber/datakit/pkg/logging"
)

func main() {
	input := flag.String("input", "data/news_articles.csv", "raw article dataset")
	outDir := flag.String("out", "data/processed", "output directory")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	if err := logging.SetupLogger(cfg.Logging); err != nil {
		fmt.Printf("❌ Logger setup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📰 NEWS ARTICLE PREPROCESSOR")
	fmt.Println("============================")
	fmt.Printf("Input:  %s\n", *input)
	fmt.Printf("Output: %s\n\n", *outDir)

	prep := pipeline.NewNewsPreprocessor(cfg.NewsConfig())
	stats, err := prep.Run(*input, *outDir)
	if err != nil {
		fmt.Printf("❌ Preprocessing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Preprocessing complete")
	fmt.Printf("   initial rows:     %d\n", stats.Initial)
	fmt.Printf("   after authors:    %d\n", stats.AfterAuthors)
	fmt.Printf("   after labels:     %d\n", stats.AfterLabels)
	fmt.Printf("   after quality:    %d\n", stats.AfterQuality)
	fmt.Printf("   batches written:  %d\n", stats.Batches)
}
