package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/internal/config"
	"github.com/phalanx-cyber/datakit/internal/langdetect"
	"github.com/phalanx-cyber/datakit/internal/pipeline"
	"github.com/phalanx-cyber/datakit/internal/quality"
	"github.com/phalanx-cyber/datakit/pkg/logging"
)

func main() {
	inputDir := flag.String("input", "data/processed/batches", "directory of batch files")
	outDir := flag.String("out", "data/refined", "output directory")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	if err := logging.SetupLogger(cfg.Logging); err != nil {
		fmt.Printf("❌ Logger setup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🔧 ARTICLE BATCH REFINER")
	fmt.Println("========================")
	fmt.Printf("Input:  %s\n", *inputDir)
	fmt.Printf("Output: %s\n\n", *outDir)

	refineCfg := cfg.RefineConfig()
	corpus, err := langdetect.LoadCorpus(cfg.NewsConfig().CorporaDir)
	if err != nil {
		log.Warn().Err(err).Msg("Word corpus unavailable, misspelling check disabled")
		corpus = nil
	}

	refiner := pipeline.NewBatchRefiner(refineCfg, quality.NewScorer(refineCfg.Thresholds, corpus))
	stats, err := refiner.Run(*inputDir, *outDir)
	if err != nil {
		fmt.Printf("❌ Refinement failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Refinement complete")
	fmt.Printf("   processed: %d\n", stats.Processed)
	fmt.Printf("   refined:   %d\n", stats.Refined)
	fmt.Printf("   removed:   %d\n", stats.Removed)
	fmt.Printf("   retention: %.1f%%\n", stats.RetentionRate()*100)
}
