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
	input := flag.String("input", "data/phishing_emails.csv", "email dataset")
	reportPath := flag.String("report", "data/reports/email_quality_report.txt", "report output path")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := config.Load(*configPath)
	if err := logging.SetupLogger(cfg.Logging); err != nil {
		fmt.Printf("❌ Logger setup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📧 EMAIL DATA QUALITY ASSESSMENT")
	fmt.Println("================================")
	fmt.Printf("Input:  %s\n", *input)
	fmt.Printf("Report: %s\n\n", *reportPath)

	auditor := pipeline.NewEmailAuditor(cfg.EmailConfig())
	rep, err := auditor.Run(*input)
	if err != nil {
		fmt.Printf("❌ Assessment failed: %v\n", err)
		os.Exit(1)
	}

	if err := rep.WriteFile(*reportPath); err != nil {
		fmt.Printf("❌ Writing report failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Assessment complete")
	fmt.Println(rep.Render())
}
