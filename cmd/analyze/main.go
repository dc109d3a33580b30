package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Aayushman-Codes/Legal-Analysis-App/config"
	"github.com/Aayushman-Codes/Legal-Analysis-App/inference"
	"github.com/Aayushman-Codes/Legal-Analysis-App/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// One-shot analyzer: reads a contract document from disk, runs the full
// analysis pipeline and prints the result as JSON. Useful for batch runs and
// for inspecting rule-based output with the remote model disabled.
func main() {
	var (
		filePath = flag.String("file", "", "path to the contract document (pdf, docx or txt)")
		noRemote = flag.Bool("no-remote", false, "skip remote model calls and use rule-based classification only")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	content, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}

	opts := []service.AnalyzerServiceOption{
		service.AnalyzerWithLogger(logger),
		service.AnalyzerWithClassificationModel(cfg.ClassificationModel),
		service.AnalyzerWithQAModel(cfg.QAModel),
	}
	if !*noRemote {
		opts = append(opts, service.AnalyzerWithInferenceClient(inference.NewClient(cfg.APIBaseURL, cfg.APIToken)))
	}
	analyzer := service.NewAnalyzerService(opts...)

	result, clauses, _, err := analyzer.AnalyzeDocument(context.Background(), content, mimeTypeFor(*filePath))
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	logger.Info("Analysis completed",
		zap.Int("clauses", len(clauses)),
		zap.String("risk_level", string(result.RiskAssessment.RiskLevel)),
		zap.String("compliance", string(result.ComplianceAnalysis.OverallCompliance)))

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func mimeTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}
