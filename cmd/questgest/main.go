package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/questgest/internal/config"
	"github.com/dgallion1/questgest/internal/pipeline"
)

func main() {
	// stdout carries only the two count lines.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	runner := pipeline.NewRunner(cfg, log)
	run, err := runner.Run(context.Background())
	if err != nil {
		log.Error("extraction failed", "input", cfg.InputPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Perguntas de autoavaliação extraídas: %d\n", len(run.Result.SelfAssessment))
	fmt.Printf("Perguntas de avaliação externa extraídas: %d\n", len(run.Result.ExternalAssessment))
}
