package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Source questionnaire
	InputPath    string
	SectionCount int

	// Outputs. The extension picks the format (.json, .yaml/.yml).
	SelfOutputPath     string
	ExternalOutputPath string
	ReportPath         string // Empty disables the run report.

	// PDF
	PDFFallbackPdftotext bool

	// HTTP service
	Port           string
	APIKey         string
	MaxUploadBytes int64
	StatsWindow    time.Duration
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists. Variables already set win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		InputPath:    envOr("INPUT_PATH", "pasted_content.txt"),
		SectionCount: envInt("SECTION_COUNT", 6),

		SelfOutputPath:     envOr("SELF_OUTPUT_PATH", "shared/self_assessment_questions.json"),
		ExternalOutputPath: envOr("EXTERNAL_OUTPUT_PATH", "shared/external_assessment_questions.json"),
		ReportPath:         os.Getenv("REPORT_PATH"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		Port:           envOr("PORT", "8090"),
		APIKey:         os.Getenv("QUESTGEST_API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		StatsWindow:    envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.SectionCount <= 0 {
		cfg.SectionCount = 6
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the one-shot extraction needs.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("INPUT_PATH is required")
	}
	if c.SelfOutputPath == "" {
		return fmt.Errorf("SELF_OUTPUT_PATH is required")
	}
	if c.ExternalOutputPath == "" {
		return fmt.Errorf("EXTERNAL_OUTPUT_PATH is required")
	}
	if c.SelfOutputPath == c.ExternalOutputPath {
		return fmt.Errorf("SELF_OUTPUT_PATH and EXTERNAL_OUTPUT_PATH must differ")
	}
	if c.SectionCount <= 0 {
		return fmt.Errorf("SECTION_COUNT must be > 0")
	}
	return nil
}

// ValidateServer checks the settings the HTTP service needs.
func (c Config) ValidateServer() error {
	if c.APIKey == "" {
		return fmt.Errorf("QUESTGEST_API_KEY is required")
	}
	if c.SectionCount <= 0 {
		return fmt.Errorf("SECTION_COUNT must be > 0")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
