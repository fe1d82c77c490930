package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/questgest/internal/config"
	"github.com/dgallion1/questgest/internal/extract"
	"github.com/dgallion1/questgest/internal/output"
	"github.com/dgallion1/questgest/internal/parser"
	"github.com/google/uuid"
)

// Runner loads questionnaires, extracts their questions and writes the
// question lists.
type Runner struct {
	cfg   config.Config
	log   *slog.Logger
	Stats *LatencyStats
}

func NewRunner(cfg config.Config, log *slog.Logger) *Runner {
	return &Runner{
		cfg:   cfg,
		log:   log,
		Stats: NewLatencyStats(cfg.StatsWindow),
	}
}

// Process parses r according to filename's extension and extracts its
// questions. The returned Run is non-nil even on error.
func (rn *Runner) Process(ctx context.Context, filename string, r io.Reader) (*Run, error) {
	now := time.Now()
	run := &Run{
		ID:        uuid.NewString(),
		Source:    filename,
		Status:    StatusLoading,
		Phase:     "parsing",
		StartedAt: now,
		UpdatedAt: now,
	}
	log := rn.log.With("run_id", run.ID, "source", filename)

	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: rn.cfg.PDFFallbackPdftotext})
	if err != nil {
		log.Error("unsupported format", "error", err)
		return run, run.Fail("parsing", err)
	}
	doc, err := p.Parse(r, filepath.Base(filename))
	if err != nil {
		log.Error("parse failed", "error", err)
		return run, run.Fail("parsing", fmt.Errorf("parse %s: %w", filename, err))
	}
	if err := ctx.Err(); err != nil {
		return run, run.Fail("parsing", err)
	}

	text := doc.Text()
	run.ContentHash = ContentHashHex([]byte(text))

	run.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	run.Result = extract.Extract(text, rn.cfg.SectionCount)
	rn.Stats.Observe(time.Since(start))

	log.Info("extraction complete",
		"content_hash", run.ContentHash,
		"sections", len(run.Result.Sections),
		"self_assessment", len(run.Result.SelfAssessment),
		"external_assessment", len(run.Result.ExternalAssessment),
	)
	run.SetStatus(StatusCompleted, "extracted")
	return run, nil
}

// Run extracts the configured input file and writes both question lists,
// plus the run report when one is configured.
func (rn *Runner) Run(ctx context.Context) (*Run, error) {
	f, err := os.Open(rn.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	run, err := rn.Process(ctx, rn.cfg.InputPath, f)
	if err != nil {
		return run, err
	}
	if err := ctx.Err(); err != nil {
		return run, run.Fail("extracting", err)
	}

	log := rn.log.With("run_id", run.ID)
	run.SetStatus(StatusWriting, "writing")

	if err := output.WriteList(rn.cfg.SelfOutputPath, run.Result.SelfAssessment); err != nil {
		log.Error("write failed", "path", rn.cfg.SelfOutputPath, "error", err)
		return run, run.Fail("writing", fmt.Errorf("write self-assessment list: %w", err))
	}
	if err := output.WriteList(rn.cfg.ExternalOutputPath, run.Result.ExternalAssessment); err != nil {
		log.Error("write failed", "path", rn.cfg.ExternalOutputPath, "error", err)
		return run, run.Fail("writing", fmt.Errorf("write external-assessment list: %w", err))
	}
	run.SetStatus(StatusCompleted, "done")

	if rn.cfg.ReportPath != "" {
		if err := output.WriteJSON(rn.cfg.ReportPath, run.Report()); err != nil {
			log.Error("report write failed", "path", rn.cfg.ReportPath, "error", err)
			return run, run.Fail("reporting", fmt.Errorf("write report: %w", err))
		}
	}

	log.Info("question lists written",
		"self_path", rn.cfg.SelfOutputPath,
		"external_path", rn.cfg.ExternalOutputPath,
	)
	return run, nil
}
