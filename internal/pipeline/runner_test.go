package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/questgest/internal/config"
	"github.com/dgallion1/questgest/internal/parser"
)

const questionnaire = `Questionário de Dons

Seção 1
Responda pensando nos últimos meses.
Classificação: Muitíssimo / Muito / Eventualmente / Raramente / De forma nenhuma
1. Sinto-me realizado(a) ao ajudar
   pessoas em dificuldade.
2. Sinto-me realizado(a) ao ensinar.

Seção 2
Classificação: Enorme vontade / Nenhuma vontade
1. Organizar eventos.

As perguntas abaixo devem ser respondidas por alguém que conhece você.
Em relação a esta pessoa:
1. Ela ajuda os outros?
2. Ela ensina bem?
`

func newTestRunner(t *testing.T, input string, inputName string) (*Runner, config.Config) {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, inputName)
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		InputPath:          inputPath,
		SectionCount:       6,
		SelfOutputPath:     filepath.Join(dir, "shared", "self_assessment_questions.json"),
		ExternalOutputPath: filepath.Join(dir, "shared", "external_assessment_questions.json"),
		StatsWindow:        time.Hour,
	}
	return NewRunner(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), cfg
}

func readList(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return items
}

func TestRunner_Run(t *testing.T) {
	rn, cfg := newTestRunner(t, questionnaire, "pasted_content.txt")

	run, err := rn.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, run.Status)
	}

	wantSelf := []string{
		"Sinto-me realizado(a) ao ajudar pessoas em dificuldade.",
		"Sinto-me realizado(a) ao ensinar.",
		"Organizar eventos.",
	}
	if got := readList(t, cfg.SelfOutputPath); !reflect.DeepEqual(got, wantSelf) {
		t.Errorf("self-assessment: expected %q, got %q", wantSelf, got)
	}
	wantExternal := []string{"Ela ajuda os outros?", "Ela ensina bem?"}
	if got := readList(t, cfg.ExternalOutputPath); !reflect.DeepEqual(got, wantExternal) {
		t.Errorf("external-assessment: expected %q, got %q", wantExternal, got)
	}

	if rn.Stats.Snapshot().Count != 1 {
		t.Errorf("expected one latency sample, got %d", rn.Stats.Snapshot().Count)
	}
}

func TestRunner_RunIsIdempotent(t *testing.T) {
	rn, cfg := newTestRunner(t, questionnaire, "pasted_content.txt")

	if _, err := rn.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	self1, _ := os.ReadFile(cfg.SelfOutputPath)
	ext1, _ := os.ReadFile(cfg.ExternalOutputPath)

	if _, err := rn.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	self2, _ := os.ReadFile(cfg.SelfOutputPath)
	ext2, _ := os.ReadFile(cfg.ExternalOutputPath)

	if !bytes.Equal(self1, self2) || !bytes.Equal(ext1, ext2) {
		t.Error("expected byte-identical output across runs")
	}
}

func TestRunner_RunWithoutMarkersWritesEmptyLists(t *testing.T) {
	rn, cfg := newTestRunner(t, "Texto qualquer.\n1. Não é seção\n", "vazio.txt")

	if _, err := rn.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, path := range []string{cfg.SelfOutputPath, cfg.ExternalOutputPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != "[]\n" {
			t.Errorf("%s: expected empty list, got %q", path, data)
		}
	}
}

func TestRunner_RunMissingInput(t *testing.T) {
	rn, cfg := newTestRunner(t, "", "x.txt")
	rn.cfg.InputPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := rn.Run(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.SelfOutputPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("expected no output written when input is missing")
	}
}

func TestRunner_RunUnsupportedInput(t *testing.T) {
	rn, _ := newTestRunner(t, "a,b\n", "questions.csv")

	run, err := rn.Run(context.Background())
	if !errors.Is(err, parser.ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
	if run == nil || run.Status != StatusFailed || run.Phase != "parsing" {
		t.Errorf("expected failed run in parsing phase, got %+v", run)
	}
}

func TestRunner_RunCancelled(t *testing.T) {
	rn, cfg := newTestRunner(t, questionnaire, "pasted_content.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rn.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(cfg.SelfOutputPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("expected no output written after cancellation")
	}
}

func TestRunner_RunYAMLAndReport(t *testing.T) {
	rn, cfg := newTestRunner(t, questionnaire, "pasted_content.txt")
	dir := filepath.Dir(cfg.SelfOutputPath)
	rn.cfg.SelfOutputPath = filepath.Join(dir, "self.yaml")
	rn.cfg.ReportPath = filepath.Join(dir, "report.json")

	run, err := rn.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	self, err := os.ReadFile(rn.cfg.SelfOutputPath)
	if err != nil {
		t.Fatalf("read yaml: %v", err)
	}
	if !strings.HasPrefix(string(self), "- Sinto-me realizado(a) ao ajudar pessoas em dificuldade.\n") {
		t.Errorf("unexpected yaml output %q", self)
	}

	data, err := os.ReadFile(rn.cfg.ReportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RunID != run.ID {
		t.Errorf("expected run id %q, got %q", run.ID, report.RunID)
	}
	if report.Status != StatusCompleted {
		t.Errorf("expected completed status in report, got %q", report.Status)
	}
	if report.SelfAssessment != 3 || report.ExternalAssessment != 2 {
		t.Errorf("unexpected counts: %+v", report)
	}
	wantSections := []SectionSummary{
		{Number: 1, Scale: "Muitíssimo / Muito / Eventualmente / Raramente / De forma nenhuma", Questions: 2},
		{Number: 2, Scale: "Enorme vontade / Nenhuma vontade", Questions: 1},
	}
	if !reflect.DeepEqual(report.Sections, wantSections) {
		t.Errorf("expected sections %+v, got %+v", wantSections, report.Sections)
	}
	if report.ContentHash != ContentHashHex([]byte(questionnaire)) {
		t.Errorf("unexpected content hash %q", report.ContentHash)
	}
}

func TestRunner_ProcessMarkdown(t *testing.T) {
	rn, _ := newTestRunner(t, "", "unused.txt")
	input := "## Seção 1\n\nClassificação: Nunca / Sempre\n\n1. Ajudar\n2. Ensinar\n\n" +
		"As perguntas abaixo são externas. Em relação a ele:\n\n1. Ajuda?\n"

	run, err := rn.Process(context.Background(), "dons.md", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Ajudar", "Ensinar"}; !reflect.DeepEqual(run.Result.SelfAssessment, want) {
		t.Errorf("expected %q, got %q", want, run.Result.SelfAssessment)
	}
	if want := []string{"Ajuda?"}; !reflect.DeepEqual(run.Result.ExternalAssessment, want) {
		t.Errorf("expected %q, got %q", want, run.Result.ExternalAssessment)
	}
	if run.ID == "" {
		t.Error("expected a run id")
	}
}

func TestContentHashHex(t *testing.T) {
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := ContentHashHex([]byte("hello world")); got != want {
		t.Errorf("expected hash %q, got %q", want, got)
	}
}

func TestRun_FailRecordsError(t *testing.T) {
	run := &Run{ID: "r1", Status: StatusExtracting}
	cause := errors.New("disk full")
	if err := run.Fail("writing", cause); err != cause {
		t.Errorf("expected Fail to return its error, got %v", err)
	}
	if run.Status != StatusFailed || run.Phase != "writing" || run.Err != cause {
		t.Errorf("unexpected run state %+v", run)
	}
	if run.Report().Status != StatusFailed {
		t.Errorf("expected failed status in report")
	}
}
