package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/questgest/internal/extract"
)

// RunStatus represents the state of an extraction run.
type RunStatus string

const (
	StatusLoading    RunStatus = "loading"
	StatusExtracting RunStatus = "extracting"
	StatusWriting    RunStatus = "writing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Run tracks a single extraction from one source document.
type Run struct {
	mu sync.Mutex

	ID          string
	Source      string
	ContentHash string
	Status      RunStatus
	Phase       string
	Result      extract.Result
	StartedAt   time.Time
	UpdatedAt   time.Time
	Err         error
}

// SetStatus updates run status.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// Fail marks the run failed in phase and returns err for the caller.
func (r *Run) Fail(phase string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = StatusFailed
	r.Phase = phase
	r.Err = err
	r.UpdatedAt = time.Now()
	return err
}

// SectionSummary is the per-section line of a Report.
type SectionSummary struct {
	Number    int    `json:"number"`
	Scale     string `json:"scale"`
	Questions int    `json:"questions"`
}

// Report is the JSON-safe summary of a run.
type Report struct {
	RunID              string           `json:"run_id"`
	Source             string           `json:"source"`
	ContentHash        string           `json:"content_hash"`
	Status             RunStatus        `json:"status"`
	Sections           []SectionSummary `json:"sections"`
	SelfAssessment     int              `json:"self_assessment"`
	ExternalAssessment int              `json:"external_assessment"`
}

// Report returns a summary of the run state.
func (r *Run) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	sections := make([]SectionSummary, 0, len(r.Result.Sections))
	for _, s := range r.Result.Sections {
		sections = append(sections, SectionSummary{
			Number:    s.Number,
			Scale:     s.Scale,
			Questions: len(s.Questions),
		})
	}
	return Report{
		RunID:              r.ID,
		Source:             r.Source,
		ContentHash:        r.ContentHash,
		Status:             r.Status,
		Sections:           sections,
		SelfAssessment:     len(r.Result.SelfAssessment),
		ExternalAssessment: len(r.Result.ExternalAssessment),
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
