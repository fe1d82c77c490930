package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
}

// StatsSnapshot is a point-in-time aggregate of extraction latencies.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats keeps extraction latencies from a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 64),
		window:  window,
	}
}

// Observe records one extraction duration. Negative durations count as 0.
func (s *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, duration: d})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	ms := make([]float64, 0, len(s.samples))
	var sum float64
	for _, sm := range s.samples {
		v := float64(sm.duration) / float64(time.Millisecond)
		ms = append(ms, v)
		sum += v
	}
	sort.Float64s(ms)

	return StatsSnapshot{
		Count: len(ms),
		MinMs: ms[0],
		MaxMs: ms[len(ms)-1],
		AvgMs: sum / float64(len(ms)),
		P50Ms: percentile(ms, 50),
		P95Ms: percentile(ms, 95),
		P99Ms: percentile(ms, 99),
	}
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}
