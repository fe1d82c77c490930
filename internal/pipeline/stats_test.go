package pipeline

import (
	"testing"
	"time"
)

func TestLatencyStatsSnapshotPercentiles(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.Observe(time.Duration(ms) * time.Millisecond)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %f", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %f", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestLatencyStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewLatencyStats(10 * time.Millisecond)
	stats.Observe(100 * time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Observe(200 * time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%f max=%f", snap.MinMs, snap.MaxMs)
	}
}

func TestLatencyStatsClampsNegativeDuration(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	stats.Observe(-10 * time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%f max=%f", snap.MinMs, snap.MaxMs)
	}
}

func TestLatencyStatsEmpty(t *testing.T) {
	if snap := NewLatencyStats(0).Snapshot(); snap.Count != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
