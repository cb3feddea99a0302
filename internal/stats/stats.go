// Package stats keeps a rolling window of parse latencies and coverage scores.
package stats

import (
	"slices"
	"sync"
	"time"
)

// maxSamples bounds memory when the window sees a burst of traffic.
const maxSamples = 10000

type sample struct {
	at         time.Time
	durationMs int64
	confidence int
}

// Snapshot is a point-in-time aggregate of parse samples.
type Snapshot struct {
	Count         int     `json:"count"`
	WindowSeconds float64 `json:"window_seconds"`
	MinMs         int64   `json:"min_ms"`
	MaxMs         int64   `json:"max_ms"`
	AvgMs         float64 `json:"avg_ms"`
	P50Ms         float64 `json:"p50_ms"`
	P95Ms         float64 `json:"p95_ms"`
	P99Ms         float64 `json:"p99_ms"`
	AvgConfidence float64 `json:"avg_confidence"`
	LowConfidence int     `json:"low_confidence"`
}

// LowConfidenceThreshold marks briefs where fewer than half the checklist was found.
const LowConfidenceThreshold = 50

// ParseStats tracks recent parse calls within a rolling window.
type ParseStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewParseStats(maxAge time.Duration) *ParseStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ParseStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one parse sample.
func (s *ParseStats) Record(elapsed time.Duration, confidence int) {
	ms := elapsed.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	if len(s.samples) >= maxSamples {
		s.samples = append(s.samples[:0], s.samples[1:]...)
	}
	s.samples = append(s.samples, sample{at: now, durationMs: ms, confidence: confidence})
}

func (s *ParseStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	snap := Snapshot{WindowSeconds: s.maxAge.Seconds()}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	var confSum int
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		confSum += sm.confidence
		if sm.confidence < LowConfidenceThreshold {
			snap.LowConfidence++
		}
	}
	slices.Sort(values)

	n := len(values)
	snap.Count = n
	snap.MinMs = values[0]
	snap.MaxMs = values[n-1]
	snap.AvgMs = float64(sum) / float64(n)
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	snap.AvgConfidence = float64(confSum) / float64(n)
	return snap
}

func (s *ParseStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	i, _ := slices.BinarySearchFunc(s.samples, cutoff, func(sm sample, t time.Time) int {
		return sm.at.Compare(t)
	})
	if i > 0 {
		s.samples = append(s.samples[:0], s.samples[i:]...)
	}
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}
