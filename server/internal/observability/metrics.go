package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects per-tier counters for response generation.
type Metrics struct {
	mu    sync.Mutex
	tiers map[string]*TierMetrics
}

// TierMetrics represents metrics for a specific generation tier.
type TierMetrics struct {
	attemptCount  atomic.Int64
	successCount  atomic.Int64
	failureCount  atomic.Int64
	totalDuration atomic.Int64 // milliseconds
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{tiers: make(map[string]*TierMetrics)}
}

// RecordAttempt records that a tier was tried.
func (m *Metrics) RecordAttempt(tier string) {
	m.getTier(tier).attemptCount.Add(1)
}

// RecordSuccess records a tier that produced the turn's result.
func (m *Metrics) RecordSuccess(tier string, duration time.Duration) {
	t := m.getTier(tier)
	t.successCount.Add(1)
	t.totalDuration.Add(duration.Milliseconds())
}

// RecordFailure records a tier that failed and fell through.
func (m *Metrics) RecordFailure(tier string, duration time.Duration) {
	t := m.getTier(tier)
	t.failureCount.Add(1)
	t.totalDuration.Add(duration.Milliseconds())
}

func (m *Metrics) getTier(tier string) *TierMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tiers[tier]; !ok {
		m.tiers[tier] = &TierMetrics{}
	}
	return m.tiers[tier]
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.tiers = make(map[string]*TierMetrics)
	m.mu.Unlock()
}

// TierSnapshot represents metrics for a specific tier.
type TierSnapshot struct {
	Tier            string `json:"tier"`
	AttemptCount    int64  `json:"attemptCount"`
	SuccessCount    int64  `json:"successCount"`
	FailureCount    int64  `json:"failureCount"`
	AverageDuration int64  `json:"averageDurationMs"`
}

// Snapshot returns a point-in-time copy of all tier metrics, sorted by tier name.
func (m *Metrics) Snapshot() []TierSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make([]TierSnapshot, 0, len(m.tiers))
	for name, t := range m.tiers {
		s := TierSnapshot{
			Tier:         name,
			AttemptCount: t.attemptCount.Load(),
			SuccessCount: t.successCount.Load(),
			FailureCount: t.failureCount.Load(),
		}
		if finished := s.SuccessCount + s.FailureCount; finished > 0 {
			s.AverageDuration = t.totalDuration.Load() / finished
		}
		snapshots = append(snapshots, s)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Tier < snapshots[j].Tier })
	return snapshots
}
