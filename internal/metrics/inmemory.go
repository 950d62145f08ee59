package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        uint64
	SessionCacheHits       uint64
	SessionCacheMisses     uint64
	MealsCreated           uint64
	MealsUpdated           uint64
	MealsDeleted           uint64
	SummaryDurationCount   uint64
	SummaryDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	usersRegistered        atomic.Uint64
	sessionCacheHits       atomic.Uint64
	sessionCacheMisses     atomic.Uint64
	mealsCreated           atomic.Uint64
	mealsUpdated           atomic.Uint64
	mealsDeleted           atomic.Uint64
	summaryDurationCount   atomic.Uint64
	summaryDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:        m.usersRegistered.Load(),
		SessionCacheHits:       m.sessionCacheHits.Load(),
		SessionCacheMisses:     m.sessionCacheMisses.Load(),
		MealsCreated:           m.mealsCreated.Load(),
		MealsUpdated:           m.mealsUpdated.Load(),
		MealsDeleted:           m.mealsDeleted.Load(),
		SummaryDurationCount:   m.summaryDurationCount.Load(),
		SummaryDurationTotalNs: m.summaryDurationTotalNs.Load(),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() { m.usersRegistered.Add(1) }

// IncSessionCacheHit increments the session cache hit counter.
func (m *InMemoryRecorder) IncSessionCacheHit() { m.sessionCacheHits.Add(1) }

// IncSessionCacheMiss increments the session cache miss counter.
func (m *InMemoryRecorder) IncSessionCacheMiss() { m.sessionCacheMisses.Add(1) }

// IncMealCreated increments the meal created counter.
func (m *InMemoryRecorder) IncMealCreated() { m.mealsCreated.Add(1) }

// IncMealUpdated increments the meal updated counter.
func (m *InMemoryRecorder) IncMealUpdated() { m.mealsUpdated.Add(1) }

// IncMealDeleted increments the meal deleted counter.
func (m *InMemoryRecorder) IncMealDeleted() { m.mealsDeleted.Add(1) }

// ObserveSummaryDuration records how long a summary computation took.
func (m *InMemoryRecorder) ObserveSummaryDuration(duration time.Duration) {
	m.summaryDurationCount.Add(1)
	m.summaryDurationTotalNs.Add(duration.Nanoseconds())
}
