package mind

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueryOrder selects how Query ranks entries.
type QueryOrder int

const (
	// ByRecency — newest first.
	ByRecency QueryOrder = iota
	// BySalience — recency-weighted salience first:
	// score = salience * exp(-age/halfLife).
	BySalience
)

// QueryFilter narrows a memory query. Zero values match everything.
type QueryFilter struct {
	Kind  StimulusKind // "" = any channel
	Since time.Time    // zero = no lower bound
}

// MemoryIterator — lazy, finite, non-restartable sequence of entries,
// most-relevant-first. Safe to abandon at any point.
type MemoryIterator struct {
	entries []MemoryEntry
	pos     int
}

// Next returns the next entry; ok is false once the sequence is exhausted.
func (it *MemoryIterator) Next() (MemoryEntry, bool) {
	if it == nil || it.pos >= len(it.entries) {
		return MemoryEntry{}, false
	}
	e := it.entries[it.pos]
	it.pos++
	return e, true
}

// MemoryStore — append-only episodic log with a hard capacity and a single
// cache: the relationship summary, invalidated by exactly one rule — any
// append invalidates it.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []MemoryEntry
	capacity int
	halfLife time.Duration
	summary  *RelationshipSummary // nil while invalidated
}

// NewMemoryStore creates a store with the given capacity (entries) and
// recency half-life for salience scoring.
func NewMemoryStore(capacity int, halfLife time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultTuning().MemoryCapacity
	}
	if halfLife <= 0 {
		halfLife = DefaultTuning().MemoryHalfLife
	}
	return &MemoryStore{capacity: capacity, halfLife: halfLife}
}

// Append adds one immutable entry. O(1); fails only with ErrStorageFull, in
// which case the log is untouched and the caller should evict or persist.
// An empty ID is assigned on the way in.
func (m *MemoryStore) Append(e MemoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) >= m.capacity {
		return ErrStorageFull
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.entries = append(m.entries, e)
	m.summary = nil
	return nil
}

// Full reports whether the next Append would fail. The orchestrator checks
// this before mutating emotion state so a full log never causes a partial
// cycle.
func (m *MemoryStore) Full() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries) >= m.capacity
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// EvictOldest drops up to n oldest entries and returns how many were removed.
// Eviction is the caller's decision (typically after ErrStorageFull, once a
// snapshot has been persisted).
func (m *MemoryStore) EvictOldest(n int) int {
	if n <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.entries) {
		n = len(m.entries)
	}
	m.entries = append([]MemoryEntry(nil), m.entries[n:]...)
	if n > 0 {
		m.summary = nil
	}
	return n
}

// Query returns a lazy iterator over matching entries, ranked by order,
// most-relevant-first, capped at limit. The ranking snapshot is taken at call
// time; later appends do not show up in an open iterator.
func (m *MemoryStore) Query(f QueryFilter, order QueryOrder, limit int, now time.Time) *MemoryIterator {
	if limit <= 0 {
		return &MemoryIterator{}
	}
	m.mu.RLock()
	matched := make([]MemoryEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if !f.Since.IsZero() && e.At.Before(f.Since) {
			continue
		}
		matched = append(matched, e)
	}
	m.mu.RUnlock()

	switch order {
	case BySalience:
		sort.SliceStable(matched, func(i, j int) bool {
			return m.salienceScore(matched[i], now) > m.salienceScore(matched[j], now)
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].At.After(matched[j].At)
		})
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return &MemoryIterator{entries: matched}
}

func (m *MemoryStore) salienceScore(e MemoryEntry, now time.Time) float64 {
	age := now.Sub(e.At)
	if age < 0 {
		age = 0
	}
	return e.Salience * math.Exp(-age.Seconds()/m.halfLife.Seconds())
}

// RelationshipSummary returns the aggregate trust/affection derived from the
// full log. Recomputed lazily on first access after an append, then memoized;
// this is the engine's only cache.
func (m *MemoryStore) RelationshipSummary(now time.Time) RelationshipSummary {
	m.mu.RLock()
	if s := m.summary; s != nil {
		m.mu.RUnlock()
		return *s
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summary == nil {
		s := computeRelationship(m.entries, m.halfLife, now)
		m.summary = &s
	}
	return *m.summary
}

// computeRelationship is the direct, cache-free recomputation from the entry
// sequence. Weighted by recency-decayed salience: a warm moment yesterday
// counts more than a spat last month.
func computeRelationship(entries []MemoryEntry, halfLife time.Duration, now time.Time) RelationshipSummary {
	out := RelationshipSummary{Trust: 0.5, Affection: 0.5, Entries: len(entries), ComputedAt: now}
	var wSum, trustSum, affSum float64
	for _, e := range entries {
		age := now.Sub(e.At)
		if age < 0 {
			age = 0
		}
		w := e.Salience * math.Exp(-age.Seconds()/halfLife.Seconds())
		if w <= 0 {
			continue
		}
		valence := e.Delta[EmotionJoy] + e.Delta[EmotionAffection] -
			e.Delta[EmotionAnger] - e.Delta[EmotionSadness] - e.Delta[EmotionFear]
		warmth := e.Delta[EmotionAffection] + 0.5*e.Delta[EmotionJoy]
		wSum += w
		trustSum += w * clampSigned(valence)
		affSum += w * clampSigned(warmth)
	}
	if wSum > 0 {
		out.Trust = clamp01(0.5 + 0.5*trustSum/wSum)
		out.Affection = clamp01(0.5 + 0.5*affSum/wSum)
	}
	return out
}

// snapshotEntries returns a copy of the full log (for persistence).
func (m *MemoryStore) snapshotEntries() []MemoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MemoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// restoreEntries replaces the log from a snapshot and invalidates the cache.
func (m *MemoryStore) restoreEntries(entries []MemoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]MemoryEntry(nil), entries...)
	m.summary = nil
}

func clampSigned(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
