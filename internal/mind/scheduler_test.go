package mind

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_TickRunsDueCompanionsAndReportsDecisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companions.json")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store, err := NewStore(path, nopLogger())
	require.NoError(t, err)
	defer store.Close()

	c := store.Companion("ava", DefaultTraitProfile(), WithClock(fixedClock(now)))
	c.SchedulePost(now.Add(-time.Minute))

	var got []BehaviorDecision
	sched := NewScheduler(store, time.Minute, func(id string, d BehaviorDecision) {
		assert.Equal(t, "ava", id)
		got = append(got, d)
	})

	sched.tick(now)
	require.Len(t, got, 1)
	assert.Equal(t, ActionPostSocial, got[0].Action)

	// The companion was just ticked, so it is not due again within the interval.
	sched.tick(now.Add(30 * time.Second))
	assert.Len(t, got, 1)

	// After the interval it ticks again; nothing is due, so no callback.
	sched.tick(now.Add(2 * time.Minute))
	assert.Len(t, got, 1)
}

func TestScheduler_IdleCompanionProducesNoCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companions.json")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store, err := NewStore(path, nopLogger())
	require.NoError(t, err)
	defer store.Close()

	store.Companion("ava", DefaultTraitProfile(), WithClock(fixedClock(now)))

	called := false
	sched := NewScheduler(store, time.Minute, func(string, BehaviorDecision) { called = true })
	sched.tick(now)
	assert.False(t, called, "neutral companion must idle")
}
