package mind

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PersistsAndRestoresCompanionState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companions.json")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	traits, err := NewTraitProfile(map[Trait]float64{TraitExtraversion: 0.9})
	require.NoError(t, err)

	store, err := NewStore(path, nopLogger())
	require.NoError(t, err)

	c := store.Companion("ava", traits, WithClock(fixedClock(now)))
	_, err = c.Ingest(context.Background(), joyStimulus(0.8, 0.8, now))
	require.NoError(t, err)

	joy := c.Emotions().Intensity(EmotionJoy)
	entries := c.MemoryLen()
	require.NoError(t, store.Close())

	reopened, err := NewStore(path, nopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	back := reopened.Companion("ava", traits, WithClock(fixedClock(now)))
	assert.InDelta(t, joy, back.Emotions().Intensity(EmotionJoy), 1e-9)
	assert.Equal(t, entries, back.MemoryLen())
}

func TestStore_CompanionIsCreatedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companions.json")
	store, err := NewStore(path, nopLogger())
	require.NoError(t, err)
	defer store.Close()

	a := store.Companion("ava", DefaultTraitProfile())
	b := store.Companion("ava", DefaultTraitProfile())
	assert.Same(t, a, b)

	assert.Nil(t, store.lookup("nobody"))
	assert.Same(t, a, store.lookup("ava"))
	assert.ElementsMatch(t, []string{"ava"}, store.AllIDs())
}

func TestStore_UnknownSnapshotStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companions.json")
	store, err := NewStore(path, nopLogger())
	require.NoError(t, err)
	defer store.Close()

	c := store.Companion("brand-new", DefaultTraitProfile())
	assert.Equal(t, 0, c.MemoryLen())
	for _, e := range AllEmotions() {
		assert.Equal(t, 0.0, c.Emotions().Intensity(e))
	}
}
