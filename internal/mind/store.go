package mind

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/keshon/datastore"
	"github.com/rs/zerolog"
)

// Store holds the live companions and persists their snapshots through a
// datastore file (atomic writes and autosave come from the library). Safe for
// concurrent use; companions themselves stay fully independent.
type Store struct {
	mu         sync.RWMutex
	companions map[string]*Companion
	ds         *datastore.DataStore
	log        zerolog.Logger
}

// NewStore opens (or creates) the backing file at path.
func NewStore(path string, log zerolog.Logger) (*Store, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Store{
		companions: make(map[string]*Companion),
		ds:         ds,
		log:        log,
	}, nil
}

// Companion returns the live companion for id, creating it (and restoring any
// persisted snapshot) on first use.
func (s *Store) Companion(id string, traits TraitProfile, opts ...Option) *Companion {
	s.mu.RLock()
	c := s.companions[id]
	s.mu.RUnlock()
	if c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c = s.companions[id]; c != nil {
		return c
	}
	c = NewCompanion(id, traits, append([]Option{WithLogger(s.log)}, opts...)...)
	if snap, ok := s.loadSnapshot(id); ok {
		c.restore(snap)
		s.log.Info().Str("companion", id).Int("entries", len(snap.Entries)).Msg("restored")
	}
	s.companions[id] = c
	return c
}

// lookup returns a live companion without creating one.
func (s *Store) lookup(id string) *Companion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companions[id]
}

// AllIDs returns the ids of live companions (for scheduler iteration).
func (s *Store) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.companions))
	for id := range s.companions {
		ids = append(ids, id)
	}
	return ids
}

// Save writes a companion's snapshot into the datastore.
func (s *Store) Save(c *Companion) error {
	if c == nil {
		return nil
	}
	snap := c.snapshot()
	s.ds.Add(snapshotKey(snap.ID), snap)
	return nil
}

// SaveAll snapshots every live companion and flushes the file.
func (s *Store) SaveAll() error {
	s.mu.RLock()
	live := make([]*Companion, 0, len(s.companions))
	for _, c := range s.companions {
		live = append(live, c)
	}
	s.mu.RUnlock()

	for _, c := range live {
		if err := s.Save(c); err != nil {
			return err
		}
	}
	return s.ds.SaveToFile()
}

// Close flushes snapshots and releases the backing file.
func (s *Store) Close() error {
	if err := s.SaveAll(); err != nil {
		s.log.Error().Err(err).Msg("save on close")
	}
	return s.ds.Close()
}

// loadSnapshot reads a persisted snapshot. The datastore hands back decoded
// JSON as generic values, so round-trip through json like the rest of the
// records in this codebase.
func (s *Store) loadSnapshot(id string) (companionSnapshot, bool) {
	raw, ok := s.ds.Get(snapshotKey(id))
	if !ok {
		return companionSnapshot{}, false
	}
	b, err := json.Marshal(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("companion", id).Msg("snapshot marshal")
		return companionSnapshot{}, false
	}
	var snap companionSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		s.log.Warn().Err(err).Str("companion", id).Msg("snapshot unmarshal")
		return companionSnapshot{}, false
	}
	return snap, true
}

func snapshotKey(id string) string {
	return "companion:" + id
}
