package mind

import (
	"context"
	"sync"
	"time"
)

// Scheduler drives idle cycles so decay and scheduled posts happen without
// fresh stimuli. One goroutine, per-companion next-tick map; it never mutates
// state itself — each tick goes through the companion's own lock.
type Scheduler struct {
	store    *Store
	interval time.Duration

	mu         sync.Mutex
	next       map[string]time.Time
	onDecision func(id string, d BehaviorDecision)
}

// NewScheduler creates a scheduler ticking each companion roughly every
// interval. onDecision can be nil; set it with SetOnDecision before Run.
func NewScheduler(store *Store, interval time.Duration, onDecision func(string, BehaviorDecision)) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		store:      store,
		interval:   interval,
		next:       make(map[string]time.Time),
		onDecision: onDecision,
	}
}

// SetOnDecision sets the decision callback (e.g. once actuators are wired).
func (s *Scheduler) SetOnDecision(f func(string, BehaviorDecision)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDecision = f
}

// Notify advances a companion's next tick — call when it just received a
// stimulus so follow-up behavior is not a full interval away.
func (s *Scheduler) Notify(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[id] = time.Now().Add(2 * time.Second)
}

// Run loops until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(time.Now())
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	for _, id := range s.store.AllIDs() {
		s.mu.Lock()
		due, seen := s.next[id]
		if !seen {
			due = now
		}
		if due.After(now) {
			s.mu.Unlock()
			continue
		}
		s.next[id] = now.Add(s.interval)
		cb := s.onDecision
		s.mu.Unlock()

		c := s.store.lookup(id)
		if c == nil {
			continue
		}
		if d := c.Tick(); d != nil && cb != nil {
			cb(id, *d)
		}
	}
}
