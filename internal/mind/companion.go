package mind

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Companion owns one persona's mutable state: emotion state and episodic
// memory live behind a single mutation lock, the trait profile is read-only.
// There is no process-wide current companion; callers hold the instance.
type Companion struct {
	id     string
	traits TraitProfile
	tuning Tuning
	clock  func() time.Time
	log    zerolog.Logger

	mu       sync.Mutex
	emotions EmotionState
	memory   *MemoryStore
	sched    Schedule
	pending  *CommandRequest
	closed   bool
}

// Option configures a Companion at construction.
type Option func(*Companion)

// WithTuning overrides the default calibration constants.
func WithTuning(tn Tuning) Option {
	return func(c *Companion) { c.tuning = tn }
}

// WithClock injects a time source. Tests replay stimulus sequences against a
// fake clock; production uses time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *Companion) { c.clock = clock }
}

// WithLogger attaches an event logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Companion) { c.log = log }
}

// NewCompanion creates a companion with the given immutable trait profile.
func NewCompanion(id string, traits TraitProfile, opts ...Option) *Companion {
	c := &Companion{
		id:     id,
		traits: traits,
		tuning: DefaultTuning(),
		clock:  time.Now,
		log:    nopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	now := c.clock()
	c.emotions = NewEmotionState(now)
	c.memory = NewMemoryStore(c.tuning.MemoryCapacity, c.tuning.MemoryHalfLife)
	if c.tuning.PostInterval > 0 {
		c.sched.NextPostDue = now.Add(c.tuning.PostInterval)
	}
	return c
}

// ID returns the companion identifier.
func (c *Companion) ID() string { return c.id }

// Traits returns the read-only trait profile.
func (c *Companion) Traits() TraitProfile { return c.traits }

// Ingest runs one processing cycle: stimulus in, emotion state updated, memory
// entry appended, zero-or-one decision out (nil means idle). The cycle is
// atomic from the caller's perspective: on any error, neither emotion state
// nor memory has changed. Classifier calls happen before Ingest — the lock is
// held only while applying already-computed deltas. A canceled ctx abandons
// the stimulus before mutation, never after.
func (c *Companion) Ingest(ctx context.Context, st Stimulus) (*BehaviorDecision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrCompanionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.clock()

	// Validate and check capacity before touching anything so a failed cycle
	// is invisible.
	if err := ValidateStimulus(st); err != nil {
		return nil, err
	}
	if c.memory.Full() {
		return nil, ErrStorageFull
	}

	next, delta, err := ApplyAll([]Stimulus{st}, c.emotions, c.traits, c.tuning, now)
	if err != nil {
		return nil, err
	}
	c.emotions = next

	entry := MemoryEntry{
		At:       now,
		Kind:     st.Kind,
		Summary:  st.Summary,
		Delta:    delta,
		Salience: st.Salience,
	}
	if err := c.memory.Append(entry); err != nil {
		// Capacity was checked above and the lock is held; this is unreachable
		// in practice but must not leave a half-applied cycle behind.
		return nil, err
	}

	cmd := c.pending
	c.pending = nil

	rel := c.memory.RelationshipSummary(now)
	decision := Decide(c.traits, c.emotions, rel, cmd, c.sched, c.tuning, now)
	c.noteDecision(decision, now)

	primary := "neutral"
	if p, _ := Primary(c.emotions, c.tuning); p != "" {
		primary = string(p)
	}
	logCycle(c.log, c.id, st, primary, decision)

	if decision.Action == ActionIdle {
		return nil, nil
	}
	return &decision, nil
}

// Tick runs an idle cycle for the scheduler: decay the emotion state and ask
// the selector whether a scheduled or spontaneous action is due. No memory is
// appended — nothing was perceived.
func (c *Companion) Tick() *BehaviorDecision {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	now := c.clock()
	c.emotions = Decay(c.emotions, c.traits, c.tuning, now)

	cmd := c.pending
	c.pending = nil

	rel := c.memory.RelationshipSummary(now)
	decision := Decide(c.traits, c.emotions, rel, cmd, c.sched, c.tuning, now)
	c.noteDecision(decision, now)
	if decision.Action == ActionIdle {
		return nil
	}
	return &decision
}

// noteDecision updates schedule bookkeeping after a decision. Caller holds mu.
func (c *Companion) noteDecision(d BehaviorDecision, now time.Time) {
	switch d.Action {
	case ActionSpeak:
		c.sched.LastSpokeAt = now
	case ActionPostSocial:
		if c.tuning.PostInterval > 0 {
			c.sched.NextPostDue = now.Add(c.tuning.PostInterval)
		} else {
			c.sched.NextPostDue = time.Time{}
		}
	}
}

// Command parses free text and, when it is a recognized directive, queues it
// for the next cycle (command always outranks spontaneous behavior there).
// Returns the parse result; nil means ordinary chat input.
func (c *Companion) Command(text string) *CommandRequest {
	req := ParseCommand(text)
	if req == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.pending = req
	}
	return req
}

// SchedulePost sets the next scheduled social post time explicitly.
func (c *Companion) SchedulePost(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sched.NextPostDue = at
}

// Emotions returns a copy of the current emotion state.
func (c *Companion) Emotions() EmotionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emotions.Clone()
}

// Relationship returns the current relationship summary.
func (c *Companion) Relationship() RelationshipSummary {
	c.mu.Lock()
	now := c.clock()
	m := c.memory
	c.mu.Unlock()
	return m.RelationshipSummary(now)
}

// Recall queries episodic memory. The iterator is a snapshot; holding it does
// not block further cycles.
func (c *Companion) Recall(f QueryFilter, order QueryOrder, limit int) *MemoryIterator {
	c.mu.Lock()
	now := c.clock()
	m := c.memory
	c.mu.Unlock()
	return m.Query(f, order, limit, now)
}

// MemoryLen returns the number of episodic entries.
func (c *Companion) MemoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.Len()
}

// EvictMemory drops the n oldest entries; the caller decides when (typically
// after persisting a snapshot in response to ErrStorageFull).
func (c *Companion) EvictMemory(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory.EvictOldest(n)
}

// Close marks the companion closed; further cycles fail with
// ErrCompanionClosed.
func (c *Companion) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// companionSnapshot is the persisted form of a companion's mutable state.
type companionSnapshot struct {
	ID       string            `json:"id"`
	Traits   map[Trait]float64 `json:"traits"`
	Emotions EmotionState      `json:"emotions"`
	Entries  []MemoryEntry     `json:"entries"`
	Schedule Schedule          `json:"schedule"`
	SavedAt  time.Time         `json:"saved_at"`
}

// snapshot captures the full mutable state under the lock.
func (c *Companion) snapshot() companionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return companionSnapshot{
		ID:       c.id,
		Traits:   c.traits.Values(),
		Emotions: c.emotions.Clone(),
		Entries:  c.memory.snapshotEntries(),
		Schedule: c.sched,
		SavedAt:  c.clock(),
	}
}

// restore replaces mutable state from a snapshot (trait profile stays as
// constructed — it is immutable for the companion's lifetime).
func (c *Companion) restore(snap companionSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(snap.Emotions.Intensities) > 0 {
		c.emotions = snap.Emotions.Clone()
	}
	c.memory.restoreEntries(snap.Entries)
	c.sched = snap.Schedule
}
