package mind

import "errors"

var (
	// ErrInvalidStimulus — malformed classifier output (unknown label, partial
	// vector, NaN or out-of-range value). The cycle that sees it mutates nothing.
	ErrInvalidStimulus = errors.New("mind: invalid stimulus")

	// ErrStorageFull — episodic log at capacity. Caller must evict or persist
	// before retrying; the failed cycle leaves emotion state untouched.
	ErrStorageFull = errors.New("mind: memory storage full")

	// ErrCompanionClosed — the companion was shut down.
	ErrCompanionClosed = errors.New("mind: companion closed")

	// ErrUnknownTrait — trait profile built with a name outside the fixed set.
	ErrUnknownTrait = errors.New("mind: unknown trait")

	// ErrTraitRange — trait value outside [0,1].
	ErrTraitRange = errors.New("mind: trait value out of range")
)
