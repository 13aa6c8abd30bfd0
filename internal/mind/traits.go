package mind

import (
	"fmt"
	"math"
	"time"
)

// TraitProfile — baseline personality dimensions, each in [0,1]. Immutable
// after construction; the companion holds it for its whole lifetime and the
// engine only ever reads it.
type TraitProfile struct {
	values map[Trait]float64
}

// NewTraitProfile validates and freezes a trait mapping. Unknown trait names
// and out-of-range values are rejected; traits absent from the input default
// to 0.5 (the balanced preset).
func NewTraitProfile(values map[Trait]float64) (TraitProfile, error) {
	frozen := make(map[Trait]float64, len(AllTraits()))
	for _, t := range AllTraits() {
		frozen[t] = 0.5
	}
	for name, v := range values {
		if _, ok := frozen[name]; !ok {
			return TraitProfile{}, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return TraitProfile{}, fmt.Errorf("%w: %s=%v", ErrTraitRange, name, v)
		}
		frozen[name] = v
	}
	return TraitProfile{values: frozen}, nil
}

// DefaultTraitProfile returns the balanced preset (all traits 0.5).
func DefaultTraitProfile() TraitProfile {
	p, _ := NewTraitProfile(nil)
	return p
}

// Value returns the trait value (0.5 for the zero profile).
func (p TraitProfile) Value(t Trait) float64 {
	if p.values == nil {
		return 0.5
	}
	return p.values[t]
}

// Values returns a copy of the full mapping (for snapshots).
func (p TraitProfile) Values() map[Trait]float64 {
	out := make(map[Trait]float64, len(AllTraits()))
	for _, t := range AllTraits() {
		out[t] = p.Value(t)
	}
	return out
}

// Baseline is the resting intensity an emotion decays toward for this profile.
// High neuroticism raises the fear/sadness floor; extraversion and
// agreeableness lift joy and affection a little.
func Baseline(p TraitProfile, e Emotion) float64 {
	switch e {
	case EmotionFear, EmotionSadness:
		return 0.2 * p.Value(TraitNeuroticism)
	case EmotionAnger:
		return 0.1 * (1 - p.Value(TraitAgreeableness))
	case EmotionJoy:
		return 0.15 * p.Value(TraitExtraversion)
	case EmotionAffection:
		return 0.15 * p.Value(TraitAgreeableness)
	default:
		return 0
	}
}

// Sensitivity is the multiplier applied to a classifier contribution for one
// label: reactive profiles feel more, stable ones less. Range [0.5, 1].
func Sensitivity(p TraitProfile, e Emotion) float64 {
	switch e {
	case EmotionJoy:
		return 0.5 + 0.5*p.Value(TraitExtraversion)
	case EmotionSadness, EmotionFear:
		return 0.5 + 0.5*p.Value(TraitNeuroticism)
	case EmotionAnger:
		return 0.5 + 0.5*(1-p.Value(TraitAgreeableness))
	case EmotionAffection:
		return 0.5 + 0.5*p.Value(TraitAgreeableness)
	case EmotionSurprise:
		return 0.5 + 0.5*p.Value(TraitOpenness)
	default:
		return 0.5
	}
}

// Tuning collects the calibration constants the source material leaves open
// (decay rates, thresholds, scoring weights). Defaults are a starting point,
// not ground truth; override per companion when calibrating.
type Tuning struct {
	// EmotionHalfLife — time for an intensity to close half its distance to
	// baseline absent new stimuli.
	EmotionHalfLife time.Duration

	// MemoryHalfLife — recency half-life in query scoring:
	// score = salience * exp(-age/halfLife).
	MemoryHalfLife time.Duration

	// PrimaryThreshold — minimum intensity for an emotion to count as primary.
	PrimaryThreshold float64

	// MemoryCapacity — hard bound on the episodic log before ErrStorageFull.
	MemoryCapacity int

	// PostInterval — cadence for scheduled social posts (0 disables).
	PostInterval time.Duration

	Decision DecisionConfig
}

// DefaultTuning returns the default calibration.
func DefaultTuning() Tuning {
	return Tuning{
		EmotionHalfLife:  10 * time.Minute,
		MemoryHalfLife:   24 * time.Hour,
		PrimaryThreshold: 0.2,
		MemoryCapacity:   4096,
		PostInterval:     6 * time.Hour,
		Decision:         DefaultDecisionConfig(),
	}
}
