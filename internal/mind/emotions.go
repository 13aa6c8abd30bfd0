package mind

import (
	"fmt"
	"math"
	"time"
)

// ValidateStimulus checks a classifier-produced stimulus before any state is
// touched. The contribution vector must name every emotion label exactly once
// with a finite value in [-1,1]; salience must be in [0,1]. Partial vectors
// are rejected rather than padded so a broken classifier is caught, not
// silently absorbed.
func ValidateStimulus(st Stimulus) error {
	switch st.Kind {
	case StimulusText, StimulusVision, StimulusVoice, StimulusSystem:
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidStimulus, st.Kind)
	}
	if math.IsNaN(st.Salience) || st.Salience < 0 || st.Salience > 1 {
		return fmt.Errorf("%w: salience %v", ErrInvalidStimulus, st.Salience)
	}
	if len(st.Contributions) != len(AllEmotions()) {
		return fmt.Errorf("%w: contribution vector has %d labels, want %d",
			ErrInvalidStimulus, len(st.Contributions), len(AllEmotions()))
	}
	for _, e := range AllEmotions() {
		v, ok := st.Contributions[e]
		if !ok {
			return fmt.Errorf("%w: missing label %q", ErrInvalidStimulus, e)
		}
		if math.IsNaN(v) || v < -1 || v > 1 {
			return fmt.Errorf("%w: label %q value %v", ErrInvalidStimulus, e, v)
		}
	}
	return nil
}

// decayToward moves v toward baseline by exponential decay over elapsed time.
func decayToward(v, baseline float64, elapsed time.Duration, halfLife time.Duration) float64 {
	if halfLife <= 0 || elapsed <= 0 {
		return v
	}
	k := math.Ln2 / halfLife.Seconds()
	return baseline + (v-baseline)*math.Exp(-k*elapsed.Seconds())
}

// Apply is the emotion engine contract: a pure function of (stimulus, prior
// state, trait profile, elapsed time). Each label decays exponentially toward
// its trait-derived baseline, then receives the stimulus contribution scaled
// by trait sensitivity and salience, then is clamped to [0,1]. Invalid
// stimuli return the prior state unchanged with ErrInvalidStimulus.
func Apply(st Stimulus, prev EmotionState, traits TraitProfile, tn Tuning, now time.Time) (EmotionState, error) {
	next, _, err := ApplyAll([]Stimulus{st}, prev, traits, tn, now)
	return next, err
}

// ApplyAll applies simultaneous stimuli in one step. Conflicting inputs are
// resolved by summing contributions before clamping — no winner-take-all.
// The second return is the per-label delta actually applied after decay,
// recorded on the memory entry for the cycle.
func ApplyAll(sts []Stimulus, prev EmotionState, traits TraitProfile, tn Tuning, now time.Time) (EmotionState, map[Emotion]float64, error) {
	for _, st := range sts {
		if err := ValidateStimulus(st); err != nil {
			return prev, nil, err
		}
	}

	elapsed := now.Sub(prev.UpdatedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	next := NewEmotionState(now)
	delta := make(map[Emotion]float64, len(AllEmotions()))
	for _, e := range AllEmotions() {
		base := Baseline(traits, e)
		decayed := decayToward(prev.Intensity(e), base, elapsed, tn.EmotionHalfLife)

		var contrib float64
		for _, st := range sts {
			contrib += st.Contributions[e] * Sensitivity(traits, e) * st.Salience
		}

		next.Intensities[e] = clamp01(decayed + contrib)
		delta[e] = next.Intensities[e] - decayed
	}
	return next, delta, nil
}

// Decay advances the state with no stimulus: every intensity converges toward
// its trait baseline, never overshooting. Used by idle ticks.
func Decay(prev EmotionState, traits TraitProfile, tn Tuning, now time.Time) EmotionState {
	next, _, _ := ApplyAll(nil, prev, traits, tn, now)
	return next
}

// Primary returns the strongest emotion and its intensity, or ("", 0) when
// nothing clears the primary threshold (a neutral state).
func Primary(s EmotionState, tn Tuning) (Emotion, float64) {
	var best Emotion
	var bestV float64
	for _, e := range AllEmotions() {
		if v := s.Intensity(e); v > bestV {
			best, bestV = e, v
		}
	}
	if bestV < tn.PrimaryThreshold {
		return "", 0
	}
	return best, bestV
}

// Activation folds the state into one 0..1 arousal figure for the selector:
// positive labels excite, fear dampens.
func Activation(s EmotionState) float64 {
	act := 0.5*(s.Intensity(EmotionJoy)+s.Intensity(EmotionAnger)) +
		0.4*s.Intensity(EmotionSurprise) +
		0.3*s.Intensity(EmotionAffection) -
		0.2*s.Intensity(EmotionSadness) -
		0.3*s.Intensity(EmotionFear)
	return clamp01(act)
}

// affectOf buckets a label for actuator parameters.
func affectOf(e Emotion) string {
	switch e {
	case EmotionJoy, EmotionAffection, EmotionSurprise:
		return "positive"
	case EmotionSadness, EmotionAnger, EmotionFear:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
