package mind

import (
	"errors"
	"math"
	"testing"
)

func TestNewTraitProfile_Validation(t *testing.T) {
	if _, err := NewTraitProfile(map[Trait]float64{Trait("charisma"): 0.5}); !errors.Is(err, ErrUnknownTrait) {
		t.Fatalf("expected ErrUnknownTrait, got %v", err)
	}
	if _, err := NewTraitProfile(map[Trait]float64{TraitOpenness: 1.2}); !errors.Is(err, ErrTraitRange) {
		t.Fatalf("expected ErrTraitRange, got %v", err)
	}
	if _, err := NewTraitProfile(map[Trait]float64{TraitOpenness: math.NaN()}); !errors.Is(err, ErrTraitRange) {
		t.Fatalf("expected ErrTraitRange for NaN, got %v", err)
	}
}

func TestNewTraitProfile_MissingTraitsDefaultToBalanced(t *testing.T) {
	p, err := NewTraitProfile(map[Trait]float64{TraitExtraversion: 0.9})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got := p.Value(TraitExtraversion); got != 0.9 {
		t.Fatalf("extraversion = %v, want 0.9", got)
	}
	if got := p.Value(TraitNeuroticism); got != 0.5 {
		t.Fatalf("unset neuroticism = %v, want 0.5", got)
	}
}

func TestBaseline_TracksTraits(t *testing.T) {
	anxious, _ := NewTraitProfile(map[Trait]float64{TraitNeuroticism: 1.0})
	calm, _ := NewTraitProfile(map[Trait]float64{TraitNeuroticism: 0.0})

	if Baseline(anxious, EmotionFear) <= Baseline(calm, EmotionFear) {
		t.Fatal("high neuroticism must raise the fear baseline")
	}
	if got := Baseline(calm, EmotionFear); got != 0 {
		t.Fatalf("zero neuroticism fear baseline = %v, want 0", got)
	}
	if got := Baseline(DefaultTraitProfile(), EmotionSurprise); got != 0 {
		t.Fatalf("surprise has no resting level, got %v", got)
	}
}

func TestSensitivity_Range(t *testing.T) {
	profiles := []TraitProfile{DefaultTraitProfile()}
	if p, err := NewTraitProfile(map[Trait]float64{
		TraitOpenness:      1,
		TraitExtraversion:  0,
		TraitAgreeableness: 1,
		TraitNeuroticism:   0,
	}); err == nil {
		profiles = append(profiles, p)
	}
	for _, p := range profiles {
		for _, e := range AllEmotions() {
			s := Sensitivity(p, e)
			if s < 0.5 || s > 1 {
				t.Fatalf("sensitivity(%s) = %v, want within [0.5, 1]", e, s)
			}
		}
	}
}

func TestSensitivity_AgreeablenessDampensAnger(t *testing.T) {
	kind, _ := NewTraitProfile(map[Trait]float64{TraitAgreeableness: 1.0})
	spiky, _ := NewTraitProfile(map[Trait]float64{TraitAgreeableness: 0.0})
	if Sensitivity(kind, EmotionAnger) >= Sensitivity(spiky, EmotionAnger) {
		t.Fatal("agreeableness must dampen anger sensitivity")
	}
	if Sensitivity(kind, EmotionAffection) <= Sensitivity(spiky, EmotionAffection) {
		t.Fatal("agreeableness must amplify affection sensitivity")
	}
}
