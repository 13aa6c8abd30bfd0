package mind

import "time"

// Trait — one baseline personality dimension (Big Five). Immutable at runtime.
type Trait string

const (
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitExtraversion      Trait = "extraversion"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// AllTraits returns the fixed trait set in stable order.
func AllTraits() []Trait {
	return []Trait{
		TraitOpenness,
		TraitConscientiousness,
		TraitExtraversion,
		TraitAgreeableness,
		TraitNeuroticism,
	}
}

// Emotion — one affect label. Intensities are independent, not a simplex.
type Emotion string

const (
	EmotionJoy       Emotion = "joy"
	EmotionSadness   Emotion = "sadness"
	EmotionAnger     Emotion = "anger"
	EmotionFear      Emotion = "fear"
	EmotionSurprise  Emotion = "surprise"
	EmotionAffection Emotion = "affection"
)

// AllEmotions returns the fixed emotion set in stable order.
func AllEmotions() []Emotion {
	return []Emotion{
		EmotionJoy,
		EmotionSadness,
		EmotionAnger,
		EmotionFear,
		EmotionSurprise,
		EmotionAffection,
	}
}

// EmotionState — current affect per label, each in [0,1]. Mutated only via Apply.
// JSON keys kept readable for snapshots (e.g. "updated_at").
type EmotionState struct {
	Intensities map[Emotion]float64 `json:"intensities"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewEmotionState returns a neutral state stamped at now.
func NewEmotionState(now time.Time) EmotionState {
	in := make(map[Emotion]float64, len(AllEmotions()))
	for _, e := range AllEmotions() {
		in[e] = 0
	}
	return EmotionState{Intensities: in, UpdatedAt: now}
}

// Intensity returns the current intensity for label (0 when unset).
func (s EmotionState) Intensity(e Emotion) float64 {
	return s.Intensities[e]
}

// Clone returns a deep copy so callers can hand the state out safely.
func (s EmotionState) Clone() EmotionState {
	in := make(map[Emotion]float64, len(s.Intensities))
	for k, v := range s.Intensities {
		in[k] = v
	}
	return EmotionState{Intensities: in, UpdatedAt: s.UpdatedAt}
}

// StimulusKind tags the perception channel a stimulus came from.
type StimulusKind string

const (
	StimulusText   StimulusKind = "text"
	StimulusVision StimulusKind = "vision"
	StimulusVoice  StimulusKind = "voice"
	StimulusSystem StimulusKind = "system"
)

// Stimulus — one unit of perceived input with classifier-derived contributions.
// Contributions must carry every emotion label with a signed delta in [-1,1];
// the engine rejects partial or unknown vectors instead of dropping labels.
// Transient, consumed once.
type Stimulus struct {
	Kind          StimulusKind        `json:"kind"`
	Summary       string              `json:"summary"`
	Contributions map[Emotion]float64 `json:"contributions"`
	Salience      float64             `json:"salience"` // 0..1
	At            time.Time           `json:"at"`
}

// NeutralStimulus returns a valid zero-contribution stimulus. Used when a
// classifier collaborator times out so the cycle degrades instead of blocking.
func NeutralStimulus(kind StimulusKind, summary string, at time.Time) Stimulus {
	contrib := make(map[Emotion]float64, len(AllEmotions()))
	for _, e := range AllEmotions() {
		contrib[e] = 0
	}
	return Stimulus{Kind: kind, Summary: summary, Contributions: contrib, Salience: 0, At: at}
}

// MemoryEntry — immutable episodic record. Appended only, never mutated.
type MemoryEntry struct {
	ID       string              `json:"id"`
	At       time.Time           `json:"at"`
	Kind     StimulusKind        `json:"kind"`
	Summary  string              `json:"summary"`
	Delta    map[Emotion]float64 `json:"emotional_delta"` // applied delta at occurrence
	Salience float64             `json:"salience"`        // 0..1
}

// RelationshipSummary — salience-weighted trust/affection aggregate derived
// from the episodic log. A cache, never a source of truth.
type RelationshipSummary struct {
	Trust      float64   `json:"trust"`     // 0..1, 0.5 = neutral
	Affection  float64   `json:"affection"` // 0..1, 0.5 = neutral
	Entries    int       `json:"entries"`
	ComputedAt time.Time `json:"computed_at"`
}

// ActionKind — the discrete behaviors the selector can emit.
type ActionKind string

const (
	ActionSpeak         ActionKind = "speak"
	ActionAnimate       ActionKind = "animate"
	ActionPostSocial    ActionKind = "post_social"
	ActionGenerateImage ActionKind = "generate_image"
	ActionIdle          ActionKind = "idle"
)

// BehaviorDecision — zero-or-one per cycle, consumed by external actuators.
type BehaviorDecision struct {
	Action     ActionKind        `json:"action"`
	Params     map[string]string `json:"params,omitempty"`
	Confidence float64           `json:"confidence"` // 0..1
}

// Intent — recognized command category.
type Intent string

const (
	IntentRequestImage Intent = "request-image"
	IntentSchedulePost Intent = "schedule-post"
	IntentDirectSpeech Intent = "direct-speech"
)

// CommandRequest — structured parse of a free-form directive. Empty slots mean
// "auto-complete from current emotion/context" at decision time.
type CommandRequest struct {
	Intent      Intent `json:"intent"`
	Emotion     string `json:"emotion,omitempty"`
	Environment string `json:"environment,omitempty"`
	Activity    string `json:"activity,omitempty"`
	Pose        string `json:"pose,omitempty"`
	Text        string `json:"text,omitempty"` // residual free text (speech/post body)
}

// filledSlots counts non-empty slot fillers; used for intent disambiguation.
func (c CommandRequest) filledSlots() int {
	n := 0
	for _, s := range []string{c.Emotion, c.Environment, c.Activity, c.Pose} {
		if s != "" {
			n++
		}
	}
	return n
}
