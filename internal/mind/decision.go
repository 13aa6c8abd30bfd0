package mind

import (
	"time"
)

// DecisionConfig holds thresholds and weights for the behavior selector.
// Values are calibration constants, not ground truth.
type DecisionConfig struct {
	SpeakThreshold   float64 // eligibility floor for spontaneous speech
	AnimateThreshold float64 // primary intensity floor for a visible animation
	PostThreshold    float64 // max-intensity floor for a spontaneous post

	EmotionWeight      float64 // w1: activation / intensity
	TraitWeight        float64 // w2: trait alignment
	RelationshipWeight float64 // w3: memory-derived relationship strength

	RecentSpokePenalty float64       // subtracted when we spoke very recently
	RecentSpokeWindow  time.Duration
}

// DefaultDecisionConfig returns a sane default. Threshold 0.28 so a clearly
// positive exchange gets a spoken reaction.
func DefaultDecisionConfig() DecisionConfig {
	return DecisionConfig{
		SpeakThreshold:     0.28,
		AnimateThreshold:   0.45,
		PostThreshold:      0.75,
		EmotionWeight:      0.5,
		TraitWeight:        0.25,
		RelationshipWeight: 0.25,
		RecentSpokePenalty: 0.2,
		RecentSpokeWindow:  2 * time.Minute,
	}
}

// Schedule carries the selector's timer inputs: when the next social post is
// due and when the companion last spoke.
type Schedule struct {
	NextPostDue time.Time `json:"next_post_due,omitempty"` // zero = no scheduled post
	LastSpokeAt time.Time `json:"last_spoke_at,omitempty"`
}

// Decide maps (traits, emotion, memory, pending command, schedule) to one
// BehaviorDecision. Pure and deterministic: no clock reads, no randomness, so
// synthetic triples are unit-testable. Priority is fixed: explicit command >
// scheduled action > spontaneous action > idle.
func Decide(traits TraitProfile, emotions EmotionState, rel RelationshipSummary,
	cmd *CommandRequest, sched Schedule, tn Tuning, now time.Time) BehaviorDecision {

	// Explicit command short-circuits scoring entirely.
	if cmd != nil {
		return decisionFromCommand(*cmd, emotions, tn)
	}

	// Scheduled post outranks anything spontaneous once the timer elapses.
	if !sched.NextPostDue.IsZero() && !now.Before(sched.NextPostDue) {
		return scheduledPostDecision(emotions, rel, tn)
	}

	cfg := tn.Decision
	primary, primaryV := Primary(emotions, tn)
	act := Activation(emotions)
	maxV := 0.0
	for _, e := range AllEmotions() {
		if v := emotions.Intensity(e); v > maxV {
			maxV = v
		}
	}

	var spokeRecently bool
	if !sched.LastSpokeAt.IsZero() && now.Sub(sched.LastSpokeAt) < cfg.RecentSpokeWindow {
		spokeRecently = true
	}

	type candidate struct {
		action ActionKind
		score  float64
		params map[string]string
	}
	var candidates []candidate

	// Speak: extraverts clear a lower bar, and speaking again right away is
	// penalized so the companion does not monologue.
	speakFloor := cfg.SpeakThreshold * (1.2 - 0.4*traits.Value(TraitExtraversion))
	speakScore := cfg.EmotionWeight*act +
		cfg.TraitWeight*traits.Value(TraitExtraversion) +
		cfg.RelationshipWeight*rel.Affection
	if spokeRecently {
		speakScore -= cfg.RecentSpokePenalty
	}
	if act >= speakFloor && speakScore > 0 {
		params := map[string]string{"affect": "neutral", "tone": "neutral"}
		if primary != "" {
			params["affect"] = affectOf(primary)
			params["tone"] = string(primary)
		}
		candidates = append(candidates, candidate{ActionSpeak, clamp01(speakScore), params})
	}

	// Animate: a strong primary emotion shows in the body even when nothing
	// is worth saying. Discounted so speech wins when both clear.
	if primary != "" && primaryV >= cfg.AnimateThreshold {
		animScore := 0.8 * (cfg.EmotionWeight*primaryV + cfg.TraitWeight*traits.Value(TraitOpenness))
		candidates = append(candidates, candidate{ActionAnimate, clamp01(animScore), map[string]string{
			"emotion": string(primary),
			"affect":  affectOf(primary),
		}})
	}

	// Spontaneous post: some label must spike past a trait-scaled threshold.
	postFloor := cfg.PostThreshold * (1.2 - 0.4*traits.Value(TraitExtraversion))
	if maxV >= postFloor {
		postScore := cfg.EmotionWeight*maxV +
			cfg.TraitWeight*traits.Value(TraitExtraversion) +
			cfg.RelationshipWeight*rel.Trust
		params := map[string]string{"reason": "spontaneous"}
		if primary != "" {
			params["emotion"] = string(primary)
		}
		candidates = append(candidates, candidate{ActionPostSocial, clamp01(postScore), params})
	}

	if len(candidates) == 0 {
		return BehaviorDecision{Action: ActionIdle, Confidence: 1}
	}

	// Highest score wins; ties break on the fixed kind order above (Speak,
	// Animate, PostSocial), which the slice already encodes.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return BehaviorDecision{Action: best.action, Params: best.params, Confidence: best.score}
}

// decisionFromCommand translates a parsed command into the matching decision.
// Empty slots auto-complete from the current emotion state.
func decisionFromCommand(cmd CommandRequest, emotions EmotionState, tn Tuning) BehaviorDecision {
	primary, _ := Primary(emotions, tn)
	emotionTag := cmd.Emotion
	if emotionTag == "" {
		emotionTag = "neutral"
		if primary != "" {
			emotionTag = string(primary)
		}
	}

	switch cmd.Intent {
	case IntentRequestImage:
		params := map[string]string{"emotion": emotionTag}
		if cmd.Environment != "" {
			params["environment"] = cmd.Environment
		}
		if cmd.Activity != "" {
			params["activity"] = cmd.Activity
		}
		if cmd.Pose != "" {
			params["pose"] = cmd.Pose
		}
		return BehaviorDecision{Action: ActionGenerateImage, Params: params, Confidence: 0.95}
	case IntentSchedulePost:
		params := map[string]string{"emotion": emotionTag, "reason": "command"}
		if cmd.Text != "" {
			params["text"] = cmd.Text
		}
		return BehaviorDecision{Action: ActionPostSocial, Params: params, Confidence: 0.95}
	default: // IntentDirectSpeech
		params := map[string]string{"affect": "neutral", "tone": emotionTag}
		if primary != "" {
			params["affect"] = affectOf(primary)
		}
		if cmd.Text != "" {
			params["text"] = cmd.Text
		}
		return BehaviorDecision{Action: ActionSpeak, Params: params, Confidence: 0.95}
	}
}

func scheduledPostDecision(emotions EmotionState, rel RelationshipSummary, tn Tuning) BehaviorDecision {
	params := map[string]string{"reason": "scheduled"}
	if primary, _ := Primary(emotions, tn); primary != "" {
		params["emotion"] = string(primary)
		params["affect"] = affectOf(primary)
	} else {
		params["emotion"] = "neutral"
		params["affect"] = "neutral"
	}
	conf := clamp01(0.5 + 0.5*rel.Trust)
	return BehaviorDecision{Action: ActionPostSocial, Params: params, Confidence: conf}
}
