package classify

import (
	"context"
	"strings"
	"time"

	"companion/internal/mind"
)

// Keyword is the built-in heuristic classifier: per-emotion keyword lists,
// salience from how loaded the text is. It always emits a full, valid
// contribution vector, so it doubles as the fallback when no ML collaborator
// is configured.
type Keyword struct{}

// NewKeyword returns the heuristic classifier.
func NewKeyword() *Keyword { return &Keyword{} }

var keywordLists = map[mind.Emotion][]string{
	mind.EmotionJoy:       {"happy", "joy", "excited", "glad", "wonderful", "great", "awesome", "love it", "yay"},
	mind.EmotionSadness:   {"sad", "unhappy", "depressed", "miserable", "lonely", "crying"},
	mind.EmotionAnger:     {"angry", "mad", "furious", "annoyed", "hate", "stupid"},
	mind.EmotionFear:      {"afraid", "scared", "fearful", "worried", "anxious", "terrified"},
	mind.EmotionSurprise:  {"surprised", "shocked", "amazed", "wow", "unbelievable"},
	mind.EmotionAffection: {"love you", "adore", "cherish", "miss you", "sweet", "cute", "thank"},
}

func (k *Keyword) Classify(_ context.Context, kind mind.StimulusKind, input string) (mind.Stimulus, error) {
	lower := strings.ToLower(input)
	st := mind.NeutralStimulus(kind, summarize(input), time.Now())

	hits := 0
	for emotion, words := range keywordLists {
		var v float64
		for _, w := range words {
			if strings.Contains(lower, w) {
				v += 0.3
				hits++
			}
		}
		if v > 1 {
			v = 1
		}
		st.Contributions[emotion] = v
	}

	// Salience grows with emotional load; punctuation counts for something.
	sal := 0.2 + 0.2*float64(hits)
	if strings.Contains(input, "!") {
		sal += 0.1
	}
	if sal > 1 {
		sal = 1
	}
	if hits == 0 {
		sal = 0.2
	}
	st.Salience = sal
	return st, nil
}
