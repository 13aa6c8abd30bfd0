package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"companion/internal/mind"
)

func TestKeyword_EmitsValidVector(t *testing.T) {
	k := NewKeyword()
	for _, input := range []string{
		"I'm so happy today, this is wonderful!",
		"completely neutral sentence about the weather",
		"I hate this, it makes me furious",
		"",
	} {
		st, err := k.Classify(context.Background(), mind.StimulusText, input)
		if err != nil {
			t.Fatalf("classify %q: %v", input, err)
		}
		if err := mind.ValidateStimulus(st); err != nil {
			t.Fatalf("classify %q produced invalid stimulus: %v", input, err)
		}
	}
}

func TestKeyword_ScoresMatchSentiment(t *testing.T) {
	k := NewKeyword()

	st, err := k.Classify(context.Background(), mind.StimulusText, "I'm so happy and excited!")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if st.Contributions[mind.EmotionJoy] <= 0 {
		t.Fatalf("expected positive joy contribution, got %v", st.Contributions[mind.EmotionJoy])
	}
	if st.Contributions[mind.EmotionAnger] != 0 {
		t.Fatalf("expected zero anger, got %v", st.Contributions[mind.EmotionAnger])
	}
	if st.Salience <= 0.2 {
		t.Fatalf("loaded text should be more salient than the floor, got %v", st.Salience)
	}

	flat, err := k.Classify(context.Background(), mind.StimulusText, "the train leaves at seven")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if flat.Salience != 0.2 {
		t.Fatalf("flat text salience = %v, want 0.2", flat.Salience)
	}
}

func TestKeyword_SummaryIsTruncated(t *testing.T) {
	k := NewKeyword()
	long := strings.Repeat("a", 300)
	st, _ := k.Classify(context.Background(), mind.StimulusText, long)
	if len(st.Summary) > 123 {
		t.Fatalf("summary not truncated: %d chars", len(st.Summary))
	}
	if !strings.HasSuffix(st.Summary, "...") {
		t.Fatal("truncated summary should end with ellipsis")
	}
}

func TestKeyword_TruncationKeepsValidUTF8(t *testing.T) {
	k := NewKeyword()
	// 119 ASCII bytes followed by multi-byte runes puts the byte cap mid-rune.
	long := strings.Repeat("a", 119) + strings.Repeat("é", 50)
	st, _ := k.Classify(context.Background(), mind.StimulusText, long)
	if !utf8.ValidString(st.Summary) {
		t.Fatalf("summary is not valid UTF-8: %q", st.Summary)
	}
	if !strings.HasSuffix(st.Summary, "...") {
		t.Fatal("truncated summary should end with ellipsis")
	}
}

type stallClassifier struct{}

func (stallClassifier) Classify(ctx context.Context, kind mind.StimulusKind, input string) (mind.Stimulus, error) {
	<-ctx.Done()
	return mind.Stimulus{}, ctx.Err()
}

type failClassifier struct{}

func (failClassifier) Classify(context.Context, mind.StimulusKind, string) (mind.Stimulus, error) {
	return mind.Stimulus{}, errors.New("model unavailable")
}

func TestWithTimeout_DegradesToNeutralOnStall(t *testing.T) {
	c := WithTimeout(stallClassifier{}, 20*time.Millisecond)

	st, err := c.Classify(context.Background(), mind.StimulusText, "hello there")
	if err != nil {
		t.Fatalf("timeout must degrade, not fail: %v", err)
	}
	if err := mind.ValidateStimulus(st); err != nil {
		t.Fatalf("degraded stimulus invalid: %v", err)
	}
	for _, e := range mind.AllEmotions() {
		if st.Contributions[e] != 0 {
			t.Fatalf("degraded stimulus must be neutral, %s = %v", e, st.Contributions[e])
		}
	}
	if st.Summary != "hello there" {
		t.Fatalf("summary lost in degradation: %q", st.Summary)
	}
}

func TestWithTimeout_DegradesToNeutralOnError(t *testing.T) {
	c := WithTimeout(failClassifier{}, time.Second)

	st, err := c.Classify(context.Background(), mind.StimulusText, "hello")
	if err != nil {
		t.Fatalf("collaborator error must degrade, not fail: %v", err)
	}
	if st.Salience != 0 {
		t.Fatalf("neutral fallback salience = %v, want 0", st.Salience)
	}
}

func TestWithTimeout_PassesThroughFastResults(t *testing.T) {
	c := WithTimeout(NewKeyword(), time.Second)

	st, err := c.Classify(context.Background(), mind.StimulusText, "I'm so happy!")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if st.Contributions[mind.EmotionJoy] <= 0 {
		t.Fatal("wrapper must pass the inner result through unchanged")
	}
}
