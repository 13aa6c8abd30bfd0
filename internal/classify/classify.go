// Package classify is the boundary to perception collaborators: anything that
// can turn raw input into a mind.Stimulus. The engine never learns how the
// scores were computed — a keyword heuristic and a deep model plug in the
// same way.
package classify

import (
	"context"
	"time"
	"unicode/utf8"

	"companion/internal/mind"
)

// Classifier produces a sentiment/salience vector for one unit of input.
type Classifier interface {
	Classify(ctx context.Context, kind mind.StimulusKind, input string) (mind.Stimulus, error)
}

// WithTimeout wraps a classifier so a slow collaborator degrades to a
// neutral-sentiment stimulus instead of stalling the orchestrator.
func WithTimeout(c Classifier, timeout time.Duration) Classifier {
	return &timeoutClassifier{inner: c, timeout: timeout}
}

type timeoutClassifier struct {
	inner   Classifier
	timeout time.Duration
}

func (t *timeoutClassifier) Classify(ctx context.Context, kind mind.StimulusKind, input string) (mind.Stimulus, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type result struct {
		st  mind.Stimulus
		err error
	}
	ch := make(chan result, 1)
	go func() {
		st, err := t.inner.Classify(cctx, kind, input)
		ch <- result{st, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return mind.NeutralStimulus(kind, summarize(input), time.Now()), nil
		}
		return r.st, nil
	case <-cctx.Done():
		return mind.NeutralStimulus(kind, summarize(input), time.Now()), nil
	}
}

// summarize caps the stored summary, cutting on a rune boundary so memory
// entries never carry invalid UTF-8.
func summarize(input string) string {
	const max = 120
	if len(input) <= max {
		return input
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(input[cut]) {
		cut--
	}
	return input[:cut] + "..."
}
