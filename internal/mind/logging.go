package mind

import (
	"github.com/rs/zerolog"
)

// nopLogger is the default until a caller wires a real one via WithLogger.
func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// logCycle emits one line per processing cycle with the fields that matter
// when replaying a session: what came in, what state it produced, what the
// selector chose.
func logCycle(log zerolog.Logger, id string, st Stimulus, primary string, d BehaviorDecision) {
	log.Debug().
		Str("companion", id).
		Str("stimulus", string(st.Kind)).
		Float64("salience", st.Salience).
		Str("primary", primary).
		Str("action", string(d.Action)).
		Float64("confidence", d.Confidence).
		Msg("cycle")
}
