package cascade

import "fmt"

// DivergenceError reports a resolution which exhausted its pass budget
// without stabilizing. It names the offending counter or query together
// with its last two observed values, and aborts the whole document
// resolution; no partial output is produced.
type DivergenceError struct {
	Passes   int
	Subject  string // the unstable counter or query
	Previous string // the value used during the last resolution pass
	Last     string // the value recomputed after the last layout pass
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("no fixpoint after %d passes: %s oscillates (%q, then %q)",
		e.Passes, e.Subject, e.Previous, e.Last)
}
