package cascade

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/introspect"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/resolve"
	"github.com/npillmayer/cascade/rules"
)

// DefaultMaxPasses is the driver's pass budget if none is configured.
// Well-behaved documents stabilize within two or three passes; rule sets
// which do not stabilize within the budget are reported as diverging.
const DefaultMaxPasses = 5

// phase is the driver's state-machine state.
type phase int8

const (
	initial phase = iota
	resolving
	layingOut
	checking
	converged
	diverged
)

func (ph phase) String() string {
	return [...]string{"initial", "resolving", "laying-out", "checking", "converged", "diverged"}[ph]
}

// Driver orchestrates the bounded fixpoint iteration over resolution and
// layout. Passes are strictly sequential: pass N+1 never starts before pass
// N's layout has fully returned, and there is no cancellation mid-pass; a
// pass either completes or the whole resolution fails.
//
// The driver exclusively owns the location registry and the introspection
// log for the duration of a pass and rebuilds both between passes, so each
// pass sees a consistent snapshot.
type Driver struct {
	layouter  Layouter
	maxPasses int
	phase     phase
}

// Option configures a Driver.
type Option func(*Driver)

// MaxPasses sets the pass budget.
func MaxPasses(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxPasses = n
		}
	}
}

// NewDriver creates a fixpoint driver on top of a layout collaborator.
func NewDriver(l Layouter, opts ...Option) *Driver {
	d := &Driver{layouter: l, maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result is the outcome of a converged resolution.
type Result struct {
	Tree         *content.Node            // the final resolved tree
	Frames       []Frame                  // geometry of the final layout pass
	Introspector *introspect.Introspector // final counter and query state
	Passes       int                      // number of passes until convergence
}

// delta describes one introspected value which changed between a resolution
// pass and the subsequent layout.
type delta struct {
	subject        string
	previous, last string
}

// Process resolves a document to a fixpoint. root registers the
// document-wide rules with the outermost scope of the style chain;
// rules inside styled blocks of the tree are registered by the dispatcher
// as their scopes are entered.
//
// Counter and query results are final only in the returned Result. If the
// pass budget is exhausted without stabilization, Process returns a
// DivergenceError and no partial output.
func (d *Driver) Process(doc *content.Node, root rules.ScopeFunc) (*Result, error) {
	if d.layouter == nil {
		return nil, errors.New("driver has no layouter")
	}
	d.phase = initial
	registry := locate.NewRegistry()
	snapshot := introspect.Empty()
	var last delta
	for pass := 1; pass <= d.maxPasses; pass++ {
		d.phase = resolving
		tracer().P("pass", pass).Debugf("state %s", d.phase)
		registry.Reset()
		log := introspect.NewLog()
		chain := rules.NewChain()
		if root != nil {
			if err := root(chain); err != nil {
				return nil, err
			}
		}
		rt := &resolve.Runtime{
			Registry: registry,
			Session:  introspect.NewSession(snapshot, log),
		}
		resolved, err := resolve.Resolve(doc, chain, rt)
		if err != nil {
			return nil, err
		}
		d.phase = layingOut
		frames, err := d.layouter.Layout(resolved, pass)
		if err != nil {
			return nil, err
		}
		order := make([]locate.Location, len(frames))
		for i, f := range frames {
			order[i] = f.Loc
		}
		d.phase = checking
		next := introspect.Freeze(log, order)
		change := firstChange(log.Observations(), next)
		if change == nil {
			d.phase = converged
			tracer().P("pass", pass).Debugf("state %s", d.phase)
			return &Result{
				Tree:         resolved,
				Frames:       frames,
				Introspector: next,
				Passes:       pass,
			}, nil
		}
		tracer().P("pass", pass).Debugf("%s changed from %q to %q, rerunning",
			change.subject, change.previous, change.last)
		last = *change
		snapshot = next
	}
	d.phase = diverged
	return nil, &DivergenceError{
		Passes:   d.maxPasses,
		Subject:  last.subject,
		Previous: last.previous,
		Last:     last.last,
	}
}

// firstChange replays the pass's observations against the freshly frozen
// snapshot. The first deviating value proves the pass has not converged.
func firstChange(observations []introspect.Observation, next *introspect.Introspector) *delta {
	for _, obs := range observations {
		now := next.Recompute(obs)
		if now != obs.Value {
			return &delta{subject: obs.Subject(), previous: obs.Value, last: now}
		}
	}
	return nil
}
