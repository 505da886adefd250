// SPDX-License-Identifier: MIT

package linsolve

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRegularization is the shift ε added to A before factorising.
	DefaultRegularization = 1e-3

	// DefaultRcond is the relative singular-value cut-off of the SVD fallback.
	DefaultRcond = 1e-10

	// DefaultRefinements is the number of iterative-refinement sweeps.
	DefaultRefinements = 3

	// DefaultMaxCondition rejects LU factorisations whose estimated
	// condition number exceeds it, sending the solve to the SVD fallback.
	DefaultMaxCondition = 1e13

	// DefaultAcceptance is the largest relative residual ‖b − A·x‖/‖b‖ an
	// LU solution may keep after refinement; above it the SVD decides.
	DefaultAcceptance = 1e-4
)

const (
	panicRegularizationInvalid = "linsolve: WithRegularization: eps must be finite, non-negative"
	panicRcondInvalid          = "linsolve: WithRcond: rcond must be finite, in [0,1)"
	panicRefinementsInvalid    = "linsolve: WithRefinements: n must be >= 0"
	panicMaxConditionInvalid   = "linsolve: WithMaxCondition: limit must be > 1"
	panicAcceptanceInvalid     = "linsolve: WithAcceptance: tol must be finite, > 0"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the resolved solver configuration.
type Options struct {
	reg         float64   // shift magnitude
	dense       bool      // add shift to every entry instead of the diagonal
	signature   []float64 // per-row sign of the diagonal shift (nil => all +1)
	rcond       float64   // SVD relative cut-off
	refinements int       // iterative refinement sweeps
	maxCond     float64   // LU condition limit
	accept      float64   // LU relative residual limit
}

// WithRegularization sets the shift ε. Zero disables regularisation.
func WithRegularization(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicRegularizationInvalid)
	}

	return func(o *Options) { o.reg = eps }
}

// WithDenseShift adds ε to every entry of A rather than to its diagonal.
// This is the crude rank-one shift; it does not cure rank deficiency
// beyond one dimension and mostly relies on the SVD fallback.
func WithDenseShift() Option {
	return func(o *Options) { o.dense = true }
}

// WithSignature sets the sign of the diagonal shift per row: entries > 0
// receive +ε, entries < 0 receive −ε, zero entries receive nothing.
// A signature of the wrong length is ignored at solve time.
func WithSignature(sig []float64) Option {
	return func(o *Options) { o.signature = sig }
}

// WithRcond sets the relative singular-value cut-off of the SVD fallback.
func WithRcond(rcond float64) Option {
	if rcond < 0 || rcond >= 1 || math.IsNaN(rcond) {
		panic(panicRcondInvalid)
	}

	return func(o *Options) { o.rcond = rcond }
}

// WithRefinements sets the number of iterative refinement sweeps.
func WithRefinements(n int) Option {
	if n < 0 {
		panic(panicRefinementsInvalid)
	}

	return func(o *Options) { o.refinements = n }
}

// WithMaxCondition sets the largest LU condition estimate accepted before
// falling back to the SVD.
func WithMaxCondition(limit float64) Option {
	if !(limit > 1) {
		panic(panicMaxConditionInvalid)
	}

	return func(o *Options) { o.maxCond = limit }
}

// WithAcceptance sets the relative residual an LU solution must reach after
// refinement to be returned.
func WithAcceptance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(panicAcceptanceInvalid)
	}

	return func(o *Options) { o.accept = tol }
}

func gatherOptions(opts []Option) Options {
	o := Options{
		reg:         DefaultRegularization,
		rcond:       DefaultRcond,
		refinements: DefaultRefinements,
		maxCond:     DefaultMaxCondition,
		accept:      DefaultAcceptance,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
