// SPDX-License-Identifier: MIT

package newton

import (
	"io"
	"math"

	"github.com/katalvlaran/maxent/linsolve"
	"github.com/sirupsen/logrus"
)

// ---------- Defaults ----------

const (
	// DefaultTolerance is the residual norm below which the iteration stops.
	DefaultTolerance = 1e-2

	// DefaultMaxIterations caps the number of Newton steps.
	DefaultMaxIterations = 200

	// DefaultRate is the step multiplier of a plain Newton step.
	DefaultRate = 1.0

	// DefaultMaxBacktracks bounds the step halvings of the monotonicity check.
	DefaultMaxBacktracks = 30

	// DefaultStart is the value every unknown starts from.
	DefaultStart = 0.5
)

const (
	// boundaryFraction keeps positive coordinates at least this share of
	// their distance to zero away from it after a step.
	boundaryFraction = 0.995

	// backtrackFactor shrinks the step on each failed monotonicity check.
	backtrackFactor = 0.5
)

const (
	panicToleranceInvalid = "newton: WithTolerance: tol must be finite, > 0"
	panicMaxIterInvalid   = "newton: WithMaxIterations: n must be > 0"
	panicRateInvalid      = "newton: WithRate: rate must be in (0,1]"
	panicBacktrackInvalid = "newton: WithMaxBacktracks: n must be >= 0"
)

// Option configures Solve.
type Option func(*Options)

// Options is the resolved iteration configuration.
type Options struct {
	tol           float64
	maxIter       int
	rate          float64
	maxBacktracks int
	monotone      bool
	logger        logrus.FieldLogger
	solver        []linsolve.Option
}

// WithTolerance sets the convergence threshold on ‖F(x)‖₂.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithRate sets the initial step multiplier.
func WithRate(rate float64) Option {
	if !(rate > 0 && rate <= 1) {
		panic(panicRateInvalid)
	}

	return func(o *Options) { o.rate = rate }
}

// WithMaxBacktracks bounds the step halvings per iteration.
func WithMaxBacktracks(n int) Option {
	if n < 0 {
		panic(panicBacktrackInvalid)
	}

	return func(o *Options) { o.maxBacktracks = n }
}

// WithMonotone toggles the monotonicity check. When off, every step is
// taken at the (boundary-truncated) rate regardless of the residual.
func WithMonotone(on bool) Option {
	return func(o *Options) { o.monotone = on }
}

// WithLogger routes per-iteration diagnostics to l at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSolverOptions forwards options to every linear solve.
func WithSolverOptions(opts ...linsolve.Option) Option {
	return func(o *Options) { o.solver = append(o.solver, opts...) }
}

func gatherOptions(opts []Option) Options {
	o := Options{
		tol:           DefaultTolerance,
		maxIter:       DefaultMaxIterations,
		rate:          DefaultRate,
		maxBacktracks: DefaultMaxBacktracks,
		monotone:      true,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}

	return o
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
