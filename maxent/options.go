// SPDX-License-Identifier: MIT

package maxent

import (
	"io"

	"github.com/katalvlaran/maxent/linsolve"
	"github.com/katalvlaran/maxent/newton"
	"github.com/sirupsen/logrus"
)

// DefaultConcurrency bounds the components solved at once by
// OptimizeDecomposed.
const DefaultConcurrency = 4

const panicConcurrencyInvalid = "maxent: WithConcurrency: n must be > 0"

// Option configures Optimize and OptimizeDecomposed.
type Option func(*Options)

// Options is the resolved optimizer configuration.
type Options struct {
	logger      logrus.FieldLogger
	newton      []newton.Option
	concurrency int
}

// WithLogger routes optimizer and Newton diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTolerance sets the residual norm at which Newton stops.
func WithTolerance(tol float64) Option {
	nopt := newton.WithTolerance(tol)

	return func(o *Options) { o.newton = append(o.newton, nopt) }
}

// WithMaxIterations caps the Newton steps.
func WithMaxIterations(n int) Option {
	nopt := newton.WithMaxIterations(n)

	return func(o *Options) { o.newton = append(o.newton, nopt) }
}

// WithRegularization sets the diagonal shift of every linear solve.
func WithRegularization(eps float64) Option {
	lopt := linsolve.WithRegularization(eps)

	return func(o *Options) {
		o.newton = append(o.newton, newton.WithSolverOptions(lopt))
	}
}

// WithNewtonOptions forwards raw options to newton.Solve.
func WithNewtonOptions(opts ...newton.Option) Option {
	return func(o *Options) { o.newton = append(o.newton, opts...) }
}

// WithConcurrency bounds the parallel component solves.
func WithConcurrency(n int) Option {
	if n <= 0 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.concurrency = n }
}

func gatherOptions(opts []Option) Options {
	o := Options{concurrency: DefaultConcurrency}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}

	return o
}

// newtonOptions returns the Newton options with the logger prepended so an
// explicit newton.WithLogger still wins.
func (o Options) newtonOptions() []newton.Option {
	return append([]newton.Option{newton.WithLogger(o.logger)}, o.newton...)
}
