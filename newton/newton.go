// SPDX-License-Identifier: MIT

package newton

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/maxent/linsolve"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// System is a square nonlinear system with an analytic Jacobian.
// Residual and Jacobian must not retain or modify x.
type System interface {
	// Residual returns F(x); len(F(x)) == len(x).
	Residual(x []float64) []float64

	// Jacobian returns ∂F/∂x at x as a len(x)×len(x) matrix.
	Jacobian(x []float64) *mat.Dense
}

// Bounded systems list the coordinates that must stay strictly positive.
type Bounded interface {
	Positive() []int
}

// Signed systems provide the per-row sign of the solver regularisation.
type Signed interface {
	Signature() []float64
}

// Result is the outcome of Solve. On ErrNotConverged and ErrStalled it
// still holds the last iterate.
type Result struct {
	X          []float64 // final iterate
	Norm       float64   // ‖F(X)‖₂
	Iterations int       // accepted Newton steps
	Trace      []float64 // residual norm after each step, starting point first
}

// Fill returns a slice of n copies of v; Fill(n, DefaultStart) is the
// canonical starting point.
func Fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// Solve runs the Newton iteration on sys from x0 (x0 is not modified).
//
// Implementation:
//   - Stage 1: validate the start (length, positivity of Bounded coordinates).
//   - Stage 2: loop: stop when ‖F‖ < tol; otherwise solve J·Δ = F.
//   - Stage 3: truncate the rate so Bounded coordinates stay positive.
//   - Stage 4: halve the rate until ‖F‖ decreases (monotone mode).
//
// Errors: ErrEmpty, ErrDimensionMismatch, ErrInfeasibleStart, ErrNumerical,
// ErrNotConverged, ErrStalled, or ctx.Err() wrapped.
//
// Complexity: O(iterations · n³) dominated by the linear solves.
func Solve(ctx context.Context, sys System, x0 []float64, opts ...Option) (*Result, error) {
	// Stage 1: validate
	n := len(x0)
	if n == 0 {
		return nil, ErrEmpty
	}
	o := gatherOptions(opts)

	var positive []int
	if b, ok := sys.(Bounded); ok {
		positive = b.Positive()
	}
	solverOpts := o.solver
	if s, ok := sys.(Signed); ok {
		solverOpts = append([]linsolve.Option{linsolve.WithSignature(s.Signature())}, solverOpts...)
	}

	x := append([]float64(nil), x0...)
	for _, i := range positive {
		if i < 0 || i >= n || !(x[i] > 0) {
			return nil, fmt.Errorf("coordinate %d: %w", i, ErrInfeasibleStart)
		}
	}

	f := sys.Residual(x)
	if len(f) != n {
		return nil, fmt.Errorf("residual length %d, want %d: %w", len(f), n, ErrDimensionMismatch)
	}
	norm := floats.Norm(f, 2)
	if !isFinite(norm) {
		return nil, fmt.Errorf("residual at start: %w", ErrNumerical)
	}

	res := &Result{X: x, Norm: norm, Trace: []float64{norm}}
	log := o.logger.WithField("unknowns", n)
	log.WithField("norm", norm).Debug("newton: start")

	// Stage 2: iterate
	for iter := 0; ; iter++ {
		if norm < o.tol {
			log.WithFields(logrus.Fields{"iterations": iter, "norm": norm}).Debug("newton: converged")
			return res, nil
		}
		if iter >= o.maxIter {
			return res, fmt.Errorf("after %d iterations, norm %g: %w", iter, norm, ErrNotConverged)
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("newton: iteration %d: %w", iter, err)
		}

		jac := sys.Jacobian(x)
		if r, c := jac.Dims(); r != n || c != n {
			return res, fmt.Errorf("jacobian %dx%d, want %dx%d: %w", r, c, n, n, ErrDimensionMismatch)
		}
		delta, info, err := linsolve.SolveInfo(jac, f, solverOpts...)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w: %w", iter, ErrNumerical, err)
		}

		// Stage 3: fraction to boundary
		rate := math.Min(o.rate, maxRate(x, delta, positive))

		// Stage 4: monotone step
		cand := make([]float64, n)
		accepted := false
		var candF []float64
		var candNorm float64
		for bt := 0; bt <= o.maxBacktracks; bt++ {
			floats.AddScaledTo(cand, x, -rate, delta)
			candF = sys.Residual(cand)
			candNorm = floats.Norm(candF, 2)
			if isFinite(candNorm) && (!o.monotone || candNorm < norm) {
				accepted = true
				break
			}
			rate *= backtrackFactor
		}
		if !accepted {
			if !isFinite(candNorm) && !o.monotone {
				return res, fmt.Errorf("iteration %d: non-finite residual: %w", iter, ErrNumerical)
			}
			return res, fmt.Errorf("iteration %d, norm %g: %w", iter, norm, ErrStalled)
		}

		x, f, norm = cand, candF, candNorm
		res.X, res.Norm = x, norm
		res.Iterations++
		res.Trace = append(res.Trace, norm)
		log.WithFields(logrus.Fields{
			"iteration": iter + 1,
			"norm":      norm,
			"rate":      rate,
			"method":    info.Method.String(),
		}).Debug("newton: step")
	}
}

// maxRate returns the largest rate ≤ 1 keeping every positive coordinate of
// x − rate·Δ above (1−boundaryFraction)·x.
func maxRate(x, delta []float64, positive []int) float64 {
	limit := 1.0
	for _, i := range positive {
		if delta[i] > 0 {
			limit = math.Min(limit, boundaryFraction*x[i]/delta[i])
		}
	}

	return limit
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
