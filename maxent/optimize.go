// SPDX-License-Identifier: MIT

package maxent

import (
	"context"
	"fmt"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/kkt"
	"github.com/katalvlaran/maxent/newton"
	"github.com/sirupsen/logrus"
)

// Optimize returns the maximum-entropy distribution allowed by set.
//
// Implementation:
//   - Stage 1: build the KKT model (kkt.New).
//   - Stage 2: run Newton from newton.DefaultStart on every unknown.
//   - Stage 3: read each pair's joint table off the solved vector.
//   - Stage 4: marginal of a paired variable = row (or column) sums of the
//     table shared with its first partner; unpaired variables are uniform.
//
// Errors: ErrNilSet, kkt.ErrInfeasible, newton.ErrNotConverged,
// newton.ErrStalled, newton.ErrNumerical, or ctx.Err(), wrapped.
//
// Complexity: O(iterations · n³) with n = unknowns (dense LU per step).
func Optimize(ctx context.Context, set *constraint.Set, opts ...Option) (*Result, error) {
	if set == nil {
		return nil, ErrNilSet
	}

	return optimize(ctx, set, gatherOptions(opts))
}

func optimize(ctx context.Context, set *constraint.Set, o Options) (*Result, error) {
	// Stage 1: model
	m, err := kkt.New(set)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	log := o.logger.WithFields(logrus.Fields{"variables": set.VariableCount(), "k": set.K()})
	log.WithFields(logrus.Fields{
		"unknowns":    m.Len(),
		"joints":      m.Count(kkt.JointProbability),
		"consistency": m.Count(kkt.MarginalConsistency),
	}).Debug("maxent: model built")

	res := newResult(set.VariableCount(), set.K())

	// Stage 2: solve
	var x []float64
	if m.Len() > 0 {
		sol, err := newton.Solve(ctx, m, newton.Fill(m.Len(), newton.DefaultStart), o.newtonOptions()...)
		if err != nil {
			return nil, fmt.Errorf("optimize: %w", err)
		}
		x = sol.X
		res.Iterations, res.Norm, res.Trace = sol.Iterations, sol.Norm, sol.Trace
	}

	// Stage 3: joint tables
	k := set.K()
	pairs := m.Pairs()
	for pi, p := range pairs {
		t := make([]float64, k*k)
		for _, j := range m.Joints(pi) {
			nd := m.Node(j)
			t[nd.A.Value*k+nd.B.Value] = x[j]
		}
		normalize(t)
		res.joints[p] = t
	}

	// Stage 4: marginals
	for n := 0; n < set.VariableCount(); n++ {
		other, ok := m.Partner(n)
		if !ok {
			continue
		}
		p := constraint.Pair{A: min(n, other), B: max(n, other)}
		t := res.joints[p]
		marg := make([]float64, k)
		for va := 0; va < k; va++ {
			for vb := 0; vb < k; vb++ {
				if n == p.A {
					marg[va] += t[va*k+vb]
				} else {
					marg[vb] += t[va*k+vb]
				}
			}
		}
		res.setMarginal(n, marg)
	}
	for vv, p := range m.Uniform() {
		res.probs[vv] = p
	}

	log.WithFields(logrus.Fields{
		"iterations": res.Iterations,
		"norm":       res.Norm,
	}).Debug("maxent: solved")

	return res, nil
}
