// SPDX-License-Identifier: MIT

package maxent

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/decompose"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// OptimizeDecomposed solves every connected component of set on its own
// and merges the lifted results. The distribution equals Optimize's up to
// solver tolerance; the entropy is the sum over components.
//
// Components run concurrently, at most WithConcurrency at a time. The
// first failure cancels the rest and is returned wrapped with the
// component's variables.
func OptimizeDecomposed(ctx context.Context, set *constraint.Set, opts ...Option) (*Result, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	o := gatherOptions(opts)

	subs, err := decompose.Split(set)
	if err != nil {
		return nil, fmt.Errorf("optimize decomposed: %w", err)
	}
	o.logger.WithField("components", len(subs)).Info("maxent: decomposed")

	parts := make([]*Result, len(subs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, sp := range subs {
		g.Go(func() error {
			r, err := optimize(gctx, sp.Set, o)
			if err != nil {
				return fmt.Errorf("component %v: %w", sp.Vars, err)
			}
			parts[i] = r
			o.logger.WithFields(logrus.Fields{
				"component":  sp.Vars,
				"k":          sp.Set.K(),
				"iterations": r.Iterations,
			}).Info("maxent: component solved")

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := newResult(set.VariableCount(), set.K())
	for i, sp := range subs {
		part := parts[i]
		for vv, p := range sp.Lift(part) {
			res.probs[vv] = p
		}
		if !sp.Collapsed() {
			for lp, t := range part.joints {
				gp := constraint.Pair{A: sp.Vars[lp.A], B: sp.Vars[lp.B]}
				res.joints[gp] = t
			}
		}
		res.Iterations += part.Iterations
		res.Norm = math.Max(res.Norm, part.Norm)
	}

	return res, nil
}
