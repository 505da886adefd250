// SPDX-License-Identifier: MIT

// Package maxent computes the maximum-entropy distribution of discrete
// variables under unary and pairwise exclusion constraints.
//
// 🚀 Quick start
//
//	set, _ := constraint.NewSet(3, 25,
//	    constraint.Unary(0, 4),
//	    constraint.Pairwise(0, 1),
//	)
//	res, err := maxent.Optimize(ctx, set)
//	p := res.VarProb(0, 3)
//	h := res.Entropy()
//
// ✨ Pipeline
//
//	constraint.Set → kkt.Model → newton.Solve (linsolve per step)
//	  → solved vector → per-(variable, value) marginals → Result
//
//	Marginals of a paired variable are read through its first partner;
//	the consistency multipliers make every partner agree. Unpaired
//	variables are uniform over their admissible values and never enter
//	the Newton solve.
//
// ⚙️ Options
//
//	WithTolerance, WithMaxIterations, WithRegularization tune the solve;
//	WithLogger routes diagnostics; WithConcurrency bounds the parallel
//	component solves of OptimizeDecomposed.
package maxent
