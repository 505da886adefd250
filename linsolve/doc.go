// SPDX-License-Identifier: MIT

// Package linsolve solves square, possibly singular, linear systems A·x = b
// arising from Newton steps on KKT saddle-point matrices.
//
// 🚀 How it works
//
//	1. Regularise: add a small shift (default 1e-3) to A. By default the
//	   shift lands on the diagonal, signed per WithSignature so primal rows
//	   get +ε and multiplier rows −ε (a quasi-definite matrix is always
//	   factorisable). WithDenseShift adds ε to every entry instead.
//	2. Factorise the regularised matrix with partial-pivoting LU and solve.
//	3. Refine: a few sweeps of iterative refinement against the original,
//	   unregularised A, reusing the same factorisation.
//	4. Fallback: when LU fails or is too ill-conditioned, return the
//	   minimum-norm least-squares solution from a thin SVD of A, discarding
//	   singular values below rcond·σmax.
//
// Both stages failing yields ErrSingular; a non-finite result yields
// ErrNonFinite. Solve never returns a silently wrong answer.
//
// ⚙️ Usage:
//
//	x, err := linsolve.Solve(jac, rhs,
//	    linsolve.WithRegularization(1e-3),
//	    linsolve.WithSignature(sig),
//	)
//
// Complexity: O(n³) time and O(n²) memory per call.
package linsolve
