// SPDX-License-Identifier: MIT

// Package newton drives a Newton–Raphson iteration for square nonlinear
// systems F(x) = 0 given analytic residuals and Jacobians.
//
// Each iteration solves J(x)·Δ = F(x) with package linsolve and moves to
// x − rate·Δ (rate 1 by default). The loop stops as soon as ‖F(x)‖₂ drops
// below the tolerance.
//
// Safeguards on top of the plain step:
//   - an iteration cap (ErrNotConverged when exceeded);
//   - a monotonicity check: the step is halved until the residual norm
//     decreases (ErrStalled when no halving helps);
//   - for systems implementing Bounded, the step is truncated so that the
//     listed coordinates stay strictly positive (fraction to boundary);
//   - for systems implementing Signed, the linear solver receives the
//     saddle-point signature for its regularisation.
//
// Linear-solve failures surface as ErrNumerical, distinct from the two
// non-convergence errors.
package newton
