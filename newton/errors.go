// SPDX-License-Identifier: MIT

package newton

import "errors"

var (
	// ErrEmpty is returned for a zero-length starting point.
	ErrEmpty = errors.New("newton: empty starting point")

	// ErrDimensionMismatch indicates a residual or Jacobian whose size
	// differs from the unknown vector.
	ErrDimensionMismatch = errors.New("newton: dimension mismatch")

	// ErrInfeasibleStart indicates a Bounded coordinate that is not
	// strictly positive at the starting point.
	ErrInfeasibleStart = errors.New("newton: starting point violates positivity")

	// ErrNumerical wraps linear-solve failures and non-finite residuals.
	ErrNumerical = errors.New("newton: numerical failure")

	// ErrNotConverged is returned when the iteration cap is reached.
	ErrNotConverged = errors.New("newton: iteration limit reached")

	// ErrStalled is returned when no step length reduces the residual norm.
	ErrStalled = errors.New("newton: residual norm stopped decreasing")
)
