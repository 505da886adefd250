// SPDX-License-Identifier: MIT

package linsolve

import "errors"

var (
	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("linsolve: nil matrix")

	// ErrNonSquare signals that A is not square.
	ErrNonSquare = errors.New("linsolve: matrix is not square")

	// ErrDimensionMismatch indicates len(b) differs from the order of A.
	ErrDimensionMismatch = errors.New("linsolve: dimension mismatch")

	// ErrSingular is returned when both the LU solve and the SVD
	// least-squares fallback fail.
	ErrSingular = errors.New("linsolve: singular system")

	// ErrNonFinite is returned when the computed solution holds NaN or ±Inf.
	ErrNonFinite = errors.New("linsolve: non-finite solution")
)
