// SPDX-License-Identifier: MIT

package kkt

import "errors"

var (
	// ErrNilSet indicates a nil constraint set.
	ErrNilSet = errors.New("kkt: nil constraint set")

	// ErrInfeasible is returned when a required pair has no admissible joint
	// outcome, or a variable has no admissible value at all.
	ErrInfeasible = errors.New("kkt: infeasible constraint set")
)
