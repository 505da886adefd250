// SPDX-License-Identifier: MIT

package constraint

import "errors"

var (
	// ErrBadShape is returned when VariableCount or K is not positive.
	ErrBadShape = errors.New("constraint: variable count and k must be > 0")

	// ErrVariableOutOfRange indicates a variable index outside [0, VariableCount).
	ErrVariableOutOfRange = errors.New("constraint: variable index out of range")

	// ErrValueOutOfRange indicates a value index outside [0, K).
	ErrValueOutOfRange = errors.New("constraint: value index out of range")

	// ErrSelfPair indicates a pairwise exclusion between a variable and itself.
	ErrSelfPair = errors.New("constraint: pairwise exclusion needs two distinct variables")

	// ErrUnknownKind is returned for a Constraint whose Kind is not recognised.
	ErrUnknownKind = errors.New("constraint: unknown constraint kind")

	// ErrSyntax is returned by Parse for malformed constraint text.
	ErrSyntax = errors.New("constraint: invalid syntax")
)
