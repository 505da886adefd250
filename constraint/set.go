// SPDX-License-Identifier: MIT

package constraint

import "fmt"

// Set is a validated, deduplicated collection of constraints bound to a
// problem shape (VariableCount, K). Insertion order is preserved and drives
// every downstream iteration order, which keeps solves deterministic.
type Set struct {
	variableCount int
	k             int

	list   []Constraint             // unique constraints, insertion order
	pairs  map[Pair]struct{}        // pairwise exclusions, A < B
	unary  map[VarAndValue]struct{} // unary exclusions
	joints []Pair                   // pairwise exclusions, discovery order
}

// NewSet validates cs against the shape and returns an immutable Set.
//
// Implementation:
//   - Stage 1: validate shape (variableCount > 0, k > 0).
//   - Stage 2: validate every index and the A != B rule for pairwise entries.
//   - Stage 3: deduplicate, keeping the first occurrence.
//
// Errors: ErrBadShape, ErrVariableOutOfRange, ErrValueOutOfRange,
// ErrSelfPair, ErrUnknownKind; each wrapped with the offending constraint.
//
// Complexity: O(len(cs)) time and memory.
func NewSet(variableCount, k int, cs ...Constraint) (*Set, error) {
	// Stage 1: shape
	if variableCount <= 0 || k <= 0 {
		return nil, fmt.Errorf("NewSet(%d,%d): %w", variableCount, k, ErrBadShape)
	}

	s := &Set{
		variableCount: variableCount,
		k:             k,
		pairs:         make(map[Pair]struct{}),
		unary:         make(map[VarAndValue]struct{}),
	}

	seen := make(map[Constraint]struct{}, len(cs))
	for _, c := range cs {
		// Stage 2: indices
		if err := s.validate(c); err != nil {
			return nil, fmt.Errorf("NewSet: %s: %w", c, err)
		}
		// Stage 3: dedupe
		if c.Kind == PairwiseExclusion && c.B < c.A {
			c = Pairwise(c.A, c.B)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		s.list = append(s.list, c)

		switch c.Kind {
		case PairwiseExclusion:
			p := Pair{A: c.A, B: c.B}
			s.pairs[p] = struct{}{}
			s.joints = append(s.joints, p)
		case UnaryExclusion:
			s.unary[c.Target] = struct{}{}
		}
	}

	return s, nil
}

func (s *Set) validate(c Constraint) error {
	switch c.Kind {
	case PairwiseExclusion:
		if !s.validVar(c.A) || !s.validVar(c.B) {
			return ErrVariableOutOfRange
		}
		if c.A == c.B {
			return ErrSelfPair
		}
	case UnaryExclusion:
		if !s.validVar(c.Target.Var) {
			return ErrVariableOutOfRange
		}
		if c.Target.Value < 0 || c.Target.Value >= s.k {
			return ErrValueOutOfRange
		}
	default:
		return ErrUnknownKind
	}

	return nil
}

func (s *Set) validVar(n int) bool { return n >= 0 && n < s.variableCount }

// VariableCount returns the number of variables of the problem.
func (s *Set) VariableCount() int { return s.variableCount }

// K returns the domain size shared by every variable.
func (s *Set) K() int { return s.k }

// Len returns the number of distinct constraints.
func (s *Set) Len() int { return len(s.list) }

// Constraints returns a copy of the distinct constraints in insertion order.
func (s *Set) Constraints() []Constraint {
	out := make([]Constraint, len(s.list))
	copy(out, s.list)

	return out
}

// Contains reports whether c (normalised) is a member of the set.
func (s *Set) Contains(c Constraint) bool {
	switch c.Kind {
	case PairwiseExclusion:
		_, ok := s.pairs[Pair{A: min(c.A, c.B), B: max(c.A, c.B)}]
		return ok
	case UnaryExclusion:
		_, ok := s.unary[c.Target]
		return ok
	default:
		return false
	}
}

// RequiredJoints returns the variable pairs whose joint distribution must be
// tracked explicitly, one per pairwise exclusion, in discovery order.
func (s *Set) RequiredJoints() []Pair {
	out := make([]Pair, len(s.joints))
	copy(out, s.joints)

	return out
}

// HasPair reports whether neq(a,b) is in the set, in either order.
func (s *Set) HasPair(a, b int) bool {
	_, ok := s.pairs[Pair{A: min(a, b), B: max(a, b)}]
	return ok
}

// IsUnaryExcluded reports whether not(vv) is in the set.
func (s *Set) IsUnaryExcluded(vv VarAndValue) bool {
	_, ok := s.unary[vv]
	return ok
}

// IsExcluded reports whether the joint outcome (varA=valA, varB=valB) is
// forbidden: either both values are equal and neq(varA,varB) holds, or one
// of the halves is unary-excluded.
// Complexity: O(1).
func (s *Set) IsExcluded(varA, valA, varB, valB int) bool {
	if valA == valB && s.HasPair(varA, varB) {
		return true
	}

	return s.IsUnaryExcluded(VarAndValue{Var: varA, Value: valA}) ||
		s.IsUnaryExcluded(VarAndValue{Var: varB, Value: valB})
}

// Allowed returns the values of variable n that are not unary-excluded,
// ascending.
func (s *Set) Allowed(n int) []int {
	out := make([]int, 0, s.k)
	for v := 0; v < s.k; v++ {
		if !s.IsUnaryExcluded(VarAndValue{Var: n, Value: v}) {
			out = append(out, v)
		}
	}

	return out
}

// Paired reports whether variable n occurs in at least one pairwise exclusion.
func (s *Set) Paired(n int) bool {
	for _, p := range s.joints {
		if p.A == n || p.B == n {
			return true
		}
	}

	return false
}
