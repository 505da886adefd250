// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"strconv"
	"strings"
)

// VarAndValue is an immutable (variable, value) pair. Both indices are
// zero-based; the pair is comparable and used as a map key throughout.
type VarAndValue struct {
	Var   int // variable index in [0, VariableCount)
	Value int // value index in [0, K)
}

// String renders the pair as "n=v".
func (vv VarAndValue) String() string {
	return strconv.Itoa(vv.Var) + "=" + strconv.Itoa(vv.Value)
}

// Enumerate lists every (variable, value) pair with variable in [from, to)
// and value in [0, k), variable-major. It returns nil when the range is empty.
// Complexity: O((to-from)·k).
func Enumerate(from, to, k int) []VarAndValue {
	if to <= from || k <= 0 {
		return nil
	}
	out := make([]VarAndValue, 0, (to-from)*k)
	for n := from; n < to; n++ {
		for v := 0; v < k; v++ {
			out = append(out, VarAndValue{Var: n, Value: v})
		}
	}

	return out
}

// Kind tags the active variant of a Constraint.
type Kind int

const (
	// PairwiseExclusion forbids two variables from taking equal values.
	PairwiseExclusion Kind = iota + 1

	// UnaryExclusion forbids one variable from taking one value.
	UnaryExclusion
)

// String returns the textual keyword of the kind.
func (k Kind) String() string {
	switch k {
	case PairwiseExclusion:
		return "neq"
	case UnaryExclusion:
		return "not"
	default:
		return "unknown"
	}
}

// Constraint is a tagged union of the two exclusion kinds.
//
//   - Kind == PairwiseExclusion: A and B hold the two variables, A < B.
//   - Kind == UnaryExclusion:    Target holds the excluded (variable, value).
//
// Construct values with Pairwise and Unary; the zero Constraint is invalid.
// Constraint is comparable, so it deduplicates naturally in maps.
type Constraint struct {
	Kind   Kind
	A, B   int
	Target VarAndValue
}

// Pairwise returns neq(a,b). The endpoints are normalised so that
// Pairwise(a,b) == Pairwise(b,a).
func Pairwise(a, b int) Constraint {
	if b < a {
		a, b = b, a
	}

	return Constraint{Kind: PairwiseExclusion, A: a, B: b}
}

// Unary returns not(n=v).
func Unary(n, v int) Constraint {
	return Constraint{Kind: UnaryExclusion, Target: VarAndValue{Var: n, Value: v}}
}

// String renders the constraint in the form accepted by Parse.
func (c Constraint) String() string {
	switch c.Kind {
	case PairwiseExclusion:
		return fmt.Sprintf("neq(%d,%d)", c.A, c.B)
	case UnaryExclusion:
		return fmt.Sprintf("not(%d=%d)", c.Target.Var, c.Target.Value)
	default:
		return "unknown()"
	}
}

// Pair is an unordered pair of variables that needs its joint distribution
// tracked explicitly. A < B always holds.
type Pair struct {
	A, B int
}

// Other returns the member of p that is not n, and whether n belongs to p.
func (p Pair) Other(n int) (int, bool) {
	switch n {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	default:
		return 0, false
	}
}

// Parse reads a single constraint in one of the forms
//
//	neq(a,b)   pairwise exclusion
//	not(n=v)   unary exclusion
//
// Whitespace around tokens is ignored. Indices are not range checked here;
// NewSet does that once the problem shape is known.
func Parse(s string) (Constraint, error) {
	text := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrSyntax)
	}
	head, body := text[:open], text[open+1:len(text)-1]

	switch head {
	case "neq":
		left, right, ok := strings.Cut(body, ",")
		if !ok {
			return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrSyntax)
		}
		a, errA := strconv.Atoi(left)
		b, errB := strconv.Atoi(right)
		if errA != nil || errB != nil {
			return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrSyntax)
		}

		return Pairwise(a, b), nil
	case "not":
		left, right, ok := strings.Cut(body, "=")
		if !ok {
			return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrSyntax)
		}
		n, errN := strconv.Atoi(left)
		v, errV := strconv.Atoi(right)
		if errN != nil || errV != nil {
			return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrSyntax)
		}

		return Unary(n, v), nil
	default:
		return Constraint{}, fmt.Errorf("Parse(%q): %w", s, ErrUnknownKind)
	}
}

// ParseAll parses every entry of texts, stopping at the first error.
func ParseAll(texts []string) ([]Constraint, error) {
	out := make([]Constraint, 0, len(texts))
	for _, t := range texts {
		c, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}
