// SPDX-License-Identifier: MIT

// Package constraint defines the value types of a maximum-entropy problem:
// (variable, value) pairs and the two exclusion constraints.
//
// 🚀 What is modelled?
//
//	A problem has VariableCount discrete variables, each taking one of K
//	values. Two kinds of constraint restrict the joint distribution:
//	  • Unary exclusion     — not(n=v): variable n never takes value v
//	  • Pairwise exclusion  — neq(a,b): variables a and b never share a value
//
// ✨ Key features:
//   - Set deduplicates constraints and keeps insertion order (deterministic)
//   - neq(a,b) and neq(b,a) are the same constraint
//   - indices are validated against (VariableCount, K) up front
//   - textual form round-trips through Parse / String
//
// ⚙️ Usage:
//
//	set, err := constraint.NewSet(3, 25,
//	    constraint.Unary(0, 4),
//	    constraint.Pairwise(0, 1),
//	)
//	if err != nil {
//	    // ErrVariableOutOfRange, ErrValueOutOfRange, ErrSelfPair, ErrBadShape
//	}
//	set.IsExcluded(0, 3, 1, 3) // true: neq(0,1)
//
// Sets are immutable after NewSet and safe for concurrent reads.
package constraint
