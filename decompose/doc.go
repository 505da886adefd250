// SPDX-License-Identifier: MIT

// Package decompose splits a constraint set into independent sub-problems,
// one per connected component of the "shares a pairwise exclusion" graph.
//
// 🚀 What it does
//
//	Split(set) → []*SubProblem
//	  • variables of a component are renumbered 0..m-1 in ascending global order
//	  • a component without pairwise exclusions (a single variable) keeps only
//	    the values its unary exclusions mention and folds every other value
//	    into one trailing bucket
//	  • SubProblem.Lift maps a local distribution back to global indices,
//	    spreading a bucket's mass evenly over its members
//
// ✨ Why it is exact
//
//	Components share no constraint, so the maximum-entropy distribution
//	factorises over them and the total entropy is the sum over components.
//	Values are only folded where no pairwise exclusion can tell them apart.
package decompose
