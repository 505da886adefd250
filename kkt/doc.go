// SPDX-License-Identifier: MIT

// Package kkt builds the Karush–Kuhn–Tucker system of the constrained
// maximum-entropy problem and evaluates its residual and Jacobian.
//
// 🚀 Unknown vector
//
//	The unknowns live in one flat vector; every position is a Node:
//	  • JointProbability        — p(a=va, b=vb) for a pair under neq(a,b)
//	  • NormalizationMultiplier — λ for Σ p = 1 over one pair
//	  • MarginalConsistency     — μ for Σ p(a=v, ·∈X) = Σ p(a=v, ·∈Y)
//	                              when variable a is paired with X and Y
//
//	Nodes refer to each other by integer index only (arena + index), so
//	the graph has no pointers and is immutable after New.
//
// Stationarity of the Lagrangian −Σ p ln p + Σ λ·(linear constraints) gives,
// per node type,
//
//	joint i:          c·(ln x[i] + 1) + Σ x[normalizers] − Σ x[negated] = 0
//	normalization i:  Σ x[members] − 1 = 0
//	consistency i:    Σ x[positive] − Σ x[negative] = 0
//
// with c = EntropyCoefficient. The Jacobian is 1/x[i]·c on the joint
// diagonal and ±1 between joint nodes and the multipliers listing them.
//
// Variables that are not paired never enter the vector; their marginal is
// uniform over their admissible values (see Model.Uniform).
package kkt
