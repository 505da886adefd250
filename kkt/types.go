// SPDX-License-Identifier: MIT

package kkt

import "github.com/katalvlaran/maxent/constraint"

// EntropyCoefficient scales the entropy term of the Lagrangian.
const EntropyCoefficient = 1.0

// NodeKind tags the variant of a Node.
type NodeKind int

const (
	// JointProbability is a primal unknown: mass on one joint outcome.
	JointProbability NodeKind = iota + 1

	// NormalizationMultiplier enforces Σ members = 1 for one pair.
	NormalizationMultiplier

	// MarginalConsistency enforces Σ positive = Σ negative.
	MarginalConsistency
)

// String returns a short name of the kind.
func (k NodeKind) String() string {
	switch k {
	case JointProbability:
		return "joint"
	case NormalizationMultiplier:
		return "normalization"
	case MarginalConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Node is one position of the unknown vector (tagged union).
//
//   - JointProbability: A and B are the two halves (A.Var == Pair.A),
//     Normalizers lists multipliers this node enters with +1, Negated those
//     it enters with −1.
//   - NormalizationMultiplier: Positive lists the joint nodes of Pair.
//   - MarginalConsistency: Positive and Negative list two joint-node
//     groups sharing Given as their fixed half.
//
// All index slices are ascending.
type Node struct {
	Kind NodeKind
	Pair constraint.Pair

	A, B        constraint.VarAndValue
	Normalizers []int
	Negated     []int

	Given    constraint.VarAndValue
	Positive []int
	Negative []int
}

// Half returns the half of a joint node that belongs to variable n.
func (nd Node) Half(n int) (constraint.VarAndValue, bool) {
	switch {
	case nd.Kind != JointProbability:
		return constraint.VarAndValue{}, false
	case nd.A.Var == n:
		return nd.A, true
	case nd.B.Var == n:
		return nd.B, true
	default:
		return constraint.VarAndValue{}, false
	}
}

// partialKey identifies the group of joint nodes whose fixed half is given
// and whose free half ranges over variable free.
type partialKey struct {
	given constraint.VarAndValue
	free  int
}
