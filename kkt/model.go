// SPDX-License-Identifier: MIT

package kkt

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/maxent/constraint"
)

// Model is the KKT system of one constraint set. It is immutable after New
// and safe for concurrent evaluation.
type Model struct {
	set     *constraint.Set
	nodes   []Node
	pairs   []constraint.Pair
	joints  [][]int     // joint node indices per pair, parallel to pairs
	partner map[int]int // first partner of every paired variable
	dead    map[constraint.VarAndValue]struct{}
	uniform map[constraint.VarAndValue]float64

	primal    []int
	signature []float64
}

// New builds the unknown vector for set.
//
// Implementation:
//   - Stage 1: prune values of paired variables that have no support in
//     some pair (they are zero at every feasible point).
//   - Stage 2: allocate one JointProbability node per admissible outcome of
//     every required pair, recording groups keyed by (given, free).
//   - Stage 3: allocate one NormalizationMultiplier per pair and link its
//     members.
//   - Stage 4: for every paired (variable, value) seen through two or more
//     partners, allocate one MarginalConsistency per ordered group pair.
//   - Stage 5: uniform marginals for unpaired variables.
//
// Errors: ErrNilSet, ErrInfeasible (wrapped with the pair or variable).
//
// Complexity: O(P·k² + V·k·G²) time where P is the number of pairs and G
// the number of partners of a variable.
func New(set *constraint.Set) (*Model, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	m := &Model{
		set:     set,
		pairs:   set.RequiredJoints(),
		partner: make(map[int]int),
		uniform: make(map[constraint.VarAndValue]float64),
	}
	for _, p := range m.pairs {
		if _, ok := m.partner[p.A]; !ok {
			m.partner[p.A] = p.B
		}
		if _, ok := m.partner[p.B]; !ok {
			m.partner[p.B] = p.A
		}
	}

	// Stage 1: support pruning
	if err := m.prune(); err != nil {
		return nil, err
	}

	// Stage 2: primal nodes
	partials := make(map[partialKey][]int)
	m.joints = make([][]int, len(m.pairs))
	k := set.K()
	for pi, p := range m.pairs {
		for va := 0; va < k; va++ {
			for vb := 0; vb < k; vb++ {
				if !m.admissible(p.A, va, p.B, vb) {
					continue
				}
				a := constraint.VarAndValue{Var: p.A, Value: va}
				b := constraint.VarAndValue{Var: p.B, Value: vb}
				idx := len(m.nodes)
				partials[partialKey{given: a, free: p.B}] = append(partials[partialKey{given: a, free: p.B}], idx)
				partials[partialKey{given: b, free: p.A}] = append(partials[partialKey{given: b, free: p.A}], idx)
				m.joints[pi] = append(m.joints[pi], idx)
				m.nodes = append(m.nodes, Node{Kind: JointProbability, Pair: p, A: a, B: b})
			}
		}
		if len(m.joints[pi]) == 0 {
			return nil, fmt.Errorf("pair neq(%d,%d) has no admissible outcome: %w", p.A, p.B, ErrInfeasible)
		}
	}
	m.primal = make([]int, len(m.nodes))
	for i := range m.primal {
		m.primal[i] = i
	}

	// Stage 3: normalization multipliers
	for pi, p := range m.pairs {
		idx := len(m.nodes)
		for _, j := range m.joints[pi] {
			m.nodes[j].Normalizers = append(m.nodes[j].Normalizers, idx)
		}
		m.nodes = append(m.nodes, Node{
			Kind:     NormalizationMultiplier,
			Pair:     p,
			Positive: m.joints[pi],
		})
	}

	// Stage 4: marginal consistency
	for _, n := range m.pairedVars() {
		partners := m.partnersOf(n)
		for v := 0; v < k; v++ {
			given := constraint.VarAndValue{Var: n, Value: v}
			var groups [][]int
			for _, other := range partners {
				if g, ok := partials[partialKey{given: given, free: other}]; ok {
					groups = append(groups, g)
				}
			}
			if len(groups) < 2 {
				continue
			}
			for i := range groups {
				for j := range groups {
					if i == j {
						continue
					}
					idx := len(m.nodes)
					for _, c := range groups[i] {
						m.nodes[c].Normalizers = append(m.nodes[c].Normalizers, idx)
					}
					for _, c := range groups[j] {
						m.nodes[c].Negated = append(m.nodes[c].Negated, idx)
					}
					m.nodes = append(m.nodes, Node{
						Kind:     MarginalConsistency,
						Given:    given,
						Positive: groups[i],
						Negative: groups[j],
					})
				}
			}
		}
	}

	// Stage 5: unpaired variables
	for n := 0; n < set.VariableCount(); n++ {
		if _, paired := m.partner[n]; paired {
			continue
		}
		allowed := set.Allowed(n)
		if len(allowed) == 0 {
			return nil, fmt.Errorf("variable %d has no admissible value: %w", n, ErrInfeasible)
		}
		prob := 1.0 / float64(len(allowed))
		for _, v := range allowed {
			m.uniform[constraint.VarAndValue{Var: n, Value: v}] = prob
		}
	}

	m.signature = make([]float64, len(m.nodes))
	for i, nd := range m.nodes {
		if nd.Kind == JointProbability {
			m.signature[i] = 1
		} else {
			m.signature[i] = -1
		}
	}

	return m, nil
}

// prune marks values of paired variables that lack a partner value in some
// pair, repeating until a fixpoint. A variable left with no live value makes
// the set infeasible.
func (m *Model) prune() error {
	m.dead = make(map[constraint.VarAndValue]struct{})
	k := m.set.K()
	for changed := true; changed; {
		changed = false
		for _, p := range m.pairs {
			for _, side := range [2][2]int{{p.A, p.B}, {p.B, p.A}} {
				self, other := side[0], side[1]
				for v := 0; v < k; v++ {
					vv := constraint.VarAndValue{Var: self, Value: v}
					if m.isDead(vv) {
						continue
					}
					if !m.supported(self, v, other) {
						m.dead[vv] = struct{}{}
						changed = true
					}
				}
			}
		}
	}

	for _, n := range m.pairedVars() {
		live := 0
		for v := 0; v < k; v++ {
			if !m.isDead(constraint.VarAndValue{Var: n, Value: v}) {
				live++
			}
		}
		if live == 0 {
			return fmt.Errorf("variable %d has no admissible value: %w", n, ErrInfeasible)
		}
	}

	return nil
}

// supported reports whether self=v has an admissible partner value in other.
func (m *Model) supported(self, v, other int) bool {
	for w := 0; w < m.set.K(); w++ {
		if m.admissible(self, v, other, w) {
			return true
		}
	}

	return false
}

func (m *Model) isDead(vv constraint.VarAndValue) bool {
	_, ok := m.dead[vv]
	return ok
}

// admissible reports whether the joint outcome may carry mass.
func (m *Model) admissible(varA, valA, varB, valB int) bool {
	return !m.set.IsExcluded(varA, valA, varB, valB) &&
		!m.isDead(constraint.VarAndValue{Var: varA, Value: valA}) &&
		!m.isDead(constraint.VarAndValue{Var: varB, Value: valB})
}

// pairedVars returns every variable that occurs in a pair, ascending.
func (m *Model) pairedVars() []int {
	out := make([]int, 0, len(m.partner))
	for n := range m.partner {
		out = append(out, n)
	}
	sort.Ints(out)

	return out
}

// partnersOf returns the variables paired with n, ascending.
func (m *Model) partnersOf(n int) []int {
	var out []int
	for _, p := range m.pairs {
		if o, ok := p.Other(n); ok {
			out = append(out, o)
		}
	}
	sort.Ints(out)

	return out
}

// Set returns the constraint set the model was built from.
func (m *Model) Set() *constraint.Set { return m.set }

// Len returns the length of the unknown vector.
func (m *Model) Len() int { return len(m.nodes) }

// Node returns the node at index i.
func (m *Model) Node(i int) Node { return m.nodes[i] }

// Nodes returns the node list. Callers must not modify it.
func (m *Model) Nodes() []Node { return m.nodes }

// Pairs returns the required pairs in discovery order.
func (m *Model) Pairs() []constraint.Pair {
	out := make([]constraint.Pair, len(m.pairs))
	copy(out, m.pairs)

	return out
}

// Joints returns the joint node indices of the pair at position i of Pairs.
func (m *Model) Joints(i int) []int { return m.joints[i] }

// Partner returns the first partner of n in discovery order, and whether n
// is paired at all.
func (m *Model) Partner(n int) (int, bool) {
	o, ok := m.partner[n]
	return o, ok
}

// Uniform returns the fixed marginals of unpaired variables. Callers must
// not modify the map.
func (m *Model) Uniform() map[constraint.VarAndValue]float64 { return m.uniform }

// Count returns the number of nodes of kind k.
func (m *Model) Count(k NodeKind) int {
	c := 0
	for _, nd := range m.nodes {
		if nd.Kind == k {
			c++
		}
	}

	return c
}

// Positive lists the primal coordinates; they must stay > 0 because the
// residual takes their logarithm.
func (m *Model) Positive() []int { return m.primal }

// Signature returns +1 for primal rows and −1 for multiplier rows.
func (m *Model) Signature() []float64 { return m.signature }
