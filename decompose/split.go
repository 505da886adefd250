// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/maxent/constraint"
)

// Querier is the read side of a solved distribution.
type Querier interface {
	VarProb(n, v int) float64
}

// SubProblem is one independent component of a constraint set.
type SubProblem struct {
	// Vars maps a local variable to its global index (ascending).
	Vars []int

	// Values maps a local value to the global values it stands for
	// (ascending). Every local variable shares the same table.
	Values [][]int

	// Set is the component's constraint set in local indices.
	Set *constraint.Set
}

// Components partitions the variables of set into connected components under
// pairwise exclusion. Each component is ascending; components are ordered by
// their smallest variable.
//
// Complexity: O(V + P) with P required pairs.
func Components(set *constraint.Set) [][]int {
	if set == nil {
		return nil
	}
	n := set.VariableCount()
	adj := make([][]int, n)
	for _, p := range set.RequiredJoints() {
		adj[p.A] = append(adj[p.A], p.B)
		adj[p.B] = append(adj[p.B], p.A)
	}

	seen := make([]bool, n)
	var comps [][]int
	for v0 := 0; v0 < n; v0++ {
		if seen[v0] {
			continue
		}
		// BFS to collect component
		queue := []int{v0}
		seen[v0] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, w := range adj[queue[qi]] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}

	return comps
}

// Split returns one SubProblem per component of set.
//
// Implementation:
//   - Stage 1: find components (Components).
//   - Stage 2: per component, build the value table: identity when the
//     component has a pairwise exclusion, otherwise the mentioned values
//     plus one bucket for the rest.
//   - Stage 3: translate every constraint touching the component into
//     local indices and build its Set.
//
// Errors: ErrNilSet, or a constraint error wrapped with the component.
func Split(set *constraint.Set) ([]*SubProblem, error) {
	if set == nil {
		return nil, ErrNilSet
	}

	// Stage 1: components
	comps := Components(set)
	owner := make([]int, set.VariableCount())
	local := make([]int, set.VariableCount())
	for ci, comp := range comps {
		for li, g := range comp {
			owner[g], local[g] = ci, li
		}
	}

	subs := make([]*SubProblem, 0, len(comps))
	for ci, comp := range comps {
		// Stage 2: value table
		values, toLocal := valueTable(set, comp)

		// Stage 3: local constraints
		var cs []constraint.Constraint
		for _, c := range set.Constraints() {
			switch c.Kind {
			case constraint.UnaryExclusion:
				if owner[c.Target.Var] == ci {
					cs = append(cs, constraint.Unary(local[c.Target.Var], toLocal[c.Target.Value]))
				}
			case constraint.PairwiseExclusion:
				if owner[c.A] == ci {
					cs = append(cs, constraint.Pairwise(local[c.A], local[c.B]))
				}
			}
		}
		ls, err := constraint.NewSet(len(comp), len(values), cs...)
		if err != nil {
			return nil, fmt.Errorf("component %v: %w", comp, err)
		}
		subs = append(subs, &SubProblem{Vars: comp, Values: values, Set: ls})
	}

	return subs, nil
}

// valueTable builds the local value table of comp and the global → local
// value map.
func valueTable(set *constraint.Set, comp []int) ([][]int, []int) {
	k := set.K()
	toLocal := make([]int, k)
	if len(comp) > 1 {
		values := make([][]int, k)
		for v := 0; v < k; v++ {
			values[v] = []int{v}
			toLocal[v] = v
		}

		return values, toLocal
	}

	n := comp[0]
	var values [][]int
	var bucket []int
	for v := 0; v < k; v++ {
		if set.IsUnaryExcluded(constraint.VarAndValue{Var: n, Value: v}) {
			toLocal[v] = len(values)
			values = append(values, []int{v})
			continue
		}
		bucket = append(bucket, v)
	}
	if len(bucket) > 0 {
		for _, v := range bucket {
			toLocal[v] = len(values)
		}
		values = append(values, bucket)
	}

	return values, toLocal
}

// Lift maps a distribution over the sub-problem back to global indices.
// A local value standing for c global values spreads its mass p as p/c.
// Zero entries are omitted.
func (sp *SubProblem) Lift(local Querier) map[constraint.VarAndValue]float64 {
	out := make(map[constraint.VarAndValue]float64)
	for lv, g := range sp.Vars {
		for lval, members := range sp.Values {
			p := local.VarProb(lv, lval)
			if p <= 0 {
				continue
			}
			share := p / float64(len(members))
			for _, v := range members {
				out[constraint.VarAndValue{Var: g, Value: v}] = share
			}
		}
	}

	return out
}

// Collapsed reports whether some local value stands for more than one
// global value.
func (sp *SubProblem) Collapsed() bool {
	for _, members := range sp.Values {
		if len(members) > 1 {
			return true
		}
	}

	return false
}
