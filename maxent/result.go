// SPDX-License-Identifier: MIT

package maxent

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/maxent/constraint"
)

// Result is a solved distribution: per-(variable, value) marginals and the
// joint table of every required pair. Absent entries are exactly 0.
// A Result is immutable and safe for concurrent reads.
type Result struct {
	variableCount int
	k             int
	probs         map[constraint.VarAndValue]float64
	joints        map[constraint.Pair][]float64 // k·k, row = value of Pair.A

	// Iterations is the number of Newton steps taken (summed over
	// components for a decomposed solve).
	Iterations int

	// Norm is the final residual norm (the largest over components).
	Norm float64

	// Trace holds the residual norm after every Newton step, starting
	// point first. Empty when nothing needed solving or after a
	// decomposed solve.
	Trace []float64
}

func newResult(variableCount, k int) *Result {
	return &Result{
		variableCount: variableCount,
		k:             k,
		probs:         make(map[constraint.VarAndValue]float64),
		joints:        make(map[constraint.Pair][]float64),
	}
}

// VariableCount returns the number of variables.
func (r *Result) VariableCount() int { return r.variableCount }

// K returns the domain size.
func (r *Result) K() int { return r.k }

// VarProb returns Pr[n = v]; 0 for absent or out-of-range entries.
func (r *Result) VarProb(n, v int) float64 {
	return r.probs[constraint.VarAndValue{Var: n, Value: v}]
}

// Marginal returns the distribution of variable n as a slice of length K.
func (r *Result) Marginal(n int) []float64 {
	out := make([]float64, r.k)
	for v := range out {
		out[v] = r.VarProb(n, v)
	}

	return out
}

// JointProb returns Pr[a = va, b = vb] for a required pair. ok is false
// when (a, b) is not a required pair.
func (r *Result) JointProb(a, va, b, vb int) (p float64, ok bool) {
	if a > b {
		a, b, va, vb = b, a, vb, va
	}
	t, ok := r.joints[constraint.Pair{A: a, B: b}]
	if !ok || va < 0 || va >= r.k || vb < 0 || vb >= r.k {
		return 0, ok
	}

	return t[va*r.k+vb], true
}

// Entropy returns −Σ p·log2 p over all entries with p > 0.
func (r *Result) Entropy() float64 {
	h := 0.0
	for n := 0; n < r.variableCount; n++ {
		for v := 0; v < r.k; v++ {
			if p := r.VarProb(n, v); p > 0 {
				h -= p * math.Log2(p)
			}
		}
	}

	return h
}

// String lists every Pr[n=v] in variable, then value order.
func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for n := 0; n < r.variableCount; n++ {
		for v := 0; v < r.k; v++ {
			fmt.Fprintf(&sb, "\tPr[%d=%d] = %v\n", n, v, r.VarProb(n, v))
		}
	}
	sb.WriteString("}\n")

	return sb.String()
}

// setMarginal stores a marginal clipped to [0, 1] and renormalised to one.
func (r *Result) setMarginal(n int, m []float64) {
	total := normalize(m)
	for v, p := range m {
		if total > 0 && p > 0 {
			r.probs[constraint.VarAndValue{Var: n, Value: v}] = p
		}
	}
}

// normalize clips negatives to zero and scales m to sum to one. It returns
// the sum before scaling.
func normalize(m []float64) float64 {
	total := 0.0
	for i, p := range m {
		if !(p > 0) {
			m[i] = 0
			continue
		}
		total += p
	}
	if total > 0 {
		for i := range m {
			m[i] /= total
		}
	}

	return total
}
