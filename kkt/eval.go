// SPDX-License-Identifier: MIT

package kkt

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Residual evaluates the stationarity and feasibility conditions at x.
// len(x) must equal Len(); x is not modified.
func (m *Model) Residual(x []float64) []float64 {
	f := make([]float64, len(m.nodes))
	for i, nd := range m.nodes {
		switch nd.Kind {
		case JointProbability:
			v := EntropyCoefficient * (math.Log(x[i]) + 1)
			for _, j := range nd.Normalizers {
				v += x[j]
			}
			for _, j := range nd.Negated {
				v -= x[j]
			}
			f[i] = v
		case NormalizationMultiplier:
			f[i] = sum(x, nd.Positive) - 1
		case MarginalConsistency:
			f[i] = sum(x, nd.Positive) - sum(x, nd.Negative)
		}
	}

	return f
}

// Jacobian evaluates ∂Residual/∂x at x. The matrix is symmetric.
func (m *Model) Jacobian(x []float64) *mat.Dense {
	n := len(m.nodes)
	jac := mat.NewDense(n, n, nil)
	for i, nd := range m.nodes {
		if nd.Kind != JointProbability {
			continue
		}
		jac.Set(i, i, EntropyCoefficient/x[i])
		for _, j := range nd.Normalizers {
			jac.Set(i, j, 1)
			jac.Set(j, i, 1)
		}
		for _, j := range nd.Negated {
			jac.Set(i, j, -1)
			jac.Set(j, i, -1)
		}
	}

	return jac
}

func sum(x []float64, idx []int) float64 {
	s := 0.0
	for _, i := range idx {
		s += x[i]
	}

	return s
}
