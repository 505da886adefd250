// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opSolve = "Solve"
	opLU    = "LU"
	opSVD   = "SVD"
)

// refineFloor stops iterative refinement once ‖b − A·x‖ ≤ refineFloor·‖b‖.
const refineFloor = 1e-14

// Method names the stage that produced a solution.
type Method int

const (
	// MethodLU is a regularised LU solve, optionally refined.
	MethodLU Method = iota + 1

	// MethodSVD is a minimum-norm least squares from a thin SVD.
	MethodSVD
)

// String returns the stage name.
func (m Method) String() string {
	switch m {
	case MethodLU:
		return opLU
	case MethodSVD:
		return opSVD
	default:
		return "none"
	}
}

// Info describes how a solution was obtained.
type Info struct {
	Method   Method  // stage that produced x
	Refined  int     // accepted refinement sweeps (LU only)
	Rank     int     // effective rank used (SVD only)
	Residual float64 // ‖b − A·x‖₂ against the unregularised A
}

// Solve returns x with A·x ≈ b. See SolveInfo.
func Solve(a *mat.Dense, b []float64, opts ...Option) ([]float64, error) {
	x, _, err := SolveInfo(a, b, opts...)

	return x, err
}

// SolveInfo solves A·x = b and reports which stage produced the answer.
//
// Implementation:
//   - Stage 1: validate shapes (square A, len(b) == order).
//   - Stage 2: build the regularised copy M of A.
//   - Stage 3: LU-factorise M; accept when the condition estimate is below
//     the limit, then refine against A.
//   - Stage 4: otherwise solve the least-squares problem on A via SVD.
//
// Neither a nor b is modified.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular,
// ErrNonFinite.
//
// Complexity: O(n³) time, O(n²) memory.
func SolveInfo(a *mat.Dense, b []float64, opts ...Option) ([]float64, Info, error) {
	// Stage 1: validate
	if a == nil {
		return nil, Info{}, fmt.Errorf("%s: %w", opSolve, ErrNilMatrix)
	}
	rows, cols := a.Dims()
	if rows != cols {
		return nil, Info{}, fmt.Errorf("%s: %dx%d: %w", opSolve, rows, cols, ErrNonSquare)
	}
	if len(b) != rows {
		return nil, Info{}, fmt.Errorf("%s: len(b)=%d, order=%d: %w", opSolve, len(b), rows, ErrDimensionMismatch)
	}
	if rows == 0 {
		return []float64{}, Info{Method: MethodLU}, nil
	}
	o := gatherOptions(opts)
	rhs := mat.NewVecDense(rows, append([]float64(nil), b...))

	// Stage 2: regularise
	m := regularized(a, o)

	// Stage 3: LU
	if x, info, ok := solveLU(a, m, rhs, o); ok {
		return x, info, nil
	}

	// Stage 4: SVD fallback
	x, info, err := solveSVD(a, rhs, o)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%s: %w", opSolve, err)
	}

	return x, info, nil
}

// regularized returns a copy of a shifted by the configured ε.
func regularized(a *mat.Dense, o Options) *mat.Dense {
	m := mat.DenseCopyOf(a)
	if o.reg == 0 {
		return m
	}
	if o.dense {
		m.Apply(func(_, _ int, v float64) float64 { return v + o.reg }, m)
		return m
	}

	n, _ := m.Dims()
	signed := len(o.signature) == n
	var s float64
	for i := 0; i < n; i++ {
		s = 1
		if signed {
			switch {
			case o.signature[i] > 0:
				s = 1
			case o.signature[i] < 0:
				s = -1
			default:
				s = 0
			}
		}
		m.Set(i, i, m.At(i, i)+s*o.reg)
	}

	return m
}

// solveLU factorises m, solves, and refines against a. ok is false when the
// factorisation is unusable or the result is non-finite.
func solveLU(a, m *mat.Dense, b *mat.VecDense, o Options) ([]float64, Info, bool) {
	n := b.Len()

	var lu mat.LU
	lu.Factorize(m)
	if cond := lu.Cond(); math.IsNaN(cond) || cond > o.maxCond {
		return nil, Info{}, false
	}

	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, b); err != nil {
		return nil, Info{}, false
	}

	res := residual(a, x, b)
	norm := mat.Norm(res, 2)
	bnorm := mat.Norm(b, 2)
	floor := refineFloor * bnorm
	refined := 0
	for refined < o.refinements && norm > floor {
		d := mat.NewVecDense(n, nil)
		if err := lu.SolveVecTo(d, false, res); err != nil {
			break
		}
		cand := mat.NewVecDense(n, nil)
		cand.AddVec(x, d)
		candRes := residual(a, cand, b)
		candNorm := mat.Norm(candRes, 2)
		if !(candNorm < norm) {
			break // refinement no longer helps (singular directions)
		}
		x, res, norm = cand, candRes, candNorm
		refined++
	}

	// The regularised answer is only kept when it also solves the original
	// system; inconsistent or rank-deficient leftovers go to the SVD.
	if norm > o.accept*bnorm {
		return nil, Info{}, false
	}
	out := vecData(x)
	if !finite(out) {
		return nil, Info{}, false
	}

	return out, Info{Method: MethodLU, Refined: refined, Residual: norm}, true
}

// solveSVD returns the minimum-norm least-squares solution of a·x = b.
func solveSVD(a *mat.Dense, b *mat.VecDense, o Options) ([]float64, Info, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, Info{}, fmt.Errorf("%s: factorization failed: %w", opSVD, ErrSingular)
	}
	s := svd.Values(nil)
	if len(s) == 0 || !(s[0] > 0) {
		return nil, Info{}, fmt.Errorf("%s: zero matrix: %w", opSVD, ErrSingular)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// y = Σ⁺·Uᵀ·b, truncating σ ≤ rcond·σmax (values are sorted descending).
	var y mat.VecDense
	y.MulVec(u.T(), b)
	cut := o.rcond * s[0]
	rank := 0
	for i, si := range s {
		if si > cut {
			y.SetVec(i, y.AtVec(i)/si)
			rank++
		} else {
			y.SetVec(i, 0)
		}
	}

	x := mat.NewVecDense(b.Len(), nil)
	x.MulVec(&v, &y)

	out := vecData(x)
	if !finite(out) {
		return nil, Info{}, fmt.Errorf("%s: %w", opSVD, ErrNonFinite)
	}

	return out, Info{Method: MethodSVD, Rank: rank, Residual: mat.Norm(residual(a, x, b), 2)}, nil
}

// residual returns b − a·x.
func residual(a *mat.Dense, x, b *mat.VecDense) *mat.VecDense {
	var ax mat.VecDense
	ax.MulVec(a, x)
	r := mat.NewVecDense(b.Len(), nil)
	r.SubVec(b, &ax)

	return r
}

func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}

	return out
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}
