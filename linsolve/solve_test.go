package linsolve_test

import (
	"testing"

	"github.com/katalvlaran/maxent/linsolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// mulVec returns a·x as a plain slice.
func mulVec(a *mat.Dense, x []float64) []float64 {
	var out mat.VecDense
	out.MulVec(a, mat.NewVecDense(len(x), x))
	res := make([]float64, len(x))
	for i := range res {
		res[i] = out.AtVec(i)
	}

	return res
}

// TestSolve_Validation covers the shape errors.
func TestSolve_Validation(t *testing.T) {
	_, err := linsolve.Solve(nil, []float64{1})
	assert.ErrorIs(t, err, linsolve.ErrNilMatrix)

	_, err = linsolve.Solve(mat.NewDense(2, 3, nil), []float64{1, 2})
	assert.ErrorIs(t, err, linsolve.ErrNonSquare)

	_, err = linsolve.Solve(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), []float64{1})
	assert.ErrorIs(t, err, linsolve.ErrDimensionMismatch)
}

// TestSolve_Exact checks an unregularised, well-conditioned system.
func TestSolve_Exact(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 1, 2, 3})
	x, info, err := linsolve.SolveInfo(a, []float64{1, 2}, linsolve.WithRegularization(0))
	require.NoError(t, err)
	assert.Equal(t, linsolve.MethodLU, info.Method)
	assert.InDelta(t, 0.1, x[0], 1e-12)
	assert.InDelta(t, 0.6, x[1], 1e-12)
}

// TestSolve_RefinementRemovesShift verifies that iterative refinement drives
// the residual against the original matrix far below the shift size.
func TestSolve_RefinementRemovesShift(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	b := []float64{1, 2, 3}

	x, info, err := linsolve.SolveInfo(a, b)
	require.NoError(t, err)
	assert.Equal(t, linsolve.MethodLU, info.Method)
	assert.Greater(t, info.Refined, 0)
	assert.InDeltaSlice(t, b, mulVec(a, x), 1e-9)

	// Without refinement the residual is ε·x, so the acceptance bar is relaxed.
	x0, info0, err := linsolve.SolveInfo(a, b,
		linsolve.WithRefinements(0),
		linsolve.WithAcceptance(1e-2),
	)
	require.NoError(t, err)
	assert.Equal(t, linsolve.MethodLU, info0.Method)
	assert.Equal(t, 0, info0.Refined)
	assert.Greater(t, info0.Residual, info.Residual)
	assert.NotEqual(t, x, x0)
}

// TestSolve_SaddlePointSingular solves a KKT matrix with a duplicated
// constraint row. The matrix is singular but the right-hand side is
// consistent, so the signed diagonal shift keeps LU usable.
func TestSolve_SaddlePointSingular(t *testing.T) {
	a := mat.NewDense(4, 4, []float64{
		2, 0, 1, 1,
		0, 2, 1, 1,
		1, 1, 0, 0,
		1, 1, 0, 0,
	})
	xTrue := []float64{0.25, -0.5, 1, 0}
	b := mulVec(a, xTrue)

	x, info, err := linsolve.SolveInfo(a, b, linsolve.WithSignature([]float64{1, 1, -1, -1}))
	require.NoError(t, err)
	assert.Equal(t, linsolve.MethodLU, info.Method)
	assert.InDeltaSlice(t, b, mulVec(a, x), 1e-8)
	// Primal part is unique even though the multipliers are not.
	assert.InDelta(t, xTrue[0], x[0], 1e-8)
	assert.InDelta(t, xTrue[1], x[1], 1e-8)
	assert.InDelta(t, xTrue[2]+xTrue[3], x[2]+x[3], 1e-8)
}

// TestSolve_SVDFallback uses a rank-one matrix without regularisation: LU
// fails and the minimum-norm least-squares solution is returned.
func TestSolve_SVDFallback(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	x, info, err := linsolve.SolveInfo(a, []float64{2, 2}, linsolve.WithRegularization(0))
	require.NoError(t, err)
	assert.Equal(t, linsolve.MethodSVD, info.Method)
	assert.Equal(t, 1, info.Rank)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)
}

// TestSolve_DenseShift exercises the every-entry shift on a rank-one matrix.
func TestSolve_DenseShift(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	x, err := linsolve.Solve(a, []float64{2, 2}, linsolve.WithDenseShift())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2}, mulVec(a, x), 1e-9)
}

// TestSolve_ZeroMatrix must fail rather than return a shifted answer.
func TestSolve_ZeroMatrix(t *testing.T) {
	a := mat.NewDense(3, 3, nil)
	_, err := linsolve.Solve(a, []float64{1, 2, 3})
	assert.ErrorIs(t, err, linsolve.ErrSingular)
}

// TestSolve_InputsUntouched verifies that neither argument is mutated.
func TestSolve_InputsUntouched(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 1, 1, 2})
	b := []float64{3, 3}
	_, err := linsolve.Solve(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1, 2}, a.RawMatrix().Data)
	assert.Equal(t, []float64{3, 3}, b)
}

// TestOptions_Panics verifies programmer-error guards.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { linsolve.WithRegularization(-1) })
	assert.Panics(t, func() { linsolve.WithRcond(1) })
	assert.Panics(t, func() { linsolve.WithRefinements(-1) })
	assert.Panics(t, func() { linsolve.WithMaxCondition(0.5) })
	assert.Panics(t, func() { linsolve.WithAcceptance(0) })
}
