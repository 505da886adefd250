package maxent_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/kkt"
	"github.com/katalvlaran/maxent/maxent"
	"github.com/katalvlaran/maxent/newton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumTol = 1e-6

func mustSet(t testing.TB, variables, k int, cs ...constraint.Constraint) *constraint.Set {
	t.Helper()
	s, err := constraint.NewSet(variables, k, cs...)
	require.NoError(t, err)

	return s
}

func sample(t testing.TB) *constraint.Set {
	return mustSet(t, 3, 25,
		constraint.Unary(0, 4),
		constraint.Unary(1, 1),
		constraint.Pairwise(0, 1),
		constraint.Pairwise(1, 2),
	)
}

func chain(t testing.TB) *constraint.Set {
	return mustSet(t, 3, 3, constraint.Pairwise(0, 1), constraint.Pairwise(1, 2))
}

func assertSumsToOne(t *testing.T, r *maxent.Result) {
	t.Helper()
	for n := 0; n < r.VariableCount(); n++ {
		sum := 0.0
		for _, p := range r.Marginal(n) {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, sumTol, "variable %d", n)
	}
}

// TestOptimize_NilSet rejects a nil set.
func TestOptimize_NilSet(t *testing.T) {
	_, err := maxent.Optimize(context.Background(), nil)
	assert.ErrorIs(t, err, maxent.ErrNilSet)
}

// TestOptimize_Unconstrained returns the uniform distribution.
func TestOptimize_Unconstrained(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), mustSet(t, 3, 4))
	require.NoError(t, err)

	for n := 0; n < 3; n++ {
		for v := 0; v < 4; v++ {
			assert.InDelta(t, 0.25, r.VarProb(n, v), 1e-15)
		}
	}
	assert.InDelta(t, 3*math.Log2(4), r.Entropy(), 1e-12)
	assert.Zero(t, r.Iterations)
	assert.Empty(t, r.Trace)
}

// TestOptimize_TwoByTwo has the unique solution 0.5 everywhere.
func TestOptimize_TwoByTwo(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), mustSet(t, 2, 2, constraint.Pairwise(0, 1)))
	require.NoError(t, err)

	for n := 0; n < 2; n++ {
		for v := 0; v < 2; v++ {
			assert.InDelta(t, 0.5, r.VarProb(n, v), 1e-9)
		}
	}
	p, ok := r.JointProb(0, 0, 1, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p, 1e-9)
	p, _ = r.JointProb(0, 1, 1, 0)
	assert.InDelta(t, 0.5, p, 1e-9)
	p, _ = r.JointProb(1, 0, 0, 1)
	assert.InDelta(t, 0.5, p, 1e-9)
	p, _ = r.JointProb(0, 0, 1, 0)
	assert.Zero(t, p)

	assert.InDelta(t, 2.0, r.Entropy(), 1e-9)
	assert.Less(t, r.Norm, newton.DefaultTolerance)
}

// TestOptimize_Sample is the three-variable reference problem.
func TestOptimize_Sample(t *testing.T) {
	if testing.Short() {
		t.Skip("dense 1179-unknown solve")
	}
	r, err := maxent.Optimize(context.Background(), sample(t))
	require.NoError(t, err)

	assert.Less(t, r.Norm, newton.DefaultTolerance)
	assert.LessOrEqual(t, r.Iterations, newton.DefaultMaxIterations)
	assert.Zero(t, r.VarProb(0, 4))
	assert.Zero(t, r.VarProb(1, 1))
	assertSumsToOne(t, r)

	for _, pair := range [][2]int{{0, 1}, {1, 2}} {
		diag := 0.0
		for v := 0; v < 25; v++ {
			p, ok := r.JointProb(pair[0], v, pair[1], v)
			require.True(t, ok)
			diag += p
		}
		assert.Zero(t, diag)
	}
	assert.Greater(t, r.Entropy(), 0.0)
}

// TestOptimize_Unary zeroes the excluded value and renormalises the rest.
func TestOptimize_Unary(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), mustSet(t, 2, 4,
		constraint.Unary(0, 2),
		constraint.Unary(1, 0),
		constraint.Pairwise(0, 1),
	))
	require.NoError(t, err)

	assert.Zero(t, r.VarProb(0, 2))
	assert.Zero(t, r.VarProb(1, 0))
	assertSumsToOne(t, r)

	free, err := maxent.Optimize(context.Background(), mustSet(t, 2, 3, constraint.Unary(1, 0)))
	require.NoError(t, err)
	assert.Zero(t, free.VarProb(1, 0))
	assert.InDelta(t, 0.5, free.VarProb(1, 1), 1e-15)
	assert.InDelta(t, 0.5, free.VarProb(1, 2), 1e-15)
	assert.InDelta(t, 1.0/3, free.VarProb(0, 0), 1e-15)
}

// TestOptimize_Chain checks the pairwise diagonal and the agreement of a
// shared variable's marginal across both of its pairs.
func TestOptimize_Chain(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), chain(t))
	require.NoError(t, err)
	assertSumsToOne(t, r)

	for v := 0; v < 3; v++ {
		p, ok := r.JointProb(0, v, 1, v)
		require.True(t, ok)
		assert.Zero(t, p)
		p, _ = r.JointProb(1, v, 2, v)
		assert.Zero(t, p)

		via0, via2 := 0.0, 0.0
		for w := 0; w < 3; w++ {
			a, _ := r.JointProb(0, w, 1, v)
			b, _ := r.JointProb(1, v, 2, w)
			via0 += a
			via2 += b
		}
		assert.InDelta(t, via0, via2, 1e-2, "value %d", v)
		assert.InDelta(t, r.VarProb(1, v), via0, 1e-9)
	}

	_, ok := r.JointProb(0, 0, 2, 1)
	assert.False(t, ok)
}

// TestOptimize_PointMass gives zero entropy when one value is left.
func TestOptimize_PointMass(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), mustSet(t, 2, 2,
		constraint.Unary(0, 0),
		constraint.Pairwise(0, 1),
	))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, r.VarProb(0, 1), 1e-9)
	assert.InDelta(t, 1.0, r.VarProb(1, 0), 1e-9)
	assert.InDelta(t, 0.0, r.Entropy(), 1e-6)
	assert.GreaterOrEqual(t, r.Entropy(), 0.0)
}

// TestOptimize_Deterministic runs the same problem twice.
func TestOptimize_Deterministic(t *testing.T) {
	a, err := maxent.Optimize(context.Background(), chain(t))
	require.NoError(t, err)
	b, err := maxent.Optimize(context.Background(), chain(t))
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.Trace, b.Trace)
	assert.Equal(t, a.Entropy(), b.Entropy())
}

// TestOptimize_Infeasible surfaces kkt.ErrInfeasible.
func TestOptimize_Infeasible(t *testing.T) {
	_, err := maxent.Optimize(context.Background(), mustSet(t, 2, 1, constraint.Pairwise(0, 1)))
	assert.ErrorIs(t, err, kkt.ErrInfeasible)
}

// TestOptimize_NotConverged hits the iteration cap.
func TestOptimize_NotConverged(t *testing.T) {
	_, err := maxent.Optimize(context.Background(), chain(t),
		maxent.WithMaxIterations(1),
		maxent.WithTolerance(1e-12),
	)
	assert.ErrorIs(t, err, newton.ErrNotConverged)
}

// TestOptimize_Cancelled stops on a cancelled context.
func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := maxent.Optimize(ctx, chain(t))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestOptimize_TighterTolerance keeps the same answer with a smaller
// residual.
func TestOptimize_TighterTolerance(t *testing.T) {
	loose, err := maxent.Optimize(context.Background(), chain(t))
	require.NoError(t, err)
	tight, err := maxent.Optimize(context.Background(), chain(t),
		maxent.WithTolerance(1e-9),
		maxent.WithRegularization(1e-6),
	)
	require.NoError(t, err)

	assert.Less(t, tight.Norm, 1e-9)
	for n := 0; n < 3; n++ {
		for v := 0; v < 3; v++ {
			assert.InDelta(t, tight.VarProb(n, v), loose.VarProb(n, v), 1e-2)
		}
	}
}

// TestResult_String prints every entry in order.
func TestResult_String(t *testing.T) {
	r, err := maxent.Optimize(context.Background(), mustSet(t, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, "{\n\tPr[0=0] = 0.5\n\tPr[0=1] = 0.5\n}\n", r.String())
	assert.Equal(t, []float64{0.5, 0.5}, r.Marginal(0))
	assert.Zero(t, r.VarProb(5, 0))
}

// TestWithConcurrency_Panics guards the programmer error.
func TestWithConcurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { maxent.WithConcurrency(0) })
}
