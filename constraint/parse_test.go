package constraint_test

import (
	"testing"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_RoundTrip verifies that String output parses back to the same value.
func TestParse_RoundTrip(t *testing.T) {
	for _, c := range []constraint.Constraint{
		constraint.Pairwise(3, 1),
		constraint.Unary(0, 24),
	} {
		got, err := constraint.Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

// TestParse_Whitespace accepts spaces between tokens.
func TestParse_Whitespace(t *testing.T) {
	got, err := constraint.Parse("  neq( 2 , 0 ) ")
	require.NoError(t, err)
	assert.Equal(t, constraint.Pairwise(0, 2), got)

	got, err = constraint.Parse("not(1 = 7)")
	require.NoError(t, err)
	assert.Equal(t, constraint.Unary(1, 7), got)
}

// TestParse_Errors covers malformed input.
func TestParse_Errors(t *testing.T) {
	cases := map[string]error{
		"":            constraint.ErrSyntax,
		"neq(1,2":     constraint.ErrSyntax,
		"neq(1;2)":    constraint.ErrSyntax,
		"neq(a,2)":    constraint.ErrSyntax,
		"not(1,2)":    constraint.ErrSyntax,
		"not(x=2)":    constraint.ErrSyntax,
		"eq(1,2)":     constraint.ErrUnknownKind,
		"forbid(1=2)": constraint.ErrUnknownKind,
	}
	for in, want := range cases {
		_, err := constraint.Parse(in)
		assert.ErrorIs(t, err, want, "input %q", in)
	}
}

// TestParseAll stops on the first error.
func TestParseAll(t *testing.T) {
	cs, err := constraint.ParseAll([]string{"neq(0,1)", "not(0=4)"})
	require.NoError(t, err)
	assert.Equal(t, []constraint.Constraint{constraint.Pairwise(0, 1), constraint.Unary(0, 4)}, cs)

	_, err = constraint.ParseAll([]string{"neq(0,1)", "bogus"})
	assert.ErrorIs(t, err, constraint.ErrSyntax)
}
