package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/expr"
)

func TestExprPolyRoundTrip(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// x^2 + 3x + 2
	e := st.Add([]expr.ID{
		st.Pow(x, st.Int(2)),
		st.Mul([]expr.ID{st.Int(3), x}),
		st.Int(2),
	})
	p, ok := FromExpr(st, e, "x")
	require.True(t, ok)
	assert.Equal(t, mk(2, 3, 1), p)

	back := ToExpr(st, p)
	assert.Equal(t, e, back, "round-trip through the bridge should intern identically")
}

func TestFromExprRationalCoeff(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	e := st.Mul([]expr.ID{st.Rat(1, 2), x})
	p, ok := FromExpr(st, e, "x")
	require.True(t, ok)
	assert.Equal(t, q(1, 2), p.Coeff(1))
}

func TestFromExprRepeatedVarFactors(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// x * x^2 is canonicalized by the store; either way it is x^3.
	e := st.Mul([]expr.ID{x, st.Pow(x, st.Int(2))})
	p, ok := FromExpr(st, e, "x")
	require.True(t, ok)
	deg, degOK := p.Degree()
	require.True(t, degOK)
	assert.Equal(t, 3, deg)
}

func TestFromExprRejects(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	// Negative exponent.
	_, ok := FromExpr(st, st.Pow(x, st.Int(-1)), "x")
	assert.False(t, ok)

	// Wrong variable.
	_, ok = FromExpr(st, st.Sym("y"), "x")
	assert.False(t, ok)

	// Non-polynomial subtree.
	_, ok = FromExpr(st, st.Func("sin", []expr.ID{x}), "x")
	assert.False(t, ok)
}

func TestToExprZero(t *testing.T) {
	st := expr.NewStore()
	assert.Equal(t, st.Int(0), ToExpr(st, Zero("x")))
}
