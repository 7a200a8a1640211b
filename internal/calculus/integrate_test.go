package calculus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/expr"
	"symmetrica/internal/simplify"
)

func TestIntegrateConstantAndVariable(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	got, ok := Integrate(st, st.Int(5), "x")
	require.True(t, ok)
	assert.Equal(t, st.Mul([]expr.ID{st.Int(5), x}), got)

	got, ok = Integrate(st, x, "x")
	require.True(t, ok)
	assert.Equal(t, st.Mul([]expr.ID{st.Rat(1, 2), st.Pow(x, st.Int(2))}), got)

	// A foreign symbol is a constant.
	c := st.Sym("c")
	got, ok = Integrate(st, c, "x")
	require.True(t, ok)
	assert.Equal(t, st.Mul([]expr.ID{c, x}), got)
}

func TestIntegratePowerRule(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	// x^2 -> x^3/3
	got, ok := Integrate(st, st.Pow(x, st.Int(2)), "x")
	require.True(t, ok)
	expected := st.Mul([]expr.ID{st.Rat(1, 3), st.Pow(x, st.Int(3))})
	assert.Equal(t, expected, got)

	// x^-1 -> ln x
	got, ok = Integrate(st, st.Pow(x, st.Int(-1)), "x")
	require.True(t, ok)
	assert.Equal(t, st.Func("ln", []expr.ID{x}), got)
}

func TestIntegrateThenDifferentiate(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	f := st.Pow(x, st.Int(2))
	ff, ok := Integrate(st, f, "x")
	require.True(t, ok)
	back := simplify.Simplify(st, Diff(st, ff, "x"))
	assert.Equal(t, simplify.Simplify(st, f), back)
}

func TestIntegrateLinearArgTable(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	// exp(3x+1) -> (1/3) exp(3x+1)
	inner := st.Add([]expr.ID{st.Mul([]expr.ID{st.Int(3), x}), st.Int(1)})
	e := st.Func("exp", []expr.ID{inner})
	got, ok := Integrate(st, e, "x")
	require.True(t, ok)
	assert.Equal(t, st.Mul([]expr.ID{st.Rat(1, 3), e}), got)

	// sin(2x) -> -(1/2) cos(2x)
	twoX := st.Mul([]expr.ID{st.Int(2), x})
	got, ok = Integrate(st, st.Func("sin", []expr.ID{twoX}), "x")
	require.True(t, ok)
	expected := st.Mul([]expr.ID{st.Rat(-1, 2), st.Func("cos", []expr.ID{twoX})})
	assert.Equal(t, expected, got)

	// cos(2x) -> (1/2) sin(2x)
	got, ok = Integrate(st, st.Func("cos", []expr.ID{twoX}), "x")
	require.True(t, ok)
	expected = st.Mul([]expr.ID{st.Rat(1, 2), st.Func("sin", []expr.ID{twoX})})
	assert.Equal(t, expected, got)
}

func TestIntegrateTermwise(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// x^2 + 3 -> x^3/3 + 3x
	e := st.Add([]expr.ID{st.Pow(x, st.Int(2)), st.Int(3)})
	got, ok := Integrate(st, e, "x")
	require.True(t, ok)
	expected := simplify.Simplify(st, st.Add([]expr.ID{
		st.Mul([]expr.ID{st.Rat(1, 3), st.Pow(x, st.Int(3))}),
		st.Mul([]expr.ID{st.Int(3), x}),
	}))
	assert.Equal(t, expected, got)
}

func TestIntegrateLogDerivativePattern(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	u := st.Add([]expr.ID{st.Pow(x, st.Int(2)), st.Int(1)}) // x^2 + 1
	du := Diff(st, u, "x")                                  // 2x
	e := st.Mul([]expr.ID{du, st.Pow(u, st.Int(-1))})
	got, ok := Integrate(st, e, "x")
	require.True(t, ok)
	assert.Equal(t, st.Func("ln", []expr.ID{u}), got)
}

func TestIntegratePartialFractions(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// (2x+3)/(x^2+3x+2) -> ln(x+1) + ln(x+2)
	num := st.Add([]expr.ID{st.Mul([]expr.ID{st.Int(2), x}), st.Int(3)})
	den := st.Add([]expr.ID{
		st.Pow(x, st.Int(2)),
		st.Mul([]expr.ID{st.Int(3), x}),
		st.Int(2),
	})
	f := st.Mul([]expr.ID{num, st.Pow(den, st.Int(-1))})
	f = simplify.Simplify(st, f)

	got, ok := Integrate(st, f, "x")
	require.True(t, ok)
	lnxp1 := st.Func("ln", []expr.ID{st.Add([]expr.ID{x, st.Int(1)})})
	lnxp2 := st.Func("ln", []expr.ID{st.Add([]expr.ID{x, st.Int(2)})})
	expected := st.Add([]expr.ID{lnxp1, lnxp2})
	assert.Equal(t, expected, got)
}

func TestIntegrateImproperRational(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// (x^2 + 1)/x = x + 1/x -> x^2/2 + ln(x)
	num := st.Add([]expr.ID{st.Pow(x, st.Int(2)), st.Int(1)})
	f := st.Mul([]expr.ID{num, st.Pow(x, st.Int(-1))})
	got, ok := Integrate(st, f, "x")
	require.True(t, ok)
	s := st.String(got)
	assert.Contains(t, s, "ln")
}

func TestIntegrateUnsupportedReturnsFalse(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// ln(x) * x^2 needs integration by parts, which is not implemented.
	e := st.Mul([]expr.ID{st.Func("ln", []expr.ID{x}), st.Pow(x, st.Int(2))})
	_, ok := Integrate(st, e, "x")
	assert.False(t, ok)

	// sin(x^2) has a non-linear argument.
	_, ok = Integrate(st, st.Func("sin", []expr.ID{st.Pow(x, st.Int(2))}), "x")
	assert.False(t, ok)
}

func TestIntegrateDiffConsistency(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	integrands := []expr.ID{
		st.Int(4),
		x,
		st.Pow(x, st.Int(3)),
		st.Func("sin", []expr.ID{st.Mul([]expr.ID{st.Int(2), x})}),
		st.Func("cos", []expr.ID{x}),
		st.Func("exp", []expr.ID{st.Mul([]expr.ID{st.Int(3), x})}),
	}
	for _, f := range integrands {
		ff, ok := Integrate(st, f, "x")
		require.True(t, ok, "integrand %s", st.String(f))
		diff := simplify.Simplify(st, Diff(st, ff, "x"))
		want := simplify.Simplify(st, f)
		assert.Equal(t, want, diff, "d/dx of integral of %s", st.String(f))
	}
}
