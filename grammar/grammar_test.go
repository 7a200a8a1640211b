package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/grammar"
	"symmetrica/internal/expr"
)

func parse(t *testing.T, st *expr.Store, src string) expr.ID {
	t.Helper()
	id, err := grammar.ParseToStore(st, "test.sym", src)
	require.NoError(t, err, "source %q", src)
	return id
}

func TestParseAtoms(t *testing.T) {
	st := expr.NewStore()
	assert.Equal(t, st.Int(42), parse(t, st, "42"))
	assert.Equal(t, st.Sym("x"), parse(t, st, "x"))
	assert.Equal(t, st.Mul([]expr.ID{st.Int(-1), st.Sym("x")}), parse(t, st, "-x"))
}

func TestParsePrecedence(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	y := st.Sym("y")

	// 2 + 3*x parses multiplication first.
	got := parse(t, st, "2 + 3*x")
	expected := st.Add([]expr.ID{st.Int(2), st.Mul([]expr.ID{st.Int(3), x})})
	assert.Equal(t, expected, got)

	// x + y*x^2: power binds tightest.
	got = parse(t, st, "x + y*x^2")
	expected = st.Add([]expr.ID{x, st.Mul([]expr.ID{y, st.Pow(x, st.Int(2))})})
	assert.Equal(t, expected, got)
}

func TestParseParentheses(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	got := parse(t, st, "(x + 1) * 2")
	expected := st.Mul([]expr.ID{st.Add([]expr.ID{x, st.Int(1)}), st.Int(2)})
	assert.Equal(t, expected, got)
}

func TestParseSubtractionAndDivision(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	got := parse(t, st, "x - 1")
	expected := st.Add([]expr.ID{x, st.Int(-1)})
	assert.Equal(t, expected, got)

	got = parse(t, st, "x / y")
	y := st.Sym("y")
	expected = st.Mul([]expr.ID{x, st.Pow(y, st.Int(-1))})
	assert.Equal(t, expected, got)
}

func TestParsePowerRightAssociative(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// x^2^3 = x^(2^3)
	got := parse(t, st, "x^2^3")
	expected := st.Pow(x, st.Pow(st.Int(2), st.Int(3)))
	assert.Equal(t, expected, got)
}

func TestParseFunctionCalls(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")

	got := parse(t, st, "sin(x)")
	assert.Equal(t, st.Func("sin", []expr.ID{x}), got)

	got = parse(t, st, "BesselJ(n, x)")
	n := st.Sym("n")
	assert.Equal(t, st.Func("BesselJ", []expr.ID{n, x}), got)

	got = parse(t, st, "f()")
	assert.Equal(t, st.Func("f", nil), got)
}

func TestParseNestedCalls(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	got := parse(t, st, "ln(exp(x + 1))")
	inner := st.Func("exp", []expr.ID{st.Add([]expr.ID{x, st.Int(1)})})
	assert.Equal(t, st.Func("ln", []expr.ID{inner}), got)
}

func TestParseErrors(t *testing.T) {
	st := expr.NewStore()
	for _, bad := range []string{"", "1 +", "sin(", ")", "x ^", "1 2"} {
		_, err := grammar.ParseToStore(st, "test.sym", bad)
		assert.Error(t, err, "source %q", bad)
	}
}
