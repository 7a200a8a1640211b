package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/grammar"
	"symmetrica/internal/assume"
	"symmetrica/internal/calculus"
	"symmetrica/internal/expr"
	"symmetrica/internal/pattern"
	"symmetrica/internal/simplify"
	"symmetrica/internal/solver"
)

// End-to-end checks that drive the parser and the whole engine together,
// the way the REPL and CLI do.

func parse(t *testing.T, st *expr.Store, src string) expr.ID {
	t.Helper()
	id, err := grammar.ParseToStore(st, "e2e", src)
	require.NoError(t, err, "source %q", src)
	return id
}

func TestEndToEndLikeTerms(t *testing.T) {
	st := expr.NewStore()
	got := simplify.Simplify(st, parse(t, st, "2*x + 3*x + 1/2*x + 1/2"))
	x := st.Sym("x")
	expected := st.Add([]expr.ID{
		st.Mul([]expr.ID{st.Rat(11, 2), x}),
		st.Rat(1, 2),
	})
	assert.Equal(t, expected, got)
}

func TestEndToEndPowerMerge(t *testing.T) {
	st := expr.NewStore()
	got := simplify.Simplify(st, parse(t, st, "x^2 * x^3"))
	assert.Equal(t, st.Pow(st.Sym("x"), st.Int(5)), got)
}

func TestEndToEndProductRuleDerivative(t *testing.T) {
	st := expr.NewStore()
	f := parse(t, st, "x^2 * (x + 1)")
	got := simplify.Simplify(st, calculus.Diff(st, f, "x"))
	want := simplify.Simplify(st, parse(t, st, "2*x*(x + 1) + x^2"))
	assert.Equal(t, want, got)
}

func TestEndToEndIntegrateThenDifferentiate(t *testing.T) {
	st := expr.NewStore()
	f := parse(t, st, "x^2")
	anti, ok := calculus.Integrate(st, f, "x")
	require.True(t, ok)
	assert.Equal(t, simplify.Simplify(st, parse(t, st, "1/3 * x^3")), anti)
	back := simplify.Simplify(st, calculus.Diff(st, anti, "x"))
	assert.Equal(t, f, back)
}

func TestEndToEndPartialFractionsIntegral(t *testing.T) {
	st := expr.NewStore()
	f := simplify.Simplify(st, parse(t, st, "(2*x + 3) / (x^2 + 3*x + 2)"))
	got, ok := calculus.Integrate(st, f, "x")
	require.True(t, ok)
	want := simplify.Simplify(st, parse(t, st, "ln(x + 1) + ln(x + 2)"))
	assert.Equal(t, want, got)
}

func TestEndToEndQuadraticSolver(t *testing.T) {
	st := expr.NewStore()
	roots, ok := solver.SolveUnivariate(st, parse(t, st, "x^2 + 3*x + 2"), "x")
	require.True(t, ok)
	require.Len(t, roots, 2)
	found := map[string]bool{}
	for _, r := range roots {
		found[st.String(r)] = true
	}
	assert.True(t, found["-1"] && found["-2"])

	roots, ok = solver.SolveUnivariate(st, parse(t, st, "x^2 - 2"), "x")
	require.True(t, ok)
	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.Contains(t, st.String(r), "^(1/2)")
	}
}

func TestEndToEndDomainAwareSqrt(t *testing.T) {
	st := expr.NewStore()
	e := parse(t, st, "(x^2)^(1/2)")

	ctx := assume.NewContext()
	ctx.Assume("x", assume.Positive)
	assert.Equal(t, st.Sym("x"), simplify.SimplifyWith(st, e, ctx))

	ctx = assume.NewContext()
	ctx.Assume("x", assume.Real)
	assert.Equal(t, st.Func("abs", []expr.ID{st.Sym("x")}), simplify.SimplifyWith(st, e, ctx))

	// With no assumptions the square root of a square stays put (the
	// parsed 1/2 exponent is itself canonicalized to a rational).
	stay := st.Pow(st.Pow(st.Sym("x"), st.Int(2)), st.Rat(1, 2))
	assert.Equal(t, stay, simplify.Simplify(st, e))
}

func TestEndToEndPythagorean(t *testing.T) {
	st := expr.NewStore()
	got := simplify.Simplify(st, parse(t, st, "sin(x)^2 + cos(x)^2"))
	assert.Equal(t, st.Int(1), got)
}

func TestEndToEndHashConsing(t *testing.T) {
	st := expr.NewStore()
	a := parse(t, st, "x + 1")
	b := parse(t, st, "x + 1")
	assert.Equal(t, a, b)
}

func TestEndToEndRootsSubstituteToZero(t *testing.T) {
	st := expr.NewStore()
	p := parse(t, st, "x^3 - x")
	roots, ok := solver.SolveUnivariate(st, p, "x")
	require.True(t, ok)
	require.Len(t, roots, 3)
	for _, r := range roots {
		sub := pattern.SubstSymbol(st, p, "x", r)
		assert.Equal(t, st.Int(0), simplify.Simplify(st, sub))
	}
}
