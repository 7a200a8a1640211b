package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"symmetrica/internal/expr"
)

func TestHalfAngleSinSquared(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	halfX := st.Mul([]expr.ID{st.Rat(1, 2), x})
	sin2 := st.Pow(st.Func("sin", []expr.ID{halfX}), st.Int(2))

	got := simplifyTrig(st, sin2)
	assert.NotEqual(t, sin2, got, "half-angle square should expand")
	assert.Contains(t, st.String(got), "cos(x)")
}

func TestHalfAngleCosAndTan(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	halfX := st.Mul([]expr.ID{st.Rat(1, 2), x})

	cos2 := st.Pow(st.Func("cos", []expr.ID{halfX}), st.Int(2))
	got := simplifyTrig(st, cos2)
	assert.Contains(t, st.String(got), "cos(x)")

	tan2 := st.Pow(st.Func("tan", []expr.ID{halfX}), st.Int(2))
	got = simplifyTrig(st, tan2)
	assert.Contains(t, st.String(got), "cos(x)")
}

func TestHalfAngleIgnoresFullAngle(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	sin2 := st.Pow(st.Func("sin", []expr.ID{x}), st.Int(2))
	assert.Equal(t, sin2, simplifyTrig(st, sin2))
}

func TestSumToProductSinPlusSin(t *testing.T) {
	st := expr.NewStore()
	a := st.Sym("a")
	b := st.Sym("b")
	sum := st.Add([]expr.ID{
		st.Func("sin", []expr.ID{a}),
		st.Func("sin", []expr.ID{b}),
	})
	got := simplifyTrig(st, sum)
	assert.NotEqual(t, sum, got)
	s := st.String(got)
	assert.Contains(t, s, "sin")
	assert.Contains(t, s, "cos")
	assert.Equal(t, expr.OpMul, st.Get(got).Op, "result is 2 sin((a+b)/2) cos((a-b)/2)")
}

func TestSumToProductCosMinusCos(t *testing.T) {
	st := expr.NewStore()
	a := st.Sym("a")
	b := st.Sym("b")
	cosA := st.Func("cos", []expr.ID{a})
	negCosB := st.Mul([]expr.ID{st.Int(-1), st.Func("cos", []expr.ID{b})})
	diff := st.Add([]expr.ID{cosA, negCosB})

	got := simplifyTrig(st, diff)
	assert.NotEqual(t, diff, got)
	assert.Equal(t, expr.OpMul, st.Get(got).Op)
}

func TestSumToProductSkipsEqualArguments(t *testing.T) {
	st := expr.NewStore()
	x := st.Sym("x")
	// sin(x) + sin(x) is like-term territory, not sum-to-product.
	sum := st.Add([]expr.ID{st.Func("sin", []expr.ID{x}), st.Func("sin", []expr.ID{x})})
	assert.Equal(t, sum, simplifyTrig(st, sum))
}

func TestProductToSumNotApplied(t *testing.T) {
	st := expr.NewStore()
	a := st.Sym("a")
	b := st.Sym("b")
	prod := st.Mul([]expr.ID{
		st.Func("sin", []expr.ID{a}),
		st.Func("cos", []expr.ID{b}),
	})
	assert.Equal(t, prod, simplifyTrig(st, prod), "product-to-sum grows expressions and is not applied")
	assert.Equal(t, prod, Simplify(st, prod))
}
