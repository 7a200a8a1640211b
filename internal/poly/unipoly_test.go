package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/arith"
)

func q(n, d int64) arith.Q { return arith.New(n, d) }

// mk builds a polynomial in x from low-order-first integer coefficients.
func mk(coeffs ...int64) UniPoly {
	qs := make([]arith.Q, len(coeffs))
	for i, c := range coeffs {
		qs[i] = arith.FromInt(c)
	}
	return New("x", qs)
}

func TestZeroAndDegree(t *testing.T) {
	p := Zero("x")
	assert.True(t, p.IsZero())
	_, ok := p.Degree()
	assert.False(t, ok)
	assert.Equal(t, arith.Zero(), p.LeadingCoeff())

	lin := mk(3, 2) // 2x + 3
	deg, ok := lin.Degree()
	require.True(t, ok)
	assert.Equal(t, 1, deg)
	assert.Equal(t, q(2, 1), lin.LeadingCoeff())
}

func TestTrailingZerosTrimmed(t *testing.T) {
	p := New("x", []arith.Q{q(1, 1), q(0, 1), q(0, 1)})
	deg, ok := p.Degree()
	require.True(t, ok)
	assert.Equal(t, 0, deg)
}

func TestEvalHorner(t *testing.T) {
	p := mk(1, 2, 1) // (x+1)^2
	v, ok := p.Eval(q(2, 1))
	require.True(t, ok)
	assert.Equal(t, q(9, 1), v)
}

func TestDeriv(t *testing.T) {
	p := mk(2, 3, 1) // x^2 + 3x + 2
	assert.Equal(t, mk(3, 2), p.Deriv())
	assert.True(t, mk(5).Deriv().IsZero())
}

func TestAddSubMul(t *testing.T) {
	a := mk(1)
	b := mk(1, 1, 1)
	assert.Equal(t, mk(2, 1, 1), a.Add(b))
	assert.Equal(t, mk(3, 2), mk(5, 3).Sub(mk(2, 1)))
	assert.True(t, mk(1, 2).Mul(Zero("x")).IsZero())

	// (x+1)(x+2) = x^2 + 3x + 2
	assert.Equal(t, mk(2, 3, 1), mk(1, 1).Mul(mk(2, 1)))
}

func TestDivRem(t *testing.T) {
	// (x^2 + 3x + 2) / (x + 1) = x + 2, remainder 0
	p := mk(2, 3, 1)
	d := mk(1, 1)
	quot, rem, err := p.DivRem(d)
	require.NoError(t, err)
	assert.True(t, rem.IsZero())
	assert.Equal(t, mk(2, 1), quot)

	// The division law a = q*b + r with deg r < deg b.
	a := mk(7, -4, 0, 2, 5)
	b := mk(1, 0, 3)
	quot, rem, err = a.DivRem(b)
	require.NoError(t, err)
	assert.Equal(t, a, quot.Mul(b).Add(rem))
	rdeg, ok := rem.Degree()
	if ok {
		bdeg, _ := b.Degree()
		assert.Less(t, rdeg, bdeg)
	}
}

func TestDivRemByZero(t *testing.T) {
	_, _, err := mk(1).DivRem(Zero("x"))
	assert.ErrorIs(t, err, ErrZeroDivisor)
}

func TestGCD(t *testing.T) {
	// gcd(x^2 - 1, x^2 - x) = x - 1
	g := GCD(mk(-1, 0, 1), mk(0, -1, 1))
	assert.Equal(t, mk(-1, 1), g)

	// GCD divides both inputs and is monic.
	a := mk(1, 1).Mul(mk(2, 1)) // (x+1)(x+2)
	b := mk(1, 1).Mul(mk(3, 1)) // (x+1)(x+3)
	g = GCD(a, b)
	assert.Equal(t, arith.One(), g.LeadingCoeff())
	_, r1, err := a.DivRem(g)
	require.NoError(t, err)
	assert.True(t, r1.IsZero())
	_, r2, err := b.DivRem(g)
	require.NoError(t, err)
	assert.True(t, r2.IsZero())
}

func TestMonic(t *testing.T) {
	p := mk(2, 4)
	assert.Equal(t, arith.One(), p.Monic().LeadingCoeff())
	assert.True(t, Zero("x").Monic().IsZero())
}

func TestSquareFreePart(t *testing.T) {
	// (x-1)^2 -> x - 1
	sq := mk(1, -2, 1)
	assert.Equal(t, mk(-1, 1), sq.SquareFreePart())

	// x^2(x-1)^3 -> x(x-1), degree 2
	p := mk(0, 0, -1, 3, -3, 1)
	sf := p.SquareFreePart()
	deg, ok := sf.Degree()
	require.True(t, ok)
	assert.Equal(t, 2, deg)

	// Already square-free stays put (monic).
	lin := mk(1, 1)
	assert.Equal(t, lin, lin.SquareFreePart())
}

func TestResultant(t *testing.T) {
	// No common root: res(x-1, x-2) = -1
	res, ok := Resultant(mk(-1, 1), mk(-2, 1))
	require.True(t, ok)
	assert.Equal(t, q(-1, 1), res)

	// Common root at 1: res = 0
	res, ok = Resultant(mk(2, -3, 1), mk(3, -4, 1))
	require.True(t, ok)
	assert.True(t, res.IsZero())

	// res(2x+3, 4x+5) = 2*5 - 3*4 = -2
	res, ok = Resultant(mk(3, 2), mk(5, 4))
	require.True(t, ok)
	assert.Equal(t, q(-2, 1), res)

	// Constant f: res(3, x^2+1) = 3^2
	res, ok = Resultant(mk(3), mk(1, 0, 1))
	require.True(t, ok)
	assert.Equal(t, q(9, 1), res)

	// Both zero is undefined.
	_, ok = Resultant(Zero("x"), Zero("x"))
	assert.False(t, ok)
}

func TestDiscriminant(t *testing.T) {
	// x^2 - 3x + 2: disc = 9 - 8 = 1
	d, ok := mk(2, -3, 1).Discriminant()
	require.True(t, ok)
	assert.Equal(t, q(1, 1), d)

	// Repeated root (x-1)^2: disc = 0
	d, ok = mk(1, -2, 1).Discriminant()
	require.True(t, ok)
	assert.True(t, d.IsZero())

	// Cubic x^3 + x + 1: disc = -4p^3 - 27q^2 = -31
	d, ok = mk(1, 1, 0, 1).Discriminant()
	require.True(t, ok)
	assert.Equal(t, q(-31, 1), d)

	// Constant has no discriminant.
	_, ok = mk(5).Discriminant()
	assert.False(t, ok)
}

func TestFindRationalRoot(t *testing.T) {
	// 2x^2 - x - 1 has roots 1 and -1/2.
	r, ok := FindRationalRoot(mk(-1, -1, 2))
	require.True(t, ok)
	v, _ := mk(-1, -1, 2).Eval(r)
	assert.True(t, v.IsZero())

	// x^2 + 1 has no rational roots.
	_, ok = FindRationalRoot(mk(1, 0, 1))
	assert.False(t, ok)

	// Zero constant term: 0 is a root.
	r, ok = FindRationalRoot(mk(0, -1, 1))
	require.True(t, ok)
	assert.True(t, r.IsZero())
}

func TestDeflateByRoot(t *testing.T) {
	// (x-2)(x+3) = x^2 + x - 6, deflate by 2 -> x + 3
	p := mk(-6, 1, 1)
	d, ok := DeflateByRoot(p, q(2, 1))
	require.True(t, ok)
	assert.Equal(t, mk(3, 1), d)

	// Non-root fails.
	_, ok = DeflateByRoot(p, q(5, 1))
	assert.False(t, ok)
}

func TestFactor(t *testing.T) {
	// 2(x-1)(x-2)(x-3) = 2x^3 - 12x^2 + 22x - 12
	p := mk(-12, 22, -12, 2)
	content, roots, rest := Factor(p)
	assert.Equal(t, q(2, 1), content)
	assert.Len(t, roots, 3)
	deg, ok := rest.Degree()
	if ok {
		assert.Equal(t, 0, deg)
	}

	// x^2 + 1 is irreducible for rational-root factoring.
	_, roots, rest = Factor(mk(1, 0, 1))
	assert.Empty(t, roots)
	deg, ok = rest.Degree()
	require.True(t, ok)
	assert.Equal(t, 2, deg)
}

func TestPartialFractionsSimple(t *testing.T) {
	// (2x+3)/(x^2+3x+2) = 1/(x+1) + 1/(x+2)
	num := mk(3, 2)
	den := mk(2, 3, 1)
	quot, terms, ok := PartialFractionsSimple(num, den)
	require.True(t, ok)
	assert.True(t, quot.IsZero())
	require.Len(t, terms, 2)
	found := map[int64]arith.Q{}
	for _, term := range terms {
		require.True(t, term.Root.IsInt())
		found[term.Root.Num] = term.Residue
	}
	assert.Equal(t, arith.One(), found[-1])
	assert.Equal(t, arith.One(), found[-2])
}

func TestPartialFractionsImproper(t *testing.T) {
	// x^3/(x+1): quotient x^2 - x + 1, one term at root -1.
	num := mk(0, 0, 0, 1)
	den := mk(1, 1)
	quot, terms, ok := PartialFractionsSimple(num, den)
	require.True(t, ok)
	deg, degOK := quot.Degree()
	require.True(t, degOK)
	assert.Equal(t, 2, deg)
	require.Len(t, terms, 1)
	assert.Equal(t, q(-1, 1), terms[0].Root)
}

func TestPartialFractionsRejects(t *testing.T) {
	// Repeated root (x+1)^2.
	_, _, ok := PartialFractionsSimple(mk(1, 1), mk(1, 2, 1))
	assert.False(t, ok)

	// Irrational roots x^2 + 1.
	_, _, ok = PartialFractionsSimple(mk(1), mk(1, 0, 1))
	assert.False(t, ok)

	// Mismatched variables.
	_, _, ok = PartialFractionsSimple(mk(1), New("y", []arith.Q{q(1, 1), q(1, 1)}))
	assert.False(t, ok)
}
