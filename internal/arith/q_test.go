package arith

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizes(t *testing.T) {
	assert.Equal(t, Q{1, 2}, New(2, 4), "should reduce to lowest terms")
	assert.Equal(t, Q{-1, 2}, New(1, -2), "denominator should be made positive")
	assert.Equal(t, Q{0, 1}, New(0, -7), "zero should normalize to 0/1")
	assert.Equal(t, Q{3, 1}, New(-9, -3))
}

func TestNewZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
}

func TestBasicOps(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)

	assert.Equal(t, New(5, 6), Add(half, third))
	assert.Equal(t, New(1, 6), Sub(half, third))
	assert.Equal(t, New(1, 6), Mul(half, third))
	assert.Equal(t, New(3, 2), Div(half, third))
	assert.Equal(t, New(-1, 2), Neg(half))
}

func TestAddCancelsToZero(t *testing.T) {
	a := New(2, 3)
	b := New(-2, 3)
	sum := Add(a, b)
	assert.True(t, sum.IsZero())
	assert.Equal(t, Zero(), sum)
}

func TestDivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Div(One(), Zero()) })
}

func TestPredicates(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.True(t, One().IsOne())
	assert.True(t, FromInt(5).IsInt())
	assert.False(t, New(1, 2).IsInt())
	assert.Equal(t, -1, New(-3, 7).Sign())
	assert.Equal(t, 1, New(3, 7).Sign())
	assert.Equal(t, 0, Zero().Sign())
}

func TestGcdLcm(t *testing.T) {
	assert.Equal(t, int64(6), Gcd64(12, 18))
	assert.Equal(t, int64(6), Gcd64(-12, 18))
	assert.Equal(t, int64(5), Gcd64(0, 5))
	assert.Equal(t, int64(36), Lcm64(12, 18))
	assert.Equal(t, int64(0), Lcm64(0, 5))
}

func TestOverflowSaturates(t *testing.T) {
	huge := FromInt(math.MaxInt64)
	prod := Mul(huge, FromInt(2))
	require.False(t, prod.IsValid(), "overflowing product should be the sentinel")

	// The sentinel poisons any expression it participates in.
	assert.False(t, Add(prod, One()).IsValid())
	assert.False(t, Mul(prod, Zero()).IsValid())
	assert.False(t, Neg(prod).IsValid())
}

func TestCrossReductionAvoidsSpuriousOverflow(t *testing.T) {
	big := New(math.MaxInt64, 2)
	two := New(2, math.MaxInt64)
	prod := Mul(big, two)
	require.True(t, prod.IsValid())
	assert.Equal(t, One(), prod)
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, Cmp(New(1, 3), New(1, 2)))
	assert.Equal(t, 0, Cmp(New(2, 4), New(1, 2)))
	assert.Equal(t, 1, Cmp(One(), Zero()))
}
