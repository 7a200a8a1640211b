// Package arith implements exact rational arithmetic on machine integers.
//
// A Q is a fraction of signed 64-bit integers kept in lowest terms with a
// positive denominator. Operations that would overflow 64 bits saturate and
// return the invalid sentinel (Den == 0); the sentinel propagates through
// every subsequent operation so callers only need to check validity at the
// boundary where a numeric answer is required.
package arith

import "math"

// Q is a rational number Num/Den. Invariants: gcd(|Num|, Den) == 1 and
// Den > 0 for every valid value; zero is (0, 1). Den == 0 marks the
// saturation sentinel produced by overflow.
type Q struct {
	Num int64
	Den int64
}

// Zero returns the rational 0.
func Zero() Q { return Q{0, 1} }

// One returns the rational 1.
func One() Q { return Q{1, 1} }

// FromInt returns the rational n/1.
func FromInt(n int64) Q { return Q{n, 1} }

// invalid is the saturation sentinel. It is distinguishable from every
// normalized rational because normalization guarantees Den > 0.
func invalid(sign int64) Q {
	if sign < 0 {
		return Q{math.MinInt64, 0}
	}
	return Q{math.MaxInt64, 0}
}

// New normalizes num/den into lowest terms with a positive denominator.
// A zero denominator is a programming error and panics.
func New(num, den int64) Q {
	if den == 0 {
		panic("arith: rational with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Q{0, 1}
	}
	g := Gcd64(num, den)
	return Q{num / g, den / g}
}

// IsValid reports whether q is a real rational rather than the overflow
// sentinel.
func (q Q) IsValid() bool { return q.Den != 0 }

// IsZero reports whether q is exactly zero.
func (q Q) IsZero() bool { return q.Den != 0 && q.Num == 0 }

// IsOne reports whether q is exactly one.
func (q Q) IsOne() bool { return q.Num == 1 && q.Den == 1 }

// IsInt reports whether q is an integer value.
func (q Q) IsInt() bool { return q.Den == 1 }

// Sign returns -1, 0, or 1 by the sign of q.
func (q Q) Sign() int {
	switch {
	case q.Num < 0:
		return -1
	case q.Num > 0:
		return 1
	default:
		return 0
	}
}

// Gcd64 returns the non-negative greatest common divisor of a and b.
func Gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Lcm64 returns the least common multiple of a and b, or 0 when either is 0.
func Lcm64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return (a / Gcd64(a, b)) * b
}

// mul64 multiplies with overflow detection.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 || b == math.MinInt64 && a == -1 {
		return 0, false
	}
	return p, true
}

// add64 adds with overflow detection.
func add64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func norm(num, den int64) Q {
	if den < 0 {
		if num == math.MinInt64 || den == math.MinInt64 {
			return invalid(1)
		}
		num, den = -num, -den
	}
	if num == 0 {
		return Q{0, 1}
	}
	g := Gcd64(num, den)
	return Q{num / g, den / g}
}

// Add returns a + b, saturating on overflow.
func Add(a, b Q) Q {
	if !a.IsValid() || !b.IsValid() {
		return invalid(1)
	}
	// a/b + c/d = (ad + cb) / bd, computed over a common gcd-reduced base
	// to delay overflow as long as possible.
	g := Gcd64(a.Den, b.Den)
	lhs, ok1 := mul64(a.Num, b.Den/g)
	rhs, ok2 := mul64(b.Num, a.Den/g)
	num, ok3 := add64(lhs, rhs)
	den, ok4 := mul64(a.Den, b.Den/g)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return invalid(1)
	}
	return norm(num, den)
}

// Sub returns a - b, saturating on overflow.
func Sub(a, b Q) Q { return Add(a, Neg(b)) }

// Neg returns -q.
func Neg(q Q) Q {
	if !q.IsValid() || q.Num == math.MinInt64 {
		return invalid(-1)
	}
	return Q{-q.Num, q.Den}
}

// Mul returns a * b, saturating on overflow.
func Mul(a, b Q) Q {
	if !a.IsValid() || !b.IsValid() {
		return invalid(1)
	}
	// Cross-reduce before multiplying so x/2 * 2/x style products never
	// overflow spuriously.
	g1 := Gcd64(a.Num, b.Den)
	g2 := Gcd64(b.Num, a.Den)
	num, ok1 := mul64(a.Num/g1, b.Num/g2)
	den, ok2 := mul64(a.Den/g2, b.Den/g1)
	if !ok1 || !ok2 {
		return invalid(int64(a.Sign() * b.Sign()))
	}
	return norm(num, den)
}

// Div returns a / b. Division by zero is a programming error and panics.
func Div(a, b Q) Q {
	if b.IsZero() {
		panic("arith: division by zero rational")
	}
	if !b.IsValid() {
		return invalid(1)
	}
	return Mul(a, Q{b.Den, b.Num})
}

// Inv returns 1 / q. Panics on zero.
func Inv(q Q) Q { return Div(One(), q) }

// Cmp compares a and b, returning -1, 0, or 1.
func Cmp(a, b Q) int {
	d := Sub(a, b)
	return d.Sign()
}
