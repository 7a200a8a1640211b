package poly

import "symmetrica/internal/arith"

// rootSearchBudget bounds the number of p/q candidates tried per rational
// root search, so pathological coefficients with huge divisor counts cannot
// stall the solver.
const rootSearchBudget = 1 << 16

// clearDenominators scales p by the least common multiple of its coefficient
// denominators and returns the resulting integer coefficients. Returns false
// when the scaling overflows.
func clearDenominators(p UniPoly) ([]int64, bool) {
	l := int64(1)
	for _, c := range p.Coeffs {
		if !c.IsValid() {
			return nil, false
		}
		l = arith.Lcm64(l, c.Den)
		if l == 0 {
			return nil, false
		}
	}
	ints := make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		scaled := arith.Mul(c, arith.FromInt(l))
		if !scaled.IsValid() || !scaled.IsInt() {
			return nil, false
		}
		ints[i] = scaled.Num
	}
	return ints, true
}

// divisors returns the positive divisors of |n|; divisors(0) is just {0} and
// is handled specially by callers.
func divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return []int64{0}
	}
	var ds []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i == 0 {
			ds = append(ds, i)
			if i != n/i {
				ds = append(ds, n/i)
			}
		}
	}
	return ds
}

// FindRationalRoot searches for a rational root p/q of the polynomial via
// the Rational Root Theorem: after clearing denominators, p divides the
// constant term and q divides the leading coefficient. Returns false when no
// rational root exists or the search budget is exhausted.
func FindRationalRoot(p UniPoly) (arith.Q, bool) {
	deg, ok := p.Degree()
	if !ok || deg == 0 {
		return arith.Q{}, false
	}
	ints, ok := clearDenominators(p)
	if !ok {
		return arith.Q{}, false
	}
	// Strip a common x^k factor first: zero constant term means 0 is a
	// root.
	if ints[0] == 0 {
		return arith.Zero(), true
	}
	lc := ints[len(ints)-1]
	ct := ints[0]
	tried := 0
	for _, qd := range divisors(lc) {
		if qd == 0 {
			continue
		}
		for _, pn := range divisors(ct) {
			for _, r := range []arith.Q{
				arith.New(pn, qd), arith.New(-pn, qd),
			} {
				tried++
				if tried > rootSearchBudget {
					return arith.Q{}, false
				}
				v, ok := p.Eval(r)
				if ok && v.IsZero() {
					return r, true
				}
			}
		}
	}
	return arith.Q{}, false
}

// DeflateByRoot divides p by (x - r) using synthetic division. Returns false
// when r is not actually a root.
func DeflateByRoot(p UniPoly, r arith.Q) (UniPoly, bool) {
	if p.IsZero() {
		return p, false
	}
	out := make([]arith.Q, 0, len(p.Coeffs)-1)
	acc := arith.Zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = arith.Add(arith.Mul(acc, r), p.Coeffs[i])
		out = append(out, acc)
	}
	if !acc.IsValid() || !acc.IsZero() {
		return UniPoly{}, false
	}
	// out currently holds the quotient coefficients high-order first with
	// the remainder appended; drop the remainder and reverse.
	out = out[:len(out)-1]
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return New(p.Var, out), true
}

// Factor splits p over Q by repeated rational-root extraction: each root r
// contributes a linear factor (x - r); whatever remains when no further
// rational root exists is kept as a single irreducible (over this method)
// factor. The leading coefficient is returned separately so that
// content * prod(factors) == p.
func Factor(p UniPoly) (content arith.Q, linear []arith.Q, remainder UniPoly) {
	if p.IsZero() {
		return arith.Zero(), nil, p
	}
	content = p.LeadingCoeff()
	work := p.Monic()
	for {
		deg, ok := work.Degree()
		if !ok || deg == 0 {
			break
		}
		r, found := FindRationalRoot(work)
		if !found {
			break
		}
		next, ok := DeflateByRoot(work, r)
		if !ok {
			break
		}
		linear = append(linear, r)
		work = next
	}
	return content, linear, work
}
