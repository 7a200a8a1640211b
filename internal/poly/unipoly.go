// Package poly implements dense univariate polynomials over exact rationals:
// division with remainder, Euclidean GCD, square-free parts, factorization by
// rational-root extraction, resultants and discriminants, and simple partial
// fractions. A bridge converts between store expressions and polynomials.
package poly

import (
	"errors"
	"fmt"

	"symmetrica/internal/arith"
	"symmetrica/internal/matrix"
)

// ErrZeroDivisor is returned by DivRem when the divisor is the zero
// polynomial.
var ErrZeroDivisor = errors.New("poly: division by zero polynomial")

// errSaturated aborts reductions whose coefficients overflowed i64 range.
var errSaturated = errors.New("poly: rational arithmetic saturated")

// UniPoly is a dense univariate polynomial over Q. Coeffs[k] is the
// coefficient of Var^k; trailing zeros are trimmed, and the zero polynomial
// has an empty coefficient slice.
type UniPoly struct {
	Var    string
	Coeffs []arith.Q
}

// New builds a polynomial from low-order-first coefficients, trimming
// trailing zeros.
func New(variable string, coeffs []arith.Q) UniPoly {
	trimmed := make([]arith.Q, len(coeffs))
	copy(trimmed, coeffs)
	for len(trimmed) > 0 && trimmed[len(trimmed)-1].IsZero() {
		trimmed = trimmed[:len(trimmed)-1]
	}
	return UniPoly{Var: variable, Coeffs: trimmed}
}

// Zero returns the zero polynomial in the given variable.
func Zero(variable string) UniPoly { return UniPoly{Var: variable} }

// IsZero reports whether p is the zero polynomial.
func (p UniPoly) IsZero() bool { return len(p.Coeffs) == 0 }

// Degree returns the degree and true, or false for the zero polynomial.
func (p UniPoly) Degree() (int, bool) {
	if p.IsZero() {
		return 0, false
	}
	return len(p.Coeffs) - 1, true
}

// LeadingCoeff returns the leading coefficient, zero for the zero
// polynomial.
func (p UniPoly) LeadingCoeff() arith.Q {
	if p.IsZero() {
		return arith.Zero()
	}
	return p.Coeffs[len(p.Coeffs)-1]
}

// Coeff returns the coefficient of Var^k (zero beyond the degree).
func (p UniPoly) Coeff(k int) arith.Q {
	if k < 0 || k >= len(p.Coeffs) {
		return arith.Zero()
	}
	return p.Coeffs[k]
}

// Eval evaluates p at x by Horner's method. The second result is false when
// the exact arithmetic saturates.
func (p UniPoly) Eval(x arith.Q) (arith.Q, bool) {
	acc := arith.Zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = arith.Add(arith.Mul(acc, x), p.Coeffs[i])
	}
	if !acc.IsValid() {
		return arith.Q{}, false
	}
	return acc, true
}

// Deriv returns the formal derivative.
func (p UniPoly) Deriv() UniPoly {
	if len(p.Coeffs) <= 1 {
		return Zero(p.Var)
	}
	out := make([]arith.Q, 0, len(p.Coeffs)-1)
	for k := 1; k < len(p.Coeffs); k++ {
		out = append(out, arith.Mul(p.Coeffs[k], arith.FromInt(int64(k))))
	}
	return New(p.Var, out)
}

// Add returns p + q. The variables must agree.
func (p UniPoly) Add(q UniPoly) UniPoly {
	mustSameVar(p, q)
	n := max(len(p.Coeffs), len(q.Coeffs))
	out := make([]arith.Q, n)
	for i := 0; i < n; i++ {
		out[i] = arith.Add(p.Coeff(i), q.Coeff(i))
	}
	return New(p.Var, out)
}

// Sub returns p - q.
func (p UniPoly) Sub(q UniPoly) UniPoly {
	mustSameVar(p, q)
	n := max(len(p.Coeffs), len(q.Coeffs))
	out := make([]arith.Q, n)
	for i := 0; i < n; i++ {
		out[i] = arith.Sub(p.Coeff(i), q.Coeff(i))
	}
	return New(p.Var, out)
}

// Mul returns p * q.
func (p UniPoly) Mul(q UniPoly) UniPoly {
	mustSameVar(p, q)
	if p.IsZero() || q.IsZero() {
		return Zero(p.Var)
	}
	out := make([]arith.Q, len(p.Coeffs)+len(q.Coeffs)-1)
	for i := range out {
		out[i] = arith.Zero()
	}
	for i, a := range p.Coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coeffs {
			if b.IsZero() {
				continue
			}
			out[i+j] = arith.Add(out[i+j], arith.Mul(a, b))
		}
	}
	return New(p.Var, out)
}

// Scale returns c * p.
func (p UniPoly) Scale(c arith.Q) UniPoly {
	out := make([]arith.Q, len(p.Coeffs))
	for i, a := range p.Coeffs {
		out[i] = arith.Mul(a, c)
	}
	return New(p.Var, out)
}

// Monic divides p by its leading coefficient. The zero polynomial is
// returned unchanged.
func (p UniPoly) Monic() UniPoly {
	if p.IsZero() {
		return p
	}
	return p.Scale(arith.Inv(p.LeadingCoeff()))
}

// DivRem computes p = q*div + r with deg r < deg div.
func (p UniPoly) DivRem(div UniPoly) (q, r UniPoly, err error) {
	mustSameVar(p, div)
	if div.IsZero() {
		return UniPoly{}, UniPoly{}, ErrZeroDivisor
	}
	r = p
	q = Zero(p.Var)
	ddeg, _ := div.Degree()
	dlc := div.LeadingCoeff()
	for {
		rdeg, ok := r.Degree()
		if !ok || rdeg < ddeg {
			break
		}
		if !r.LeadingCoeff().IsValid() {
			// Saturated arithmetic can no longer cancel the leading
			// term; reducing further would loop forever.
			return UniPoly{}, UniPoly{}, errSaturated
		}
		shift := rdeg - ddeg
		coeff := arith.Div(r.LeadingCoeff(), dlc)
		qc := make([]arith.Q, shift+1)
		for i := range qc {
			qc[i] = arith.Zero()
		}
		qc[shift] = coeff
		step := New(p.Var, qc)
		q = q.Add(step)
		r = r.Sub(step.Mul(div))
	}
	return q, r, nil
}

// GCD returns the monic Euclidean greatest common divisor of a and b.
func GCD(a, b UniPoly) UniPoly {
	mustSameVar(a, b)
	for !b.IsZero() {
		_, r, err := a.DivRem(b)
		if err != nil {
			// Saturated coefficients: stop with the best divisor found.
			break
		}
		a, b = b, r
	}
	return a.Monic()
}

// SquareFreePart returns the monic p / gcd(p, p'): a polynomial with the
// same roots as p, each at multiplicity one.
func (p UniPoly) SquareFreePart() UniPoly {
	if p.IsZero() {
		return p
	}
	m := p.Monic()
	d := m.Deriv()
	if d.IsZero() {
		return m
	}
	g := GCD(m, d)
	if deg, ok := g.Degree(); !ok || deg == 0 {
		return m
	}
	q, _, err := m.DivRem(g)
	if err != nil {
		return m
	}
	return q.Monic()
}

// Resultant computes res(f, g) via the determinant of the Sylvester matrix.
// It is zero exactly when f and g share a non-constant common factor.
// Returns false when both inputs are zero or the matrix arithmetic
// saturates.
func Resultant(f, g UniPoly) (arith.Q, bool) {
	mustSameVar(f, g)
	if f.IsZero() && g.IsZero() {
		return arith.Q{}, false
	}
	if f.IsZero() || g.IsZero() {
		return arith.Zero(), true
	}
	n, _ := f.Degree()
	m, _ := g.Degree()
	if n == 0 && m == 0 {
		return arith.One(), true
	}
	if n == 0 {
		return powQ(f.Coeffs[0], m)
	}
	if m == 0 {
		return powQ(g.Coeffs[0], n)
	}

	size := n + m
	entries := make([]arith.Q, 0, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			var v arith.Q
			if i < m {
				// First m rows carry shifted coefficients of f.
				if j >= i && j-i <= n {
					v = f.Coeffs[n-(j-i)]
				} else {
					v = arith.Zero()
				}
			} else {
				row := i - m
				if j >= row && j-row <= m {
					v = g.Coeffs[m-(j-row)]
				} else {
					v = arith.Zero()
				}
			}
			entries = append(entries, v)
		}
	}
	return matrix.New(size, size, entries).DetBareiss()
}

// Discriminant computes (-1)^(n(n-1)/2) / a_n * res(f, f'). It is zero
// exactly when f has a repeated root. Returns false for zero or constant
// polynomials.
func (p UniPoly) Discriminant() (arith.Q, bool) {
	n, ok := p.Degree()
	if !ok || n == 0 {
		return arith.Q{}, false
	}
	res, ok := Resultant(p, p.Deriv())
	if !ok {
		return arith.Q{}, false
	}
	lc := p.LeadingCoeff()
	disc := arith.Div(res, lc)
	if (n*(n-1)/2)%2 != 0 {
		disc = arith.Neg(disc)
	}
	if !disc.IsValid() {
		return arith.Q{}, false
	}
	return disc, true
}

func powQ(base arith.Q, k int) (arith.Q, bool) {
	out := arith.One()
	for i := 0; i < k; i++ {
		out = arith.Mul(out, base)
	}
	if !out.IsValid() {
		return arith.Q{}, false
	}
	return out, true
}

func mustSameVar(a, b UniPoly) {
	if a.Var != b.Var {
		panic(fmt.Sprintf("poly: variable mismatch %q vs %q", a.Var, b.Var))
	}
}
