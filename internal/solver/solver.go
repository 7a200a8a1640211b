// Package solver finds roots of univariate polynomial equations over Q,
// with closed forms for degrees one and two and rational-root deflation for
// higher degrees, plus pattern entry points for simple transcendental
// equations.
package solver

import (
	"math"

	"github.com/tliron/commonlog"

	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
	"symmetrica/internal/poly"
)

var log = commonlog.GetLogger("symmetrica.solver")

// SolveUnivariate solves p(x) = 0 where id converts to a polynomial in the
// named variable. The whole call fails when the polynomial cannot be
// factored down to degree <= 2 by rational-root deflation; partial results
// are discarded rather than returned.
func SolveUnivariate(st *expr.Store, id expr.ID, variable string) ([]expr.ID, bool) {
	p, ok := poly.FromExpr(st, id, variable)
	if !ok {
		return nil, false
	}
	if p.IsZero() {
		// 0 = 0: satisfied everywhere, no finite roots to enumerate.
		return []expr.ID{}, true
	}

	var roots []expr.ID
	work := p
	for {
		deg, nonzero := work.Degree()
		if !nonzero || deg == 0 {
			break
		}
		switch deg {
		case 1:
			r, ok := solveLinear(st, work)
			if !ok {
				return nil, false
			}
			roots = append(roots, r...)
			return roots, true
		case 2:
			r, ok := solveQuadratic(st, work)
			if !ok {
				return nil, false
			}
			roots = append(roots, r...)
			return roots, true
		default:
			r, found := poly.FindRationalRoot(work)
			if !found {
				log.Debugf("no rational root at degree %d, giving up", deg)
				return nil, false
			}
			next, ok := poly.DeflateByRoot(work, r)
			if !ok {
				return nil, false
			}
			roots = append(roots, st.RatQ(r))
			work = next
		}
	}
	return roots, true
}

// solveLinear solves a1*x + a0 = 0.
func solveLinear(st *expr.Store, p poly.UniPoly) ([]expr.ID, bool) {
	a0 := p.Coeff(0)
	a1 := p.Coeff(1)
	if a1.IsZero() {
		return nil, false
	}
	root := arith.Div(arith.Neg(a0), a1)
	if !root.IsValid() {
		return nil, false
	}
	return []expr.ID{st.RatQ(root)}, true
}

// solveQuadratic solves a2*x^2 + a1*x + a0 = 0. Rational roots come out as
// rationals when the discriminant is a perfect square; otherwise the two
// roots are emitted symbolically as (-b +/- sqrt(D)) / (2a).
func solveQuadratic(st *expr.Store, p poly.UniPoly) ([]expr.ID, bool) {
	a0 := p.Coeff(0)
	a1 := p.Coeff(1)
	a2 := p.Coeff(2)
	if a2.IsZero() {
		return solveLinear(st, p)
	}
	// D = a1^2 - 4*a2*a0
	d := arith.Sub(arith.Mul(a1, a1), arith.Mul(arith.FromInt(4), arith.Mul(a2, a0)))
	if !d.IsValid() {
		return nil, false
	}
	minusB := arith.Neg(a1)
	twoA := arith.Mul(arith.FromInt(2), a2)

	if sq, ok := sqrtExact(d); ok {
		r1 := arith.Div(arith.Add(minusB, sq), twoA)
		r2 := arith.Div(arith.Sub(minusB, sq), twoA)
		if !r1.IsValid() || !r2.IsValid() {
			return nil, false
		}
		return []expr.ID{st.RatQ(r1), st.RatQ(r2)}, true
	}

	// Symbolic roots: (1/(2a)) * (-b +/- D^(1/2)).
	numBase := st.RatQ(minusB)
	sqrtD := st.Pow(st.RatQ(d), st.Rat(1, 2))
	invTwoA := st.RatQ(arith.Inv(twoA))
	plus := st.Mul([]expr.ID{invTwoA, st.Add([]expr.ID{numBase, sqrtD})})
	negSqrt := st.Mul([]expr.ID{st.Int(-1), sqrtD})
	minus := st.Mul([]expr.ID{invTwoA, st.Add([]expr.ID{numBase, negSqrt})})
	return []expr.ID{plus, minus}, true
}

// sqrtExact returns the rational square root of q when both numerator and
// denominator are perfect squares.
func sqrtExact(q arith.Q) (arith.Q, bool) {
	if !q.IsValid() || q.Sign() < 0 {
		return arith.Q{}, false
	}
	sn, okN := isqrt(q.Num)
	sd, okD := isqrt(q.Den)
	if !okN || !okD {
		return arith.Q{}, false
	}
	return arith.New(sn, sd), true
}

func isqrt(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	r := int64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	if r*r == n {
		return r, true
	}
	return 0, false
}
