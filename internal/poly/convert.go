package poly

import (
	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
)

// FromExpr converts an expression to a univariate polynomial in the named
// variable. It succeeds when the expression is a finite sum of terms, each a
// rational coefficient times a non-negative integer power of the variable.
func FromExpr(st *expr.Store, id expr.ID, variable string) (UniPoly, bool) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpAdd:
		acc := Zero(variable)
		for _, t := range n.Children {
			term, ok := FromExpr(st, t, variable)
			if !ok {
				return UniPoly{}, false
			}
			acc = acc.Add(term)
		}
		return acc, true
	case expr.OpInteger, expr.OpRational, expr.OpSymbol, expr.OpPow, expr.OpMul:
		coeff, k, ok := termToMonomial(st, id, variable)
		if !ok {
			return UniPoly{}, false
		}
		coeffs := make([]arith.Q, k+1)
		for i := range coeffs {
			coeffs[i] = arith.Zero()
		}
		coeffs[k] = coeff
		return New(variable, coeffs), true
	}
	return UniPoly{}, false
}

// termToMonomial decomposes a single term into coeff * variable^k.
func termToMonomial(st *expr.Store, id expr.ID, variable string) (arith.Q, int, bool) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger, expr.OpRational:
		q, _ := n.AsRat()
		return q, 0, true
	case expr.OpSymbol:
		if n.Payload.Str == variable {
			return arith.One(), 1, true
		}
		return arith.Q{}, 0, false
	case expr.OpPow:
		k, ok := powOfVar(st, id, variable)
		if !ok {
			return arith.Q{}, 0, false
		}
		return arith.One(), k, true
	case expr.OpMul:
		coeff := arith.One()
		k := 0
		for _, f := range n.Children {
			fn := st.Get(f)
			if q, ok := fn.AsRat(); ok {
				coeff = arith.Mul(coeff, q)
				continue
			}
			if fn.Op == expr.OpSymbol && fn.Payload.Str == variable {
				k++
				continue
			}
			if fn.Op == expr.OpPow {
				kk, ok := powOfVar(st, f, variable)
				if !ok {
					return arith.Q{}, 0, false
				}
				k += kk
				continue
			}
			return arith.Q{}, 0, false
		}
		if !coeff.IsValid() {
			return arith.Q{}, 0, false
		}
		return coeff, k, true
	}
	return arith.Q{}, 0, false
}

// powOfVar recognizes variable^k with integer k >= 0.
func powOfVar(st *expr.Store, id expr.ID, variable string) (int, bool) {
	n := st.Get(id)
	base := st.Get(n.Children[0])
	exp := st.Get(n.Children[1])
	if base.Op != expr.OpSymbol || base.Payload.Str != variable {
		return 0, false
	}
	if exp.Op != expr.OpInteger || exp.Payload.Int < 0 {
		return 0, false
	}
	return int(exp.Payload.Int), true
}

// ToExpr emits the polynomial as a canonical sum of coeff * var^k terms.
func ToExpr(st *expr.Store, p UniPoly) expr.ID {
	if p.IsZero() {
		return st.Int(0)
	}
	x := st.Sym(p.Var)
	var terms []expr.ID
	for k, c := range p.Coeffs {
		if c.IsZero() {
			continue
		}
		coeff := st.RatQ(c)
		var term expr.ID
		if k == 0 {
			term = coeff
		} else {
			pow := st.Pow(x, st.Int(int64(k)))
			term = st.Mul([]expr.ID{coeff, pow})
		}
		terms = append(terms, term)
	}
	return st.Add(terms)
}
