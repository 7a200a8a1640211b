package calculus

import (
	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
	"symmetrica/internal/poly"
)

// Series is a truncated power series around 0: Coeffs[k] multiplies var^k,
// and every term of degree >= Order has been discarded.
type Series struct {
	Var    string
	Order  int
	Coeffs []arith.Q
}

// Coeff returns the coefficient of var^k (zero beyond the stored ones).
func (s Series) Coeff(k int) arith.Q {
	if k < 0 || k >= len(s.Coeffs) {
		return arith.Zero()
	}
	return s.Coeffs[k]
}

// Maclaurin expands id as a power series in the named variable around 0 up
// to (but excluding) order. Supported shapes: polynomials in the variable,
// and exp/sin/cos applied to inner series with zero constant term, plus
// ln of inner series with constant term 1. Returns false for anything else
// or when the exact arithmetic saturates.
func Maclaurin(st *expr.Store, id expr.ID, variable string, order int) (Series, bool) {
	if order <= 0 {
		return Series{}, false
	}
	coeffs, ok := maclaurinRec(st, id, variable, order)
	if !ok {
		return Series{}, false
	}
	for _, c := range coeffs {
		if !c.IsValid() {
			return Series{}, false
		}
	}
	return Series{Var: variable, Order: order, Coeffs: coeffs}, true
}

func maclaurinRec(st *expr.Store, id expr.ID, variable string, order int) ([]arith.Q, bool) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger, expr.OpRational:
		q, _ := n.AsRat()
		return constSeries(q, order), true
	case expr.OpSymbol:
		if n.Payload.Str != variable {
			return nil, false
		}
		out := zeroSeries(order)
		if order > 1 {
			out[1] = arith.One()
		}
		return out, true
	case expr.OpAdd:
		acc := zeroSeries(order)
		for _, c := range n.Children {
			t, ok := maclaurinRec(st, c, variable, order)
			if !ok {
				return nil, false
			}
			acc = addSeries(acc, t)
		}
		return acc, true
	case expr.OpMul:
		acc := constSeries(arith.One(), order)
		for _, c := range n.Children {
			t, ok := maclaurinRec(st, c, variable, order)
			if !ok {
				return nil, false
			}
			acc = mulSeries(acc, t, order)
		}
		return acc, true
	case expr.OpPow:
		e := st.Get(n.Children[1])
		if e.Op != expr.OpInteger || e.Payload.Int < 0 {
			return nil, false
		}
		base, ok := maclaurinRec(st, n.Children[0], variable, order)
		if !ok {
			return nil, false
		}
		acc := constSeries(arith.One(), order)
		for i := int64(0); i < e.Payload.Int; i++ {
			acc = mulSeries(acc, base, order)
		}
		return acc, true
	case expr.OpFunction:
		if len(n.Children) != 1 {
			return nil, false
		}
		inner, ok := maclaurinRec(st, n.Children[0], variable, order)
		if !ok {
			return nil, false
		}
		switch n.Payload.Str {
		case "exp":
			return composeSeries(expCoeffs(order), inner, order)
		case "sin":
			return composeSeries(sinCoeffs(order), inner, order)
		case "cos":
			return composeSeries(cosCoeffs(order), inner, order)
		case "ln", "log":
			// ln(w) needs w(0) = 1; write w = 1 + u and use the
			// alternating harmonic coefficients.
			if !inner[0].IsOne() {
				return nil, false
			}
			u := addSeries(inner, constSeries(arith.FromInt(-1), order))
			return composeSeries(lnOnePlusCoeffs(order), u, order)
		}
		return nil, false
	}
	return nil, false
}

func zeroSeries(order int) []arith.Q {
	out := make([]arith.Q, order)
	for i := range out {
		out[i] = arith.Zero()
	}
	return out
}

func constSeries(c arith.Q, order int) []arith.Q {
	out := zeroSeries(order)
	out[0] = c
	return out
}

func addSeries(a, b []arith.Q) []arith.Q {
	out := make([]arith.Q, len(a))
	for i := range a {
		out[i] = arith.Add(a[i], b[i])
	}
	return out
}

func mulSeries(a, b []arith.Q, order int) []arith.Q {
	out := zeroSeries(order)
	for i := 0; i < order; i++ {
		if a[i].IsZero() {
			continue
		}
		for j := 0; i+j < order; j++ {
			if b[j].IsZero() {
				continue
			}
			out[i+j] = arith.Add(out[i+j], arith.Mul(a[i], b[j]))
		}
	}
	return out
}

// composeSeries substitutes the inner series (which must have zero constant
// term) into sum_k outer[k] * u^k.
func composeSeries(outer []arith.Q, inner []arith.Q, order int) ([]arith.Q, bool) {
	if !inner[0].IsZero() {
		return nil, false
	}
	acc := constSeries(outer[0], order)
	power := constSeries(arith.One(), order)
	for k := 1; k < len(outer); k++ {
		power = mulSeries(power, inner, order)
		if outer[k].IsZero() {
			continue
		}
		scaled := make([]arith.Q, order)
		for i := range power {
			scaled[i] = arith.Mul(power[i], outer[k])
		}
		acc = addSeries(acc, scaled)
	}
	return acc, true
}

func expCoeffs(order int) []arith.Q {
	out := make([]arith.Q, order)
	fact := arith.One()
	for k := 0; k < order; k++ {
		if k > 0 {
			fact = arith.Mul(fact, arith.FromInt(int64(k)))
		}
		out[k] = arith.Div(arith.One(), fact)
	}
	return out
}

func sinCoeffs(order int) []arith.Q {
	out := zeroSeries(order)
	fact := arith.One()
	sign := int64(1)
	for k := 0; k < order; k++ {
		if k > 0 {
			fact = arith.Mul(fact, arith.FromInt(int64(k)))
		}
		if k%2 == 1 {
			out[k] = arith.Div(arith.FromInt(sign), fact)
			sign = -sign
		}
	}
	return out
}

func cosCoeffs(order int) []arith.Q {
	out := zeroSeries(order)
	fact := arith.One()
	sign := int64(1)
	for k := 0; k < order; k++ {
		if k > 0 {
			fact = arith.Mul(fact, arith.FromInt(int64(k)))
		}
		if k%2 == 0 {
			out[k] = arith.Div(arith.FromInt(sign), fact)
			sign = -sign
		}
	}
	return out
}

func lnOnePlusCoeffs(order int) []arith.Q {
	out := zeroSeries(order)
	sign := int64(1)
	for k := 1; k < order; k++ {
		out[k] = arith.New(sign, int64(k))
		sign = -sign
	}
	return out
}

// LimitPoint selects where a polynomial limit is taken.
type LimitPoint uint8

const (
	AtZero LimitPoint = iota
	AtPosInf
	AtNegInf
)

// LimitKind classifies a polynomial limit result.
type LimitKind uint8

const (
	LimitFinite LimitKind = iota
	LimitPosInfinity
	LimitNegInfinity
)

// LimitResult is the outcome of LimitPoly.
type LimitResult struct {
	Kind  LimitKind
	Value arith.Q
}

// LimitPoly evaluates the limit of a polynomial expression at 0 or at
// +/- infinity. Non-polynomial inputs return false.
func LimitPoly(st *expr.Store, id expr.ID, variable string, at LimitPoint) (LimitResult, bool) {
	p, ok := poly.FromExpr(st, id, variable)
	if !ok {
		return LimitResult{}, false
	}
	deg, nonzero := p.Degree()
	switch at {
	case AtZero:
		return LimitResult{Kind: LimitFinite, Value: p.Coeff(0)}, true
	case AtPosInf, AtNegInf:
		if !nonzero || deg == 0 {
			return LimitResult{Kind: LimitFinite, Value: p.Coeff(0)}, true
		}
		lead := p.LeadingCoeff()
		sign := lead.Sign()
		if at == AtNegInf && deg%2 == 1 {
			sign = -sign
		}
		if sign >= 0 {
			return LimitResult{Kind: LimitPosInfinity}, true
		}
		return LimitResult{Kind: LimitNegInfinity}, true
	}
	return LimitResult{}, false
}
