package calculus

import (
	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
	"symmetrica/internal/pattern"
	"symmetrica/internal/poly"
	"symmetrica/internal/simplify"
)

// Integrate attempts to antidifferentiate id with respect to the named
// variable. Rules are tried conservatively in a fixed order; when none
// applies the second result is false and the caller leaves the integral
// unevaluated. Constants of integration are omitted.
func Integrate(st *expr.Store, id expr.ID, variable string) (expr.ID, bool) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger, expr.OpRational:
		// c -> c*x
		x := st.Sym(variable)
		return st.Mul([]expr.ID{id, x}), true
	case expr.OpSymbol:
		x := st.Sym(variable)
		if n.Payload.Str == variable {
			// x -> x^2/2
			x2 := st.Pow(x, st.Int(2))
			return st.Mul([]expr.ID{st.Rat(1, 2), x2}), true
		}
		// Foreign symbol behaves as a constant.
		return st.Mul([]expr.ID{id, x}), true
	case expr.OpAdd:
		terms := make([]expr.ID, len(n.Children))
		for i, c := range n.Children {
			it, ok := Integrate(st, c, variable)
			if !ok {
				return 0, false
			}
			terms[i] = it
		}
		return simplify.Simplify(st, st.Add(terms)), true
	case expr.OpMul:
		return integrateMul(st, id, variable)
	case expr.OpPow:
		return integratePow(st, id, variable)
	case expr.OpFunction:
		return integrateFunction(st, id, variable)
	}
	return 0, false
}

func integrateMul(st *expr.Store, id expr.ID, variable string) (expr.ID, bool) {
	// Rational functions first: they subsume u'/u with polynomial u and
	// handle improper fractions through long division.
	if out, ok := integrateRational(st, id, variable); ok {
		return out, true
	}

	coeff, rest := splitNumericCoeff(st, id)

	// u'/u: a factor u^-1 whose cofactor is u' up to a rational scale.
	if st.Get(rest).Op == expr.OpMul {
		if out, ok := integrateLogDerivative(st, rest, variable, coeff); ok {
			return out, true
		}
	}

	if !coeff.IsOne() {
		inner, ok := Integrate(st, rest, variable)
		if !ok {
			return 0, false
		}
		return withCoeff(st, coeff, inner), true
	}
	if rest != id {
		return Integrate(st, rest, variable)
	}
	return 0, false
}

// integrateLogDerivative recognizes products containing u^-1 whose other
// factors multiply to a rational multiple of u', yielding scale * ln(u).
func integrateLogDerivative(st *expr.Store, id expr.ID, variable string, outer arith.Q) (expr.ID, bool) {
	factors := st.Get(id).Children
	for idx, f := range factors {
		fn := st.Get(f)
		if fn.Op != expr.OpPow {
			continue
		}
		e := st.Get(fn.Children[1])
		if e.Op != expr.OpInteger || e.Payload.Int != -1 {
			continue
		}
		u := fn.Children[0]
		others := make([]expr.ID, 0, len(factors)-1)
		for j, g := range factors {
			if j != idx {
				others = append(others, g)
			}
		}
		var othersID expr.ID
		if len(others) == 0 {
			othersID = st.Int(1)
		} else {
			othersID = st.Mul(others)
		}
		du := Diff(st, u, variable)
		du = simplify.Simplify(st, du)
		coeffO, restO := splitNumericCoeff(st, othersID)
		coeffD, restD := splitNumericCoeff(st, du)
		if restO != restD || coeffD.IsZero() {
			continue
		}
		scale := arith.Mul(outer, arith.Div(coeffO, coeffD))
		if !scale.IsValid() {
			continue
		}
		lnU := st.Func("ln", []expr.ID{u})
		return withCoeff(st, scale, lnU), true
	}
	return 0, false
}

func integratePow(st *expr.Store, id expr.ID, variable string) (expr.ID, bool) {
	n := st.Get(id)
	base, exp := n.Children[0], n.Children[1]
	b := st.Get(base)
	if b.Op == expr.OpSymbol && b.Payload.Str == variable {
		e := st.Get(exp)
		if e.Op == expr.OpInteger {
			k := e.Payload.Int
			if k == -1 {
				// x^-1 -> ln(x)
				return st.Func("ln", []expr.ID{base}), true
			}
			// x^k -> x^(k+1)/(k+1)
			xkp1 := st.Pow(base, st.Int(k+1))
			return withCoeff(st, arith.New(1, k+1), xkp1), true
		}
	}
	// 1/den(x) with a factorable polynomial denominator.
	return integrateRational(st, id, variable)
}

func integrateFunction(st *expr.Store, id expr.ID, variable string) (expr.ID, bool) {
	n := st.Get(id)
	if len(n.Children) != 1 {
		if !pattern.ContainsSymbol(st, id, variable) {
			x := st.Sym(variable)
			return st.Mul([]expr.ID{id, x}), true
		}
		return 0, false
	}
	name := n.Payload.Str
	u := n.Children[0]

	// The argument's derivative must be a non-zero constant: these are the
	// f(a*x + b) table entries.
	du := Diff(st, u, variable)
	du = simplify.Simplify(st, du)
	a, ok := st.Get(du).AsRat()
	if !ok {
		if !pattern.ContainsSymbol(st, id, variable) {
			x := st.Sym(variable)
			return st.Mul([]expr.ID{id, x}), true
		}
		return 0, false
	}
	if a.IsZero() {
		if !pattern.ContainsSymbol(st, id, variable) {
			x := st.Sym(variable)
			return st.Mul([]expr.ID{id, x}), true
		}
		return 0, false
	}

	var anti expr.ID
	switch name {
	case "exp":
		anti = id
	case "sin":
		cosU := st.Func("cos", []expr.ID{u})
		anti = st.Mul([]expr.ID{st.Int(-1), cosU})
	case "cos":
		anti = st.Func("sin", []expr.ID{u})
	default:
		return 0, false
	}
	return withCoeff(st, arith.Inv(a), anti), true
}

// integrateRational interprets id as num/den with a single reciprocal
// factor, converts both sides through the polynomial bridge, and integrates
// by simple partial fractions: the polynomial quotient term-by-term plus
// sum A_i ln(x - r_i).
func integrateRational(st *expr.Store, id expr.ID, variable string) (expr.ID, bool) {
	num, den, ok := decomposeRational(st, id, variable)
	if !ok {
		return 0, false
	}
	quot, terms, ok := poly.PartialFractionsSimple(num, den)
	if !ok {
		return 0, false
	}

	var parts []expr.ID
	if !quot.IsZero() {
		parts = append(parts, polyIntegral(st, quot))
	}
	x := st.Sym(variable)
	for _, term := range terms {
		negRoot := arith.Neg(term.Root)
		if !negRoot.IsValid() {
			return 0, false
		}
		xMinusR := st.Add([]expr.ID{x, st.RatQ(negRoot)})
		ln := st.Func("ln", []expr.ID{xMinusR})
		parts = append(parts, withCoeff(st, term.Residue, ln))
	}
	if len(parts) == 0 {
		return 0, false
	}
	return simplify.Simplify(st, st.Add(parts)), true
}

// decomposeRational extracts numerator and denominator polynomials from
// Mul(..., Pow(den, -1)), a bare Pow(den, -1), or fails.
func decomposeRational(st *expr.Store, id expr.ID, variable string) (num, den poly.UniPoly, ok bool) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpPow:
		e := st.Get(n.Children[1])
		if e.Op != expr.OpInteger || e.Payload.Int != -1 {
			return poly.UniPoly{}, poly.UniPoly{}, false
		}
		d, okD := poly.FromExpr(st, n.Children[0], variable)
		if !okD {
			return poly.UniPoly{}, poly.UniPoly{}, false
		}
		return poly.New(variable, []arith.Q{arith.One()}), d, true
	case expr.OpMul:
		var denExpr expr.ID
		haveDen := false
		var numFactors []expr.ID
		for _, c := range n.Children {
			cn := st.Get(c)
			if cn.Op == expr.OpPow {
				e := st.Get(cn.Children[1])
				if e.Op == expr.OpInteger && e.Payload.Int == -1 {
					if haveDen {
						// Only a single reciprocal is supported.
						return poly.UniPoly{}, poly.UniPoly{}, false
					}
					denExpr = cn.Children[0]
					haveDen = true
					continue
				}
			}
			numFactors = append(numFactors, c)
		}
		if !haveDen {
			return poly.UniPoly{}, poly.UniPoly{}, false
		}
		numPoly := poly.New(variable, []arith.Q{arith.One()})
		if len(numFactors) > 0 {
			ne := st.Mul(numFactors)
			p, okN := poly.FromExpr(st, ne, variable)
			if !okN {
				return poly.UniPoly{}, poly.UniPoly{}, false
			}
			numPoly = p
		}
		denPoly, okD := poly.FromExpr(st, denExpr, variable)
		if !okD {
			return poly.UniPoly{}, poly.UniPoly{}, false
		}
		return numPoly, denPoly, true
	}
	return poly.UniPoly{}, poly.UniPoly{}, false
}

// polyIntegral integrates a polynomial term by term into an expression.
func polyIntegral(st *expr.Store, p poly.UniPoly) expr.ID {
	if p.IsZero() {
		return st.Int(0)
	}
	x := st.Sym(p.Var)
	var terms []expr.ID
	for k, c := range p.Coeffs {
		if c.IsZero() {
			continue
		}
		k1 := int64(k) + 1
		coeff := arith.Div(c, arith.FromInt(k1))
		pow := st.Pow(x, st.Int(k1))
		terms = append(terms, withCoeff(st, coeff, pow))
	}
	return st.Add(terms)
}

// splitNumericCoeff peels the rational coefficient off a term, returning
// (coeff, rest) with term == coeff * rest.
func splitNumericCoeff(st *expr.Store, id expr.ID) (arith.Q, expr.ID) {
	n := st.Get(id)
	if q, ok := n.AsRat(); ok {
		return q, st.Int(1)
	}
	if n.Op == expr.OpMul {
		coeff := arith.One()
		var rest []expr.ID
		for _, f := range n.Children {
			if q, ok := st.Get(f).AsRat(); ok {
				coeff = arith.Mul(coeff, q)
			} else {
				rest = append(rest, f)
			}
		}
		restID := st.Int(1)
		if len(rest) > 0 {
			restID = st.Mul(rest)
		}
		return coeff, restID
	}
	return arith.One(), id
}

// withCoeff builds coeff * e, folding trivial coefficients.
func withCoeff(st *expr.Store, coeff arith.Q, e expr.ID) expr.ID {
	if coeff.IsOne() {
		return e
	}
	prod := st.Mul([]expr.ID{st.RatQ(coeff), e})
	return simplify.Simplify(st, prod)
}
