// Package calculus implements syntactic differentiation, rule-based
// integration, truncated Maclaurin series and polynomial limits on top of
// the expression kernel. Derivatives come back un-simplified; callers
// compose with the simplifier when they want canonical output.
package calculus

import (
	"symmetrica/internal/expr"
	"symmetrica/internal/pattern"
)

// Diff differentiates id with respect to the named variable. Nodes that do
// not reference the variable differentiate to zero; everything else follows
// the usual linearity, product, power and chain rules.
func Diff(st *expr.Store, id expr.ID, variable string) expr.ID {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger, expr.OpRational:
		return st.Int(0)
	case expr.OpSymbol:
		if n.Payload.Str == variable {
			return st.Int(1)
		}
		return st.Int(0)
	case expr.OpAdd:
		terms := make([]expr.ID, len(n.Children))
		for i, c := range n.Children {
			terms[i] = Diff(st, c, variable)
		}
		return st.Add(terms)
	case expr.OpMul:
		return diffProduct(st, n.Children, variable)
	case expr.OpPow:
		return diffPow(st, n.Children[0], n.Children[1], variable)
	case expr.OpFunction:
		return diffFunction(st, id, variable)
	}
	// Anything unrecognized that does not mention the variable is a
	// constant.
	if !pattern.ContainsSymbol(st, id, variable) {
		return st.Int(0)
	}
	return st.Func("Derivative", []expr.ID{id, st.Sym(variable)})
}

// diffProduct applies the general product rule:
// d/dx prod f_i = sum_i f_i' * prod_{j != i} f_j.
func diffProduct(st *expr.Store, factors []expr.ID, variable string) expr.ID {
	terms := make([]expr.ID, 0, len(factors))
	for i := range factors {
		df := Diff(st, factors[i], variable)
		prod := make([]expr.ID, 0, len(factors))
		prod = append(prod, df)
		for j, f := range factors {
			if j != i {
				prod = append(prod, f)
			}
		}
		terms = append(terms, st.Mul(prod))
	}
	return st.Add(terms)
}

func diffPow(st *expr.Store, base, exp expr.ID, variable string) expr.ID {
	expDepends := pattern.ContainsSymbol(st, exp, variable)
	baseDepends := pattern.ContainsSymbol(st, base, variable)
	if !expDepends && !baseDepends {
		return st.Int(0)
	}

	if !expDepends {
		// d(u^n)/dx = n * u^(n-1) * u'
		nMinus1 := st.Add([]expr.ID{exp, st.Int(-1)})
		du := Diff(st, base, variable)
		return st.Mul([]expr.ID{exp, st.Pow(base, nMinus1), du})
	}

	// General case: d(u^v)/dx = u^v * (v' ln u + v u'/u).
	du := Diff(st, base, variable)
	dv := Diff(st, exp, variable)
	lnU := st.Func("ln", []expr.ID{base})
	left := st.Mul([]expr.ID{dv, lnU})
	uInv := st.Pow(base, st.Int(-1))
	right := st.Mul([]expr.ID{exp, du, uInv})
	bracket := st.Add([]expr.ID{left, right})
	return st.Mul([]expr.ID{st.Pow(base, exp), bracket})
}

func diffFunction(st *expr.Store, id expr.ID, variable string) expr.ID {
	n := st.Get(id)
	name := n.Payload.Str
	if len(n.Children) == 1 {
		u := n.Children[0]
		inner, ok := diffUnary(st, name, u)
		if !ok {
			if !pattern.ContainsSymbol(st, id, variable) {
				return st.Int(0)
			}
			return st.Func("Derivative", []expr.ID{id, st.Sym(variable)})
		}
		du := Diff(st, u, variable)
		return st.Mul([]expr.ID{inner, du})
	}
	if out, ok := diffMultiArg(st, name, n.Children, variable); ok {
		return out
	}
	if !pattern.ContainsSymbol(st, id, variable) {
		return st.Int(0)
	}
	return st.Func("Derivative", []expr.ID{id, st.Sym(variable)})
}

// diffUnary returns f'(u) for the one-argument elementary function table.
func diffUnary(st *expr.Store, name string, u expr.ID) (expr.ID, bool) {
	switch name {
	case "sin":
		return st.Func("cos", []expr.ID{u}), true
	case "cos":
		sinU := st.Func("sin", []expr.ID{u})
		return st.Mul([]expr.ID{st.Int(-1), sinU}), true
	case "tan":
		// tan' = sec^2 = cos^-2
		cosU := st.Func("cos", []expr.ID{u})
		return st.Pow(cosU, st.Int(-2)), true
	case "exp":
		return st.Func("exp", []expr.ID{u}), true
	case "ln", "log":
		return st.Pow(u, st.Int(-1)), true
	case "sqrt":
		// sqrt' = (1/2) u^(-1/2)
		return st.Mul([]expr.ID{st.Rat(1, 2), st.Pow(u, st.Rat(-1, 2))}), true
	case "sinh":
		return st.Func("cosh", []expr.ID{u}), true
	case "cosh":
		return st.Func("sinh", []expr.ID{u}), true
	case "tanh":
		// tanh' = 1 - tanh^2
		t2 := st.Pow(st.Func("tanh", []expr.ID{u}), st.Int(2))
		return st.Add([]expr.ID{st.Int(1), st.Mul([]expr.ID{st.Int(-1), t2})}), true
	case "arcsin", "asin":
		return invSqrtOneMinusSquare(st, u), true
	case "arccos", "acos":
		d := invSqrtOneMinusSquare(st, u)
		return st.Mul([]expr.ID{st.Int(-1), d}), true
	case "arctan", "atan":
		// arctan' = 1/(1+u^2)
		u2 := st.Pow(u, st.Int(2))
		den := st.Add([]expr.ID{st.Int(1), u2})
		return st.Pow(den, st.Int(-1)), true
	case "abs":
		// d|u|/du = sign(u)
		return st.Func("sign", []expr.ID{u}), true
	}
	return 0, false
}

// invSqrtOneMinusSquare builds (1 - u^2)^(-1/2), the arcsin/arccos core.
func invSqrtOneMinusSquare(st *expr.Store, u expr.ID) expr.ID {
	u2 := st.Pow(u, st.Int(2))
	negU2 := st.Mul([]expr.ID{st.Int(-1), u2})
	inner := st.Add([]expr.ID{st.Int(1), negU2})
	return st.Pow(inner, st.Rat(-1, 2))
}

// diffMultiArg covers function families whose derivative is expressed in
// the same family: Bessel functions of the first kind and the classical
// orthogonal polynomials in their (degree, argument) form.
func diffMultiArg(st *expr.Store, name string, args []expr.ID, variable string) (expr.ID, bool) {
	if len(args) != 2 {
		return 0, false
	}
	order, x := args[0], args[1]
	dx := Diff(st, x, variable)
	switch name {
	case "BesselJ":
		// d/dx J_n(x) = (J_{n-1}(x) - J_{n+1}(x)) / 2
		nm1 := st.Add([]expr.ID{order, st.Int(-1)})
		np1 := st.Add([]expr.ID{order, st.Int(1)})
		jm := st.Func("BesselJ", []expr.ID{nm1, x})
		jp := st.Func("BesselJ", []expr.ID{np1, x})
		diff := st.Add([]expr.ID{jm, st.Mul([]expr.ID{st.Int(-1), jp})})
		return st.Mul([]expr.ID{st.Rat(1, 2), diff, dx}), true
	case "ChebyshevT":
		// d/dx T_n(x) = n * U_{n-1}(x)
		nm1 := st.Add([]expr.ID{order, st.Int(-1)})
		u := st.Func("ChebyshevU", []expr.ID{nm1, x})
		return st.Mul([]expr.ID{order, u, dx}), true
	case "LegendreP":
		// (x^2 - 1) P_n'(x) = n (x P_n(x) - P_{n-1}(x))
		nm1 := st.Add([]expr.ID{order, st.Int(-1)})
		pn := st.Func("LegendreP", []expr.ID{order, x})
		pm := st.Func("LegendreP", []expr.ID{nm1, x})
		num := st.Add([]expr.ID{
			st.Mul([]expr.ID{x, pn}),
			st.Mul([]expr.ID{st.Int(-1), pm}),
		})
		den := st.Add([]expr.ID{st.Pow(x, st.Int(2)), st.Int(-1)})
		return st.Mul([]expr.ID{order, num, st.Pow(den, st.Int(-1)), dx}), true
	}
	return 0, false
}
