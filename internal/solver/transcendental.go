package solver

import (
	"symmetrica/internal/expr"
	"symmetrica/internal/pattern"
	"symmetrica/internal/poly"
)

// SolveInverseTrig recognizes equations of the shape arcf(lhs) + c = 0 and
// arcf(a) - arcf(b) = 0, inverts the outer function, and defers the rest to
// the polynomial solver.
func SolveInverseTrig(st *expr.Store, id expr.ID, variable string) ([]expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpAdd || len(n.Children) != 2 {
		return nil, false
	}
	children := n.Children

	// arcf(arg) + c = 0  =>  arg = f(-c)
	for i := 0; i < 2; i++ {
		funcTerm := children[i]
		constTerm := children[1-i]
		if pattern.ContainsSymbol(st, constTerm, variable) {
			continue
		}
		name, arg, ok := inverseTrigCall(st, funcTerm)
		if !ok {
			continue
		}
		forward, ok := forwardOf(name)
		if !ok {
			return nil, false
		}
		rhs := st.Mul([]expr.ID{st.Int(-1), constTerm})
		solution := st.Func(forward, []expr.ID{rhs})
		return isolate(st, arg, solution, variable)
	}

	// arcf(a) - arcf(b) = 0  =>  a = b
	if name1, arg1, ok := signedInverseTrigCall(st, children[0]); ok {
		if name2, arg2, ok2 := signedInverseTrigCall(st, children[1]); ok2 && name1 == name2 {
			// Subtract as polynomials: the store does not distribute -1 over a
			// sum, so a + (-1)*b would not convert when b is a sum.
			p1, okA := poly.FromExpr(st, arg1, variable)
			p2, okB := poly.FromExpr(st, arg2, variable)
			if !okA || !okB {
				return nil, false
			}
			return SolveUnivariate(st, poly.ToExpr(st, p1.Sub(p2)), variable)
		}
	}
	return nil, false
}

// SolveLogarithmic recognizes log(lhs) + c = 0 and log(a) - log(b) = 0.
func SolveLogarithmic(st *expr.Store, id expr.ID, variable string) ([]expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpAdd || len(n.Children) != 2 {
		return nil, false
	}
	children := n.Children

	// log(arg) + c = 0  =>  arg = exp(-c)
	for i := 0; i < 2; i++ {
		funcTerm := children[i]
		constTerm := children[1-i]
		if pattern.ContainsSymbol(st, constTerm, variable) {
			continue
		}
		arg, ok := logCall(st, funcTerm)
		if !ok {
			continue
		}
		rhs := st.Mul([]expr.ID{st.Int(-1), constTerm})
		solution := st.Func("exp", []expr.ID{rhs})
		return isolate(st, arg, solution, variable)
	}

	// log(a) - log(b) = 0  =>  a = b
	if arg1, ok := signedLogCall(st, children[0]); ok {
		if arg2, ok2 := signedLogCall(st, children[1]); ok2 {
			// Subtract as polynomials, as in SolveInverseTrig.
			p1, okA := poly.FromExpr(st, arg1, variable)
			p2, okB := poly.FromExpr(st, arg2, variable)
			if !okA || !okB {
				return nil, false
			}
			return SolveUnivariate(st, poly.ToExpr(st, p1.Sub(p2)), variable)
		}
	}
	return nil, false
}

var inverseForward = map[string]string{
	"arcsin": "sin", "asin": "sin",
	"arccos": "cos", "acos": "cos",
	"arctan": "tan", "atan": "tan",
}

func forwardOf(name string) (string, bool) {
	f, ok := inverseForward[name]
	return f, ok
}

func inverseTrigCall(st *expr.Store, id expr.ID) (string, expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpFunction || len(n.Children) != 1 {
		return "", 0, false
	}
	if _, ok := inverseForward[n.Payload.Str]; !ok {
		return "", 0, false
	}
	return n.Payload.Str, n.Children[0], true
}

// signedInverseTrigCall also accepts -1 * arcf(arg), since the reduction
// arcf(a) = arcf(b) arrives as arcf(a) - arcf(b).
func signedInverseTrigCall(st *expr.Store, id expr.ID) (string, expr.ID, bool) {
	if name, arg, ok := inverseTrigCall(st, id); ok {
		return name, arg, true
	}
	if inner, ok := negatedTerm(st, id); ok {
		return inverseTrigCall(st, inner)
	}
	return "", 0, false
}

func logCall(st *expr.Store, id expr.ID) (expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpFunction || len(n.Children) != 1 {
		return 0, false
	}
	if n.Payload.Str != "ln" && n.Payload.Str != "log" {
		return 0, false
	}
	return n.Children[0], true
}

func signedLogCall(st *expr.Store, id expr.ID) (expr.ID, bool) {
	if arg, ok := logCall(st, id); ok {
		return arg, true
	}
	if inner, ok := negatedTerm(st, id); ok {
		return logCall(st, inner)
	}
	return 0, false
}

// negatedTerm unwraps -1 * e.
func negatedTerm(st *expr.Store, id expr.ID) (expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpMul || len(n.Children) != 2 {
		return 0, false
	}
	for k, c := range n.Children {
		cn := st.Get(c)
		if cn.Op == expr.OpInteger && cn.Payload.Int == -1 {
			return n.Children[1-k], true
		}
	}
	return 0, false
}

// isolate solves lhs = rhs for the variable when lhs is the bare variable or
// a product coeff * variable.
func isolate(st *expr.Store, lhs, rhs expr.ID, variable string) ([]expr.ID, bool) {
	n := st.Get(lhs)
	if n.Op == expr.OpSymbol && n.Payload.Str == variable {
		return []expr.ID{rhs}, true
	}
	if n.Op == expr.OpMul {
		varSeen := false
		var coeffParts []expr.ID
		for _, c := range n.Children {
			cn := st.Get(c)
			if cn.Op == expr.OpSymbol && cn.Payload.Str == variable {
				if varSeen {
					return nil, false
				}
				varSeen = true
				continue
			}
			if pattern.ContainsSymbol(st, c, variable) {
				return nil, false
			}
			coeffParts = append(coeffParts, c)
		}
		if varSeen {
			coeff := st.Int(1)
			if len(coeffParts) > 0 {
				coeff = st.Mul(coeffParts)
			}
			inv := st.Pow(coeff, st.Int(-1))
			return []expr.ID{st.Mul([]expr.ID{rhs, inv})}, true
		}
	}
	return nil, false
}
