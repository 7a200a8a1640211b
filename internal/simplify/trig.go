package simplify

import (
	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
)

// applyPythagorean walks the tree and collapses sin^2(u) + cos^2(u) pairs
// with identical arguments into 1, repeating at each Add until no pair is
// left.
func applyPythagorean(st *expr.Store, id expr.ID) expr.ID {
	n := st.Get(id)
	rebuilt := id
	switch n.Op {
	case expr.OpAdd, expr.OpMul, expr.OpFunction:
		children := n.Children
		next := make([]expr.ID, len(children))
		changed := false
		for i, c := range children {
			next[i] = applyPythagorean(st, c)
			changed = changed || next[i] != c
		}
		if changed {
			switch n.Op {
			case expr.OpAdd:
				rebuilt = st.Add(next)
			case expr.OpMul:
				rebuilt = st.Mul(next)
			default:
				rebuilt = st.Func(n.Payload.Str, next)
			}
		}
	case expr.OpPow:
		base := applyPythagorean(st, n.Children[0])
		exp := applyPythagorean(st, n.Children[1])
		if base != n.Children[0] || exp != n.Children[1] {
			rebuilt = st.Pow(base, exp)
		}
	}
	return collapsePythagoreanPairs(st, rebuilt)
}

func collapsePythagoreanPairs(st *expr.Store, id expr.ID) expr.ID {
	if st.Get(id).Op != expr.OpAdd {
		return id
	}
	children := st.Get(id).Children
	for i := range children {
		sinArg, ok := squaredTrigArg(st, children[i], "sin")
		if !ok {
			continue
		}
		for j := range children {
			if i == j {
				continue
			}
			cosArg, ok := squaredTrigArg(st, children[j], "cos")
			if !ok || sinArg != cosArg {
				continue
			}
			remaining := make([]expr.ID, 0, len(children)-1)
			for k, c := range children {
				if k != i && k != j {
					remaining = append(remaining, c)
				}
			}
			remaining = append(remaining, st.Int(1))
			return collapsePythagoreanPairs(st, st.Add(remaining))
		}
	}
	return id
}

// squaredTrigArg recognizes name(arg)^2 and returns arg.
func squaredTrigArg(st *expr.Store, id expr.ID, name string) (expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpPow {
		return 0, false
	}
	e := st.Get(n.Children[1])
	if e.Op != expr.OpInteger || e.Payload.Int != 2 {
		return 0, false
	}
	b := st.Get(n.Children[0])
	if b.Op != expr.OpFunction || b.Payload.Str != name || len(b.Children) != 1 {
		return 0, false
	}
	return b.Children[0], true
}

// simplifyTrig applies half-angle expansion at Pow nodes and sum-to-product
// at Add nodes. Product-to-sum is deliberately not applied: it grows the
// expression instead of shrinking it.
func simplifyTrig(st *expr.Store, id expr.ID) expr.ID {
	switch st.Get(id).Op {
	case expr.OpAdd:
		return trySumToProduct(st, id)
	case expr.OpPow:
		return tryHalfAngle(st, id)
	}
	return id
}

// tryHalfAngle expands squared trig functions of half angles:
//
//	sin^2(x/2) -> (1 - cos(x))/2
//	cos^2(x/2) -> (1 + cos(x))/2
//	tan^2(x/2) -> (1 - cos(x))/(1 + cos(x))
func tryHalfAngle(st *expr.Store, id expr.ID) expr.ID {
	n := st.Get(id)
	e := st.Get(n.Children[1])
	if e.Op != expr.OpInteger || e.Payload.Int != 2 {
		return id
	}
	b := st.Get(n.Children[0])
	if b.Op != expr.OpFunction || len(b.Children) != 1 {
		return id
	}
	arg := b.Children[0]
	if !isHalfAngle(st, arg) {
		return id
	}
	full := st.Mul([]expr.ID{st.Int(2), arg})
	one := st.Int(1)
	cosFull := st.Func("cos", []expr.ID{full})
	negCos := st.Mul([]expr.ID{st.Int(-1), cosFull})
	half := st.Rat(1, 2)
	switch b.Payload.Str {
	case "sin":
		return st.Mul([]expr.ID{half, st.Add([]expr.ID{one, negCos})})
	case "cos":
		return st.Mul([]expr.ID{half, st.Add([]expr.ID{one, cosFull})})
	case "tan":
		num := st.Add([]expr.ID{one, negCos})
		den := st.Add([]expr.ID{one, cosFull})
		return st.Mul([]expr.ID{num, st.Pow(den, st.Int(-1))})
	}
	return id
}

// isHalfAngle recognizes arguments of the shape (1/2) * u.
func isHalfAngle(st *expr.Store, arg expr.ID) bool {
	n := st.Get(arg)
	if n.Op != expr.OpMul {
		return false
	}
	half := arith.New(1, 2)
	for _, c := range n.Children {
		cn := st.Get(c)
		if cn.Op == expr.OpRational && cn.Payload.Rat == half {
			return true
		}
	}
	return false
}

// trySumToProduct rewrites the first matching pair among the Add's children:
//
//	sin A + sin B -> 2 sin((A+B)/2) cos((A-B)/2)
//	sin A - sin B -> 2 cos((A+B)/2) sin((A-B)/2)
//	cos A + cos B -> 2 cos((A+B)/2) cos((A-B)/2)
//	cos A - cos B -> -2 sin((A+B)/2) sin((A-B)/2)
func trySumToProduct(st *expr.Store, id expr.ID) expr.ID {
	children := st.Get(id).Children
	for i := 0; i < len(children); i++ {
		nameI, argI, posI, okI := signedTrigTerm(st, children[i])
		if !okI {
			continue
		}
		for j := i + 1; j < len(children); j++ {
			nameJ, argJ, posJ, okJ := signedTrigTerm(st, children[j])
			if !okJ || nameI != nameJ || argI == argJ {
				continue
			}
			var combined expr.ID
			switch {
			case nameI == "sin" && posI && posJ:
				combined = sumToProductPair(st, argI, argJ, "sin", "cos", 2)
			case nameI == "sin" && posI != posJ:
				a, b := argI, argJ
				if !posI {
					a, b = argJ, argI
				}
				combined = sumToProductPair(st, a, b, "cos", "sin", 2)
			case nameI == "cos" && posI && posJ:
				combined = sumToProductPair(st, argI, argJ, "cos", "cos", 2)
			case nameI == "cos" && posI != posJ:
				a, b := argI, argJ
				if !posI {
					a, b = argJ, argI
				}
				combined = sumToProductPair(st, a, b, "sin", "sin", -2)
			default:
				continue
			}
			remaining := make([]expr.ID, 0, len(children)-1)
			for k, c := range children {
				if k != i && k != j {
					remaining = append(remaining, c)
				}
			}
			remaining = append(remaining, combined)
			return st.Add(remaining)
		}
	}
	return id
}

// sumToProductPair builds k * f((A+B)/2) * g((A-B)/2).
func sumToProductPair(st *expr.Store, a, b expr.ID, f, g string, k int64) expr.ID {
	half := st.Rat(1, 2)
	negB := st.Mul([]expr.ID{st.Int(-1), b})
	sumHalf := st.Mul([]expr.ID{half, st.Add([]expr.ID{a, b})})
	diffHalf := st.Mul([]expr.ID{half, st.Add([]expr.ID{a, negB})})
	left := st.Func(f, []expr.ID{sumHalf})
	right := st.Func(g, []expr.ID{diffHalf})
	return st.Mul([]expr.ID{st.Int(k), left, right})
}

// signedTrigTerm recognizes sin/cos terms with an optional -1 coefficient,
// returning (name, argument, isPositive).
func signedTrigTerm(st *expr.Store, id expr.ID) (string, expr.ID, bool, bool) {
	n := st.Get(id)
	if n.Op == expr.OpFunction && (n.Payload.Str == "sin" || n.Payload.Str == "cos") && len(n.Children) == 1 {
		return n.Payload.Str, n.Children[0], true, true
	}
	if n.Op == expr.OpMul && len(n.Children) == 2 {
		for k, c := range n.Children {
			cn := st.Get(c)
			if cn.Op == expr.OpInteger && cn.Payload.Int == -1 {
				other := st.Get(n.Children[1-k])
				if other.Op == expr.OpFunction &&
					(other.Payload.Str == "sin" || other.Payload.Str == "cos") &&
					len(other.Children) == 1 {
					return other.Payload.Str, other.Children[0], false, true
				}
			}
		}
	}
	return "", 0, false, false
}
