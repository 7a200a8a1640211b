package simplify

import (
	"math"

	"symmetrica/internal/arith"
	"symmetrica/internal/expr"
)

// simplifyRadicals walks the tree and rewrites square roots: perfect squares
// collapse, perfect-square integer factors move outside the radical,
// nested sqrt(a + b*sqrt(c)) denests when Ramanujan's condition holds, and
// u^(-1/2) factors in a product are rationalized.
func simplifyRadicals(st *expr.Store, id expr.ID) expr.ID {
	n := st.Get(id)
	rebuilt := id
	switch n.Op {
	case expr.OpAdd, expr.OpMul, expr.OpFunction:
		children := n.Children
		next := make([]expr.ID, len(children))
		changed := false
		for i, c := range children {
			next[i] = simplifyRadicals(st, c)
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
		base := simplifyRadicals(st, n.Children[0])
		exp := simplifyRadicals(st, n.Children[1])
		if base != n.Children[0] || exp != n.Children[1] {
			rebuilt = st.Pow(base, exp)
		}
	}

	switch st.Get(rebuilt).Op {
	case expr.OpPow:
		return trySimplifySqrt(st, rebuilt)
	case expr.OpMul:
		if out, ok := tryRationalize(st, rebuilt); ok {
			return out
		}
	}
	return rebuilt
}

func trySimplifySqrt(st *expr.Store, id expr.ID) expr.ID {
	n := st.Get(id)
	e := st.Get(n.Children[1])
	if e.Op != expr.OpRational || e.Payload.Rat != arith.New(1, 2) {
		return id
	}
	base := n.Children[0]
	if out, ok := perfectSquareRoot(st, base); ok {
		return out
	}
	if out, ok := denestSqrt(st, base); ok {
		return out
	}
	if out, ok := extractSquareFactor(st, base); ok {
		return out
	}
	return id
}

// isqrt returns the exact integer square root of n, or false when n is not a
// perfect square.
func isqrt(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	r := int64(math.Sqrt(float64(n)))
	// The float seed can be off by one in either direction.
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

// perfectSquareRoot collapses sqrt of a perfect-square integer or rational.
func perfectSquareRoot(st *expr.Store, base expr.ID) (expr.ID, bool) {
	q, ok := st.Get(base).AsRat()
	if !ok || q.Sign() < 0 {
		return 0, false
	}
	sn, okN := isqrt(q.Num)
	sd, okD := isqrt(q.Den)
	if !okN || !okD {
		return 0, false
	}
	return st.RatQ(arith.New(sn, sd)), true
}

// denestSqrt applies Ramanujan's condition to sqrt(a + b*sqrt(c)): when
// a^2 - b^2*c is the square of a rational d, the nested radical equals
// sqrt((a+d)/2) + sqrt((a-d)/2), with the second root subtracted when b < 0.
func denestSqrt(st *expr.Store, base expr.ID) (expr.ID, bool) {
	n := st.Get(base)
	if n.Op != expr.OpAdd || len(n.Children) != 2 {
		return 0, false
	}
	for k := 0; k < 2; k++ {
		aID := n.Children[k]
		radical := n.Children[1-k]
		a, ok := st.Get(aID).AsRat()
		if !ok {
			continue
		}
		b, c, ok := extractBSqrtC(st, radical)
		if !ok {
			continue
		}
		diff := arith.Sub(arith.Mul(a, a), arith.Mul(arith.Mul(b, b), c))
		if !diff.IsValid() || diff.Sign() < 0 {
			continue
		}
		dn, okN := isqrt(diff.Num)
		dd, okD := isqrt(diff.Den)
		if !okN || !okD {
			continue
		}
		d := arith.New(dn, dd)
		halfQ := arith.New(1, 2)
		x := arith.Mul(arith.Add(a, d), halfQ)
		y := arith.Mul(arith.Sub(a, d), halfQ)
		if !x.IsValid() || !y.IsValid() || y.Sign() < 0 {
			continue
		}
		second := sqrtRatExpr(st, y)
		if b.Sign() < 0 {
			second = st.Mul([]expr.ID{st.Int(-1), second})
		}
		return st.Add([]expr.ID{sqrtRatExpr(st, x), second}), true
	}
	return 0, false
}

// extractBSqrtC recognizes sqrt(c) and b*sqrt(c) with rational b and c.
func extractBSqrtC(st *expr.Store, id expr.ID) (b, c arith.Q, ok bool) {
	if c, ok := sqrtOfRational(st, id); ok {
		return arith.One(), c, true
	}
	n := st.Get(id)
	if n.Op != expr.OpMul {
		return arith.Q{}, arith.Q{}, false
	}
	bVal := arith.Q{}
	cVal := arith.Q{}
	haveB, haveC := false, false
	for _, child := range n.Children {
		if q, isNum := st.Get(child).AsRat(); isNum {
			bVal, haveB = q, true
			continue
		}
		if cq, isSqrt := sqrtOfRational(st, child); isSqrt {
			cVal, haveC = cq, true
		}
	}
	if haveB && haveC {
		return bVal, cVal, true
	}
	return arith.Q{}, arith.Q{}, false
}

// sqrtRatExpr builds sqrt(q), collapsing immediately when q is a perfect
// square.
func sqrtRatExpr(st *expr.Store, q arith.Q) expr.ID {
	if sn, okN := isqrt(q.Num); okN {
		if sd, okD := isqrt(q.Den); okD {
			return st.RatQ(arith.New(sn, sd))
		}
	}
	return st.Pow(st.RatQ(q), st.Rat(1, 2))
}

func sqrtOfRational(st *expr.Store, id expr.ID) (arith.Q, bool) {
	n := st.Get(id)
	if n.Op != expr.OpPow {
		return arith.Q{}, false
	}
	e := st.Get(n.Children[1])
	if e.Op != expr.OpRational || e.Payload.Rat != arith.New(1, 2) {
		return arith.Q{}, false
	}
	return st.Get(n.Children[0]).AsRat()
}

// extractSquareFactor rewrites sqrt(n * rest) as sqrt(n) * sqrt(rest) when n
// is a perfect-square positive integer.
func extractSquareFactor(st *expr.Store, base expr.ID) (expr.ID, bool) {
	n := st.Get(base)
	if n.Op != expr.OpMul {
		return 0, false
	}
	var root int64
	var others []expr.ID
	found := false
	for _, child := range n.Children {
		cn := st.Get(child)
		if !found && cn.Op == expr.OpInteger && cn.Payload.Int > 0 {
			if r, ok := isqrt(cn.Payload.Int); ok {
				root = r
				found = true
				continue
			}
		}
		others = append(others, child)
	}
	if !found || root == 1 {
		return 0, false
	}
	factor := st.Int(root)
	if len(others) == 0 {
		return factor, true
	}
	rest := others[0]
	if len(others) > 1 {
		rest = st.Mul(others)
	}
	sqrtRest := st.Pow(rest, st.Rat(1, 2))
	return st.Mul([]expr.ID{factor, sqrtRest}), true
}

// tryRationalize clears a u^(-1/2) factor from a product by multiplying
// through with sqrt(u)/u: x * u^(-1/2) -> x * sqrt(u) * u^(-1).
func tryRationalize(st *expr.Store, id expr.ID) (expr.ID, bool) {
	children := st.Get(id).Children
	negHalf := arith.New(-1, 2)
	var base expr.ID
	idx := -1
	for i, child := range children {
		n := st.Get(child)
		if n.Op != expr.OpPow {
			continue
		}
		e := st.Get(n.Children[1])
		if e.Op == expr.OpRational && e.Payload.Rat == negHalf {
			base = n.Children[0]
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}
	factors := make([]expr.ID, 0, len(children)+1)
	for i, child := range children {
		if i != idx {
			factors = append(factors, child)
		}
	}
	factors = append(factors, st.Pow(base, st.Rat(1, 2)))
	factors = append(factors, st.Pow(base, st.Int(-1)))
	return st.Mul(factors), true
}
