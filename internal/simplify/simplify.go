// Package simplify rewrites expressions toward the canonical forms the
// store's constructors alone cannot reach: like-term collection, power
// merging, domain-aware square roots, and the trigonometric, radical and
// logarithmic passes. Every rewrite either preserves meaning under the
// supplied assumptions or abstains; the simplifier is total and always
// returns an ID.
package simplify

import (
	"sort"

	"github.com/tliron/commonlog"

	"symmetrica/internal/arith"
	"symmetrica/internal/assume"
	"symmetrica/internal/expr"
)

var log = commonlog.GetLogger("symmetrica.simplify")

// maxRounds caps the advanced-pass fixpoint loop. Three rounds settle every
// pattern the passes can produce for each other; anything still changing
// after that is oscillating between equally valid forms.
const maxRounds = 3

// Simplify rewrites id under the default (empty) assumption context.
// Default-context results are memoized in the store by input ID.
func Simplify(st *expr.Store, id expr.ID) expr.ID {
	return SimplifyWith(st, id, assume.NewContext())
}

// SimplifyWith rewrites id under an explicit assumption context. Results are
// cached only for the default context, because simplification output depends
// on the context.
func SimplifyWith(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	if !ctx.IsDefault() {
		return simplifyFull(st, id, ctx)
	}
	if cached, ok := st.LookupSimplified(id); ok {
		return cached
	}
	result := simplifyFull(st, id, ctx)
	st.CacheSimplified(id, result)
	return result
}

func simplifyFull(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	current := simplifyRec(st, id, ctx)
	for round := 0; round < maxRounds; round++ {
		before := current
		current = applyPythagorean(st, current)
		current = simplifyTrig(st, current)
		current = simplifyRadicals(st, current)
		current = simplifyLogarithms(st, current, ctx)
		current = simplifyRec(st, current, ctx)
		if current == before {
			break
		}
		log.Debugf("advanced pass round %d rewrote %d -> %d", round, before, current)
	}
	return current
}

func simplifyRec(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	switch st.Get(id).Op {
	case expr.OpAdd:
		return simplifyAdd(st, id, ctx)
	case expr.OpMul:
		return simplifyMul(st, id, ctx)
	case expr.OpPow:
		return simplifyPow(st, id, ctx)
	case expr.OpFunction:
		return simplifyFunction(st, id, ctx)
	case expr.OpPiecewise:
		return simplifyPiecewise(st, id, ctx)
	}
	return id
}

// simplifyAdd collects like terms: each term splits into a rational
// coefficient and a base, coefficients accumulate per base, and the sum is
// rebuilt. Numeric-only terms accumulate under the base 1.
func simplifyAdd(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	children := st.Get(id).Children
	terms := make([]expr.ID, len(children))
	for i, c := range children {
		terms[i] = simplifyRec(st, c, ctx)
	}

	coeffs := make(map[expr.ID]arith.Q)
	for _, t := range terms {
		coeff, base := splitCoeff(st, t)
		if acc, seen := coeffs[base]; seen {
			coeffs[base] = arith.Add(acc, coeff)
		} else {
			coeffs[base] = coeff
		}
	}

	one := st.Int(1)
	var rebuilt []expr.ID
	for _, base := range sortedKeys(coeffs) {
		c := coeffs[base]
		if !c.IsValid() || c.IsZero() {
			if !c.IsValid() {
				// Saturated coefficient: keep the bucket symbolic.
				rebuilt = append(rebuilt, base)
			}
			continue
		}
		switch {
		case base == one:
			rebuilt = append(rebuilt, st.RatQ(c))
		case c.IsOne():
			rebuilt = append(rebuilt, base)
		default:
			rebuilt = append(rebuilt, st.Mul([]expr.ID{st.RatQ(c), base}))
		}
	}
	if len(rebuilt) == 0 {
		return st.Int(0)
	}
	return st.Add(rebuilt)
}

// simplifyMul merges powers with equal bases by summing exponents. Numeric
// factors pass through untouched: the store constructor already folded them.
func simplifyMul(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	children := st.Get(id).Children
	factors := make([]expr.ID, 0, len(children))
	for _, c := range children {
		f := simplifyRec(st, c, ctx)
		// Simplifying a factor may surface a nested product; splice it
		// so Mul[x, Mul[2, x]] merges as [x, 2, x].
		if st.Get(f).Op == expr.OpMul {
			factors = append(factors, st.Get(f).Children...)
		} else {
			factors = append(factors, f)
		}
	}

	exps := make(map[expr.ID]expr.ID)
	var passthrough []expr.ID
	for _, f := range factors {
		n := st.Get(f)
		var base, exponent expr.ID
		switch {
		case n.Op == expr.OpPow:
			base, exponent = n.Children[0], n.Children[1]
		case n.IsNumeric():
			passthrough = append(passthrough, f)
			continue
		default:
			base, exponent = f, st.Int(1)
		}
		if acc, ok := exps[base]; ok {
			sum := st.Add([]expr.ID{acc, exponent})
			exps[base] = simplifyRec(st, sum, ctx)
		} else {
			exps[base] = exponent
		}
	}

	rebuilt := passthrough
	one := st.Int(1)
	for _, base := range sortedKeys(exps) {
		e := exps[base]
		if e == one {
			rebuilt = append(rebuilt, base)
		} else {
			rebuilt = append(rebuilt, st.Pow(base, e))
		}
	}
	return st.Mul(rebuilt)
}

// simplifyPow handles the domain-aware square root of a square:
//
//	(x^2)^(1/2) -> x     when x is Nonnegative
//	(x^2)^(1/2) -> |x|   when x is Real with unknown sign
//	(x^2)^(1/2) stays    otherwise (x could be complex)
func simplifyPow(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	n := st.Get(id)
	base := simplifyRec(st, n.Children[0], ctx)
	exp := simplifyRec(st, n.Children[1], ctx)

	// Numeric bases with small integer exponents evaluate exactly, so
	// substituted roots cancel down to literal zero.
	if out, ok := evalNumericPow(st, base, exp); ok {
		return out
	}

	e := st.Get(exp)
	if e.Op == expr.OpRational && e.Payload.Rat == arith.New(1, 2) {
		b := st.Get(base)
		if b.Op == expr.OpPow {
			inner := b.Children[0]
			innerExp := st.Get(b.Children[1])
			if innerExp.Op == expr.OpInteger && innerExp.Payload.Int == 2 {
				switch {
				case symbolHas(st, inner, ctx, assume.Nonnegative):
					return inner
				case symbolHas(st, inner, ctx, assume.Real):
					return st.Func("abs", []expr.ID{inner})
				}
			}
		}
	}
	return st.Pow(base, exp)
}

// maxNumericExp bounds exact power evaluation; larger exponents would
// saturate 64-bit rationals anyway.
const maxNumericExp = 64

// evalNumericPow computes q^k for numeric q and integer k. 0^0 and negative
// powers of zero stay symbolic; saturation abstains.
func evalNumericPow(st *expr.Store, base, exp expr.ID) (expr.ID, bool) {
	q, okBase := st.Get(base).AsRat()
	e := st.Get(exp)
	if !okBase || e.Op != expr.OpInteger {
		return 0, false
	}
	k := e.Payload.Int
	if k == 0 || k > maxNumericExp || k < -maxNumericExp {
		return 0, false
	}
	if q.IsZero() && k < 0 {
		return 0, false
	}
	acc := arith.One()
	for i := int64(0); i < absInt64(k); i++ {
		acc = arith.Mul(acc, q)
	}
	if k < 0 {
		acc = arith.Inv(acc)
	}
	if !acc.IsValid() {
		return 0, false
	}
	return st.RatQ(acc), true
}

func absInt64(k int64) int64 {
	if k < 0 {
		return -k
	}
	return k
}

// simplifyFunction simplifies arguments, then applies name-specific rules.
func simplifyFunction(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	n := st.Get(id)
	name := n.Payload.Str
	args := make([]expr.ID, len(n.Children))
	for i, c := range n.Children {
		args[i] = simplifyRec(st, c, ctx)
	}

	if name == "ln" && len(args) == 1 {
		if out, ok := simplifyLn(st, args[0], ctx); ok {
			return out
		}
	}
	if name == "exp" && len(args) == 1 {
		// exp(ln(u)) -> u needs u > 0: for u <= 0 the left side is
		// undefined over the reals while the right side is not.
		a := st.Get(args[0])
		if a.Op == expr.OpFunction && a.Payload.Str == "ln" && len(a.Children) == 1 {
			u := a.Children[0]
			if symbolHas(st, u, ctx, assume.Positive) {
				return u
			}
		}
	}
	return st.Func(name, args)
}

func simplifyLn(st *expr.Store, arg expr.ID, ctx *assume.Context) (expr.ID, bool) {
	a := st.Get(arg)

	// ln(exp(u)) -> u, unconditionally valid.
	if a.Op == expr.OpFunction && a.Payload.Str == "exp" && len(a.Children) == 1 {
		return a.Children[0], true
	}

	// ln(x * y^-1) -> ln(x) - ln(y) for positive x, y (both orderings).
	if a.Op == expr.OpMul && len(a.Children) == 2 {
		f0, f1 := a.Children[0], a.Children[1]
		for _, pair := range [][2]expr.ID{{f0, f1}, {f1, f0}} {
			xLike, powLike := pair[0], pair[1]
			pn := st.Get(powLike)
			if pn.Op != expr.OpPow {
				continue
			}
			pe := st.Get(pn.Children[1])
			if pe.Op != expr.OpInteger || pe.Payload.Int != -1 {
				continue
			}
			yBase := pn.Children[0]
			if symbolHas(st, xLike, ctx, assume.Positive) && symbolHas(st, yBase, ctx, assume.Positive) {
				lnX := st.Func("ln", []expr.ID{xLike})
				lnY := st.Func("ln", []expr.ID{yBase})
				negLnY := st.Mul([]expr.ID{st.Int(-1), lnY})
				return st.Add([]expr.ID{lnX, negLnY}), true
			}
		}
	}

	// ln(x^k) -> k * ln(x) for positive x and numeric k.
	if a.Op == expr.OpPow {
		base, exponent := a.Children[0], a.Children[1]
		if symbolHas(st, base, ctx, assume.Positive) && st.Get(exponent).IsNumeric() {
			lnBase := st.Func("ln", []expr.ID{base})
			return st.Mul([]expr.ID{exponent, lnBase}), true
		}
	}

	// ln(x*y*...) -> ln(x) + ln(y) + ... when every factor is positive.
	if a.Op == expr.OpMul {
		all := true
		for _, f := range a.Children {
			if !symbolHas(st, f, ctx, assume.Positive) {
				all = false
				break
			}
		}
		if all && len(a.Children) > 0 {
			logs := make([]expr.ID, len(a.Children))
			for i, f := range a.Children {
				logs[i] = st.Func("ln", []expr.ID{f})
			}
			return st.Add(logs), true
		}
	}

	return 0, false
}

// simplifyPiecewise drops definitely-false branches, collapses on the first
// definitely-true one, and degrades to Undefined() when nothing remains.
func simplifyPiecewise(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	children := st.Get(id).Children
	simplified := make([]expr.ID, len(children))
	for i, c := range children {
		simplified[i] = simplifyRec(st, c, ctx)
	}

	for i := 0; i+1 < len(simplified); i += 2 {
		if isTrueCondition(st, simplified[i]) {
			return simplified[i+1]
		}
	}

	var pairs [][2]expr.ID
	for i := 0; i+1 < len(simplified); i += 2 {
		if !isFalseCondition(st, simplified[i]) {
			pairs = append(pairs, [2]expr.ID{simplified[i], simplified[i+1]})
		}
	}
	if len(pairs) == 0 {
		return st.Undefined()
	}
	return st.Piecewise(pairs)
}

func isTrueCondition(st *expr.Store, cond expr.ID) bool {
	n := st.Get(cond)
	if n.Op == expr.OpFunction && n.Payload.Str == "True" {
		return true
	}
	return n.Op == expr.OpInteger && n.Payload.Int == 1
}

func isFalseCondition(st *expr.Store, cond expr.ID) bool {
	n := st.Get(cond)
	if n.Op == expr.OpFunction && n.Payload.Str == "False" {
		return true
	}
	return n.Op == expr.OpInteger && n.Payload.Int == 0
}

// sortedKeys fixes the rebuild order of a bucket map. Map iteration order
// would otherwise vary the order in which new nodes are interned, breaking
// run-to-run ID determinism.
func sortedKeys[V any](m map[expr.ID]V) []expr.ID {
	keys := make([]expr.ID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// splitCoeff decomposes a term into (rational coefficient, base) with
// term == coeff * base. Pure numbers report base 1.
func splitCoeff(st *expr.Store, id expr.ID) (arith.Q, expr.ID) {
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
		base := st.Int(1)
		if len(rest) > 0 {
			base = st.Mul(rest)
		}
		return coeff, base
	}
	return arith.One(), id
}

// symbolHas reports whether id is a single symbol the context knows to hold
// the property. Property checks are deliberately symbol-only: compound
// expressions would need interval reasoning the lattice does not model.
func symbolHas(st *expr.Store, id expr.ID, ctx *assume.Context, p assume.Prop) bool {
	n := st.Get(id)
	if n.Op != expr.OpSymbol {
		return false
	}
	return ctx.Has(n.Payload.Str, p) == assume.True
}

// positiveFactor extends the symbol check with literal positive numbers, for
// passes that may safely expand over numeric factors as well.
func positiveFactor(st *expr.Store, id expr.ID, ctx *assume.Context) bool {
	if symbolHas(st, id, ctx, assume.Positive) {
		return true
	}
	if q, ok := st.Get(id).AsRat(); ok {
		return q.Sign() > 0
	}
	return false
}
