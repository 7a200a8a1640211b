package simplify

import (
	"symmetrica/internal/assume"
	"symmetrica/internal/expr"
)

// simplifyLogarithms expands ln/log of products and powers when every piece
// is known positive: log(x*y) -> log(x) + log(y), log(x^n) -> n*log(x),
// log(x*y^-1) -> log(x) - log(y). Expansion abstains whenever positivity is
// unknown; for non-positive arguments the identities do not hold over the
// reals.
func simplifyLogarithms(st *expr.Store, id expr.ID, ctx *assume.Context) expr.ID {
	n := st.Get(id)
	if n.Op != expr.OpFunction {
		return id
	}
	name := n.Payload.Str
	if (name != "ln" && name != "log") || len(n.Children) != 1 {
		return id
	}
	arg := n.Children[0]
	switch st.Get(arg).Op {
	case expr.OpMul:
		return expandLogProduct(st, arg, ctx, name)
	case expr.OpPow:
		return expandLogPower(st, arg, ctx, name)
	}
	return id
}

func expandLogProduct(st *expr.Store, product expr.ID, ctx *assume.Context, logName string) expr.ID {
	factors := st.Get(product).Children
	var positives, inverted []expr.ID
	for _, f := range factors {
		if positiveFactor(st, f, ctx) {
			positives = append(positives, f)
			continue
		}
		if base, ok := reciprocalBase(st, f); ok && positiveFactor(st, base, ctx) {
			inverted = append(inverted, base)
			continue
		}
		return st.Func(logName, []expr.ID{product})
	}
	var terms []expr.ID
	for _, f := range positives {
		terms = append(terms, st.Func(logName, []expr.ID{f}))
	}
	for _, base := range inverted {
		lg := st.Func(logName, []expr.ID{base})
		terms = append(terms, st.Mul([]expr.ID{st.Int(-1), lg}))
	}
	if len(terms) == 0 {
		return st.Func(logName, []expr.ID{product})
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return st.Add(terms)
}

func expandLogPower(st *expr.Store, power expr.ID, ctx *assume.Context, logName string) expr.ID {
	n := st.Get(power)
	base, exp := n.Children[0], n.Children[1]
	if !positiveFactor(st, base, ctx) || !st.Get(exp).IsNumeric() {
		return st.Func(logName, []expr.ID{power})
	}
	lg := st.Func(logName, []expr.ID{base})
	return st.Mul([]expr.ID{exp, lg})
}

// reciprocalBase recognizes u^(-1) and returns u.
func reciprocalBase(st *expr.Store, id expr.ID) (expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpPow {
		return 0, false
	}
	e := st.Get(n.Children[1])
	if e.Op == expr.OpInteger && e.Payload.Int == -1 {
		return n.Children[0], true
	}
	return 0, false
}

// ContractLogarithms folds a sum of log terms into a single log of a
// product, turning k*log(x) into log(x^k) on the way. It is the inverse of
// the expansion rules and therefore not part of the fixpoint pipeline;
// callers pick the direction they want.
func ContractLogarithms(st *expr.Store, id expr.ID) expr.ID {
	if st.Get(id).Op != expr.OpAdd {
		return id
	}
	children := st.Get(id).Children
	var logArgs, rest []expr.ID
	for _, child := range children {
		if arg, ok := logArgument(st, child); ok {
			logArgs = append(logArgs, arg)
			continue
		}
		if coeff, arg, ok := scaledLog(st, child); ok {
			logArgs = append(logArgs, st.Pow(arg, coeff))
			continue
		}
		rest = append(rest, child)
	}
	if len(logArgs) < 2 {
		return id
	}
	contracted := st.Func("ln", []expr.ID{st.Mul(logArgs)})
	if len(rest) == 0 {
		return contracted
	}
	rest = append(rest, contracted)
	return st.Add(rest)
}

func logArgument(st *expr.Store, id expr.ID) (expr.ID, bool) {
	n := st.Get(id)
	if n.Op != expr.OpFunction || len(n.Children) != 1 {
		return 0, false
	}
	if n.Payload.Str != "ln" && n.Payload.Str != "log" {
		return 0, false
	}
	return n.Children[0], true
}

// scaledLog recognizes k*log(x) with numeric k.
func scaledLog(st *expr.Store, id expr.ID) (coeff, arg expr.ID, ok bool) {
	n := st.Get(id)
	if n.Op != expr.OpMul || len(n.Children) != 2 {
		return 0, 0, false
	}
	for k := 0; k < 2; k++ {
		first, second := n.Children[k], n.Children[1-k]
		if !st.Get(first).IsNumeric() {
			continue
		}
		if a, isLog := logArgument(st, second); isLog {
			return first, a, true
		}
	}
	return 0, 0, false
}
