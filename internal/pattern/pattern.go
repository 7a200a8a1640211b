// Package pattern implements structural matching of small pattern trees
// against store expressions, with named capture bindings, plus symbol
// substitution. Add/Mul sequence patterns match associatively-commutatively
// by backtracking over child assignments.
package pattern

import "symmetrica/internal/expr"

// Kind discriminates pattern nodes.
type Kind uint8

const (
	KindAny Kind = iota
	KindInt
	KindSym
	KindFunc
	KindPow
	KindAddSeq
	KindMulSeq
)

// Pat is a pattern tree node. Any captures the matched expression under
// Name; Int and Sym match exact atoms; Func matches a function with the
// given name and argument patterns in order; Pow matches base and exponent;
// AddSeq/MulSeq match the children of a canonical Add/Mul in any order.
type Pat struct {
	Kind Kind
	Name string
	Int  int64
	Args []Pat
}

// Any captures the matched subexpression under name.
func Any(name string) Pat { return Pat{Kind: KindAny, Name: name} }

// Int matches the integer literal k.
func Int(k int64) Pat { return Pat{Kind: KindInt, Int: k} }

// Sym matches the symbol with the given name.
func Sym(name string) Pat { return Pat{Kind: KindSym, Name: name} }

// Func matches name(args...) with argument patterns in order.
func Func(name string, args ...Pat) Pat { return Pat{Kind: KindFunc, Name: name, Args: args} }

// Pow matches base^exp.
func Pow(base, exp Pat) Pat { return Pat{Kind: KindPow, Args: []Pat{base, exp}} }

// AddSeq matches an Add whose children can be assigned one-to-one to the
// given patterns in some order.
func AddSeq(args ...Pat) Pat { return Pat{Kind: KindAddSeq, Args: args} }

// MulSeq is the multiplicative counterpart of AddSeq.
func MulSeq(args ...Pat) Pat { return Pat{Kind: KindMulSeq, Args: args} }

// Bindings maps capture names to matched expression IDs.
type Bindings map[string]expr.ID

// Match attempts to match pat against id. On success it returns the capture
// bindings; repeated capture names must re-unify to the same ID.
func Match(st *expr.Store, pat Pat, id expr.ID) (Bindings, bool) {
	b := make(Bindings)
	if matchInto(st, pat, id, b) {
		return b, true
	}
	return nil, false
}

func matchInto(st *expr.Store, pat Pat, id expr.ID, b Bindings) bool {
	n := st.Get(id)
	switch pat.Kind {
	case KindAny:
		if prev, ok := b[pat.Name]; ok {
			return prev == id
		}
		b[pat.Name] = id
		return true
	case KindInt:
		return n.Op == expr.OpInteger && n.Payload.Int == pat.Int
	case KindSym:
		return n.Op == expr.OpSymbol && n.Payload.Str == pat.Name
	case KindFunc:
		if n.Op != expr.OpFunction || n.Payload.Str != pat.Name {
			return false
		}
		if len(n.Children) != len(pat.Args) {
			return false
		}
		for i, sub := range pat.Args {
			if !matchInto(st, sub, n.Children[i], b) {
				return false
			}
		}
		return true
	case KindPow:
		if n.Op != expr.OpPow {
			return false
		}
		return matchInto(st, pat.Args[0], n.Children[0], b) &&
			matchInto(st, pat.Args[1], n.Children[1], b)
	case KindAddSeq:
		if n.Op != expr.OpAdd {
			return false
		}
		return matchSeq(st, pat.Args, n.Children, b)
	case KindMulSeq:
		if n.Op != expr.OpMul {
			return false
		}
		return matchSeq(st, pat.Args, n.Children, b)
	}
	return false
}

// matchSeq assigns each sub-pattern to a distinct child, trying assignments
// with backtracking. Binding state is snapshotted per branch so failed
// branches do not leak captures.
func matchSeq(st *expr.Store, pats []Pat, children []expr.ID, b Bindings) bool {
	if len(pats) != len(children) {
		return false
	}
	used := make([]bool, len(children))
	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(pats) {
			return true
		}
		for j, c := range children {
			if used[j] {
				continue
			}
			snapshot := snapshotBindings(b)
			if matchInto(st, pats[i], c, b) {
				used[j] = true
				if assign(i + 1) {
					return true
				}
				used[j] = false
			}
			restoreBindings(b, snapshot)
		}
		return false
	}
	return assign(0)
}

func snapshotBindings(b Bindings) Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func restoreBindings(b Bindings, snapshot Bindings) {
	for k := range b {
		if _, ok := snapshot[k]; !ok {
			delete(b, k)
		}
	}
	for k, v := range snapshot {
		b[k] = v
	}
}
