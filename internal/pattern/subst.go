package pattern

import "symmetrica/internal/expr"

// SubstSymbol replaces every occurrence of the named symbol in id with
// replacement, rebuilding through the canonical constructors so the result
// is in canonical form. Subtrees that do not contain the symbol are shared
// unchanged thanks to hash-consing.
func SubstSymbol(st *expr.Store, id expr.ID, name string, replacement expr.ID) expr.ID {
	n := st.Get(id)
	switch n.Op {
	case expr.OpSymbol:
		if n.Payload.Str == name {
			return replacement
		}
		return id
	case expr.OpInteger, expr.OpRational:
		return id
	case expr.OpAdd:
		return st.Add(substChildren(st, n.Children, name, replacement))
	case expr.OpMul:
		return st.Mul(substChildren(st, n.Children, name, replacement))
	case expr.OpPow:
		base := SubstSymbol(st, n.Children[0], name, replacement)
		exp := SubstSymbol(st, n.Children[1], name, replacement)
		return st.Pow(base, exp)
	case expr.OpFunction:
		return st.Func(n.Payload.Str, substChildren(st, n.Children, name, replacement))
	case expr.OpPiecewise:
		children := substChildren(st, n.Children, name, replacement)
		pairs := make([][2]expr.ID, 0, len(children)/2)
		for i := 0; i+1 < len(children); i += 2 {
			pairs = append(pairs, [2]expr.ID{children[i], children[i+1]})
		}
		return st.Piecewise(pairs)
	}
	return id
}

func substChildren(st *expr.Store, children []expr.ID, name string, replacement expr.ID) []expr.ID {
	out := make([]expr.ID, len(children))
	for i, c := range children {
		out[i] = SubstSymbol(st, c, name, replacement)
	}
	return out
}

// ContainsSymbol reports whether the named symbol occurs anywhere in id.
func ContainsSymbol(st *expr.Store, id expr.ID, name string) bool {
	n := st.Get(id)
	switch n.Op {
	case expr.OpSymbol:
		return n.Payload.Str == name
	case expr.OpInteger, expr.OpRational:
		return false
	}
	for _, c := range n.Children {
		if ContainsSymbol(st, c, name) {
			return true
		}
	}
	return false
}
