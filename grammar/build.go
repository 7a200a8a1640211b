package grammar

import (
	"fmt"
	"strconv"

	"symmetrica/internal/expr"
)

// Build lowers the parse tree into canonical store expressions. Subtraction
// becomes addition of a -1 multiple and division becomes multiplication by a
// -1 power, matching the kernel's canonical forms.
func (e *Expression) Build(st *expr.Store) (expr.ID, error) {
	acc, err := e.Left.build(st)
	if err != nil {
		return 0, err
	}
	for _, tail := range e.Rest {
		rhs, err := tail.Term.build(st)
		if err != nil {
			return 0, err
		}
		if tail.Op == "-" {
			rhs = st.Mul([]expr.ID{st.Int(-1), rhs})
		}
		acc = st.Add([]expr.ID{acc, rhs})
	}
	return acc, nil
}

func (t *Term) build(st *expr.Store) (expr.ID, error) {
	acc, err := t.Left.build(st)
	if err != nil {
		return 0, err
	}
	for _, tail := range t.Rest {
		rhs, err := tail.Unary.build(st)
		if err != nil {
			return 0, err
		}
		if tail.Op == "/" {
			rhs = st.Pow(rhs, st.Int(-1))
		}
		acc = st.Mul([]expr.ID{acc, rhs})
	}
	return acc, nil
}

func (u *Unary) build(st *expr.Store) (expr.ID, error) {
	if u.Neg != nil {
		inner, err := u.Neg.build(st)
		if err != nil {
			return 0, err
		}
		return st.Mul([]expr.ID{st.Int(-1), inner}), nil
	}
	return u.Power.build(st)
}

func (p *Power) build(st *expr.Store) (expr.ID, error) {
	base, err := p.Base.build(st)
	if err != nil {
		return 0, err
	}
	if p.Exp == nil {
		return base, nil
	}
	exp, err := p.Exp.build(st)
	if err != nil {
		return 0, err
	}
	return st.Pow(base, exp), nil
}

func (a *Atom) build(st *expr.Store) (expr.ID, error) {
	switch {
	case a.Call != nil:
		args := make([]expr.ID, len(a.Call.Args))
		for i, arg := range a.Call.Args {
			id, err := arg.Build(st)
			if err != nil {
				return 0, err
			}
			args[i] = id
		}
		return st.Func(a.Call.Name, args), nil
	case a.Number != nil:
		k, err := strconv.ParseInt(*a.Number, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("integer literal %q out of range: %w", *a.Number, err)
		}
		return st.Int(k), nil
	case a.Ident != nil:
		return st.Sym(*a.Ident), nil
	case a.Paren != nil:
		return a.Paren.Build(st)
	}
	return 0, fmt.Errorf("empty atom")
}
