package expr

import (
	"strconv"
	"strings"
)

// Operator precedence for printing: Add < Mul < Pow < atoms. A child is
// parenthesized whenever its precedence is lower than its parent's.
func prec(op Op) int {
	switch op {
	case OpAdd:
		return 1
	case OpMul:
		return 2
	case OpPow:
		return 3
	default:
		return 4
	}
}

// String renders id in the canonical infix text form: rationals as p/q,
// functions as name(args...), piecewise as piecewise((cond, val), ...).
func (s *Store) String(id ID) string {
	var b strings.Builder
	s.write(&b, id, 0)
	return b.String()
}

func (s *Store) write(b *strings.Builder, id ID, parentPrec int) {
	n := s.Get(id)
	needParens := prec(n.Op) < parentPrec
	if needParens {
		b.WriteByte('(')
	}
	switch n.Op {
	case OpInteger:
		b.WriteString(strconv.FormatInt(n.Payload.Int, 10))
	case OpRational:
		b.WriteString(strconv.FormatInt(n.Payload.Rat.Num, 10))
		b.WriteByte('/')
		b.WriteString(strconv.FormatInt(n.Payload.Rat.Den, 10))
	case OpSymbol:
		b.WriteString(n.Payload.Str)
	case OpFunction:
		b.WriteString(n.Payload.Str)
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			s.write(b, c, 0)
		}
		b.WriteByte(')')
	case OpAdd:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" + ")
			}
			s.write(b, c, prec(OpAdd))
		}
	case OpMul:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" * ")
			}
			s.write(b, c, prec(OpMul))
		}
	case OpPow:
		s.write(b, n.Children[0], prec(OpPow)+1)
		b.WriteByte('^')
		// Rational and negative exponents read ambiguously without
		// parentheses: x^1/2 versus x^(1/2).
		e := s.Get(n.Children[1])
		if e.Op == OpRational || (e.Op == OpInteger && e.Payload.Int < 0) {
			b.WriteByte('(')
			s.write(b, n.Children[1], 0)
			b.WriteByte(')')
		} else {
			s.write(b, n.Children[1], prec(OpPow)+1)
		}
	case OpPiecewise:
		b.WriteString("piecewise(")
		for i := 0; i+1 < len(n.Children); i += 2 {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			s.write(b, n.Children[i], 0)
			b.WriteString(", ")
			s.write(b, n.Children[i+1], 0)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	}
	if needParens {
		b.WriteByte(')')
	}
}
