// Package encoding serializes expressions to S-expression and JSON text and
// parses both forms back, such that parse(serialize(e)) interns to an
// expression equal to e in a fresh store.
package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"symmetrica/internal/expr"
)

// ToSexpr renders id in the S-expression grammar:
// atoms (Int k), (Rat n d), (Sym name); composites (+ ...), (* ...),
// (^ base exp), (Fn name args...). Names with special characters are quoted.
func ToSexpr(st *expr.Store, id expr.ID) string {
	var b strings.Builder
	writeSexpr(st, &b, id)
	return b.String()
}

func writeSexpr(st *expr.Store, b *strings.Builder, id expr.ID) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger:
		fmt.Fprintf(b, "(Int %d)", n.Payload.Int)
	case expr.OpRational:
		fmt.Fprintf(b, "(Rat %d %d)", n.Payload.Rat.Num, n.Payload.Rat.Den)
	case expr.OpSymbol:
		fmt.Fprintf(b, "(Sym %s)", escapeName(n.Payload.Str))
	case expr.OpFunction:
		fmt.Fprintf(b, "(Fn %s", escapeName(n.Payload.Str))
		for _, c := range n.Children {
			b.WriteByte(' ')
			writeSexpr(st, b, c)
		}
		b.WriteByte(')')
	case expr.OpAdd, expr.OpMul:
		if n.Op == expr.OpAdd {
			b.WriteString("(+")
		} else {
			b.WriteString("(*")
		}
		for _, c := range n.Children {
			b.WriteByte(' ')
			writeSexpr(st, b, c)
		}
		b.WriteByte(')')
	case expr.OpPow:
		b.WriteString("(^ ")
		writeSexpr(st, b, n.Children[0])
		b.WriteByte(' ')
		writeSexpr(st, b, n.Children[1])
		b.WriteByte(')')
	case expr.OpPiecewise:
		b.WriteString("(Piecewise")
		for _, c := range n.Children {
			b.WriteByte(' ')
			writeSexpr(st, b, c)
		}
		b.WriteByte(')')
	}
}

func escapeName(s string) string {
	plain := true
	for _, r := range s {
		if !(r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			plain = false
			break
		}
	}
	// A leading digit or '-' would lex as an integer token, so such names
	// are quoted too.
	if plain && s != "" && s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return s
	}
	return strconv.Quote(s)
}

// FromSexpr parses the S-expression grammar into an expression in st.
func FromSexpr(st *expr.Store, input string) (expr.ID, error) {
	toks, err := lexSexpr(input)
	if err != nil {
		return 0, err
	}
	p := &sexprParser{toks: toks}
	id, err := p.parseExpr(st)
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("sexpr: trailing input at token %d", p.pos)
	}
	return id, nil
}

type tokKind uint8

const (
	tokLParen tokKind = iota
	tokRParen
	tokInt
	tokWord
	tokString
)

type token struct {
	kind tokKind
	str  string
	num  int64
}

func lexSexpr(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == '"':
			end := i + 1
			for end < len(input) {
				if input[end] == '\\' {
					end += 2
					continue
				}
				if input[end] == '"' {
					break
				}
				end++
			}
			if end >= len(input) {
				return nil, fmt.Errorf("sexpr: unterminated string")
			}
			s, err := strconv.Unquote(input[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("sexpr: bad string literal: %w", err)
			}
			toks = append(toks, token{kind: tokString, str: s})
			i = end + 1
		case c == '-' || (c >= '0' && c <= '9'):
			end := i + 1
			for end < len(input) && input[end] >= '0' && input[end] <= '9' {
				end++
			}
			k, err := strconv.ParseInt(input[i:end], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("sexpr: bad integer %q: %w", input[i:end], err)
			}
			toks = append(toks, token{kind: tokInt, num: k})
			i = end
		default:
			end := i
			for end < len(input) {
				ec := input[end]
				if ec == ' ' || ec == '\t' || ec == '\n' || ec == '\r' || ec == '(' || ec == ')' {
					break
				}
				end++
			}
			toks = append(toks, token{kind: tokWord, str: input[i:end]})
			i = end
		}
	}
	return toks, nil
}

type sexprParser struct {
	toks []token
	pos  int
}

func (p *sexprParser) next() (token, error) {
	if p.pos >= len(p.toks) {
		return token{}, fmt.Errorf("sexpr: unexpected end of input")
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *sexprParser) expect(kind tokKind, what string) (token, error) {
	t, err := p.next()
	if err != nil {
		return token{}, err
	}
	if t.kind != kind {
		return token{}, fmt.Errorf("sexpr: expected %s", what)
	}
	return t, nil
}

func (p *sexprParser) parseName() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	switch t.kind {
	case tokWord, tokString:
		return t.str, nil
	}
	return "", fmt.Errorf("sexpr: expected name")
}

func (p *sexprParser) parseExpr(st *expr.Store) (expr.ID, error) {
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return 0, err
	}
	head, err := p.next()
	if err != nil {
		return 0, err
	}
	if head.kind != tokWord {
		return 0, fmt.Errorf("sexpr: expected form head")
	}
	switch head.str {
	case "Int":
		t, err := p.expect(tokInt, "integer")
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return 0, err
		}
		return st.Int(t.num), nil
	case "Rat":
		num, err := p.expect(tokInt, "numerator")
		if err != nil {
			return 0, err
		}
		den, err := p.expect(tokInt, "denominator")
		if err != nil {
			return 0, err
		}
		if den.num == 0 {
			return 0, fmt.Errorf("sexpr: rational with zero denominator")
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return 0, err
		}
		return st.Rat(num.num, den.num), nil
	case "Sym":
		name, err := p.parseName()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return 0, err
		}
		return st.Sym(name), nil
	case "Fn":
		name, err := p.parseName()
		if err != nil {
			return 0, err
		}
		args, err := p.parseUntilClose(st)
		if err != nil {
			return 0, err
		}
		return st.Func(name, args), nil
	case "+":
		terms, err := p.parseUntilClose(st)
		if err != nil {
			return 0, err
		}
		return st.Add(terms), nil
	case "*":
		factors, err := p.parseUntilClose(st)
		if err != nil {
			return 0, err
		}
		return st.Mul(factors), nil
	case "^":
		base, err := p.parseExpr(st)
		if err != nil {
			return 0, err
		}
		exp, err := p.parseExpr(st)
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return 0, err
		}
		return st.Pow(base, exp), nil
	case "Piecewise":
		children, err := p.parseUntilClose(st)
		if err != nil {
			return 0, err
		}
		if len(children)%2 != 0 {
			return 0, fmt.Errorf("sexpr: Piecewise needs condition/value pairs")
		}
		pairs := make([][2]expr.ID, 0, len(children)/2)
		for i := 0; i < len(children); i += 2 {
			pairs = append(pairs, [2]expr.ID{children[i], children[i+1]})
		}
		return st.Piecewise(pairs), nil
	}
	return 0, fmt.Errorf("sexpr: unknown form %q", head.str)
}

func (p *sexprParser) parseUntilClose(st *expr.Store) ([]expr.ID, error) {
	var out []expr.ID
	for {
		if p.pos < len(p.toks) && p.toks[p.pos].kind == tokRParen {
			p.pos++
			return out, nil
		}
		id, err := p.parseExpr(st)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
}
