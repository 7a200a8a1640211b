package encoding

import (
	"encoding/json"
	"fmt"

	"symmetrica/internal/expr"
)

// The JSON grammar uses single-key objects:
//
//	{"Integer": k}
//	{"Rational": {"num": n, "den": d}}
//	{"Symbol": "x"}
//	{"Add": [...]}  {"Mul": [...]}
//	{"Pow": {"base": ..., "exp": ...}}
//	{"Function": {"name": "sin", "args": [...]}}

type jsonRational struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

type jsonPow struct {
	Base json.RawMessage `json:"base"`
	Exp  json.RawMessage `json:"exp"`
}

type jsonFunction struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
}

// ToJSON renders id in the JSON grammar.
func ToJSON(st *expr.Store, id expr.ID) ([]byte, error) {
	v, err := jsonValue(st, id)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func jsonValue(st *expr.Store, id expr.ID) (any, error) {
	n := st.Get(id)
	switch n.Op {
	case expr.OpInteger:
		return map[string]any{"Integer": n.Payload.Int}, nil
	case expr.OpRational:
		return map[string]any{"Rational": jsonRational{
			Num: n.Payload.Rat.Num,
			Den: n.Payload.Rat.Den,
		}}, nil
	case expr.OpSymbol:
		return map[string]any{"Symbol": n.Payload.Str}, nil
	case expr.OpAdd, expr.OpMul:
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			v, err := jsonValue(st, c)
			if err != nil {
				return nil, err
			}
			children[i] = v
		}
		key := "Add"
		if n.Op == expr.OpMul {
			key = "Mul"
		}
		return map[string]any{key: children}, nil
	case expr.OpPow:
		base, err := jsonValue(st, n.Children[0])
		if err != nil {
			return nil, err
		}
		exp, err := jsonValue(st, n.Children[1])
		if err != nil {
			return nil, err
		}
		return map[string]any{"Pow": map[string]any{"base": base, "exp": exp}}, nil
	case expr.OpFunction:
		args := make([]any, len(n.Children))
		for i, c := range n.Children {
			v, err := jsonValue(st, c)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return map[string]any{"Function": map[string]any{
			"name": n.Payload.Str,
			"args": args,
		}}, nil
	case expr.OpPiecewise:
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			v, err := jsonValue(st, c)
			if err != nil {
				return nil, err
			}
			children[i] = v
		}
		return map[string]any{"Piecewise": children}, nil
	}
	return nil, fmt.Errorf("json: unsupported node %v", n.Op)
}

// FromJSON parses the JSON grammar into an expression in st.
func FromJSON(st *expr.Store, data []byte) (expr.ID, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return 0, fmt.Errorf("json: %w", err)
	}
	if len(obj) != 1 {
		return 0, fmt.Errorf("json: expected a single-key object, got %d keys", len(obj))
	}
	for key, raw := range obj {
		return fromJSONNode(st, key, raw)
	}
	return 0, fmt.Errorf("json: empty object")
}

func fromJSONNode(st *expr.Store, key string, raw json.RawMessage) (expr.ID, error) {
	switch key {
	case "Integer":
		var k int64
		if err := json.Unmarshal(raw, &k); err != nil {
			return 0, fmt.Errorf("json: Integer payload: %w", err)
		}
		return st.Int(k), nil
	case "Rational":
		var r jsonRational
		if err := json.Unmarshal(raw, &r); err != nil {
			return 0, fmt.Errorf("json: Rational payload: %w", err)
		}
		if r.Den == 0 {
			return 0, fmt.Errorf("json: rational with zero denominator")
		}
		return st.Rat(r.Num, r.Den), nil
	case "Symbol":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("json: Symbol payload: %w", err)
		}
		return st.Sym(s), nil
	case "Add", "Mul", "Piecewise":
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return 0, fmt.Errorf("json: %s payload: %w", key, err)
		}
		children := make([]expr.ID, len(items))
		for i, item := range items {
			id, err := FromJSON(st, item)
			if err != nil {
				return 0, err
			}
			children[i] = id
		}
		switch key {
		case "Add":
			return st.Add(children), nil
		case "Mul":
			return st.Mul(children), nil
		default:
			if len(children)%2 != 0 {
				return 0, fmt.Errorf("json: Piecewise needs condition/value pairs")
			}
			pairs := make([][2]expr.ID, 0, len(children)/2)
			for i := 0; i < len(children); i += 2 {
				pairs = append(pairs, [2]expr.ID{children[i], children[i+1]})
			}
			return st.Piecewise(pairs), nil
		}
	case "Pow":
		var p jsonPow
		if err := json.Unmarshal(raw, &p); err != nil {
			return 0, fmt.Errorf("json: Pow payload: %w", err)
		}
		base, err := FromJSON(st, p.Base)
		if err != nil {
			return 0, err
		}
		exp, err := FromJSON(st, p.Exp)
		if err != nil {
			return 0, err
		}
		return st.Pow(base, exp), nil
	case "Function":
		var f jsonFunction
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, fmt.Errorf("json: Function payload: %w", err)
		}
		args := make([]expr.ID, len(f.Args))
		for i, a := range f.Args {
			id, err := FromJSON(st, a)
			if err != nil {
				return 0, err
			}
			args[i] = id
		}
		return st.Func(f.Name, args), nil
	}
	return 0, fmt.Errorf("json: unknown node kind %q", key)
}
