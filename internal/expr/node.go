// Package expr implements the hash-consed expression kernel: an append-only
// arena of immutable nodes with canonical-form constructors for Add, Mul and
// Pow. Structurally equal expressions always receive the same ID, so equality
// checks between expressions built in the same Store are pointer-free integer
// comparisons.
package expr

import "symmetrica/internal/arith"

// ID is a stable handle into a Store's arena. IDs are only meaningful for the
// Store that produced them.
type ID int

// Op discriminates the node kinds.
type Op uint8

const (
	OpInteger Op = iota
	OpRational
	OpSymbol
	OpFunction
	OpAdd
	OpMul
	OpPow
	OpPiecewise
)

func (op Op) String() string {
	switch op {
	case OpInteger:
		return "Integer"
	case OpRational:
		return "Rational"
	case OpSymbol:
		return "Symbol"
	case OpFunction:
		return "Function"
	case OpAdd:
		return "Add"
	case OpMul:
		return "Mul"
	case OpPow:
		return "Pow"
	case OpPiecewise:
		return "Piecewise"
	}
	return "Unknown"
}

// PayloadKind discriminates which payload field is populated.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadInt
	PayloadRat
	PayloadSym
	PayloadFunc
)

// Payload carries the per-node data that is not a child reference. It is a
// comparable value so it can be part of the interning key.
type Payload struct {
	Kind PayloadKind
	Int  int64
	Rat  arith.Q
	Str  string
}

// Node is an immutable expression node. Children of Add and Mul are stored in
// canonical digest order; Function argument order is semantic and preserved;
// Pow children are [base, exponent]; Piecewise children are flattened
// (condition, value) pairs.
type Node struct {
	Op       Op
	Payload  Payload
	Children []ID
	Digest   uint64
}

// IsNumeric reports whether the node is an integer or rational literal.
func (n *Node) IsNumeric() bool { return n.Op == OpInteger || n.Op == OpRational }

// AsRat returns the node's numeric value when it is an integer or rational
// literal.
func (n *Node) AsRat() (arith.Q, bool) {
	switch n.Op {
	case OpInteger:
		return arith.FromInt(n.Payload.Int), true
	case OpRational:
		return n.Payload.Rat, true
	}
	return arith.Q{}, false
}
