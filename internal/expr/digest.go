package expr

// Structural digests use FNV-1a 64: deterministic, allocation-free, and
// dependent only on a node's own tag, payload and its children's digests.
// Node IDs and construction order never feed the hash, so the digest of a
// subtree is stable across stores and sessions. Add/Mul children are sorted
// by digest before hashing, which makes the digest a function of the child
// multiset.

const (
	fnvOffset = 0xcbf29ce484222325
	fnvPrime  = 0x100000001b3
)

type fnv64 uint64

func newFnv64() fnv64 { return fnvOffset }

func (h *fnv64) writeByte(b byte) {
	*h = (*h ^ fnv64(b)) * fnvPrime
}

func (h *fnv64) writeUint64(x uint64) {
	for i := 0; i < 8; i++ {
		h.writeByte(byte(x >> (8 * i)))
	}
}

func (h *fnv64) writeInt64(x int64) { h.writeUint64(uint64(x)) }

func (h *fnv64) writeString(s string) {
	for i := 0; i < len(s); i++ {
		h.writeByte(s[i])
	}
}

func digestNode(op Op, payload Payload, childDigests []uint64) uint64 {
	h := newFnv64()
	h.writeByte(byte(op) + 1)
	switch payload.Kind {
	case PayloadNone:
		h.writeByte(0)
	case PayloadInt:
		h.writeByte(1)
		h.writeInt64(payload.Int)
	case PayloadRat:
		h.writeByte(2)
		h.writeInt64(payload.Rat.Num)
		h.writeInt64(payload.Rat.Den)
	case PayloadSym:
		h.writeByte(3)
		h.writeString(payload.Str)
	case PayloadFunc:
		h.writeByte(4)
		h.writeString(payload.Str)
	}
	for _, d := range childDigests {
		h.writeUint64(d)
	}
	return uint64(h)
}
