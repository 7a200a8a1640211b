package poly

import "symmetrica/internal/arith"

// PFTerm is one simple partial-fraction term Residue / (x - Root).
type PFTerm struct {
	Residue arith.Q
	Root    arith.Q
}

// PartialFractionsSimple decomposes num/den as q(x) + sum A_i / (x - r_i)
// for denominators that split into distinct rational linear factors. The
// residues come from the cover-up formula A_i = rem(r_i) / den'(r_i), where
// rem is the remainder of the long division. Returns false when the
// denominator has a repeated or non-rational root, or the variables differ.
func PartialFractionsSimple(num, den UniPoly) (UniPoly, []PFTerm, bool) {
	if num.Var != den.Var || den.IsZero() {
		return UniPoly{}, nil, false
	}
	q, rem, err := num.DivRem(den)
	if err != nil {
		return UniPoly{}, nil, false
	}

	// Collect the denominator roots by repeated deflation.
	work := den
	var roots []arith.Q
	for {
		deg, ok := work.Degree()
		if !ok || deg == 0 {
			break
		}
		if deg == 1 {
			// a x + b has the single root -b/a.
			a := work.Coeff(1)
			b := work.Coeff(0)
			if a.IsZero() {
				return UniPoly{}, nil, false
			}
			roots = append(roots, arith.Div(arith.Neg(b), a))
			break
		}
		r, found := FindRationalRoot(work)
		if !found {
			return UniPoly{}, nil, false
		}
		next, ok := DeflateByRoot(work, r)
		if !ok {
			return UniPoly{}, nil, false
		}
		roots = append(roots, r)
		work = next
	}

	// Distinctness: a repeated root is also a root of the derivative.
	dprime := den.Deriv()
	for _, r := range roots {
		v, ok := dprime.Eval(r)
		if !ok || v.IsZero() {
			return UniPoly{}, nil, false
		}
	}

	terms := make([]PFTerm, 0, len(roots))
	for _, r := range roots {
		numV, ok1 := rem.Eval(r)
		denV, ok2 := dprime.Eval(r)
		if !ok1 || !ok2 || denV.IsZero() {
			return UniPoly{}, nil, false
		}
		terms = append(terms, PFTerm{Residue: arith.Div(numV, denV), Root: r})
	}
	return q, terms, true
}
