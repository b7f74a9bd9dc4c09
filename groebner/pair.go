package groebner

import (
	"fmt"

	"gbf2/zdd"
)

// PairKind tags the payload of a Pair.
type PairKind uint8

const (
	// IndexPair is the S-polynomial of two generators.
	IndexPair PairKind = iota
	// VariablePair is a generator multiplied by one of its lead variables.
	VariablePair
	// DelayedPair is a polynomial waiting to be integrated.
	DelayedPair
)

func (k PairKind) String() string {
	switch k {
	case IndexPair:
		return "index"
	case VariablePair:
		return "variable"
	case DelayedPair:
		return "delayed"
	}
	return fmt.Sprintf("PairKind(%d)", int(k))
}

// PairKey orders pending pairs. Lead need not be the lead of the materialized
// polynomial.
type PairKey struct {
	Lead  zdd.Monomial
	Sugar int
	WLen  int
}

// Pair is deferred work. I and J are generator indices of an index pair; I and V
// the generator and variable of a variable pair; P the polynomial of a delayed pair.
type Pair struct {
	PairKey
	Kind PairKind
	I, J int
	V    int
	P    zdd.Poly

	seq uint64
}

func newIndexPair(entries []Entry, i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	ei, ej := entries[i], entries[j]
	lead := ei.Lead.LCM(ej.Lead)
	ecart := ei.Ecart()
	if e := ej.Ecart(); e > ecart {
		ecart = e
	}
	return Pair{
		PairKey: PairKey{Lead: lead, Sugar: lead.Deg() + ecart, WLen: ei.WeightedLength + ej.WeightedLength - 2},
		Kind:    IndexPair,
		I:       i,
		J:       j,
	}
}

func newVariablePair(entries []Entry, i, v int) Pair {
	e := entries[i]
	return Pair{
		PairKey: PairKey{Lead: e.Lead, Sugar: e.Deg + 1, WLen: e.WeightedLength + e.Length},
		Kind:    VariablePair,
		I:       i,
		V:       v,
	}
}

func newDelayedPair(p zdd.Poly) Pair {
	return Pair{
		PairKey: PairKey{Lead: p.Lead(), Sugar: p.Deg(), WLen: eliminationLength(p)},
		Kind:    DelayedPair,
		P:       p,
	}
}

// less orders pairs by lead (smaller first), then sugar, then weight, then age.
func (p Pair) less(o Pair, order zdd.Order) bool {
	if c := order.Compare(p.Lead, o.Lead); c != 0 {
		return c < 0
	}
	if p.Sugar != o.Sugar {
		return p.Sugar < o.Sugar
	}
	if p.WLen != o.WLen {
		return p.WLen < o.WLen
	}
	return p.seq < o.seq
}

func (p Pair) String() string {
	switch p.Kind {
	case IndexPair:
		return fmt.Sprintf("(%d,%d) lead=%v sugar=%d", p.I, p.J, p.Lead, p.Sugar)
	case VariablePair:
		return fmt.Sprintf("x%d*g%d lead=%v sugar=%d", p.V, p.I, p.Lead, p.Sugar)
	default:
		return fmt.Sprintf("delayed lead=%v sugar=%d", p.Lead, p.Sugar)
	}
}
