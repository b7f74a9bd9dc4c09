package groebner

import "gbf2/zdd"

// Entry is a committed generator with the statistics derived from it at insertion.
// Entries are values; a generator whose polynomial changes gets a new Entry.
type Entry struct {
	P              zdd.Poly
	Lead           zdd.Monomial
	LeadDeg        int
	Deg            int
	Length         int
	WeightedLength int
	Literals       LiteralFactors
	UsedVariables  zdd.Monomial
}

// NewEntry derives the statistics of a nonzero polynomial.
func NewEntry(c *zdd.Cache, p zdd.Poly) Entry {
	lead := p.Lead()
	return Entry{
		P:              p,
		Lead:           lead,
		LeadDeg:        lead.Deg(),
		Deg:            p.Deg(),
		Length:         p.Length(),
		WeightedLength: eliminationLength(p),
		Literals:       literalFactors(c, p),
		UsedVariables:  p.UsedVariables(),
	}
}

// Ecart is the degree excess of the polynomial over its lead.
func (e Entry) Ecart() int { return e.Deg - e.LeadDeg }

// Tail is the polynomial without its lead term.
func (e Entry) Tail(c *zdd.Cache) zdd.Poly {
	return c.Add(e.P, c.Ring().MonomialPoly(e.Lead))
}

// Assignment reports whether the generator is x (x = 0) or x + 1 (x = 1).
func (e Entry) Assignment() (v int, value bool, ok bool) {
	if e.LeadDeg != 1 || e.Length > 2 {
		return 0, false, false
	}
	v = e.Lead.At(0)
	if e.Length == 1 {
		return v, false, true
	}
	if e.P.Contains(zdd.Monomial{}) {
		return v, true, true
	}
	return 0, false, false
}

// IsMonomialPlusOne reports whether the generator is m + 1 with deg(m) >= 2.
func (e Entry) IsMonomialPlusOne() bool {
	return e.LeadDeg >= 2 && e.Length == 2 && e.P.Contains(zdd.Monomial{})
}

// eliminationLength estimates the cost of reducing p to its lead: every term counts
// one, plus its degree excess over the lead.
func eliminationLength(p zdd.Poly) int {
	if p.IsZero() {
		return 0
	}
	n := p.Length()
	if p.Ring().Order().IsDegreeOrder() || p.Deg() == p.LeadDeg() {
		return n
	}
	ld := p.LeadDeg()
	for it := p.Begin(); !it.AtEnd(); it.Next() {
		if d := it.Term().Deg(); d > ld {
			n += d - ld
		}
	}
	return n
}
