package groebner

import (
	"sort"

	"gbf2/zdd"
)

// ReductionStrategy owns the generators of a run and the index over their leads.
// The lead set, the lead map and the entry list are updated together by add.
type ReductionStrategy struct {
	c       *zdd.Cache
	order   zdd.Order
	entries []Entry
	minimal []bool

	leads  zdd.Poly
	byLead map[string]int

	monomialsPlusOne zdd.Poly
	values           map[int]bool
	vPairCalculated  []map[int]bool
	status           PairStatus

	reductionSteps int
}

// NewReductionStrategy creates an empty generator set over the cache's ring.
func NewReductionStrategy(c *zdd.Cache) *ReductionStrategy {
	r := c.Ring()
	return &ReductionStrategy{
		c:                c,
		order:            r.Order(),
		leads:            r.Zero(),
		byLead:           make(map[string]int),
		monomialsPlusOne: r.Zero(),
		values:           make(map[int]bool),
	}
}

func (g *ReductionStrategy) Len() int { return len(g.entries) }

// Entry returns generator i.
func (g *ReductionStrategy) Entry(i int) Entry { return g.entries[i] }

// Generators returns the polynomials of all generators in insertion order.
func (g *ReductionStrategy) Generators() []zdd.Poly {
	out := make([]zdd.Poly, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.P
	}
	return out
}

// LeadingTerms is the set of all lead monomials.
func (g *ReductionStrategy) LeadingTerms() zdd.Poly { return g.leads }

// MonomialsPlusOne is the set of monomials m with a generator m + 1.
func (g *ReductionStrategy) MonomialsPlusOne() zdd.Poly { return g.monomialsPlusOne }

// IsMinimal reports whether no other lead properly divides the lead of generator i.
func (g *ReductionStrategy) IsMinimal(i int) bool { return g.minimal[i] }

// VariableHasValue reports the value propagated for x_v, if any.
func (g *ReductionStrategy) VariableHasValue(v int) (value, ok bool) {
	value, ok = g.values[v]
	return value, ok
}

// ContainsOne reports whether the constant 1 is a lead, i.e. the ideal is trivial.
func (g *ReductionStrategy) ContainsOne() bool {
	return g.leads.Contains(zdd.Monomial{})
}

func (g *ReductionStrategy) add(e Entry) int {
	i := len(g.entries)
	key := e.Lead.Key()
	divisors := g.c.DivisorsOf(g.leads, e.Lead)
	minimal := divisors.IsZero() || (divisors.Length() == 1 && divisors.Contains(e.Lead))
	if minimal {
		multiples := g.c.MultiplesOf(g.leads, e.Lead)
		for it := multiples.Begin(); !it.AtEnd(); it.Next() {
			m := it.Term()
			if m.Equal(e.Lead) {
				continue
			}
			for j := range g.entries {
				if g.minimal[j] && g.entries[j].Lead.Equal(m) {
					g.minimal[j] = false
				}
			}
		}
	}
	g.entries = append(g.entries, e)
	g.minimal = append(g.minimal, minimal)
	g.vPairCalculated = append(g.vPairCalculated, nil)
	g.status.Grow(len(g.entries))
	if _, ok := g.byLead[key]; !ok {
		g.byLead[key] = i
	}
	g.leads = g.c.Union(g.leads, g.c.Ring().MonomialPoly(e.Lead))
	if e.IsMonomialPlusOne() {
		g.monomialsPlusOne = g.c.Union(g.monomialsPlusOne, g.c.Ring().MonomialPoly(e.Lead))
	}
	return i
}

// replace swaps the polynomial of generator i for p, which must have the same lead.
func (g *ReductionStrategy) replace(i int, p zdd.Poly) Entry {
	e := NewEntry(g.c, p)
	g.entries[i] = e
	return e
}

func (g *ReductionStrategy) markVariablePair(i, v int) {
	if g.vPairCalculated[i] == nil {
		g.vPairCalculated[i] = make(map[int]bool)
	}
	g.vPairCalculated[i][v] = true
}

func (g *ReductionStrategy) variablePairCalculated(i, v int) bool {
	return g.vPairCalculated[i][v]
}

// HasDivisor reports whether some lead divides m.
func (g *ReductionStrategy) HasDivisor(m zdd.Monomial) bool {
	return !g.c.DivisorsOf(g.leads, m).IsZero()
}

// FindReductor returns the earliest inserted generator whose lead divides m.
func (g *ReductionStrategy) FindReductor(m zdd.Monomial) (int, bool) {
	divisors := g.c.DivisorsOf(g.leads, m)
	best := -1
	for it := divisors.Begin(); !it.AtEnd(); it.Next() {
		if i := g.byLead[it.Term().Key()]; best < 0 || i < best {
			best = i
		}
	}
	return best, best >= 0
}

// LeadReduce top-reduces p until its lead is divisible by no generator lead.
// The cofactor of the reductor is coprime to its lead, so the product keeps the
// lead of the reduced term and cancels it.
func (g *ReductionStrategy) LeadReduce(p zdd.Poly) zdd.Poly {
	for !p.IsZero() {
		lead := p.Lead()
		i, ok := g.FindReductor(lead)
		if !ok {
			return p
		}
		e := g.entries[i]
		p = g.c.Add(p, g.c.MulMonomial(e.P, lead.Div(e.Lead)))
		g.reductionSteps++
	}
	return p
}

// NormalForm reduces every term of p against the generators.
func (g *ReductionStrategy) NormalForm(p zdd.Poly) zdd.Poly {
	res := g.c.Ring().Zero()
	for {
		p = g.LeadReduce(p)
		if p.IsZero() {
			return res
		}
		lm := g.c.Ring().MonomialPoly(p.Lead())
		res = g.c.Add(res, lm)
		p = g.c.Add(p, lm)
	}
}

// TailReduce reduces the non-lead terms of p; the lead term is kept.
func (g *ReductionStrategy) TailReduce(p zdd.Poly) zdd.Poly {
	if p.IsZero() {
		return p
	}
	lm := g.c.Ring().MonomialPoly(p.Lead())
	return g.c.Add(lm, g.NormalForm(g.c.Add(p, lm)))
}

// minimalIndices returns one generator per minimal lead, the earliest inserted,
// sorted by ascending lead.
func (g *ReductionStrategy) minimalIndices() []int {
	var idx []int
	for i, e := range g.entries {
		if g.byLead[e.Lead.Key()] != i {
			continue
		}
		if g.c.DivisorsOf(g.leads, e.Lead).Length() > 1 {
			continue
		}
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool {
		return g.order.Compare(g.entries[idx[a]].Lead, g.entries[idx[b]].Lead) < 0
	})
	return idx
}

// Minimalize returns generators whose leads form an antichain under divisibility.
// Among generators with equal leads the earliest inserted is kept. The result is
// sorted by ascending lead.
func (g *ReductionStrategy) Minimalize() []zdd.Poly {
	idx := g.minimalIndices()
	out := make([]zdd.Poly, len(idx))
	for k, i := range idx {
		out[k] = g.entries[i].P
	}
	return out
}

// MinimalizeAndTailReduce returns Minimalize with every element tail-reduced. On a
// Gröbner basis this is the reduced Gröbner basis.
func (g *ReductionStrategy) MinimalizeAndTailReduce() []zdd.Poly {
	idx := g.minimalIndices()
	out := make([]zdd.Poly, len(idx))
	for k, i := range idx {
		out[k] = g.TailReduce(g.entries[i].P)
	}
	return out
}
