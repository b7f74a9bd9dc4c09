package zdd

import (
	"sort"
	"strings"
)

// Poly is a Boolean polynomial: a set of monomials rooted at a node of its ring.
// The zero value is not usable; obtain polynomials from a Ring or a Cache.
type Poly struct {
	r  *Ring
	id NodeID
}

func (p Poly) Ring() *Ring       { return p.r }
func (p Poly) ID() NodeID        { return p.id }
func (p Poly) IsZero() bool      { return p.id == Empty }
func (p Poly) IsOne() bool       { return p.id == Base }
func (p Poly) Equal(q Poly) bool { return p.r == q.r && p.id == q.id }

// Deg is the total degree; the zero polynomial has degree -1.
func (p Poly) Deg() int { return int(p.r.deg[p.id]) }

// Length is the number of terms, saturated at the largest int.
func (p Poly) Length() int {
	c := p.r.count[p.id]
	if c > uint64(^uint(0)>>1) {
		return int(^uint(0) >> 1)
	}
	return int(c)
}

// Lead returns the largest term under the ring's order; zero yields the empty monomial.
func (p Poly) Lead() Monomial {
	if p.id == Empty {
		return Monomial{}
	}
	r := p.r
	var vars []int
	n := p.id
	for !r.isTerminal(n) {
		t, e := r.thenOf(n), r.elseOf(n)
		if r.order == Lex || r.deg[t]+1 >= r.deg[e] {
			vars = append(vars, int(r.top(n)))
			n = t
			continue
		}
		n = e
	}
	return Monomial{vars: vars}
}

// LeadDeg is the degree of the lead term.
func (p Poly) LeadDeg() int {
	if p.id == Empty {
		return -1
	}
	if p.r.order.IsDegreeOrder() {
		return p.Deg()
	}
	d := 0
	for n := p.id; !p.r.isTerminal(n); n = p.r.thenOf(n) {
		d++
	}
	return d
}

// Terms lists the monomials of p, largest first under the ring's order.
func (p Poly) Terms() []Monomial {
	var out []Monomial
	for it := p.Begin(); !it.AtEnd(); it.Next() {
		out = append(out, it.Term())
	}
	if p.r.order != Lex {
		order := p.r.order
		sort.SliceStable(out, func(i, j int) bool { return order.Compare(out[i], out[j]) > 0 })
	}
	return out
}

// Contains reports whether m is a term of p.
func (p Poly) Contains(m Monomial) bool {
	r := p.r
	n := p.id
	for _, v := range m.vars {
		for r.top(n) < int32(v) {
			n = r.elseOf(n)
		}
		if r.top(n) != int32(v) {
			return false
		}
		n = r.thenOf(n)
	}
	return r.ownsOne(n)
}

// Eval evaluates p at the point given by assignment (indexed by variable).
func (p Poly) Eval(assignment []bool) bool {
	memo := map[NodeID]bool{}
	var eval func(n NodeID) bool
	eval = func(n NodeID) bool {
		if p.r.isTerminal(n) {
			return n == Base
		}
		if v, ok := memo[n]; ok {
			return v
		}
		v := p.r.top(n)
		res := eval(p.r.elseOf(n))
		if int(v) < len(assignment) && assignment[v] {
			res = res != eval(p.r.thenOf(n))
		}
		memo[n] = res
		return res
	}
	return eval(p.id)
}

// UsedVariables returns the product of all variables occurring in p.
func (p Poly) UsedVariables() Monomial {
	seen := map[NodeID]bool{}
	used := map[int]bool{}
	stack := []NodeID{p.id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.r.isTerminal(n) || seen[n] {
			continue
		}
		seen[n] = true
		used[int(p.r.top(n))] = true
		stack = append(stack, p.r.thenOf(n), p.r.elseOf(n))
	}
	vars := make([]int, 0, len(used))
	for v := range used {
		vars = append(vars, v)
	}
	return NewMonomial(vars...)
}

// Navigation returns a cursor on the root node of p.
func (p Poly) Navigation() Navigator { return Navigator{r: p.r, id: p.id} }

func (p Poly) String() string {
	if p.r == nil {
		return "<nil>"
	}
	if p.id == Empty {
		return "0"
	}
	terms := p.Terms()
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Format(p.r)
	}
	return strings.Join(parts, " + ")
}
