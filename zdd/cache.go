package zdd

import "fmt"

type opCode uint8

const (
	opAdd opCode = iota + 1
	opMul
	opUnion
	opIntersect
	opDiff
	opDiv
	opMultiples
	opDivisors
	opSubset0
)

type cacheKey struct {
	op   opCode
	a, b NodeID
}

// CacheStats reports memo usage.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// Cache memoizes the canonicalising operations of one Ring. Keys carry the operation
// code so results of different operations never collide. Entries stay valid for the
// lifetime of the ring because nodes are immutable; Reset drops them all.
type Cache struct {
	r      *Ring
	table  map[cacheKey]NodeID
	hits   uint64
	misses uint64
}

// NewCache creates an empty cache bound to r.
func (r *Ring) NewCache() *Cache {
	return &Cache{r: r, table: make(map[cacheKey]NodeID)}
}

func (c *Cache) Ring() *Ring { return c.r }

func (c *Cache) Reset() {
	c.table = make(map[cacheKey]NodeID)
	c.hits, c.misses = 0, 0
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{Entries: len(c.table), Hits: c.hits, Misses: c.misses}
}

func (c *Cache) lookup(k cacheKey) (NodeID, bool) {
	id, ok := c.table[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return id, ok
}

func (c *Cache) own(ps ...Poly) {
	for _, p := range ps {
		if p.r != c.r {
			panic(fmt.Sprintf("zdd: %v", ErrRingMismatch))
		}
	}
}

func (c *Cache) wrap(id NodeID) Poly { return Poly{r: c.r, id: id} }

// Add returns p + q over GF(2), i.e. the symmetric difference of the term sets.
func (c *Cache) Add(p, q Poly) Poly {
	c.own(p, q)
	return c.wrap(c.add(p.id, q.id))
}

// Sum adds all polynomials.
func (c *Cache) Sum(ps ...Poly) Poly {
	acc := Empty
	for _, p := range ps {
		c.own(p)
		acc = c.add(acc, p.id)
	}
	return c.wrap(acc)
}

// FromMonomials builds the sum of the given monomials; repeated monomials cancel.
func (c *Cache) FromMonomials(ms ...Monomial) Poly {
	acc := Empty
	for _, m := range ms {
		acc = c.add(acc, c.r.monomialNode(m))
	}
	return c.wrap(acc)
}

// Mul returns the Boolean product p*q (x*x = x).
func (c *Cache) Mul(p, q Poly) Poly {
	c.own(p, q)
	return c.wrap(c.mul(p.id, q.id))
}

// MulMonomial multiplies p by the monomial m.
func (c *Cache) MulMonomial(p Poly, m Monomial) Poly {
	c.own(p)
	return c.wrap(c.mul(p.id, c.r.monomialNode(m)))
}

// DivMonomial keeps the terms of p divisible by m and divides them by m.
func (c *Cache) DivMonomial(p Poly, m Monomial) Poly {
	c.own(p)
	return c.wrap(c.div(p.id, c.r.monomialNode(m)))
}

// Subset1 is the cofactor of p with respect to x_v: the terms containing x_v, with x_v removed.
func (c *Cache) Subset1(p Poly, v int) Poly {
	c.own(p)
	c.r.checkVar(v)
	return c.wrap(c.div(p.id, c.r.mk(int32(v), Base, Empty)))
}

// Subset0 keeps the terms of p not containing x_v.
func (c *Cache) Subset0(p Poly, v int) Poly {
	c.own(p)
	c.r.checkVar(v)
	return c.wrap(c.subset0(p.id, int32(v)))
}

func (c *Cache) Union(p, q Poly) Poly {
	c.own(p, q)
	return c.wrap(c.union(p.id, q.id))
}

func (c *Cache) Intersect(p, q Poly) Poly {
	c.own(p, q)
	return c.wrap(c.intersect(p.id, q.id))
}

// Diff keeps the terms of p that are not terms of q.
func (c *Cache) Diff(p, q Poly) Poly {
	c.own(p, q)
	return c.wrap(c.diff(p.id, q.id))
}

// MultiplesOf keeps the terms of set divisible by m.
func (c *Cache) MultiplesOf(set Poly, m Monomial) Poly {
	c.own(set)
	return c.wrap(c.multiples(set.id, c.r.monomialNode(m)))
}

// DivisorsOf keeps the terms of set dividing m.
func (c *Cache) DivisorsOf(set Poly, m Monomial) Poly {
	c.own(set)
	return c.wrap(c.divisors(set.id, c.r.monomialNode(m)))
}

// Substitute replaces x_v by q in p.
func (c *Cache) Substitute(p Poly, v int, q Poly) Poly {
	c.own(p, q)
	one := c.Subset1(p, v)
	if one.IsZero() {
		return p
	}
	return c.Add(c.Mul(q, one), c.Subset0(p, v))
}

// SPoly returns the S-polynomial (l/lead f)*f + (l/lead g)*g with l the lcm of the leads.
func (c *Cache) SPoly(f, g Poly) Poly {
	c.own(f, g)
	lf, lg := f.Lead(), g.Lead()
	l := lf.LCM(lg)
	return c.Add(c.MulMonomial(f, l.Div(lf)), c.MulMonomial(g, l.Div(lg)))
}

func (c *Cache) add(a, b NodeID) NodeID {
	switch {
	case a == Empty:
		return b
	case b == Empty:
		return a
	case a == b:
		return Empty
	}
	if a > b {
		a, b = b, a
	}
	k := cacheKey{op: opAdd, a: a, b: b}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vb := r.top(a), r.top(b)
	var res NodeID
	switch {
	case va < vb:
		res = r.mk(va, r.thenOf(a), c.add(r.elseOf(a), b))
	case vb < va:
		res = r.mk(vb, r.thenOf(b), c.add(a, r.elseOf(b)))
	default:
		res = r.mk(va, c.add(r.thenOf(a), r.thenOf(b)), c.add(r.elseOf(a), r.elseOf(b)))
	}
	c.table[k] = res
	return res
}

// split decomposes n = x_v*n1 + n0 for a variable v not above the top of n.
func (c *Cache) split(n NodeID, v int32) (n1, n0 NodeID) {
	if c.r.top(n) == v {
		return c.r.thenOf(n), c.r.elseOf(n)
	}
	return Empty, n
}

func (c *Cache) mul(a, b NodeID) NodeID {
	switch {
	case a == Empty || b == Empty:
		return Empty
	case a == Base:
		return b
	case b == Base:
		return a
	case a == b:
		return a
	}
	if a > b {
		a, b = b, a
	}
	k := cacheKey{op: opMul, a: a, b: b}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	v := r.top(a)
	if vb := r.top(b); vb < v {
		v = vb
	}
	a1, a0 := c.split(a, v)
	b1, b0 := c.split(b, v)
	low := c.mul(a0, b0)
	// x*(a1+a0)(b1+b0) + x*a0*b0 + a0*b0
	high := c.add(c.mul(c.add(a1, a0), c.add(b1, b0)), low)
	res := r.mk(v, high, low)
	c.table[k] = res
	return res
}

func (c *Cache) union(a, b NodeID) NodeID {
	switch {
	case a == Empty:
		return b
	case b == Empty || a == b:
		return a
	}
	if a > b {
		a, b = b, a
	}
	k := cacheKey{op: opUnion, a: a, b: b}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vb := r.top(a), r.top(b)
	var res NodeID
	switch {
	case va < vb:
		res = r.mk(va, r.thenOf(a), c.union(r.elseOf(a), b))
	case vb < va:
		res = r.mk(vb, r.thenOf(b), c.union(a, r.elseOf(b)))
	default:
		res = r.mk(va, c.union(r.thenOf(a), r.thenOf(b)), c.union(r.elseOf(a), r.elseOf(b)))
	}
	c.table[k] = res
	return res
}

func (c *Cache) intersect(a, b NodeID) NodeID {
	switch {
	case a == Empty || b == Empty:
		return Empty
	case a == b:
		return a
	}
	if a > b {
		a, b = b, a
	}
	k := cacheKey{op: opIntersect, a: a, b: b}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vb := r.top(a), r.top(b)
	var res NodeID
	switch {
	case va < vb:
		res = c.intersect(r.elseOf(a), b)
	case vb < va:
		res = c.intersect(a, r.elseOf(b))
	default:
		res = r.mk(va, c.intersect(r.thenOf(a), r.thenOf(b)), c.intersect(r.elseOf(a), r.elseOf(b)))
	}
	c.table[k] = res
	return res
}

func (c *Cache) diff(a, b NodeID) NodeID {
	switch {
	case a == Empty || a == b:
		return Empty
	case b == Empty:
		return a
	}
	k := cacheKey{op: opDiff, a: a, b: b}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vb := r.top(a), r.top(b)
	var res NodeID
	switch {
	case va < vb:
		res = r.mk(va, r.thenOf(a), c.diff(r.elseOf(a), b))
	case vb < va:
		res = c.diff(a, r.elseOf(b))
	default:
		res = r.mk(va, c.diff(r.thenOf(a), r.thenOf(b)), c.diff(r.elseOf(a), r.elseOf(b)))
	}
	c.table[k] = res
	return res
}

// div divides the terms of a divisible by the monomial node m.
func (c *Cache) div(a, m NodeID) NodeID {
	if m == Base || a == Empty {
		return a
	}
	if a == Base {
		return Empty
	}
	k := cacheKey{op: opDiv, a: a, b: m}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vm := r.top(a), r.top(m)
	var res NodeID
	switch {
	case va < vm:
		res = r.mk(va, c.div(r.thenOf(a), m), c.div(r.elseOf(a), m))
	case va == vm:
		res = c.div(r.thenOf(a), r.thenOf(m))
	default:
		res = Empty
	}
	c.table[k] = res
	return res
}

func (c *Cache) multiples(a, m NodeID) NodeID {
	if m == Base || a == Empty {
		return a
	}
	if a == Base {
		return Empty
	}
	k := cacheKey{op: opMultiples, a: a, b: m}
	if id, ok := c.lookup(k); ok {
		return id
	}
	r := c.r
	va, vm := r.top(a), r.top(m)
	var res NodeID
	switch {
	case va < vm:
		res = r.mk(va, c.multiples(r.thenOf(a), m), c.multiples(r.elseOf(a), m))
	case va == vm:
		res = r.mk(va, c.multiples(r.thenOf(a), r.thenOf(m)), Empty)
	default:
		res = Empty
	}
	c.table[k] = res
	return res
}

func (c *Cache) divisors(a, m NodeID) NodeID {
	r := c.r
	if r.isTerminal(a) {
		return a
	}
	if m == Base {
		if r.ownsOne(a) {
			return Base
		}
		return Empty
	}
	k := cacheKey{op: opDivisors, a: a, b: m}
	if id, ok := c.lookup(k); ok {
		return id
	}
	va, vm := r.top(a), r.top(m)
	var res NodeID
	switch {
	case va < vm:
		res = c.divisors(r.elseOf(a), m)
	case va == vm:
		res = r.mk(va, c.divisors(r.thenOf(a), r.thenOf(m)), c.divisors(r.elseOf(a), r.thenOf(m)))
	default:
		res = c.divisors(a, r.thenOf(m))
	}
	c.table[k] = res
	return res
}

func (c *Cache) subset0(a NodeID, v int32) NodeID {
	r := c.r
	if r.top(a) > v {
		return a
	}
	if r.top(a) == v {
		return r.elseOf(a)
	}
	k := cacheKey{op: opSubset0, a: a, b: NodeID(v)}
	if id, ok := c.lookup(k); ok {
		return id
	}
	res := r.mk(r.top(a), c.subset0(r.thenOf(a), v), c.subset0(r.elseOf(a), v))
	c.table[k] = res
	return res
}
