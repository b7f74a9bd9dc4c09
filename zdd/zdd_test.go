package zdd

import (
	"errors"
	"math/rand"
	"testing"
)

func mustRing(t testing.TB, order Order, n int) *Ring {
	t.Helper()
	r, err := NewRingN(order, n)
	if err != nil {
		t.Fatalf("NewRingN: %v", err)
	}
	return r
}

func randomMonomial(rng *rand.Rand, n, maxDeg int) Monomial {
	d := rng.Intn(maxDeg + 1)
	vars := make([]int, d)
	for i := range vars {
		vars[i] = rng.Intn(n)
	}
	return NewMonomial(vars...)
}

func randomPoly(c *Cache, rng *rand.Rand, terms, maxDeg int) Poly {
	ms := make([]Monomial, terms)
	for i := range ms {
		ms[i] = randomMonomial(rng, c.Ring().NVars(), maxDeg)
	}
	return c.FromMonomials(ms...)
}

// points enumerates every assignment of n variables.
func points(n int) [][]bool {
	out := make([][]bool, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		pt := make([]bool, n)
		for i := range pt {
			pt[i] = mask>>i&1 == 1
		}
		out = append(out, pt)
	}
	return out
}

func TestNewRingRejectsBadNames(t *testing.T) {
	if _, err := NewRing(Lex); err == nil {
		t.Fatalf("expected error for empty ring")
	}
	if _, err := NewRing(Lex, "a", "b", "a"); err == nil {
		t.Fatalf("expected error for duplicate variable")
	}
	if _, err := NewRing(Lex, "a", " "); err == nil {
		t.Fatalf("expected error for blank variable")
	}
	r, err := NewRing(DegLex, "a", "b")
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	if i, err := r.VarIndex("b"); err != nil || i != 1 {
		t.Fatalf("VarIndex(b) = %d, %v", i, err)
	}
	if _, err := r.VarIndex("z"); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("VarIndex(z) err = %v, want ErrUnknownVariable", err)
	}
}

func TestCanonicalSharing(t *testing.T) {
	r := mustRing(t, Lex, 4)
	c := r.NewCache()
	x0, x1, x2 := r.Var(0), r.Var(1), r.Var(2)
	a := c.Add(c.Mul(x0, x1), x2)
	b := c.Add(x2, c.Mul(x1, x0))
	if a.ID() != b.ID() {
		t.Fatalf("equal polynomials got different nodes: %d vs %d", a.ID(), b.ID())
	}
	if !c.Add(a, b).IsZero() {
		t.Fatalf("p + p must be zero")
	}
	if got := c.Mul(a, a); !got.Equal(a) {
		t.Fatalf("p*p = %v, want %v", got, a)
	}
	if got := c.Mul(x0, x0); !got.Equal(x0) {
		t.Fatalf("x0*x0 = %v, want x0", got)
	}
	before := r.NodeCount()
	_ = c.Add(c.Mul(x0, x1), x2)
	if r.NodeCount() != before {
		t.Fatalf("rebuilding an existing polynomial created nodes")
	}
}

func TestOperationsAgreeWithEvaluation(t *testing.T) {
	const n = 5
	rng := rand.New(rand.NewSource(7))
	r := mustRing(t, Lex, n)
	c := r.NewCache()
	pts := points(n)
	for trial := 0; trial < 40; trial++ {
		p := randomPoly(c, rng, 1+rng.Intn(8), 3)
		q := randomPoly(c, rng, 1+rng.Intn(8), 3)
		v := rng.Intn(n)
		sum, prod := c.Add(p, q), c.Mul(p, q)
		sub := c.Substitute(p, v, q)
		for _, pt := range pts {
			pv, qv := p.Eval(pt), q.Eval(pt)
			if sum.Eval(pt) != (pv != qv) {
				t.Fatalf("Add disagrees at %v", pt)
			}
			if prod.Eval(pt) != (pv && qv) {
				t.Fatalf("Mul disagrees at %v", pt)
			}
			shifted := append([]bool(nil), pt...)
			shifted[v] = qv
			if sub.Eval(pt) != p.Eval(shifted) {
				t.Fatalf("Substitute disagrees at %v", pt)
			}
		}
	}
}

func TestSetOperationsOnTerms(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	r := mustRing(t, Lex, 6)
	c := r.NewCache()
	for trial := 0; trial < 30; trial++ {
		p := randomPoly(c, rng, 1+rng.Intn(10), 4)
		q := randomPoly(c, rng, 1+rng.Intn(10), 4)
		m := randomMonomial(rng, 6, 2)

		var union, inter, diff, mult, divs, quot []Monomial
		inQ := map[string]bool{}
		for _, t := range q.Terms() {
			inQ[t.Key()] = true
		}
		for _, t := range p.Terms() {
			if inQ[t.Key()] {
				inter = append(inter, t)
			} else {
				diff = append(diff, t)
			}
			if m.Divides(t) {
				mult = append(mult, t)
				quot = append(quot, t.Div(m))
			}
			if t.Divides(m) {
				divs = append(divs, t)
			}
		}
		union = append(union, diff...)
		union = append(union, q.Terms()...)

		check := func(name string, got Poly, want []Monomial) {
			t.Helper()
			if w := c.FromMonomials(want...); !got.Equal(w) {
				t.Fatalf("%s: got %v want %v (p=%v q=%v m=%v)", name, got, w, p, q, m)
			}
		}
		check("Union", c.Union(p, q), union)
		check("Intersect", c.Intersect(p, q), inter)
		check("Diff", c.Diff(p, q), diff)
		check("MultiplesOf", c.MultiplesOf(p, m), mult)
		check("DivisorsOf", c.DivisorsOf(p, m), divs)
		check("DivMonomial", c.DivMonomial(p, m), quot)
	}
}

func TestSubsets(t *testing.T) {
	r := mustRing(t, Lex, 3)
	c := r.NewCache()
	p := c.FromMonomials(NewMonomial(0, 1), NewMonomial(1, 2), NewMonomial(0), NewMonomial())
	if got, want := c.Subset1(p, 0), c.FromMonomials(NewMonomial(1), NewMonomial()); !got.Equal(want) {
		t.Fatalf("Subset1 = %v, want %v", got, want)
	}
	if got, want := c.Subset0(p, 0), c.FromMonomials(NewMonomial(1, 2), NewMonomial()); !got.Equal(want) {
		t.Fatalf("Subset0 = %v, want %v", got, want)
	}
}

func TestLeadMatchesLargestTerm(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, order := range []Order{Lex, DegLex} {
		r := mustRing(t, order, 6)
		c := r.NewCache()
		for trial := 0; trial < 50; trial++ {
			p := randomPoly(c, rng, 1+rng.Intn(10), 4)
			if p.IsZero() {
				continue
			}
			terms := p.Terms()
			for i := 1; i < len(terms); i++ {
				if order.Compare(terms[i-1], terms[i]) <= 0 {
					t.Fatalf("%v: terms not decreasing: %v", order, terms)
				}
			}
			if lead := p.Lead(); !lead.Equal(terms[0]) {
				t.Fatalf("%v: Lead(%v) = %v, want %v", order, p, lead, terms[0])
			}
			if p.LeadDeg() != terms[0].Deg() {
				t.Fatalf("%v: LeadDeg = %d, want %d", order, p.LeadDeg(), terms[0].Deg())
			}
			if p.Length() != len(terms) {
				t.Fatalf("Length = %d, want %d", p.Length(), len(terms))
			}
			for _, m := range terms {
				if !p.Contains(m) {
					t.Fatalf("Contains(%v) = false for a term of %v", m, p)
				}
			}
		}
	}
}

func TestOrderCompare(t *testing.T) {
	x0, x1, x1x2, one := NewMonomial(0), NewMonomial(1), NewMonomial(1, 2), NewMonomial()
	if Lex.Compare(x0, x1x2) <= 0 {
		t.Fatalf("lex: x0 must exceed x1*x2")
	}
	if DegLex.Compare(x0, x1x2) >= 0 {
		t.Fatalf("deglex: x1*x2 must exceed x0")
	}
	if Lex.Compare(x1x2, x1) <= 0 || Lex.Compare(one, x1) >= 0 {
		t.Fatalf("lex: superset must exceed subset")
	}
	if o, err := ParseOrder("deglex"); err != nil || o != DegLex {
		t.Fatalf("ParseOrder(deglex) = %v, %v", o, err)
	}
	if _, err := ParseOrder("grevlex"); err == nil {
		t.Fatalf("expected error for unsupported order")
	}
}

func TestMonomialArithmetic(t *testing.T) {
	a := NewMonomial(3, 1, 1, 5)
	b := NewMonomial(5, 2)
	if a.Deg() != 3 || a.Key() != "1.3.5" {
		t.Fatalf("NewMonomial did not sort and dedup: %v", a.Vars())
	}
	if got := a.LCM(b); !got.Equal(NewMonomial(1, 2, 3, 5)) {
		t.Fatalf("LCM = %v", got)
	}
	if got := a.GCD(b); !got.Equal(NewMonomial(5)) {
		t.Fatalf("GCD = %v", got)
	}
	if a.Coprime(b) || !a.Coprime(NewMonomial(0, 2)) {
		t.Fatalf("Coprime wrong")
	}
	if !NewMonomial(1, 5).Divides(a) || b.Divides(a) {
		t.Fatalf("Divides wrong")
	}
	if got := a.Div(NewMonomial(3)); !got.Equal(NewMonomial(1, 5)) {
		t.Fatalf("Div = %v", got)
	}
}

func TestSPolyCancelsLCM(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, order := range []Order{Lex, DegLex} {
		r := mustRing(t, order, 6)
		c := r.NewCache()
		for trial := 0; trial < 40; trial++ {
			f := randomPoly(c, rng, 1+rng.Intn(6), 3)
			g := randomPoly(c, rng, 1+rng.Intn(6), 3)
			if f.IsZero() || g.IsZero() {
				continue
			}
			l := f.Lead().LCM(g.Lead())
			if s := c.SPoly(f, g); s.Contains(l) {
				t.Fatalf("%v: spoly(%v, %v) = %v still contains %v", order, f, g, s, l)
			}
		}
	}
}

func TestNavigator(t *testing.T) {
	r := mustRing(t, Lex, 3)
	c := r.NewCache()
	p := c.FromMonomials(NewMonomial(0, 2), NewMonomial(1))
	nav := p.Navigation()
	if nav.IsConstant() || nav.Index() != 0 {
		t.Fatalf("root index = %d", nav.Index())
	}
	th := nav.Then()
	if th.Index() != 2 || !th.Then().IsTerminatedOne() {
		t.Fatalf("then branch does not lead to x2 -> 1")
	}
	nav.IncrementElse()
	if nav.Index() != 1 {
		t.Fatalf("else index = %d, want 1", nav.Index())
	}
	nav.IncrementElse()
	if !nav.IsConstant() || !nav.IsEmpty() || nav.Index() <= r.NVars() {
		t.Fatalf("expected empty terminal after x1 else-branch")
	}
}

func TestTermIteratorCopiesAreIndependent(t *testing.T) {
	r := mustRing(t, Lex, 4)
	c := r.NewCache()
	p := c.FromMonomials(NewMonomial(0, 1), NewMonomial(0, 2), NewMonomial(3), NewMonomial())
	first := p.Begin()
	second := first
	second.Next()
	second.Next()
	if !first.Term().Equal(NewMonomial(0, 1)) {
		t.Fatalf("advancing a copy moved the original to %v", first.Term())
	}
	var seen []Monomial
	for it := p.Begin(); !it.AtEnd(); it.Next() {
		seen = append(seen, it.Term())
	}
	want := []Monomial{NewMonomial(0, 1), NewMonomial(0, 2), NewMonomial(3), NewMonomial()}
	if len(seen) != len(want) {
		t.Fatalf("iterated %v, want %v", seen, want)
	}
	for i := range want {
		if !seen[i].Equal(want[i]) {
			t.Fatalf("term %d = %v, want %v", i, seen[i], want[i])
		}
	}
	if !p.End().Equal(func() TermIterator {
		it := p.Begin()
		for !it.AtEnd() {
			it.Next()
		}
		return it
	}()) {
		t.Fatalf("exhausted iterator differs from End")
	}
}

func TestEvalAndUsedVariables(t *testing.T) {
	r := mustRing(t, Lex, 4)
	c := r.NewCache()
	p := c.FromMonomials(NewMonomial(0, 3), NewMonomial())
	if p.Eval([]bool{true, false, false, true}) {
		t.Fatalf("x0*x3 + 1 at (1,0,0,1) must be 0")
	}
	if !p.Eval([]bool{true, true, true, false}) {
		t.Fatalf("x0*x3 + 1 at (1,1,1,0) must be 1")
	}
	if got := p.UsedVariables(); !got.Equal(NewMonomial(0, 3)) {
		t.Fatalf("UsedVariables = %v", got)
	}
	if got := p.String(); got != "x0*x3 + 1" {
		t.Fatalf("String = %q", got)
	}
}

func TestCacheMixingRingsPanics(t *testing.T) {
	r1 := mustRing(t, Lex, 2)
	r2 := mustRing(t, Lex, 2)
	c := r1.NewCache()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when mixing rings")
		}
	}()
	c.Add(r1.Var(0), r2.Var(0))
}
