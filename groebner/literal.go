package groebner

import "gbf2/zdd"

// LiteralFactors lists the degree-one factors of a polynomial: Zeros holds the
// variables x with x | p, Ones the variables x with (x + 1) | p.
type LiteralFactors struct {
	Zeros zdd.Monomial
	Ones  zdd.Monomial
}

// literalFactors splits p = x*A + B for every used variable x: B == 0 means x is a
// factor, A == B means x + 1 is.
func literalFactors(c *zdd.Cache, p zdd.Poly) LiteralFactors {
	var zeros, ones []int
	if p.IsZero() {
		return LiteralFactors{}
	}
	used := p.UsedVariables()
	for i := 0; i < used.Len(); i++ {
		v := used.At(i)
		a, b := c.Subset1(p, v), c.Subset0(p, v)
		switch {
		case b.IsZero():
			zeros = append(zeros, v)
		case a.Equal(b):
			ones = append(ones, v)
		}
	}
	return LiteralFactors{Zeros: zdd.NewMonomial(zeros...), Ones: zdd.NewMonomial(ones...)}
}

// Occurs reports whether x_v or x_v + 1 divides the polynomial.
func (l LiteralFactors) Occurs(v int) bool {
	return l.Zeros.Contains(v) || l.Ones.Contains(v)
}

// SharedOn reports whether, for every variable of m, both factorizations carry the
// same literal (x in both, or x + 1 in both).
func (l LiteralFactors) SharedOn(o LiteralFactors, m zdd.Monomial) bool {
	for i := 0; i < m.Len(); i++ {
		v := m.At(i)
		if !(l.Zeros.Contains(v) && o.Zeros.Contains(v)) && !(l.Ones.Contains(v) && o.Ones.Contains(v)) {
			return false
		}
	}
	return true
}
