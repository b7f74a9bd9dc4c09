package groebner

import "gbf2/zdd"

// IsGroebnerBasis checks Buchberger's criterion in the Boolean ring: every
// S-polynomial and every product x*f with x in lead(f) reduces to zero.
func IsGroebnerBasis(c *zdd.Cache, polys []zdd.Poly) bool {
	gen := NewReductionStrategy(c)
	for _, p := range polys {
		if !p.IsZero() {
			gen.add(NewEntry(c, p))
		}
	}
	for i := 0; i < gen.Len(); i++ {
		fi := gen.entries[i]
		for j := i + 1; j < gen.Len(); j++ {
			if !gen.NormalForm(c.SPoly(fi.P, gen.entries[j].P)).IsZero() {
				return false
			}
		}
		for k := 0; k < fi.Lead.Len(); k++ {
			x := c.Ring().Var(fi.Lead.At(k))
			if !gen.NormalForm(c.Mul(x, fi.P)).IsZero() {
				return false
			}
		}
	}
	return true
}

// ReducesToZero reports whether p reduces to zero against basis.
func ReducesToZero(c *zdd.Cache, basis []zdd.Poly, p zdd.Poly) bool {
	gen := NewReductionStrategy(c)
	for _, b := range basis {
		if !b.IsZero() {
			gen.add(NewEntry(c, b))
		}
	}
	return gen.NormalForm(p).IsZero()
}
