package groebner

import (
	"go.uber.org/zap"

	"gbf2/zdd"
)

// Value propagation and linear-lead substitution rewrite the tails of generators.
// The substituted terms are smaller than the terms they replace, so leads, and with
// them the lead index and the pair bookkeeping, stay valid.

// propagate substitutes the value implied by the assignment generator start (x or
// x + 1) into every other generator. With AllowRecursion, generators turned into
// assignments propagate in turn.
func (s *Strategy) propagate(start int) {
	work := []int{start}
	for len(work) > 0 {
		k := work[0]
		work = work[1:]
		v, val, ok := s.gen.entries[k].Assignment()
		if !ok {
			continue
		}
		if _, known := s.gen.values[v]; known {
			continue
		}
		s.gen.values[v] = val
		value := s.ring.Zero()
		if val {
			value = s.ring.One()
		}
		s.log.Debug("propagating value", zap.String("var", s.ring.Name(v)), zap.Bool("value", val))
		for j := range s.gen.entries {
			if j == k {
				continue
			}
			updated, changed := s.substituteTail(j, v, value)
			if !changed || !s.opts.AllowRecursion {
				continue
			}
			if _, _, ok := updated.Assignment(); ok {
				work = append(work, j)
			}
		}
	}
}

// llSubstitute rewrites x := g in the tails of all other generators, where the
// generator i is x + g. Under lex every term of g is free of variables up to x.
func (s *Strategy) llSubstitute(i int) {
	e := s.gen.entries[i]
	v := e.Lead.At(0)
	tail := e.Tail(s.cache)
	for j := range s.gen.entries {
		if j == i {
			continue
		}
		updated, changed := s.substituteTail(j, v, tail)
		if !changed || !s.opts.AllowRecursion {
			continue
		}
		if _, _, ok := updated.Assignment(); ok {
			s.propagate(j)
		}
	}
}

// LLReduceAll applies the linear-lead substitution of every generator x + g.
// It has no effect under degree orders.
func (s *Strategy) LLReduceAll() {
	if s.ring.Order() != zdd.Lex {
		return
	}
	for i := range s.gen.entries {
		if e := s.gen.entries[i]; e.LeadDeg == 1 {
			if _, _, ok := e.Assignment(); !ok {
				s.llSubstitute(i)
			}
		}
	}
}

func (s *Strategy) substituteTail(j, v int, q zdd.Poly) (Entry, bool) {
	e := s.gen.entries[j]
	if !e.UsedVariables.Contains(v) {
		return e, false
	}
	lead := s.ring.MonomialPoly(e.Lead)
	tail := s.cache.Add(e.P, lead)
	nt := s.cache.Substitute(tail, v, q)
	if nt.Equal(tail) {
		return e, false
	}
	return s.gen.replace(j, s.cache.Add(lead, nt)), true
}

// applyValues substitutes the known variable values into the tail of p.
func (s *Strategy) applyValues(p zdd.Poly) zdd.Poly {
	if len(s.gen.values) == 0 || p.IsZero() {
		return p
	}
	lead := s.ring.MonomialPoly(p.Lead())
	tail := s.cache.Add(p, lead)
	for v := 0; v < s.ring.NVars(); v++ {
		val, ok := s.gen.values[v]
		if !ok {
			continue
		}
		q := s.ring.Zero()
		if val {
			q = s.ring.One()
		}
		tail = s.cache.Substitute(tail, v, q)
	}
	return s.cache.Add(lead, tail)
}
