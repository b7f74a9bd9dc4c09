package randsys

// Package randsys draws reproducible random Boolean polynomial systems from a keyed
// PRNG. The same seed and parameters always give the same system.

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"

	"gbf2/zdd"
)

// Params shapes a random system.
type Params struct {
	Gens     int  // number of generators
	MaxTerms int  // terms per generator, at least one
	MaxDeg   int  // degree bound of each term
	Planted  bool // make every generator vanish on a hidden point
}

// DefaultParams returns a small quadratic system shape.
func DefaultParams() Params {
	return Params{Gens: 6, MaxTerms: 4, MaxDeg: 2}
}

func (p Params) validate(nvars int) error {
	if p.Gens < 1 || p.MaxTerms < 1 {
		return fmt.Errorf("randsys: need at least one generator and one term, got %d/%d", p.Gens, p.MaxTerms)
	}
	if p.MaxDeg < 0 || p.MaxDeg > nvars {
		return fmt.Errorf("randsys: degree bound %d outside [0, %d]", p.MaxDeg, nvars)
	}
	if p.Planted && p.MaxDeg == 0 {
		return fmt.Errorf("randsys: planted systems need nonconstant terms")
	}
	return nil
}

// Source draws integers, monomials and polynomials from a KeyedPRNG.
type Source struct {
	prng *utils.KeyedPRNG
	buf  [8]byte
}

// NewSource keys a source with seed.
func NewSource(seed []byte) (*Source, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("randsys: prng: %w", err)
	}
	return &Source{prng: prng}, nil
}

func (s *Source) uint64() uint64 {
	s.prng.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Intn returns a value in [0, n). The modulo bias is irrelevant for test systems.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.uint64() % uint64(n))
}

// Bool returns a fair bit.
func (s *Source) Bool() bool { return s.uint64()&1 == 1 }

// Monomial returns a random term of degree at most maxDeg in nvars variables.
func (s *Source) Monomial(nvars, maxDeg int) zdd.Monomial {
	d := s.Intn(maxDeg + 1)
	vars := make([]int, 0, d)
	for k := 0; k < d; k++ {
		vars = append(vars, s.Intn(nvars))
	}
	return zdd.NewMonomial(vars...)
}

// Poly returns a nonzero polynomial with at most maxTerms terms.
func (s *Source) Poly(c *zdd.Cache, maxTerms, maxDeg int) zdd.Poly {
	r := c.Ring()
	for {
		n := 1 + s.Intn(maxTerms)
		ms := make([]zdd.Monomial, n)
		for k := range ms {
			ms[k] = s.Monomial(r.NVars(), maxDeg)
		}
		if p := c.FromMonomials(ms...); !p.IsZero() {
			return p
		}
	}
}

// Point returns a random assignment of the ring's variables.
func (s *Source) Point(nvars int) []bool {
	pt := make([]bool, nvars)
	for i := range pt {
		pt[i] = s.Bool()
	}
	return pt
}

// System is a generated system and, when planted, a point on which every generator
// vanishes.
type System struct {
	Generators []zdd.Poly
	Solution   []bool
}

// Generate draws a system over the cache's ring.
func Generate(c *zdd.Cache, seed []byte, p Params) (*System, error) {
	nvars := c.Ring().NVars()
	if err := p.validate(nvars); err != nil {
		return nil, err
	}
	src, err := NewSource(seed)
	if err != nil {
		return nil, err
	}
	out := &System{Generators: make([]zdd.Poly, 0, p.Gens)}
	if p.Planted {
		out.Solution = src.Point(nvars)
	}
	one := c.Ring().One()
	for len(out.Generators) < p.Gens {
		f := src.Poly(c, p.MaxTerms, p.MaxDeg)
		if p.Planted && f.Eval(out.Solution) {
			f = c.Add(f, one)
		}
		if f.IsZero() {
			continue
		}
		out.Generators = append(out.Generators, f)
	}
	return out, nil
}

// Seed derives a 32-byte key from an integer seed.
func Seed(n uint64) []byte {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, n)
	copy(key[8:], "gbf2/randsys")
	return key
}
