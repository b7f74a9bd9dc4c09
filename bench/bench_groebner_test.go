package bench

import (
	"testing"

	"gbf2/groebner"
	"gbf2/internal/randsys"
	"gbf2/zdd"
)

func benchmarkSystem(b *testing.B, order zdd.Order, nvars int, seed uint64) (*zdd.Ring, []zdd.Poly) {
	r, err := zdd.NewRingN(order, nvars)
	if err != nil {
		b.Fatal(err)
	}
	sys, err := randsys.Generate(r.NewCache(), randsys.Seed(seed),
		randsys.Params{Gens: nvars + 2, MaxTerms: 5, MaxDeg: 2, Planted: true})
	if err != nil {
		b.Fatal(err)
	}
	return r, sys.Generators
}

func solve(b *testing.B, r *zdd.Ring, polys []zdd.Poly, opts groebner.Options) []zdd.Poly {
	s, err := groebner.NewStrategy(r, opts, nil)
	if err != nil {
		b.Fatal(err)
	}
	for _, p := range polys {
		if err := s.AddGeneratorDelayed(p); err != nil {
			b.Fatal(err)
		}
	}
	s.Run()
	return s.MinimalizeAndTailReduce()
}

func BenchmarkSymmGBLex(b *testing.B) {
	r, polys := benchmarkSystem(b, zdd.Lex, 12, 1)
	opts := groebner.DefaultOptions(zdd.Lex)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solve(b, r, polys, opts)
	}
}

func BenchmarkSymmGBDegLex(b *testing.B) {
	r, polys := benchmarkSystem(b, zdd.DegLex, 12, 1)
	opts := groebner.DefaultOptions(zdd.DegLex)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solve(b, r, polys, opts)
	}
}

func BenchmarkSymmGBLinearAlgebra(b *testing.B) {
	r, polys := benchmarkSystem(b, zdd.DegLex, 12, 1)
	opts := groebner.DefaultOptions(zdd.DegLex)
	opts.LinearAlgebra = true
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solve(b, r, polys, opts)
	}
}

func BenchmarkNormalForm(b *testing.B) {
	r, polys := benchmarkSystem(b, zdd.Lex, 14, 2)
	basis := solve(b, r, polys, groebner.DefaultOptions(zdd.Lex))
	s, err := groebner.NewStrategy(r, groebner.DefaultOptions(zdd.Lex), nil)
	if err != nil {
		b.Fatal(err)
	}
	for _, p := range basis {
		if _, err := s.AddGenerator(p, true); err != nil {
			b.Fatal(err)
		}
	}
	c := s.Cache()
	src, err := randsys.NewSource(randsys.Seed(9))
	if err != nil {
		b.Fatal(err)
	}
	targets := make([]zdd.Poly, 64)
	for i := range targets {
		targets[i] = src.Poly(c, 12, 4)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.NormalForm(targets[i%len(targets)]); err != nil {
			b.Fatal(err)
		}
	}
}
