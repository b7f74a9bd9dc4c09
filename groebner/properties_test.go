package groebner

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbf2/internal/randsys"
	"gbf2/zdd"
)

type randomCase struct {
	order   zdd.Order
	nvars   int
	params  randsys.Params
	seed    uint64
	ring    *zdd.Ring
	polys   []zdd.Poly
	planted []bool
}

func (rc randomCase) String() string {
	return fmt.Sprintf("%s/n=%d/seed=%d", rc.order, rc.nvars, rc.seed)
}

func randomCases(t *testing.T) []randomCase {
	t.Helper()
	var out []randomCase
	for _, order := range []zdd.Order{zdd.Lex, zdd.DegLex} {
		for seed := uint64(0); seed < 6; seed++ {
			rc := randomCase{
				order:  order,
				nvars:  5 + int(seed%3),
				params: randsys.Params{Gens: 5, MaxTerms: 4, MaxDeg: 2 + int(seed%2), Planted: seed%3 != 0},
				seed:   seed,
			}
			r, err := zdd.NewRingN(order, rc.nvars)
			require.NoError(t, err)
			sys, err := randsys.Generate(r.NewCache(), randsys.Seed(seed), rc.params)
			require.NoError(t, err)
			rc.ring, rc.polys, rc.planted = r, sys.Generators, sys.Solution
			out = append(out, rc)
		}
	}
	return out
}

func run(t *testing.T, r *zdd.Ring, opts Options, polys []zdd.Poly) *Strategy {
	t.Helper()
	s, err := NewStrategy(r, opts, nil)
	require.NoError(t, err)
	for _, p := range polys {
		if p.IsZero() {
			continue
		}
		require.NoError(t, s.AddGeneratorDelayed(p))
	}
	require.Equal(t, Done, s.Run())
	return s
}

func TestRandomSystemsGiveGroebnerBases(t *testing.T) {
	for _, rc := range randomCases(t) {
		s := run(t, rc.ring, DefaultOptions(rc.order), rc.polys)
		c := s.Cache()
		require.True(t, IsGroebnerBasis(c, s.Generators().Generators()), rc.String())

		reduced := s.MinimalizeAndTailReduce()
		assert.True(t, IsGroebnerBasis(c, reduced), rc.String())
		for _, p := range rc.polys {
			assert.True(t, ReducesToZero(c, reduced, p), "%s: input %v not in ideal", rc, p)
		}
		if rc.planted != nil {
			assert.False(t, s.ContainsOne(), rc.String())
			for _, b := range reduced {
				assert.False(t, b.Eval(rc.planted), "%s: %v does not vanish on the planted point", rc, b)
			}
		}
	}
}

func TestMinimalizeGivesAntichain(t *testing.T) {
	for _, rc := range randomCases(t) {
		s := run(t, rc.ring, DefaultOptions(rc.order), rc.polys)
		for _, basis := range [][]zdd.Poly{s.Minimalize(), s.MinimalizeAndTailReduce()} {
			for i := range basis {
				for j := range basis {
					if i == j {
						continue
					}
					assert.False(t, basis[i].Lead().Divides(basis[j].Lead()),
						"%s: lead %v divides %v", rc, basis[i].Lead(), basis[j].Lead())
				}
				if i > 0 {
					assert.Equal(t, -1, rc.order.Compare(basis[i-1].Lead(), basis[i].Lead()), rc.String())
				}
			}
		}
	}
}

func TestLoopAddsOnlyIrreducibleLeads(t *testing.T) {
	for _, rc := range randomCases(t) {
		s := run(t, rc.ring, DefaultOptions(rc.order), rc.polys)
		gen := s.Generators()
		for i := 0; i < gen.Len(); i++ {
			for j := 0; j < i; j++ {
				assert.False(t, gen.Entry(j).Lead.Divides(gen.Entry(i).Lead),
					"%s: generator %d has a lead reducible by generator %d", rc, i, j)
			}
		}
	}
}

func TestReducedBasisIsIdempotent(t *testing.T) {
	for _, rc := range randomCases(t) {
		first := run(t, rc.ring, DefaultOptions(rc.order), rc.polys).MinimalizeAndTailReduce()
		second := run(t, rc.ring, DefaultOptions(rc.order), first).MinimalizeAndTailReduce()
		if diff := cmp.Diff(printed(first), printed(second)); diff != "" {
			t.Fatalf("%s: reduced basis changed (-first +second):\n%s", rc, diff)
		}
		assert.Equal(t, Digest(first), Digest(second))
	}
}

func TestDigestIgnoresInputOrder(t *testing.T) {
	for _, rc := range randomCases(t) {
		want := Digest(run(t, rc.ring, DefaultOptions(rc.order), rc.polys).MinimalizeAndTailReduce())
		reversed := make([]zdd.Poly, len(rc.polys))
		for i, p := range rc.polys {
			reversed[len(rc.polys)-1-i] = p
		}
		assert.Equal(t, want, Digest(run(t, rc.ring, DefaultOptions(rc.order), reversed).MinimalizeAndTailReduce()), rc.String())

		rotated := append(append([]zdd.Poly(nil), rc.polys[2:]...), rc.polys[:2]...)
		assert.Equal(t, want, Digest(run(t, rc.ring, DefaultOptions(rc.order), rotated).MinimalizeAndTailReduce()), rc.String())
	}
}

func TestOptionVariantsAgree(t *testing.T) {
	variants := map[string]func(*Options){
		"eager":          func(o *Options) { o.Lazy = false },
		"lazy":           func(o *Options) { o.Lazy = true },
		"red-tail":       func(o *Options) { o.RedTailInLastBlock = true },
		"no-delay":       func(o *Options) { o.DelayNonMinimals = false },
		"no-exchange":    func(o *Options) { o.Exchange = false },
		"no-recursion":   func(o *Options) { o.AllowRecursion = false },
		"linear-algebra": func(o *Options) { o.LinearAlgebra = true },
		"small-batches":  func(o *Options) { o.LinearAlgebra, o.LinearAlgebraBatch = true, 2 },
	}
	for _, rc := range randomCases(t) {
		want := run(t, rc.ring, DefaultOptions(rc.order), rc.polys).MinimalizeAndTailReduce()
		for name, tweak := range variants {
			opts := DefaultOptions(rc.order)
			tweak(&opts)
			got := run(t, rc.ring, opts, rc.polys).MinimalizeAndTailReduce()
			if diff := cmp.Diff(printed(want), printed(got)); diff != "" {
				t.Errorf("%s %s: reduced basis differs (-default +variant):\n%s", rc, name, diff)
			}
		}
	}
}

func TestLinearAlgebraCountsSteps(t *testing.T) {
	rc := randomCases(t)[7]
	opts := DefaultOptions(rc.order)
	opts.LinearAlgebra = true
	s := run(t, rc.ring, opts, rc.polys)
	st := s.Stats()
	assert.Greater(t, st.LinearAlgebraSteps, 0)
	assert.GreaterOrEqual(t, st.PairsProcessed, st.LinearAlgebraSteps)
}

func TestStepBoundIsResumable(t *testing.T) {
	for _, rc := range randomCases(t) {
		if rc.order != zdd.DegLex {
			continue
		}
		want := Digest(run(t, rc.ring, DefaultOptions(rc.order), rc.polys).MinimalizeAndTailReduce())

		opts := DefaultOptions(rc.order)
		opts.StepBounded, opts.DegreeBound = true, 1
		s, err := NewStrategy(rc.ring, opts, nil)
		require.NoError(t, err)
		for _, p := range rc.polys {
			require.NoError(t, s.AddGeneratorDelayed(p))
		}
		maxDeg := 0
		for _, p := range rc.polys {
			if p.Deg() > maxDeg {
				maxDeg = p.Deg()
			}
		}
		// an inconsistent linear part could end the run before the bound
		if maxDeg > 1 && rc.planted != nil {
			assert.Equal(t, Bounded, s.Run(), rc.String())
			assert.Greater(t, s.Pending(), 0)
		}
		assert.Equal(t, Done, s.RunTo(-1), rc.String())
		assert.Equal(t, want, Digest(s.MinimalizeAndTailReduce()), rc.String())
	}
}

func TestTailReduceKeepsLeadAndNormalForm(t *testing.T) {
	for _, rc := range randomCases(t) {
		s := run(t, rc.ring, DefaultOptions(rc.order), rc.polys)
		c := s.Cache()
		src, err := randsys.NewSource(randsys.Seed(rc.seed + 1000))
		require.NoError(t, err)
		for k := 0; k < 10; k++ {
			p := src.Poly(c, 6, 3)
			tr, err := s.TailReduce(p)
			require.NoError(t, err)
			require.False(t, tr.IsZero())
			assert.True(t, tr.Lead().Equal(p.Lead()), rc.String())

			nf1, err := s.NormalForm(p)
			require.NoError(t, err)
			nf2, err := s.NormalForm(tr)
			require.NoError(t, err)
			assert.True(t, nf1.Equal(nf2), "%s: NF(%v) != NF(tailReduce)", rc, p)

			// no term of the tail is reducible
			tail := c.Add(tr, rc.ring.MonomialPoly(tr.Lead()))
			for it := tail.Begin(); !it.AtEnd(); it.Next() {
				assert.False(t, s.Generators().HasDivisor(it.Term()), rc.String())
			}
			for it := nf1.Begin(); !it.AtEnd(); it.Next() {
				assert.False(t, s.Generators().HasDivisor(it.Term()), rc.String())
			}
		}
	}
}

func TestIsGroebnerBasisRejects(t *testing.T) {
	r, err := zdd.NewRingN(zdd.Lex, 3)
	require.NoError(t, err)
	c := r.NewCache()
	g := c.Add(c.Mul(r.Var(0), r.Var(1)), r.One())
	assert.False(t, IsGroebnerBasis(c, []zdd.Poly{g}))

	s := run(t, r, DefaultOptions(zdd.Lex), []zdd.Poly{g})
	assert.Equal(t, []string{"x1 + 1", "x0 + 1"}, printed(s.MinimalizeAndTailReduce()))
	assert.True(t, IsGroebnerBasis(c, []zdd.Poly{r.One()}))
	assert.True(t, IsGroebnerBasis(c, nil))
}
