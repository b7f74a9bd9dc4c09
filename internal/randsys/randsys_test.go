package randsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbf2/zdd"
)

func TestGenerateIsReproducible(t *testing.T) {
	r, err := zdd.NewRingN(zdd.Lex, 8)
	require.NoError(t, err)
	c := r.NewCache()
	p := Params{Gens: 5, MaxTerms: 5, MaxDeg: 3}

	a, err := Generate(c, Seed(7), p)
	require.NoError(t, err)
	b, err := Generate(c, Seed(7), p)
	require.NoError(t, err)
	require.Len(t, a.Generators, 5)
	for i := range a.Generators {
		assert.True(t, a.Generators[i].Equal(b.Generators[i]), "generator %d differs", i)
		assert.False(t, a.Generators[i].IsZero())
		assert.LessOrEqual(t, a.Generators[i].Deg(), 3)
	}
	assert.Nil(t, a.Solution)

	other, err := Generate(c, Seed(8), p)
	require.NoError(t, err)
	same := true
	for i := range a.Generators {
		same = same && a.Generators[i].Equal(other.Generators[i])
	}
	assert.False(t, same, "different seeds gave the same system")
}

func TestPlantedSolutionVanishes(t *testing.T) {
	r, err := zdd.NewRingN(zdd.DegLex, 10)
	require.NoError(t, err)
	c := r.NewCache()
	sys, err := Generate(c, Seed(42), Params{Gens: 12, MaxTerms: 6, MaxDeg: 2, Planted: true})
	require.NoError(t, err)
	require.Len(t, sys.Solution, 10)
	for i, f := range sys.Generators {
		assert.False(t, f.Eval(sys.Solution), "generator %d does not vanish: %v", i, f)
	}
}

func TestParamsValidation(t *testing.T) {
	r, err := zdd.NewRingN(zdd.Lex, 3)
	require.NoError(t, err)
	c := r.NewCache()
	for _, p := range []Params{
		{Gens: 0, MaxTerms: 1, MaxDeg: 1},
		{Gens: 1, MaxTerms: 0, MaxDeg: 1},
		{Gens: 1, MaxTerms: 1, MaxDeg: 4},
		{Gens: 1, MaxTerms: 1, MaxDeg: 0, Planted: true},
	} {
		_, err := Generate(c, Seed(1), p)
		assert.Error(t, err, "%+v", p)
	}
}

func TestSourceRanges(t *testing.T) {
	src, err := NewSource(Seed(3))
	require.NoError(t, err)
	for k := 0; k < 200; k++ {
		n := src.Intn(5)
		require.True(t, n >= 0 && n < 5)
		m := src.Monomial(6, 2)
		require.LessOrEqual(t, m.Deg(), 2)
	}
	assert.Equal(t, 0, src.Intn(0))
}
