package groebner

import (
	"fmt"
	"math/bits"
	"time"

	"go.uber.org/zap"

	"gbf2/prof"
	"gbf2/zdd"
)

// BatchReducer reduces a batch of S-polynomials at once. It returns the nonzero
// results; their leads must not be divisible by any generator lead.
type BatchReducer interface {
	Reduce(s *Strategy, polys []zdd.Poly) []zdd.Poly
}

// MatrixSink receives the matrices of the linear-algebra step.
type MatrixSink interface {
	WriteMatrix(name string, m *Matrix) error
}

// Matrix is a dense GF(2) matrix; row r holds column c in bit c%64 of word c/64.
// Columns are the monomials of the step in decreasing order.
type Matrix struct {
	Rows, Cols int
	Bits       [][]uint64
	Columns    []zdd.Monomial
}

func newMatrix(rows int, cols []zdd.Monomial) *Matrix {
	m := &Matrix{Rows: rows, Cols: len(cols), Columns: cols, Bits: make([][]uint64, rows)}
	words := (len(cols) + 63) / 64
	for i := range m.Bits {
		m.Bits[i] = make([]uint64, words)
	}
	return m
}

func (m *Matrix) Get(r, c int) bool { return m.Bits[r][c/64]&(1<<(uint(c)%64)) != 0 }
func (m *Matrix) set(r, c int)      { m.Bits[r][c/64] |= 1 << (uint(c) % 64) }

// xorRow adds row src to row dst.
func (m *Matrix) xorRow(dst, src int) {
	d, s := m.Bits[dst], m.Bits[src]
	for i := range d {
		d[i] ^= s[i]
	}
}

// nextBit returns the first set column of row r at or after c, or -1.
func (m *Matrix) nextBit(r, c int) int {
	row := m.Bits[r]
	for w := c / 64; w < len(row); w++ {
		word := row[w]
		if w == c/64 {
			word &= ^uint64(0) << (uint(c) % 64)
		}
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// Density is the fraction of set entries.
func (m *Matrix) Density() float64 {
	if m.Rows == 0 || m.Cols == 0 {
		return 0
	}
	n := 0
	for _, row := range m.Bits {
		for _, w := range row {
			n += bits.OnesCount64(w)
		}
	}
	return float64(n) / float64(m.Rows*m.Cols)
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{Rows: m.Rows, Cols: m.Cols, Columns: m.Columns, Bits: make([][]uint64, m.Rows)}
	for i, row := range m.Bits {
		out.Bits[i] = append([]uint64(nil), row...)
	}
	return out
}

// DenseReducer eliminates a batch with Gauss-Jordan over GF(2) after symbolic
// preprocessing: every term of the batch divisible by a generator lead gets the
// reductor row (t/lead)*g.
type DenseReducer struct{}

func (DenseReducer) Reduce(s *Strategy, polys []zdd.Poly) []zdd.Poly {
	defer prof.Track(time.Now(), "groebner.linalg")
	c, g := s.cache, s.gen
	r := s.ring

	todo := r.Zero()
	for _, p := range polys {
		todo = c.Union(todo, p)
	}
	done := r.Zero()
	var reductors []zdd.Poly
	for !todo.IsZero() {
		m := todo.Lead()
		mp := r.MonomialPoly(m)
		todo = c.Diff(todo, mp)
		done = c.Union(done, mp)
		if i, ok := g.FindReductor(m); ok {
			e := g.entries[i]
			row := c.MulMonomial(e.P, m.Div(e.Lead))
			reductors = append(reductors, row)
			todo = c.Union(todo, c.Diff(row, done))
		}
	}

	cols := done.Terms()
	index := make(map[string]int, len(cols))
	for k, m := range cols {
		index[m.Key()] = k
	}
	rows := append(append([]zdd.Poly(nil), reductors...), polys...)
	mat := newMatrix(len(rows), cols)
	for k, p := range rows {
		for it := p.Begin(); !it.AtEnd(); it.Next() {
			mat.set(k, index[it.Term().Key()])
		}
	}
	s.dumpMatrix("before", mat)

	pivots := make(map[int]int, len(rows))
	for k := range reductors {
		pivots[mat.nextBit(k, 0)] = k
	}
	// reduce every set column that has a pivot; the first survivor is the new pivot
	reduce := func(k, from int) {
		for col := mat.nextBit(k, from); col >= 0; col = mat.nextBit(k, col+1) {
			if p, ok := pivots[col]; ok && p != k {
				mat.xorRow(k, p)
			}
		}
	}
	var fresh []int
	for k := len(reductors); k < len(rows); k++ {
		reduce(k, 0)
		lead := mat.nextBit(k, 0)
		if lead < 0 {
			continue
		}
		pivots[lead] = k
		fresh = append(fresh, k)
	}
	for _, k := range fresh {
		reduce(k, mat.nextBit(k, 0)+1)
	}
	s.dumpMatrix("after", mat)

	out := make([]zdd.Poly, 0, len(fresh))
	for _, k := range fresh {
		var ms []zdd.Monomial
		for col := mat.nextBit(k, 0); col >= 0; col = mat.nextBit(k, col+1) {
			ms = append(ms, cols[col])
		}
		out = append(out, c.FromMonomials(ms...))
	}
	s.log.Debug("dense step",
		zap.Int("rows", mat.Rows),
		zap.Int("cols", mat.Cols),
		zap.Int("reductors", len(reductors)),
		zap.Int("new", len(out)))
	return out
}

func (s *Strategy) dumpMatrix(stage string, m *Matrix) {
	if !s.opts.DrawMatrices || s.opts.MatrixSink == nil {
		return
	}
	name := fmt.Sprintf("%s%d_%s", s.opts.MatrixPrefix, s.matrices, stage)
	if stage == "after" {
		s.matrices++
	}
	if err := s.opts.MatrixSink.WriteMatrix(name, m.Clone()); err != nil {
		s.log.Warn("matrix dump failed", zap.String("name", name), zap.Error(err))
	}
}

// linearAlgebraStep pops a batch of pairs of equal sugar and reduces them together.
func (s *Strategy) linearAlgebraStep() {
	batch := s.pairs.PopBatch(s.opts.LinearAlgebraBatch)
	polys := make([]zdd.Poly, 0, len(batch))
	for _, pair := range batch {
		s.stats.CurrentDegree = pair.Sugar
		p := s.pairs.Materialize(pair, s.gen)
		s.stats.PairsProcessed++
		if p.IsZero() {
			s.stats.ZeroReductions++
			continue
		}
		polys = append(polys, p)
	}
	if len(polys) == 0 {
		return
	}
	s.stats.LinearAlgebraSteps++
	out := s.reducer.Reduce(s, polys)
	s.stats.ZeroReductions += len(polys) - len(out)
	for _, p := range out {
		// earlier results of the batch may already reduce this one
		p = s.gen.LeadReduce(p)
		if p.IsZero() {
			continue
		}
		if s.opts.RedTailInLastBlock {
			p = s.gen.TailReduce(p)
		}
		s.addAsYouWish(p)
	}
}
