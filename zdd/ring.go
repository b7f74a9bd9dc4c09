package zdd

// Package zdd implements Boolean polynomials over GF(2) as zero-suppressed decision
// diagrams. A Ring owns an arena of immutable nodes; identical sub-diagrams share one
// NodeID, so two polynomials are equal iff their root ids are equal.

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// NodeID addresses a node in a Ring's arena.
type NodeID uint32

const (
	// Empty is the empty term set, i.e. the zero polynomial.
	Empty NodeID = 0
	// Base is the set holding only the empty monomial, i.e. the constant one.
	Base NodeID = 1
)

// terminalIndex is the variable index reported by terminals; it compares greater than
// every variable so that "navigate while index < v" loops stop at the leaves.
const terminalIndex = math.MaxInt32

var (
	ErrRingMismatch    = errors.New("zdd: polynomial belongs to a different ring")
	ErrUnknownVariable = errors.New("zdd: unknown variable")
	ErrNotATerm        = errors.New("zdd: not a term of the polynomial")
	ErrUnsorted        = errors.New("zdd: term range is not sorted")
)

type node struct {
	v    int32
	then NodeID
	els  NodeID
}

// Ring is the variable set, monomial order and node arena shared by its polynomials.
// A Ring is not safe for concurrent use.
type Ring struct {
	names  []string
	index  map[string]int
	order  Order
	nodes  []node
	deg    []int32
	count  []uint64
	unique map[node]NodeID
}

// NewRing builds a ring over the named variables; the first name is the largest
// variable of the order.
func NewRing(order Order, names ...string) (*Ring, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("zdd: ring needs at least one variable")
	}
	if len(names) >= terminalIndex {
		return nil, fmt.Errorf("zdd: too many variables (%d)", len(names))
	}
	r := &Ring{
		names:  make([]string, len(names)),
		index:  make(map[string]int, len(names)),
		order:  order,
		nodes:  []node{{v: terminalIndex}, {v: terminalIndex}},
		deg:    []int32{-1, 0},
		count:  []uint64{0, 1},
		unique: make(map[node]NodeID),
	}
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("zdd: variable %d has an empty name", i)
		}
		if _, dup := r.index[n]; dup {
			return nil, fmt.Errorf("zdd: duplicate variable %q", n)
		}
		r.names[i] = n
		r.index[n] = i
	}
	return r, nil
}

// NewRingN builds a ring with variables x0 .. x{n-1}.
func NewRingN(order Order, n int) (*Ring, error) {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return NewRing(order, names...)
}

func (r *Ring) NVars() int     { return len(r.names) }
func (r *Ring) Order() Order   { return r.order }
func (r *Ring) NodeCount() int { return len(r.nodes) }

// Name returns the name of variable i.
func (r *Ring) Name(i int) string {
	if i < 0 || i >= len(r.names) {
		return fmt.Sprintf("?%d", i)
	}
	return r.names[i]
}

// Names returns a copy of the variable names in index order.
func (r *Ring) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// VarIndex resolves a variable name.
func (r *Ring) VarIndex(name string) (int, error) {
	i, ok := r.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return i, nil
}

func (r *Ring) Zero() Poly { return Poly{r: r, id: Empty} }
func (r *Ring) One() Poly  { return Poly{r: r, id: Base} }

// Var returns the polynomial x_i.
func (r *Ring) Var(i int) Poly {
	r.checkVar(i)
	return Poly{r: r, id: r.mk(int32(i), Base, Empty)}
}

// MonomialPoly returns m as a one-term polynomial.
func (r *Ring) MonomialPoly(m Monomial) Poly {
	return Poly{r: r, id: r.monomialNode(m)}
}

func (r *Ring) monomialNode(m Monomial) NodeID {
	id := Base
	for i := len(m.vars) - 1; i >= 0; i-- {
		r.checkVar(m.vars[i])
		id = r.mk(int32(m.vars[i]), id, Empty)
	}
	return id
}

func (r *Ring) checkVar(i int) {
	if i < 0 || i >= len(r.names) {
		panic(fmt.Sprintf("zdd: variable index %d out of range [0,%d)", i, len(r.names)))
	}
}

// mk returns the canonical node (v, then, els). A node whose then-branch is empty is
// suppressed and its else-branch returned instead.
func (r *Ring) mk(v int32, then, els NodeID) NodeID {
	if then == Empty {
		return els
	}
	if v >= r.nodes[then].v || v >= r.nodes[els].v {
		panic(fmt.Sprintf("zdd: variable order violated building node on %d", v))
	}
	key := node{v: v, then: then, els: els}
	if id, ok := r.unique[key]; ok {
		return id
	}
	id := NodeID(len(r.nodes))
	r.nodes = append(r.nodes, key)
	d := r.deg[then] + 1
	if r.deg[els] > d {
		d = r.deg[els]
	}
	r.deg = append(r.deg, d)
	c := r.count[then] + r.count[els]
	if c < r.count[then] {
		c = math.MaxUint64
	}
	r.count = append(r.count, c)
	r.unique[key] = id
	return id
}

func (r *Ring) top(id NodeID) int32       { return r.nodes[id].v }
func (r *Ring) thenOf(id NodeID) NodeID   { return r.nodes[id].then }
func (r *Ring) elseOf(id NodeID) NodeID   { return r.nodes[id].els }
func (r *Ring) isTerminal(id NodeID) bool { return id <= Base }

// ownsOne reports whether the constant term belongs to the set rooted at id.
func (r *Ring) ownsOne(id NodeID) bool {
	for !r.isTerminal(id) {
		id = r.elseOf(id)
	}
	return id == Base
}

// SameRing reports whether all polynomials live in r.
func (r *Ring) SameRing(ps ...Poly) bool {
	for _, p := range ps {
		if p.r != r {
			return false
		}
	}
	return true
}
