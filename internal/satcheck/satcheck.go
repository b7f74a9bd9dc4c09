package satcheck

// Package satcheck decides whether a Boolean polynomial system has a common zero by
// handing a circuit encoding of it to a SAT solver. It is an independent check on
// the Gröbner engine: the reduced basis is {1} exactly when the system is
// unsatisfiable.

import (
	"errors"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"gbf2/zdd"
)

// Result is the outcome of a check. Model is set for satisfiable systems and is
// indexed by variable.
type Result struct {
	Satisfiable bool
	Model       []bool
}

type encoder struct {
	c    *logic.C
	vars []z.Lit
	memo map[zdd.NodeID]z.Lit
}

// node encodes the diagram rooted at n: p = x*A + B becomes (x AND A) XOR B.
func (e *encoder) node(n zdd.Navigator) z.Lit {
	switch {
	case n.IsEmpty():
		return e.c.F
	case n.IsTerminatedOne():
		return e.c.T
	}
	if lit, ok := e.memo[n.Node()]; ok {
		return lit
	}
	then := e.c.And(e.vars[n.Index()], e.node(n.Then()))
	lit := e.c.Xor(then, e.node(n.Else()))
	e.memo[n.Node()] = lit
	return lit
}

// Solve checks whether all polynomials vanish at a common point.
func Solve(polys []zdd.Poly) (Result, error) {
	if len(polys) == 0 {
		return Result{Satisfiable: true}, nil
	}
	r := polys[0].Ring()
	if r == nil || !r.SameRing(polys...) {
		return Result{}, fmt.Errorf("satcheck: %w", zdd.ErrRingMismatch)
	}
	e := &encoder{c: logic.NewC(), memo: make(map[zdd.NodeID]z.Lit)}
	e.vars = make([]z.Lit, r.NVars())
	for i := range e.vars {
		e.vars[i] = e.c.Lit()
	}
	roots := make([]z.Lit, 0, len(polys))
	for _, p := range polys {
		roots = append(roots, e.node(p.Navigation()))
	}

	g := gini.New()
	e.c.ToCnf(g)
	for _, root := range roots {
		g.Add(root.Not())
		g.Add(0)
	}
	switch g.Solve() {
	case 1:
	case -1:
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("satcheck: solver gave up")
	}
	model := make([]bool, r.NVars())
	maxVar := g.MaxVar()
	for i, lit := range e.vars {
		if lit.Var() <= maxVar {
			model[i] = g.Value(lit)
		}
	}
	return Result{Satisfiable: true, Model: model}, nil
}

// Verify reports whether every polynomial vanishes at model.
func Verify(polys []zdd.Poly, model []bool) bool {
	for _, p := range polys {
		if p.Eval(model) {
			return false
		}
	}
	return true
}

// ErrInconsistent reports a disagreement between the solver and the basis.
var ErrInconsistent = errors.New("satcheck: basis and solver disagree")

// Report compares the solver's verdict with a Gröbner basis of the same system.
type Report struct {
	Result
	ContainsOne bool
}

// CrossCheck solves polys with the SAT solver and checks the verdict against basis,
// a Gröbner basis of the same ideal: the system is unsatisfiable exactly when the
// basis contains one, and a model must be a zero of every basis element.
func CrossCheck(polys, basis []zdd.Poly) (Report, error) {
	res, err := Solve(polys)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Result: res}
	for _, b := range basis {
		if b.IsOne() {
			rep.ContainsOne = true
		}
	}
	if rep.Satisfiable == rep.ContainsOne {
		return rep, fmt.Errorf("%w: satisfiable=%v contains_one=%v", ErrInconsistent, rep.Satisfiable, rep.ContainsOne)
	}
	if rep.Satisfiable && !Verify(basis, rep.Model) {
		return rep, fmt.Errorf("%w: model is not a zero of the basis", ErrInconsistent)
	}
	return rep, nil
}
