package zdd

// AccumulateRange returns the sum of the terms in [first, last) of one polynomial.
// Both iterators must walk the same polynomial; last may be its End. The result is
// rebuilt along the paths of the first and last terms only, so the sub-diagrams
// hanging off those paths are reused as they are. Recursion depth is bounded by the
// number of variables.
func AccumulateRange(first, last TermIterator) (Poly, error) {
	if first.r != last.r {
		return Poly{}, ErrRingMismatch
	}
	if first.root != last.root {
		return Poly{}, ErrNotATerm
	}
	r := first.r
	if first.end {
		return r.Zero(), nil
	}
	u := first.Term().vars
	if last.end {
		return Poly{r: r, id: r.upper(first.root, u)}, nil
	}
	l := last.Term().vars
	switch lexCompare(u, l) {
	case 0:
		return r.Zero(), nil
	case -1:
		return Poly{}, ErrUnsorted
	}
	return Poly{r: r, id: r.accumulate(first.root, u, l)}, nil
}

// upper keeps the terms of n that are lex-smaller than or equal to the term u of n.
func (r *Ring) upper(n NodeID, u []int) NodeID {
	if len(u) == 0 {
		return Base
	}
	v := int32(u[0])
	for r.top(n) < v {
		n = r.elseOf(n)
	}
	return r.mk(v, r.upper(r.thenOf(n), u[1:]), r.elseOf(n))
}

// lower keeps the terms of n that are lex-larger than the term l of n.
func (r *Ring) lower(n NodeID, l []int) NodeID {
	if r.isTerminal(n) {
		return Empty
	}
	top := r.top(n)
	switch {
	case len(l) == 0 || top < int32(l[0]):
		return r.mk(top, r.thenOf(n), r.lower(r.elseOf(n), l))
	case top == int32(l[0]):
		return r.mk(top, r.lower(r.thenOf(n), l[1:]), Empty)
	}
	return Empty
}

// accumulate keeps the terms t of n with l < t <= u; u and l are terms of n, u > l.
func (r *Ring) accumulate(n NodeID, u, l []int) NodeID {
	if len(u) == 0 {
		return Empty
	}
	if len(l) == 0 {
		return r.lower(r.upper(n, u), nil)
	}
	v := int32(u[0])
	for r.top(n) < v {
		n = r.elseOf(n)
	}
	if int32(l[0]) > v {
		return r.mk(v, r.upper(r.thenOf(n), u[1:]), r.lower(r.elseOf(n), l))
	}
	return r.mk(v, r.accumulate(r.thenOf(n), u[1:], l[1:]), Empty)
}
