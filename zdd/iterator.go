package zdd

// TermIterator walks the terms of a polynomial in diagram order: a depth-first
// traversal taking then-branches first, which lists terms in decreasing lex order.
// The path is kept on an explicit stack of the nodes whose then-branch was taken.
type TermIterator struct {
	r     *Ring
	root  NodeID
	stack []NodeID
	end   bool
}

// Begin returns an iterator on the first (lex-largest) term of p.
func (p Poly) Begin() TermIterator {
	it := TermIterator{r: p.r, root: p.id}
	if p.id == Empty {
		it.end = true
		return it
	}
	it.descend(p.id)
	return it
}

// End returns the past-the-end iterator of p.
func (p Poly) End() TermIterator {
	return TermIterator{r: p.r, root: p.id, end: true}
}

func (it *TermIterator) descend(n NodeID) {
	for !it.r.isTerminal(n) {
		it.stack = append(it.stack, n)
		n = it.r.thenOf(n)
	}
}

// AtEnd reports whether the iterator is exhausted.
func (it TermIterator) AtEnd() bool { return it.end }

// Next advances to the following term.
func (it *TermIterator) Next() {
	if it.end {
		return
	}
	// copies of an iterator share the backing array
	it.stack = append([]NodeID(nil), it.stack...)
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if e := it.r.elseOf(n); e != Empty {
			it.descend(e)
			return
		}
	}
	it.end = true
}

// Term returns the current monomial; an exhausted iterator yields the empty monomial.
func (it TermIterator) Term() Monomial {
	if it.end || len(it.stack) == 0 {
		return Monomial{}
	}
	vars := make([]int, len(it.stack))
	for i, n := range it.stack {
		vars[i] = int(it.r.top(n))
	}
	return Monomial{vars: vars}
}

// Poly returns the polynomial the iterator walks.
func (it TermIterator) Poly() Poly { return Poly{r: it.r, id: it.root} }

// Equal reports whether both iterators point at the same position of the same polynomial.
func (it TermIterator) Equal(o TermIterator) bool {
	if it.r != o.r || it.root != o.root || it.end != o.end {
		return false
	}
	if it.end {
		return true
	}
	if len(it.stack) != len(o.stack) {
		return false
	}
	for i := range it.stack {
		if it.stack[i] != o.stack[i] {
			return false
		}
	}
	return true
}
