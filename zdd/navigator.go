package zdd

// Navigator is a read-only cursor over the nodes of a diagram.
type Navigator struct {
	r  *Ring
	id NodeID
}

// IsConstant reports whether the cursor sits on a terminal.
func (n Navigator) IsConstant() bool { return n.r.isTerminal(n.id) }

// IsTerminatedOne reports whether the cursor sits on the terminal {1}.
func (n Navigator) IsTerminatedOne() bool { return n.id == Base }

func (n Navigator) IsEmpty() bool { return n.id == Empty }

// Index is the variable at the cursor; terminals report an index above every variable.
func (n Navigator) Index() int { return int(n.r.top(n.id)) }

func (n Navigator) Node() NodeID { return n.id }

// Then moves to the branch containing the cursor variable. Terminals stay put.
func (n Navigator) Then() Navigator {
	if n.IsConstant() {
		return n
	}
	return Navigator{r: n.r, id: n.r.thenOf(n.id)}
}

// Else moves to the branch without the cursor variable. Terminals stay put.
func (n Navigator) Else() Navigator {
	if n.IsConstant() {
		return n
	}
	return Navigator{r: n.r, id: n.r.elseOf(n.id)}
}

func (n *Navigator) IncrementThen() { *n = n.Then() }
func (n *Navigator) IncrementElse() { *n = n.Else() }

// Poly returns the sub-diagram under the cursor as a polynomial.
func (n Navigator) Poly() Poly { return Poly{r: n.r, id: n.id} }
