package zdd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Order is a monomial order on Boolean monomials. Variable 0 is the largest variable.
type Order int

const (
	// Lex is the lexicographical order x0 > x1 > ... ("lp").
	Lex Order = iota
	// DegLex compares total degree first and breaks ties with Lex ("dlex").
	DegLex
)

func (o Order) String() string {
	switch o {
	case Lex:
		return "lp"
	case DegLex:
		return "dlex"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// IsDegreeOrder reports whether the order compares total degree first.
func (o Order) IsDegreeOrder() bool { return o == DegLex }

// ParseOrder accepts "lp"/"lex" and "dlex"/"deglex".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lp", "lex":
		return Lex, nil
	case "dlex", "deglex":
		return DegLex, nil
	}
	return Lex, fmt.Errorf("zdd: unknown monomial order %q", s)
}

// Compare returns -1, 0 or +1 as a is smaller than, equal to or larger than b.
func (o Order) Compare(a, b Monomial) int {
	if o == DegLex {
		if da, db := len(a.vars), len(b.vars); da != db {
			if da < db {
				return -1
			}
			return 1
		}
	}
	return lexCompare(a.vars, b.vars)
}

// lexCompare orders sorted index sets: at the first difference the set holding the
// smaller index is larger; a proper prefix is smaller.
func lexCompare(a, b []int) int {
	for i := 0; ; i++ {
		switch {
		case i == len(a) && i == len(b):
			return 0
		case i == len(a):
			return -1
		case i == len(b):
			return 1
		case a[i] < b[i]:
			return 1
		case a[i] > b[i]:
			return -1
		}
	}
}

// Monomial is a product of distinct variables, stored as ascending variable indices.
// The zero-length monomial is the constant one. Monomials are immutable.
type Monomial struct {
	vars []int
}

// NewMonomial builds the product of the given variables (x*x = x).
func NewMonomial(vars ...int) Monomial {
	if len(vars) == 0 {
		return Monomial{}
	}
	vs := make([]int, len(vars))
	copy(vs, vars)
	sort.Ints(vs)
	out := vs[:1]
	for _, v := range vs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Monomial{vars: out}
}

func (m Monomial) Deg() int     { return len(m.vars) }
func (m Monomial) IsOne() bool  { return len(m.vars) == 0 }
func (m Monomial) Len() int     { return len(m.vars) }
func (m Monomial) At(i int) int { return m.vars[i] }

// Vars returns a copy of the variable indices.
func (m Monomial) Vars() []int {
	out := make([]int, len(m.vars))
	copy(out, m.vars)
	return out
}

// Contains reports whether variable v divides m.
func (m Monomial) Contains(v int) bool {
	i := sort.SearchInts(m.vars, v)
	return i < len(m.vars) && m.vars[i] == v
}

// Divides reports whether m divides o.
func (m Monomial) Divides(o Monomial) bool {
	if len(m.vars) > len(o.vars) {
		return false
	}
	j := 0
	for _, v := range m.vars {
		for j < len(o.vars) && o.vars[j] < v {
			j++
		}
		if j == len(o.vars) || o.vars[j] != v {
			return false
		}
		j++
	}
	return true
}

func (m Monomial) Equal(o Monomial) bool {
	if len(m.vars) != len(o.vars) {
		return false
	}
	for i := range m.vars {
		if m.vars[i] != o.vars[i] {
			return false
		}
	}
	return true
}

// LCM returns the least common multiple, i.e. the union of the variable sets.
func (m Monomial) LCM(o Monomial) Monomial {
	out := make([]int, 0, len(m.vars)+len(o.vars))
	i, j := 0, 0
	for i < len(m.vars) || j < len(o.vars) {
		switch {
		case j == len(o.vars) || (i < len(m.vars) && m.vars[i] < o.vars[j]):
			out = append(out, m.vars[i])
			i++
		case i == len(m.vars) || o.vars[j] < m.vars[i]:
			out = append(out, o.vars[j])
			j++
		default:
			out = append(out, m.vars[i])
			i++
			j++
		}
	}
	return Monomial{vars: out}
}

// GCD returns the greatest common divisor, i.e. the common variables.
func (m Monomial) GCD(o Monomial) Monomial {
	var out []int
	i, j := 0, 0
	for i < len(m.vars) && j < len(o.vars) {
		switch {
		case m.vars[i] < o.vars[j]:
			i++
		case m.vars[i] > o.vars[j]:
			j++
		default:
			out = append(out, m.vars[i])
			i++
			j++
		}
	}
	return Monomial{vars: out}
}

// Coprime reports whether m and o share no variable.
func (m Monomial) Coprime(o Monomial) bool {
	i, j := 0, 0
	for i < len(m.vars) && j < len(o.vars) {
		switch {
		case m.vars[i] < o.vars[j]:
			i++
		case m.vars[i] > o.vars[j]:
			j++
		default:
			return false
		}
	}
	return true
}

// Div returns m/o; the variables of o missing from m are ignored.
func (m Monomial) Div(o Monomial) Monomial {
	var out []int
	j := 0
	for _, v := range m.vars {
		for j < len(o.vars) && o.vars[j] < v {
			j++
		}
		if j < len(o.vars) && o.vars[j] == v {
			continue
		}
		out = append(out, v)
	}
	return Monomial{vars: out}
}

// Key is a compact map key identifying the monomial.
func (m Monomial) Key() string {
	var b strings.Builder
	for i, v := range m.vars {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Format renders m with the ring's variable names.
func (m Monomial) Format(r *Ring) string {
	if len(m.vars) == 0 {
		return "1"
	}
	parts := make([]string, len(m.vars))
	for i, v := range m.vars {
		parts[i] = r.Name(v)
	}
	return strings.Join(parts, "*")
}

func (m Monomial) String() string {
	if len(m.vars) == 0 {
		return "1"
	}
	parts := make([]string, len(m.vars))
	for i, v := range m.vars {
		parts[i] = "x" + strconv.Itoa(v)
	}
	return strings.Join(parts, "*")
}
