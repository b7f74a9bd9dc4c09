package groebner

import "math/bits"

// PairStatus is a symmetric bit matrix over generator indices recording the index
// pairs known to have a t-representation, either processed or discarded by a
// criterion. Row i stores the columns j < i.
type PairStatus struct {
	rows [][]uint64
}

// Grow makes room for n generators.
func (s *PairStatus) Grow(n int) {
	for i := len(s.rows); i < n; i++ {
		s.rows = append(s.rows, make([]uint64, (i+63)/64))
	}
}

func (s *PairStatus) SetHasTRep(i, j int) {
	if i == j {
		return
	}
	if i < j {
		i, j = j, i
	}
	s.Grow(i + 1)
	s.rows[i][j/64] |= 1 << (uint(j) % 64)
}

func (s *PairStatus) HasTRep(i, j int) bool {
	if i == j {
		return true
	}
	if i < j {
		i, j = j, i
	}
	if i >= len(s.rows) {
		return false
	}
	return s.rows[i][j/64]&(1<<(uint(j)%64)) != 0
}

// Count is the number of marked pairs.
func (s *PairStatus) Count() int {
	n := 0
	for _, row := range s.rows {
		for _, w := range row {
			n += bits.OnesCount64(w)
		}
	}
	return n
}
