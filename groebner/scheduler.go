package groebner

import (
	"container/heap"

	"gbf2/zdd"
)

type pairQueue struct {
	order zdd.Order
	items []Pair
}

func (q *pairQueue) Len() int           { return len(q.items) }
func (q *pairQueue) Less(i, j int) bool { return q.items[i].less(q.items[j], q.order) }
func (q *pairQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *pairQueue) Push(x any)         { q.items = append(q.items, x.(Pair)) }
func (q *pairQueue) Pop() any {
	n := len(q.items) - 1
	p := q.items[n]
	q.items[n] = Pair{}
	q.items = q.items[:n]
	return p
}

// Scheduler holds the pending pairs of a run. Extraction is destructive: a pair is
// returned at most once. Criteria are applied by the caller before insertion.
type Scheduler struct {
	c      *zdd.Cache
	queue  pairQueue
	seq    uint64
	counts [3]int
}

// NewScheduler creates an empty scheduler ordering pairs by the ring's order.
func NewScheduler(c *zdd.Cache) *Scheduler {
	return &Scheduler{c: c, queue: pairQueue{order: c.Ring().Order()}}
}

func (s *Scheduler) push(p Pair) {
	s.seq++
	p.seq = s.seq
	s.counts[p.Kind]++
	heap.Push(&s.queue, p)
}

// InsertIndexPair queues the S-polynomial of generators i and j.
func (s *Scheduler) InsertIndexPair(entries []Entry, i, j int) {
	s.push(newIndexPair(entries, i, j))
}

// InsertVariablePair queues x_v times generator i.
func (s *Scheduler) InsertVariablePair(entries []Entry, i, v int) {
	s.push(newVariablePair(entries, i, v))
}

// InsertDelayedPair queues an already computed polynomial.
func (s *Scheduler) InsertDelayedPair(p zdd.Poly) {
	if p.IsZero() {
		return
	}
	s.push(newDelayedPair(p))
}

func (s *Scheduler) IsEmpty() bool { return s.queue.Len() == 0 }
func (s *Scheduler) Len() int      { return s.queue.Len() }

// Peek returns the next pair without removing it.
func (s *Scheduler) Peek() (Pair, bool) {
	if s.IsEmpty() {
		return Pair{}, false
	}
	return s.queue.items[0], true
}

// Pop removes the next pair without materializing it.
func (s *Scheduler) Pop() (Pair, bool) {
	if s.IsEmpty() {
		return Pair{}, false
	}
	p := heap.Pop(&s.queue).(Pair)
	s.counts[p.Kind]--
	return p, true
}

// PopBatch removes the next pair and the following ones of equal sugar, at most n.
func (s *Scheduler) PopBatch(n int) []Pair {
	first, ok := s.Pop()
	if !ok {
		return nil
	}
	out := []Pair{first}
	for len(out) < n {
		next, ok := s.Peek()
		if !ok || next.Sugar != first.Sugar {
			break
		}
		p, _ := s.Pop()
		out = append(out, p)
	}
	return out
}

// Counts returns the number of pending pairs of each kind.
func (s *Scheduler) Counts() (index, variable, delayed int) {
	return s.counts[IndexPair], s.counts[VariablePair], s.counts[DelayedPair]
}

// OnlyDelayed reports whether every pending pair is a delayed pair.
func (s *Scheduler) OnlyDelayed() bool {
	return !s.IsEmpty() && s.counts[DelayedPair] == s.queue.Len()
}

// Clear drops every pending pair.
func (s *Scheduler) Clear() {
	s.queue.items = nil
	s.counts = [3]int{}
}

// Materialize turns a popped pair into its polynomial against the current generators.
// Index pairs are marked as having a t-representation; variable pairs as calculated.
func (s *Scheduler) Materialize(p Pair, gen *ReductionStrategy) zdd.Poly {
	switch p.Kind {
	case IndexPair:
		gen.status.SetHasTRep(p.I, p.J)
		return s.c.SPoly(gen.entries[p.I].P, gen.entries[p.J].P)
	case VariablePair:
		gen.markVariablePair(p.I, p.V)
		return s.c.Mul(s.c.Ring().Var(p.V), gen.entries[p.I].P)
	default:
		return p.P
	}
}

// NextSPolynomial removes the next pair and materializes it.
func (s *Scheduler) NextSPolynomial(gen *ReductionStrategy) zdd.Poly {
	p, ok := s.Pop()
	if !ok {
		return s.c.Ring().Zero()
	}
	return s.Materialize(p, gen)
}
