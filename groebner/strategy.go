package groebner

// Package groebner computes Gröbner bases of Boolean polynomial ideals with a
// Buchberger-style pair algorithm specialised for GF(2). A Strategy owns the
// generator set, the pair scheduler and the memo cache of one run.

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"gbf2/prof"
	"gbf2/zdd"
)

// Strategy runs the saturation loop (symmGB_F2) over one ring.
// A Strategy is not safe for concurrent use.
type Strategy struct {
	ring  *zdd.Ring
	cache *zdd.Cache
	opts  Options
	log   *zap.Logger

	gen   *ReductionStrategy
	pairs *Scheduler

	state    State
	stats    Stats
	trace    []TracePoint
	reducer  BatchReducer
	matrices int
}

// NewStrategy creates an empty strategy. A nil logger disables logging.
func NewStrategy(r *zdd.Ring, opts Options, log *zap.Logger) (*Strategy, error) {
	if r == nil {
		return nil, fmt.Errorf("groebner: nil ring")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := r.NewCache()
	s := &Strategy{
		ring:    r,
		cache:   c,
		opts:    opts,
		log:     log,
		gen:     NewReductionStrategy(c),
		pairs:   NewScheduler(c),
		state:   Done,
		reducer: opts.BatchReducer,
	}
	if s.reducer == nil {
		s.reducer = DenseReducer{}
	}
	return s, nil
}

func (s *Strategy) Ring() *zdd.Ring                     { return s.ring }
func (s *Strategy) Cache() *zdd.Cache                   { return s.cache }
func (s *Strategy) Options() Options                    { return s.opts }
func (s *Strategy) Generators() *ReductionStrategy      { return s.gen }
func (s *Strategy) State() State                        { return s.state }
func (s *Strategy) Pending() int                        { return s.pairs.Len() }
func (s *Strategy) ContainsOne() bool                   { return s.gen.ContainsOne() }
func (s *Strategy) Minimalize() []zdd.Poly              { return s.gen.Minimalize() }
func (s *Strategy) MinimalizeAndTailReduce() []zdd.Poly { return s.gen.MinimalizeAndTailReduce() }

// Trace returns the per-iteration samples recorded so far.
func (s *Strategy) Trace() []TracePoint {
	out := make([]TracePoint, len(s.trace))
	copy(out, s.trace)
	return out
}

// Stats returns the counters of the run so far.
func (s *Strategy) Stats() Stats {
	st := s.stats
	st.ReductionSteps = s.gen.reductionSteps
	st.Generators = s.gen.Len()
	st.Cache = s.cache.Stats()
	if n := s.gen.Len(); n > 0 {
		total := 0
		for _, e := range s.gen.entries {
			total += e.Length
		}
		st.AverageLength = float64(total) / float64(n)
	}
	return st
}

func (s *Strategy) accept(p zdd.Poly) error {
	if p.Ring() != s.ring {
		return fmt.Errorf("groebner: polynomial over %d variables: %w", ringVars(p), ErrRingMismatch)
	}
	return nil
}

func ringVars(p zdd.Poly) int {
	if p.Ring() == nil {
		return 0
	}
	return p.Ring().NVars()
}

// AddGenerator integrates p as a new generator and returns its index. The
// polynomial is taken as given; only known variable values are substituted into
// its tail. Pairs with the existing generators are queued subject to the criteria.
// Implications (isImplication) do not queue the x + 1 consequences of m + 1.
func (s *Strategy) AddGenerator(p zdd.Poly, isImplication bool) (int, error) {
	if err := s.accept(p); err != nil {
		return -1, err
	}
	if p.IsZero() {
		return -1, ErrZeroPolynomial
	}
	i := s.addGenerator(p, isImplication)
	s.updateState()
	return i, nil
}

// AddGeneratorDelayed queues p for reduction and integration by the loop.
func (s *Strategy) AddGeneratorDelayed(p zdd.Poly) error {
	if err := s.accept(p); err != nil {
		return err
	}
	if p.IsZero() {
		return ErrZeroPolynomial
	}
	s.pairs.InsertDelayedPair(p)
	s.updateState()
	return nil
}

// AddAsYouWish adds p as a generator, or as a delayed pair when its lead is
// reducible and DelayNonMinimals is set.
func (s *Strategy) AddAsYouWish(p zdd.Poly) error {
	if err := s.accept(p); err != nil {
		return err
	}
	if p.IsZero() {
		return ErrZeroPolynomial
	}
	s.addAsYouWish(p)
	s.updateState()
	return nil
}

// NormalForm reduces p against the current generators.
func (s *Strategy) NormalForm(p zdd.Poly) (zdd.Poly, error) {
	if err := s.accept(p); err != nil {
		return zdd.Poly{}, err
	}
	return s.gen.NormalForm(p), nil
}

// TailReduce reduces the non-lead terms of p against the current generators.
func (s *Strategy) TailReduce(p zdd.Poly) (zdd.Poly, error) {
	if err := s.accept(p); err != nil {
		return zdd.Poly{}, err
	}
	return s.gen.TailReduce(p), nil
}

// Run processes pending pairs until none remain, or until the next pair exceeds
// the degree bound when StepBounded is set.
func (s *Strategy) Run() State {
	bound := -1
	if s.opts.StepBounded {
		bound = s.opts.DegreeBound
	}
	return s.RunTo(bound)
}

// RunTo is Run with an explicit sugar bound; a negative bound means unbounded.
// A bounded stop leaves the strategy valid, and a later call resumes it.
func (s *Strategy) RunTo(bound int) State {
	defer prof.Track(time.Now(), "groebner.symmGB_F2")
	for !s.pairs.IsEmpty() {
		if s.gen.ContainsOne() {
			s.log.Debug("ideal contains one, dropping pending pairs", zap.Int("pending", s.pairs.Len()))
			s.pairs.Clear()
			break
		}
		if next, _ := s.pairs.Peek(); bound >= 0 && next.Sugar > bound {
			s.state = Bounded
			s.log.Info("degree bound reached",
				zap.Int("bound", bound),
				zap.Int("next_sugar", next.Sugar),
				zap.Int("pending", s.pairs.Len()))
			return s.state
		}
		s.Step()
	}
	s.state = Done
	st := s.Stats()
	s.log.Info("saturation finished",
		zap.Int("generators", st.Generators),
		zap.Int("pairs", st.PairsProcessed),
		zap.Int("zero_reductions", st.ZeroReductions),
		zap.Int("chain_criterions", st.ChainCriterions),
		zap.Int("product_criterions", st.EasyProductCriterions+st.ExtendedProductCriterions))
	return s.state
}

// Step runs one iteration of the loop and reports whether a pair was pending.
func (s *Strategy) Step() bool {
	if s.pairs.IsEmpty() {
		s.state = Done
		return false
	}
	if s.opts.LinearAlgebra {
		s.linearAlgebraStep()
	} else {
		pair, _ := s.pairs.Pop()
		s.stats.CurrentDegree = pair.Sugar
		p := s.pairs.Materialize(pair, s.gen)
		s.stats.PairsProcessed++
		s.reduceAndAdd(p)
	}
	s.updateState()
	s.trace = append(s.trace, TracePoint{
		Step:       len(s.trace) + 1,
		Pending:    s.pairs.Len(),
		Generators: s.gen.Len(),
		Sugar:      s.stats.CurrentDegree,
	})
	return true
}

func (s *Strategy) updateState() {
	switch {
	case s.pairs.IsEmpty():
		s.state = Done
	case s.opts.DelayNonMinimals && s.pairs.OnlyDelayed():
		s.state = StalledOnDelayed
	default:
		s.state = Running
	}
}

func (s *Strategy) reduceAndAdd(p zdd.Poly) {
	if !p.IsZero() {
		if s.opts.Lazy {
			p = s.gen.LeadReduce(p)
		} else {
			p = s.gen.NormalForm(p)
		}
		s.stats.NormalForms++
	}
	if p.IsZero() {
		s.stats.ZeroReductions++
		return
	}
	if s.opts.RedTailInLastBlock {
		p = s.gen.TailReduce(p)
	}
	s.addAsYouWish(p)
}

func (s *Strategy) addAsYouWish(p zdd.Poly) {
	if s.opts.DelayNonMinimals && s.gen.HasDivisor(p.Lead()) {
		s.pairs.InsertDelayedPair(p)
		return
	}
	s.addGenerator(p, false)
}

func (s *Strategy) addGenerator(p zdd.Poly, isImplication bool) int {
	p = s.applyValues(p)
	e := NewEntry(s.cache, p)
	i := s.gen.add(e)
	s.treatNormalPairs(i)
	s.addVariablePairs(i)
	if !isImplication && e.IsMonomialPlusOne() {
		s.addImplications(e)
	}
	if _, _, ok := e.Assignment(); ok {
		s.propagate(i)
	} else if s.opts.Exchange && s.ring.Order() == zdd.Lex && e.LeadDeg == 1 {
		s.llSubstitute(i)
	}
	s.log.Debug("generator added",
		zap.Int("index", i),
		zap.String("lead", e.Lead.Format(s.ring)),
		zap.Int("deg", e.Deg),
		zap.Int("length", e.Length),
		zap.Int("pending", s.pairs.Len()))
	return i
}

// treatNormalPairs queues the index pairs of the new generator sIdx that survive
// the criteria. Among survivors with equal lcm only the first is queued.
func (s *Strategy) treatNormalPairs(sIdx int) {
	type candidate struct {
		i   int
		lcm zdd.Monomial
	}
	var cands []candidate
	es := s.gen.entries[sIdx]
	for i := 0; i < sIdx; i++ {
		ei := s.gen.entries[i]
		switch {
		case easyProductCriterion(ei, es):
			s.stats.EasyProductCriterions++
		case extendedProductCriterion(ei, es):
			s.stats.ExtendedProductCriterions++
		case s.gen.chainCriterion(i, sIdx):
			s.stats.ChainCriterions++
		default:
			cands = append(cands, candidate{i: i, lcm: ei.Lead.LCM(es.Lead)})
			continue
		}
		s.gen.status.SetHasTRep(i, sIdx)
	}
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		key := c.lcm.Key()
		if seen[key] {
			s.stats.ChainCriterions++
			s.gen.status.SetHasTRep(c.i, sIdx)
			continue
		}
		seen[key] = true
		s.pairs.InsertIndexPair(s.gen.entries, c.i, sIdx)
	}
}

func (s *Strategy) addVariablePairs(sIdx int) {
	lead := s.gen.entries[sIdx].Lead
	for k := 0; k < lead.Len(); k++ {
		v := lead.At(k)
		if s.gen.variableChainCriterion(sIdx, v) {
			s.gen.markVariablePair(sIdx, v)
			s.stats.VariableChainCriterions++
			continue
		}
		s.pairs.InsertVariablePair(s.gen.entries, sIdx, v)
	}
}

// addImplications queues x + 1 for every variable of m when m + 1 is a generator.
func (s *Strategy) addImplications(e Entry) {
	one := s.ring.One()
	for k := 0; k < e.Lead.Len(); k++ {
		v := e.Lead.At(k)
		if val, ok := s.gen.values[v]; ok && val {
			continue
		}
		s.pairs.InsertDelayedPair(s.cache.Add(s.ring.Var(v), one))
	}
}

// SuggestPluginVariable returns the variable occurring in most minimal leads, or -1.
func (s *Strategy) SuggestPluginVariable() int {
	counts := make(map[int]int)
	for i, e := range s.gen.entries {
		if !s.gen.minimal[i] {
			continue
		}
		for k := 0; k < e.Lead.Len(); k++ {
			counts[e.Lead.At(k)]++
		}
	}
	best, bestCount := -1, 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}
