// Package batch solves polynomial systems end to end: parse, saturate, minimalize.
// Several systems run concurrently, each with its own ring, cache and strategy.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gbf2/groebner"
	"gbf2/internal/metrics"
	"gbf2/internal/system"
	"gbf2/prof"
	"gbf2/zdd"
)

// Config controls how each system is solved.
type Config struct {
	// Options is a yaml overlay on the defaults of each system's order.
	Options []byte
	// MinimalOnly skips the tail reduction of the final basis.
	MinimalOnly bool
	// Jobs bounds the number of systems solved at once; zero means one per system.
	Jobs int
	// MatrixSink, when set, receives the matrices of linear-algebra steps and turns
	// DrawMatrices on.
	MatrixSink groebner.MatrixSink

	Log     *zap.Logger
	Metrics *metrics.Recorder
}

// Result is the outcome of one system.
type Result struct {
	Name        string
	Ring        *zdd.Ring
	Input       []zdd.Poly
	Basis       []zdd.Poly
	Digest      string
	State       groebner.State
	ContainsOne bool
	Stats       groebner.Stats
	Trace       []groebner.TracePoint
	Elapsed     time.Duration
}

// Solve computes the basis of one system.
func Solve(ctx context.Context, sys *system.System, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("system", sys.Name))

	r, err := sys.Ring()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sys.Name, err)
	}
	opts, err := groebner.LoadOptions(cfg.Options, r.Order())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sys.Name, err)
	}
	if cfg.MatrixSink != nil {
		opts.MatrixSink = cfg.MatrixSink
		opts.DrawMatrices = true
	}
	s, err := groebner.NewStrategy(r, opts, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sys.Name, err)
	}
	input, err := sys.Polynomials(s.Cache())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sys.Name, err)
	}

	start := time.Now()
	for _, p := range input {
		if p.IsZero() {
			continue
		}
		if err := s.AddGeneratorDelayed(p); err != nil {
			return nil, fmt.Errorf("%s: %w", sys.Name, err)
		}
	}
	state := s.Run()
	var basis []zdd.Poly
	if cfg.MinimalOnly {
		basis = s.Minimalize()
	} else {
		basis = s.MinimalizeAndTailReduce()
	}
	prof.Track(start, "batch.solve")

	res := &Result{
		Name:        sys.Name,
		Ring:        r,
		Input:       input,
		Basis:       basis,
		Digest:      groebner.Digest(basis),
		State:       state,
		ContainsOne: s.ContainsOne(),
		Stats:       s.Stats(),
		Trace:       s.Trace(),
		Elapsed:     time.Since(start),
	}
	if cfg.Metrics != nil {
		cfg.Metrics.Observe(sys.Name, res.State, res.Stats, res.Elapsed)
	}
	log.Info("system solved",
		zap.String("state", state.String()),
		zap.Int("basis", len(basis)),
		zap.Bool("contains_one", res.ContainsOne),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// SolveAll solves the systems concurrently. Results are in input order. The first
// error cancels the systems not yet started.
func SolveAll(ctx context.Context, systems []*system.System, cfg Config) ([]*Result, error) {
	out := make([]*Result, len(systems))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Jobs > 0 {
		g.SetLimit(cfg.Jobs)
	}
	for i, sys := range systems {
		i, sys := i, sys
		g.Go(func() error {
			res, err := Solve(gctx, sys, cfg)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadAll reads system files.
func LoadAll(paths []string) ([]*system.System, error) {
	out := make([]*system.System, 0, len(paths))
	for _, p := range paths {
		s, err := system.Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
