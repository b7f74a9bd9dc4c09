package groebner

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"gbf2/zdd"
)

// Options configures one Strategy. It is copied at construction and never changed
// afterwards.
type Options struct {
	// RedTailInLastBlock tail-reduces every new generator before it is integrated.
	// It is meant for block orders and is off by default.
	RedTailInLastBlock bool `yaml:"red_tail_in_last_block"`
	// Lazy restricts the loop to top reduction of S-polynomials.
	Lazy bool `yaml:"lazy"`
	// DelayNonMinimals queues generators with a reducible lead as delayed pairs.
	DelayNonMinimals bool `yaml:"delay_non_minimals"`
	// Exchange substitutes x := g for generators x + g with a single-variable lead
	// (lex orders only).
	Exchange bool `yaml:"exchange"`
	// AllowRecursion lets value propagation cascade into generators it turned into
	// new assignments.
	AllowRecursion bool `yaml:"allow_recursion"`

	StepBounded bool `yaml:"step_bounded"`
	DegreeBound int  `yaml:"degree_bound"`

	LinearAlgebra      bool `yaml:"linear_algebra"`
	LinearAlgebraBatch int  `yaml:"linear_algebra_batch"`

	DrawMatrices bool   `yaml:"draw_matrices"`
	MatrixPrefix string `yaml:"matrix_prefix"`

	// MatrixSink receives matrix dumps when DrawMatrices is set.
	MatrixSink MatrixSink `yaml:"-"`
	// BatchReducer replaces the dense reducer of the linear-algebra step.
	BatchReducer BatchReducer `yaml:"-"`
}

// DefaultOptions returns the settings used for the given order.
func DefaultOptions(order zdd.Order) Options {
	return Options{
		Lazy:               !order.IsDegreeOrder(),
		DelayNonMinimals:   true,
		Exchange:           true,
		AllowRecursion:     true,
		LinearAlgebraBatch: 32,
		MatrixPrefix:       "mat",
	}
}

// Validate reports inconsistent settings.
func (o Options) Validate() error {
	if o.StepBounded && o.DegreeBound < 0 {
		return fmt.Errorf("%w: negative degree bound %d", ErrInvalidOptions, o.DegreeBound)
	}
	if o.LinearAlgebra && o.LinearAlgebraBatch < 1 {
		return fmt.Errorf("%w: linear algebra batch must be positive, got %d", ErrInvalidOptions, o.LinearAlgebraBatch)
	}
	if o.DrawMatrices && o.MatrixPrefix == "" {
		return fmt.Errorf("%w: matrix dumps need a prefix", ErrInvalidOptions)
	}
	return nil
}

// LoadOptions overlays a yaml document on DefaultOptions(order).
func LoadOptions(data []byte, order zdd.Order) (Options, error) {
	opts := DefaultOptions(order)
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("groebner: parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
