package system

// Package system reads and writes Boolean polynomial systems as yaml documents:
//
//	variables: [x1, x2, x3]
//	order: lp
//	generators:
//	  - x1*x2 + x1
//	  - x2*x3 + x3

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gbf2/zdd"
)

// System is a named set of generators over an ordered variable list.
type System struct {
	Name       string   `yaml:"name,omitempty"`
	Variables  []string `yaml:"variables"`
	Order      string   `yaml:"order,omitempty"`
	Generators []string `yaml:"generators"`
}

// Parse decodes a yaml system and checks that it names at least one variable.
func Parse(data []byte) (*System, error) {
	var s System
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("system: parse: %w", err)
	}
	if len(s.Variables) == 0 {
		return nil, fmt.Errorf("system: no variables declared")
	}
	if _, err := zdd.ParseOrder(s.Order); err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}
	return &s, nil
}

// Load reads a system file.
func Load(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("system: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Marshal encodes the system as yaml.
func (s *System) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Ring builds the ring of the system.
func (s *System) Ring() (*zdd.Ring, error) {
	order, err := zdd.ParseOrder(s.Order)
	if err != nil {
		return nil, err
	}
	return zdd.NewRing(order, s.Variables...)
}

// Polynomials parses the generators over the cache's ring. Zero generators are kept.
func (s *System) Polynomials(c *zdd.Cache) ([]zdd.Poly, error) {
	out := make([]zdd.Poly, 0, len(s.Generators))
	for i, g := range s.Generators {
		p, err := ParsePolynomial(c, g)
		if err != nil {
			return nil, fmt.Errorf("system: generator %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// FromPolynomials builds a system from polynomials of one ring.
func FromPolynomials(name string, r *zdd.Ring, polys []zdd.Poly) *System {
	s := &System{Name: name, Variables: r.Names(), Order: r.Order().String()}
	for _, p := range polys {
		s.Generators = append(s.Generators, p.String())
	}
	return s
}
