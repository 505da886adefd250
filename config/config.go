// SPDX-License-Identifier: MIT

// Package config loads problem definitions from YAML.
//
//	variables: 3
//	k: 25
//	constraints:
//	  - not(0=4)
//	  - neq(0,1)
//	solver:
//	  tolerance: 0.01
//	  max_iterations: 200
//	  regularization: 0.001
//	decompose: true
//
// Missing solver fields keep the package defaults of newton and linsolve.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/linsolve"
	"github.com/katalvlaran/maxent/maxent"
	"github.com/katalvlaran/maxent/newton"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmpty indicates a document with no content.
	ErrEmpty = errors.New("config: empty document")

	// ErrInvalid indicates a field outside its valid range.
	ErrInvalid = errors.New("config: invalid value")
)

// Problem is one problem definition.
type Problem struct {
	Variables   int      `yaml:"variables"`
	K           int      `yaml:"k"`
	Constraints []string `yaml:"constraints"`
	Solver      Solver   `yaml:"solver"`
	Decompose   bool     `yaml:"decompose"`
}

// Solver holds the numeric knobs of a solve.
type Solver struct {
	Tolerance      float64 `yaml:"tolerance"`
	MaxIterations  int     `yaml:"max_iterations"`
	Regularization float64 `yaml:"regularization"`
}

// DefaultSolver returns the library defaults.
func DefaultSolver() Solver {
	return Solver{
		Tolerance:      newton.DefaultTolerance,
		MaxIterations:  newton.DefaultMaxIterations,
		Regularization: linsolve.DefaultRegularization,
	}
}

// Default returns the three-variable reference problem.
func Default() *Problem {
	return &Problem{
		Variables:   3,
		K:           25,
		Constraints: []string{"not(0=4)", "not(1=1)", "neq(0,1)", "neq(1,2)"},
		Solver:      DefaultSolver(),
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return p, nil
}

// Parse decodes one YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Problem, error) {
	p := &Problem{Solver: DefaultSolver()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks ranges; constraint syntax is checked by ConstraintSet.
func (p *Problem) Validate() error {
	switch {
	case p.Variables <= 0:
		return fmt.Errorf("variables = %d: %w", p.Variables, ErrInvalid)
	case p.K <= 0:
		return fmt.Errorf("k = %d: %w", p.K, ErrInvalid)
	case !(p.Solver.Tolerance > 0) || math.IsInf(p.Solver.Tolerance, 1):
		return fmt.Errorf("solver.tolerance = %g: %w", p.Solver.Tolerance, ErrInvalid)
	case p.Solver.MaxIterations <= 0:
		return fmt.Errorf("solver.max_iterations = %d: %w", p.Solver.MaxIterations, ErrInvalid)
	case !(p.Solver.Regularization >= 0) || math.IsInf(p.Solver.Regularization, 1):
		return fmt.Errorf("solver.regularization = %g: %w", p.Solver.Regularization, ErrInvalid)
	}

	return nil
}

// ConstraintSet parses the constraints and builds the validated set.
func (p *Problem) ConstraintSet() (*constraint.Set, error) {
	cs, err := constraint.ParseAll(p.Constraints)
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}
	set, err := constraint.NewSet(p.Variables, p.K, cs...)
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}

	return set, nil
}

// Options translates the solver section. Call Validate first; out-of-range
// values panic in the option constructors.
func (p *Problem) Options() []maxent.Option {
	return []maxent.Option{
		maxent.WithTolerance(p.Solver.Tolerance),
		maxent.WithMaxIterations(p.Solver.MaxIterations),
		maxent.WithRegularization(p.Solver.Regularization),
	}
}
