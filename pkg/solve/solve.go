// Package solve wraps the generic mixed-integer solving capability behind a
// small interface so the concrete numerical engine is swappable without
// touching constraint-construction code. Planners assemble a mip.Model and
// hand it over; they never talk to a solver provider directly.
package solve

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// Status is the engine-level termination state
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusSuboptimal Status = "Suboptimal"
	StatusInfeasible Status = "Infeasible"
	StatusTimedOut   Status = "TimedOut"
)

// Options configures a solving engine
type Options struct {
	// Provider selects the numerical backend, e.g. "highs"
	Provider string
	// MaxDuration is the wall-clock limit per solve call
	MaxDuration time.Duration
	// GapRelative is the relative MIP gap at which a solution counts as
	// optimal
	GapRelative float64
	Verbose     bool
}

// DefaultOptions returns the standard engine configuration: HiGHS with a
// 30 second wall-clock limit and a zero relative gap.
func DefaultOptions() Options {
	return Options{
		Provider:    "highs",
		MaxDuration: 30 * time.Second,
		GapRelative: 0,
	}
}

// Result is the decoded outcome of one solve call
type Result struct {
	Status    Status
	Objective float64
	RunTime   time.Duration

	solution mip.Solution
}

// HasValues reports whether variable values are available for decoding
func (r *Result) HasValues() bool {
	return r.solution != nil && r.solution.HasValues()
}

// Value returns the solved value of a model variable
func (r *Result) Value(v mip.Var) float64 {
	return r.solution.Value(v)
}

// Engine is the black-box solve(model) capability used by the exact and
// discount-aware planners.
type Engine interface {
	Solve(ctx context.Context, model mip.Model) (*Result, error)
}

// MIPEngine solves models through a nextmv mip provider
type MIPEngine struct {
	opts Options
}

// Verify interface compliance
var _ Engine = (*MIPEngine)(nil)

// NewEngine creates a MIPEngine with the given options
func NewEngine(opts Options) *MIPEngine {
	if opts.Provider == "" {
		opts.Provider = "highs"
	}
	return &MIPEngine{opts: opts}
}

// Solve hands the assembled model to the configured provider and decodes
// the termination state. Each call is a single deterministic attempt; the
// engine never retries.
func (e *MIPEngine) Solve(ctx context.Context, model mip.Model) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("solve aborted: %w", err)
	}

	solver, err := mip.NewSolver(mip.SolverProvider(e.opts.Provider), model)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s solver: %w", e.opts.Provider, err)
	}

	solveOptions := mip.NewSolveOptions()
	if e.opts.MaxDuration > 0 {
		if err := solveOptions.SetMaximumDuration(e.opts.MaxDuration); err != nil {
			return nil, fmt.Errorf("failed to set solver duration limit: %w", err)
		}
	}
	if err := solveOptions.SetMIPGapRelative(e.opts.GapRelative); err != nil {
		return nil, fmt.Errorf("failed to set solver gap: %w", err)
	}
	if e.opts.Verbose {
		solveOptions.SetVerbosity(mip.High)
	} else {
		solveOptions.SetVerbosity(mip.Off)
	}

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, fmt.Errorf("%s solve failed: %w", e.opts.Provider, err)
	}

	result := &Result{solution: solution}
	if solution != nil {
		result.RunTime = solution.RunTime()
	}

	switch {
	case solution != nil && solution.HasValues() && solution.IsOptimal():
		result.Status = StatusOptimal
		result.Objective = solution.ObjectiveValue()
	case solution != nil && solution.HasValues():
		result.Status = StatusSuboptimal
		result.Objective = solution.ObjectiveValue()
	case e.opts.MaxDuration > 0 && result.RunTime >= e.opts.MaxDuration:
		// No incumbent and the clock ran out: timed out, not proven
		// infeasible.
		result.Status = StatusTimedOut
	default:
		result.Status = StatusInfeasible
	}

	return result, nil
}
