package planning

import (
	"context"
	"fmt"

	"github.com/procurer/procurer/pkg/solve"
)

// Planner is the shared capability implemented by all three planning
// strategies: turn a validated DataSet into a cost-minimizing (or
// near-minimizing) Solution. Implementations never mutate the input, so
// concurrent Solve calls over the same DataSet are safe.
type Planner interface {
	Name() string
	Solve(ctx context.Context, data *DataSet) (*Solution, error)
}

// Planner names accepted by NewPlanner
const (
	PlannerExact     = "exact"
	PlannerDiscount  = "discount"
	PlannerHeuristic = "heuristic"
)

// PlannerNames lists the available strategies in presentation order
func PlannerNames() []string {
	return []string{PlannerExact, PlannerDiscount, PlannerHeuristic}
}

// NewPlanner creates the named planning strategy. The engine is only used
// by the two mathematical planners and may be nil for the heuristic.
func NewPlanner(name string, engine solve.Engine) (Planner, error) {
	switch name {
	case PlannerExact:
		if engine == nil {
			return nil, fmt.Errorf("exact planner requires a solving engine")
		}
		return NewExactPlanner(engine), nil
	case PlannerDiscount:
		if engine == nil {
			return nil, fmt.Errorf("discount planner requires a solving engine")
		}
		return NewDiscountPlanner(engine), nil
	case PlannerHeuristic:
		return NewHeuristicPlanner(), nil
	default:
		return nil, fmt.Errorf("unknown planner: %s", name)
	}
}

// statusFromEngine maps engine termination states onto plan statuses
func statusFromEngine(status solve.Status) Status {
	switch status {
	case solve.StatusOptimal:
		return StatusOptimal
	case solve.StatusSuboptimal:
		return StatusSuboptimal
	case solve.StatusTimedOut:
		return StatusTimedOut
	case solve.StatusInfeasible:
		return StatusInfeasible
	default:
		return StatusSolverError
	}
}
