package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/procurer/procurer/pkg/application/dto"
	"github.com/procurer/procurer/pkg/domain/repositories"
	"github.com/procurer/procurer/pkg/planning"
	"github.com/procurer/procurer/pkg/solve"
)

// PlanningService orchestrates a planning session: load the collections,
// validate referential consistency, run the selected strategies, and
// attach KPIs to each solution.
type PlanningService struct {
	repo   repositories.DataRepository
	engine solve.Engine
}

// NewPlanningService creates a planning service. The engine backs the two
// mathematical planners; the heuristic runs without it.
func NewPlanningService(repo repositories.DataRepository, engine solve.Engine) *PlanningService {
	return &PlanningService{repo: repo, engine: engine}
}

// LoadDataSet loads all five collections from the repository and validates
// them. Planners must only ever see a validated DataSet.
func (s *PlanningService) LoadDataSet(ctx context.Context) (*planning.DataSet, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	suppliers, err := s.repo.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	demand, err := s.repo.Demand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand: %w", err)
	}
	inventory, err := s.repo.InventoryPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory policies: %w", err)
	}
	logistics, err := s.repo.LogisticsCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load logistics costs: %w", err)
	}

	data := &planning.DataSet{
		Products:  products,
		Suppliers: suppliers,
		Demand:    demand,
		Inventory: inventory,
		Logistics: logistics,
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planning data: %w", err)
	}
	return data, nil
}

// Plan runs the named strategy against the data and computes its KPIs
func (s *PlanningService) Plan(ctx context.Context, plannerName string, data *planning.DataSet) (*dto.PlanResult, error) {
	planner, err := planning.NewPlanner(plannerName, s.engine)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	solution, err := planner.Solve(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s planner failed: %w", plannerName, err)
	}

	return &dto.PlanResult{
		RunID:       uuid.New().String(),
		Planner:     planner.Name(),
		GeneratedAt: time.Now(),
		SolveTime:   time.Since(started),
		Solution:    solution,
		KPIs:        planning.ComputeKPIs(solution, data),
	}, nil
}

// PlanAll runs each named strategy in turn. Strategies are independent, so
// a failed run aborts the batch rather than poisoning later ones.
func (s *PlanningService) PlanAll(ctx context.Context, plannerNames []string, data *planning.DataSet) ([]*dto.PlanResult, error) {
	results := make([]*dto.PlanResult, 0, len(plannerNames))
	for _, name := range plannerNames {
		result, err := s.Plan(ctx, name, data)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
