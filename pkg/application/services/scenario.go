package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/procurer/procurer/pkg/application/dto"
	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/planning"
)

// Scenario describes a sensitivity-analysis variant of the base data. Each
// multiplier scales the corresponding field across all records; zero values
// mean "leave unchanged".
type Scenario struct {
	Name                  string  `yaml:"name"`
	DemandMultiplier      float64 `yaml:"demand_multiplier"`
	SafetyStockMultiplier float64 `yaml:"safety_stock_multiplier"`
	CapacityMultiplier    float64 `yaml:"capacity_multiplier"`
	LeadTimeDelta         int     `yaml:"lead_time_delta"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads scenario definitions from a YAML file
func LoadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	for i, sc := range file.Scenarios {
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
	}
	return file.Scenarios, nil
}

// RunScenarioAnalysis applies each scenario to a copy of the base data and
// runs the named planner on it, collecting per-scenario results.
func (s *PlanningService) RunScenarioAnalysis(ctx context.Context, plannerName string,
	base *planning.DataSet, scenarios []Scenario) ([]*dto.ScenarioResult, error) {

	results := make([]*dto.ScenarioResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		data, err := applyScenario(base, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result, err := s.Plan(ctx, plannerName, data)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		results = append(results, &dto.ScenarioResult{Scenario: scenario.Name, Result: result})
	}
	return results, nil
}

// applyScenario builds a modified copy of the base data. The base
// collections stay untouched; entities are rebuilt through their validating
// constructors so a scenario cannot produce records the planners would
// reject.
func applyScenario(base *planning.DataSet, scenario Scenario) (*planning.DataSet, error) {
	data := &planning.DataSet{
		Products:  base.Products,
		Suppliers: base.Suppliers,
		Demand:    base.Demand,
		Inventory: base.Inventory,
		Logistics: base.Logistics,
	}

	if scenario.DemandMultiplier > 0 && scenario.DemandMultiplier != 1 {
		scaled := make([]*entities.Demand, 0, len(base.Demand))
		for _, d := range base.Demand {
			rec, err := entities.NewDemand(d.ProductID, d.Period, d.ExpectedQuantity*scenario.DemandMultiplier)
			if err != nil {
				return nil, err
			}
			scaled = append(scaled, rec)
		}
		data.Demand = scaled
	}

	safetyMul := scenario.SafetyStockMultiplier
	capacityMul := scenario.CapacityMultiplier
	if (safetyMul > 0 && safetyMul != 1) || (capacityMul > 0 && capacityMul != 1) {
		scaled := make([]*entities.InventoryPolicy, 0, len(base.Inventory))
		for _, policy := range base.Inventory {
			safety := policy.SafetyStock
			if safetyMul > 0 {
				safety *= safetyMul
			}
			capacity := policy.WarehouseCapacity
			if capacityMul > 0 {
				capacity *= capacityMul
			}
			rec, err := entities.NewInventoryPolicy(policy.ProductID, policy.InitialStock,
				policy.HoldingCost, capacity, safety)
			if err != nil {
				return nil, err
			}
			scaled = append(scaled, rec)
		}
		data.Inventory = scaled
	}

	if scenario.LeadTimeDelta != 0 {
		shifted := make([]*entities.Supplier, 0, len(base.Suppliers))
		for _, supplier := range base.Suppliers {
			leadTimes := make(map[entities.ProductID]int, len(supplier.LeadTimes))
			for product, lead := range supplier.LeadTimes {
				adjusted := lead + scenario.LeadTimeDelta
				if adjusted < 0 {
					adjusted = 0
				}
				leadTimes[product] = adjusted
			}
			rec, err := entities.NewSupplier(supplier.ID, supplier.Name, supplier.ProductsOffered, leadTimes)
			if err != nil {
				return nil, err
			}
			shifted = append(shifted, rec)
		}
		data.Suppliers = shifted
	}

	return data, nil
}
