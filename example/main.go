package main

import (
	"context"
	"fmt"

	"github.com/procurer/procurer/pkg/application/services"
	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/infrastructure/repositories/memory"
	"github.com/procurer/procurer/pkg/planning"
	"github.com/procurer/procurer/pkg/solve"
)

func main() {
	ctx := context.Background()

	// Build a small two-product, two-supplier scenario in memory
	repo := memory.NewDataRepository()
	setupElectronicsScenario(repo)

	engine := solve.NewEngine(solve.DefaultOptions())
	service := services.NewPlanningService(repo, engine)

	data, err := service.LoadDataSet(ctx)
	if err != nil {
		fmt.Printf("❌ Loading failed: %v\n", err)
		return
	}

	fmt.Println("📦 Planning procurement for the electronics warehouse...")
	fmt.Printf("Products: %d | Suppliers: %d | Demand records: %d\n\n",
		len(data.Products), len(data.Suppliers), len(data.Demand))

	// The heuristic needs no solver and always produces a plan
	for _, plannerName := range []string{planning.PlannerHeuristic, planning.PlannerExact} {
		result, err := service.Plan(ctx, plannerName, data)
		if err != nil {
			fmt.Printf("❌ %s planner failed: %v\n", plannerName, err)
			continue
		}

		fmt.Printf("📊 %s planner: %s\n", result.Planner, result.Solution.Status)
		if result.Solution.HasObjective {
			fmt.Printf("  Total cost: %.2f\n", result.Solution.Objective)
		}
		for _, entry := range result.Solution.Procurement.OrderedEntries() {
			if entry.Quantity > 0 {
				fmt.Printf("  Order %0.0f units of %s from %s in period %d\n",
					entry.Quantity, entry.Product, entry.Supplier, entry.Period)
			}
		}
		for _, entry := range result.Solution.Shipments.OrderedEntries() {
			if entry.Quantity > 0 {
				fmt.Printf("  Arrival of %0.0f units of %s from %s in period %d\n",
					entry.Quantity, entry.Product, entry.Supplier, entry.Period)
			}
		}
		fmt.Printf("  Service level: %.0f%% | Unmet demand: %.0f\n\n",
			result.KPIs.ServiceLevel*100, result.KPIs.UnmetDemand)
	}
}

func setupElectronicsScenario(repo *memory.DataRepository) {
	resistor, _ := entities.NewProduct("RESISTOR", "Precision resistor",
		map[entities.SupplierID]float64{"ACME": 0.12, "GLOBEX": 0.10},
		6, 100, nil)
	capacitor, _ := entities.NewProduct("CAPACITOR", "Ceramic capacitor",
		map[entities.SupplierID]float64{"ACME": 0.40},
		6, 50, &entities.DiscountPolicy{Threshold: 200, Rate: 0.15})
	repo.AddProduct(resistor)
	repo.AddProduct(capacitor)

	acme, _ := entities.NewSupplier("ACME", "Acme Components",
		[]entities.ProductID{"RESISTOR", "CAPACITOR"},
		map[entities.ProductID]int{"RESISTOR": 1, "CAPACITOR": 2})
	globex, _ := entities.NewSupplier("GLOBEX", "Globex Passives",
		[]entities.ProductID{"RESISTOR"},
		map[entities.ProductID]int{"RESISTOR": 0})
	repo.AddSupplier(acme)
	repo.AddSupplier(globex)

	for period, qty := range map[entities.Period]float64{0: 0, 1: 250, 2: 180, 3: 220} {
		d, _ := entities.NewDemand("RESISTOR", period, qty)
		repo.AddDemand(d)
	}
	for period, qty := range map[entities.Period]float64{0: 40, 1: 60, 2: 90, 3: 70} {
		d, _ := entities.NewDemand("CAPACITOR", period, qty)
		repo.AddDemand(d)
	}

	resistorPolicy, _ := entities.NewInventoryPolicy("RESISTOR", 120, 0.01, 1500, 50)
	capacitorPolicy, _ := entities.NewInventoryPolicy("CAPACITOR", 80, 0.02, 600, 20)
	repo.AddInventoryPolicy(resistorPolicy)
	repo.AddInventoryPolicy(capacitorPolicy)

	lanes := []struct {
		supplier entities.SupplierID
		product  entities.ProductID
		perUnit  float64
		fixed    float64
	}{
		{"ACME", "RESISTOR", 0.02, 5},
		{"ACME", "CAPACITOR", 0.03, 5},
		{"GLOBEX", "RESISTOR", 0.04, 2},
	}
	for _, lane := range lanes {
		cost, _ := entities.NewLogisticsCost(lane.supplier, lane.product, lane.perUnit, lane.fixed)
		repo.AddLogisticsCost(cost)
	}
}
