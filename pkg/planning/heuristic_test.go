package planning

import (
	"context"
	"reflect"
	"testing"

	"github.com/procurer/procurer/pkg/domain/entities"
)

func TestHeuristicPlanner_LeadTimeScenario(t *testing.T) {
	// One product, one supplier with lead time 1, MOQ 5, demand 20 in
	// period 1, nothing on hand. The projected period-1 deficit triggers a
	// single MOQ-sized order in period 0; the arriving 5 units leave 15
	// units of period-1 demand unmet.
	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), singleLaneDataSet(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if solution.Status != StatusHeuristic {
		t.Errorf("Expected status %s, got %s", StatusHeuristic, solution.Status)
	}
	if solution.HasObjective {
		t.Error("Expected no objective from the heuristic planner")
	}

	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; got != 5 {
		t.Errorf("Expected order of 5 units in period 0, got %f", got)
	}
	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 1}]; got != 0 {
		t.Errorf("Expected no order in period 1, got %f", got)
	}
	if got := solution.Shipments[OrderKey{Product: "P1", Supplier: "S1", Period: 1}]; got != 5 {
		t.Errorf("Expected arrival of 5 units in period 1, got %f", got)
	}

	if got := solution.Inventory[StockKey{Product: "P1", Period: 0}]; got != 0 {
		t.Errorf("Expected 0 on hand after period 0, got %f", got)
	}
	if got := solution.Inventory[StockKey{Product: "P1", Period: 1}]; got != 0 {
		t.Errorf("Expected 0 on hand after period 1, got %f", got)
	}

	if got := solution.UnmetDemand[StockKey{Product: "P1", Period: 1}]; got != 15 {
		t.Errorf("Expected 15 units unmet in period 1, got %f", got)
	}
	if got := solution.TotalUnmetDemand(); got != 15 {
		t.Errorf("Expected total unmet demand 15, got %f", got)
	}
}

func TestHeuristicPlanner_Determinism(t *testing.T) {
	planner := NewHeuristicPlanner()
	ctx := context.Background()

	first, err := planner.Solve(ctx, singleLaneDataSet(t))
	if err != nil {
		t.Fatalf("First solve failed: %v", err)
	}
	second, err := planner.Solve(ctx, singleLaneDataSet(t))
	if err != nil {
		t.Fatalf("Second solve failed: %v", err)
	}

	if !reflect.DeepEqual(first.Procurement, second.Procurement) {
		t.Error("Procurement plans differ across identical runs")
	}
	if !reflect.DeepEqual(first.Shipments, second.Shipments) {
		t.Error("Shipments plans differ across identical runs")
	}
	if !reflect.DeepEqual(first.Inventory, second.Inventory) {
		t.Error("Inventory plans differ across identical runs")
	}
	if !reflect.DeepEqual(first.UnmetDemand, second.UnmetDemand) {
		t.Error("Unmet demand maps differ across identical runs")
	}
}

func TestHeuristicPlanner_CheapestSupplierSelection(t *testing.T) {
	buildData := func(t *testing.T, costA, costB float64) *DataSet {
		return &DataSet{
			Products: []*entities.Product{
				mustProduct(t, "P1", map[entities.SupplierID]float64{"SA": costA, "SB": costB}, 10, 5, nil),
			},
			Suppliers: []*entities.Supplier{
				mustSupplier(t, "SA", []entities.ProductID{"P1"}, nil),
				mustSupplier(t, "SB", []entities.ProductID{"P1"}, nil),
			},
			Demand: []*entities.Demand{
				mustDemand(t, "P1", 0, 0),
				mustDemand(t, "P1", 1, 10),
			},
			Inventory: []*entities.InventoryPolicy{
				mustPolicy(t, "P1", 0, 0, 1000, 0),
			},
		}
	}

	testCases := []struct {
		name         string
		costA, costB float64
		wantSupplier entities.SupplierID
	}{
		{"cheaper supplier wins", 2.0, 1.5, "SB"},
		{"tie resolves to smallest id", 2.0, 2.0, "SA"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			planner := NewHeuristicPlanner()
			solution, err := planner.Solve(context.Background(), buildData(t, tc.costA, tc.costB))
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			// with zero lead time the reorder lands in the demand period
			key := OrderKey{Product: "P1", Supplier: tc.wantSupplier, Period: 1}
			if got := solution.Procurement[key]; got != 5 {
				t.Errorf("Expected order from %s, plan: %v", tc.wantSupplier, solution.Procurement)
			}
		})
	}
}

func TestHeuristicPlanner_DensePlan(t *testing.T) {
	data := singleLaneDataSet(t)
	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// 1 product x 1 supplier x 2 periods
	if len(solution.Procurement) != 2 {
		t.Errorf("Expected 2 procurement entries, got %d", len(solution.Procurement))
	}
	entries := solution.Procurement.OrderedEntries()
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Supplier > cur.Supplier ||
			(prev.Supplier == cur.Supplier && prev.Product > cur.Product) ||
			(prev.Supplier == cur.Supplier && prev.Product == cur.Product && prev.Period > cur.Period) {
			t.Fatalf("Entries out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestHeuristicPlanner_CapacityGuard(t *testing.T) {
	// MOQ exceeds warehouse capacity: the planner must not place the order
	// and the capacity bound must hold in the resulting plan.
	data := &DataSet{
		Products: []*entities.Product{
			mustProduct(t, "P1", map[entities.SupplierID]float64{"S1": 1}, 10, 50, nil),
		},
		Suppliers: []*entities.Supplier{
			mustSupplier(t, "S1", []entities.ProductID{"P1"}, nil),
		},
		Demand: []*entities.Demand{
			mustDemand(t, "P1", 0, 10),
			mustDemand(t, "P1", 1, 10),
		},
		Inventory: []*entities.InventoryPolicy{
			mustPolicy(t, "P1", 0, 0, 30, 10),
		},
	}

	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	for key, qty := range solution.Procurement {
		if qty != 0 {
			t.Errorf("Expected no orders, got %f at %+v", qty, key)
		}
	}
	for key, qty := range solution.Inventory {
		if qty > 30 {
			t.Errorf("Capacity exceeded at %+v: %f", key, qty)
		}
	}
	if got := solution.TotalUnmetDemand(); got != 20 {
		t.Errorf("Expected 20 units unmet, got %f", got)
	}
}

// steadyDemandDataSet builds a replenishment scenario: steady demand of 15
// per period over four periods against initial stock 50, safety stock 10,
// MOQ 20, and a one-period lead time.
func steadyDemandDataSet(t *testing.T) *DataSet {
	t.Helper()
	return &DataSet{
		Products: []*entities.Product{
			mustProduct(t, "P1", map[entities.SupplierID]float64{"S1": 1}, 10, 20, nil),
		},
		Suppliers: []*entities.Supplier{
			mustSupplier(t, "S1", []entities.ProductID{"P1"}, map[entities.ProductID]int{"P1": 1}),
		},
		Demand: []*entities.Demand{
			mustDemand(t, "P1", 0, 15),
			mustDemand(t, "P1", 1, 15),
			mustDemand(t, "P1", 2, 15),
			mustDemand(t, "P1", 3, 15),
		},
		Inventory: []*entities.InventoryPolicy{
			mustPolicy(t, "P1", 50, 0.1, 1000, 10),
		},
	}
}

func TestHeuristicPlanner_InventoryBalance(t *testing.T) {
	// With enough stock to avoid shortages, end-of-period inventory must
	// satisfy inv[t] == inv[t-1] + arrivals(t) - demand(t) exactly.
	data := steadyDemandDataSet(t)

	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if got := solution.TotalUnmetDemand(); got != 0 {
		t.Fatalf("Expected no unmet demand, got %f", got)
	}

	ix := BuildIndex(data)
	prev := 50.0 // initial stock
	for _, period := range ix.Periods {
		arrivals := 0.0
		for _, supplier := range ix.SupplierIDs {
			arrivals += solution.Shipments[OrderKey{Product: "P1", Supplier: supplier, Period: period}]
		}
		want := prev + arrivals - ix.DemandAt("P1", period)
		got := solution.Inventory[StockKey{Product: "P1", Period: period}]
		if got != want {
			t.Errorf("Period %d: expected inventory %f, got %f", period, want, got)
		}
		prev = got
	}
}

func TestHeuristicPlanner_SafetyStockMaintained(t *testing.T) {
	// The reorder projection looks ahead by the supplier's lead time, so
	// replenishment arrives before stock would dip below the safety level:
	// the order triggered in period 1 lands in period 2, keeping every
	// end-of-period inventory at or above safety stock.
	data := steadyDemandDataSet(t)

	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 1}]; got != 20 {
		t.Errorf("Expected MOQ order of 20 in period 1, got %f", got)
	}
	if got := solution.Shipments[OrderKey{Product: "P1", Supplier: "S1", Period: 2}]; got != 20 {
		t.Errorf("Expected arrival of 20 in period 2, got %f", got)
	}
	for key, qty := range solution.Inventory {
		if qty < 10 {
			t.Errorf("Safety stock violated at %+v: %f", key, qty)
		}
	}
	if got := solution.TotalUnmetDemand(); got != 0 {
		t.Errorf("Expected no unmet demand, got %f", got)
	}
}

func TestHeuristicPlanner_ZeroLeadTimeArrivesSamePeriod(t *testing.T) {
	data := &DataSet{
		Products: []*entities.Product{
			mustProduct(t, "P1", map[entities.SupplierID]float64{"S1": 1}, 10, 10, nil),
		},
		Suppliers: []*entities.Supplier{
			mustSupplier(t, "S1", []entities.ProductID{"P1"}, nil), // lead 0
		},
		Demand: []*entities.Demand{
			mustDemand(t, "P1", 0, 0),
			mustDemand(t, "P1", 1, 0),
		},
		Inventory: []*entities.InventoryPolicy{
			mustPolicy(t, "P1", 0, 0, 100, 5),
		},
	}

	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; got != 10 {
		t.Errorf("Expected MOQ order of 10 in period 0, got %f", got)
	}
	if got := solution.Shipments[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; got != 10 {
		t.Errorf("Expected same-period arrival of 10, got %f", got)
	}
	if got := solution.Inventory[StockKey{Product: "P1", Period: 0}]; got != 10 {
		t.Errorf("Expected 10 on hand after period 0, got %f", got)
	}
}

func TestHeuristicPlanner_NoSupplierProducesPlanAnyway(t *testing.T) {
	// No supplier offers the product: the heuristic must still return a
	// plan and report every unit of demand as unmet.
	data := &DataSet{
		Products: []*entities.Product{
			mustProduct(t, "P1", nil, 10, 5, nil),
		},
		Suppliers: []*entities.Supplier{
			mustSupplier(t, "S1", nil, nil),
		},
		Demand: []*entities.Demand{
			mustDemand(t, "P1", 0, 8),
		},
		Inventory: []*entities.InventoryPolicy{
			mustPolicy(t, "P1", 0, 0, 100, 0),
		},
	}

	planner := NewHeuristicPlanner()
	solution, err := planner.Solve(context.Background(), data)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.Status != StatusHeuristic {
		t.Errorf("Expected status %s, got %s", StatusHeuristic, solution.Status)
	}
	if got := solution.TotalUnmetDemand(); got != 8 {
		t.Errorf("Expected 8 units unmet, got %f", got)
	}
}
