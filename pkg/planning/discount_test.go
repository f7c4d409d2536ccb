package planning

import (
	"math"
	"testing"

	"github.com/procurer/procurer/pkg/domain/entities"
)

func TestPiecewiseOrderCost(t *testing.T) {
	testCases := []struct {
		name      string
		qty       float64
		unitCost  float64
		threshold float64
		rate      float64
		want      float64
	}{
		{"below threshold pays full price", 5, 2, 10, 0.2, 10},
		{"at threshold pays full price", 10, 2, 10, 0.2, 20},
		{"above threshold discounts the excess", 20, 2, 10, 0.2, 10*2 + 10*2*0.8},
		{"zero rate is linear", 20, 2, 10, 0, 40},
		{"zero quantity is free", 0, 2, 10, 0.2, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PiecewiseOrderCost(tc.qty, tc.unitCost, tc.threshold, tc.rate)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Expected cost %f, got %f", tc.want, got)
			}
		})
	}
}

func TestPiecewiseOrderCost_CheaperThanLinearAboveThreshold(t *testing.T) {
	discounted := PiecewiseOrderCost(20, 2, 10, 0.2)
	linear := 20 * 2.0
	if discounted >= linear {
		t.Errorf("Expected discounted cost %f to beat linear cost %f", discounted, linear)
	}
}

// discountDataSet is the lead-time scenario with a quantity discount on P1:
// full price up to 10 units, 20% off every unit above.
func discountDataSet(t *testing.T) *DataSet {
	t.Helper()
	data := singleLaneDataSet(t)
	data.Products = []*entities.Product{
		mustProduct(t, "P1", map[entities.SupplierID]float64{"S1": 2}, 10, 5,
			&entities.DiscountPolicy{Threshold: 10, Rate: 0.2}),
	}
	return data
}

func TestDiscountPlanner_AppliesDiscountAboveThreshold(t *testing.T) {
	planner := NewDiscountPlanner(testEngine())
	solution := solveOrSkip(t, planner, discountDataSet(t))

	if solution.Status != StatusOptimal {
		t.Fatalf("Expected status %s, got %s (%s)", StatusOptimal, solution.Status, solution.Message)
	}

	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; math.Abs(got-20) > 1e-6 {
		t.Errorf("Expected order of 20 units in period 0, got %f", got)
	}
	if got := solution.Shipments[OrderKey{Product: "P1", Supplier: "S1", Period: 1}]; math.Abs(got-20) > 1e-6 {
		t.Errorf("Expected arrival of 20 units in period 1, got %f", got)
	}

	// Procurement charged piecewise plus per-unit logistics; the discount
	// planner carries no fixed charge.
	want := PiecewiseOrderCost(20, 2, 10, 0.2) + 20*0.5
	if math.Abs(solution.Objective-want) > 1e-6 {
		t.Errorf("Expected objective %f, got %f", want, solution.Objective)
	}
}

func TestDiscountPlanner_LinearWithoutPolicy(t *testing.T) {
	// No discount policy: the formulation degenerates to plain per-unit
	// pricing and must match it exactly.
	planner := NewDiscountPlanner(testEngine())
	solution := solveOrSkip(t, planner, singleLaneDataSet(t))

	if solution.Status != StatusOptimal {
		t.Fatalf("Expected status %s, got %s", StatusOptimal, solution.Status)
	}
	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; math.Abs(got-20) > 1e-6 {
		t.Errorf("Expected order of 20 units in period 0, got %f", got)
	}

	want := 20*2.0 + 20*0.5
	if math.Abs(solution.Objective-want) > 1e-6 {
		t.Errorf("Expected objective %f, got %f", want, solution.Objective)
	}
}

func TestDiscountPlanner_RelaxesMOQ(t *testing.T) {
	// Demand of 2 against an MOQ of 5: the discount planner works on
	// continuous quantities and may order below the minimum.
	data := discountDataSet(t)
	data.Demand = []*entities.Demand{
		mustDemand(t, "P1", 0, 0),
		mustDemand(t, "P1", 1, 2),
	}

	planner := NewDiscountPlanner(testEngine())
	solution := solveOrSkip(t, planner, data)

	if solution.Status != StatusOptimal {
		t.Fatalf("Expected status %s, got %s", StatusOptimal, solution.Status)
	}
	if got := solution.Procurement[OrderKey{Product: "P1", Supplier: "S1", Period: 0}]; math.Abs(got-2) > 1e-6 {
		t.Errorf("Expected order of exactly 2 units, got %f", got)
	}
}

func TestDiscountPlanner_DensePlan(t *testing.T) {
	planner := NewDiscountPlanner(testEngine())
	solution := solveOrSkip(t, planner, discountDataSet(t))

	// 1 product x 1 supplier x 2 periods, zeros included
	if len(solution.Procurement) != 2 {
		t.Errorf("Expected 2 procurement entries, got %d", len(solution.Procurement))
	}
}

func TestClampTiny(t *testing.T) {
	if got := clampTiny(1e-12); got != 0 {
		t.Errorf("Expected solver noise clamped to 0, got %g", got)
	}
	if got := clampTiny(-1e-12); got != 0 {
		t.Errorf("Expected negative noise clamped to 0, got %g", got)
	}
	if got := clampTiny(0.5); got != 0.5 {
		t.Errorf("Expected real value preserved, got %g", got)
	}
}
