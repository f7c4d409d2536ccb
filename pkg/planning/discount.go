package planning

import (
	"context"
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/solve"
)

// DiscountPlanner models piecewise procurement cost for quantity discounts:
// units up to a product's discount threshold are charged at full unit cost,
// units above it at unit cost reduced by the discount rate. Order and
// inventory quantities are continuous, the inventory balance is lead-time
// aware, and MOQ is relaxed to simple non-negativity.
//
// The piecewise cost is expressed exactly with two segment variables per
// order: base in [0, threshold] and excess above it, with a binary forcing
// the base segment to saturate before any excess accrues. Without that
// binary a minimizing solver would buy the cheaper excess segment first.
type DiscountPlanner struct {
	engine solve.Engine
}

// Verify interface compliance
var _ Planner = (*DiscountPlanner)(nil)

// segment holds the variable pair encoding one piecewise order quantity
type segment struct {
	base   mip.Float // nil when the product has no discount policy
	excess mip.Float
}

// NewDiscountPlanner creates a discount-aware planner backed by the engine
func NewDiscountPlanner(engine solve.Engine) *DiscountPlanner {
	return &DiscountPlanner{engine: engine}
}

// Name returns the planner name
func (p *DiscountPlanner) Name() string {
	return PlannerDiscount
}

// Solve assembles and solves the formulation, then decodes a complete
// (densified) procurement plan, the derived shipments plan, and the
// inventory plan. Every (product, supplier, period) triple appears in the
// procurement plan, zero where no order is placed.
func (p *DiscountPlanner) Solve(ctx context.Context, data *DataSet) (*Solution, error) {
	ix := BuildIndex(data)
	firstPeriod, ok := ix.FirstPeriod()
	if !ok {
		return emptySolution(ix, StatusOptimal), nil
	}

	model := mip.NewModel()
	model.Objective().SetMinimize()

	orders := make(map[OrderKey]segment)
	inv := make(map[StockKey]mip.Float)

	for _, product := range ix.ProductIDs {
		prod := ix.Products[product]
		policy := ix.Policies[product]
		threshold, rate := prod.DiscountTerms()
		bigM := float64(orderUpperBound(ix, product))

		for _, supplier := range ix.SupplierIDs {
			if !ix.CanOrder(supplier, product) {
				continue
			}
			unitCost, _ := prod.UnitCost(supplier)
			lanePerUnit := 0.0
			if lane, ok := ix.Lane(supplier, product); ok {
				lanePerUnit = lane.CostPerUnit
			}

			for _, period := range ix.Periods {
				key := OrderKey{Product: product, Supplier: supplier, Period: period}

				if threshold > 0 && rate > 0 {
					base := model.NewFloat(0, threshold)
					excess := model.NewFloat(0, bigM)
					saturated := model.NewBool()
					orders[key] = segment{base: base, excess: excess}

					// excess can only accrue once base == threshold
					gate := model.NewConstraint(mip.LessThanOrEqual, 0)
					gate.NewTerm(1, excess)
					gate.NewTerm(-bigM, saturated)
					fill := model.NewConstraint(mip.GreaterThanOrEqual, 0)
					fill.NewTerm(1, base)
					fill.NewTerm(-threshold, saturated)

					model.Objective().NewTerm(unitCost+lanePerUnit, base)
					model.Objective().NewTerm(unitCost*(1-rate)+lanePerUnit, excess)
				} else {
					qty := model.NewFloat(0, bigM)
					orders[key] = segment{excess: qty}
					model.Objective().NewTerm(unitCost+lanePerUnit, qty)
				}
			}
		}

		for _, period := range ix.Periods {
			stock := model.NewFloat(0, policy.WarehouseCapacity)
			inv[StockKey{Product: product, Period: period}] = stock
			model.Objective().NewTerm(policy.HoldingCost, stock)
		}
	}

	for _, product := range ix.ProductIDs {
		prod := ix.Products[product]
		policy := ix.Policies[product]

		var prevPeriod entities.Period
		for pi, period := range ix.Periods {
			stock := inv[StockKey{Product: product, Period: period}]

			// Lead-time aware balance: period-t inventory reflects only
			// orders whose order period + lead time equals t.
			rhs := ix.DemandAt(product, period)
			if pi == 0 {
				rhs -= policy.InitialStock
			}
			balance := model.NewConstraint(mip.Equal, rhs)
			balance.NewTerm(-1, stock)
			if pi > 0 {
				balance.NewTerm(1, inv[StockKey{Product: product, Period: prevPeriod}])
			}
			for _, supplier := range ix.SupplierIDs {
				lead := ix.LeadTime(supplier, product)
				orderPeriod := period - entities.Period(lead)
				if !ix.HasPeriod(orderPeriod) {
					continue
				}
				key := OrderKey{Product: product, Supplier: supplier, Period: orderPeriod}
				if seg, ok := orders[key]; ok {
					if seg.base != nil {
						balance.NewTerm(1, seg.base)
					}
					balance.NewTerm(1, seg.excess)
				}
			}

			safety := model.NewConstraint(mip.GreaterThanOrEqual, policy.SafetyStock)
			safety.NewTerm(1, stock)

			if period > firstPeriod+entities.Period(prod.ExpirationPeriods) {
				expired := model.NewConstraint(mip.Equal, 0)
				expired.NewTerm(1, stock)
			}

			prevPeriod = period
		}
	}

	result, err := p.engine.Solve(ctx, model)
	if err != nil {
		return &Solution{Status: StatusSolverError, Message: err.Error()}, nil
	}

	solution := &Solution{Status: statusFromEngine(result.Status)}
	if !result.HasValues() {
		return solution, nil
	}

	solution.Objective = result.Objective
	solution.HasObjective = true
	solution.Procurement = ix.emptyProcurement()
	solution.Shipments = make(ShipmentsPlan)
	solution.Inventory = make(InventoryPlan, len(inv))

	for key, seg := range orders {
		qty := result.Value(seg.excess)
		if seg.base != nil {
			qty += result.Value(seg.base)
		}
		qty = clampTiny(qty)
		solution.Procurement[key] = qty
		if qty > 0 {
			arrival := key.Period + entities.Period(ix.LeadTime(key.Supplier, key.Product))
			if ix.HasPeriod(arrival) {
				arrivalKey := OrderKey{Product: key.Product, Supplier: key.Supplier, Period: arrival}
				solution.Shipments[arrivalKey] += qty
			}
		}
	}
	for key, stock := range inv {
		solution.Inventory[key] = clampTiny(result.Value(stock))
	}

	return solution, nil
}

// PiecewiseOrderCost returns the procurement cost of an order of qty units
// under the given discount terms: units up to threshold at unitCost, units
// above it at unitCost*(1-rate). This is the cost function the discount
// formulation encodes.
func PiecewiseOrderCost(qty, unitCost, threshold, rate float64) float64 {
	if qty <= threshold {
		return qty * unitCost
	}
	return threshold*unitCost + (qty-threshold)*unitCost*(1-rate)
}

// clampTiny zeroes out float noise below the solver tolerance
func clampTiny(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}
