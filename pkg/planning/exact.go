package planning

import (
	"context"
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/solve"
)

// ExactPlanner builds a mixed-integer linear formulation of the procurement
// problem and hands it to the external solving engine. Decision variables:
// integer order quantities per (product, supplier, period), integer
// end-of-period inventory per (product, period), and a binary order
// indicator used to enforce MOQ and to charge fixed logistics cost.
//
// The inventory balance is lead-time aware: an order placed in period t
// becomes available in period t + lead_time(supplier, product).
type ExactPlanner struct {
	engine solve.Engine
}

// Verify interface compliance
var _ Planner = (*ExactPlanner)(nil)

// NewExactPlanner creates an exact planner backed by the given engine
func NewExactPlanner(engine solve.Engine) *ExactPlanner {
	return &ExactPlanner{engine: engine}
}

// Name returns the planner name
func (p *ExactPlanner) Name() string {
	return PlannerExact
}

// Solve assembles and solves the MILP, then decodes the assignment into a
// dense procurement plan, a shipments plan, and an inventory plan.
// Infeasibility is reported through Solution.Status, not as an error.
func (p *ExactPlanner) Solve(ctx context.Context, data *DataSet) (*Solution, error) {
	ix := BuildIndex(data)
	firstPeriod, ok := ix.FirstPeriod()
	if !ok {
		return emptySolution(ix, StatusOptimal), nil
	}

	model := mip.NewModel()
	model.Objective().SetMinimize()

	procure := make(map[OrderKey]mip.Int)
	placed := make(map[OrderKey]mip.Bool)
	inv := make(map[StockKey]mip.Int)

	for _, product := range ix.ProductIDs {
		prod := ix.Products[product]
		policy := ix.Policies[product]
		bigM := orderUpperBound(ix, product)

		for _, supplier := range ix.SupplierIDs {
			if !ix.CanOrder(supplier, product) {
				continue
			}
			unitCost, _ := prod.UnitCost(supplier)

			for _, period := range ix.Periods {
				key := OrderKey{Product: product, Supplier: supplier, Period: period}
				qty := model.NewInt(0, bigM)
				indicator := model.NewBool()
				procure[key] = qty
				placed[key] = indicator

				model.Objective().NewTerm(unitCost, qty)
				if lane, ok := ix.Lane(supplier, product); ok {
					model.Objective().NewTerm(lane.CostPerUnit, qty)
					if lane.FixedCost > 0 {
						model.Objective().NewTerm(lane.FixedCost, indicator)
					}
				}

				// MOQ linearization: either qty >= MOQ or qty == 0
				if prod.MOQ > 0 {
					atLeast := model.NewConstraint(mip.GreaterThanOrEqual, 0)
					atLeast.NewTerm(1, qty)
					atLeast.NewTerm(-float64(prod.MOQ), indicator)
				}
				atMost := model.NewConstraint(mip.LessThanOrEqual, 0)
				atMost.NewTerm(1, qty)
				atMost.NewTerm(-float64(bigM), indicator)
			}
		}

		for _, period := range ix.Periods {
			stock := model.NewInt(0, int64(math.Ceil(policy.WarehouseCapacity)))
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

			// Inventory balance:
			//   prev + arrivals(t) - demand(t) == inv(t)
			// where arrivals(t) are orders with order period + lead == t.
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
				key := OrderKey{Product: product, Supplier: supplier, Period: orderPeriod}
				if qty, ok := procure[key]; ok && ix.HasPeriod(orderPeriod) {
					balance.NewTerm(1, qty)
				}
			}

			capacity := model.NewConstraint(mip.LessThanOrEqual, policy.WarehouseCapacity)
			capacity.NewTerm(1, stock)

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

	for key, qty := range procure {
		units := math.Round(result.Value(qty))
		solution.Procurement[key] = units
		if units > 0 {
			arrival := key.Period + entities.Period(ix.LeadTime(key.Supplier, key.Product))
			if ix.HasPeriod(arrival) {
				arrivalKey := OrderKey{Product: key.Product, Supplier: key.Supplier, Period: arrival}
				solution.Shipments[arrivalKey] += units
			}
		}
	}
	for key, stock := range inv {
		solution.Inventory[key] = math.Round(result.Value(stock))
	}

	return solution, nil
}

// orderUpperBound computes the per-product big-M: no sensible order ever
// exceeds total horizon demand plus warehouse capacity, so the bound stays
// tight enough to avoid solver instability while never cutting off a
// genuine order.
func orderUpperBound(ix *Index, product entities.ProductID) int64 {
	policy := ix.Policies[product]
	prod := ix.Products[product]
	bound := int64(math.Ceil(ix.TotalDemand(product) + policy.WarehouseCapacity))
	if prod.MOQ > bound {
		bound = prod.MOQ
	}
	if bound < 1 {
		bound = 1
	}
	return bound
}

// emptySolution returns a solution with dense zero plans for an empty or
// trivially solved horizon.
func emptySolution(ix *Index, status Status) *Solution {
	return &Solution{
		Status:      status,
		Procurement: ix.emptyProcurement(),
		Shipments:   make(ShipmentsPlan),
		Inventory:   make(InventoryPlan),
	}
}
