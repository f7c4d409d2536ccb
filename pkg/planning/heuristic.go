package planning

import (
	"context"

	"github.com/procurer/procurer/pkg/domain/entities"
)

// HeuristicPlanner produces a feasible plan without invoking an external
// solver: a deterministic period-by-period simulation that reorders from
// the cheapest supplier whenever projected inventory falls below safety
// stock. It is intrinsically lead-time aware through a pending-shipment
// ledger, always returns some plan, and reports demand it could not serve
// instead of failing.
type HeuristicPlanner struct{}

// Verify interface compliance
var _ Planner = (*HeuristicPlanner)(nil)

// NewHeuristicPlanner creates a heuristic planner
func NewHeuristicPlanner() *HeuristicPlanner {
	return &HeuristicPlanner{}
}

// Name returns the planner name
func (p *HeuristicPlanner) Name() string {
	return PlannerHeuristic
}

// Solve runs the forward simulation. For each period in sorted order and
// each product in sorted order:
//  1. pending shipments arriving by this period are received
//  2. inventory is projected at the period an order placed now would
//     arrive: on hand, plus shipments due by then, minus demand through
//     that period
//  3. if the projection is below safety stock, exactly MOQ units are
//     ordered from the cheapest offering supplier, arriving after the
//     supplier's lead time; orders that could not arrive inside the
//     horizon or would overrun warehouse capacity are not placed
//  4. the current period's demand is deducted, floored at 0; the shortfall
//     is recorded as unmet demand
//  5. end-of-period inventory is recorded
func (p *HeuristicPlanner) Solve(ctx context.Context, data *DataSet) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix := BuildIndex(data)
	solution := &Solution{
		Status:      StatusHeuristic,
		Procurement: ix.emptyProcurement(),
		Shipments:   make(ShipmentsPlan),
		Inventory:   make(InventoryPlan),
		UnmetDemand: make(map[StockKey]float64),
	}
	lastPeriod, ok := ix.LastPeriod()
	if !ok {
		return solution, nil
	}

	onHand := make(map[entities.ProductID]float64, len(ix.ProductIDs))
	for _, product := range ix.ProductIDs {
		onHand[product] = ix.Policies[product].InitialStock
	}
	// pending arrivals keyed by (product, scheduled arrival period)
	pending := make(map[StockKey]float64)

	for _, period := range ix.Periods {
		for _, product := range ix.ProductIDs {
			policy := ix.Policies[product]
			prod := ix.Products[product]

			// 1. receive shipments due by now and clear their ledger
			// entries (arrival periods are literal order+lead values and
			// may fall between observed periods)
			onHand[product] += drainPending(pending, product, period)

			// 2.-3. reorder decision. The projection looks ahead to the
			// arrival period of an order placed now, so the order lands
			// before the dip it is meant to cover. An order that could
			// not arrive inside the horizon serves no demand and is
			// never placed.
			if prod.MOQ > 0 {
				if supplier, found := cheapestSupplier(ix, product); found {
					arrival := period + entities.Period(ix.LeadTime(supplier, product))
					if arrival <= lastPeriod {
						projected := onHand[product] + pendingBy(pending, product, arrival)
						for _, due := range ix.Periods {
							if due >= period && due <= arrival {
								projected -= ix.DemandAt(product, due)
							}
						}
						withOrder := onHand[product] + pendingTotal(pending, product) + float64(prod.MOQ)
						if projected < policy.SafetyStock && withOrder <= policy.WarehouseCapacity {
							qty := float64(prod.MOQ)
							solution.Procurement[OrderKey{Product: product, Supplier: supplier, Period: period}] += qty
							solution.Shipments[OrderKey{Product: product, Supplier: supplier, Period: arrival}] += qty
							if arrival == period {
								onHand[product] += qty
							} else {
								pending[StockKey{Product: product, Period: arrival}] += qty
							}
						}
					}
				}
			}

			// 4. deduct demand; unmet demand is dropped, not backlogged
			demand := ix.DemandAt(product, period)
			if demand > onHand[product] {
				solution.UnmetDemand[StockKey{Product: product, Period: period}] = demand - onHand[product]
				onHand[product] = 0
			} else {
				onHand[product] -= demand
			}

			// 5. record end-of-period inventory
			solution.Inventory[StockKey{Product: product, Period: period}] = onHand[product]
		}
	}

	return solution, nil
}

// cheapestSupplier returns the offering supplier with the lowest unit cost.
// Supplier ids are scanned in sorted order so ties resolve to the smallest
// id; suppliers without an offering or a quote are excluded.
func cheapestSupplier(ix *Index, product entities.ProductID) (entities.SupplierID, bool) {
	var (
		best     entities.SupplierID
		bestCost float64
		found    bool
	)
	prod := ix.Products[product]
	for _, supplier := range ix.SupplierIDs {
		if !ix.CanOrder(supplier, product) {
			continue
		}
		unitCost, _ := prod.UnitCost(supplier)
		if !found || unitCost < bestCost {
			best = supplier
			bestCost = unitCost
			found = true
		}
	}
	return best, found
}

// drainPending receives and clears all ledger entries due by the period
func drainPending(pending map[StockKey]float64, product entities.ProductID, period entities.Period) float64 {
	var arrived float64
	for key, qty := range pending {
		if key.Product == product && key.Period <= period {
			arrived += qty
			delete(pending, key)
		}
	}
	return arrived
}

// pendingBy sums ledger entries due by the period without clearing them
func pendingBy(pending map[StockKey]float64, product entities.ProductID, period entities.Period) float64 {
	var due float64
	for key, qty := range pending {
		if key.Product == product && key.Period <= period {
			due += qty
		}
	}
	return due
}

// pendingTotal sums all outstanding ledger entries for the product
func pendingTotal(pending map[StockKey]float64, product entities.ProductID) float64 {
	var total float64
	for key, qty := range pending {
		if key.Product == product {
			total += qty
		}
	}
	return total
}
