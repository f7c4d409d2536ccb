package planning

import (
	"github.com/shopspring/decimal"
)

// KPIs are the performance metrics derived from a solution and its input
// data. Money figures are exact decimals; ratios are plain floats.
type KPIs struct {
	TotalProcurementCost decimal.Decimal
	TotalLogisticsCost   decimal.Decimal
	TotalHoldingCost     decimal.Decimal
	// ServiceLevel is total supplied / total demand, 1.0 when there is no
	// demand
	ServiceLevel float64
	// InventoryTurnover is total demand / average end-of-period inventory
	InventoryTurnover float64
	// Obsolescence is stock left at the end of the horizon in excess of
	// each product's total demand
	Obsolescence float64
	// UnmetDemand is demand the plan leaves unserved
	UnmetDemand float64
}

// ComputeKPIs calculates the metrics for a solution against the data it
// was planned from.
func ComputeKPIs(solution *Solution, data *DataSet) KPIs {
	ix := BuildIndex(data)
	kpis := KPIs{
		TotalProcurementCost: decimal.Zero,
		TotalLogisticsCost:   decimal.Zero,
		TotalHoldingCost:     decimal.Zero,
	}

	totalDemand := 0.0
	for _, period := range ix.Periods {
		for _, product := range ix.ProductIDs {
			totalDemand += ix.DemandAt(product, period)
		}
	}

	totalSupplied := 0.0
	for key, qty := range solution.Procurement {
		if qty <= 0 {
			continue
		}
		totalSupplied += qty
		amount := decimal.NewFromFloat(qty)
		if product, ok := ix.Products[key.Product]; ok {
			if unitCost, priced := product.UnitCost(key.Supplier); priced {
				kpis.TotalProcurementCost = kpis.TotalProcurementCost.
					Add(amount.Mul(decimal.NewFromFloat(unitCost)))
			}
		}
		if lane, ok := ix.Lane(key.Supplier, key.Product); ok {
			kpis.TotalLogisticsCost = kpis.TotalLogisticsCost.
				Add(amount.Mul(decimal.NewFromFloat(lane.CostPerUnit))).
				Add(decimal.NewFromFloat(lane.FixedCost))
		}
	}

	sumInventory := 0.0
	for key, qty := range solution.Inventory {
		sumInventory += qty
		if policy, ok := ix.Policies[key.Product]; ok {
			kpis.TotalHoldingCost = kpis.TotalHoldingCost.
				Add(decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(policy.HoldingCost)))
		}
	}

	if totalDemand > 0 {
		kpis.ServiceLevel = totalSupplied / totalDemand
	} else {
		kpis.ServiceLevel = 1.0
	}

	if len(solution.Inventory) > 0 {
		avgInventory := sumInventory / float64(len(solution.Inventory))
		if avgInventory > 0 {
			kpis.InventoryTurnover = totalDemand / avgInventory
		}
	}

	if lastPeriod, ok := ix.LastPeriod(); ok {
		for _, product := range ix.ProductIDs {
			endStock := solution.Inventory[StockKey{Product: product, Period: lastPeriod}]
			excess := endStock - ix.TotalDemand(product)
			if excess > 0 {
				kpis.Obsolescence += excess
			}
		}
	}

	kpis.UnmetDemand = solution.TotalUnmetDemand()

	return kpis
}
