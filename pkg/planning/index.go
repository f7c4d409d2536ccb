package planning

import (
	"sort"

	"github.com/procurer/procurer/pkg/domain/entities"
)

// LaneKey identifies a supplier-product pair
type LaneKey struct {
	Supplier entities.SupplierID
	Product  entities.ProductID
}

// Index holds the fast-lookup structures shared by all planners. Building
// it is a pure function of the DataSet: identical collections produce an
// identical index regardless of input ordering.
type Index struct {
	Products  map[entities.ProductID]*entities.Product
	Suppliers map[entities.SupplierID]*entities.Supplier
	Policies  map[entities.ProductID]*entities.InventoryPolicy
	Demand    map[StockKey]float64
	Logistics map[LaneKey]*entities.LogisticsCost

	// ProductIDs and SupplierIDs are sorted for deterministic iteration
	ProductIDs  []entities.ProductID
	SupplierIDs []entities.SupplierID
	// Periods is the sorted set of distinct periods appearing in demand;
	// it defines the planning horizon for all planners.
	Periods []entities.Period

	periodSet map[entities.Period]struct{}
}

// BuildIndex derives the lookup structures for a validated DataSet
func BuildIndex(data *DataSet) *Index {
	ix := &Index{
		Products:  make(map[entities.ProductID]*entities.Product, len(data.Products)),
		Suppliers: make(map[entities.SupplierID]*entities.Supplier, len(data.Suppliers)),
		Policies:  make(map[entities.ProductID]*entities.InventoryPolicy, len(data.Inventory)),
		Demand:    make(map[StockKey]float64, len(data.Demand)),
		Logistics: make(map[LaneKey]*entities.LogisticsCost, len(data.Logistics)),
		periodSet: make(map[entities.Period]struct{}),
	}

	for _, product := range data.Products {
		ix.Products[product.ID] = product
		ix.ProductIDs = append(ix.ProductIDs, product.ID)
	}
	sort.Slice(ix.ProductIDs, func(a, b int) bool { return ix.ProductIDs[a] < ix.ProductIDs[b] })

	for _, supplier := range data.Suppliers {
		ix.Suppliers[supplier.ID] = supplier
		ix.SupplierIDs = append(ix.SupplierIDs, supplier.ID)
	}
	sort.Slice(ix.SupplierIDs, func(a, b int) bool { return ix.SupplierIDs[a] < ix.SupplierIDs[b] })

	for _, policy := range data.Inventory {
		ix.Policies[policy.ProductID] = policy
	}

	for _, demand := range data.Demand {
		key := StockKey{Product: demand.ProductID, Period: demand.Period}
		ix.Demand[key] += demand.ExpectedQuantity
		if _, seen := ix.periodSet[demand.Period]; !seen {
			ix.periodSet[demand.Period] = struct{}{}
			ix.Periods = append(ix.Periods, demand.Period)
		}
	}
	sort.Slice(ix.Periods, func(a, b int) bool { return ix.Periods[a] < ix.Periods[b] })

	for _, lane := range data.Logistics {
		ix.Logistics[LaneKey{Supplier: lane.SupplierID, Product: lane.ProductID}] = lane
	}

	return ix
}

// DemandAt returns expected demand for the product in the period, 0 when
// no demand record exists.
func (ix *Index) DemandAt(product entities.ProductID, period entities.Period) float64 {
	return ix.Demand[StockKey{Product: product, Period: period}]
}

// TotalDemand sums expected demand for the product across the horizon
func (ix *Index) TotalDemand(product entities.ProductID) float64 {
	var total float64
	for _, period := range ix.Periods {
		total += ix.DemandAt(product, period)
	}
	return total
}

// LeadTime returns the order-to-arrival lead time for the supplier-product
// pair, 0 when the supplier is unknown or no lead time is specified.
func (ix *Index) LeadTime(supplier entities.SupplierID, product entities.ProductID) int {
	s, ok := ix.Suppliers[supplier]
	if !ok {
		return 0
	}
	return s.LeadTime(product)
}

// Lane returns the logistics cost record for the supplier-product pair
func (ix *Index) Lane(supplier entities.SupplierID, product entities.ProductID) (*entities.LogisticsCost, bool) {
	lane, ok := ix.Logistics[LaneKey{Supplier: supplier, Product: product}]
	return lane, ok
}

// HasPeriod reports whether the period appears in the demand horizon
func (ix *Index) HasPeriod(period entities.Period) bool {
	_, ok := ix.periodSet[period]
	return ok
}

// FirstPeriod returns the earliest period of the horizon. The boolean is
// false when the horizon is empty.
func (ix *Index) FirstPeriod() (entities.Period, bool) {
	if len(ix.Periods) == 0 {
		return 0, false
	}
	return ix.Periods[0], true
}

// LastPeriod returns the latest period of the horizon. The boolean is
// false when the horizon is empty.
func (ix *Index) LastPeriod() (entities.Period, bool) {
	if len(ix.Periods) == 0 {
		return 0, false
	}
	return ix.Periods[len(ix.Periods)-1], true
}

// CanOrder reports whether the supplier both offers the product and quotes
// a unit price for it. Pairs failing this act as cost infinity and are
// pinned to zero in every plan.
func (ix *Index) CanOrder(supplier entities.SupplierID, product entities.ProductID) bool {
	s, ok := ix.Suppliers[supplier]
	if !ok || !s.Offers(product) {
		return false
	}
	p, ok := ix.Products[product]
	if !ok {
		return false
	}
	_, priced := p.UnitCost(supplier)
	return priced
}

// emptyProcurement returns a dense all-zero procurement plan covering every
// product/supplier/period triple of the horizon.
func (ix *Index) emptyProcurement() ProcurementPlan {
	plan := make(ProcurementPlan, len(ix.ProductIDs)*len(ix.SupplierIDs)*len(ix.Periods))
	for _, product := range ix.ProductIDs {
		for _, supplier := range ix.SupplierIDs {
			for _, period := range ix.Periods {
				plan[OrderKey{Product: product, Supplier: supplier, Period: period}] = 0
			}
		}
	}
	return plan
}
