package planning

import (
	"sort"

	"github.com/procurer/procurer/pkg/domain/entities"
)

// Status is the terminal state of a planning attempt. Infeasibility and
// solver failure are reported through the status, never as an error.
type Status string

const (
	StatusOptimal     Status = "Optimal"
	StatusSuboptimal  Status = "Suboptimal"
	StatusInfeasible  Status = "Infeasible"
	StatusTimedOut    Status = "TimedOut"
	StatusSolverError Status = "SolverError"
	StatusHeuristic   Status = "Heuristic"
)

// OrderKey identifies a procurement or shipment quantity. For procurement
// plans Period is the order period; for shipments plans it is the arrival
// period.
type OrderKey struct {
	Product  entities.ProductID
	Supplier entities.SupplierID
	Period   entities.Period
}

// StockKey identifies a per-product, per-period quantity
type StockKey struct {
	Product entities.ProductID
	Period  entities.Period
}

// ProcurementPlan maps (product, supplier, order period) to ordered units.
// Plans are dense: every product/supplier/period triple is present, zero
// where no order is placed.
type ProcurementPlan map[OrderKey]float64

// ShipmentsPlan maps (product, supplier, arrival period) to arrived units.
// Only strictly positive arrivals inside the planning horizon are recorded.
type ShipmentsPlan map[OrderKey]float64

// InventoryPlan maps (product, period) to end-of-period on-hand stock
type InventoryPlan map[StockKey]float64

// OrderEntry is a single procurement or shipment line in canonical order
type OrderEntry struct {
	Product  entities.ProductID
	Supplier entities.SupplierID
	Period   entities.Period
	Quantity float64
}

// Solution is the canonical planner output consumed by KPI and reporting
// collaborators.
type Solution struct {
	Status    Status
	Objective float64 // total minimized cost, meaningful only when HasObjective
	// HasObjective is false for the heuristic planner and for failed solves
	HasObjective bool
	// Message carries solver failure detail when Status is StatusSolverError
	Message     string
	Procurement ProcurementPlan
	Shipments   ShipmentsPlan
	Inventory   InventoryPlan
	// UnmetDemand records demand the heuristic planner could not serve,
	// keyed by (product, period). Nil for the mathematical planners, whose
	// constraints always satisfy demand in a feasible plan.
	UnmetDemand map[StockKey]float64
}

// TotalUnmetDemand sums unmet demand across all products and periods
func (s *Solution) TotalUnmetDemand() float64 {
	var total float64
	for _, qty := range s.UnmetDemand {
		total += qty
	}
	return total
}

// OrderedEntries returns the procurement plan as a slice ordered by
// supplier, then product, then period.
func (p ProcurementPlan) OrderedEntries() []OrderEntry {
	return orderedEntries(p)
}

// OrderedEntries returns the shipments plan as a slice ordered by supplier,
// then product, then arrival period.
func (p ShipmentsPlan) OrderedEntries() []OrderEntry {
	return orderedEntries(p)
}

func orderedEntries(plan map[OrderKey]float64) []OrderEntry {
	entries := make([]OrderEntry, 0, len(plan))
	for key, qty := range plan {
		entries = append(entries, OrderEntry{
			Product:  key.Product,
			Supplier: key.Supplier,
			Period:   key.Period,
			Quantity: qty,
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Supplier != entries[b].Supplier {
			return entries[a].Supplier < entries[b].Supplier
		}
		if entries[a].Product != entries[b].Product {
			return entries[a].Product < entries[b].Product
		}
		return entries[a].Period < entries[b].Period
	})
	return entries
}
