package planning

import (
	"testing"

	"github.com/procurer/procurer/pkg/domain/entities"
)

func mustProduct(t *testing.T, id entities.ProductID, costs map[entities.SupplierID]float64,
	expiration int, moq int64, discount *entities.DiscountPolicy) *entities.Product {
	t.Helper()
	product, err := entities.NewProduct(id, string(id), costs, expiration, moq, discount)
	if err != nil {
		t.Fatalf("NewProduct(%s) failed: %v", id, err)
	}
	return product
}

func mustSupplier(t *testing.T, id entities.SupplierID, offered []entities.ProductID,
	leadTimes map[entities.ProductID]int) *entities.Supplier {
	t.Helper()
	supplier, err := entities.NewSupplier(id, string(id), offered, leadTimes)
	if err != nil {
		t.Fatalf("NewSupplier(%s) failed: %v", id, err)
	}
	return supplier
}

func mustDemand(t *testing.T, product entities.ProductID, period entities.Period, qty float64) *entities.Demand {
	t.Helper()
	demand, err := entities.NewDemand(product, period, qty)
	if err != nil {
		t.Fatalf("NewDemand(%s, %d) failed: %v", product, period, err)
	}
	return demand
}

func mustPolicy(t *testing.T, product entities.ProductID, initial, holding, capacity, safety float64) *entities.InventoryPolicy {
	t.Helper()
	policy, err := entities.NewInventoryPolicy(product, initial, holding, capacity, safety)
	if err != nil {
		t.Fatalf("NewInventoryPolicy(%s) failed: %v", product, err)
	}
	return policy
}

func mustLane(t *testing.T, supplier entities.SupplierID, product entities.ProductID,
	perUnit, fixed float64) *entities.LogisticsCost {
	t.Helper()
	lane, err := entities.NewLogisticsCost(supplier, product, perUnit, fixed)
	if err != nil {
		t.Fatalf("NewLogisticsCost(%s, %s) failed: %v", supplier, product, err)
	}
	return lane
}

// singleLaneDataSet builds the canonical end-to-end scenario: one product, one
// supplier with lead time 1, MOQ 5, no demand in period 0 and 20 units in
// period 1, zero initial stock and zero safety stock.
func singleLaneDataSet(t *testing.T) *DataSet {
	t.Helper()
	return &DataSet{
		Products: []*entities.Product{
			mustProduct(t, "P1", map[entities.SupplierID]float64{"S1": 2}, 10, 5, nil),
		},
		Suppliers: []*entities.Supplier{
			mustSupplier(t, "S1", []entities.ProductID{"P1"}, map[entities.ProductID]int{"P1": 1}),
		},
		Demand: []*entities.Demand{
			mustDemand(t, "P1", 0, 0),
			mustDemand(t, "P1", 1, 20),
		},
		Inventory: []*entities.InventoryPolicy{
			mustPolicy(t, "P1", 0, 0.1, 1000, 0),
		},
		Logistics: []*entities.LogisticsCost{
			mustLane(t, "S1", "P1", 0.5, 3),
		},
	}
}
