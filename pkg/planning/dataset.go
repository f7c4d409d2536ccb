package planning

import (
	"fmt"

	"github.com/procurer/procurer/pkg/domain/entities"
)

// DataSet is the immutable input snapshot for one planning session: the
// five entity collections, loaded once and read-only for the duration of a
// solve.
type DataSet struct {
	Products  []*entities.Product
	Suppliers []*entities.Supplier
	Demand    []*entities.Demand
	Inventory []*entities.InventoryPolicy
	Logistics []*entities.LogisticsCost
}

// Validate checks referential consistency: every demand and inventory
// record must reference a known product, and every logistics record a known
// supplier and product. Planners require a validated DataSet.
func (d *DataSet) Validate() error {
	productIDs := make(map[entities.ProductID]struct{}, len(d.Products))
	for _, product := range d.Products {
		if _, dup := productIDs[product.ID]; dup {
			return fmt.Errorf("duplicate product id: %s", product.ID)
		}
		productIDs[product.ID] = struct{}{}
	}

	supplierIDs := make(map[entities.SupplierID]struct{}, len(d.Suppliers))
	for _, supplier := range d.Suppliers {
		if _, dup := supplierIDs[supplier.ID]; dup {
			return fmt.Errorf("duplicate supplier id: %s", supplier.ID)
		}
		supplierIDs[supplier.ID] = struct{}{}
	}

	for _, demand := range d.Demand {
		if _, ok := productIDs[demand.ProductID]; !ok {
			return fmt.Errorf("demand references unknown product id: %s", demand.ProductID)
		}
	}

	seenPolicies := make(map[entities.ProductID]struct{}, len(d.Inventory))
	for _, policy := range d.Inventory {
		if _, ok := productIDs[policy.ProductID]; !ok {
			return fmt.Errorf("inventory references unknown product id: %s", policy.ProductID)
		}
		if _, dup := seenPolicies[policy.ProductID]; dup {
			return fmt.Errorf("duplicate inventory policy for product: %s", policy.ProductID)
		}
		seenPolicies[policy.ProductID] = struct{}{}
	}

	for _, lane := range d.Logistics {
		if _, ok := supplierIDs[lane.SupplierID]; !ok {
			return fmt.Errorf("logistics cost references unknown supplier id: %s", lane.SupplierID)
		}
		if _, ok := productIDs[lane.ProductID]; !ok {
			return fmt.Errorf("logistics cost references unknown product id: %s", lane.ProductID)
		}
	}

	for _, product := range d.Products {
		if _, ok := seenPolicies[product.ID]; !ok {
			return fmt.Errorf("product %s has no inventory policy", product.ID)
		}
	}

	return nil
}
