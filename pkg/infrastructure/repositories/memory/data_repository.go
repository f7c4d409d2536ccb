package memory

import (
	"context"

	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/domain/repositories"
)

// DataRepository provides in-memory storage for the planning collections
type DataRepository struct {
	products  []*entities.Product
	suppliers []*entities.Supplier
	demand    []*entities.Demand
	inventory []*entities.InventoryPolicy
	logistics []*entities.LogisticsCost
}

// NewDataRepository creates an empty in-memory repository
func NewDataRepository() *DataRepository {
	return &DataRepository{}
}

// Verify interface compliance
var _ repositories.DataRepository = (*DataRepository)(nil)

// AddProduct adds a product to the repository
func (r *DataRepository) AddProduct(product *entities.Product) {
	r.products = append(r.products, product)
}

// AddSupplier adds a supplier to the repository
func (r *DataRepository) AddSupplier(supplier *entities.Supplier) {
	r.suppliers = append(r.suppliers, supplier)
}

// AddDemand adds a demand record to the repository
func (r *DataRepository) AddDemand(demand *entities.Demand) {
	r.demand = append(r.demand, demand)
}

// AddInventoryPolicy adds an inventory policy to the repository
func (r *DataRepository) AddInventoryPolicy(policy *entities.InventoryPolicy) {
	r.inventory = append(r.inventory, policy)
}

// AddLogisticsCost adds a logistics cost record to the repository
func (r *DataRepository) AddLogisticsCost(cost *entities.LogisticsCost) {
	r.logistics = append(r.logistics, cost)
}

// Products returns all products
func (r *DataRepository) Products(ctx context.Context) ([]*entities.Product, error) {
	return r.products, nil
}

// Suppliers returns all suppliers
func (r *DataRepository) Suppliers(ctx context.Context) ([]*entities.Supplier, error) {
	return r.suppliers, nil
}

// Demand returns all demand records
func (r *DataRepository) Demand(ctx context.Context) ([]*entities.Demand, error) {
	return r.demand, nil
}

// InventoryPolicies returns all inventory policies
func (r *DataRepository) InventoryPolicies(ctx context.Context) ([]*entities.InventoryPolicy, error) {
	return r.inventory, nil
}

// LogisticsCosts returns all logistics cost records
func (r *DataRepository) LogisticsCosts(ctx context.Context) ([]*entities.LogisticsCost, error) {
	return r.logistics, nil
}
