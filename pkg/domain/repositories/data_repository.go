package repositories

import (
	"context"

	"github.com/procurer/procurer/pkg/domain/entities"
)

// DataRepository provides access to the five planning entity collections.
// Implementations return complete snapshots; planning sessions never
// mutate or incrementally reload them.
type DataRepository interface {
	Products(ctx context.Context) ([]*entities.Product, error)
	Suppliers(ctx context.Context) ([]*entities.Supplier, error)
	Demand(ctx context.Context) ([]*entities.Demand, error)
	InventoryPolicies(ctx context.Context) ([]*entities.InventoryPolicy, error)
	LogisticsCosts(ctx context.Context) ([]*entities.LogisticsCost, error)
}
