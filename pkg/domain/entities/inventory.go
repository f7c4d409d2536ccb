package entities

import "fmt"

// InventoryPolicy represents per-product inventory parameters: starting
// stock, holding cost, and the hard bounds on end-of-period inventory.
type InventoryPolicy struct {
	ProductID         ProductID
	InitialStock      float64
	HoldingCost       float64 // cost per unit held per period
	WarehouseCapacity float64 // upper bound on end-of-period inventory
	SafetyStock       float64 // lower bound on end-of-period inventory
}

// NewInventoryPolicy creates a validated InventoryPolicy
func NewInventoryPolicy(productID ProductID, initialStock, holdingCost,
	warehouseCapacity, safetyStock float64) (*InventoryPolicy, error) {

	if productID == "" {
		return nil, fmt.Errorf("inventory product id cannot be empty")
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("initial stock cannot be negative, got %f", initialStock)
	}
	if holdingCost < 0 {
		return nil, fmt.Errorf("holding cost cannot be negative, got %f", holdingCost)
	}
	if warehouseCapacity < 0 {
		return nil, fmt.Errorf("warehouse capacity cannot be negative, got %f", warehouseCapacity)
	}
	if safetyStock < 0 {
		return nil, fmt.Errorf("safety stock cannot be negative, got %f", safetyStock)
	}
	if safetyStock > warehouseCapacity {
		return nil, fmt.Errorf("safety stock %f exceeds warehouse capacity %f", safetyStock, warehouseCapacity)
	}

	return &InventoryPolicy{
		ProductID:         productID,
		InitialStock:      initialStock,
		HoldingCost:       holdingCost,
		WarehouseCapacity: warehouseCapacity,
		SafetyStock:       safetyStock,
	}, nil
}
