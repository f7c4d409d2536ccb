package entities

import "fmt"

// LogisticsCost represents transport cost for a supplier-product pair
type LogisticsCost struct {
	SupplierID  SupplierID
	ProductID   ProductID
	CostPerUnit float64
	FixedCost   float64 // charged once per placed order
}

// NewLogisticsCost creates a validated LogisticsCost
func NewLogisticsCost(supplierID SupplierID, productID ProductID,
	costPerUnit, fixedCost float64) (*LogisticsCost, error) {

	if supplierID == "" {
		return nil, fmt.Errorf("logistics supplier id cannot be empty")
	}
	if productID == "" {
		return nil, fmt.Errorf("logistics product id cannot be empty")
	}
	if costPerUnit < 0 {
		return nil, fmt.Errorf("cost per unit cannot be negative, got %f", costPerUnit)
	}
	if fixedCost < 0 {
		return nil, fmt.Errorf("fixed cost cannot be negative, got %f", fixedCost)
	}

	return &LogisticsCost{
		SupplierID:  supplierID,
		ProductID:   productID,
		CostPerUnit: costPerUnit,
		FixedCost:   fixedCost,
	}, nil
}
