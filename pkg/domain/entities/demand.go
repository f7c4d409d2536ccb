package entities

import "fmt"

// Demand represents the expected demand for a product in a given period
type Demand struct {
	ProductID        ProductID
	Period           Period
	ExpectedQuantity float64
}

// NewDemand creates a validated Demand
func NewDemand(productID ProductID, period Period, expectedQuantity float64) (*Demand, error) {
	if productID == "" {
		return nil, fmt.Errorf("demand product id cannot be empty")
	}
	if expectedQuantity < 0 {
		return nil, fmt.Errorf("expected quantity cannot be negative, got %f", expectedQuantity)
	}

	return &Demand{
		ProductID:        productID,
		Period:           period,
		ExpectedQuantity: expectedQuantity,
	}, nil
}
