package entities

import "fmt"

// ProductID uniquely identifies a product
type ProductID string

// SupplierID uniquely identifies a supplier
type SupplierID string

// Period is a discrete planning period index. Periods are totally ordered
// but do not have to start at zero or be contiguous.
type Period int

// DiscountPolicy defines a quantity discount for a product: the portion of
// an order above Threshold is charged at unit cost reduced by Rate.
type DiscountPolicy struct {
	Threshold float64
	Rate      float64
}

// Product represents a product that can be procured from suppliers
type Product struct {
	ID                 ProductID
	Name               string
	UnitCostBySupplier map[SupplierID]float64
	ExpirationPeriods  int
	MOQ                int64
	Discount           *DiscountPolicy // nil = no quantity discount
}

// NewProduct creates a validated Product
func NewProduct(id ProductID, name string, unitCosts map[SupplierID]float64,
	expirationPeriods int, moq int64, discount *DiscountPolicy) (*Product, error) {

	if id == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if expirationPeriods < 0 {
		return nil, fmt.Errorf("expiration periods cannot be negative, got %d", expirationPeriods)
	}
	if moq < 0 {
		return nil, fmt.Errorf("minimum order quantity cannot be negative, got %d", moq)
	}
	for supplier, cost := range unitCosts {
		if cost < 0 {
			return nil, fmt.Errorf("unit cost for supplier %s cannot be negative, got %f", supplier, cost)
		}
	}
	if discount != nil {
		if discount.Threshold < 0 {
			return nil, fmt.Errorf("discount threshold cannot be negative, got %f", discount.Threshold)
		}
		if discount.Rate < 0 || discount.Rate > 1 {
			return nil, fmt.Errorf("discount rate must be within [0, 1], got %f", discount.Rate)
		}
	}

	return &Product{
		ID:                 id,
		Name:               name,
		UnitCostBySupplier: unitCosts,
		ExpirationPeriods:  expirationPeriods,
		MOQ:                moq,
		Discount:           discount,
	}, nil
}

// UnitCost returns the unit price quoted by the given supplier. The second
// return value is false when the supplier has no quote for this product.
func (p *Product) UnitCost(supplier SupplierID) (float64, bool) {
	cost, ok := p.UnitCostBySupplier[supplier]
	return cost, ok
}

// DiscountTerms returns the discount threshold and rate, treating an absent
// policy as threshold 0 and rate 0 so the cost stays linear.
func (p *Product) DiscountTerms() (threshold, rate float64) {
	if p.Discount == nil {
		return 0, 0
	}
	return p.Discount.Threshold, p.Discount.Rate
}
