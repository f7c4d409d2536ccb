package entities

import "fmt"

// Supplier represents a supplier that offers products
type Supplier struct {
	ID              SupplierID
	Name            string
	ProductsOffered []ProductID
	LeadTimes       map[ProductID]int // periods between order and arrival, absent = 0

	offered map[ProductID]struct{}
}

// NewSupplier creates a validated Supplier
func NewSupplier(id SupplierID, name string, productsOffered []ProductID,
	leadTimes map[ProductID]int) (*Supplier, error) {

	if id == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	for product, lead := range leadTimes {
		if lead < 0 {
			return nil, fmt.Errorf("lead time for product %s cannot be negative, got %d", product, lead)
		}
	}

	offered := make(map[ProductID]struct{}, len(productsOffered))
	for _, product := range productsOffered {
		if product == "" {
			return nil, fmt.Errorf("offered product id cannot be empty")
		}
		offered[product] = struct{}{}
	}

	return &Supplier{
		ID:              id,
		Name:            name,
		ProductsOffered: productsOffered,
		LeadTimes:       leadTimes,
		offered:         offered,
	}, nil
}

// Offers reports whether the supplier can supply the given product
func (s *Supplier) Offers(product ProductID) bool {
	_, ok := s.offered[product]
	return ok
}

// LeadTime returns the order-to-arrival lead time in periods for the given
// product, defaulting to 0 when unspecified.
func (s *Supplier) LeadTime(product ProductID) int {
	return s.LeadTimes[product]
}
