// Package jsonfile loads the five planning collections from JSON files,
// the interchange format produced by upstream data pipelines.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/procurer/procurer/pkg/domain/entities"
	"github.com/procurer/procurer/pkg/domain/repositories"
)

// Paths names the JSON file for each collection
type Paths struct {
	Products  string
	Suppliers string
	Demand    string
	Inventory string
	Logistics string
}

// DirPaths returns the conventional file layout inside a data directory
func DirPaths(dir string) Paths {
	return Paths{
		Products:  filepath.Join(dir, "products.json"),
		Suppliers: filepath.Join(dir, "suppliers.json"),
		Demand:    filepath.Join(dir, "demand.json"),
		Inventory: filepath.Join(dir, "inventory.json"),
		Logistics: filepath.Join(dir, "logistics_cost.json"),
	}
}

// Repository loads collections from JSON files on each call
type Repository struct {
	paths Paths
}

// NewRepository creates a JSON-file backed repository
func NewRepository(paths Paths) *Repository {
	return &Repository{paths: paths}
}

// Verify interface compliance
var _ repositories.DataRepository = (*Repository)(nil)

type productRecord struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	UnitCostBySupplier map[string]float64 `json:"unit_cost_by_supplier"`
	ExpirationPeriods  int                `json:"expiration_periods"`
	MOQ                int64              `json:"MOQ"`
	Discounts          *struct {
		Threshold float64 `json:"threshold"`
		Discount  float64 `json:"discount"`
	} `json:"discounts"`
}

type supplierRecord struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ProductsOffered []string       `json:"products_offered"`
	LeadTimes       map[string]int `json:"lead_times"`
}

type demandRecord struct {
	ProductID        string  `json:"product_id"`
	Period           int     `json:"period"`
	ExpectedQuantity float64 `json:"expected_quantity"`
}

type inventoryRecord struct {
	ProductID         string  `json:"product_id"`
	InitialStock      float64 `json:"initial_stock"`
	HoldingCost       float64 `json:"holding_cost"`
	WarehouseCapacity float64 `json:"warehouse_capacity"`
	SafetyStock       float64 `json:"safety_stock"`
}

type logisticsRecord struct {
	SupplierID  string  `json:"supplier_id"`
	ProductID   string  `json:"product_id"`
	CostPerUnit float64 `json:"cost_per_unit"`
	FixedCost   float64 `json:"fixed_cost"`
}

// Products loads and validates the product collection
func (r *Repository) Products(ctx context.Context) ([]*entities.Product, error) {
	var records []productRecord
	if err := readJSON(r.paths.Products, &records); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]*entities.Product, 0, len(records))
	for i, rec := range records {
		unitCosts := make(map[entities.SupplierID]float64, len(rec.UnitCostBySupplier))
		for supplier, cost := range rec.UnitCostBySupplier {
			unitCosts[entities.SupplierID(supplier)] = cost
		}
		var discount *entities.DiscountPolicy
		if rec.Discounts != nil {
			discount = &entities.DiscountPolicy{
				Threshold: rec.Discounts.Threshold,
				Rate:      rec.Discounts.Discount,
			}
		}
		product, err := entities.NewProduct(entities.ProductID(rec.ID), rec.Name,
			unitCosts, rec.ExpirationPeriods, rec.MOQ, discount)
		if err != nil {
			return nil, fmt.Errorf("products record %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// Suppliers loads and validates the supplier collection
func (r *Repository) Suppliers(ctx context.Context) ([]*entities.Supplier, error) {
	var records []supplierRecord
	if err := readJSON(r.paths.Suppliers, &records); err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	suppliers := make([]*entities.Supplier, 0, len(records))
	for i, rec := range records {
		offered := make([]entities.ProductID, 0, len(rec.ProductsOffered))
		for _, product := range rec.ProductsOffered {
			offered = append(offered, entities.ProductID(product))
		}
		leadTimes := make(map[entities.ProductID]int, len(rec.LeadTimes))
		for product, lead := range rec.LeadTimes {
			leadTimes[entities.ProductID(product)] = lead
		}
		supplier, err := entities.NewSupplier(entities.SupplierID(rec.ID), rec.Name, offered, leadTimes)
		if err != nil {
			return nil, fmt.Errorf("suppliers record %d: %w", i, err)
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

// Demand loads and validates the demand collection
func (r *Repository) Demand(ctx context.Context) ([]*entities.Demand, error) {
	var records []demandRecord
	if err := readJSON(r.paths.Demand, &records); err != nil {
		return nil, fmt.Errorf("failed to load demand: %w", err)
	}

	demand := make([]*entities.Demand, 0, len(records))
	for i, rec := range records {
		d, err := entities.NewDemand(entities.ProductID(rec.ProductID),
			entities.Period(rec.Period), rec.ExpectedQuantity)
		if err != nil {
			return nil, fmt.Errorf("demand record %d: %w", i, err)
		}
		demand = append(demand, d)
	}
	return demand, nil
}

// InventoryPolicies loads and validates the inventory collection
func (r *Repository) InventoryPolicies(ctx context.Context) ([]*entities.InventoryPolicy, error) {
	var records []inventoryRecord
	if err := readJSON(r.paths.Inventory, &records); err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	policies := make([]*entities.InventoryPolicy, 0, len(records))
	for i, rec := range records {
		policy, err := entities.NewInventoryPolicy(entities.ProductID(rec.ProductID),
			rec.InitialStock, rec.HoldingCost, rec.WarehouseCapacity, rec.SafetyStock)
		if err != nil {
			return nil, fmt.Errorf("inventory record %d: %w", i, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// LogisticsCosts loads and validates the logistics cost collection
func (r *Repository) LogisticsCosts(ctx context.Context) ([]*entities.LogisticsCost, error) {
	var records []logisticsRecord
	if err := readJSON(r.paths.Logistics, &records); err != nil {
		return nil, fmt.Errorf("failed to load logistics costs: %w", err)
	}

	costs := make([]*entities.LogisticsCost, 0, len(records))
	for i, rec := range records {
		cost, err := entities.NewLogisticsCost(entities.SupplierID(rec.SupplierID),
			entities.ProductID(rec.ProductID), rec.CostPerUnit, rec.FixedCost)
		if err != nil {
			return nil, fmt.Errorf("logistics record %d: %w", i, err)
		}
		costs = append(costs, cost)
	}
	return costs, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
