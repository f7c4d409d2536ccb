package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/procurer/procurer/pkg/application/dto"
	"github.com/procurer/procurer/pkg/planning"
)

// Config holds configuration for output generation
type Config struct {
	Format    string // text, json, csv
	OutputDir string // required for csv, optional for json
	Verbose   bool
}

// Generate renders the planning results in the configured format
func Generate(results []*dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateText(results, config)
	case "json":
		return generateJSON(results, config)
	case "csv":
		return generateCSV(results, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateText(results []*dto.PlanResult, config Config) error {
	for _, result := range results {
		fmt.Printf("Planner: %s (run %s)\n", result.Planner, result.RunID)
		fmt.Printf("Status:  %s\n", result.Solution.Status)
		if result.Solution.HasObjective {
			fmt.Printf("Objective: %.2f\n", result.Solution.Objective)
		}
		if result.Solution.Message != "" {
			fmt.Printf("Message: %s\n", result.Solution.Message)
		}
		fmt.Printf("Solve time: %v\n\n", result.SolveTime)

		orders := positiveEntries(result.Solution.Procurement.OrderedEntries())
		if len(orders) > 0 {
			fmt.Printf("Procurement Plan (%d orders):\n", len(orders))
			fmt.Printf("%-12s %-12s %-8s %-10s\n", "Supplier", "Product", "Period", "Quantity")
			fmt.Printf("%-12s %-12s %-8s %-10s\n", "------------", "------------", "--------", "----------")
			for _, entry := range orders {
				fmt.Printf("%-12s %-12s %-8d %-10.2f\n",
					entry.Supplier, entry.Product, entry.Period, entry.Quantity)
			}
			fmt.Println()
		}

		arrivals := positiveEntries(result.Solution.Shipments.OrderedEntries())
		if len(arrivals) > 0 {
			fmt.Printf("Shipments Plan (%d arrivals):\n", len(arrivals))
			fmt.Printf("%-12s %-12s %-8s %-10s\n", "Supplier", "Product", "Arrival", "Quantity")
			fmt.Printf("%-12s %-12s %-8s %-10s\n", "------------", "------------", "--------", "----------")
			for _, entry := range arrivals {
				fmt.Printf("%-12s %-12s %-8d %-10.2f\n",
					entry.Supplier, entry.Product, entry.Period, entry.Quantity)
			}
			fmt.Println()
		}

		if config.Verbose {
			stocks := orderedInventory(result.Solution.Inventory)
			fmt.Printf("Inventory (%d product-periods):\n", len(stocks))
			fmt.Printf("%-12s %-8s %-10s\n", "Product", "Period", "On Hand")
			fmt.Printf("%-12s %-8s %-10s\n", "------------", "--------", "----------")
			for _, stock := range stocks {
				fmt.Printf("%-12s %-8d %-10.2f\n", stock.Product, stock.Period, stock.Quantity)
			}
			fmt.Println()
		}

		fmt.Printf("KPIs:\n")
		fmt.Printf("  Procurement cost:   %s\n", result.KPIs.TotalProcurementCost.StringFixed(2))
		fmt.Printf("  Logistics cost:     %s\n", result.KPIs.TotalLogisticsCost.StringFixed(2))
		fmt.Printf("  Holding cost:       %s\n", result.KPIs.TotalHoldingCost.StringFixed(2))
		fmt.Printf("  Service level:      %.2f%%\n", result.KPIs.ServiceLevel*100)
		fmt.Printf("  Inventory turnover: %.2f\n", result.KPIs.InventoryTurnover)
		fmt.Printf("  Obsolescence:       %.2f\n", result.KPIs.Obsolescence)
		fmt.Printf("  Unmet demand:       %.2f\n\n", result.KPIs.UnmetDemand)
	}
	return nil
}

type entryExport struct {
	Supplier string  `json:"supplier_id"`
	Product  string  `json:"product_id"`
	Period   int     `json:"period"`
	Quantity float64 `json:"quantity"`
}

type stockExport struct {
	Product  string  `json:"product_id"`
	Period   int     `json:"period"`
	Quantity float64 `json:"quantity"`
}

type kpiExport struct {
	TotalProcurementCost string  `json:"total_procurement_cost"`
	TotalLogisticsCost   string  `json:"total_logistics_cost"`
	TotalHoldingCost     string  `json:"total_holding_cost"`
	ServiceLevel         float64 `json:"service_level"`
	InventoryTurnover    float64 `json:"inventory_turnover"`
	Obsolescence         float64 `json:"obsolescence"`
	UnmetDemand          float64 `json:"unmet_demand"`
}

type planExport struct {
	RunID       string        `json:"run_id"`
	Planner     string        `json:"planner"`
	Status      string        `json:"status"`
	Objective   *float64      `json:"objective,omitempty"`
	Message     string        `json:"message,omitempty"`
	Procurement []entryExport `json:"procurement_plan"`
	Shipments   []entryExport `json:"shipments_plan"`
	Inventory   []stockExport `json:"inventory"`
	KPIs        kpiExport     `json:"kpis"`
}

func exportResult(result *dto.PlanResult) planExport {
	export := planExport{
		RunID:   result.RunID,
		Planner: result.Planner,
		Status:  string(result.Solution.Status),
		Message: result.Solution.Message,
		KPIs: kpiExport{
			TotalProcurementCost: result.KPIs.TotalProcurementCost.StringFixed(2),
			TotalLogisticsCost:   result.KPIs.TotalLogisticsCost.StringFixed(2),
			TotalHoldingCost:     result.KPIs.TotalHoldingCost.StringFixed(2),
			ServiceLevel:         result.KPIs.ServiceLevel,
			InventoryTurnover:    result.KPIs.InventoryTurnover,
			Obsolescence:         result.KPIs.Obsolescence,
			UnmetDemand:          result.KPIs.UnmetDemand,
		},
	}
	if result.Solution.HasObjective {
		objective := result.Solution.Objective
		export.Objective = &objective
	}
	for _, entry := range result.Solution.Procurement.OrderedEntries() {
		export.Procurement = append(export.Procurement, entryExport{
			Supplier: string(entry.Supplier),
			Product:  string(entry.Product),
			Period:   int(entry.Period),
			Quantity: entry.Quantity,
		})
	}
	for _, entry := range result.Solution.Shipments.OrderedEntries() {
		export.Shipments = append(export.Shipments, entryExport{
			Supplier: string(entry.Supplier),
			Product:  string(entry.Product),
			Period:   int(entry.Period),
			Quantity: entry.Quantity,
		})
	}
	for _, stock := range orderedInventory(result.Solution.Inventory) {
		export.Inventory = append(export.Inventory, stockExport{
			Product:  stock.Product,
			Period:   stock.Period,
			Quantity: stock.Quantity,
		})
	}
	return export
}

func generateJSON(results []*dto.PlanResult, config Config) error {
	exports := make([]planExport, 0, len(results))
	for _, result := range results {
		exports = append(exports, exportResult(result))
	}

	encoded, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "plan_results.json")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}

func generateCSV(results []*dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires an output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, result := range results {
		prefix := filepath.Join(config.OutputDir, result.Planner)

		if err := writeEntriesCSV(prefix+"_procurement.csv",
			[]string{"supplier_id", "product_id", "period", "quantity"},
			result.Solution.Procurement.OrderedEntries()); err != nil {
			return err
		}
		if err := writeEntriesCSV(prefix+"_shipments.csv",
			[]string{"supplier_id", "product_id", "arrival_period", "quantity"},
			result.Solution.Shipments.OrderedEntries()); err != nil {
			return err
		}

		file, err := os.Create(prefix + "_inventory.csv")
		if err != nil {
			return fmt.Errorf("failed to create inventory csv: %w", err)
		}
		writer := csv.NewWriter(file)
		if err := writer.Write([]string{"product_id", "period", "quantity"}); err != nil {
			file.Close()
			return fmt.Errorf("failed to write inventory csv: %w", err)
		}
		for _, stock := range orderedInventory(result.Solution.Inventory) {
			record := []string{
				stock.Product,
				strconv.Itoa(stock.Period),
				strconv.FormatFloat(stock.Quantity, 'f', -1, 64),
			}
			if err := writer.Write(record); err != nil {
				file.Close()
				return fmt.Errorf("failed to write inventory csv: %w", err)
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			file.Close()
			return fmt.Errorf("failed to flush inventory csv: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close inventory csv: %w", err)
		}
	}

	fmt.Printf("CSV files written to %s\n", config.OutputDir)
	return nil
}

func writeEntriesCSV(path string, header []string, entries []planning.OrderEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, entry := range entries {
		record := []string{
			string(entry.Supplier),
			string(entry.Product),
			strconv.Itoa(int(entry.Period)),
			strconv.FormatFloat(entry.Quantity, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

type inventoryLine struct {
	Product  string
	Period   int
	Quantity float64
}

func orderedInventory(inventory planning.InventoryPlan) []inventoryLine {
	lines := make([]inventoryLine, 0, len(inventory))
	for key, qty := range inventory {
		lines = append(lines, inventoryLine{
			Product:  string(key.Product),
			Period:   int(key.Period),
			Quantity: qty,
		})
	}
	sort.Slice(lines, func(a, b int) bool {
		if lines[a].Product != lines[b].Product {
			return lines[a].Product < lines[b].Product
		}
		return lines[a].Period < lines[b].Period
	})
	return lines
}

func positiveEntries(entries []planning.OrderEntry) []planning.OrderEntry {
	var positive []planning.OrderEntry
	for _, entry := range entries {
		if entry.Quantity > 0 {
			positive = append(positive, entry)
		}
	}
	return positive
}
