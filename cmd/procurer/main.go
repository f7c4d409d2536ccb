package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/procurer/procurer/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		dataDir = flag.String(
			"data",
			"",
			"Path to data directory containing the five JSON files",
		)
		productsFile  = flag.String("products", "", "Path to products JSON file")
		suppliersFile = flag.String("suppliers", "", "Path to suppliers JSON file")
		demandFile    = flag.String("demand", "", "Path to demand JSON file")
		inventoryFile = flag.String("inventory", "", "Path to inventory JSON file")
		logisticsFile = flag.String("logistics-cost", "", "Path to logistics cost JSON file")
		planners      = flag.String("planners", "heuristic", "Comma-separated planners: exact, discount, heuristic")
		scenarioFile  = flag.String("scenarios", "", "Path to scenario YAML file (optional)")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		solverTimeout = flag.Duration("solver-timeout", 30*time.Second, "Wall-clock limit per solver call")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		DataDir:       *dataDir,
		ProductsFile:  *productsFile,
		SuppliersFile: *suppliersFile,
		DemandFile:    *demandFile,
		InventoryFile: *inventoryFile,
		LogisticsFile: *logisticsFile,
		Planners:      *planners,
		ScenarioFile:  *scenarioFile,
		OutputDir:     *outputDir,
		Format:        *format,
		Verbose:       *verbose,
		SolverTimeout: *solverTimeout,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
