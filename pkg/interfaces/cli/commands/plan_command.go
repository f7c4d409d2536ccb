package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/procurer/procurer/pkg/application/dto"
	"github.com/procurer/procurer/pkg/application/services"
	"github.com/procurer/procurer/pkg/infrastructure/repositories/jsonfile"
	"github.com/procurer/procurer/pkg/interfaces/cli/output"
	"github.com/procurer/procurer/pkg/planning"
	"github.com/procurer/procurer/pkg/solve"
)

// Config holds the command-line configuration for a planning run
type Config struct {
	DataDir       string
	ProductsFile  string
	SuppliersFile string
	DemandFile    string
	InventoryFile string
	LogisticsFile string
	Planners      string // comma-separated planner names
	ScenarioFile  string
	Format        string
	OutputDir     string
	Verbose       bool
	SolverTimeout time.Duration
	Help          bool
}

// PlanCommand runs one or more planning strategies over a JSON data set
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{config: config}
}

// Execute loads the data, runs the selected planners, and renders output
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		printUsage()
		return nil
	}

	paths, err := c.dataPaths()
	if err != nil {
		return err
	}

	plannerNames, err := c.plannerNames()
	if err != nil {
		return err
	}

	engine := solve.NewEngine(solve.Options{
		Provider:    "highs",
		MaxDuration: c.config.SolverTimeout,
		Verbose:     c.config.Verbose,
	})
	service := services.NewPlanningService(jsonfile.NewRepository(paths), engine)

	data, err := service.LoadDataSet(ctx)
	if err != nil {
		return err
	}

	results, err := service.PlanAll(ctx, plannerNames, data)
	if err != nil {
		return err
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.Generate(results, outputConfig); err != nil {
		return err
	}

	if c.config.ScenarioFile != "" {
		scenarios, err := services.LoadScenarios(c.config.ScenarioFile)
		if err != nil {
			return err
		}
		scenarioResults, err := service.RunScenarioAnalysis(ctx, plannerNames[0], data, scenarios)
		if err != nil {
			return err
		}
		for _, sr := range scenarioResults {
			fmt.Printf("=== Scenario: %s ===\n", sr.Scenario)
			if err := output.Generate([]*dto.PlanResult{sr.Result}, outputConfig); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *PlanCommand) dataPaths() (jsonfile.Paths, error) {
	if c.config.DataDir != "" {
		return jsonfile.DirPaths(c.config.DataDir), nil
	}
	paths := jsonfile.Paths{
		Products:  c.config.ProductsFile,
		Suppliers: c.config.SuppliersFile,
		Demand:    c.config.DemandFile,
		Inventory: c.config.InventoryFile,
		Logistics: c.config.LogisticsFile,
	}
	if paths.Products == "" || paths.Suppliers == "" || paths.Demand == "" ||
		paths.Inventory == "" || paths.Logistics == "" {
		return paths, fmt.Errorf("either -data or all five data file flags are required (see -help)")
	}
	return paths, nil
}

func (c *PlanCommand) plannerNames() ([]string, error) {
	if c.config.Planners == "" {
		return []string{planning.PlannerHeuristic}, nil
	}
	names := strings.Split(c.config.Planners, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	valid := make(map[string]struct{})
	for _, name := range planning.PlannerNames() {
		valid[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := valid[name]; !ok {
			return nil, fmt.Errorf("unknown planner %q, valid: %s", name,
				strings.Join(planning.PlannerNames(), ", "))
		}
	}
	return names, nil
}

func printUsage() {
	fmt.Println("procurer - multi-period procurement planner")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  procurer -data <dir> [-planners exact,discount,heuristic] [-format text|json|csv]")
	fmt.Println()
	fmt.Println("The data directory must contain products.json, suppliers.json,")
	fmt.Println("demand.json, inventory.json, and logistics_cost.json. Individual")
	fmt.Println("file flags (-products, -suppliers, ...) override the directory")
	fmt.Println("layout.")
}
