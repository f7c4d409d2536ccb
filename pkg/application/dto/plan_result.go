package dto

import (
	"time"

	"github.com/procurer/procurer/pkg/planning"
)

// PlanResult contains the complete output of one planning run
type PlanResult struct {
	RunID       string
	Planner     string
	GeneratedAt time.Time
	SolveTime   time.Duration
	Solution    *planning.Solution
	KPIs        planning.KPIs
}

// ScenarioResult pairs a scenario name with the planning run it produced
type ScenarioResult struct {
	Scenario string
	Result   *PlanResult
}
