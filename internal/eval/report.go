package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/deskroute/deskroute/internal/toolsim"
)

// Score is the aggregate pass result of a run.
type Score struct {
	Passed  int     `json:"passed"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// CategoryStat is the pass/fail tally for one corpus category.
type CategoryStat struct {
	Pass int `json:"pass"`
	Fail int `json:"fail"`
}

// Expectation is an (intent, action) pair as labeled or observed.
type Expectation struct {
	Intent string `json:"intent"`
	Action string `json:"action"`
}

// Failure is one failed case, with enough detail to reproduce it.
type Failure struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	Expected     Expectation    `json:"expected"`
	Got          Expectation    `json:"got"`
	ToolScenario string         `json:"tool_scenario,omitempty"`
	ToolError    *toolsim.Error `json:"tool_error,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Report is the machine-readable output of a harness run.
type Report struct {
	RunID              string                  `json:"run_id"`
	GeneratedAt        time.Time               `json:"generated_at"`
	Score              Score                   `json:"score"`
	ByCategory         map[string]CategoryStat `json:"by_category"`
	ActionDistribution map[string]int          `json:"action_distribution"`
	IntentDistribution map[string]int          `json:"intent_distribution"`
	Failures           []Failure               `json:"failures"`
}

// MeetsThreshold reports whether the run scored at or above the given
// minimum pass percentage.
func (r Report) MeetsThreshold(threshold float64) bool {
	return r.Score.Percent >= threshold
}

// WriteReport writes the report as indented JSON to path.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
