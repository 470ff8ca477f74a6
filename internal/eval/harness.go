// Package eval replays a labeled corpus through the agent step
// controller and reports pass/fail statistics.
package eval

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"github.com/deskroute/deskroute/internal/agent"
	"github.com/deskroute/deskroute/internal/toolsim"
)

// Options controls a harness run.
type Options struct {
	// Threshold is the minimum pass percentage (0-100) for the run to
	// be considered passing.
	Threshold float64
	// Workers > 1 evaluates cases concurrently. Each case pipeline runs
	// in isolation and results keep corpus order either way.
	Workers int
}

// CaseResult is the evaluated outcome of one corpus case.
type CaseResult struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	Passed       bool           `json:"passed"`
	Expected     Expectation    `json:"expected"`
	Got          Expectation    `json:"got"`
	ToolScenario string         `json:"tool_scenario,omitempty"`
	ToolError    *toolsim.Error `json:"tool_error,omitempty"`
	// Err is set when the case itself could not be evaluated
	// (configuration error such as an unknown tool scenario).
	Err string `json:"error,omitempty"`
}

// Harness replays corpus cases through a step controller.
type Harness struct {
	ctrl *agent.Controller
	opts Options
	log  zerolog.Logger
}

// NewHarness creates a harness. Threshold and worker count come in via
// Options so multiple configurations can coexist.
func NewHarness(ctrl *agent.Controller, opts Options, log zerolog.Logger) *Harness {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Harness{ctrl: ctrl, opts: opts, log: log}
}

// Run evaluates every case plus the unusable records and aggregates a
// report. A bad record or a per-case configuration error fails that
// case only; the rest of the run is unaffected.
func (h *Harness) Run(cases []Case, bad []BadRecord) (Report, []CaseResult) {
	var results []CaseResult
	if h.opts.Workers > 1 {
		m := iter.Mapper[Case, CaseResult]{MaxGoroutines: h.opts.Workers}
		results = m.Map(cases, func(c *Case) CaseResult {
			return h.evalCase(*c)
		})
	} else {
		results = make([]CaseResult, 0, len(cases))
		for _, c := range cases {
			results = append(results, h.evalCase(c))
		}
	}

	for _, b := range bad {
		h.log.Warn().Int("line", b.Line).Err(b.Err).Msg("unusable corpus record")
		results = append(results, CaseResult{
			ID:       fmt.Sprintf("line_%d", b.Line),
			Category: DefaultCategory,
			Err:      b.Err.Error(),
		})
	}

	return h.aggregate(results), results
}

func (h *Harness) evalCase(c Case) CaseResult {
	r := CaseResult{
		ID:       c.ID,
		Category: c.Category,
		Input:    c.Input,
		Expected: Expectation{Intent: c.ExpectedIntent, Action: c.ExpectedAction},
	}

	res, err := h.ctrl.Step(c.Input, c.ToolName, toolsim.Scenario(c.ToolScenario))
	if err != nil {
		r.Err = err.Error()
		h.log.Error().Str("id", c.ID).Err(err).Msg("case failed to evaluate")
		return r
	}

	r.Got = Expectation{Intent: string(res.Intent), Action: string(res.Action)}
	r.Passed = r.Got == r.Expected
	if res.ToolError != nil {
		r.ToolScenario = c.ToolScenario
		r.ToolError = res.ToolError
	}

	h.log.Debug().
		Str("id", c.ID).
		Str("intent", r.Got.Intent).
		Str("action", r.Got.Action).
		Bool("passed", r.Passed).
		Msg("case evaluated")
	return r
}

func (h *Harness) aggregate(results []CaseResult) Report {
	report := Report{
		RunID:              uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		ByCategory:         make(map[string]CategoryStat),
		ActionDistribution: make(map[string]int),
		IntentDistribution: make(map[string]int),
		Failures:           []Failure{},
	}

	for _, r := range results {
		report.Score.Total++
		stat := report.ByCategory[r.Category]
		if r.Got.Action != "" {
			report.ActionDistribution[r.Got.Action]++
		}
		if r.Got.Intent != "" {
			report.IntentDistribution[r.Got.Intent]++
		}
		if r.Passed {
			report.Score.Passed++
			stat.Pass++
		} else {
			stat.Fail++
			report.Failures = append(report.Failures, Failure{
				ID:           r.ID,
				Category:     r.Category,
				Input:        r.Input,
				Expected:     r.Expected,
				Got:          r.Got,
				ToolScenario: r.ToolScenario,
				ToolError:    r.ToolError,
				Error:        r.Err,
			})
		}
		report.ByCategory[r.Category] = stat
	}

	if report.Score.Total > 0 {
		report.Score.Percent = 100 * float64(report.Score.Passed) / float64(report.Score.Total)
	}

	h.log.Info().
		Int("passed", report.Score.Passed).
		Int("total", report.Score.Total).
		Float64("percent", report.Score.Percent).
		Float64("threshold", h.opts.Threshold).
		Bool("meets_threshold", report.MeetsThreshold(h.opts.Threshold)).
		Msg("run complete")
	return report
}
