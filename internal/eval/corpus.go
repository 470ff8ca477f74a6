package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/deskroute/deskroute/internal/toolsim"
)

// Case is one labeled corpus record (line-delimited JSON).
type Case struct {
	ID             string `json:"id"`
	Input          string `json:"input"`
	ExpectedIntent string `json:"expected_intent"`
	ExpectedAction string `json:"expected_action"`
	Category       string `json:"category,omitempty"`
	ToolName       string `json:"tool_name,omitempty"`
	ToolScenario   string `json:"tool_scenario,omitempty"`
}

// BadRecord is a corpus line that could not be used: malformed JSON or
// missing required fields. Bad records fail individually; they never
// abort the rest of the run.
type BadRecord struct {
	Line int
	Err  error
}

// DefaultCategory is assigned to cases without an explicit category.
const DefaultCategory = "uncategorized"

// LoadCorpus reads a JSONL corpus. Blank lines are skipped; malformed
// or incomplete records are collected as BadRecords alongside the
// usable cases. The returned error covers file-level failures only.
func LoadCorpus(path string) ([]Case, []BadRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var (
		cases []Case
		bad   []BadRecord
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var c Case
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			bad = append(bad, BadRecord{Line: lineNum, Err: fmt.Errorf("invalid JSON: %w", err)})
			continue
		}
		if err := validateCase(c); err != nil {
			bad = append(bad, BadRecord{Line: lineNum, Err: err})
			continue
		}
		if c.Category == "" {
			c.Category = DefaultCategory
		}
		if c.ToolScenario == "" {
			c.ToolScenario = string(toolsim.ScenarioOK)
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read corpus: %w", err)
	}
	return cases, bad, nil
}

func validateCase(c Case) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("missing required field: id")
	}
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("case %s: missing required field: input", c.ID)
	}
	if c.ExpectedIntent == "" {
		return fmt.Errorf("case %s: missing required field: expected_intent", c.ID)
	}
	if c.ExpectedAction == "" {
		return fmt.Errorf("case %s: missing required field: expected_action", c.ID)
	}
	return nil
}
