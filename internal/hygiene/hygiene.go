// Package hygiene gates the repository and corpus against content
// violations: banned terms in source or corpus files, URLs or
// email-like strings in the corpus, invalid scenario tags, and contact
// cases that do not route to a verified source. It is independent of
// the routing core and acts as a separate pass/fail check.
package hygiene

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deskroute/deskroute/internal/router"
	"github.com/deskroute/deskroute/internal/toolsim"
)

// Config holds the scanner's term lists and exclusions.
type Config struct {
	// BannedTerms are matched case-insensitively on word boundaries in
	// .go and .jsonl files.
	BannedTerms []string `yaml:"banned_terms"`
	// SkipFiles are base names excluded from the banned-term scan
	// (files that legitimately mention the terms, such as this one's
	// own configuration).
	SkipFiles []string `yaml:"skip_files"`
}

// DefaultConfig returns the baseline scanner configuration.
func DefaultConfig() Config {
	return Config{
		BannedTerms: []string{"tradingview", "nda", "client logs", "verizon"},
		SkipFiles:   []string{"hygiene.go", "hygiene_test.go"},
	}
}

// Violation is one hygiene finding.
type Violation struct {
	File   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.File, v.Detail)
}

var (
	urlPattern   = regexp.MustCompile(`https?://`)
	emailPattern = regexp.MustCompile(`\b[^@\s"]+@[^@\s"]+\.[^@\s"]+\b`)
)

// Scanner runs hygiene checks over a source tree and a corpus file.
type Scanner struct {
	cfg    Config
	banned *regexp.Regexp
	log    zerolog.Logger
}

// NewScanner creates a scanner for cfg. Banned terms are compiled into
// a single case-insensitive word-boundary pattern.
func NewScanner(cfg Config, log zerolog.Logger) (*Scanner, error) {
	s := &Scanner{cfg: cfg, log: log}
	if len(cfg.BannedTerms) > 0 {
		quoted := make([]string, 0, len(cfg.BannedTerms))
		for _, t := range cfg.BannedTerms {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
		}
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile banned terms: %w", err)
		}
		s.banned = re
	}
	return s, nil
}

// ScanTree walks root and reports banned-term findings in .go and
// .jsonl files. Hidden directories, underscore-prefixed directories and
// configured skip files are ignored.
func (s *Scanner) ScanTree(root string) ([]Violation, error) {
	if s.banned == nil {
		return nil, nil
	}
	var violations []Violation
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(name)
		if ext != ".go" && ext != ".jsonl" {
			return nil
		}
		for _, skip := range s.cfg.SkipFiles {
			if name == skip {
				return nil
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if term := s.banned.Find(data); term != nil {
			violations = append(violations, Violation{
				File:   path,
				Detail: fmt.Sprintf("found banned term %q", strings.ToLower(string(term))),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("violations", len(violations)).Str("root", root).Msg("tree scan done")
	return violations, nil
}

// corpusRecord is the subset of corpus fields the scanner inspects.
type corpusRecord struct {
	ID             string `json:"id"`
	Category       string `json:"category"`
	ExpectedAction string `json:"expected_action"`
	ToolScenario   string `json:"tool_scenario"`
}

// ScanCorpus validates the corpus file structure: no URLs, no
// email-like strings, contact cases must expect USE_VERIFIED_SOURCE,
// and scenario tags must be recognized. A missing corpus file is not a
// violation.
func (s *Scanner) ScanCorpus(path string) ([]Violation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("path", path).Msg("no corpus to scan")
			return nil, nil
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var violations []Violation
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var rec corpusRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			violations = append(violations, Violation{
				File:   path,
				Detail: fmt.Sprintf("line %d: invalid JSON: %v", lineNum, err),
			})
			continue
		}
		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("line %d", lineNum)
		}

		if urlPattern.MatchString(line) {
			violations = append(violations, Violation{File: path, Detail: fmt.Sprintf("%s: contains URL", id)})
		}
		if emailPattern.MatchString(line) {
			violations = append(violations, Violation{File: path, Detail: fmt.Sprintf("%s: contains email-like string", id)})
		}
		if rec.Category == "contact" && rec.ExpectedAction != string(router.ActionUseVerifiedSource) {
			violations = append(violations, Violation{
				File: path,
				Detail: fmt.Sprintf("%s: contact case must expect action %s, got %q",
					id, router.ActionUseVerifiedSource, rec.ExpectedAction),
			})
		}
		if rec.ToolScenario != "" && !toolsim.Scenario(rec.ToolScenario).Valid() {
			violations = append(violations, Violation{
				File:   path,
				Detail: fmt.Sprintf("%s: invalid tool_scenario %q", id, rec.ToolScenario),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	s.log.Debug().Int("violations", len(violations)).Str("path", path).Msg("corpus scan done")
	return violations, nil
}
