package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deskroute/deskroute/internal/agent"
	"github.com/deskroute/deskroute/internal/eval"
	"github.com/deskroute/deskroute/internal/router"
	"github.com/deskroute/deskroute/internal/toolsim"
)

func newEvalCmd() *cobra.Command {
	var (
		corpusPath string
		reportPath string
		threshold  float64
		workers    int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Replay the labeled corpus and score routing quality",
		Long:  "Runs every corpus case through the agent step, tallies pass/fail by category, writes a JSON report and exits non-zero below the pass threshold.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig()
			if err != nil {
				return err
			}
			if corpusPath != "" {
				cfg.Corpus = corpusPath
			}
			if reportPath != "" {
				cfg.Report = reportPath
			}
			if cmd.Flags().Changed("threshold") {
				cfg.PassThreshold = threshold
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel)

			cases, bad, err := eval.LoadCorpus(cfg.Corpus)
			if err != nil {
				return err
			}

			ctrl := agent.NewController(router.New(cfg.RuleSet()), toolsim.NewProvider())
			h := eval.NewHarness(ctrl, eval.Options{
				Threshold: cfg.PassThreshold,
				Workers:   cfg.Workers,
			}, log)
			report, results := h.Run(cases, bad)

			if jsonOutput {
				b, _ := json.MarshalIndent(map[string]any{
					"corpus":  cfg.Corpus,
					"report":  report,
					"results": results,
				}, "", "  ")
				fmt.Println(string(b))
			} else {
				printResults(results)
				printSummary(report)
			}

			if err := eval.WriteReport(cfg.Report, report); err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Printf("\nWrote %s\n", cfg.Report)
			}

			if !report.MeetsThreshold(cfg.PassThreshold) {
				return fmt.Errorf("score %.1f%% below threshold %.1f%%",
					report.Score.Percent, cfg.PassThreshold)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to the JSONL corpus (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "path to write the JSON report (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", 100.0, "minimum pass percentage for exit code 0")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent case evaluations (0 = from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON output")
	return cmd
}

func printResults(results []eval.CaseResult) {
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
		}
		if r.Err != "" {
			fmt.Printf("%s %s | error: %s\n", status, r.ID, r.Err)
			continue
		}
		fmt.Printf("%s %s | expected=(%s,%s) got=(%s,%s)\n",
			status, r.ID,
			r.Expected.Intent, r.Expected.Action,
			r.Got.Intent, r.Got.Action)
	}
}

func printSummary(report eval.Report) {
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Score: %d/%d (%.1f%%)\n",
		report.Score.Passed, report.Score.Total, report.Score.Percent)

	fmt.Printf("\n=== By category ===\n")
	categories := make([]string, 0, len(report.ByCategory))
	for cat := range report.ByCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		stats := report.ByCategory[cat]
		fmt.Printf("- %s: %d pass / %d fail\n", cat, stats.Pass, stats.Fail)
	}

	fmt.Printf("\n=== Action distribution ===\n")
	printDistribution(report.ActionDistribution)

	fmt.Printf("\n=== Intent distribution ===\n")
	printDistribution(report.IntentDistribution)
}

// printDistribution prints counts most-common first, names as tie-break.
func printDistribution(dist map[string]int) {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if dist[keys[i]] != dist[keys[j]] {
			return dist[keys[i]] > dist[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Printf("- %s: %d\n", k, dist[k])
	}
}
