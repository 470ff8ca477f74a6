package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskroute/deskroute/internal/hygiene"
)

func newHygieneCmd() *cobra.Command {
	var (
		root       string
		corpusPath string
	)

	cmd := &cobra.Command{
		Use:   "hygiene",
		Short: "Scan the repo and corpus for content violations",
		Long:  "Checks source and corpus files for banned terms and validates corpus structure (no URLs or email-like strings, valid scenario tags, contact cases routed to a verified source).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig()
			if err != nil {
				return err
			}
			if corpusPath != "" {
				cfg.Corpus = corpusPath
			}
			log := newLogger(cfg.LogLevel)

			scanner, err := hygiene.NewScanner(cfg.Hygiene, log)
			if err != nil {
				return err
			}

			treeViolations, err := scanner.ScanTree(root)
			if err != nil {
				return err
			}
			corpusViolations, err := scanner.ScanCorpus(cfg.Corpus)
			if err != nil {
				return err
			}

			violations := append(treeViolations, corpusViolations...)
			if len(violations) == 0 {
				fmt.Println("Hygiene PASS")
				return nil
			}
			for _, v := range violations {
				fmt.Printf("- %s\n", v)
			}
			return fmt.Errorf("hygiene FAIL: %d violation(s)", len(violations))
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory tree to scan for banned terms")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus file to validate (default from config)")
	return cmd
}
