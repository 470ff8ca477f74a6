package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskroute/deskroute/internal/agent"
	"github.com/deskroute/deskroute/internal/router"
	"github.com/deskroute/deskroute/internal/toolsim"
)

func newRouteCmd() *cobra.Command {
	var (
		toolName   string
		scenario   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "route MESSAGE",
		Short: "Route a single message through the decision engine",
		Long: "Classifies MESSAGE into an (intent, action) pair. With --tool, an\n" +
			"action of CALL_TOOL also runs the simulated tool under --scenario and\n" +
			"escalates on tool failure.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig()
			if err != nil {
				return err
			}

			ctrl := agent.NewController(router.New(cfg.RuleSet()), toolsim.NewProvider())
			res, err := ctrl.Step(args[0], toolName, toolsim.Scenario(scenario))
			if err != nil {
				return err
			}

			if jsonOutput {
				b, _ := json.MarshalIndent(res, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			fmt.Printf("intent: %s\naction: %s\n", res.Intent, res.Action)
			if res.ToolError != nil {
				fmt.Printf("tool error: [%s] %s\n", res.ToolError.Kind, res.ToolError.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toolName, "tool", "", "simulated tool to call when the action is CALL_TOOL")
	cmd.Flags().StringVar(&scenario, "scenario", "ok", "tool scenario (ok, timeout, auth_error, missing_fields)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON output")
	return cmd
}
