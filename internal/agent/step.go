// Package agent orchestrates router decisions with simulated tool
// calls. One step is one message: route, optionally call the tool, and
// downgrade to escalation when the tool fails.
package agent

import (
	"github.com/deskroute/deskroute/internal/router"
	"github.com/deskroute/deskroute/internal/toolsim"
)

// Result is the final outcome of one agent step. ToolError is set only
// when a tool call failed and the action was overridden to ESCALATE.
type Result struct {
	Intent    router.Intent  `json:"intent"`
	Action    router.Action  `json:"action"`
	ToolError *toolsim.Error `json:"tool_error,omitempty"`
}

// Controller runs the route-then-tool pipeline. It holds no mutable
// state, so a single Controller is safe for concurrent use.
type Controller struct {
	router *router.Router
	tools  *toolsim.Provider
}

// NewController creates a step controller over the given router and
// tool provider.
func NewController(r *router.Router, tools *toolsim.Provider) *Controller {
	return &Controller{router: r, tools: tools}
}

// Step routes message and, when the decision calls for a tool and a
// tool name was supplied, invokes the provider under scenario (empty
// means "ok").
//
// The only action transition this layer may perform is
// CALL_TOOL -> ESCALATE on a domain tool failure: the intent is
// preserved, the failure detail is attached, and there is no retry.
// A successful call keeps CALL_TOOL; the success payload is not
// inspected further. An unrecognized scenario is a configuration error
// and is returned as a non-nil error instead of a Result.
func (c *Controller) Step(message, toolName string, scenario toolsim.Scenario) (Result, error) {
	if scenario == "" {
		scenario = toolsim.ScenarioOK
	}

	d := c.router.Route(message)
	res := Result{Intent: d.Intent, Action: d.Action}
	if d.Action != router.ActionCallTool || toolName == "" {
		return res, nil
	}

	_, err := c.tools.Call(toolName, toolsim.Payload{"message": message}, scenario)
	if err == nil {
		return res, nil
	}
	if toolErr := toolsim.AsError(err); toolErr != nil {
		res.Action = router.ActionEscalate
		res.ToolError = toolErr
		return res, nil
	}
	return Result{}, err
}
