// Package router classifies support messages into an (intent, action)
// pair with an ordered keyword-rule cascade. Matching is intentionally
// simple substring containment; the cascade order is the tie-break
// policy for messages that fire multiple predicates and reordering it
// changes classification outcomes.
package router

import "strings"

// Router evaluates the rule cascade over a fixed RuleSet.
type Router struct {
	rules RuleSet
}

// New creates a Router bound to the given rule set. Routers are
// immutable after construction, so distinct rule sets can coexist.
func New(rules RuleSet) *Router {
	return &Router{rules: rules}
}

// Route maps a raw message to a routing decision. Pure, total and
// case-insensitive: every input yields exactly one decision.
func (r *Router) Route(message string) Decision {
	m := strings.ToLower(strings.TrimSpace(message))

	injection := containsAny(m, r.rules.Injection...)
	contact := containsAny(m, r.rules.Contact...)
	paid := containsAny(m, r.rules.Paid...)
	access := containsAny(m, r.rules.Access...)
	declined := containsAny(m, r.rules.Declined...)
	pending := containsAny(m, r.rules.Pending...)
	billing := containsAny(m, r.rules.Billing...)
	accountHelp := containsAny(m, r.rules.AccountHelp...)

	// Safety first: refuse policy-bypass attempts before anything else,
	// even when legitimate signals co-occur.
	if injection {
		return Decision{Intent: IntentPromptInjection, Action: ActionRefuse}
	}

	// Contact details must come from a verified source, never from here.
	if contact {
		return Decision{Intent: IntentContactInfo, Action: ActionUseVerifiedSource}
	}

	// Paid but no access: account lookup via tool.
	if paid && access && !declined {
		return Decision{Intent: IntentPaidNoAccess, Action: ActionCallTool}
	}

	if declined && containsAny(m, r.rules.DeclinedContext...) {
		return Decision{Intent: IntentPaymentFailed, Action: ActionAskClarify}
	}

	if pending && containsAny(m, r.rules.PendingContext...) {
		return Decision{Intent: IntentPaymentPending, Action: ActionAskClarify}
	}

	if billing {
		return Decision{Intent: IntentBillingQuestion, Action: ActionCallTool}
	}

	// Credential changes need identity verification beyond automation.
	if accountHelp {
		return Decision{Intent: IntentAccountHelp, Action: ActionEscalate}
	}

	// Fallback: ask clarifying questions rather than inventing an answer.
	if containsAny(m, r.rules.FallbackContext...) {
		return Decision{Intent: IntentUnknown, Action: ActionAskClarify}
	}
	return Decision{Intent: IntentUnknown, Action: ActionAskClarify}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
