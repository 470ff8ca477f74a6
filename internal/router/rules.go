package router

// RuleSet holds the keyword tables behind each routing predicate.
// A predicate fires when the normalized message contains any of its
// keywords. The tables are plain data so alternative rule sets can be
// loaded from config and unit-tested independently of the cascade.
type RuleSet struct {
	Injection   []string `yaml:"injection"`
	Contact     []string `yaml:"contact"`
	Paid        []string `yaml:"paid"`
	Access      []string `yaml:"access"`
	Declined    []string `yaml:"declined"`
	Pending     []string `yaml:"pending"`
	Billing     []string `yaml:"billing"`
	AccountHelp []string `yaml:"account_help"`

	// Context tokens gating the payment-shaped rules: a decline is only a
	// payment failure when the message talks about paying, and a pending
	// signal only counts when a payment or charge is mentioned.
	DeclinedContext []string `yaml:"declined_context"`
	PendingContext  []string `yaml:"pending_context"`
	FallbackContext []string `yaml:"fallback_context"`
}

// DefaultRuleSet returns the baseline keyword tables.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Injection:   []string{"ignore all", "ignore policies", "give me the gate code", "bypass"},
		Contact:     []string{"phone number", "office hours", "hours", "contact"},
		Paid:        []string{"i paid", "paid ", "payment went through", "charged", "posted", "receipt"},
		Access:      []string{"access", "gate", "can't access", "cannot access", "locked out", "access denied", "unit"},
		Declined:    []string{"declined", "failed", "error", "won't go through", "didn't go through"},
		Pending:     []string{"pending", "processing", "not posted"},
		Billing:     []string{"late fee", "charged twice", "refund", "credit", "invoice", "fee"},
		AccountHelp: []string{"can’t log in", "can't log in", "reset", "update my card"},

		DeclinedContext: []string{"pay"},
		PendingContext:  []string{"payment", "paid", "charge"},
		FallbackContext: []string{"payment", "pay"},
	}
}

// Merge returns a copy of base with every non-empty table from override
// substituted in. Override tables replace, they do not append, so a
// config override fully owns any predicate it touches.
func (base RuleSet) Merge(override RuleSet) RuleSet {
	out := base
	if len(override.Injection) > 0 {
		out.Injection = override.Injection
	}
	if len(override.Contact) > 0 {
		out.Contact = override.Contact
	}
	if len(override.Paid) > 0 {
		out.Paid = override.Paid
	}
	if len(override.Access) > 0 {
		out.Access = override.Access
	}
	if len(override.Declined) > 0 {
		out.Declined = override.Declined
	}
	if len(override.Pending) > 0 {
		out.Pending = override.Pending
	}
	if len(override.Billing) > 0 {
		out.Billing = override.Billing
	}
	if len(override.AccountHelp) > 0 {
		out.AccountHelp = override.AccountHelp
	}
	if len(override.DeclinedContext) > 0 {
		out.DeclinedContext = override.DeclinedContext
	}
	if len(override.PendingContext) > 0 {
		out.PendingContext = override.PendingContext
	}
	if len(override.FallbackContext) > 0 {
		out.FallbackContext = override.FallbackContext
	}
	return out
}
