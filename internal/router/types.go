package router

// Intent is the classified purpose category of an inbound message.
type Intent string

const (
	IntentPaidNoAccess    Intent = "PAID_NO_ACCESS"
	IntentPaymentFailed   Intent = "PAYMENT_FAILED"
	IntentPaymentPending  Intent = "PAYMENT_PENDING"
	IntentBillingQuestion Intent = "BILLING_QUESTION"
	IntentContactInfo     Intent = "CONTACT_INFO"
	IntentAccountHelp     Intent = "ACCOUNT_HELP"
	IntentPromptInjection Intent = "PROMPT_INJECTION"
	IntentUnknown         Intent = "UNKNOWN"
)

// Action is the disposition chosen in response to an intent.
type Action string

const (
	ActionRefuse            Action = "REFUSE"
	ActionUseVerifiedSource Action = "USE_VERIFIED_SOURCE"
	ActionCallTool          Action = "CALL_TOOL"
	ActionAskClarify        Action = "ASK_CLARIFY"
	ActionEscalate          Action = "ESCALATE"
)

// Decision is the routing outcome for one message.
type Decision struct {
	Intent Intent `json:"intent"`
	Action Action `json:"action"`
}
