package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"

	// Topic carrying stage-transition audit events on the in-process bus.
	StageTransitionTopic = "LOAN_STAGE_TRANSITION"

	// Verification document identifiers.
	DocAadhaar    = "aadhaar"
	DocPAN        = "pan"
	DocSalarySlip = "salary_slip"

	// History window handed to the text generator. Storage keeps the full
	// transcript; only prompting truncates.
	HistoryWindow = 6

	// Minimum requestable loan amount in rupees.
	MinLoanAmount = 50000

	// DefaultTenureMonths applies when the customer reaches the offer
	// stage without stating a repayment period.
	DefaultTenureMonths = 48
)
