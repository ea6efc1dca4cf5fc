package dto

// ChatRequest is the single synchronous chat-turn input.
type ChatRequest struct {
	SessionId          string `json:"session_id" validate:"required"`
	Message            string `json:"message" validate:"required"`
	Phone              string `json:"phone,omitempty"`
	SalarySlipUploaded bool   `json:"salary_slip_uploaded,omitempty"`
}

// UserProfileSummary is the extracted profile surfaced once identity is
// verified.
type UserProfileSummary struct {
	Name             string `json:"name"`
	CreditScore      int    `json:"credit_score"`
	PreApprovedLimit int64  `json:"pre_approved_limit"`
}

// VerificationDoc describes one required upload.
type VerificationDoc struct {
	Id           string   `json:"id"`
	Label        string   `json:"label"`
	Required     bool     `json:"required"`
	AllowedTypes []string `json:"allowed_types"`
	Uploaded     bool     `json:"uploaded"`
}

// OfferLetter is the generated sanction document payload.
type OfferLetter struct {
	FileName      string `json:"file_name"`
	ContentBase64 string `json:"content_base64"`
}

// ChatResponse is the structured turn result.
type ChatResponse struct {
	Reply            string              `json:"reply,omitempty"`
	Stage            string              `json:"stage"`
	Transitioned     bool                `json:"transitioned"`
	AgentTransition  string              `json:"agent_transition,omitempty"`
	VerificationDocs []VerificationDoc   `json:"verification_docs,omitempty"`
	OfferLetter      *OfferLetter        `json:"offer_letter,omitempty"`
	RejectionReason  string              `json:"rejection_reason,omitempty"`
	UserProfile      *UserProfileSummary `json:"user_profile,omitempty"`
	DemoOTP          string              `json:"demo_otp,omitempty"`
}

// StageTransitionEvent is published on the in-process bus every time the
// state machine advances; the audit consumer persists it to the isolated
// log.
type StageTransitionEvent struct {
	SessionId string `json:"session_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	At        int64  `json:"at"` // unix millis
}
