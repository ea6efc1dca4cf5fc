package store

import (
	"time"

	"loan-assistant-be/internal/entity"
)

// Stage is a named phase of the conversation state machine.
// Progression is one-directional; Sanctioned and Rejected are terminal.
type Stage string

const (
	StageWelcome         Stage = "welcome"
	StagePhoneRequest    Stage = "phone_request"
	StageOTPVerification Stage = "otp_verification"
	StageDiscovery       Stage = "discovery"
	StageSales           Stage = "sales"
	StageVerification    Stage = "verification"
	StageUnderwriting    Stage = "underwriting"
	StageSanctioned      Stage = "sanctioned"
	StageRejected        Stage = "rejected"
)

// Terminal reports whether no further stage change is allowed.
func (s Stage) Terminal() bool {
	return s == StageSanctioned || s == StageRejected
}

// stageOrder backs the monotonicity check. Rejected is reachable from
// underwriting only and compares as terminal.
var stageOrder = map[Stage]int{
	StageWelcome:         0,
	StagePhoneRequest:    1,
	StageOTPVerification: 2,
	StageDiscovery:       3,
	StageSales:           4,
	StageVerification:    5,
	StageUnderwriting:    6,
	StageSanctioned:      7,
	StageRejected:        7,
}

// After reports whether s comes at or after other in the documented order.
func (s Stage) After(other Stage) bool {
	return stageOrder[s] >= stageOrder[other]
}

// Message is one turn of the conversation history.
type Message struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Decision is the stored underwriting outcome. It is written once when the
// evaluator runs and never re-evaluated, even if sanction-letter generation
// has to be retried on a later turn.
type Decision struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// Session is the per-conversation state record. Facts accumulate and are
// never cleared once set; Profile is immutable after identity resolution.
type Session struct {
	ID    string `json:"id"`
	Stage Stage  `json:"stage"`

	// Identity
	Phone       string                  `json:"phone,omitempty"`
	ExpectedOTP string                  `json:"expected_otp,omitempty"`
	OTPVerified bool                    `json:"otp_verified"`
	PhoneAsked  bool                    `json:"phone_asked"`
	Profile     *entity.CustomerProfile `json:"profile,omitempty"`

	// Collected facts
	Amount      int64  `json:"amount,omitempty"`
	TenureMonth int    `json:"tenure_months,omitempty"`
	LoanPurpose string `json:"loan_purpose,omitempty"`

	// Offer terms. FinalTenure/FinalEMI are set exactly once at the
	// sales -> verification transition and must not change afterwards.
	InterestRate float64 `json:"interest_rate,omitempty"`
	CurrentEMI   float64 `json:"current_emi,omitempty"`
	FinalTenure  int     `json:"final_tenure,omitempty"`
	FinalEMI     float64 `json:"final_emi,omitempty"`

	// Verification
	DocumentsUploaded  []string `json:"documents_uploaded,omitempty"`
	SalarySlipUploaded bool     `json:"salary_slip_uploaded"`

	// Underwriting outcome
	Decision        *Decision `json:"decision,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`

	// Sanction
	LoanID       string `json:"loan_id,omitempty"`
	LetterIssued bool   `json:"letter_issued"`

	// Append-only transcript. Truncated to a recent window only when
	// handed to the text generator, never in storage.
	History []Message `json:"history"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSession creates the lazily-initialized record for a first message.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Stage:     StageWelcome,
		CreatedAt: time.Now(),
	}
}

// AppendHistory adds one turn to the transcript.
func (s *Session) AppendHistory(role, content string) {
	s.History = append(s.History, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// RecentHistory returns the last n turns for prompting the generator.
func (s *Session) RecentHistory(n int) []Message {
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// SetProfile resolves identity. The profile is immutable within a session;
// a second call is a no-op.
func (s *Session) SetProfile(p *entity.CustomerProfile) {
	if s.Profile == nil {
		s.Profile = p
	}
}

// LockOffer freezes the approved terms at the sales -> verification
// transition. Subsequent calls are no-ops so the offer cannot silently
// change during underwriting.
func (s *Session) LockOffer(tenure int, emi float64) {
	if s.FinalTenure == 0 {
		s.FinalTenure = tenure
		s.FinalEMI = emi
	}
}
