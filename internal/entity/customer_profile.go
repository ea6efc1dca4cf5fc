package entity

// PreviousLoan is one running obligation on a customer record.
type PreviousLoan struct {
	LoanName            string  `json:"loan_name"`
	Amount              int64   `json:"amount"`
	InterestRate        float64 `json:"interest_rate"`
	TenureMonths        int     `json:"tenure_months"`
	MonthlyEMI          float64 `json:"monthly_emi"`
	PendingInstallments int     `json:"pending_installments"`
}

// CustomerProfile is the static CRM record resolved by phone number.
// Immutable once attached to a session.
type CustomerProfile struct {
	Name             string         `json:"name"`
	Age              int            `json:"age"`
	Location         string         `json:"location"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email,omitempty"`
	Salary           float64        `json:"salary"`
	CreditScore      int            `json:"credit_score"`
	PreApprovedLimit int64          `json:"pre_approved_limit"`
	PreviousLoans    []PreviousLoan `json:"previous_loans"`
}

// ExistingEMIBurden sums the monthly EMIs of all running loans.
func (p *CustomerProfile) ExistingEMIBurden() float64 {
	var sum float64
	for _, l := range p.PreviousLoans {
		sum += l.MonthlyEMI
	}
	return sum
}
