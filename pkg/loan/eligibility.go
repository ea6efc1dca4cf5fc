package loan

const (
	// MinCreditScore is the hard floor below which no loan is approved.
	MinCreditScore = 700

	// MaxEMISalaryRatio caps the installment against monthly income.
	MaxEMISalaryRatio = 0.5

	// MaxLimitMultiplier caps the amount against the pre-approved limit.
	MaxLimitMultiplier = 2
)

// Rejection reasons, stable strings surfaced to the caller.
const (
	ReasonLowCreditScore = "credit score below minimum threshold"
	ReasonOverTwiceLimit = "amount exceeds twice pre-approved limit"
	ReasonEMITooHigh     = "EMI exceeds 50% of monthly salary"
)

// EvaluationInput is everything the evaluator may look at. It deliberately
// carries no session state so the function stays pure.
type EvaluationInput struct {
	Amount             int64
	TenureMonths       int
	EMI                float64
	CreditScore        int
	PreApprovedLimit   int64
	MonthlySalary      float64
	SalarySlipUploaded bool
}

// Decision is the underwriting outcome. Reason is set only on rejection
// and names the first violated rule.
type Decision struct {
	Approved bool
	Reason   string
}

// Evaluate applies the eligibility rules in their fixed business order.
// First failing rule wins. The ordering is a policy decision, not
// incidental: running the EMI check before the limit checks would change
// outcomes for mid-band amounts, so it must not be reordered.
//
//  1. credit score below 700 rejects outright
//  2. amount above 2x pre-approved limit rejects
//  3. amount above the limit without a salary slip is auto-approved
//     (the permissive mid-band rule; review before any policy reuse)
//  4. EMI above 50% of monthly salary rejects
//  5. everything else is approved
func Evaluate(in EvaluationInput) Decision {
	if in.CreditScore < MinCreditScore {
		return Decision{Approved: false, Reason: ReasonLowCreditScore}
	}
	if in.Amount > MaxLimitMultiplier*in.PreApprovedLimit {
		return Decision{Approved: false, Reason: ReasonOverTwiceLimit}
	}
	if in.Amount > in.PreApprovedLimit && !in.SalarySlipUploaded {
		return Decision{Approved: true}
	}
	if in.EMI > MaxEMISalaryRatio*in.MonthlySalary {
		return Decision{Approved: false, Reason: ReasonEMITooHigh}
	}
	return Decision{Approved: true}
}
