package loan

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		in           EvaluationInput
		wantApproved bool
		wantReason   string
	}{
		{
			name: "within limit and affordable EMI",
			in: EvaluationInput{
				Amount: 500000, EMI: 13167, CreditScore: 820,
				PreApprovedLimit: 600000, MonthlySalary: 75000,
			},
			wantApproved: true,
		},
		{
			name: "credit score below threshold",
			in: EvaluationInput{
				Amount: 100000, EMI: 3000, CreditScore: 650,
				PreApprovedLimit: 200000, MonthlySalary: 55000,
			},
			wantApproved: false,
			wantReason:   ReasonLowCreditScore,
		},
		{
			name: "amount above twice the limit",
			in: EvaluationInput{
				Amount: 900000, EMI: 5000, CreditScore: 750,
				PreApprovedLimit: 400000, MonthlySalary: 100000,
			},
			wantApproved: false,
			wantReason:   ReasonOverTwiceLimit,
		},
		{
			name: "mid band without salary slip is approved even with heavy EMI",
			in: EvaluationInput{
				Amount: 700000, EMI: 60000, CreditScore: 750,
				PreApprovedLimit: 400000, MonthlySalary: 50000,
				SalarySlipUploaded: false,
			},
			wantApproved: true,
		},
		{
			name: "mid band with salary slip falls through to the EMI check",
			in: EvaluationInput{
				Amount: 700000, EMI: 60000, CreditScore: 750,
				PreApprovedLimit: 400000, MonthlySalary: 50000,
				SalarySlipUploaded: true,
			},
			wantApproved: false,
			wantReason:   ReasonEMITooHigh,
		},
		{
			name: "EMI above half of salary",
			in: EvaluationInput{
				Amount: 300000, EMI: 30000, CreditScore: 780,
				PreApprovedLimit: 450000, MonthlySalary: 50000,
			},
			wantApproved: false,
			wantReason:   ReasonEMITooHigh,
		},
		{
			name: "EMI exactly half of salary passes",
			in: EvaluationInput{
				Amount: 300000, EMI: 25000, CreditScore: 780,
				PreApprovedLimit: 450000, MonthlySalary: 50000,
			},
			wantApproved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.in)
			if got.Approved != tt.wantApproved {
				t.Fatalf("Evaluate() approved = %v, want %v (reason %q)", got.Approved, tt.wantApproved, got.Reason)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Evaluate() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

// The credit score floor must win over every other violation: the rules
// run in a fixed order and the first failure names the reason.
func TestEvaluateRuleOrder(t *testing.T) {
	got := Evaluate(EvaluationInput{
		Amount: 2000000, EMI: 90000, CreditScore: 600,
		PreApprovedLimit: 300000, MonthlySalary: 40000,
	})
	if got.Approved {
		t.Fatal("expected rejection")
	}
	if got.Reason != ReasonLowCreditScore {
		t.Errorf("reason = %q, want %q", got.Reason, ReasonLowCreditScore)
	}
}

func TestProductFor(t *testing.T) {
	tests := []struct {
		purpose  string
		wantRate float64
	}{
		{"home", 8.5},
		{"wedding", 12},
		{"", 12},
	}
	for _, tt := range tests {
		if got := ProductFor(tt.purpose).InterestRate; got != tt.wantRate {
			t.Errorf("ProductFor(%q).InterestRate = %v, want %v", tt.purpose, got, tt.wantRate)
		}
	}
}
