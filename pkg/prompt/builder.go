// Package prompt renders the per-stage instruction sets handed to the text
// generator. Builders are pure functions from typed stage-context structs
// to strings and stay fully decoupled from the state machine: wording
// changes here can never alter control flow.
package prompt

import (
	"fmt"
	"strings"
)

// Alternative is one alternative tenure offer shown in the sales pitch.
type Alternative struct {
	TenureMonths  int
	EMI           float64
	TotalInterest float64
	SalaryRatio   float64 // percent
}

// Welcome instructs the generator for the very first exchange.
func Welcome(lender string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly loan assistant for %s.\n\n", lender)
	b.WriteString("Your ONLY task in this stage: welcome the customer and ask for their 10-digit mobile number to check eligibility.\n")
	b.WriteString("Be warm and professional, explain you can fetch instant pre-approved offers, and keep it to 2-3 sentences.\n")
	b.WriteString("DO NOT discuss loan details yet.")
	return b.String()
}

// DiscoveryContext feeds the needs-discovery instruction set.
type DiscoveryContext struct {
	CustomerName     string
	Salary           float64
	CreditScore      int
	PreApprovedLimit int64
	Amount           int64
	TenureMonths     int
	Purpose          string
}

// Discovery renders the relationship-manager instructions for the needs
// discovery stage.
func Discovery(c DiscoveryContext) string {
	var b strings.Builder
	b.WriteString("You are a senior relationship manager guiding a customer toward a personal loan.\n\n")
	fmt.Fprintf(&b, "Customer: %s, monthly salary ₹%.0f, credit score %d/900, pre-approved for ₹%.1f lakhs.\n",
		c.CustomerName, c.Salary, c.CreditScore, float64(c.PreApprovedLimit)/100000)
	b.WriteString("Collected so far:\n")
	fmt.Fprintf(&b, "- amount: %s\n", rupeesOrMissing(c.Amount))
	fmt.Fprintf(&b, "- tenure: %s\n", monthsOrMissing(c.TenureMonths))
	fmt.Fprintf(&b, "- purpose: %s\n\n", orMissing(c.Purpose))
	b.WriteString("If the amount is missing, ask about their financial goal and suggest an amount within the pre-approved limit.\n")
	b.WriteString("If the amount is known but tenure is not, ask about the preferred repayment period.\n")
	b.WriteString("If both are known, build excitement and ask whether they want to see the personalized offer.\n")
	b.WriteString("Tone: warm, consultative. 2-4 sentences, one question at a time.")
	return b.String()
}

// SalesContext feeds the offer-pitch instruction set.
type SalesContext struct {
	CustomerName      string
	Salary            float64
	CreditScore       int
	Amount            int64
	TenureMonths      int
	InterestRate      float64
	EMI               float64
	TotalInterest     float64
	TotalPayable      float64
	EMISalaryRatio    float64 // percent
	ExistingEMIBurden float64
	ProjectedScore    int
	Alternatives      []Alternative
}

// Sales renders the sales-consultant instructions around a computed offer.
func Sales(c SalesContext) string {
	var b strings.Builder
	b.WriteString("You are an expert loan sales consultant presenting a personalized offer.\n\n")
	fmt.Fprintf(&b, "Customer: %s, salary ₹%.0f/month, credit score %d/900", c.CustomerName, c.Salary, c.CreditScore)
	if c.ExistingEMIBurden > 0 {
		fmt.Fprintf(&b, ", existing EMI obligations ₹%.0f/month", c.ExistingEMIBurden)
	}
	b.WriteString(".\n\nPRIMARY OFFER:\n")
	fmt.Fprintf(&b, "- Amount: ₹%.1f lakhs\n", float64(c.Amount)/100000)
	fmt.Fprintf(&b, "- Tenure: %d months\n", c.TenureMonths)
	fmt.Fprintf(&b, "- Interest: %.1f%% p.a.\n", c.InterestRate)
	fmt.Fprintf(&b, "- Monthly EMI: ₹%.0f (%.1f%% of salary)\n", c.EMI, c.EMISalaryRatio)
	fmt.Fprintf(&b, "- Total interest: ₹%.0f, total payable: ₹%.0f\n", c.TotalInterest, c.TotalPayable)
	if len(c.Alternatives) > 0 {
		b.WriteString("\nALTERNATIVES:\n")
		for _, alt := range c.Alternatives {
			fmt.Fprintf(&b, "- %d months: EMI ₹%.0f (%.1f%% of salary), total interest ₹%.0f\n",
				alt.TenureMonths, alt.EMI, alt.SalaryRatio, alt.TotalInterest)
		}
	}
	if c.ProjectedScore > c.CreditScore {
		fmt.Fprintf(&b, "\nWith timely payments their credit score could reach %d.\n", c.ProjectedScore)
	}
	b.WriteString("\nPresent the offer clearly, handle EMI or rate objections with the alternatives, and close by asking if they want to proceed.\n")
	b.WriteString("Stay factual about the numbers above; never invent different terms. 3-5 sentences.")
	return b.String()
}

// VerificationContext feeds the document-collection instruction set.
type VerificationContext struct {
	CustomerName      string
	DocumentsUploaded []string
	RequiredDocuments []string
}

// Verification renders the document-collection instructions.
func Verification(c VerificationContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are guiding %s through document verification for their approved offer.\n\n", c.CustomerName)
	fmt.Fprintf(&b, "Required documents: %s.\n", strings.Join(c.RequiredDocuments, ", "))
	if len(c.DocumentsUploaded) > 0 {
		fmt.Fprintf(&b, "Already uploaded: %s.\n", strings.Join(c.DocumentsUploaded, ", "))
	} else {
		b.WriteString("Nothing uploaded yet.\n")
	}
	b.WriteString("Ask them to upload the remaining documents and confirm once done. Be reassuring and brief.")
	return b.String()
}

// IntentDetection renders the constrained secondary-signal prompt. The
// generator's answer is advisory only; the deterministic keyword
// classifier always runs and its result is OR-merged with this one.
func IntentDetection(stage string) string {
	var b strings.Builder
	b.WriteString("You are an intent detection system. Respond ONLY with a JSON object, no other text.\n\n")
	fmt.Fprintf(&b, "Current stage: %s\n\n", stage)
	b.WriteString("Detect:\n")
	b.WriteString("- is_agreement: the user agrees to proceed\n")
	b.WriteString("- is_rejection: the user declines\n")
	b.WriteString("- wants_more_info: the user asks for clarification\n\n")
	b.WriteString(`Example: {"is_agreement": true, "is_rejection": false, "wants_more_info": false}`)
	return b.String()
}

// Terminal renders the instruction set for sanctioned/rejected sessions,
// which still answer free-text questions without any stage change.
func Terminal(customerName, outcome string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a loan assistant. The application for %s has already been %s and no further decision will be taken in this conversation.\n", customerName, outcome)
	b.WriteString("Answer follow-up questions helpfully, and direct anything requiring action to customer support. 1-3 sentences.")
	return b.String()
}

func rupeesOrMissing(v int64) string {
	if v == 0 {
		return "not collected"
	}
	return fmt.Sprintf("₹%.1f lakhs", float64(v)/100000)
}

func monthsOrMissing(v int) string {
	if v == 0 {
		return "not mentioned"
	}
	return fmt.Sprintf("%d months", v)
}

func orMissing(s string) string {
	if s == "" {
		return "not mentioned"
	}
	return s
}
