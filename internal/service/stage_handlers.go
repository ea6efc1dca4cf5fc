package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"loan-assistant-be/internal/constant"
	"loan-assistant-be/internal/dto"
	"loan-assistant-be/internal/pkg/serverutils"
	"loan-assistant-be/pkg/extract"
	"loan-assistant-be/pkg/loan"
	"loan-assistant-be/pkg/prompt"
	"loan-assistant-be/pkg/sanction"
	"loan-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	proceedRe     = regexp.MustCompile(`(?i)\b(proceed|confirm|accept|agree|go ahead|let'?s do)\b`)
	docsConfirmRe = regexp.MustCompile(`(?i)\b(upload(ed)?|done|completed|submitted|verified)\b`)
)

// alternativeTenures are the offer variants computed for the sales pitch.
var alternativeTenures = []int{24, 36, 48, 60}

func (cs *chatService) handleWelcome(ctx context.Context, sess *store.Session, message string) turnResult {
	phone, ok := extract.Phone(message)
	if !ok && sess.Phone != "" {
		phone, ok = sess.Phone, true
	}

	if !ok {
		fallback := "Hello! I can help you get instant pre-approved personal loan offers. May I have your 10-digit mobile number to check your eligibility?"
		reply := cs.generateReply(ctx, prompt.Welcome(cs.opts.LenderName), sess, fallback)
		sess.PhoneAsked = true
		sess.Stage = store.StagePhoneRequest
		return turnResult{reply: reply, transitioned: true}
	}

	return cs.beginOTPChallenge(sess, phone)
}

func (cs *chatService) handlePhoneRequest(_ context.Context, sess *store.Session, message string) turnResult {
	phone, ok := extract.Phone(message)
	if !ok && sess.Phone != "" {
		phone, ok = sess.Phone, true
	}
	if !ok {
		return turnResult{reply: "Please share your 10-digit mobile number so I can check your eligibility."}
	}
	return cs.beginOTPChallenge(sess, phone)
}

// beginOTPChallenge resolves the phone against the CRM table and issues
// the verification code. An OTP is generated at most once per session per
// phone number.
func (cs *chatService) beginOTPChallenge(sess *store.Session, phone string) turnResult {
	if _, found := cs.profiles.FindByPhone(phone); !found {
		transitioned := false
		if sess.Stage == store.StageWelcome {
			sess.Stage = store.StagePhoneRequest
			transitioned = true
		}
		sess.PhoneAsked = true
		return turnResult{
			reply:        "I apologize, but I couldn't find your details for that number. Please try a different number or contact support.",
			transitioned: transitioned,
		}
	}

	if sess.ExpectedOTP == "" || sess.Phone != phone {
		sess.ExpectedOTP = generateOTP()
	}
	sess.Phone = phone
	sess.Stage = store.StageOTPVerification

	reply := fmt.Sprintf(
		"Thank you! I've sent a verification code to %s. Please enter the 4-digit OTP to proceed.\n\n(Demo OTP: %s)",
		phone, sess.ExpectedOTP,
	)
	return turnResult{reply: reply, transitioned: true, demoOTP: sess.ExpectedOTP}
}

func (cs *chatService) handleOTPVerification(_ context.Context, sess *store.Session, message string) turnResult {
	token, ok := extract.OTP(message)
	if !ok {
		return turnResult{reply: "Please enter the 4-digit OTP sent to your number."}
	}

	// Strict equality against the stored challenge. A mismatch re-prompts
	// and never advances the stage.
	if token != sess.ExpectedOTP {
		return turnResult{reply: "The OTP doesn't match. Please check and try again."}
	}

	profile, found := cs.profiles.FindByPhone(sess.Phone)
	if !found {
		return turnResult{reply: "I couldn't find your details anymore. Please share a different mobile number."}
	}

	sess.OTPVerified = true
	sess.SetProfile(profile)
	sess.Stage = store.StageDiscovery

	reply := fmt.Sprintf(
		"Perfect! Welcome %s!\n\nYou have a credit score of %d/900 and you're pre-approved for up to ₹%.1f lakhs.\n\nHow can I assist you with your financial goals today?",
		profile.Name, profile.CreditScore, float64(profile.PreApprovedLimit)/100000,
	)
	return turnResult{
		reply:        reply,
		transitioned: true,
		userProfile: &dto.UserProfileSummary{
			Name:             profile.Name,
			CreditScore:      profile.CreditScore,
			PreApprovedLimit: profile.PreApprovedLimit,
		},
	}
}

func (cs *chatService) handleDiscovery(ctx context.Context, sess *store.Session, message string) turnResult {
	if sess.Amount == 0 {
		if v, ok := extract.Amount(message); ok {
			sess.Amount = v
		}
	}
	if sess.TenureMonth == 0 {
		if v, ok := extract.Tenure(message); ok {
			sess.TenureMonth = v
		}
	}
	if sess.LoanPurpose == "" {
		if v, ok := extract.Purpose(message); ok {
			sess.LoanPurpose = v
		}
	}

	profile := sess.Profile
	discoveryPrompt := prompt.Discovery(prompt.DiscoveryContext{
		CustomerName:     profile.Name,
		Salary:           profile.Salary,
		CreditScore:      profile.CreditScore,
		PreApprovedLimit: profile.PreApprovedLimit,
		Amount:           sess.Amount,
		TenureMonths:     sess.TenureMonth,
		Purpose:          sess.LoanPurpose,
	})

	if sess.Amount > 0 && (sess.LoanPurpose != "" || sess.Amount >= cs.opts.MinLoanAmount) {
		if sess.InterestRate == 0 {
			sess.InterestRate = loan.ProductFor(sess.LoanPurpose).InterestRate
		}
		sess.Stage = store.StageSales

		fallback := fmt.Sprintf("Great, ₹%.1f lakhs it is.", float64(sess.Amount)/100000)
		reply := cs.generateReply(ctx, discoveryPrompt, sess, fallback)
		return turnResult{
			reply:           reply + "\n\nLet me prepare your personalized loan offer...",
			transitioned:    true,
			agentTransition: "Routing to Sales Agent",
		}
	}

	fallback := "What loan amount would work best for your needs, and what is it for?"
	return turnResult{reply: cs.generateReply(ctx, discoveryPrompt, sess, fallback)}
}

func (cs *chatService) handleSales(ctx context.Context, sess *store.Session, message string) turnResult {
	// Tenure can still be renegotiated until the offer is locked.
	if sess.FinalTenure == 0 {
		if v, ok := extract.Tenure(message); ok {
			sess.TenureMonth = v
		}
	}
	if sess.TenureMonth == 0 {
		sess.TenureMonth = cs.opts.DefaultTenure
	}
	if sess.InterestRate == 0 {
		sess.InterestRate = loan.ProductFor(sess.LoanPurpose).InterestRate
	}

	profile := sess.Profile
	principal := float64(sess.Amount)
	emi := loan.CalculateEMI(principal, sess.InterestRate, sess.TenureMonth)
	totalInterest := loan.CalculateTotalInterest(emi, sess.TenureMonth, principal)
	sess.CurrentEMI = emi

	intent := cs.detectIntent(ctx, message, sess.Stage)
	if intent.Agreement || proceedRe.MatchString(message) {
		sess.LockOffer(sess.TenureMonth, emi)
		sess.Stage = store.StageVerification
		return turnResult{
			reply:            "Excellent! Let's proceed with document verification. Please upload the listed documents and confirm once done.",
			transitioned:     true,
			agentTransition:  "Routing to Verification Agent",
			verificationDocs: cs.verificationDocs(sess),
		}
	}

	var alternatives []prompt.Alternative
	for _, t := range alternativeTenures {
		if t == sess.TenureMonth || len(alternatives) == 2 {
			continue
		}
		altEMI := loan.CalculateEMI(principal, sess.InterestRate, t)
		alternatives = append(alternatives, prompt.Alternative{
			TenureMonths:  t,
			EMI:           altEMI,
			TotalInterest: loan.CalculateTotalInterest(altEMI, t, principal),
			SalaryRatio:   altEMI / profile.Salary * 100,
		})
	}

	years := sess.TenureMonth / 12
	projected := profile.CreditScore + years*15
	if projected > 900 {
		projected = 900
	}

	salesPrompt := prompt.Sales(prompt.SalesContext{
		CustomerName:      profile.Name,
		Salary:            profile.Salary,
		CreditScore:       profile.CreditScore,
		Amount:            sess.Amount,
		TenureMonths:      sess.TenureMonth,
		InterestRate:      sess.InterestRate,
		EMI:               emi,
		TotalInterest:     totalInterest,
		TotalPayable:      principal + totalInterest,
		EMISalaryRatio:    emi / profile.Salary * 100,
		ExistingEMIBurden: profile.ExistingEMIBurden(),
		ProjectedScore:    projected,
		Alternatives:      alternatives,
	})

	fallback := fmt.Sprintf(
		"Here's your offer: ₹%.1f lakhs over %d months at %.1f%% p.a. comes to a monthly EMI of ₹%.0f (total interest ₹%.0f). Shall we proceed?",
		principal/100000, sess.TenureMonth, sess.InterestRate, emi, totalInterest,
	)
	return turnResult{reply: cs.generateReply(ctx, salesPrompt, sess, fallback)}
}

func (cs *chatService) handleVerification(ctx context.Context, sess *store.Session, message string) turnResult {
	intent := cs.detectIntent(ctx, message, sess.Stage)
	if intent.Agreement || docsConfirmRe.MatchString(message) {
		cs.markUploaded(sess, constant.DocAadhaar)
		cs.markUploaded(sess, constant.DocPAN)
	}

	docs := cs.verificationDocs(sess)
	if cs.allRequiredUploaded(docs) {
		sess.Stage = store.StageUnderwriting
		return turnResult{
			reply:           "Documents verified! Running the final credit evaluation...",
			transitioned:    true,
			agentTransition: "Routing to Underwriting Agent",
		}
	}

	var required []string
	var uploaded []string
	for _, d := range docs {
		if d.Required {
			required = append(required, d.Label)
		}
		if d.Uploaded {
			uploaded = append(uploaded, d.Label)
		}
	}
	verificationPrompt := prompt.Verification(prompt.VerificationContext{
		CustomerName:      sess.Profile.Name,
		DocumentsUploaded: uploaded,
		RequiredDocuments: required,
	})

	fallback := fmt.Sprintf("To continue, please upload: %s. Confirm once done.", strings.Join(required, ", "))
	return turnResult{
		reply:            cs.generateReply(ctx, verificationPrompt, sess, fallback),
		verificationDocs: docs,
	}
}

// handleUnderwriting evaluates the eligibility rules exactly once per
// session. The decision is stored before any document generation so a
// letter failure can never trigger a re-evaluation.
func (cs *chatService) handleUnderwriting(ctx context.Context, sess *store.Session) turnResult {
	profile := sess.Profile

	if sess.Decision == nil {
		decision := loan.Evaluate(loan.EvaluationInput{
			Amount:             sess.Amount,
			TenureMonths:       sess.FinalTenure,
			EMI:                sess.FinalEMI,
			CreditScore:        profile.CreditScore,
			PreApprovedLimit:   profile.PreApprovedLimit,
			MonthlySalary:      profile.Salary,
			SalarySlipUploaded: sess.SalarySlipUploaded,
		})
		sess.Decision = &store.Decision{Approved: decision.Approved, Reason: decision.Reason}
		if !decision.Approved {
			sess.RejectionReason = decision.Reason
		}
	}

	if !sess.Decision.Approved {
		sess.Stage = store.StageRejected
		reply := fmt.Sprintf(
			"We're sorry, %s.\n\nBased on our policy evaluation, we cannot approve this loan at this time.\n\nReason: %s\n\nPlease contact our support team for alternative options.",
			profile.Name, sess.RejectionReason,
		)
		return turnResult{
			reply:           reply,
			transitioned:    true,
			rejectionReason: sess.RejectionReason,
		}
	}

	if sess.LoanID == "" {
		sess.LoanID = cs.newLoanID()
	}
	sess.Stage = store.StageSanctioned

	letter, err := cs.issueSanctionLetter(ctx, sess)
	if err != nil {
		return turnResult{err: err}
	}

	reply := fmt.Sprintf(
		"Congratulations, %s!\n\nYour loan has been APPROVED!\n\nLoan Amount: ₹%.1f lakhs\nMonthly EMI: ₹%.0f\nTenure: %d months\nInterest Rate: %.1f%% p.a.\n\nYour sanction letter is ready! The loan will be disbursed within 24-48 hours.",
		profile.Name, float64(sess.Amount)/100000, sess.FinalEMI, sess.FinalTenure, sess.InterestRate,
	)
	return turnResult{
		reply:           reply,
		transitioned:    true,
		agentTransition: "Loan Sanctioned",
		offerLetter:     letter,
	}
}

// handleTerminal keeps answering free text after the decision. A
// sanctioned session with no issued letter retries generation without
// re-running underwriting.
func (cs *chatService) handleTerminal(ctx context.Context, sess *store.Session) turnResult {
	if sess.Stage == store.StageSanctioned && !sess.LetterIssued {
		letter, err := cs.issueSanctionLetter(ctx, sess)
		if err != nil {
			return turnResult{err: err}
		}
		return turnResult{
			reply:       "Here is your sanction letter. The loan will be disbursed within 24-48 hours.",
			offerLetter: letter,
		}
	}

	outcome := "sanctioned"
	fallback := "Your loan is sanctioned. Is there anything else I can help you with?"
	if sess.Stage == store.StageRejected {
		outcome = "rejected"
		fallback = "Your application could not be approved in this conversation. Our support team can walk you through alternatives."
	}

	name := "the customer"
	if sess.Profile != nil {
		name = sess.Profile.Name
	}
	return turnResult{reply: cs.generateReply(ctx, prompt.Terminal(name, outcome), sess, fallback)}
}

func (cs *chatService) issueSanctionLetter(ctx context.Context, sess *store.Session) (*dto.OfferLetter, error) {
	artifact, err := cs.sanctionGen.Generate(ctx, sanction.Letter{
		LoanID:       sess.LoanID,
		CustomerName: sess.Profile.Name,
		Amount:       sess.Amount,
		TenureMonths: sess.FinalTenure,
		EMI:          sess.FinalEMI,
		InterestRate: sess.InterestRate,
	})
	if err != nil {
		cs.log.Error("ChatService", "Sanction letter generation failed", map[string]interface{}{
			"session_id": sess.ID,
			"loan_id":    sess.LoanID,
			"error":      err.Error(),
		})
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, "your loan is approved, but the sanction letter could not be generated; please send another message to retry")
	}
	sess.LetterIssued = true
	return &dto.OfferLetter{
		FileName:      artifact.FileName,
		ContentBase64: base64.StdEncoding.EncodeToString(artifact.Content),
	}, nil
}

// verificationDocs builds the document catalogue for the session. The
// salary slip is required only when the requested amount exceeds the
// pre-approved limit.
func (cs *chatService) verificationDocs(sess *store.Session) []dto.VerificationDoc {
	slipRequired := sess.Profile != nil && sess.Amount > sess.Profile.PreApprovedLimit
	return []dto.VerificationDoc{
		{
			Id:           constant.DocAadhaar,
			Label:        "Aadhaar Card",
			Required:     true,
			AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
			Uploaded:     cs.isUploaded(sess, constant.DocAadhaar),
		},
		{
			Id:           constant.DocPAN,
			Label:        "PAN Card",
			Required:     true,
			AllowedTypes: []string{"image/jpeg", "image/png"},
			Uploaded:     cs.isUploaded(sess, constant.DocPAN),
		},
		{
			Id:           constant.DocSalarySlip,
			Label:        "Latest Salary Slip",
			Required:     slipRequired,
			AllowedTypes: []string{"application/pdf"},
			Uploaded:     sess.SalarySlipUploaded,
		},
	}
}

func (cs *chatService) allRequiredUploaded(docs []dto.VerificationDoc) bool {
	for _, d := range docs {
		if d.Required && !d.Uploaded {
			return false
		}
	}
	return true
}

func (cs *chatService) markUploaded(sess *store.Session, docID string) {
	if cs.isUploaded(sess, docID) {
		return
	}
	sess.DocumentsUploaded = append(sess.DocumentsUploaded, docID)
}

func (cs *chatService) isUploaded(sess *store.Session, docID string) bool {
	for _, d := range sess.DocumentsUploaded {
		if d == docID {
			return true
		}
	}
	return false
}

func (cs *chatService) newLoanID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return cs.opts.LoanIDPrefix + suffix
}

func generateOTP() string {
	return fmt.Sprintf("%04d", 1000+rand.Intn(9000))
}
