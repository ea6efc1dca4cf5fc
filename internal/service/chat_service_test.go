package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"loan-assistant-be/internal/dto"
	"loan-assistant-be/internal/pkg/serverutils"
	"loan-assistant-be/internal/repository"
	"loan-assistant-be/internal/repository/memory"
	"loan-assistant-be/pkg/llm"
	"loan-assistant-be/pkg/sanction"
	"loan-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// failingProvider simulates a generator outage; every turn must degrade
// to the deterministic template.
type failingProvider struct{}

func (failingProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("connection refused")
}
func (failingProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("connection refused")
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, sanction.Letter) (*sanction.Artifact, error) {
	return nil, errors.New("render failed")
}

func newTestService(sessions repository.ISessionRepository, provider llm.Provider, gen ISanctionGenerator) IChatService {
	if sessions == nil {
		sessions = memory.NewSessionRepository(time.Hour)
	}
	if gen == nil {
		gen = sanction.NewGenerator("Meridian Capital", "1800-209-9191")
	}
	return NewChatService(
		sessions,
		memory.NewProfileRepository(),
		provider,
		gen,
		nil,
		nopLogger{},
		ChatOptions{LenderName: "Meridian Capital", LoanIDPrefix: "MCAP"},
	)
}

func send(t *testing.T, svc IChatService, req *dto.ChatRequest) *dto.ChatResponse {
	t.Helper()
	res, err := svc.SendMessage(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func sendText(t *testing.T, svc IChatService, sessionID, text string) *dto.ChatResponse {
	return send(t, svc, &dto.ChatRequest{SessionId: sessionID, Message: text})
}

func TestHappyPathToSanction(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "happy-1"

	res := sendText(t, svc, sid, "Hi, I'm looking for a loan")
	assert.Equal(t, "phone_request", res.Stage)
	assert.True(t, res.Transitioned)

	res = sendText(t, svc, sid, "9876543210")
	assert.Equal(t, "otp_verification", res.Stage)
	require.NotEmpty(t, res.DemoOTP)

	res = sendText(t, svc, sid, res.DemoOTP)
	assert.Equal(t, "discovery", res.Stage)
	require.NotNil(t, res.UserProfile)
	assert.Equal(t, "Rahul Sharma", res.UserProfile.Name)
	assert.Equal(t, 820, res.UserProfile.CreditScore)

	res = sendText(t, svc, sid, "I need 5 lakhs for my daughter's wedding")
	assert.Equal(t, "sales", res.Stage)
	assert.Equal(t, "Routing to Sales Agent", res.AgentTransition)

	res = sendText(t, svc, sid, "Let's proceed with this plan")
	assert.Equal(t, "verification", res.Stage)
	assert.Equal(t, "Routing to Verification Agent", res.AgentTransition)
	require.NotEmpty(t, res.VerificationDocs)
	for _, d := range res.VerificationDocs {
		// 5 lakhs is inside Rahul's pre-approved limit
		if d.Id == "salary_slip" {
			assert.False(t, d.Required)
		}
	}

	res = sendText(t, svc, sid, "I have uploaded the documents")
	assert.Equal(t, "underwriting", res.Stage)

	res = sendText(t, svc, sid, "ok")
	assert.Equal(t, "sanctioned", res.Stage)
	assert.Empty(t, res.RejectionReason)
	require.NotNil(t, res.OfferLetter)
	assert.Contains(t, res.OfferLetter.FileName, "Rahul_Sharma")
	assert.NotEmpty(t, res.OfferLetter.ContentBase64)

	// Terminal stage keeps answering without changing state.
	res = sendText(t, svc, sid, "thanks, what happens next?")
	assert.Equal(t, "sanctioned", res.Stage)
	assert.False(t, res.Transitioned)
}

func TestPhoneInFirstMessageStillRequiresOTP(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	res := sendText(t, svc, "direct-1", "Hi, my number is 9876543212")
	assert.Equal(t, "otp_verification", res.Stage)
	assert.NotEmpty(t, res.DemoOTP)
}

func TestUnknownPhoneIsRecoverable(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "unknown-1"

	res := sendText(t, svc, sid, "9999999999")
	assert.Equal(t, "phone_request", res.Stage)
	assert.Empty(t, res.DemoOTP)
	assert.Contains(t, res.Reply, "couldn't find")

	// A known number on the next turn recovers the flow.
	res = sendText(t, svc, sid, "try 9876543210 instead")
	assert.Equal(t, "otp_verification", res.Stage)
	assert.NotEmpty(t, res.DemoOTP)
}

func TestOTPMismatchDoesNotAdvance(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "otp-1"

	sendText(t, svc, sid, "hello")
	res := sendText(t, svc, sid, "9876543210")
	otp := res.DemoOTP
	require.NotEmpty(t, otp)

	wrong := "0000"
	if wrong == otp {
		wrong = "0001"
	}
	res = sendText(t, svc, sid, wrong)
	assert.Equal(t, "otp_verification", res.Stage)
	assert.False(t, res.Transitioned)

	res = sendText(t, svc, sid, otp)
	assert.Equal(t, "discovery", res.Stage)
}

func TestRejectionOnLowCreditScore(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "reject-1"

	res := sendText(t, svc, sid, "9876543214") // Vikram, credit score 650
	res = sendText(t, svc, sid, res.DemoOTP)
	require.Equal(t, "discovery", res.Stage)

	res = sendText(t, svc, sid, "1 lakh for personal expenses")
	require.Equal(t, "sales", res.Stage)

	res = sendText(t, svc, sid, "proceed")
	require.Equal(t, "verification", res.Stage)

	res = sendText(t, svc, sid, "all documents uploaded")
	require.Equal(t, "underwriting", res.Stage)

	res = sendText(t, svc, sid, "ok")
	assert.Equal(t, "rejected", res.Stage)
	assert.Equal(t, "credit score below minimum threshold", res.RejectionReason)
	assert.Nil(t, res.OfferLetter)

	// Rejection is terminal.
	res = sendText(t, svc, sid, "can you reconsider?")
	assert.Equal(t, "rejected", res.Stage)
	assert.False(t, res.Transitioned)
}

func TestSalarySlipRequiredAboveLimit(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "slip-1"

	res := sendText(t, svc, sid, "9876543213") // Sneha, pre-approved 2.5 lakhs
	res = sendText(t, svc, sid, res.DemoOTP)
	res = sendText(t, svc, sid, "I need 3 lakhs for home renovation")
	require.Equal(t, "sales", res.Stage)

	res = sendText(t, svc, sid, "yes, proceed")
	require.Equal(t, "verification", res.Stage)
	var slipRequired bool
	for _, d := range res.VerificationDocs {
		if d.Id == "salary_slip" {
			slipRequired = d.Required
		}
	}
	assert.True(t, slipRequired)

	// Confirming covers identity documents but not the salary slip.
	res = sendText(t, svc, sid, "uploaded the documents")
	assert.Equal(t, "verification", res.Stage)

	res = send(t, svc, &dto.ChatRequest{
		SessionId: sid, Message: "done", SalarySlipUploaded: true,
	})
	assert.Equal(t, "underwriting", res.Stage)

	res = sendText(t, svc, sid, "ok")
	assert.Equal(t, "sanctioned", res.Stage)
	require.NotNil(t, res.OfferLetter)
}

func TestGeneratorOutageFallsBackToTemplates(t *testing.T) {
	svc := newTestService(nil, failingProvider{}, nil)
	sid := "outage-1"

	res := sendText(t, svc, sid, "hello")
	assert.Equal(t, "phone_request", res.Stage)
	assert.NotEmpty(t, res.Reply)

	res = sendText(t, svc, sid, "9876543210")
	assert.Equal(t, "otp_verification", res.Stage)
	assert.NotEmpty(t, res.DemoOTP)
}

func TestLetterFailureKeepsDecisionAndRetries(t *testing.T) {
	sessions := memory.NewSessionRepository(time.Hour)
	broken := newTestService(sessions, nil, failingGenerator{})
	sid := "retry-1"

	res := sendText(t, broken, sid, "9876543210")
	res = sendText(t, broken, sid, res.DemoOTP)
	sendText(t, broken, sid, "5 lakhs for a wedding")
	sendText(t, broken, sid, "proceed")
	res = sendText(t, broken, sid, "uploaded everything")
	require.Equal(t, "underwriting", res.Stage)

	_, err := broken.SendMessage(context.Background(), &dto.ChatRequest{SessionId: sid, Message: "ok"})
	require.Error(t, err)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Status)

	// The approval survived the failed render.
	sess, found := sessions.Get(context.Background(), sid)
	require.True(t, found)
	assert.Equal(t, store.StageSanctioned, sess.Stage)
	require.NotNil(t, sess.Decision)
	assert.True(t, sess.Decision.Approved)
	assert.False(t, sess.LetterIssued)
	loanID := sess.LoanID
	assert.True(t, strings.HasPrefix(loanID, "MCAP"))

	// Same store, working generator: the next turn just renders the letter.
	fixed := newTestService(sessions, nil, nil)
	retry := sendText(t, fixed, sid, "try again please")
	assert.Equal(t, "sanctioned", retry.Stage)
	require.NotNil(t, retry.OfferLetter)

	sess, _ = sessions.Get(context.Background(), sid)
	assert.Equal(t, loanID, sess.LoanID, "underwriting must not rerun on retry")
	assert.True(t, sess.LetterIssued)
}

func TestFactsAreNeverOverwritten(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	sid := "facts-1"

	res := sendText(t, svc, sid, "9876543210")
	res = sendText(t, svc, sid, res.DemoOTP)
	res = sendText(t, svc, sid, "2 lakhs for travel")
	require.Equal(t, "sales", res.Stage)

	// A different amount later in the conversation must not change the
	// captured one; only tenure stays negotiable before the lock.
	res = sendText(t, svc, sid, "what about 8 lakhs over 3 years")
	assert.Equal(t, "sales", res.Stage)
	assert.Contains(t, res.Reply, "2.0 lakhs")
}
