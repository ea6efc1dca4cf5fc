package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"
	"time"

	"loan-assistant-be/internal/constant"
	"loan-assistant-be/internal/dto"
	"loan-assistant-be/internal/pkg/logger"
	"loan-assistant-be/internal/pkg/serverutils"
	"loan-assistant-be/internal/repository"
	"loan-assistant-be/internal/repository/memory"
	"loan-assistant-be/pkg/extract"
	"loan-assistant-be/pkg/llm"
	"loan-assistant-be/pkg/prompt"
	"loan-assistant-be/pkg/sanction"
	"loan-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// IChatService is the conversation orchestrator: one inbound message
// produces exactly one structured reply.
type IChatService interface {
	SendMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

// ISanctionGenerator renders the approval document.
type ISanctionGenerator interface {
	Generate(ctx context.Context, letter sanction.Letter) (*sanction.Artifact, error)
}

// ChatOptions tunes the orchestrator. Zero values fall back to the
// package defaults in internal/constant.
type ChatOptions struct {
	LenderName       string
	LoanIDPrefix     string
	MinLoanAmount    int64
	DefaultTenure    int
	HistoryWindow    int
	GeneratorTimeout time.Duration
	IntentViaLLM     bool
}

type chatService struct {
	sessions    repository.ISessionRepository
	profiles    *memory.ProfileRepository
	llmProvider llm.Provider
	sanctionGen ISanctionGenerator
	publisher   IPublisherService
	log         logger.ILogger
	opts        ChatOptions

	// One in-flight turn per session. Concurrent turns racing the same
	// record are undefined behavior, so they serialize here.
	locks sync.Map // sessionID -> *sync.Mutex
}

func NewChatService(
	sessions repository.ISessionRepository,
	profiles *memory.ProfileRepository,
	llmProvider llm.Provider,
	sanctionGen ISanctionGenerator,
	publisher IPublisherService,
	log logger.ILogger,
	opts ChatOptions,
) IChatService {
	if opts.MinLoanAmount == 0 {
		opts.MinLoanAmount = constant.MinLoanAmount
	}
	if opts.DefaultTenure == 0 {
		opts.DefaultTenure = constant.DefaultTenureMonths
	}
	if opts.HistoryWindow == 0 {
		opts.HistoryWindow = constant.HistoryWindow
	}
	if opts.GeneratorTimeout == 0 {
		opts.GeneratorTimeout = 20 * time.Second
	}
	return &chatService{
		sessions:    sessions,
		profiles:    profiles,
		llmProvider: llmProvider,
		sanctionGen: sanctionGen,
		publisher:   publisher,
		log:         log,
		opts:        opts,
	}
}

// turnResult is the internal outcome of one stage handler.
type turnResult struct {
	reply            string
	transitioned     bool
	agentTransition  string
	verificationDocs []dto.VerificationDoc
	offerLetter      *dto.OfferLetter
	rejectionReason  string
	userProfile      *dto.UserProfileSummary
	demoOTP          string
	err              error
}

func (cs *chatService) SendMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	mu := cs.sessionLock(req.SessionId)
	mu.Lock()
	defer mu.Unlock()

	sess, found := cs.sessions.Get(ctx, req.SessionId)
	if !found {
		sess = store.NewSession(req.SessionId)
	}
	prevStage := sess.Stage

	// Request-supplied facts merge before extraction; an already-set fact
	// is never overwritten.
	if req.Phone != "" && sess.Phone == "" {
		if phone, ok := extract.Phone(req.Phone); ok {
			sess.Phone = phone
		}
	}
	if req.SalarySlipUploaded && !sess.SalarySlipUploaded {
		sess.SalarySlipUploaded = true
		cs.markUploaded(sess, constant.DocSalarySlip)
	}

	sess.AppendHistory(constant.ChatRoleUser, req.Message)

	res := cs.dispatch(ctx, sess, req.Message)

	if res.reply != "" {
		sess.AppendHistory(constant.ChatRoleAssistant, res.reply)
	}

	// The session is saved even when the turn errors: an underwriting
	// decision must survive a failed sanction-letter generation.
	if err := cs.sessions.Save(ctx, sess); err != nil {
		cs.log.Error("ChatService", "Failed to save session", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return nil, serverutils.NewAppError(fiber.StatusInternalServerError, "failed to persist session state")
	}

	if sess.Stage != prevStage {
		cs.publishTransition(ctx, sess.ID, prevStage, sess.Stage)
	}

	if res.err != nil {
		return nil, res.err
	}

	return &dto.ChatResponse{
		Reply:            res.reply,
		Stage:            string(sess.Stage),
		Transitioned:     res.transitioned,
		AgentTransition:  res.agentTransition,
		VerificationDocs: res.verificationDocs,
		OfferLetter:      res.offerLetter,
		RejectionReason:  res.rejectionReason,
		UserProfile:      res.userProfile,
		DemoOTP:          res.demoOTP,
	}, nil
}

func (cs *chatService) dispatch(ctx context.Context, sess *store.Session, message string) turnResult {
	switch sess.Stage {
	case store.StageWelcome:
		return cs.handleWelcome(ctx, sess, message)
	case store.StagePhoneRequest:
		return cs.handlePhoneRequest(ctx, sess, message)
	case store.StageOTPVerification:
		return cs.handleOTPVerification(ctx, sess, message)
	case store.StageDiscovery:
		return cs.handleDiscovery(ctx, sess, message)
	case store.StageSales:
		return cs.handleSales(ctx, sess, message)
	case store.StageVerification:
		return cs.handleVerification(ctx, sess, message)
	case store.StageUnderwriting:
		return cs.handleUnderwriting(ctx, sess)
	case store.StageSanctioned, store.StageRejected:
		return cs.handleTerminal(ctx, sess)
	default:
		return turnResult{reply: "I'm here to help! How can I assist you?"}
	}
}

func (cs *chatService) sessionLock(id string) *sync.Mutex {
	v, _ := cs.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (cs *chatService) publishTransition(ctx context.Context, sessionID string, from, to store.Stage) {
	if cs.publisher == nil {
		return
	}
	event := dto.StageTransitionEvent{
		SessionId: sessionID,
		From:      string(from),
		To:        string(to),
		At:        time.Now().UnixMilli(),
	}
	if err := cs.publisher.PublishTransition(ctx, event); err != nil {
		cs.log.Warn("ChatService", "Failed to publish stage transition", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// generateReply asks the text generator to phrase the turn. The call is
// bounded by the configured timeout; any failure degrades to the
// deterministic template so the turn never crashes. Transition logic has
// already run by the time this is called.
func (cs *chatService) generateReply(ctx context.Context, system string, sess *store.Session, fallback string) string {
	if cs.llmProvider == nil {
		return fallback
	}
	genCtx, cancel := context.WithTimeout(ctx, cs.opts.GeneratorTimeout)
	defer cancel()

	history := make([]llm.Message, 0, cs.opts.HistoryWindow+1)
	history = append(history, llm.Message{Role: constant.ChatRoleSystem, Content: system})
	for _, m := range sess.RecentHistory(cs.opts.HistoryWindow) {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := cs.llmProvider.Chat(genCtx, history, llm.WithTemperature(0.7))
	if err != nil || strings.TrimSpace(reply) == "" {
		details := map[string]interface{}{"session_id": sess.ID, "stage": string(sess.Stage)}
		if err != nil {
			details["error"] = err.Error()
		}
		cs.log.Warn("ChatService", "Generator unavailable, using templated reply", details)
		return fallback
	}
	return reply
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// detectIntent always runs the deterministic keyword classifier; the
// generator's constrained JSON answer is an optional secondary signal
// OR-merged on top.
func (cs *chatService) detectIntent(ctx context.Context, message string, stage store.Stage) extract.Intent {
	intent := extract.DetectIntent(message)
	if !cs.opts.IntentViaLLM || cs.llmProvider == nil {
		return intent
	}

	genCtx, cancel := context.WithTimeout(ctx, cs.opts.GeneratorTimeout)
	defer cancel()

	raw, err := cs.llmProvider.Chat(genCtx, []llm.Message{
		{Role: constant.ChatRoleSystem, Content: prompt.IntentDetection(string(stage))},
		{Role: constant.ChatRoleUser, Content: message},
	}, llm.WithTemperature(0.3))
	if err != nil {
		cs.log.Warn("ChatService", "Intent signal unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return intent
	}

	var signal extract.Intent
	if m := jsonObjectRe.FindString(raw); m != "" {
		if json.Unmarshal([]byte(m), &signal) == nil {
			return intent.Merge(signal)
		}
	}
	return intent
}
