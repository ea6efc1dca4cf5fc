package bootstrap

import (
	"context"
	"log"

	"loan-assistant-be/internal/config"
	"loan-assistant-be/internal/constant"
	"loan-assistant-be/internal/controller"
	"loan-assistant-be/internal/pkg/logger"
	"loan-assistant-be/internal/repository"
	"loan-assistant-be/internal/repository/memory"
	"loan-assistant-be/internal/repository/redisstore"
	"loan-assistant-be/internal/service"
	"loan-assistant-be/pkg/llm"
	"loan-assistant-be/pkg/llm/factory"
	"loan-assistant-be/pkg/sanction"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Reply Generator
	// The provider is optional: without one, every turn falls back to the
	// deterministic templates.
	var llmProvider llm.Provider
	provider, err := factory.NewProvider(factory.Config{
		Provider: cfg.Ai.Provider,
		Model:    cfg.Ai.Model,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.Ai.OpenRouterAPIKey,
		Referer:  cfg.App.BaseURL,
		AppTitle: cfg.Loan.LenderName,
	})
	if err != nil {
		log.Printf("[WARN] Reply generator unavailable, using templated replies: %v", err)
	} else {
		llmProvider = provider
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
	}

	// 4. Session Storage
	var sessionRepo repository.ISessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Session.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Session.TTL)
		log.Println("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
		log.Println("[INFO] Using Session Store: MEMORY")
	}

	profileRepo := memory.NewProfileRepository()
	sanctionGen := sanction.NewGenerator(cfg.Loan.LenderName, cfg.Loan.SupportLine)

	publisherService := service.NewPublisherService(constant.StageTransitionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.StageTransitionTopic,
		auditLogger,
	)

	chatService := service.NewChatService(
		sessionRepo,
		profileRepo,
		llmProvider,
		sanctionGen,
		publisherService,
		sysLogger,
		service.ChatOptions{
			LenderName:       cfg.Loan.LenderName,
			LoanIDPrefix:     cfg.Loan.LoanIDPrefix,
			GeneratorTimeout: cfg.Ai.GeneratorTimeout,
			IntentViaLLM:     cfg.Ai.IntentViaLLM,
		},
	)

	return &Container{
		ChatController: controller.NewChatController(chatService),

		ConsumerService: consumerService,
	}
}
