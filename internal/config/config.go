package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Ai      AIConfig
	Loan    LoanConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
}

type AIConfig struct {
	Provider         string // "ollama" or "openrouter"
	Model            string
	OllamaBaseURL    string
	OpenRouterAPIKey string
	GeneratorTimeout time.Duration
	IntentViaLLM     bool // secondary intent signal from the generator
}

type LoanConfig struct {
	LenderName   string
	SupportLine  string
	LoanIDPrefix string
}

type SessionConfig struct {
	Store    string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/stage_audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Ai: AIConfig{
			Provider:         getEnv("LLM_PROVIDER", "ollama"),
			Model:            getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
			GeneratorTimeout: getEnvAsDuration("LLM_TIMEOUT", 20*time.Second),
			IntentViaLLM:     getEnvAsBool("LLM_INTENT_SIGNAL", false),
		},
		Loan: LoanConfig{
			LenderName:   getEnv("LENDER_NAME", "Meridian Capital"),
			SupportLine:  getEnv("SUPPORT_LINE", "support@meridiancapital.example | 1800-209-9191"),
			LoanIDPrefix: getEnv("LOAN_ID_PREFIX", "MCAP"),
		},
		Session: SessionConfig{
			Store:    getEnv("SESSION_STORE", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      getEnvAsDuration("SESSION_TTL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
