package config

import (
	"log"
	"os"
	"strings"

	"bocateria/internal/order"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderLLaMA  = "llama"
)

type Config struct {
	AppEnv string
	Port   string

	// DatabaseURL is optional; without it history and staff accounts live
	// in memory.
	DatabaseURL string
	MenuDBPath  string

	JWTSecret       string
	StaffInviteCode string

	LLMProvider      string
	AssignmentPolicy order.AssignmentPolicy
	AllowedOrigins   []string

	// PublicAppURL is where table join links send diners.
	PublicAppURL string
}

// Load reads .env outside production and fails fast on missing or invalid
// settings.
func Load() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MenuDBPath:      getEnv("MENU_DB_PATH", "data/menu.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StaffInviteCode: os.Getenv("STAFF_INVITE_CODE"),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		AllowedOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		PublicAppURL:    getEnv("PUBLIC_APP_URL", "http://localhost:5173"),
	}

	required := []string{"JWT_SECRET"}
	switch cfg.LLMProvider {
	case ProviderGemini:
		required = append(required, "GEMINI_API_KEY")
	case ProviderLLaMA:
		required = append(required, "LLAMA_API_KEY", "LLAMA_API_URL")
	default:
		log.Fatalf("❌ Unknown LLM_PROVIDER: %s", cfg.LLMProvider)
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	policy, err := order.ParsePolicy(os.Getenv("ORDER_ASSIGNMENT_POLICY"))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	cfg.AssignmentPolicy = policy

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
