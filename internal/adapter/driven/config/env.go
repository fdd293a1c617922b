package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

// EnvPrefix prefixa todas as variáveis de ambiente do servidor.
const EnvPrefix = "FRAUD_DASHBOARD_"

const (
	defaultAddr           = ":8080"
	defaultCacheTTL       = 300
	defaultRatePerSecond  = 10
	defaultRateLimitBurst = 30
)

// LoadServerConfig lê as configurações do servidor do ambiente.
// Arquivos .env são carregados antes, sem sobrescrever variáveis já definidas.
func LoadServerConfig(envFiles ...string) types.ServerConfig {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return types.ServerConfig{
		Addr:               getEnv("ADDR", defaultAddr),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS"),
		CacheTTLSeconds:    getEnvAsInt("CACHE_TTL_SECONDS", defaultCacheTTL),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", defaultRatePerSecond),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", defaultRateLimitBurst),
		AWSProfile:         getEnv("AWS_PROFILE", ""),
		AWSRegion:          getEnv("AWS_REGION", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList lê uma lista separada por vírgulas.
func getEnvAsList(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return []string{}
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
