package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           string
	Environment          string
	FirebaseProject      string
	FirebaseAPIKey       string
	ServiceAccountJSON   string
	ServiceAccountPath   string
	StorageBucket        string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	OpenAITimeout        time.Duration
	RedisURL             string
	AllowedOrigins       []string
	AIRateLimitPerMinute int
	ShutdownTimeout      time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5001")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_PATH", "./serviceAccountKey.json")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_TIMEOUT_SECONDS", 30)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("AI_RATE_LIMIT_PER_MINUTE", 10)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	config := &Config{
		ServerPort:           v.GetString("PORT"),
		Environment:          v.GetString("ENVIRONMENT"),
		FirebaseProject:      v.GetString("FIREBASE_PROJECT_ID"),
		FirebaseAPIKey:       v.GetString("FIREBASE_API_KEY"),
		ServiceAccountJSON:   v.GetString("FIREBASE_SERVICE_ACCOUNT_JSON"),
		ServiceAccountPath:   v.GetString("FIREBASE_SERVICE_ACCOUNT_PATH"),
		StorageBucket:        v.GetString("STORAGE_BUCKET"),
		OpenAIAPIKey:         v.GetString("OPENAI_API_KEY"),
		OpenAIModel:          v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL:        v.GetString("OPENAI_BASE_URL"),
		OpenAITimeout:        time.Duration(v.GetInt("OPENAI_TIMEOUT_SECONDS")) * time.Second,
		RedisURL:             v.GetString("REDIS_URL"),
		AllowedOrigins:       splitList(v.GetString("ALLOWED_ORIGINS")),
		AIRateLimitPerMinute: v.GetInt("AI_RATE_LIMIT_PER_MINUTE"),
		ShutdownTimeout:      time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
