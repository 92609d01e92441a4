package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sevigo/snippet-review/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	Database DBConfig
	AI       AIConfig
	Logging  logger.Config
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	MaxRequestBytes int64
	RequestTimeout  time.Duration
}

// DBConfig configures the relational store.
type DBConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// AIConfig configures the review generator and its provider.
type AIConfig struct {
	LLMProvider       string
	GeneratorModel    string
	GeminiAPIKey      string
	OllamaHost        string
	VertexProject     string
	VertexLocation    string
	GenerationTimeout time.Duration
	PromptFile        string
}

var supportedProviders = map[string]string{
	"gemini": "gemini-2.5-flash",
	"ollama": "gemma3:latest",
	"vertex": "gemini-2.5-flash",
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_REQUEST_BYTES", 1<<20)
	v.SetDefault("REQUEST_TIMEOUT", "5m")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("VERTEX_LOCATION", "us-central1")
	v.SetDefault("GENERATION_TIMEOUT", "2m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")

	if v.GetString("DATABASE_URL") == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	provider := strings.ToLower(v.GetString("LLM_PROVIDER"))
	defaultModel, ok := supportedProviders[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
	model := v.GetString("GENERATOR_MODEL_NAME")
	if model == "" {
		model = defaultModel
	}

	logLevel := v.GetString("LOG_LEVEL")
	if _, ok := logger.ParseLevel(logLevel); !ok {
		slog.Warn("unrecognized log level, defaulting to info", "provided", logLevel)
		logLevel = "info"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			MaxRequestBytes: v.GetInt64("MAX_REQUEST_BYTES"),
			RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
		},
		Database: DBConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		AI: AIConfig{
			LLMProvider:       provider,
			GeneratorModel:    model,
			GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
			OllamaHost:        v.GetString("OLLAMA_HOST"),
			VertexProject:     v.GetString("VERTEX_PROJECT"),
			VertexLocation:    v.GetString("VERTEX_LOCATION"),
			GenerationTimeout: v.GetDuration("GENERATION_TIMEOUT"),
			PromptFile:        v.GetString("REVIEW_PROMPT_FILE"),
		},
		Logging: logger.Config{
			Level:  logLevel,
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be positive, got %d", c.Server.MaxRequestBytes)
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if c.AI.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	if c.AI.PromptFile != "" {
		if _, err := os.Stat(c.AI.PromptFile); err != nil {
			return fmt.Errorf("REVIEW_PROMPT_FILE is not readable: %w", err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
