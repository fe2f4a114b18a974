package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Canvas     CanvasConfig
	Completion CompletionConfig
	Companion  CompanionConfig
	Exports    ExportsConfig
	CORS       CORSConfig
	Log        LogConfig
}

// CanvasConfig locates the upstream LMS API. Both BaseURL and Token are
// mandatory; startup fails before any network call when either is missing.
type CanvasConfig struct {
	BaseURL string `validate:"required,url"`
	Token   string `validate:"required"`

	// FetchConcurrency bounds parallel per-course fetches during fan-out.
	FetchConcurrency int
}

// CompletionConfig locates the external text-completion provider.
type CompletionConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
	Timeout time.Duration
}

// CompanionConfig tunes the AI companion endpoint.
type CompanionConfig struct {
	Model               string
	MaxCoursesInContext int
}

// ExportsConfig gates the CSV/PDF export endpoints.
type ExportsConfig struct {
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Canvas = CanvasConfig{
		BaseURL:          strings.TrimRight(v.GetString("CANVAS_BASE_URL"), "/"),
		Token:            v.GetString("CANVAS_API_KEY"),
		FetchConcurrency: v.GetInt("CANVAS_FETCH_CONCURRENCY"),
	}

	cfg.Completion = CompletionConfig{
		BaseURL: strings.TrimRight(v.GetString("COMPLETION_BASE_URL"), "/"),
		APIKey:  v.GetString("COMPLETION_API_KEY"),
		Timeout: parseDuration(v.GetString("COMPLETION_TIMEOUT"), 0),
	}

	cfg.Companion = CompanionConfig{
		Model:               v.GetString("AI_MODEL"),
		MaxCoursesInContext: v.GetInt("AI_CONTEXT_MAX_COURSES"),
	}

	cfg.Exports = ExportsConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

// Validate checks the settings the service cannot run without so that
// misconfiguration surfaces before any request is served.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c.Canvas); err != nil {
		return fmt.Errorf("canvas configuration: %w", err)
	}
	if err := validate.Struct(c.Completion); err != nil {
		return fmt.Errorf("completion configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("CANVAS_BASE_URL", "")
	v.SetDefault("CANVAS_API_KEY", "")
	v.SetDefault("CANVAS_FETCH_CONCURRENCY", 4)

	v.SetDefault("COMPLETION_BASE_URL", "https://api.openai.com")
	v.SetDefault("COMPLETION_API_KEY", "")
	v.SetDefault("COMPLETION_TIMEOUT", "0s")

	v.SetDefault("AI_MODEL", "gpt-4o")
	v.SetDefault("AI_CONTEXT_MAX_COURSES", 5)

	v.SetDefault("ENABLE_EXPORTS", true)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
