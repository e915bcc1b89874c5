package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dgallion1/resumeforge/internal/bullets"
)

// Prefix namespaces environment variables. Every field also falls back to
// its bare name, so OPENAI_API_KEY works as well as
// RESUMEFORGE_OPENAI_API_KEY.
const Prefix = "RESUMEFORGE"

// Storage backends.
const (
	StorageMemory = "memory"
	StorageS3     = "s3"
	StorageRedis  = "redis"
)

type Config struct {
	Port   string `envconfig:"PORT" default:"8090"`
	APIKey string `envconfig:"API_KEY"`

	// Bullet generation
	OpenAIAPIKey      string  `envconfig:"OPENAI_API_KEY"`
	OpenAIModel       string  `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAITemperature float32 `envconfig:"OPENAI_TEMPERATURE" default:"0.4"`
	OpenAIBaseURL     string  `envconfig:"OPENAI_BASE_URL"`

	// Resume feedback
	AnthropicAPIKey      string  `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel       string  `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-5-20250929"`
	AnthropicTemperature float64 `envconfig:"ANTHROPIC_TEMPERATURE" default:"0.4"`
	AnthropicMaxTokens   int     `envconfig:"ANTHROPIC_MAX_TOKENS" default:"1000"`
	AnthropicBaseURL     string  `envconfig:"ANTHROPIC_BASE_URL"`
	MaxReviewTokens      int     `envconfig:"MAX_REVIEW_TOKENS" default:"30000"`

	MinBullets     int    `envconfig:"MIN_BULLETS" default:"2"`
	MaxBullets     int    `envconfig:"MAX_BULLETS" default:"3"`
	MaxBulletChars int    `envconfig:"MAX_BULLET_CHARS" default:"160"`
	SectionMarker  string `envconfig:"SECTION_MARKER" default:"PROJECT EXPERIENCE"`

	// Worker pool
	WorkerCount  int `envconfig:"WORKER_COUNT" default:"2"`
	MaxQueueSize int `envconfig:"MAX_QUEUE_SIZE" default:"50"`

	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	JobTTL         time.Duration `envconfig:"JOB_TTL" default:"1h"`

	PDFFallbackPdftotext bool `envconfig:"PDF_FALLBACK_PDFTOTEXT" default:"true"`

	// Result storage
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	S3Endpoint     string `envconfig:"S3_ENDPOINT"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey    string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket       string `envconfig:"S3_BUCKET" default:"resumeforge-results"`
	S3UseSSL       bool   `envconfig:"S3_USE_SSL" default:"false"`
	RedisURL       string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Error reporting
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize resets out-of-range values to their defaults.
func (c *Config) normalize() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 2
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 50
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
	if c.JobTTL <= 0 {
		c.JobTTL = time.Hour
	}
	if c.MaxReviewTokens < 0 {
		c.MaxReviewTokens = 0
	}
	if c.AnthropicMaxTokens <= 0 {
		c.AnthropicMaxTokens = 1000
	}
	if c.OpenAITemperature < 0 || c.OpenAITemperature > 2 {
		c.OpenAITemperature = 0.4
	}
	if c.AnthropicTemperature < 0 || c.AnthropicTemperature > 1 {
		c.AnthropicTemperature = 0.4
	}
	if c.MinBullets <= 0 {
		c.MinBullets = 2
	}
	if c.MaxBullets < c.MinBullets {
		c.MaxBullets = max(3, c.MinBullets)
	}
	if c.MaxBulletChars <= 1 {
		c.MaxBulletChars = 160
	}
	if strings.TrimSpace(c.SectionMarker) == "" {
		c.SectionMarker = "PROJECT EXPERIENCE"
	}
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = StorageMemory
	}
}

// Validate checks what the HTTP server needs to start.
func (c Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if err := c.RequireOpenAI(); err != nil {
		errs = append(errs, err)
	}
	if err := c.RequireAnthropic(); err != nil {
		errs = append(errs, err)
	}
	switch c.StorageBackend {
	case StorageMemory, StorageRedis:
	case StorageS3:
		if !c.HasS3() {
			errs = append(errs, errors.New("S3_ENDPOINT, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	return errors.Join(errs...)
}

// RequireOpenAI reports a missing OpenAI key.
func (c Config) RequireOpenAI() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	return nil
}

// RequireAnthropic reports a missing Anthropic key.
func (c Config) RequireAnthropic() error {
	if c.AnthropicAPIKey == "" {
		return errors.New("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func (c Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// Bullets returns the configured bullet limits.
func (c Config) Bullets() bullets.Limits {
	return bullets.Limits{
		Min:      c.MinBullets,
		Max:      c.MaxBullets,
		MaxChars: c.MaxBulletChars,
	}
}
