// Package config resolves runtime configuration from the environment, with
// optional .env loading for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultImageDir     = "data/images"
	DefaultOutputDir    = "data/profile_versions"
	DefaultProfileFile  = "data/user_inputs.json"
	DefaultFeedbackFile = "data/performance_feedback.json"
	DefaultMetadataFile = "data/platform_metadata.json"
)

// Config holds the resolved runtime configuration.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// ImageDir is the candidate photo directory.
	ImageDir string

	// OutputDir is the base directory for session folders.
	OutputDir string

	// ProfileFile is the user-profile JSON consumed by the bio writer.
	ProfileFile string

	// FeedbackFile and MetadataFile feed the performance analysis.
	FeedbackFile string
	MetadataFile string

	// MaxImages / TopK / Workers / Timeout tune the selection batch.
	MaxImages int
	TopK      int
	Workers   int
	Timeout   time.Duration
}

// Load reads .env (if present) and the environment. Everything has a default;
// commands that talk to the model must call RequireAPIKey before use.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded configuration from .env")
	}

	cfg := &Config{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		ImageDir:     envOr("MATCHMAXIMUS_IMAGE_DIR", DefaultImageDir),
		OutputDir:    envOr("MATCHMAXIMUS_OUTPUT_DIR", DefaultOutputDir),
		ProfileFile:  envOr("MATCHMAXIMUS_PROFILE_FILE", DefaultProfileFile),
		FeedbackFile: envOr("MATCHMAXIMUS_FEEDBACK_FILE", DefaultFeedbackFile),
		MetadataFile: envOr("MATCHMAXIMUS_METADATA_FILE", DefaultMetadataFile),
		MaxImages:    envInt("MATCHMAXIMUS_MAX_IMAGES", 6),
		TopK:         envInt("MATCHMAXIMUS_TOP_K", 3),
		Workers:      envInt("MATCHMAXIMUS_WORKERS", 4),
		Timeout:      time.Duration(envInt("MATCHMAXIMUS_TIMEOUT_SECONDS", 120)) * time.Second,
	}

	return cfg, nil
}

// RequireAPIKey fails when no Gemini credential is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer setting, using default")
		return fallback
	}
	return n
}
