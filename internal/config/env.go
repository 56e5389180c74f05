package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvConfig carries credentials and endpoints read from the environment.
type EnvConfig struct {
	GatewayURL   string
	GatewayToken string

	// GeminiAPIKey is optional. When empty the classifier fails open and the
	// translator and titler return fallbacks.
	GeminiAPIKey string

	BunnyUploadEndpoint string
	BunnyPullZone       string

	// APIBaseURL is the upsert endpoint template, with an [id] placeholder
	// for the post id.
	APIBaseURL string

	// DryRun disables the CDN upload and the API upsert; posts only reach
	// the batch snapshot.
	DryRun bool
}

// LoadEnvConfig reads the environment and fails on missing required values.
func LoadEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		GatewayURL:          os.Getenv("TELEGRAM_GATEWAY_URL"),
		GatewayToken:        os.Getenv("TELEGRAM_GATEWAY_TOKEN"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		BunnyUploadEndpoint: os.Getenv("BUNNY_UPLOAD_ENDPOINT"),
		BunnyPullZone:       os.Getenv("BUNNY_PULL_ZONE"),
		APIBaseURL:          os.Getenv("API_BASE_URL"),
		DryRun:              os.Getenv("DRY_RUN") == "1",
	}

	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("TELEGRAM_GATEWAY_URL environment variable is required")
	}

	if !cfg.DryRun {
		if cfg.BunnyUploadEndpoint == "" {
			return nil, fmt.Errorf("BUNNY_UPLOAD_ENDPOINT environment variable is required (or set DRY_RUN=1)")
		}
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("API_BASE_URL environment variable is required (or set DRY_RUN=1)")
		}
		if !strings.Contains(cfg.APIBaseURL, "[id]") {
			return nil, fmt.Errorf("API_BASE_URL must contain an [id] placeholder")
		}
	}

	return cfg, nil
}
