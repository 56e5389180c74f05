package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Root bundles the configuration blocks of configs/scraper.yaml.
	Root struct {
		Pipeline Pipeline `yaml:"pipeline"`
		Gemini   Gemini   `yaml:"gemini"`
	}

	// Pipeline holds the tunables of the ingestion pipeline. Every threshold
	// the grouper and validator apply lives here, never as a magic number in
	// code.
	Pipeline struct {
		CheckIntervalSeconds  int    `yaml:"check_interval_seconds"`
		LookbackMinutes       int    `yaml:"lookback_minutes"`
		ScanLimit             int    `yaml:"scan_limit"`
		MaxTimeDiffSeconds    int    `yaml:"max_time_diff_seconds"`
		MaxImagesPerPost      int    `yaml:"max_images_per_post"`
		MinBodyLength         int    `yaml:"min_body_length"`
		MinBodyLengthNoURLs   int    `yaml:"min_body_length_without_urls"`
		SlugMaxLength         int    `yaml:"slug_max_length"`
		RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
		EnableClassifier      bool   `yaml:"enable_classifier"`
		SnapshotDir           string `yaml:"snapshot_dir"`
		StagingDir            string `yaml:"staging_dir"`
		CursorPath            string `yaml:"cursor_path"`
	}

	// Gemini holds model settings for the AI oracles.
	Gemini struct {
		Model string `yaml:"model"`
	}

	// ChannelsRoot lists the channels to scrape (configs/channels.yaml).
	ChannelsRoot struct {
		Channels []Channel `yaml:"channels"`
	}

	// Channel is one configured source channel.
	Channel struct {
		ID               string `yaml:"id"`
		Username         string `yaml:"username"`
		DefaultThumbnail string `yaml:"default_thumbnail"`
	}
)

// CheckInterval returns the inter-cycle sleep.
func (p Pipeline) CheckInterval() time.Duration {
	return time.Duration(p.CheckIntervalSeconds) * time.Second
}

// Lookback returns the backward scan window.
func (p Pipeline) Lookback() time.Duration {
	return time.Duration(p.LookbackMinutes) * time.Minute
}

// MaxTimeDiff returns the grouping chain threshold.
func (p Pipeline) MaxTimeDiff() time.Duration {
	return time.Duration(p.MaxTimeDiffSeconds) * time.Second
}

// RequestTimeout returns the hard per-call timeout applied to every network
// call the pipeline makes.
func (p Pipeline) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

// LoadRoot reads the main configuration file.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Pipeline.applyDefaults()
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if err := cfg.Pipeline.validate(); err != nil {
		return Root{}, err
	}
	return cfg, nil
}

// LoadChannels reads the channel list file.
func LoadChannels(path string) (ChannelsRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ChannelsRoot{}, fmt.Errorf("read channels config: %w", err)
	}

	var cfg ChannelsRoot
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChannelsRoot{}, fmt.Errorf("unmarshal channels config: %w", err)
	}

	for i, ch := range cfg.Channels {
		if ch.ID == "" || ch.Username == "" {
			return ChannelsRoot{}, fmt.Errorf("channel entry %d: id and username are required", i)
		}
	}
	return cfg, nil
}

func (p *Pipeline) applyDefaults() {
	if p.CheckIntervalSeconds <= 0 {
		p.CheckIntervalSeconds = 600
	}
	if p.LookbackMinutes <= 0 {
		p.LookbackMinutes = 15
	}
	if p.ScanLimit <= 0 {
		p.ScanLimit = 100
	}
	if p.MaxTimeDiffSeconds <= 0 {
		p.MaxTimeDiffSeconds = 120
	}
	if p.MaxImagesPerPost <= 0 {
		p.MaxImagesPerPost = 10
	}
	if p.MinBodyLength <= 0 {
		p.MinBodyLength = 20
	}
	if p.MinBodyLengthNoURLs <= 0 {
		p.MinBodyLengthNoURLs = 10
	}
	if p.SlugMaxLength <= 0 {
		p.SlugMaxLength = 100
	}
	if p.RequestTimeoutSeconds <= 0 {
		p.RequestTimeoutSeconds = 15
	}
	if p.SnapshotDir == "" {
		p.SnapshotDir = "snapshots"
	}
	if p.StagingDir == "" {
		p.StagingDir = "downloads"
	}
	if p.CursorPath == "" {
		p.CursorPath = "state/cursor.db"
	}
}

// validate catches settings that would make the pipeline miss messages.
// Configuration problems are the only fatal error class, and only at startup.
func (p Pipeline) validate() error {
	if p.Lookback() <= p.CheckInterval() {
		return fmt.Errorf("lookback_minutes (%v) must exceed check_interval_seconds (%v), otherwise messages fall between cycles",
			p.Lookback(), p.CheckInterval())
	}
	return nil
}
