package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoot_Defaults(t *testing.T) {
	path := writeFile(t, "scraper.yaml", "pipeline: {}\n")

	cfg, err := LoadRoot(path)
	if err != nil {
		t.Fatalf("LoadRoot: %v", err)
	}

	p := cfg.Pipeline
	if p.CheckInterval() != 10*time.Minute {
		t.Errorf("check interval = %v", p.CheckInterval())
	}
	if p.Lookback() != 15*time.Minute {
		t.Errorf("lookback = %v", p.Lookback())
	}
	if p.MaxTimeDiff() != 120*time.Second {
		t.Errorf("max time diff = %v", p.MaxTimeDiff())
	}
	if p.ScanLimit != 100 || p.MaxImagesPerPost != 10 {
		t.Errorf("scan limit / image cap = %d / %d", p.ScanLimit, p.MaxImagesPerPost)
	}
	if p.MinBodyLength != 20 || p.MinBodyLengthNoURLs != 10 {
		t.Errorf("body length minimums = %d / %d", p.MinBodyLength, p.MinBodyLengthNoURLs)
	}
	if p.SlugMaxLength != 100 {
		t.Errorf("slug max length = %d", p.SlugMaxLength)
	}
	if p.RequestTimeout() != 15*time.Second {
		t.Errorf("request timeout = %v", p.RequestTimeout())
	}
	if p.SnapshotDir != "snapshots" || p.StagingDir != "downloads" || p.CursorPath != "state/cursor.db" {
		t.Errorf("paths = %q / %q / %q", p.SnapshotDir, p.StagingDir, p.CursorPath)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestLoadRoot_Overrides(t *testing.T) {
	path := writeFile(t, "scraper.yaml", `
pipeline:
  check_interval_seconds: 60
  lookback_minutes: 5
  max_time_diff_seconds: 30
  enable_classifier: true
gemini:
  model: gemini-2.5-pro
`)

	cfg, err := LoadRoot(path)
	if err != nil {
		t.Fatalf("LoadRoot: %v", err)
	}
	if cfg.Pipeline.CheckInterval() != time.Minute {
		t.Errorf("check interval = %v", cfg.Pipeline.CheckInterval())
	}
	if cfg.Pipeline.MaxTimeDiff() != 30*time.Second {
		t.Errorf("max time diff = %v", cfg.Pipeline.MaxTimeDiff())
	}
	if !cfg.Pipeline.EnableClassifier {
		t.Error("classifier flag lost")
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestLoadRoot_RejectsLookbackInsideInterval(t *testing.T) {
	path := writeFile(t, "scraper.yaml", `
pipeline:
  check_interval_seconds: 600
  lookback_minutes: 10
`)

	if _, err := LoadRoot(path); err == nil {
		t.Fatal("a lookback equal to the interval must be rejected")
	}
}

func TestLoadRoot_MissingFile(t *testing.T) {
	if _, err := LoadRoot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadChannels(t *testing.T) {
	path := writeFile(t, "channels.yaml", `
channels:
  - id: ecta-news
    username: ectanews
    default_thumbnail: https://cdn.example.com/default.jpg
  - id: second
    username: secondchan
`)

	cfg, err := LoadChannels(path)
	if err != nil {
		t.Fatalf("LoadChannels: %v", err)
	}
	if len(cfg.Channels) != 2 {
		t.Fatalf("got %d channels", len(cfg.Channels))
	}
	if cfg.Channels[0].ID != "ecta-news" || cfg.Channels[0].Username != "ectanews" {
		t.Errorf("first channel = %+v", cfg.Channels[0])
	}
	if cfg.Channels[0].DefaultThumbnail == "" {
		t.Error("thumbnail lost")
	}
}

func TestLoadChannels_RequiresIDAndUsername(t *testing.T) {
	path := writeFile(t, "channels.yaml", "channels:\n  - id: only-id\n")
	if _, err := LoadChannels(path); err == nil {
		t.Fatal("a channel without a username must be rejected")
	}
}
