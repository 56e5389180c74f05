// Package snapshot persists each cycle's batch of posts as a JSON file for
// audit and replay.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// Writer writes batch snapshots into a directory.
type Writer struct {
	dir string
}

// NewWriter builds a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores the batch keyed by the cycle timestamp and returns the file
// path. The write goes through a temp file and rename so a crash never
// leaves a truncated snapshot behind.
func (w *Writer) Write(cycleTime time.Time, posts []feed.Post) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal batch: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("batch_%d.json", cycleTime.Unix()))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename snapshot: %w", err)
	}
	return path, nil
}
