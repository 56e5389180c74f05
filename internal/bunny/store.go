// Package bunny uploads media files to the Bunny CDN storage endpoint and
// maps stored keys to public pull-zone URLs.
package bunny

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxDocumentSize caps non-image uploads. Images are size-managed by the
// storage endpoint itself.
const MaxDocumentSize = 10 * 1024 * 1024

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// Store is the object-store collaborator: hand it a staged file, get back a
// stable public URL.
type Store interface {
	Upload(ctx context.Context, localPath, originalName string) (string, error)
}

// Client talks to the Bunny upload endpoint over multipart HTTP.
type Client struct {
	endpoint string
	pullZone string
	client   *http.Client
}

var _ Store = (*Client)(nil)

// NewClient builds a store client. pullZone is the public URL prefix stored
// keys are served from.
func NewClient(endpoint, pullZone string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		pullZone: strings.TrimRight(pullZone, "/") + "/",
		client:   &http.Client{Timeout: timeout},
	}
}

// Upload stores the file under a fresh uuid key and returns its public URL.
// Images go to image/max/<uuid>.<ext>, everything else to document/<uuid>.<ext>.
func (c *Client) Upload(ctx context.Context, localPath, originalName string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read staged file: %w", err)
	}

	ext := inferExtension(originalName)
	if ext == "" {
		ext = inferExtension(localPath)
	}

	uid := uuid.NewString()
	var key string
	switch {
	case imageExts[ext]:
		if ext == "" {
			ext = "jpg"
		}
		key = fmt.Sprintf("image/max/%s.%s", uid, ext)
	default:
		if len(data) > MaxDocumentSize {
			return "", fmt.Errorf("file %s exceeds the %d byte document limit", originalName, MaxDocumentSize)
		}
		if ext == "" {
			ext = "bin"
		}
		key = fmt.Sprintf("document/%s.%s", uid, ext)
	}

	if err := c.post(ctx, data, key, originalName); err != nil {
		return "", err
	}
	return c.pullZone + key, nil
}

// post sends the bytes as a multipart form: a "file" part plus a "filename"
// field carrying the remote key.
func (c *Client) post(ctx context.Context, data []byte, key, originalName string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", originalName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := w.WriteField("filename", key); err != nil {
		return fmt.Errorf("write filename field: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}

func inferExtension(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return strings.ToLower(ext)
}
