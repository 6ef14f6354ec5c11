// Package delivery turns an already-authorized, already-resolved file into an
// HTTP response. It makes no access decisions of its own.
package delivery

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/pictonet/pictonet/internal/config"
	"github.com/pictonet/pictonet/internal/logger"
	"github.com/pictonet/pictonet/internal/service"
)

// Sender emits the response for a resolved file. Implementations are
// interchangeable: callers observe the same success and failure statuses in
// either mode.
type Sender interface {
	Send(w http.ResponseWriter, r *http.Request, file service.ResolvedFile)
}

// NewFromConfig selects the configured delivery backend.
func NewFromConfig(media config.Media) (Sender, error) {
	switch media.DeliveryMode {
	case "direct":
		return &DirectSender{MaxAgeSeconds: media.CacheMaxAgeSeconds}, nil
	case "delegated":
		if media.AccelPrefix == "" {
			return nil, fmt.Errorf("delegated delivery requires accel_prefix")
		}
		return &AccelSender{Prefix: media.AccelPrefix, MaxAgeSeconds: media.CacheMaxAgeSeconds}, nil
	default:
		return nil, fmt.Errorf("unknown delivery mode %q", media.DeliveryMode)
	}
}

const defaultMaxAgeSeconds = 300

// cacheControl keeps intermediary caches from retaining content across
// different callers' authorization contexts.
func cacheControl(maxAge int) string {
	if maxAge <= 0 {
		maxAge = defaultMaxAgeSeconds
	}
	return fmt.Sprintf("private, max-age=%d", maxAge)
}

func contentType(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// DirectSender streams the file from this process.
type DirectSender struct {
	MaxAgeSeconds int
}

func (s *DirectSender) Send(w http.ResponseWriter, r *http.Request, file service.ResolvedFile) {
	f, err := os.Open(file.AbsPath)
	if err != nil {
		// The existence check passed earlier, so the file vanished in
		// between. Degrade to not-found rather than serialize against it.
		if os.IsNotExist(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		logger.Log.Error("media read failed", "path", file.RelPath, "error", err)
		http.Error(w, "Delivery failed", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType(file.RelPath))
	w.Header().Set("Cache-Control", cacheControl(s.MaxAgeSeconds))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		// Status already written; nothing to do but log.
		logger.Log.Error("media stream interrupted", "path", file.RelPath, "error", err)
	}
}

// AccelSender delegates the byte transfer to the fronting reverse proxy via
// an internal-redirect header. The prefix must map to an internal-only
// location in the proxy config, so the header value is unreachable from the
// public network.
type AccelSender struct {
	Prefix        string
	MaxAgeSeconds int
}

func (s *AccelSender) Send(w http.ResponseWriter, r *http.Request, file service.ResolvedFile) {
	w.Header().Set("X-Accel-Redirect", path.Join(s.Prefix, filepath.ToSlash(file.RelPath)))
	w.Header().Set("Content-Type", contentType(file.RelPath))
	w.Header().Set("Cache-Control", cacheControl(s.MaxAgeSeconds))
	w.WriteHeader(http.StatusOK)
}
