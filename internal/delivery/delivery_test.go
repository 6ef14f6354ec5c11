package delivery

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictonet/pictonet/internal/config"
	"github.com/pictonet/pictonet/internal/service"
)

func resolvedFixture(t *testing.T, content string) service.ResolvedFile {
	t.Helper()
	root := t.TempDir()
	abs := filepath.Join(root, "sunset.jpg")
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	return service.ResolvedFile{AbsPath: abs, RelPath: "travel/sunset.jpg"}
}

func TestNewFromConfig(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		sender, err := NewFromConfig(config.Media{DeliveryMode: "direct"})
		require.NoError(t, err)
		assert.IsType(t, &DirectSender{}, sender)
	})

	t.Run("delegated", func(t *testing.T) {
		sender, err := NewFromConfig(config.Media{DeliveryMode: "delegated", AccelPrefix: "/protected_media"})
		require.NoError(t, err)
		assert.IsType(t, &AccelSender{}, sender)
	})

	t.Run("delegated without prefix", func(t *testing.T) {
		_, err := NewFromConfig(config.Media{DeliveryMode: "delegated"})
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := NewFromConfig(config.Media{DeliveryMode: "smoke-signals"})
		assert.Error(t, err)
	})
}

func TestDirectSender(t *testing.T) {
	t.Run("streams file with private caching", func(t *testing.T) {
		file := resolvedFixture(t, "image-bytes")
		sender := &DirectSender{MaxAgeSeconds: 60}

		rr := httptest.NewRecorder()
		sender.Send(rr, httptest.NewRequest("GET", "/", nil), file)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image-bytes", rr.Body.String())
		assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))
		assert.Equal(t, "private, max-age=60", rr.Header().Get("Cache-Control"))
		assert.Empty(t, rr.Header().Get("X-Accel-Redirect"))
	})

	t.Run("vanished file degrades to 404", func(t *testing.T) {
		sender := &DirectSender{}
		file := service.ResolvedFile{AbsPath: filepath.Join(t.TempDir(), "gone.jpg"), RelPath: "gone.jpg"}

		rr := httptest.NewRecorder()
		sender.Send(rr, httptest.NewRequest("GET", "/", nil), file)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("default max-age applied", func(t *testing.T) {
		file := resolvedFixture(t, "x")
		sender := &DirectSender{}

		rr := httptest.NewRecorder()
		sender.Send(rr, httptest.NewRequest("GET", "/", nil), file)

		assert.Equal(t, "private, max-age=300", rr.Header().Get("Cache-Control"))
	})
}

func TestAccelSender(t *testing.T) {
	sender := &AccelSender{Prefix: "/protected_media", MaxAgeSeconds: 60}
	file := service.ResolvedFile{AbsPath: "/srv/media/travel/sunset.jpg", RelPath: "travel/sunset.jpg"}

	rr := httptest.NewRecorder()
	sender.Send(rr, httptest.NewRequest("GET", "/", nil), file)

	assert.Equal(t, http.StatusOK, rr.Code)
	// No body: the proxy moves the bytes.
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "/protected_media/travel/sunset.jpg", rr.Header().Get("X-Accel-Redirect"))
	assert.Equal(t, "private, max-age=60", rr.Header().Get("Cache-Control"))
}
