package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pictonet/pictonet/internal/delivery"
	"github.com/pictonet/pictonet/internal/domain"
	"github.com/pictonet/pictonet/internal/logger"
	"github.com/pictonet/pictonet/internal/service"
)

// AccessResolver is the authorization choke point; see service.Access.
type AccessResolver interface {
	Resolve(slug domain.AppSlug, caller *domain.User) (service.Resolution, error)
}

// MediaResolver maps an owned media reference to a servable file.
type MediaResolver interface {
	Resolve(appId domain.AppId, mediaId domain.MediaId, size domain.SizeVariant) (service.ResolvedFile, error)
}

type Handler struct {
	access AccessResolver
	media  MediaResolver
	sender delivery.Sender
	health Pinger
}

func New(access AccessResolver, media MediaResolver, sender delivery.Sender, health Pinger) *Handler {
	return &Handler{access: access, media: media, sender: sender, health: health}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
