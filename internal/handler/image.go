package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pictonet/pictonet/internal/domain"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
	mw "github.com/pictonet/pictonet/internal/middleware"
	"github.com/pictonet/pictonet/internal/utils"
)

// Image serves one photograph. The order is fixed: access decision first,
// path resolution second, delivery last — no content is touched before both
// resolvers succeed.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "app")
	caller := mw.GetUserFromContext(r)

	res, err := h.access.Resolve(slug, caller)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if res.App == nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.NotFound())
		return
	}
	if !res.Allowed {
		utils.WriteErrorAndStatusCode(w, internal_errors.AccessRestricted())
		return
	}

	mediaId, err := uuid.Parse(chi.URLParam(r, "mediaId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.InvalidInput("Invalid media id"))
		return
	}

	size := domain.ParseSizeVariant(r.URL.Query().Get("size"))

	file, err := h.media.Resolve(res.App.Id, mediaId, size)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.sender.Send(w, r, file)
}
