package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pictonet/pictonet/api"
	internal_errors "github.com/pictonet/pictonet/internal/errors"
	mw "github.com/pictonet/pictonet/internal/middleware"
	"github.com/pictonet/pictonet/internal/utils"
)

// GetApp returns tenant metadata to a caller the policy admits. Same
// 403/404 discipline as the image route, so listing metadata leaks nothing
// the image route would not.
func (h *Handler) GetApp(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, api.AppResponse{
		Slug:      res.App.Slug,
		Name:      res.App.Name,
		Active:    res.App.Active,
		CreatedAt: res.App.CreatedAt,
	})
}
