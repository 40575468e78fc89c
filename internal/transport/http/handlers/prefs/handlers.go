package prefshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employeehub/internal/platform/requestctx"
	"employeehub/internal/prefs"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
)

type Handler struct {
	Store prefs.Store
}

func NewHandler(store prefs.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/preferences", func(r chi.Router) {
		r.Get("/theme", h.handleGetTheme)
		r.Put("/theme", h.handleSetTheme)
	})
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	theme, err := h.Store.Theme(r.Context(), sess.User())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "prefs_error", "failed to load preferences", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"theme": theme}, requestctx.GetRequestID(r.Context()))
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload themeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.SetTheme(r.Context(), sess.User(), payload.Theme); err != nil {
		if errors.Is(err, prefs.ErrUnknownTheme) {
			api.Fail(w, http.StatusBadRequest, "invalid_theme", "unknown theme", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "prefs_error", "failed to store preferences", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"theme": payload.Theme}, requestctx.GetRequestID(r.Context()))
}
