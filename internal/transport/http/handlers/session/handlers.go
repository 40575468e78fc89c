package sessionhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employeehub/internal/domain/directory"
	"employeehub/internal/domain/navigator"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
)

type Handler struct {
	Directory *directory.Service
}

func NewHandler(svc *directory.Service) *Handler {
	return &Handler{Directory: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/navigate", h.handleNavigate)
		r.Post("/select", h.handleSelect)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	h.writeSession(w, r, sess)
}

type navigateRequest struct {
	Screen navigator.Screen `json:"screen"`
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := sess.Navigate(payload.Screen); err != nil {
		var bad navigator.ErrBadTransition
		if errors.As(err, &bad) {
			api.Fail(w, http.StatusConflict, "bad_transition", bad.Error(), requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "navigation_failed", "navigation failed", requestctx.GetRequestID(r.Context()))
		return
	}
	h.writeSession(w, r, sess)
}

type selectRequest struct {
	ID string `json:"id"`
}

// handleSelect picks an employee from the list and opens the details
// screen in one step, the way a card click behaves.
func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload selectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	rec, found := h.Directory.Get(payload.ID)
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := sess.Select(rec.ID); err != nil {
		api.Fail(w, http.StatusConflict, "bad_transition", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	if err := sess.Navigate(navigator.ScreenDetails); err != nil {
		api.Fail(w, http.StatusConflict, "bad_transition", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"screen":   sess.Screen(),
		"employee": rec,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, sess *navigator.Session) {
	payload := map[string]any{
		"screen": sess.Screen(),
		"list":   sess.List(),
	}
	if selected := sess.Selected(); selected != "" {
		payload["selectedId"] = selected
	}
	_, hasPhoto := sess.Photo()
	payload["hasPhoto"] = hasPhoto
	api.Success(w, payload, requestctx.GetRequestID(r.Context()))
}
