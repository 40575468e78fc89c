package capturehandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employeehub/internal/domain/capture"
	"employeehub/internal/domain/directory"
	"employeehub/internal/domain/navigator"
	"employeehub/internal/platform/metrics"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
)

type Handler struct {
	Opener    capture.Opener
	Directory *directory.Service
	Metrics   *metrics.Collector
}

func NewHandler(opener capture.Opener, svc *directory.Service, collector *metrics.Collector) *Handler {
	return &Handler{Opener: opener, Directory: svc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/capture", func(r chi.Router) {
		r.Post("/start", h.handleStart)
		r.Post("/countdown", h.handleCountdown)
		r.Post("/snap", h.handleSnap)
		r.Post("/stop", h.handleStop)
		r.Get("/state", h.handleState)
	})
	r.Route("/photo", func(r chi.Router) {
		r.Get("/", h.handlePhoto)
		r.Put("/filter", h.handleSetFilter)
		r.Delete("/", h.handleDiscard)
	})
}

// handleStart acquires the camera for the selected employee. A session whose
// previous capture already completed gets a fresh one, so retakes work.
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if sess.Screen() != navigator.ScreenDetails {
		api.Fail(w, http.StatusConflict, "wrong_screen", "the camera opens from the details screen", requestctx.GetRequestID(r.Context()))
		return
	}

	cs := sess.Capture()
	if cs == nil || captured(cs) {
		rec, found := h.Directory.Get(sess.Selected())
		if !found {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
			return
		}
		cs = capture.NewSession(h.Opener, capture.Subject{
			ID:        rec.ID,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
		})
		sess.AttachCapture(cs, func(*capture.Photo) { h.Metrics.Capture() })
	}

	if err := cs.Acquire(r.Context()); err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "camera_unavailable", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	h.writeState(w, r, sess)
}

func (h *Handler) handleCountdown(w http.ResponseWriter, r *http.Request) {
	sess, cs, ok := h.activeCapture(w, r)
	if !ok {
		return
	}
	// The countdown outlives this request, so it must not inherit the
	// request context.
	if err := cs.StartCountdown(context.Background()); err != nil {
		failCapture(w, r, err)
		return
	}
	h.writeState(w, r, sess)
}

func (h *Handler) handleSnap(w http.ResponseWriter, r *http.Request) {
	sess, cs, ok := h.activeCapture(w, r)
	if !ok {
		return
	}
	if _, err := cs.Snap(); err != nil {
		failCapture(w, r, err)
		return
	}
	h.writeState(w, r, sess)
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if cs := sess.Capture(); cs != nil {
		cs.Stop()
	}
	h.writeState(w, r, sess)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	h.writeState(w, r, sess)
}

// handlePhoto serves the captured photo as a PNG, with an optional filter
// override and download disposition.
func (h *Handler) handlePhoto(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	photo, ok := sess.Photo()
	if !ok {
		api.Fail(w, http.StatusNotFound, "no_photo", "no captured photo", requestctx.GetRequestID(r.Context()))
		return
	}

	data, err := photo.PNG(r.URL.Query().Get("filter"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_filter", "unknown filter", requestctx.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if download := r.URL.Query().Get("download"); download == "1" || download == "true" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", photo.Filename()))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type filterRequest struct {
	Filter string `json:"filter"`
}

func (h *Handler) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	photo, ok := sess.Photo()
	if !ok {
		api.Fail(w, http.StatusNotFound, "no_photo", "no captured photo", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload filterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := photo.SetFilter(payload.Filter); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_filter", "unknown filter", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"filter": photo.Filter}, requestctx.GetRequestID(r.Context()))
}

// handleDiscard is the retake action: back to the details screen, which
// drops the photo.
func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := sess.Navigate(navigator.ScreenDetails); err != nil {
		api.Fail(w, http.StatusConflict, "bad_transition", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	h.writeState(w, r, sess)
}

func (h *Handler) activeCapture(w http.ResponseWriter, r *http.Request) (*navigator.Session, *capture.Session, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return nil, nil, false
	}
	cs := sess.Capture()
	if cs == nil {
		api.Fail(w, http.StatusConflict, "no_stream", capture.ErrNotActive.Error(), requestctx.GetRequestID(r.Context()))
		return nil, nil, false
	}
	return sess, cs, true
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, sess *navigator.Session) {
	payload := map[string]any{
		"screen":  sess.Screen(),
		"filters": capture.FilterNames,
	}
	if cs := sess.Capture(); cs != nil {
		state, remaining, message := cs.Status()
		payload["state"] = state
		payload["remaining"] = remaining
		if message != "" {
			payload["message"] = message
		}
	} else {
		payload["state"] = capture.StateIdle
		payload["remaining"] = 0
	}
	if photo, ok := sess.Photo(); ok {
		payload["photo"] = map[string]any{
			"filename": photo.Filename(),
			"filter":   photo.Filter,
			"takenAt":  photo.Taken,
		}
	}
	api.Success(w, payload, requestctx.GetRequestID(r.Context()))
}

func failCapture(w http.ResponseWriter, r *http.Request, err error) {
	code := "capture_failed"
	status := http.StatusConflict
	switch {
	case errors.Is(err, capture.ErrNotActive):
		code = "no_stream"
	case errors.Is(err, capture.ErrCountdownRunning):
		code = "countdown_running"
	case errors.Is(err, capture.ErrAlreadyCaptured):
		code = "already_captured"
	default:
		status = http.StatusInternalServerError
	}
	api.Fail(w, status, code, err.Error(), requestctx.GetRequestID(r.Context()))
}

func captured(cs *capture.Session) bool {
	state, _, _ := cs.Status()
	return state == capture.StateCaptured
}
