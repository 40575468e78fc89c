package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"employeehub/internal/auth"
	"employeehub/internal/domain/directory"
	"employeehub/internal/domain/navigator"
	"employeehub/internal/platform/metrics"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/source"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
)

const (
	tokenTTL    = 8 * time.Hour
	loadTimeout = 30 * time.Second
)

type Handler struct {
	Gate      *auth.Gate
	Secret    string
	Registry  *navigator.Registry
	Directory *directory.Service
	Source    source.Fetcher
	Metrics   *metrics.Collector
	Log       *zap.Logger
}

func NewHandler(gate *auth.Gate, secret string, registry *navigator.Registry, svc *directory.Service, fetcher source.Fetcher, collector *metrics.Collector, log *zap.Logger) *Handler {
	return &Handler{
		Gate:      gate,
		Secret:    secret,
		Registry:  registry,
		Directory: svc,
		Source:    fetcher,
		Metrics:   collector,
		Log:       log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies the credential pair behind the fixed delay, opens a
// session on the loading screen and kicks off the dataset load. The token
// comes back immediately; the session flips to the list screen once the
// load lands.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Gate.Verify(r.Context(), payload.Username, payload.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", auth.MismatchMessage, requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusServiceUnavailable, "login_aborted", "login was interrupted", requestctx.GetRequestID(r.Context()))
		return
	}

	sess := h.Registry.Create(payload.Username)
	if err := sess.Navigate(navigator.ScreenLoading); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{Username: payload.Username, SessionID: sess.ID()}, tokenTTL)
	if err != nil {
		h.Registry.Delete(sess.ID())
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	h.Metrics.Login()
	go h.loadDataset(sess)

	api.Success(w, map[string]any{
		"token":  token,
		"screen": sess.Screen(),
	}, requestctx.GetRequestID(r.Context()))
}

// loadDataset runs after the login response is written, so it carries its
// own deadline instead of the request context.
func (h *Handler) loadDataset(sess *navigator.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	generation := h.Directory.BeginLoad()
	records, origin := h.Source.Fetch(ctx)
	if h.Directory.Replace(generation, records) {
		h.Log.Info("directory ready",
			zap.String("origin", origin),
			zap.Int("records", len(records)))
	} else {
		h.Log.Info("superseded dataset load dropped", zap.Uint64("generation", generation))
	}
	sess.FinishLoading()
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSession(r.Context()); ok {
		h.Registry.Delete(sess.ID())
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}
