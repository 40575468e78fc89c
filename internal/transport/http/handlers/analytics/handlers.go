package analyticshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"employeehub/internal/domain/analytics"
	"employeehub/internal/domain/directory"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(svc *directory.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/salary", h.handleSalary)
		r.Get("/cities", h.handleCities)
		r.Get("/report", h.handleReport)
	})
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, analytics.SalaryRanking(h.Service.Snapshot()), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCities(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, analytics.ClusterCities(h.Service.Snapshot()), requestctx.GetRequestID(r.Context()))
}

// handleReport streams the directory summary as a PDF download.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	data, err := analytics.DirectoryReport(h.Service.Snapshot())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", requestctx.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="directory_report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
