package directoryhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"employeehub/internal/domain/directory"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/transport/http/api"
	"employeehub/internal/transport/http/middleware"
	"employeehub/internal/transport/http/shared"
)

const teammatesDefault = 4

type Handler struct {
	Service *directory.Service
}

func NewHandler(svc *directory.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Get("/teammates", h.handleTeammates)
		})
	})
	r.Get("/departments", h.handleDepartments)
}

// handleList serves the employee list page. Query parameters adjust the
// session's list state first: a changed search or department rewinds to the
// first page, and a page the result set cannot reach is clamped and written
// back so the session never points past the end.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	sortKey := shared.StringParam(r, "sort")
	if sortKey != nil && !validSortKey(*sortKey) {
		api.Fail(w, http.StatusBadRequest, "invalid_sort", "unknown sort key", requestctx.GetRequestID(r.Context()))
		return
	}

	state := sess.UpdateList(
		shared.StringParam(r, "search"),
		shared.StringParam(r, "department"),
		sortKey,
		shared.IntParam(r, "page"),
	)

	page := directory.Run(h.Service.Snapshot(), directory.Query{
		Search:     state.Search,
		Department: state.Department,
		SortKey:    state.SortKey,
		Page:       state.Page,
	})
	if page.Page != state.Page {
		clamped := page.Page
		state = sess.UpdateList(nil, nil, nil, &clamped)
	}

	api.Success(w, map[string]any{
		"employees":    page.Records,
		"totalMatches": page.TotalMatches,
		"totalPages":   page.TotalPages,
		"page":         page.Page,
		"pageSize":     page.PageSize,
		"state":        state,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	rec, found := h.Service.Get(chi.URLParam(r, "employeeID"))
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleTeammates(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	id := chi.URLParam(r, "employeeID")
	if _, found := h.Service.Get(id); !found {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestctx.GetRequestID(r.Context()))
		return
	}

	limit := shared.Limit(r, "limit", teammatesDefault, 20)
	api.Success(w, map[string]any{
		"teammates": h.Service.Teammates(id, limit),
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"departments": directory.Departments(h.Service.Snapshot()),
	}, requestctx.GetRequestID(r.Context()))
}

func validSortKey(key string) bool {
	switch key {
	case directory.SortByName, directory.SortBySalary, directory.SortByDepartment:
		return true
	}
	return false
}
