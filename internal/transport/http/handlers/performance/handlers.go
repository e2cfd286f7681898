package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/performance"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
}

func NewHandler(service *performance.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/{recordID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Put("/{recordID}", h.handleUpdateScores)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Delete("/{recordID}", h.handleDelete)
	})
}

type scoresPayload struct {
	Scores map[string]int `json:"scores"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.List)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	rec, err := h.Service.Get(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateScores(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	var payload scoresPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	if len(payload.Scores) == 0 {
		v.Add("scores", "at least one metric score is required")
	}
	for name, score := range payload.Scores {
		v.Range("scores."+name, score, 0, 100)
	}
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Service.UpdateScores(r.Context(), id, payload.Scores)
	if err != nil {
		shared.FailError(w, requestID, err, performance.ErrScoreRange)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}
