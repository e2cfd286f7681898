package dashboardhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/dashboard"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *dashboard.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Perms)).Get("/dashboard", h.handleSummary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary()
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
