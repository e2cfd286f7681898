package policyhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/policy"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *policy.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
}

func NewHandler(service *policy.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermPoliciesRead, h.Perms))
		r.Get("/", h.handleList)
		r.Get("/{policyID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.List)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "policyID")
	if !ok {
		return
	}
	p, err := h.Service.Get(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}
