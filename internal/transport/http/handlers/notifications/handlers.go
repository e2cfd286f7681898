package notificationshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

const defaultListLimit = 20

type Handler struct {
	Feed  *notifications.Feed
	Perms middleware.PermissionStore
}

func NewHandler(feed *notifications.Feed, perms middleware.PermissionStore) *Handler {
	return &Handler{Feed: feed, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermNotificationsRead, h.Perms))
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

type listResponse struct {
	Items  []notifications.Notification `json:"items"`
	Unread int                          `json:"unread"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "limit", Reason: "must be a positive integer"}})
			return
		}
		limit = parsed
	}

	api.Success(w, listResponse{Items: h.Feed.List(limit), Unread: h.Feed.Unread()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "notificationID")
	if !ok {
		return
	}
	if !h.Feed.MarkRead(id) {
		api.Fail(w, http.StatusNotFound, "not_found", "notification not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
