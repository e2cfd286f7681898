package orghandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/org"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *org.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
}

func NewHandler(service *org.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermOrgRead, h.Perms)
	write := middleware.RequirePermission(auth.PermOrgWrite, h.Perms)

	r.Route("/departments", func(r chi.Router) {
		r.With(read).Get("/", h.handleListDepartments)
		r.With(write).Post("/", h.handleCreateDepartment)
		r.With(read).Get("/{departmentID}", h.handleGetDepartment)
		r.With(write).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(write).Delete("/{departmentID}", h.handleDeleteDepartment)
	})
	r.Route("/positions", func(r chi.Router) {
		r.With(read).Get("/", h.handleListPositions)
		r.With(write).Post("/", h.handleCreatePosition)
		r.With(read).Get("/{positionID}", h.handleGetPosition)
		r.With(write).Put("/{positionID}", h.handleUpdatePosition)
		r.With(write).Delete("/{positionID}", h.handleDeletePosition)
	})
}

var invalidOrg = []error{org.ErrMissingFields, org.ErrInvalidPerformance, org.ErrNegativeCount, org.ErrInvalidStatus, org.ErrSalaryRange}

var positionStatuses = []string{string(org.PositionOpen), string(org.PositionClosed), string(org.PositionDraft)}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.ListDepartments)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	dep, err := h.Service.GetDepartment(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, dep, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	dep, ok := decodeDepartment(w, r, requestID)
	if !ok {
		return
	}
	created, err := h.Service.CreateDepartment(r.Context(), dep)
	if err != nil {
		shared.FailError(w, requestID, err, invalidOrg...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	dep, ok := decodeDepartment(w, r, requestID)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateDepartment(r.Context(), id, dep)
	if err != nil {
		shared.FailError(w, requestID, err, invalidOrg...)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func decodeDepartment(w http.ResponseWriter, r *http.Request, requestID string) (org.Department, bool) {
	var dep org.Department
	if !shared.DecodeJSON(w, r, &dep) {
		return org.Department{}, false
	}
	dep.Name = strings.TrimSpace(dep.Name)
	dep.Floor = strings.TrimSpace(dep.Floor)

	v := shared.NewValidator()
	v.Required("name", dep.Name, "is required")
	v.Required("floor", dep.Floor, "is required")
	v.Range("performance", dep.Performance, 0, 100)
	v.NonNegative("employeeCount", dep.EmployeeCount)
	v.NonNegative("issues", dep.Issues)
	if v.Reject(w, requestID) {
		return org.Department{}, false
	}
	return dep, true
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.ListPositions)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "positionID")
	if !ok {
		return
	}
	pos, err := h.Service.GetPosition(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, pos, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pos, ok := decodePosition(w, r, requestID)
	if !ok {
		return
	}
	created, err := h.Service.CreatePosition(r.Context(), pos)
	if err != nil {
		shared.FailError(w, requestID, err, invalidOrg...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "positionID")
	if !ok {
		return
	}
	pos, ok := decodePosition(w, r, requestID)
	if !ok {
		return
	}
	updated, err := h.Service.UpdatePosition(r.Context(), id, pos)
	if err != nil {
		shared.FailError(w, requestID, err, invalidOrg...)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "positionID")
	if !ok {
		return
	}
	if err := h.Service.DeletePosition(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

// decodePosition accepts salaries as JSON numbers or numeric strings.
func decodePosition(w http.ResponseWriter, r *http.Request, requestID string) (org.Position, bool) {
	var pos org.Position
	if !shared.DecodeJSON(w, r, &pos) {
		return org.Position{}, false
	}
	pos.Title = strings.TrimSpace(pos.Title)
	pos.Department = strings.TrimSpace(pos.Department)
	pos.Status = org.PositionStatus(strings.ToLower(strings.TrimSpace(string(pos.Status))))

	v := shared.NewValidator()
	v.Required("title", pos.Title, "is required")
	v.Required("department", pos.Department, "is required")
	v.Enum("status", string(pos.Status), positionStatuses, "must be one of open, closed, draft")
	v.NonNegative("openPositions", pos.OpenPositions)
	v.NonNegative("applicants", pos.Applicants)
	if pos.MinSalary.IsNegative() {
		v.Add("minSalary", "must not be negative")
	}
	if pos.MaxSalary.IsNegative() {
		v.Add("maxSalary", "must not be negative")
	}
	if v.Reject(w, requestID) {
		return org.Position{}, false
	}
	return pos, true
}
