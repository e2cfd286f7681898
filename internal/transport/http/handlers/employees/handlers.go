package employeehandler

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/export"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
}

func NewHandler(service *employee.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Delete("/{employeeID}", h.handleDelete)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/{employeeID}/deactivate", h.handleDeactivate)
	})
}

type employeePayload struct {
	Name           string   `json:"name"`
	Position       string   `json:"position"`
	Department     string   `json:"department"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Status         string   `json:"status"`
	JoinDate       string   `json:"joinDate"`
	Avatar         string   `json:"avatar"`
	ManagerName    string   `json:"managerName"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
	Skillset       []string `json:"skillset"`
}

var statusValues = []string{string(employee.StatusActive), string(employee.StatusOnLeave), string(employee.StatusTerminated)}

var employmentValues = []string{string(employee.EmploymentFullTime), string(employee.EmploymentPartTime), string(employee.EmploymentContract)}

var invalidEmployee = []error{employee.ErrMissingFields, employee.ErrInvalidEmail, employee.ErrInvalidStatus, employee.ErrInvalidType}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if shared.NotModified(w, r, h.Service.Version()) {
		return
	}
	shared.RespondList(w, r, h.Pages, h.Service.List)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	e, err := h.Service.Get(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, e, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("email", payload.Email, "is required")
	v.Required("department", payload.Department, "is required")
	v.Required("position", payload.Position, "is required")
	if strings.TrimSpace(payload.Email) != "" && !employee.ValidEmail(strings.TrimSpace(payload.Email)) {
		v.Add("email", "must be a valid email address")
	}
	v.Enum("status", payload.Status, statusValues, "must be one of active, on-leave, terminated")
	v.Enum("employmentType", payload.EmploymentType, employmentValues, "must be one of full-time, part-time, contract")
	joinDate, _ := v.OptionalDate("joinDate", payload.JoinDate)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Create(r.Context(), employee.Employee{
		Name:           strings.TrimSpace(payload.Name),
		Position:       strings.TrimSpace(payload.Position),
		Department:     strings.TrimSpace(payload.Department),
		Email:          strings.TrimSpace(payload.Email),
		Phone:          strings.TrimSpace(payload.Phone),
		Status:         employee.Status(strings.ToLower(strings.TrimSpace(payload.Status))),
		JoinDate:       joinDate,
		Avatar:         payload.Avatar,
		ManagerName:    payload.ManagerName,
		Location:       payload.Location,
		EmploymentType: employee.EmploymentType(strings.ToLower(strings.TrimSpace(payload.EmploymentType))),
		Skillset:       payload.Skillset,
	})
	if err != nil {
		shared.FailError(w, requestID, err, invalidEmployee...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	var patch employee.Patch
	if !shared.DecodeJSON(w, r, &patch) {
		return
	}

	v := shared.NewValidator()
	if patch.Name != nil {
		v.Required("name", *patch.Name, "must not be empty")
	}
	if patch.Email != nil && !employee.ValidEmail(strings.TrimSpace(*patch.Email)) {
		v.Add("email", "must be a valid email address")
	}
	if patch.Status != nil {
		v.Enum("status", string(*patch.Status), statusValues, "must be one of active, on-leave, terminated")
	}
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Service.Update(r.Context(), id, patch)
	if err != nil {
		shared.FailError(w, requestID, err, invalidEmployee...)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	updated, err := h.Service.Deactivate(r.Context(), id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	format, ok := shared.ExportFormat(w, r, export.FormatCSV, export.FormatXLSX, export.FormatPDF)
	if !ok {
		return
	}
	v := shared.NewValidator()
	criteria := shared.ParseCriteria(r, v)
	if v.Reject(w, requestID) {
		return
	}
	employees, err := h.Service.List(criteria)
	if err != nil {
		shared.FailError(w, requestID, err)
		return
	}

	shared.WriteAttachment(w, r, export.EmployeesFilename(format), export.ContentTypes[format], func(out io.Writer) error {
		return render(out, format, employees)
	})
}

func render(out io.Writer, format string, employees []employee.Employee) error {
	switch format {
	case export.FormatXLSX:
		return export.WriteXLSX(out, export.EmployeesTable(employees))
	case export.FormatPDF:
		return export.WritePDF(out, export.EmployeesTable(employees))
	default:
		return export.WriteEmployeesCSV(out, employees)
	}
}
