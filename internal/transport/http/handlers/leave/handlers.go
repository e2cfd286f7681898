package leavehandler

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-sql/civil"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/export"
	"hrconnect/internal/domain/leave"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
	Now     func() time.Time
}

func NewHandler(service *leave.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/export", h.handleExportRequests)
		r.With(middleware.RequireAnyPermission(h.Perms, auth.PermLeaveRead, auth.PermLeaveApprove)).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Delete("/requests/{requestID}", h.handleDeleteRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/reject", h.handleRejectRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/calendar", h.handleCalendar)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/calendar/export", h.handleCalendarExport)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/calendar/{requestID}/status", h.handleCalendarStatus)
	})
}

type requestPayload struct {
	EmployeeID int64  `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

type statusPayload struct {
	Status string `json:"status"`
}

var typeValues = []string{string(leave.TypeVacation), string(leave.TypeSick), string(leave.TypePersonal), string(leave.TypeOther)}

var invalidRequest = []error{leave.ErrEmployeeNotFound, leave.ErrMissingFields, leave.ErrInvalidType, leave.ErrInvalidRange, leave.ErrInvalidStatus}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	if shared.NotModified(w, r, h.Service.Version()) {
		return
	}
	shared.RespondList(w, r, h.Pages, h.Service.List)
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	req, err := h.Service.Get(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "please select a valid employee")
	}
	v.Required("type", payload.Type, "is required")
	v.Enum("type", payload.Type, typeValues, "must be one of vacation, sick, personal, other")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.Submit(r.Context(), leave.Submission{
		EmployeeID: payload.EmployeeID,
		Type:       leave.Type(strings.ToLower(strings.TrimSpace(payload.Type))),
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(payload.Reason),
	})
	if err != nil {
		shared.FailError(w, requestID, err, invalidRequest...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

func (h *Handler) handleCalendarStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("status", payload.Status, "is required")
	v.Enum("status", payload.Status, []string{string(leave.StatusApproved), string(leave.StatusRejected)}, "must be approved or rejected")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	h.decide(w, r, leave.Status(strings.ToLower(strings.TrimSpace(payload.Status))))
}

// decide answers 200 for a request that was already decided, with changed
// set to false and the status as it was.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, to leave.Status) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	tr, err := h.Service.SetStatus(r.Context(), id, to)
	if err != nil {
		shared.FailError(w, requestID, err, leave.ErrInvalidStatus)
		return
	}
	api.Success(w, tr, requestID)
}

func (h *Handler) handleExportRequests(w http.ResponseWriter, r *http.Request) {
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
	requests, err := h.Service.List(criteria)
	if err != nil {
		shared.FailError(w, requestID, err)
		return
	}

	filename := export.LeaveFilename(civil.DateOf(h.Now()), format)
	shared.WriteAttachment(w, r, filename, export.ContentTypes[format], func(out io.Writer) error {
		switch format {
		case export.FormatXLSX:
			return export.WriteXLSX(out, export.LeaveTable(requests))
		case export.FormatPDF:
			return export.WritePDF(out, export.LeaveTable(requests))
		default:
			return export.WriteLeaveCSV(out, requests)
		}
	})
}

type calendarResponse struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Events []leave.Event `json:"events"`
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, typ, ok := h.calendarQuery(w, r)
	if !ok {
		return
	}
	events := h.Service.CalendarEvents(year, month, typ)
	if events == nil {
		events = []leave.Event{}
	}
	api.Success(w, calendarResponse{Year: year, Month: int(month), Events: events}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	format, ok := shared.ExportFormat(w, r, export.FormatICS, export.FormatCSV)
	if !ok {
		return
	}
	year, month, typ, ok := h.calendarQuery(w, r)
	if !ok {
		return
	}
	events := h.Service.CalendarEvents(year, month, typ)
	stamp := h.Now()

	filename := export.CalendarFilename(year, month, format)
	shared.WriteAttachment(w, r, filename, export.ContentTypes[format], func(out io.Writer) error {
		if format == export.FormatCSV {
			return export.WriteCSV(out, export.CalendarTable(events))
		}
		return export.WriteICS(out, events, stamp)
	})
}

// calendarQuery reads year, month (1-12) and type, defaulting to the
// current month and every type.
func (h *Handler) calendarQuery(w http.ResponseWriter, r *http.Request) (int, time.Month, leave.Type, bool) {
	q := r.URL.Query()
	now := h.Now()
	year, month := now.Year(), now.Month()

	v := shared.NewValidator()
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			v.Add("year", "must be a valid year")
		}
		year = parsed
	}
	if raw := q.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			v.Add("month", "must be between 1 and 12")
		}
		month = time.Month(parsed)
	}
	var typ leave.Type
	if raw := strings.ToLower(strings.TrimSpace(q.Get("type"))); raw != "" && raw != "all" {
		v.Enum("type", raw, typeValues, "must be one of vacation, sick, personal, other")
		typ = leave.Type(raw)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return 0, 0, "", false
	}
	return year, month, typ, true
}
