package talenthandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/talent"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

type Handler struct {
	Service *talent.Service
	Perms   middleware.PermissionStore
	Pages   shared.PageSizes
}

func NewHandler(service *talent.Service, perms middleware.PermissionStore, pages shared.PageSizes) *Handler {
	return &Handler{Service: service, Perms: perms, Pages: pages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermTalentRead, h.Perms)
	write := middleware.RequirePermission(auth.PermTalentWrite, h.Perms)

	r.Route("/skills", func(r chi.Router) {
		r.With(read).Get("/", h.handleListSkills)
		r.With(write).Post("/", h.handleCreateSkill)
		r.With(read).Get("/{skillID}", h.handleGetSkill)
		r.With(write).Put("/{skillID}", h.handleUpdateSkill)
		r.With(write).Delete("/{skillID}", h.handleDeleteSkill)
	})
	r.Route("/programs", func(r chi.Router) {
		r.With(read).Get("/", h.handleListPrograms)
		r.With(write).Post("/", h.handleCreateProgram)
		r.With(read).Get("/{programID}", h.handleGetProgram)
		r.With(write).Put("/{programID}", h.handleUpdateProgram)
		r.With(write).Delete("/{programID}", h.handleDeleteProgram)
	})
}

type programPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Participants int    `json:"participants"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Status       string `json:"status"`
}

var invalidTalent = []error{talent.ErrMissingFields, talent.ErrInvalidImportance, talent.ErrInvalidStatus, talent.ErrInvalidRange, talent.ErrNegativeCount}

var programStatuses = []string{string(talent.ProgramActive), string(talent.ProgramCompleted), string(talent.ProgramPlanned)}

func (h *Handler) handleListSkills(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.ListSkills)
}

func (h *Handler) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "skillID")
	if !ok {
		return
	}
	skill, err := h.Service.GetSkill(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, skill, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	skill, ok := decodeSkill(w, r, requestID, true)
	if !ok {
		return
	}
	created, err := h.Service.CreateSkill(r.Context(), skill)
	if err != nil {
		shared.FailError(w, requestID, err, invalidTalent...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "skillID")
	if !ok {
		return
	}
	skill, ok := decodeSkill(w, r, requestID, false)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateSkill(r.Context(), id, skill)
	if err != nil {
		shared.FailError(w, requestID, err, invalidTalent...)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "skillID")
	if !ok {
		return
	}
	if err := h.Service.DeleteSkill(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

// decodeSkill lets a new skill omit importance so the service default applies.
func decodeSkill(w http.ResponseWriter, r *http.Request, requestID string, creating bool) (talent.Skill, bool) {
	var skill talent.Skill
	if !shared.DecodeJSON(w, r, &skill) {
		return talent.Skill{}, false
	}
	skill.Name = strings.TrimSpace(skill.Name)
	skill.Category = strings.TrimSpace(skill.Category)
	skill.Description = strings.TrimSpace(skill.Description)

	v := shared.NewValidator()
	v.Required("name", skill.Name, "is required")
	v.Required("category", skill.Category, "is required")
	if !creating || skill.Importance != 0 {
		v.Range("importance", skill.Importance, 1, 5)
	}
	v.NonNegative("employeesWithSkill", skill.EmployeesWithSkill)
	if v.Reject(w, requestID) {
		return talent.Skill{}, false
	}
	return skill, true
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	shared.RespondList(w, r, h.Pages, h.Service.ListPrograms)
}

func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	program, err := h.Service.GetProgram(id)
	if err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, program, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	program, ok := decodeProgram(w, r, requestID)
	if !ok {
		return
	}
	created, err := h.Service.CreateProgram(r.Context(), program)
	if err != nil {
		shared.FailError(w, requestID, err, invalidTalent...)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	program, ok := decodeProgram(w, r, requestID)
	if !ok {
		return
	}
	updated, err := h.Service.UpdateProgram(r.Context(), id, program)
	if err != nil {
		shared.FailError(w, requestID, err, invalidTalent...)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	if err := h.Service.DeleteProgram(r.Context(), id); err != nil {
		shared.FailError(w, middleware.GetRequestID(r.Context()), err)
		return
	}
	api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func decodeProgram(w http.ResponseWriter, r *http.Request, requestID string) (talent.Program, bool) {
	var payload programPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return talent.Program{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	v.Enum("status", payload.Status, programStatuses, "must be one of active, completed, planned")
	v.NonNegative("participants", payload.Participants)
	if v.Reject(w, requestID) {
		return talent.Program{}, false
	}

	return talent.Program{
		Name:         strings.TrimSpace(payload.Name),
		Description:  strings.TrimSpace(payload.Description),
		Participants: payload.Participants,
		StartDate:    start,
		EndDate:      end,
		Status:       talent.ProgramStatus(strings.ToLower(strings.TrimSpace(payload.Status))),
	}, true
}
