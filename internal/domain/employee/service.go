package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

var (
	ErrMissingFields = errors.New("name, email, department and position are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidStatus = errors.New("invalid employee status")
	ErrInvalidType   = errors.New("invalid employment type")
)

// Spec is the directory's search and filter configuration.
var Spec = filter.Spec[Employee]{
	Search: []filter.Field[Employee]{
		func(e Employee) string { return e.Name },
		func(e Employee) string { return e.Email },
		func(e Employee) string { return e.Department },
		func(e Employee) string { return e.Position },
	},
	Dimensions: map[string]filter.Field[Employee]{
		"department":     func(e Employee) string { return e.Department },
		"status":         func(e Employee) string { return string(e.Status) },
		"employmentType": func(e Employee) string { return string(e.EmploymentType) },
	},
	Date: func(e Employee) civil.Date { return e.JoinDate },
	Vars: func(e Employee) map[string]any {
		return map[string]any{
			"id":              e.ID,
			"name":            e.Name,
			"email":           e.Email,
			"department":      e.Department,
			"position":        e.Position,
			"status":          string(e.Status),
			"employmentType":  string(e.EmploymentType),
			"location":        e.Location,
			"joinYear":        int64(e.JoinDate.Year),
			"performance":     int64(e.Performance.Current),
			"previousQuarter": int64(e.Performance.PreviousQuarter),
			"annualLeave":     int64(e.LeaveBalance.Annual),
			"sickLeave":       int64(e.LeaveBalance.Sick),
			"personalLeave":   int64(e.LeaveBalance.Personal),
		}
	},
}

type Service struct {
	store  *record.Store[Employee]
	notify notifications.Notifier
	log    *zap.Logger
	now    func() time.Time
}

func NewService(store *record.Store[Employee], notify notifications.Notifier, log *zap.Logger) *Service {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, notify: notify, log: log, now: time.Now}
}

// Version changes whenever the collection changes.
func (s *Service) Version() uint64 {
	return s.store.Version()
}

func (s *Service) List(c filter.Criteria) ([]Employee, error) {
	return Spec.Apply(s.store.List(), c)
}

func (s *Service) Get(id int64) (Employee, error) {
	return s.store.Get(id)
}

func (s *Service) Count() int {
	return s.store.Len()
}

// Create validates the draft, fills the defaults a new hire starts with and
// appends it to the directory.
func (s *Service) Create(ctx context.Context, draft Employee) (Employee, error) {
	if err := validate(draft); err != nil {
		return Employee{}, err
	}
	if draft.Status == "" {
		draft.Status = StatusActive
	}
	if draft.JoinDate == (civil.Date{}) {
		draft.JoinDate = civil.DateOf(s.now())
	}
	draft.Initials = Initials(draft.Name)
	draft.Performance = Performance{
		Current:         80,
		PreviousQuarter: 75,
		Metrics:         Metrics{Productivity: 80, Quality: 80, Teamwork: 80, Innovation: 80},
		Evaluations:     []Evaluation{},
	}
	draft.LeaveBalance = LeaveBalance{Annual: 15, Sick: 10, Personal: 5}

	created := s.store.Create(draft)
	s.log.Info("employee created", zap.Int64("employeeId", created.ID))
	s.notify.Notify(ctx, notifications.Success("Employee added successfully", created.Name))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Employee, error) {
	updated, err := s.store.Modify(id, func(current Employee) (Employee, error) {
		next := patch.Apply(current)
		if err := validate(next); err != nil {
			return current, err
		}
		return next, nil
	})
	if err != nil {
		return Employee{}, err
	}
	s.notify.Notify(ctx, notifications.Success("Employee updated successfully", updated.Name))
	return updated, nil
}

// Deactivate marks the employee terminated. Status changes are unconstrained,
// so this is a plain update.
func (s *Service) Deactivate(ctx context.Context, id int64) (Employee, error) {
	updated, err := s.store.Update(id, func(current Employee) Employee {
		current.Status = StatusTerminated
		return current
	})
	if err != nil {
		return Employee{}, err
	}
	s.notify.Notify(ctx, notifications.Success(updated.Name+" has been deactivated", ""))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Info("employee removed", zap.Int64("employeeId", id))
	s.notify.Notify(ctx, notifications.Success("Employee removed successfully", ""))
	return nil
}

func validate(e Employee) error {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Email) == "" ||
		strings.TrimSpace(e.Department) == "" || strings.TrimSpace(e.Position) == "" {
		return ErrMissingFields
	}
	if !ValidEmail(e.Email) {
		return ErrInvalidEmail
	}
	if e.Status != "" && !e.Status.Valid() {
		return ErrInvalidStatus
	}
	if !e.EmploymentType.Valid() {
		return ErrInvalidType
	}
	return nil
}
