package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

var (
	ErrEmployeeNotFound = errors.New("please select a valid employee")
	ErrMissingFields    = errors.New("employee, type, start date and end date are required")
	ErrInvalidType      = errors.New("invalid leave type")
	ErrInvalidStatus    = errors.New("status must be approved or rejected")
)

// errAlreadyDecided aborts a store modification without surfacing an error.
var errAlreadyDecided = errors.New("leave request already decided")

// Directory resolves the employee a request is submitted for.
type Directory interface {
	Get(id int64) (employee.Employee, error)
}

// Spec is the leave list's search and filter configuration.
var Spec = filter.Spec[Request]{
	Search: []filter.Field[Request]{
		func(r Request) string { return r.Employee.Name },
		func(r Request) string { return string(r.Type) },
	},
	Dimensions: map[string]filter.Field[Request]{
		"status":     func(r Request) string { return string(r.Status) },
		"type":       func(r Request) string { return string(r.Type) },
		"department": func(r Request) string { return r.Employee.Department },
	},
	Date: func(r Request) civil.Date { return r.StartDate },
	Vars: func(r Request) map[string]any {
		days, _ := CalculateDays(r.StartDate, r.EndDate)
		return map[string]any{
			"id":         r.ID,
			"name":       r.Employee.Name,
			"department": r.Employee.Department,
			"position":   r.Employee.Position,
			"type":       string(r.Type),
			"status":     string(r.Status),
			"days":       int64(days),
			"reason":     r.Reason,
		}
	},
}

type Service struct {
	store     *record.Store[Request]
	directory Directory
	notify    notifications.Notifier
	log       *zap.Logger
	now       func() time.Time
}

func NewService(store *record.Store[Request], directory Directory, notify notifications.Notifier, log *zap.Logger) *Service {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, directory: directory, notify: notify, log: log, now: time.Now}
}

// List returns the requests matching c, newest submission first.
// Version changes whenever the collection changes.
func (s *Service) Version() uint64 {
	return s.store.Version()
}

func (s *Service) List(c filter.Criteria) ([]Request, error) {
	return Spec.Apply(s.store.List(), c)
}

func (s *Service) Get(id int64) (Request, error) {
	return s.store.Get(id)
}

func (s *Service) CountByStatus(status Status) int {
	count := 0
	for _, r := range s.store.List() {
		if r.Status == status {
			count++
		}
	}
	return count
}

// Submit records a new pending request at the head of the list. The
// employee details are copied into the request as they are today.
func (s *Service) Submit(ctx context.Context, in Submission) (Request, error) {
	if in.EmployeeID == 0 || in.Type == "" || in.StartDate == (civil.Date{}) || in.EndDate == (civil.Date{}) {
		return Request{}, ErrMissingFields
	}
	if !in.Type.Valid() {
		return Request{}, ErrInvalidType
	}
	emp, err := s.directory.Get(in.EmployeeID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return Request{}, ErrEmployeeNotFound
		}
		return Request{}, fmt.Errorf("lookup employee: %w", err)
	}
	days, err := CalculateDays(in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}

	created := s.store.CreateFirst(Request{
		Employee: Snapshot{
			Name:       emp.Name,
			Position:   emp.Position,
			Department: emp.Department,
			Avatar:     emp.Avatar,
			Initials:   emp.Initials,
		},
		Type:        in.Type,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Duration:    FormatDuration(days),
		Status:      StatusPending,
		RequestDate: civil.DateOf(s.now()),
		Reason:      in.Reason,
	})
	s.log.Info("leave request submitted",
		zap.Int64("requestId", created.ID),
		zap.Int64("employeeId", in.EmployeeID),
		zap.String("duration", created.Duration),
	)
	s.notify.Notify(ctx, notifications.Success("Leave request submitted successfully", created.Employee.Name))
	return created, nil
}

func (s *Service) Approve(ctx context.Context, id int64) (Transition, error) {
	tr, err := s.transition(id, StatusApproved)
	if err != nil || !tr.Changed {
		return tr, err
	}
	s.notify.Notify(ctx, notifications.Success("Leave request approved successfully", tr.Request.Employee.Name))
	return tr, nil
}

func (s *Service) Reject(ctx context.Context, id int64) (Transition, error) {
	tr, err := s.transition(id, StatusRejected)
	if err != nil || !tr.Changed {
		return tr, err
	}
	s.notify.Notify(ctx, notifications.Error("Leave request rejected", tr.Request.Employee.Name))
	return tr, nil
}

// SetStatus is the calendar's entry point. It goes through Approve and
// Reject, so both views share one set of transition rules.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) (Transition, error) {
	switch status {
	case StatusApproved:
		return s.Approve(ctx, id)
	case StatusRejected:
		return s.Reject(ctx, id)
	default:
		return Transition{}, ErrInvalidStatus
	}
}

// Delete removes the request whatever its status.
func (s *Service) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Info("leave request deleted", zap.Int64("requestId", id))
	s.notify.Notify(ctx, notifications.Info("Leave request deleted", removed.Employee.Name+"'s leave request has been deleted."))
	return nil
}

// CalendarEvents lists the requests overlapping the given month, optionally
// narrowed to one leave type.
func (s *Service) CalendarEvents(year int, month time.Month, typ Type) []Event {
	first := civil.Date{Year: year, Month: month, Day: 1}
	last := civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))

	var events []Event
	for _, r := range s.store.List() {
		if typ != "" && r.Type != typ {
			continue
		}
		if !Overlaps(r.StartDate, r.EndDate, first, last) {
			continue
		}
		events = append(events, Event{
			ID:           r.ID,
			EmployeeName: r.Employee.Name,
			Type:         r.Type,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			Status:       r.Status,
		})
	}
	return events
}

func (s *Service) transition(id int64, to Status) (Transition, error) {
	var from Status
	updated, err := s.store.Modify(id, func(current Request) (Request, error) {
		from = current.Status
		if !current.Status.CanTransition(to) {
			return current, errAlreadyDecided
		}
		current.Status = to
		return current, nil
	})
	switch {
	case errors.Is(err, errAlreadyDecided):
		s.log.Debug("leave transition ignored",
			zap.Int64("requestId", id),
			zap.String("status", string(from)),
			zap.String("target", string(to)),
		)
		return Transition{Request: updated, From: from}, nil
	case err != nil:
		return Transition{}, err
	}
	s.log.Info("leave request decided",
		zap.Int64("requestId", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return Transition{Request: updated, From: from, Changed: true}, nil
}
