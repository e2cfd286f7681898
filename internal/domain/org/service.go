package org

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

const (
	defaultDepartmentPerformance = 75
	defaultOpenPositions         = 1
)

var (
	defaultMinSalary = decimal.NewFromInt(40000)
	defaultMaxSalary = decimal.NewFromInt(80000)
)

var (
	ErrMissingFields      = errors.New("please fill in all required fields")
	ErrInvalidPerformance = errors.New("performance must be between 0 and 100")
	ErrNegativeCount      = errors.New("counts cannot be negative")
	ErrInvalidStatus      = errors.New("invalid position status")
	ErrSalaryRange        = errors.New("minimum salary cannot exceed maximum salary")
)

var DepartmentSpec = filter.Spec[Department]{
	Search: []filter.Field[Department]{
		func(d Department) string { return d.Name },
		func(d Department) string { return d.Floor },
	},
	Vars: func(d Department) map[string]any {
		return map[string]any{
			"name":          d.Name,
			"floor":         d.Floor,
			"employeeCount": int64(d.EmployeeCount),
			"performance":   int64(d.Performance),
			"issues":        int64(d.Issues),
		}
	},
}

var PositionSpec = filter.Spec[Position]{
	Search: []filter.Field[Position]{
		func(p Position) string { return p.Title },
		func(p Position) string { return p.Department },
	},
	Dimensions: map[string]filter.Field[Position]{
		"department": func(p Position) string { return p.Department },
		"status":     func(p Position) string { return string(p.Status) },
	},
	Vars: func(p Position) map[string]any {
		return map[string]any{
			"title":         p.Title,
			"department":    p.Department,
			"status":        string(p.Status),
			"openPositions": int64(p.OpenPositions),
			"applicants":    int64(p.Applicants),
			"minSalary":     p.MinSalary.InexactFloat64(),
			"maxSalary":     p.MaxSalary.InexactFloat64(),
		}
	},
}

type Service struct {
	departments *record.Store[Department]
	positions   *record.Store[Position]
	notify      notifications.Notifier
	log         *zap.Logger
}

func NewService(departments *record.Store[Department], positions *record.Store[Position], notify notifications.Notifier, log *zap.Logger) *Service {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{departments: departments, positions: positions, notify: notify, log: log}
}

func (s *Service) ListDepartments(c filter.Criteria) ([]Department, error) {
	return DepartmentSpec.Apply(s.departments.List(), c)
}

func (s *Service) GetDepartment(id int64) (Department, error) {
	return s.departments.Get(id)
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	if dep.Performance == 0 {
		dep.Performance = defaultDepartmentPerformance
	}
	if err := validateDepartment(dep); err != nil {
		return Department{}, err
	}
	created := s.departments.Create(dep)
	s.log.Info("department created", zap.Int64("departmentId", created.ID))
	s.notify.Notify(ctx, notifications.Success("Department Added", created.Name+" department has been added successfully."))
	return created, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, dep Department) (Department, error) {
	if err := validateDepartment(dep); err != nil {
		return Department{}, err
	}
	updated, err := s.departments.Update(id, func(Department) Department { return dep })
	if err != nil {
		return Department{}, err
	}
	s.notify.Notify(ctx, notifications.Success("Department Updated", updated.Name+" department has been updated successfully."))
	return updated, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	dep, err := s.departments.Get(id)
	if err != nil {
		return err
	}
	if err := s.departments.Delete(id); err != nil {
		return err
	}
	s.log.Info("department deleted", zap.Int64("departmentId", id))
	s.notify.Notify(ctx, notifications.Success("Department Deleted", dep.Name+" department has been deleted."))
	return nil
}

func (s *Service) ListPositions(c filter.Criteria) ([]Position, error) {
	return PositionSpec.Apply(s.positions.List(), c)
}

func (s *Service) GetPosition(id int64) (Position, error) {
	return s.positions.Get(id)
}

// OpenPositions sums the vacancies of every position that is open.
func (s *Service) OpenPositions() int {
	total := 0
	for _, p := range s.positions.List() {
		if p.Status == PositionOpen {
			total += p.OpenPositions
		}
	}
	return total
}

func (s *Service) CreatePosition(ctx context.Context, pos Position) (Position, error) {
	if pos.OpenPositions == 0 {
		pos.OpenPositions = defaultOpenPositions
	}
	if pos.MinSalary.IsZero() {
		pos.MinSalary = defaultMinSalary
	}
	if pos.MaxSalary.IsZero() {
		pos.MaxSalary = defaultMaxSalary
	}
	if pos.Status == "" {
		pos.Status = PositionDraft
	}
	if err := validatePosition(pos); err != nil {
		return Position{}, err
	}
	created := s.positions.Create(pos)
	s.log.Info("position created", zap.Int64("positionId", created.ID))
	s.notify.Notify(ctx, notifications.Success("Position Added", created.Title+" position has been added successfully."))
	return created, nil
}

func (s *Service) UpdatePosition(ctx context.Context, id int64, pos Position) (Position, error) {
	if err := validatePosition(pos); err != nil {
		return Position{}, err
	}
	updated, err := s.positions.Update(id, func(Position) Position { return pos })
	if err != nil {
		return Position{}, err
	}
	s.notify.Notify(ctx, notifications.Success("Position Updated", updated.Title+" position has been updated successfully."))
	return updated, nil
}

func (s *Service) DeletePosition(ctx context.Context, id int64) error {
	pos, err := s.positions.Get(id)
	if err != nil {
		return err
	}
	if err := s.positions.Delete(id); err != nil {
		return err
	}
	s.log.Info("position deleted", zap.Int64("positionId", id))
	s.notify.Notify(ctx, notifications.Success("Position Deleted", pos.Title+" position has been deleted."))
	return nil
}

func validateDepartment(d Department) error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Floor) == "" {
		return ErrMissingFields
	}
	if d.Performance < 0 || d.Performance > 100 {
		return ErrInvalidPerformance
	}
	if d.EmployeeCount < 0 || d.Issues < 0 {
		return ErrNegativeCount
	}
	return nil
}

func validatePosition(p Position) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Department) == "" {
		return ErrMissingFields
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.OpenPositions < 0 || p.Applicants < 0 {
		return ErrNegativeCount
	}
	if p.MinSalary.GreaterThan(p.MaxSalary) {
		return ErrSalaryRange
	}
	return nil
}
