package talent

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-sql/civil"
	"go.uber.org/zap"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

const defaultImportance = 3

var (
	ErrMissingFields     = errors.New("please fill in all required fields")
	ErrInvalidImportance = errors.New("importance must be between 1 and 5")
	ErrInvalidStatus     = errors.New("invalid program status")
	ErrInvalidRange      = errors.New("end date cannot be before start date")
	ErrNegativeCount     = errors.New("counts cannot be negative")
)

var SkillSpec = filter.Spec[Skill]{
	Search: []filter.Field[Skill]{
		func(s Skill) string { return s.Name },
		func(s Skill) string { return s.Category },
		func(s Skill) string { return s.Description },
	},
	Dimensions: map[string]filter.Field[Skill]{
		"category": func(s Skill) string { return s.Category },
	},
	Vars: func(s Skill) map[string]any {
		return map[string]any{
			"name":               s.Name,
			"category":           s.Category,
			"employeesWithSkill": int64(s.EmployeesWithSkill),
			"importance":         int64(s.Importance),
		}
	},
}

var ProgramSpec = filter.Spec[Program]{
	Search: []filter.Field[Program]{
		func(p Program) string { return p.Name },
		func(p Program) string { return p.Description },
	},
	Dimensions: map[string]filter.Field[Program]{
		"status": func(p Program) string { return string(p.Status) },
	},
	Date: func(p Program) civil.Date { return p.StartDate },
	Vars: func(p Program) map[string]any {
		return map[string]any{
			"name":         p.Name,
			"status":       string(p.Status),
			"participants": int64(p.Participants),
		}
	},
}

type Service struct {
	skills   *record.Store[Skill]
	programs *record.Store[Program]
	notify   notifications.Notifier
	log      *zap.Logger
}

func NewService(skills *record.Store[Skill], programs *record.Store[Program], notify notifications.Notifier, log *zap.Logger) *Service {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{skills: skills, programs: programs, notify: notify, log: log}
}

func (s *Service) ListSkills(c filter.Criteria) ([]Skill, error) {
	return SkillSpec.Apply(s.skills.List(), c)
}

func (s *Service) GetSkill(id int64) (Skill, error) {
	return s.skills.Get(id)
}

func (s *Service) CreateSkill(ctx context.Context, skill Skill) (Skill, error) {
	if skill.Importance == 0 {
		skill.Importance = defaultImportance
	}
	if err := validateSkill(skill); err != nil {
		return Skill{}, err
	}
	created := s.skills.Create(skill)
	s.log.Info("skill created", zap.Int64("skillId", created.ID))
	s.notify.Notify(ctx, notifications.Success("Skill Added", created.Name+" skill has been added successfully."))
	return created, nil
}

func (s *Service) UpdateSkill(ctx context.Context, id int64, skill Skill) (Skill, error) {
	if err := validateSkill(skill); err != nil {
		return Skill{}, err
	}
	updated, err := s.skills.Update(id, func(Skill) Skill { return skill })
	if err != nil {
		return Skill{}, err
	}
	s.notify.Notify(ctx, notifications.Success("Skill Updated", updated.Name+" skill has been updated successfully."))
	return updated, nil
}

func (s *Service) DeleteSkill(ctx context.Context, id int64) error {
	skill, err := s.skills.Get(id)
	if err != nil {
		return err
	}
	if err := s.skills.Delete(id); err != nil {
		return err
	}
	s.notify.Notify(ctx, notifications.Success("Skill Deleted", skill.Name+" skill has been deleted."))
	return nil
}

func (s *Service) ListPrograms(c filter.Criteria) ([]Program, error) {
	return ProgramSpec.Apply(s.programs.List(), c)
}

func (s *Service) GetProgram(id int64) (Program, error) {
	return s.programs.Get(id)
}

func (s *Service) CreateProgram(ctx context.Context, program Program) (Program, error) {
	if program.Status == "" {
		program.Status = ProgramPlanned
	}
	if err := validateProgram(program); err != nil {
		return Program{}, err
	}
	created := s.programs.Create(program)
	s.log.Info("program created", zap.Int64("programId", created.ID))
	s.notify.Notify(ctx, notifications.Success("Program Added", created.Name+" program has been added successfully."))
	return created, nil
}

func (s *Service) UpdateProgram(ctx context.Context, id int64, program Program) (Program, error) {
	if err := validateProgram(program); err != nil {
		return Program{}, err
	}
	updated, err := s.programs.Update(id, func(Program) Program { return program })
	if err != nil {
		return Program{}, err
	}
	s.notify.Notify(ctx, notifications.Success("Program Updated", updated.Name+" program has been updated successfully."))
	return updated, nil
}

func (s *Service) DeleteProgram(ctx context.Context, id int64) error {
	program, err := s.programs.Get(id)
	if err != nil {
		return err
	}
	if err := s.programs.Delete(id); err != nil {
		return err
	}
	s.notify.Notify(ctx, notifications.Success("Program Deleted", program.Name+" program has been deleted."))
	return nil
}

func validateSkill(s Skill) error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Category) == "" {
		return ErrMissingFields
	}
	if s.Importance < 1 || s.Importance > 5 {
		return ErrInvalidImportance
	}
	if s.EmployeesWithSkill < 0 {
		return ErrNegativeCount
	}
	return nil
}

func validateProgram(p Program) error {
	if strings.TrimSpace(p.Name) == "" || p.StartDate == (civil.Date{}) || p.EndDate == (civil.Date{}) {
		return ErrMissingFields
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidRange
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Participants < 0 {
		return ErrNegativeCount
	}
	return nil
}
