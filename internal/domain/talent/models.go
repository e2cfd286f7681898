package talent

import "github.com/golang-sql/civil"

type Skill struct {
	ID                 int64  `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	Category           string `json:"category" yaml:"category"`
	Description        string `json:"description" yaml:"description"`
	EmployeesWithSkill int    `json:"employeesWithSkill" yaml:"employeesWithSkill"`
	Importance         int    `json:"importance" yaml:"importance"`
}

func (s Skill) RecordID() int64 { return s.ID }

func (s Skill) WithID(id int64) Skill {
	s.ID = id
	return s
}

type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
	ProgramPlanned   ProgramStatus = "planned"
)

func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramActive, ProgramCompleted, ProgramPlanned:
		return true
	}
	return false
}

type Program struct {
	ID           int64         `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	Participants int           `json:"participants" yaml:"participants"`
	StartDate    civil.Date    `json:"startDate" yaml:"startDate"`
	EndDate      civil.Date    `json:"endDate" yaml:"endDate"`
	Status       ProgramStatus `json:"status" yaml:"status"`
}

func (p Program) RecordID() int64 { return p.ID }

func (p Program) WithID(id int64) Program {
	p.ID = id
	return p
}
