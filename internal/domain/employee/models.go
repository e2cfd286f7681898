package employee

import "github.com/golang-sql/civil"

type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on-leave"
	StatusTerminated Status = "terminated"
)

var Statuses = []Status{StatusActive, StatusOnLeave, StatusTerminated}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case "", EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}

// Departments is the fixed list the directory filters offer.
var Departments = []string{
	"Marketing",
	"Engineering",
	"Human Resources",
	"Operations",
	"Analytics",
	"Sales",
	"Finance",
}

type Metrics struct {
	Productivity int `json:"productivity" yaml:"productivity"`
	Quality      int `json:"quality" yaml:"quality"`
	Teamwork     int `json:"teamwork" yaml:"teamwork"`
	Innovation   int `json:"innovation" yaml:"innovation"`
}

type Evaluation struct {
	Date     civil.Date `json:"date" yaml:"date"`
	Score    int        `json:"score" yaml:"score"`
	Feedback string     `json:"feedback" yaml:"feedback"`
}

type Performance struct {
	Current         int          `json:"current" yaml:"current"`
	PreviousQuarter int          `json:"previousQuarter" yaml:"previousQuarter"`
	Metrics         Metrics      `json:"metrics" yaml:"metrics"`
	Evaluations     []Evaluation `json:"evaluations" yaml:"evaluations"`
}

type LeaveBalance struct {
	Annual   int `json:"annual" yaml:"annual"`
	Sick     int `json:"sick" yaml:"sick"`
	Personal int `json:"personal" yaml:"personal"`
}

type Employee struct {
	ID             int64          `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Position       string         `json:"position" yaml:"position"`
	Department     string         `json:"department" yaml:"department"`
	Email          string         `json:"email" yaml:"email"`
	Phone          string         `json:"phone" yaml:"phone"`
	Status         Status         `json:"status" yaml:"status"`
	JoinDate       civil.Date     `json:"joinDate" yaml:"joinDate"`
	Avatar         string         `json:"avatar,omitempty" yaml:"avatar"`
	Initials       string         `json:"initials" yaml:"initials"`
	ManagerName    string         `json:"managerName,omitempty" yaml:"managerName"`
	Location       string         `json:"location,omitempty" yaml:"location"`
	EmploymentType EmploymentType `json:"employmentType,omitempty" yaml:"employmentType"`
	Skillset       []string       `json:"skillset,omitempty" yaml:"skillset"`
	Performance    Performance    `json:"performance" yaml:"performance"`
	LeaveBalance   LeaveBalance   `json:"leaveBalance" yaml:"leaveBalance"`
}

func (e Employee) RecordID() int64 { return e.ID }

func (e Employee) WithID(id int64) Employee {
	e.ID = id
	return e
}

// Patch carries a partial update; nil fields keep the current value.
type Patch struct {
	Name           *string         `json:"name"`
	Position       *string         `json:"position"`
	Department     *string         `json:"department"`
	Email          *string         `json:"email"`
	Phone          *string         `json:"phone"`
	Status         *Status         `json:"status"`
	JoinDate       *civil.Date     `json:"joinDate"`
	Avatar         *string         `json:"avatar"`
	ManagerName    *string         `json:"managerName"`
	Location       *string         `json:"location"`
	EmploymentType *EmploymentType `json:"employmentType"`
	Skillset       []string        `json:"skillset"`
}

// Apply is a shallow merge of p onto e. Renaming re-derives the initials.
func (p Patch) Apply(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
		e.Initials = Initials(e.Name)
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.JoinDate != nil {
		e.JoinDate = *p.JoinDate
	}
	if p.Avatar != nil {
		e.Avatar = *p.Avatar
	}
	if p.ManagerName != nil {
		e.ManagerName = *p.ManagerName
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.EmploymentType != nil {
		e.EmploymentType = *p.EmploymentType
	}
	if p.Skillset != nil {
		e.Skillset = append([]string(nil), p.Skillset...)
	}
	return e
}
