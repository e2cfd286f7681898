package leave

import "github.com/golang-sql/civil"

type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeOther    Type = "other"
)

var Types = []Type{TypeVacation, TypeSick, TypePersonal, TypeOther}

func (t Type) Valid() bool {
	switch t {
	case TypeVacation, TypeSick, TypePersonal, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a request in status s may move to next.
// Only pending requests move, and only to a decision.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// Snapshot is the employee as they were when the request was submitted.
// It is never re-joined against the directory.
type Snapshot struct {
	Name       string `json:"name" yaml:"name"`
	Position   string `json:"position" yaml:"position"`
	Department string `json:"department" yaml:"department"`
	Avatar     string `json:"avatar,omitempty" yaml:"avatar"`
	Initials   string `json:"initials" yaml:"initials"`
}

type Request struct {
	ID          int64      `json:"id" yaml:"id"`
	Employee    Snapshot   `json:"employee" yaml:"employee"`
	Type        Type       `json:"type" yaml:"type"`
	StartDate   civil.Date `json:"startDate" yaml:"startDate"`
	EndDate     civil.Date `json:"endDate" yaml:"endDate"`
	Duration    string     `json:"duration" yaml:"duration"`
	Status      Status     `json:"status" yaml:"status"`
	RequestDate civil.Date `json:"requestDate" yaml:"requestDate"`
	Reason      string     `json:"reason,omitempty" yaml:"reason"`
}

func (r Request) RecordID() int64 { return r.ID }

func (r Request) WithID(id int64) Request {
	r.ID = id
	return r
}

type Submission struct {
	EmployeeID int64      `json:"employeeId"`
	Type       Type       `json:"type"`
	StartDate  civil.Date `json:"startDate"`
	EndDate    civil.Date `json:"endDate"`
	Reason     string     `json:"reason"`
}

// Transition is the outcome of a status change. Changed is false when the
// request had already been decided and was left as it was.
type Transition struct {
	Request Request `json:"request"`
	From    Status  `json:"from"`
	Changed bool    `json:"changed"`
}

// Event is a request as the calendar shows it.
type Event struct {
	ID           int64      `json:"id"`
	EmployeeName string     `json:"employeeName"`
	Type         Type       `json:"type"`
	StartDate    civil.Date `json:"startDate"`
	EndDate      civil.Date `json:"endDate"`
	Status       Status     `json:"status"`
}
