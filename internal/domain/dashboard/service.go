package dashboard

import (
	"fmt"
	"time"

	"github.com/golang-sql/civil"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/leave"
)

const upcomingLimit = 5

type EmployeeLister interface {
	List(c filter.Criteria) ([]employee.Employee, error)
}

type LeaveLister interface {
	List(c filter.Criteria) ([]leave.Request, error)
	CountByStatus(status leave.Status) int
}

type PositionCounter interface {
	OpenPositions() int
}

type Summary struct {
	TotalEmployees     int               `json:"totalEmployees"`
	EmployeesByStatus  map[string]int    `json:"employeesByStatus"`
	PendingLeave       int               `json:"pendingLeave"`
	UpcomingLeaves     []leave.Request   `json:"upcomingLeaves"`
	OpenPositions      int               `json:"openPositions"`
	OverallPerformance int               `json:"overallPerformance"`
	Departments        []DepartmentScore `json:"departments"`
}

type Service struct {
	employees EmployeeLister
	leave     LeaveLister
	positions PositionCounter
	now       func() time.Time
}

func NewService(employees EmployeeLister, leave LeaveLister, positions PositionCounter) *Service {
	return &Service{employees: employees, leave: leave, positions: positions, now: time.Now}
}

func (s *Service) Summary() (Summary, error) {
	staff, err := s.employees.List(filter.Criteria{})
	if err != nil {
		return Summary{}, fmt.Errorf("list employees: %w", err)
	}
	requests, err := s.leave.List(filter.Criteria{})
	if err != nil {
		return Summary{}, fmt.Errorf("list leave requests: %w", err)
	}

	byStatus := make(map[string]int, len(employee.Statuses))
	for _, st := range employee.Statuses {
		byStatus[string(st)] = 0
	}
	for _, e := range staff {
		byStatus[string(e.Status)]++
	}
	return Summary{
		TotalEmployees:     len(staff),
		EmployeesByStatus:  byStatus,
		PendingLeave:       s.leave.CountByStatus(leave.StatusPending),
		UpcomingLeaves:     Upcoming(requests, civil.DateOf(s.now()), upcomingLimit),
		OpenPositions:      s.positions.OpenPositions(),
		OverallPerformance: OverallPerformance(staff),
		Departments:        DepartmentScores(staff),
	}, nil
}
