package dashboard

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/leave"
)

func staff() []employee.Employee {
	mk := func(name, dept string, status employee.Status, score int) employee.Employee {
		return employee.Employee{Name: name, Department: dept, Status: status, Performance: employee.Performance{Current: score}}
	}
	return []employee.Employee{
		mk("Sarah Johnson", "Marketing", employee.StatusActive, 92),
		mk("Michael Chen", "Engineering", employee.StatusActive, 88),
		mk("Jessica Williams", "Human Resources", employee.StatusOnLeave, 85),
		mk("Robert Garcia", "Engineering", employee.StatusActive, 79),
		mk("Amanda Lee", "Analytics", employee.StatusTerminated, 95),
	}
}

func TestDepartmentPerformance(t *testing.T) {
	assert.Equal(t, 84, DepartmentPerformance(staff(), "Engineering"))
	assert.Equal(t, 92, DepartmentPerformance(staff(), "Marketing"))
	assert.Equal(t, 0, DepartmentPerformance(staff(), "Human Resources"))
	assert.Equal(t, 0, DepartmentPerformance(staff(), "Finance"))
}

func TestOverallPerformanceCountsActiveOnly(t *testing.T) {
	assert.Equal(t, 86, OverallPerformance(staff()))
	assert.Equal(t, 0, OverallPerformance(nil))
}

func TestDepartmentScores(t *testing.T) {
	got := DepartmentScores(staff())
	assert.Equal(t, []DepartmentScore{
		{Department: "Engineering", Score: 84, Headcount: 2},
		{Department: "Marketing", Score: 92, Headcount: 1},
	}, got)
}

func TestUpcoming(t *testing.T) {
	d := func(m, day int) civil.Date { return civil.Date{Year: 2023, Month: time.Month(m), Day: day} }
	requests := []leave.Request{
		{ID: 1, Status: leave.StatusApproved, StartDate: d(7, 10)},
		{ID: 2, Status: leave.StatusApproved, StartDate: d(6, 10)},
		{ID: 3, Status: leave.StatusPending, StartDate: d(6, 20)},
		{ID: 4, Status: leave.StatusApproved, StartDate: d(6, 15)},
	}

	got := Upcoming(requests, d(6, 15), 0)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	assert.Len(t, Upcoming(requests, d(6, 1), 1), 1)
}

type stubEmployees []employee.Employee

func (s stubEmployees) List(filter.Criteria) ([]employee.Employee, error) { return s, nil }

type stubLeave []leave.Request

func (s stubLeave) List(filter.Criteria) ([]leave.Request, error) { return s, nil }

func (s stubLeave) CountByStatus(status leave.Status) int {
	n := 0
	for _, r := range s {
		if r.Status == status {
			n++
		}
	}
	return n
}

type stubPositions int

func (s stubPositions) OpenPositions() int { return int(s) }

func TestSummary(t *testing.T) {
	requests := stubLeave{
		{ID: 1, Status: leave.StatusPending},
		{ID: 2, Status: leave.StatusPending},
		{ID: 3, Status: leave.StatusRejected},
	}
	svc := NewService(stubEmployees(staff()), requests, stubPositions(11))

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalEmployees)
	assert.Equal(t, map[string]int{"active": 3, "on-leave": 1, "terminated": 1}, summary.EmployeesByStatus)
	assert.Equal(t, 2, summary.PendingLeave)
	assert.Equal(t, 11, summary.OpenPositions)
	assert.Equal(t, 86, summary.OverallPerformance)
	assert.Empty(t, summary.UpcomingLeaves)
}
