package dashboard

import (
	"math"
	"sort"

	"github.com/golang-sql/civil"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/leave"
)

type DepartmentScore struct {
	Department string `json:"department"`
	Score      int    `json:"score"`
	Headcount  int    `json:"headcount"`
}

// DepartmentPerformance is the rounded mean current score of the active
// employees in department, 0 when it has none.
func DepartmentPerformance(employees []employee.Employee, department string) int {
	score, _ := meanScore(employees, func(e employee.Employee) bool { return e.Department == department })
	return score
}

// OverallPerformance is DepartmentPerformance across every department.
func OverallPerformance(employees []employee.Employee) int {
	score, _ := meanScore(employees, func(employee.Employee) bool { return true })
	return score
}

// DepartmentScores scores each department with at least one active employee,
// ordered by name.
func DepartmentScores(employees []employee.Employee) []DepartmentScore {
	headcount := map[string]int{}
	for _, e := range employees {
		if e.Status == employee.StatusActive {
			headcount[e.Department]++
		}
	}
	names := make([]string, 0, len(headcount))
	for name := range headcount {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DepartmentScore, 0, len(names))
	for _, name := range names {
		out = append(out, DepartmentScore{
			Department: name,
			Score:      DepartmentPerformance(employees, name),
			Headcount:  headcount[name],
		})
	}
	return out
}

// Upcoming returns approved requests starting on or after today, soonest
// first, at most limit of them.
func Upcoming(requests []leave.Request, today civil.Date, limit int) []leave.Request {
	var out []leave.Request
	for _, r := range requests {
		if r.Status == leave.StatusApproved && !r.StartDate.Before(today) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func meanScore(employees []employee.Employee, include func(employee.Employee) bool) (int, int) {
	sum, count := 0, 0
	for _, e := range employees {
		if e.Status != employee.StatusActive || !include(e) {
			continue
		}
		sum += e.Performance.Current
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return int(math.Round(float64(sum) / float64(count))), count
}
