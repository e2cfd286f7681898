package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/leave"
	"hrconnect/internal/domain/org"
	"hrconnect/internal/domain/performance"
	"hrconnect/internal/domain/policy"
	"hrconnect/internal/domain/talent"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the data every store starts from.
type Fixtures struct {
	Users         []auth.SeedUser      `yaml:"users"`
	Employees     []employee.Employee  `yaml:"employees"`
	LeaveRequests []leave.Request      `yaml:"leaveRequests"`
	Departments   []org.Department     `yaml:"departments"`
	Positions     []org.Position       `yaml:"positions"`
	Skills        []talent.Skill       `yaml:"skills"`
	Programs      []talent.Program     `yaml:"programs"`
	Performance   []performance.Record `yaml:"performance"`
	Policies      []policy.Policy      `yaml:"policies"`
}

// Load reads fixtures from path, or the embedded set when path is empty.
func Load(path string) (Fixtures, error) {
	data := defaultFixtures
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Fixtures{}, fmt.Errorf("read seed file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse seed fixtures: %w", err)
	}
	for i, e := range f.Employees {
		if e.Initials == "" {
			f.Employees[i].Initials = employee.Initials(e.Name)
		}
	}
	for i, r := range f.LeaveRequests {
		if r.Duration != "" {
			continue
		}
		days, err := leave.CalculateDays(r.StartDate, r.EndDate)
		if err != nil {
			return Fixtures{}, fmt.Errorf("leave request %d: %w", r.ID, err)
		}
		f.LeaveRequests[i].Duration = leave.FormatDuration(days)
	}
	return f, nil
}
