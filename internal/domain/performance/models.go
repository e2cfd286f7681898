package performance

import "github.com/golang-sql/civil"

type Metric struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
}

type Record struct {
	ID           int64      `json:"id" yaml:"id"`
	EmployeeName string     `json:"employeeName" yaml:"employeeName"`
	AvatarURL    string     `json:"avatarUrl,omitempty" yaml:"avatarUrl"`
	Department   string     `json:"department" yaml:"department"`
	JobTitle     string     `json:"jobTitle" yaml:"jobTitle"`
	OverallScore int        `json:"overallScore" yaml:"overallScore"`
	Metrics      []Metric   `json:"metrics" yaml:"metrics"`
	LastUpdated  civil.Date `json:"lastUpdated" yaml:"lastUpdated"`
}

func (r Record) RecordID() int64 { return r.ID }

func (r Record) WithID(id int64) Record {
	r.ID = id
	return r
}
