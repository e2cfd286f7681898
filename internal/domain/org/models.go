package org

import "github.com/shopspring/decimal"

type Department struct {
	ID            int64  `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	EmployeeCount int    `json:"employeeCount" yaml:"employeeCount"`
	Floor         string `json:"floor" yaml:"floor"`
	Performance   int    `json:"performance" yaml:"performance"`
	Issues        int    `json:"issues" yaml:"issues"`
}

func (d Department) RecordID() int64 { return d.ID }

func (d Department) WithID(id int64) Department {
	d.ID = id
	return d
}

type PositionStatus string

const (
	PositionOpen   PositionStatus = "open"
	PositionClosed PositionStatus = "closed"
	PositionDraft  PositionStatus = "draft"
)

func (s PositionStatus) Valid() bool {
	switch s {
	case PositionOpen, PositionClosed, PositionDraft:
		return true
	}
	return false
}

type Position struct {
	ID            int64           `json:"id" yaml:"id"`
	Title         string          `json:"title" yaml:"title"`
	Department    string          `json:"department" yaml:"department"`
	OpenPositions int             `json:"openPositions" yaml:"openPositions"`
	Applicants    int             `json:"applicants" yaml:"applicants"`
	MinSalary     decimal.Decimal `json:"minSalary" yaml:"minSalary"`
	MaxSalary     decimal.Decimal `json:"maxSalary" yaml:"maxSalary"`
	Status        PositionStatus  `json:"status" yaml:"status"`
}

func (p Position) RecordID() int64 { return p.ID }

func (p Position) WithID(id int64) Position {
	p.ID = id
	return p
}
