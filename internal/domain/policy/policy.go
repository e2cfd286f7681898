// Package policy serves the read-only company policy library.
package policy

import (
	"github.com/golang-sql/civil"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/record"
)

type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryLeave    Category = "leave"
	CategoryBenefits Category = "benefits"
	CategoryConduct  Category = "conduct"
	CategorySecurity Category = "security"
)

type Policy struct {
	ID          int64      `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    Category   `json:"category" yaml:"category"`
	LastUpdated civil.Date `json:"lastUpdated" yaml:"lastUpdated"`
	Content     string     `json:"content" yaml:"content"`
}

func (p Policy) RecordID() int64 { return p.ID }

func (p Policy) WithID(id int64) Policy {
	p.ID = id
	return p
}

var Spec = filter.Spec[Policy]{
	Search: []filter.Field[Policy]{
		func(p Policy) string { return p.Title },
		func(p Policy) string { return p.Description },
	},
	Dimensions: map[string]filter.Field[Policy]{
		"category": func(p Policy) string { return string(p.Category) },
	},
	Date: func(p Policy) civil.Date { return p.LastUpdated },
}

type Service struct {
	store *record.Store[Policy]
}

func NewService(store *record.Store[Policy]) *Service {
	return &Service{store: store}
}

func (s *Service) List(c filter.Criteria) ([]Policy, error) {
	return Spec.Apply(s.store.List(), c)
}

func (s *Service) Get(id int64) (Policy, error) {
	return s.store.Get(id)
}
