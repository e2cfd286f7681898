// Package filter evaluates search, categorical, date-range and expression
// predicates over in-memory collections. Every evaluation rescans the full
// collection; there is no index.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golang-sql/civil"
)

var (
	ErrUnknownDimension = errors.New("unknown filter dimension")
	ErrDateUnsupported  = errors.New("date range filter not supported")
	ErrExprUnsupported  = errors.New("expression filter not supported")
	ErrInvalidExpr      = errors.New("invalid filter expression")
)

type Field[T any] func(T) string

type DateField[T any] func(T) civil.Date

// Spec describes how records of type T are searched and filtered.
type Spec[T any] struct {
	Search     []Field[T]
	Dimensions map[string]Field[T]
	Date       DateField[T]
	Vars       func(T) map[string]any
}

type Criteria struct {
	Search     string
	Categories map[string][]string
	From       *civil.Date
	To         *civil.Date
	Expr       string
}

func (c Criteria) IsEmpty() bool {
	if c.Search != "" || c.From != nil || c.To != nil || strings.TrimSpace(c.Expr) != "" {
		return false
	}
	for _, values := range c.Categories {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

type Predicate[T any] func(T) bool

// Apply returns the records matching every active predicate of c, in their
// original order.
func (s Spec[T]) Apply(records []T, c Criteria) ([]T, error) {
	if c.IsEmpty() {
		return append(make([]T, 0, len(records)), records...), nil
	}
	match, err := s.Compile(c)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Compile turns criteria into a single predicate. Inactive dimensions are
// skipped entirely.
func (s Spec[T]) Compile(c Criteria) (Predicate[T], error) {
	var preds []Predicate[T]

	if c.Search != "" {
		preds = append(preds, s.searchPredicate(c.Search))
	}

	dims := make([]string, 0, len(c.Categories))
	for dim := range c.Categories {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		values := c.Categories[dim]
		if len(values) == 0 {
			continue
		}
		field, ok := s.Dimensions[dim]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
		}
		preds = append(preds, inSet(field, values))
	}

	if c.From != nil || c.To != nil {
		if s.Date == nil {
			return nil, ErrDateUnsupported
		}
		preds = append(preds, dateRange(s.Date, c.From, c.To))
	}

	if expr := strings.TrimSpace(c.Expr); expr != "" {
		if s.Vars == nil {
			return nil, ErrExprUnsupported
		}
		pred, err := exprPredicate(expr, s.Vars)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}

	return func(rec T) bool {
		for _, p := range preds {
			if !p(rec) {
				return false
			}
		}
		return true
	}, nil
}

func (s Spec[T]) searchPredicate(query string) Predicate[T] {
	needle := strings.ToLower(query)
	return func(rec T) bool {
		for _, field := range s.Search {
			if strings.Contains(strings.ToLower(field(rec)), needle) {
				return true
			}
		}
		return false
	}
}

func inSet[T any](field Field[T], values []string) Predicate[T] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(rec T) bool {
		_, ok := set[field(rec)]
		return ok
	}
}

func dateRange[T any](field DateField[T], from, to *civil.Date) Predicate[T] {
	return func(rec T) bool {
		d := field(rec)
		if from != nil && d.Before(*from) {
			return false
		}
		if to != nil && d.After(*to) {
			return false
		}
		return true
	}
}
