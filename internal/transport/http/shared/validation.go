package shared

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-sql/civil"

	"hrconnect/internal/transport/http/api"
)

const dateReason = "must be a valid date in YYYY-MM-DD format"

// ValidationIssue is one entry of the "fields" detail of a validation_error.
// Field is empty for issues that concern the payload as a whole.
type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator collects issues across a whole payload so the client sees every
// problem at once. Rules on empty optional values pass; pair them with
// Required where the field is mandatory.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, reason string) {
	v.when(true, field, reason)
}

func (v *Validator) when(failed bool, field, reason string) {
	if !failed || v == nil {
		return
	}
	issue := ValidationIssue{Field: strings.TrimSpace(field), Reason: strings.TrimSpace(reason)}
	if issue.Reason == "" || slices.Contains(v.issues, issue) {
		return
	}
	v.issues = append(v.issues, issue)
}

func (v *Validator) Required(field, value, reason string) {
	v.when(strings.TrimSpace(value) == "", field, reason)
}

// Enum matches value case-insensitively against allowed.
func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	v.when(!slices.ContainsFunc(allowed, func(a string) bool {
		return strings.EqualFold(value, strings.TrimSpace(a))
	}), field, reason)
}

func (v *Validator) Date(field, raw string) (civil.Date, bool) {
	d, err := ParseDate(strings.TrimSpace(raw))
	ok := err == nil && d != (civil.Date{})
	v.when(!ok, field, dateReason)
	if !ok {
		return civil.Date{}, false
	}
	return d, true
}

func (v *Validator) OptionalDate(field, raw string) (civil.Date, bool) {
	if strings.TrimSpace(raw) == "" {
		return civil.Date{}, false
	}
	return v.Date(field, raw)
}

// DateOrder flags both fields when end precedes start. Zero dates are
// skipped since Date has already reported them.
func (v *Validator) DateOrder(startField string, start civil.Date, endField string, end civil.Date) {
	if start == (civil.Date{}) || end == (civil.Date{}) || !end.Before(start) {
		return
	}
	v.Add(startField, "must be on or before "+endField)
	v.Add(endField, "must be on or after "+startField)
}

func (v *Validator) Range(field string, value, lo, hi int) {
	v.when(value < lo || value > hi, field, fmt.Sprintf("must be between %d and %d", lo, hi))
}

func (v *Validator) NonNegative(field string, value int) {
	v.when(value < 0, field, "must not be negative")
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

// Issues returns a sorted copy, ordered by field then reason.
func (v *Validator) Issues() []ValidationIssue {
	if !v.HasIssues() {
		return nil
	}
	out := slices.Clone(v.issues)
	slices.SortStableFunc(out, func(a, b ValidationIssue) int {
		return cmp.Or(cmp.Compare(a.Field, b.Field), cmp.Compare(a.Reason, b.Reason))
	})
	return out
}

// Reject writes the validation_error envelope if anything was collected and
// reports whether it did.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": issues}, requestID)
}
