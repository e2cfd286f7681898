package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/record"
	"hrconnect/internal/transport/http/api"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-06-15")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2023, Month: 6, Day: 15}, d)

	d, err = ParseDate("2023-06-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2023, Month: 6, Day: 15}, d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{}, d)

	_, err = ParseDate("Jun 15, 2023")
	assert.Error(t, err)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?page=3&pageSize=500", nil)
	p := ParsePagination(req, 5, 100)
	assert.Equal(t, Pagination{Page: 3, PageSize: 100}, p)

	req = httptest.NewRequest(http.MethodGet, "/x?page=-2&pageSize=abc", nil)
	p = ParsePagination(req, 5, 100)
	assert.Equal(t, Pagination{Page: 1, PageSize: 5}, p)
}

func TestParseCriteria(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/x?q=+sarah+&status=active&status=on-leave&department=all&page=2&from=2023-01-01&to=2023-12-31&expr=r.performance+>+80", nil)
	v := NewValidator()
	c := ParseCriteria(req, v)

	require.False(t, v.HasIssues())
	assert.Equal(t, "sarah", c.Search)
	assert.Equal(t, []string{"active", "on-leave"}, c.Categories["status"])
	assert.NotContains(t, c.Categories, "department")
	assert.NotContains(t, c.Categories, "page")
	assert.Equal(t, civil.Date{Year: 2023, Month: 1, Day: 1}, *c.From)
	assert.Equal(t, "r.performance > 80", c.Expr)
}

func TestParseCriteriaValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?from=2023-12-31&to=2023-01-01&expr=r.name+%3D%3D", nil)
	v := NewValidator()
	ParseCriteria(req, v)

	fields := map[string]bool{}
	for _, issue := range v.Issues() {
		fields[issue.Field] = true
	}
	assert.True(t, fields["from"])
	assert.True(t, fields["to"])
	assert.True(t, fields["expr"])
}

func TestFailError(t *testing.T) {
	errInvalid := errors.New("bad thing")
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{record.ErrNotFound, http.StatusNotFound, "not_found"},
		{filter.ErrUnknownDimension, http.StatusBadRequest, "invalid_filter"},
		{errInvalid, http.StatusBadRequest, "validation_error"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		FailError(rec, "req", tc.err, errInvalid)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var env api.Envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		assert.Equal(t, tc.code, env.Error.Code)
	}
}

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Required("name", " ", "is required")
	v.Range("importance", 7, 1, 5)
	v.NonNegative("applicants", -1)
	v.Enum("status", "paused", []string{"open", "closed"}, "is invalid")

	issues := v.Issues()
	require.Len(t, issues, 4)
	assert.Equal(t, "applicants", issues[0].Field)
	assert.Equal(t, "must be between 1 and 5", issues[1].Reason)
}

func TestNotModified(t *testing.T) {
	cases := []struct {
		ifNoneMatch string
		want        bool
	}{
		{"", false},
		{`W/"6"`, false},
		{`W/"7"`, true},
		{`"abc", W/"7"`, true},
		{"*", true},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.ifNoneMatch != "" {
			req.Header.Set("If-None-Match", tc.ifNoneMatch)
		}
		assert.Equal(t, tc.want, NotModified(rec, req, 7), tc.ifNoneMatch)
		assert.Equal(t, `W/"7"`, rec.Header().Get("ETag"))
		if tc.want {
			assert.Equal(t, http.StatusNotModified, rec.Code)
		}
	}
}
