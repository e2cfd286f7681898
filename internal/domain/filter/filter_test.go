package filter

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name   string
	Email  string
	Dept   string
	Status string
	Joined civil.Date
	Score  int64
}

var people = []person{
	{Name: "Sarah Johnson", Email: "sarah@example.com", Dept: "Marketing", Status: "active", Joined: civil.Date{Year: 2019, Month: 6, Day: 15}, Score: 92},
	{Name: "Michael Chen", Email: "michael@example.com", Dept: "Engineering", Status: "active", Joined: civil.Date{Year: 2020, Month: 3, Day: 10}, Score: 87},
	{Name: "Jessica Williams", Email: "jessica@example.com", Dept: "Human Resources", Status: "on-leave", Joined: civil.Date{Year: 2021, Month: 1, Day: 5}, Score: 78},
	{Name: "Robert Garcia", Email: "robert@example.com", Dept: "Operations", Status: "active", Joined: civil.Date{Year: 2018, Month: 11, Day: 12}, Score: 85},
	{Name: "Amanda Lee", Email: "amanda@example.com", Dept: "Analytics", Status: "terminated", Joined: civil.Date{Year: 2021, Month: 6, Day: 20}, Score: 68},
}

var personSpec = Spec[person]{
	Search: []Field[person]{
		func(p person) string { return p.Name },
		func(p person) string { return p.Email },
		func(p person) string { return p.Dept },
	},
	Dimensions: map[string]Field[person]{
		"department": func(p person) string { return p.Dept },
		"status":     func(p person) string { return p.Status },
	},
	Date: func(p person) civil.Date { return p.Joined },
	Vars: func(p person) map[string]any {
		return map[string]any{"name": p.Name, "department": p.Dept, "score": p.Score}
	},
}

func namesOf(ps []person) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func date(y, m, d int) *civil.Date {
	v := civil.Date{Year: y, Month: time.Month(m), Day: d}
	return &v
}

func TestEmptyCriteriaReturnsEverythingInOrder(t *testing.T) {
	got, err := personSpec.Apply(people, Criteria{Categories: map[string][]string{"status": {}}})
	require.NoError(t, err)
	assert.Equal(t, people, got)
	assert.True(t, Criteria{Categories: map[string][]string{"status": nil}}.IsEmpty())
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "CHEN", want: []string{"Michael Chen"}},
		{query: "example.com", want: namesOf(people)},
		{query: "human", want: []string{"Jessica Williams"}},
		{query: "a", want: namesOf(people)},
		{query: "zzz", want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := personSpec.Apply(people, Criteria{Search: tc.query})
			require.NoError(t, err)
			assert.Equal(t, tc.want, namesOf(got))
		})
	}
}

func TestCategoricalFiltersAreANDed(t *testing.T) {
	got, err := personSpec.Apply(people, Criteria{Categories: map[string][]string{
		"status":     {"active"},
		"department": {"Engineering", "Analytics", "Operations"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Michael Chen", "Robert Garcia"}, namesOf(got))
}

func TestUnknownDimension(t *testing.T) {
	_, err := personSpec.Apply(people, Criteria{Categories: map[string][]string{"floor": {"3"}}})
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name string
		from *civil.Date
		to   *civil.Date
		want []string
	}{
		{name: "both bounds inclusive", from: date(2019, 6, 15), to: date(2021, 1, 5), want: []string{"Sarah Johnson", "Michael Chen", "Jessica Williams"}},
		{name: "from only", from: date(2021, 1, 1), want: []string{"Jessica Williams", "Amanda Lee"}},
		{name: "to only", to: date(2019, 1, 1), want: []string{"Robert Garcia"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := personSpec.Apply(people, Criteria{From: tc.from, To: tc.to})
			require.NoError(t, err)
			assert.Equal(t, tc.want, namesOf(got))
		})
	}
}

func TestDateRangeUnsupported(t *testing.T) {
	spec := Spec[person]{}
	_, err := spec.Apply(people, Criteria{From: date(2020, 1, 1)})
	assert.ErrorIs(t, err, ErrDateUnsupported)
}

func TestApplyIsIdempotent(t *testing.T) {
	c := Criteria{Search: "e", Categories: map[string][]string{"status": {"active", "on-leave"}}, From: date(2019, 1, 1)}
	once, err := personSpec.Apply(people, c)
	require.NoError(t, err)
	twice, err := personSpec.Apply(once, c)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExprFilter(t *testing.T) {
	got, err := personSpec.Apply(people, Criteria{Expr: `r.score >= 85 && r.department != "Marketing"`})
	require.NoError(t, err)
	assert.Equal(t, []string{"Michael Chen", "Robert Garcia"}, namesOf(got))
}

func TestExprFilterCombinesWithSearch(t *testing.T) {
	got, err := personSpec.Apply(people, Criteria{Search: "sarah", Expr: `r.score > 90`})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Johnson"}, namesOf(got))
}

func TestExprFilterErrors(t *testing.T) {
	_, err := personSpec.Apply(people, Criteria{Expr: `r.score >`})
	assert.ErrorIs(t, err, ErrInvalidExpr)

	_, err = personSpec.Apply(people, Criteria{Expr: `"not a bool"`})
	assert.ErrorIs(t, err, ErrInvalidExpr)

	_, err = Spec[person]{}.Apply(people, Criteria{Expr: `true`})
	assert.ErrorIs(t, err, ErrExprUnsupported)
}

func TestExprMissingKeyExcludesRecord(t *testing.T) {
	got, err := personSpec.Apply(people, Criteria{Expr: `r.salary > 1`})
	require.NoError(t, err)
	assert.Empty(t, got)
}
