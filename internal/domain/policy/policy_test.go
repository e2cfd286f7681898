package policy

import (
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/record"
)

func TestListByCategoryAndSearch(t *testing.T) {
	svc := NewService(record.New([]Policy{
		{ID: 1, Title: "Employee Code of Conduct", Category: CategoryConduct, LastUpdated: civil.Date{Year: 2023, Month: 5, Day: 15}},
		{ID: 3, Title: "Health and Safety Policy", Category: CategoryGeneral, LastUpdated: civil.Date{Year: 2023, Month: 6, Day: 5}},
		{ID: 4, Title: "Remote Work Policy", Description: "Guidelines for working remotely", Category: CategoryGeneral, LastUpdated: civil.Date{Year: 2023, Month: 3, Day: 20}},
	}))

	general, err := svc.List(filter.Criteria{Categories: map[string][]string{"category": {"general"}}})
	require.NoError(t, err)
	assert.Len(t, general, 2)

	remote, err := svc.List(filter.Criteria{Search: "remotely", Categories: map[string][]string{"category": {"general"}}})
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, int64(4), remote[0].ID)

	_, err = svc.List(filter.Criteria{Expr: "true"})
	assert.ErrorIs(t, err, filter.ErrExprUnsupported)

	_, err = svc.Get(2)
	assert.ErrorIs(t, err, record.ErrNotFound)
}
