package org

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/record"
)

func newTestService() *Service {
	departments := record.New([]Department{
		{ID: 1, Name: "Human Resources", EmployeeCount: 15, Floor: "3rd Floor", Performance: 92, Issues: 2},
		{ID: 2, Name: "Engineering", EmployeeCount: 45, Floor: "5th Floor", Performance: 87, Issues: 4},
	})
	positions := record.New([]Position{
		{ID: 1, Title: "Senior Frontend Developer", Department: "Engineering", OpenPositions: 2, Applicants: 48,
			MinSalary: decimal.NewFromInt(85000), MaxSalary: decimal.NewFromInt(120000), Status: PositionOpen},
		{ID: 2, Title: "Marketing Manager", Department: "Marketing", OpenPositions: 1, Applicants: 32,
			MinSalary: decimal.NewFromInt(70000), MaxSalary: decimal.NewFromInt(90000), Status: PositionClosed},
		{ID: 3, Title: "Financial Analyst", Department: "Finance", OpenPositions: 3, Applicants: 12,
			MinSalary: decimal.NewFromInt(60000), MaxSalary: decimal.NewFromInt(85000), Status: PositionOpen},
	})
	return NewService(departments, positions, nil, nil)
}

func TestCreateDepartmentDefaults(t *testing.T) {
	svc := newTestService()

	dep, err := svc.CreateDepartment(context.Background(), Department{Name: "Product", Floor: "6th Floor"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), dep.ID)
	assert.Equal(t, 75, dep.Performance)
	assert.Zero(t, dep.EmployeeCount)
}

func TestCreateDepartmentRequiresNameAndFloor(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateDepartment(context.Background(), Department{Name: "Product"})
	assert.ErrorIs(t, err, ErrMissingFields)
	all, _ := svc.ListDepartments(filter.Criteria{})
	assert.Len(t, all, 2)
}

func TestUpdateDepartmentKeepsID(t *testing.T) {
	svc := newTestService()

	dep, err := svc.UpdateDepartment(context.Background(), 2, Department{ID: 99, Name: "Platform", Floor: "5th Floor", Performance: 88})
	require.NoError(t, err)
	assert.Equal(t, int64(2), dep.ID)
	assert.Equal(t, "Platform", dep.Name)

	_, err = svc.UpdateDepartment(context.Background(), 7, Department{Name: "x", Floor: "y"})
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestCreatePositionDefaults(t *testing.T) {
	svc := newTestService()

	pos, err := svc.CreatePosition(context.Background(), Position{Title: "Data Engineer", Department: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, 1, pos.OpenPositions)
	assert.True(t, pos.MinSalary.Equal(decimal.NewFromInt(40000)))
	assert.True(t, pos.MaxSalary.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, PositionDraft, pos.Status)
}

func TestPositionValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreatePosition(context.Background(), Position{Title: "QA", Department: "Engineering",
		MinSalary: decimal.NewFromInt(90000), MaxSalary: decimal.NewFromInt(50000)})
	assert.ErrorIs(t, err, ErrSalaryRange)

	_, err = svc.CreatePosition(context.Background(), Position{Title: "QA", Department: "Engineering", Status: "frozen"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOpenPositionsCountsOnlyOpen(t *testing.T) {
	svc := newTestService()
	assert.Equal(t, 5, svc.OpenPositions())

	require.NoError(t, svc.DeletePosition(context.Background(), 3))
	assert.Equal(t, 2, svc.OpenPositions())
}

func TestListPositionsByStatus(t *testing.T) {
	svc := newTestService()

	got, err := svc.ListPositions(filter.Criteria{Categories: map[string][]string{"status": {"open"}}})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.ListPositions(filter.Criteria{Expr: "r.minSalary >= 80000.0"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Senior Frontend Developer", got[0].Title)
}
