package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/record"
)

func seedRequests() []Request {
	return []Request{
		{ID: 1, Employee: Snapshot{Name: "Sarah Johnson", Position: "Marketing Director", Department: "Marketing", Initials: "SJ"},
			Type: TypeVacation, StartDate: day(2023, 6, 15), EndDate: day(2023, 6, 22), Duration: "8 days",
			Status: StatusPending, RequestDate: day(2023, 6, 1), Reason: "Annual family vacation"},
		{ID: 2, Employee: Snapshot{Name: "Michael Chen", Position: "Senior Developer", Department: "Engineering", Initials: "MC"},
			Type: TypeSick, StartDate: day(2023, 6, 10), EndDate: day(2023, 6, 12), Duration: "3 days",
			Status: StatusApproved, RequestDate: day(2023, 6, 9), Reason: "Coming down with the flu"},
		{ID: 3, Employee: Snapshot{Name: "Jessica Williams", Position: "HR Specialist", Department: "Human Resources", Initials: "JW"},
			Type: TypePersonal, StartDate: day(2023, 6, 18), EndDate: day(2023, 6, 19), Duration: "2 days",
			Status: StatusPending, RequestDate: day(2023, 6, 5), Reason: "Family emergency"},
		{ID: 4, Employee: Snapshot{Name: "Robert Garcia", Position: "Operations Manager", Department: "Operations", Initials: "RG"},
			Type: TypeVacation, StartDate: day(2023, 7, 1), EndDate: day(2023, 7, 7), Duration: "7 days",
			Status: StatusPending, RequestDate: day(2023, 6, 10), Reason: "Summer vacation"},
		{ID: 5, Employee: Snapshot{Name: "Amanda Lee", Position: "Data Analyst", Department: "Analytics", Initials: "AL"},
			Type: TypeOther, StartDate: day(2023, 6, 25), EndDate: day(2023, 6, 25), Duration: "1 day",
			Status: StatusRejected, RequestDate: day(2023, 6, 8), Reason: "Professional development course"},
	}
}

type recorder struct {
	sent []notifications.Notification
}

func (r *recorder) Notify(_ context.Context, n notifications.Notification) {
	r.sent = append(r.sent, n)
}

func newTestService(t *testing.T) (*Service, *record.Store[Request], *recorder) {
	t.Helper()
	staff := record.New([]employee.Employee{
		{ID: 1, Name: "Sarah Johnson", Position: "Marketing Director", Department: "Marketing", Initials: "SJ", Avatar: "/assets/avatar-1.png"},
		{ID: 2, Name: "Michael Chen", Position: "Senior Developer", Department: "Engineering", Initials: "MC"},
	})
	store := record.New(seedRequests())
	rec := &recorder{}
	svc := NewService(store, employee.NewService(staff, nil, nil), rec, nil)
	svc.now = func() time.Time { return time.Date(2023, 6, 12, 9, 0, 0, 0, time.UTC) }
	return svc, store, rec
}

func TestApprovePending(t *testing.T) {
	svc, store, rec := newTestService(t)

	tr, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.Equal(t, StatusPending, tr.From)
	assert.Equal(t, StatusApproved, tr.Request.Status)

	got, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
	require.Len(t, rec.sent, 1)
	assert.Equal(t, notifications.VariantSuccess, rec.sent[0].Variant)
}

func TestDecidedRequestsAreTerminal(t *testing.T) {
	svc, store, rec := newTestService(t)
	before := store.Version()

	tr, err := svc.Approve(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, tr.Changed)
	assert.Equal(t, StatusRejected, tr.Request.Status)

	tr, err = svc.Reject(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, tr.Changed)
	assert.Equal(t, StatusApproved, tr.Request.Status)

	assert.Equal(t, before, store.Version())
	assert.Empty(t, rec.sent)
}

func TestRejectRaisesErrorNotification(t *testing.T) {
	svc, _, rec := newTestService(t)

	tr, err := svc.Reject(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, tr.Changed)
	assert.Equal(t, StatusRejected, tr.Request.Status)
	require.Len(t, rec.sent, 1)
	assert.Equal(t, notifications.VariantError, rec.sent[0].Variant)
}

func TestTransitionUnknownID(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, record.ErrNotFound)
	assert.Equal(t, 5, store.Len())
}

func TestCalendarSharesTransitions(t *testing.T) {
	svc, store, _ := newTestService(t)

	tr, err := svc.SetStatus(context.Background(), 4, StatusRejected)
	require.NoError(t, err)
	assert.True(t, tr.Changed)

	listed, err := svc.List(filter.Criteria{Categories: map[string][]string{"status": {"rejected"}}})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	tr, err = svc.Approve(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, tr.Changed)

	_, err = svc.SetStatus(context.Background(), 1, StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, _ := store.Get(4)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestDeleteFromAnyState(t *testing.T) {
	svc, store, _ := newTestService(t)

	for _, id := range []int64{1, 2, 5} {
		require.NoError(t, svc.Delete(context.Background(), id))
	}
	assert.Equal(t, 2, store.Len())
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), record.ErrNotFound)
}

func TestSubmit(t *testing.T) {
	svc, store, rec := newTestService(t)

	created, err := svc.Submit(context.Background(), Submission{
		EmployeeID: 1,
		Type:       TypeVacation,
		StartDate:  day(2023, 6, 15),
		EndDate:    day(2023, 6, 22),
		Reason:     "Trip",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "8 days", created.Duration)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, day(2023, 6, 12), created.RequestDate)
	assert.Equal(t, Snapshot{Name: "Sarah Johnson", Position: "Marketing Director", Department: "Marketing", Avatar: "/assets/avatar-1.png", Initials: "SJ"}, created.Employee)

	all := store.List()
	require.Len(t, all, 6)
	assert.Equal(t, created.ID, all[0].ID)
	require.Len(t, rec.sent, 1)
}

func TestSubmitValidation(t *testing.T) {
	svc, store, _ := newTestService(t)

	cases := []struct {
		name string
		in   Submission
		err  error
	}{
		{"missing dates", Submission{EmployeeID: 1, Type: TypeSick}, ErrMissingFields},
		{"bad type", Submission{EmployeeID: 1, Type: "sabbatical", StartDate: day(2023, 6, 1), EndDate: day(2023, 6, 2)}, ErrInvalidType},
		{"unknown employee", Submission{EmployeeID: 9, Type: TypeSick, StartDate: day(2023, 6, 1), EndDate: day(2023, 6, 2)}, ErrEmployeeNotFound},
		{"reversed range", Submission{EmployeeID: 2, Type: TypeSick, StartDate: day(2023, 6, 3), EndDate: day(2023, 6, 2)}, ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, 5, store.Len())
		})
	}
}

func TestCalendarEvents(t *testing.T) {
	svc, _, _ := newTestService(t)

	june := svc.CalendarEvents(2023, time.June, "")
	assert.Len(t, june, 4)

	vacations := svc.CalendarEvents(2023, time.June, TypeVacation)
	require.Len(t, vacations, 1)
	assert.Equal(t, "Sarah Johnson", vacations[0].EmployeeName)

	july := svc.CalendarEvents(2023, time.July, "")
	require.Len(t, july, 1)
	assert.Equal(t, int64(4), july[0].ID)
}

func TestListSearchByType(t *testing.T) {
	svc, _, _ := newTestService(t)

	got, err := svc.List(filter.Criteria{Search: "VACATION"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}
