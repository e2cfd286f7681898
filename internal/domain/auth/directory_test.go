package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hrconnect/internal/domain/record"
)

const testTOTPSecret = "JBSWY3DPEHPK3PXP"

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	dir, err := NewDirectory([]SeedUser{
		{User: User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: RoleAdmin, Department: "Human Resources", Position: "HR Manager"}, Password: "password123"},
		{User: User{ID: 2, Name: "Sarah Johnson", Email: "sarah@example.com", Role: RoleHR, Department: "Marketing", Position: "Marketing Director"}, Password: "password123"},
		{User: User{ID: 3, Name: "Michael Chen", Email: "michael@example.com", Role: RoleManager, Department: "Engineering", Position: "Senior Developer"}, Password: "password123", TOTPSecret: testTOTPSecret},
	}, bcrypt.MinCost, nil)
	require.NoError(t, err)
	return dir
}

func TestAuthenticate(t *testing.T) {
	dir := newTestDirectory(t)

	u, err := dir.Authenticate("sarah@example.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, RoleHR, u.Role)
	assert.Equal(t, int64(2), u.ID)
	assert.False(t, u.MFAEnabled)

	_, err = dir.Authenticate("sarah@example.com", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = dir.Authenticate("SARAH@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = dir.Authenticate("nobody@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateWithTOTP(t *testing.T) {
	dir := newTestDirectory(t)

	_, err := dir.Authenticate("michael@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrMFARequired)

	_, err = dir.Authenticate("michael@example.com", "password123", "000000x")
	assert.ErrorIs(t, err, ErrMFAInvalid)

	code, err := totp.GenerateCode(testTOTPSecret, time.Now())
	require.NoError(t, err)
	u, err := dir.Authenticate("michael@example.com", "password123", code)
	require.NoError(t, err)
	assert.True(t, u.MFAEnabled)
}

func TestNewDirectoryRejectsUnknownRole(t *testing.T) {
	_, err := NewDirectory([]SeedUser{{User: User{ID: 1, Email: "x@example.com", Role: "owner"}, Password: "p"}}, bcrypt.MinCost, nil)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateProfile(t *testing.T) {
	dir := newTestDirectory(t)

	u, err := dir.UpdateProfile(2, Profile{Name: "Sarah J. Johnson", Email: "sarah.j@example.com", Phone: "+1 555", Department: "Marketing", Position: "VP Marketing"})
	require.NoError(t, err)
	assert.Equal(t, "sarah.j@example.com", u.Email)
	assert.Equal(t, RoleHR, u.Role)

	_, err = dir.Authenticate("sarah.j@example.com", "password123", "")
	require.NoError(t, err)

	_, err = dir.UpdateProfile(2, Profile{Name: "Sarah", Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = dir.UpdateProfile(2, Profile{Name: "Sarah", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = dir.UpdateProfile(9, Profile{Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestConcurrentProfileSavesCannotShareEmail(t *testing.T) {
	for range 50 {
		dir := newTestDirectory(t)
		var (
			wg   sync.WaitGroup
			errs [2]error
		)
		for i, id := range []int64{2, 3} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = dir.UpdateProfile(id, Profile{Name: "Shared", Email: "shared@example.com"})
			}()
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, ErrEmailTaken)
				failed++
			}
		}
		require.Equal(t, 1, failed, "exactly one save claims the address")
	}
}

func TestEnableAndDisableTOTP(t *testing.T) {
	dir := newTestDirectory(t)

	_, err := dir.EnableTOTP(2, testTOTPSecret, "123")
	assert.ErrorIs(t, err, ErrMFAInvalid)

	code, err := totp.GenerateCode(testTOTPSecret, time.Now())
	require.NoError(t, err)
	u, err := dir.EnableTOTP(2, testTOTPSecret, code)
	require.NoError(t, err)
	assert.True(t, u.MFAEnabled)

	_, err = dir.Authenticate("sarah@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrMFARequired)

	u, err = dir.DisableTOTP(2)
	require.NoError(t, err)
	assert.False(t, u.MFAEnabled)
	_, err = dir.Authenticate("sarah@example.com", "password123", "")
	assert.NoError(t, err)
}
