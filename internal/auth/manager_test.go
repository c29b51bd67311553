// ABOUTME: Tests for the session manager state machine
// ABOUTME: Covers login, lockout, owner unlock, sessions, and password change

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

const (
	testDefaultPassword = "ayoub100"
	testOwnerPassword   = "owner_unlock_2024"
)

func newTestManager(t *testing.T) (*Manager, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	m, err := NewManager(context.Background(), kv, Config{
		DefaultPassword: testDefaultPassword,
		OwnerPassword:   testOwnerPassword,
		TokenSecret:     testSecret,
	})
	require.NoError(t, err)
	return m, kv
}

func TestFirstRunSeedsCredential(t *testing.T) {
	_, kv := newTestManager(t)

	hash, err := kv.Get(context.Background(), keyPasswordHash)
	require.NoError(t, err)
	assert.Equal(t, HashPassword(testDefaultPassword), hash)
}

func TestSeedDoesNotOverwriteExistingCredential(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, keyPasswordHash, HashPassword("custom")))

	_, err := NewManager(ctx, kv, Config{
		DefaultPassword: testDefaultPassword,
		OwnerPassword:   testOwnerPassword,
		TokenSecret:     testSecret,
	})
	require.NoError(t, err)

	hash, err := kv.Get(ctx, keyPasswordHash)
	require.NoError(t, err)
	assert.Equal(t, HashPassword("custom"), hash)
}

func TestLoginBlankPassword(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	res, err := m.Login(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, LoginFailure, res.Outcome)
	assert.Equal(t, "Please enter a password", res.Message)

	// No attempt counted
	_, err = kv.Get(ctx, keyAttempts)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginSuccess(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Outcome)
	assert.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), res.ExpiresAt, time.Minute)

	authed, err := m.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authed)

	stored, err := kv.Get(ctx, keyToken)
	require.NoError(t, err)
	assert.Equal(t, res.Token, stored)
}

func TestLoginFailureIncrementsAttempts(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	res, err := m.Login(ctx, "wrong")
	require.NoError(t, err)
	assert.Equal(t, LoginFailure, res.Outcome)
	assert.Equal(t, 4, res.RemainingAttempts)
	assert.Equal(t, "Invalid password. 4 attempt(s) remaining.", res.Message)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.FailedAttempts)
	assert.False(t, status.Locked)
}

func TestFifthFailureLocks(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var res *LoginResult
	var err error
	for i := 0; i < 5; i++ {
		res, err = m.Login(ctx, "wrong")
		require.NoError(t, err)
		assert.Equal(t, LoginFailure, res.Outcome)
	}

	assert.Equal(t, "Too many failed attempts. Account locked for 15 minutes.", res.Message)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), res.LockedUntil, time.Minute)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Locked)
}

func TestLockedAttemptsDoNotIncrement(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := m.Login(ctx, "wrong")
		require.NoError(t, err)
	}

	// Even the correct password is rejected while locked
	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginFailure, res.Outcome)
	assert.Contains(t, res.Message, "Account locked")
	assert.Contains(t, res.Message, "owner password")

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, status.FailedAttempts)
}

func TestLockExpiresLazily(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := m.Login(ctx, "wrong")
		require.NoError(t, err)
	}

	// Jump past the lock window
	m.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 0, status.FailedAttempts)

	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Outcome)
}

func TestOwnerPasswordUnlocks(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := m.Login(ctx, "wrong")
		require.NoError(t, err)
	}

	res, err := m.Login(ctx, testOwnerPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginUnlocked, res.Outcome)
	assert.Equal(t, "Account unlocked. Please login with your regular password.", res.Message)

	// Unlocked but not authenticated
	authed, err := m.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 0, status.FailedAttempts)

	// Regular password works again immediately
	res, err = m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Outcome)
}

func TestOwnerPasswordClearsCountersWhenNotLocked(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, "wrong")
	require.NoError(t, err)

	res, err := m.Login(ctx, testOwnerPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginUnlocked, res.Outcome)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.FailedAttempts)
}

func TestSuccessfulLoginResetsAttempts(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.Login(ctx, "wrong")
		require.NoError(t, err)
	}

	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	require.Equal(t, LoginSuccess, res.Outcome)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.FailedAttempts)
}

func TestLogoutIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))

	authed, err := m.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)
}

func TestSessionExpiresLazily(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	authed, err := m.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)

	// Expired session is cleared from the store
	_, err = kv.Get(ctx, keyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = kv.Get(ctx, keyExpiry)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuthenticateToken(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)

	ok, err := m.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Authenticate(ctx, "some-other-token")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Authenticate(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangePasswordTooShort(t *testing.T) {
	m, _ := newTestManager(t)
	err := m.ChangePassword(context.Background(), testDefaultPassword, "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestChangePasswordSameAsOld(t *testing.T) {
	m, _ := newTestManager(t)
	err := m.ChangePassword(context.Background(), testDefaultPassword, testDefaultPassword)
	assert.ErrorIs(t, err, ErrSamePassword)
}

func TestChangePasswordWrongOld(t *testing.T) {
	m, _ := newTestManager(t)
	err := m.ChangePassword(context.Background(), "nope", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordSuccess(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)

	require.NoError(t, m.ChangePassword(ctx, testDefaultPassword, "newpassword"))

	// Session revoked by the password change
	authed, err := m.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authed)

	// Old password no longer works, new one does
	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginFailure, res.Outcome)

	res, err = m.Login(ctx, "newpassword")
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Outcome)
}

func TestPasswordHint(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	hint, err := m.PasswordHint(ctx)
	require.NoError(t, err)
	assert.Contains(t, hint, "default password")

	require.NoError(t, m.ChangePassword(ctx, testDefaultPassword, "newpassword"))

	hint, err = m.PasswordHint(ctx)
	require.NoError(t, err)
	assert.Empty(t, hint)
}

func TestMalformedLockTimestampTreatedAsAbsent(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, keyLockUntil, "garbage"))

	status, err := m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Locked)

	res, err := m.Login(ctx, testDefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, res.Outcome)
}
