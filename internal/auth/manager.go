// ABOUTME: Session manager owning credential, session, and lockout state
// ABOUTME: Implements login, lockout-with-timed-unlock, owner unlock, and password change

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

// Durable keys owned by the session manager. Nothing outside this package
// should touch them.
const (
	keyPasswordHash = "admin_password_hash"
	keyToken        = "admin_token"
	keyExpiry       = "admin_expiry"
	keyAttempts     = "admin_attempts"
	keyLockUntil    = "admin_lock_until"
)

// MinPasswordLength is the minimum length accepted for a new password.
const MinPasswordLength = 6

// Password change errors
var (
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
	ErrSamePassword     = errors.New("new password must be different from the current password")
	ErrWrongPassword    = errors.New("current password is incorrect")
)

// LoginOutcome is the tri-state result of a login attempt.
type LoginOutcome int

const (
	// LoginFailure means the password was wrong, blank, or the account is locked.
	LoginFailure LoginOutcome = iota
	// LoginSuccess means a session was issued.
	LoginSuccess
	// LoginUnlocked means the owner password cleared the lockout. No session
	// is issued; the regular password must still be submitted.
	LoginUnlocked
)

// LoginResult describes the outcome of a login attempt for the caller's UI.
type LoginResult struct {
	Outcome           LoginOutcome
	Message           string
	RemainingAttempts int
	LockedUntil       time.Time
	Token             string
	ExpiresAt         time.Time
}

// LockState is a snapshot of the lockout counters.
type LockState struct {
	FailedAttempts int
	Locked         bool
	LockedUntil    time.Time
}

// Config holds session manager configuration.
type Config struct {
	// DefaultPassword seeds the credential record on first run.
	DefaultPassword string
	// OwnerPassword clears the lockout without granting a session.
	OwnerPassword string
	// TokenSecret signs session tokens. Must be at least MinSecretLength bytes.
	TokenSecret []byte

	SessionTTL   time.Duration // default 24h
	MaxAttempts  int           // default 5
	LockDuration time.Duration // default 15m

	// Artificial friction on login attempts. Zero disables (tests).
	LoginDelay  time.Duration
	UnlockDelay time.Duration
}

// Manager gates access to the admin dashboard. All state lives in the KV
// store; lock and session expiry are evaluated lazily on each check, never
// by background timers.
type Manager struct {
	kv     store.KV
	tokens *Tokens
	cfg    Config
	logger *slog.Logger

	now func() time.Time // test hook
}

// NewManager creates a session manager and seeds the credential record from
// the configured default password if no hash is stored yet.
func NewManager(ctx context.Context, kv store.KV, cfg Config) (*Manager, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = 15 * time.Minute
	}

	tokens, err := NewTokens(cfg.TokenSecret)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		kv:     kv,
		tokens: tokens,
		cfg:    cfg,
		logger: slog.Default().With("component", "auth"),
		now:    time.Now,
	}

	// First run: persist the default password's hash
	if _, err := kv.Get(ctx, keyPasswordHash); errors.Is(err, store.ErrNotFound) {
		if err := kv.Set(ctx, keyPasswordHash, HashPassword(cfg.DefaultPassword)); err != nil {
			return nil, fmt.Errorf("seeding credential record: %w", err)
		}
		m.logger.Info("credential record initialized from default password")
	} else if err != nil {
		return nil, fmt.Errorf("reading credential record: %w", err)
	}

	return m, nil
}

// Login verifies a password and advances the lockout state machine.
//
// Blank passwords fail without counting an attempt. The owner password clears
// the lockout (even while locked) but never authenticates. A matching regular
// password clears the counters and issues a session token. Anything else
// increments the failure counter unless the account is already locked, and
// locks the account when the counter reaches the configured maximum.
func (m *Manager) Login(ctx context.Context, password string) (*LoginResult, error) {
	if strings.TrimSpace(password) == "" {
		return &LoginResult{Outcome: LoginFailure, Message: "Please enter a password"}, nil
	}

	// Owner password is checked before the lock so it works while locked
	if strings.TrimSpace(password) == strings.TrimSpace(m.cfg.OwnerPassword) {
		if err := m.sleep(ctx, m.cfg.UnlockDelay); err != nil {
			return nil, err
		}
		if err := m.clearLockout(ctx); err != nil {
			return nil, err
		}
		m.logger.Info("lockout cleared by owner password")
		return &LoginResult{
			Outcome: LoginUnlocked,
			Message: "Account unlocked. Please login with your regular password.",
		}, nil
	}

	if err := m.sleep(ctx, m.cfg.LoginDelay); err != nil {
		return nil, err
	}

	locked, until, err := m.lockedNow(ctx)
	if err != nil {
		return nil, err
	}
	if locked {
		mins := int(until.Sub(m.now())/time.Minute) + 1
		return &LoginResult{
			Outcome:     LoginFailure,
			Message:     fmt.Sprintf("Account locked. Please try again in %d minute(s). Use owner password to unlock immediately.", mins),
			LockedUntil: until,
		}, nil
	}

	storedHash, err := m.kv.Get(ctx, keyPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("reading credential record: %w", err)
	}

	if HashPassword(password) == storedHash {
		if err := m.clearLockout(ctx); err != nil {
			return nil, err
		}
		token, expiresAt, err := m.issueSession(ctx)
		if err != nil {
			return nil, err
		}
		m.logger.Info("login succeeded", "expires_at", expiresAt)
		return &LoginResult{
			Outcome:   LoginSuccess,
			Token:     token,
			ExpiresAt: expiresAt,
		}, nil
	}

	// Failed attempt: count it and lock at the threshold
	attempts, err := m.failedAttempts(ctx)
	if err != nil {
		return nil, err
	}
	attempts++
	if err := m.kv.Set(ctx, keyAttempts, strconv.Itoa(attempts)); err != nil {
		return nil, fmt.Errorf("recording failed attempt: %w", err)
	}

	if attempts >= m.cfg.MaxAttempts {
		lockUntil := m.now().Add(m.cfg.LockDuration)
		if err := m.kv.Set(ctx, keyLockUntil, formatMillis(lockUntil)); err != nil {
			return nil, fmt.Errorf("recording lockout: %w", err)
		}
		m.logger.Warn("account locked", "attempts", attempts, "until", lockUntil)
		return &LoginResult{
			Outcome:     LoginFailure,
			Message:     fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", int(m.cfg.LockDuration.Minutes())),
			LockedUntil: lockUntil,
		}, nil
	}

	remaining := m.cfg.MaxAttempts - attempts
	m.logger.Info("login failed", "attempts", attempts, "remaining", remaining)
	return &LoginResult{
		Outcome:           LoginFailure,
		Message:           fmt.Sprintf("Invalid password. %d attempt(s) remaining.", remaining),
		RemainingAttempts: remaining,
	}, nil
}

// Logout clears the session token. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.kv.Delete(ctx, keyToken); err != nil {
		return err
	}
	return m.kv.Delete(ctx, keyExpiry)
}

// ChangePassword replaces the stored credential hash. The current session is
// revoked on success, forcing a re-login with the new password.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}

	storedHash, err := m.kv.Get(ctx, keyPasswordHash)
	if err != nil {
		return fmt.Errorf("reading credential record: %w", err)
	}
	if HashPassword(oldPassword) != storedHash {
		return ErrWrongPassword
	}

	if err := m.kv.Set(ctx, keyPasswordHash, HashPassword(newPassword)); err != nil {
		return fmt.Errorf("storing new credential record: %w", err)
	}
	m.logger.Info("password changed, revoking session")
	return m.Logout(ctx)
}

// IsAuthenticated reports whether a valid non-expired session exists. An
// expired or invalid session is cleared as a side effect.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := m.kv.Get(ctx, keyToken)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	expiryRaw, err := m.kv.Get(ctx, keyExpiry)
	if errors.Is(err, store.ErrNotFound) {
		return false, m.Logout(ctx)
	}
	if err != nil {
		return false, err
	}

	expiry, perr := parseMillis(expiryRaw)
	if perr != nil || !m.now().Before(expiry) || m.tokens.Verify(token) != nil {
		m.logger.Info("session expired or invalid, clearing")
		return false, m.Logout(ctx)
	}
	return true, nil
}

// Authenticate reports whether the presented token matches the current valid
// session. Used by the HTTP layer to validate session cookies.
func (m *Manager) Authenticate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	stored, err := m.kv.Get(ctx, keyToken)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != token {
		return false, nil
	}
	return m.IsAuthenticated(ctx)
}

// PasswordHint returns a warning when the stored credential still matches the
// configured default password, or "" otherwise.
func (m *Manager) PasswordHint(ctx context.Context) (string, error) {
	storedHash, err := m.kv.Get(ctx, keyPasswordHash)
	if err != nil {
		return "", err
	}
	if storedHash == HashPassword(m.cfg.DefaultPassword) {
		return "Using default password. Please change it in Settings.", nil
	}
	return "", nil
}

// Status returns the current lockout counters. The lock is evaluated lazily:
// an elapsed lock is cleared here.
func (m *Manager) Status(ctx context.Context) (*LockState, error) {
	locked, until, err := m.lockedNow(ctx)
	if err != nil {
		return nil, err
	}
	attempts, err := m.failedAttempts(ctx)
	if err != nil {
		return nil, err
	}
	return &LockState{FailedAttempts: attempts, Locked: locked, LockedUntil: until}, nil
}

// lockedNow reports whether the account is locked. An elapsed lock clears the
// counters (the Locked -> Unauthenticated lazy transition).
func (m *Manager) lockedNow(ctx context.Context) (bool, time.Time, error) {
	raw, err := m.kv.Get(ctx, keyLockUntil)
	if errors.Is(err, store.ErrNotFound) {
		return false, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, err
	}

	until, perr := parseMillis(raw)
	if perr != nil {
		// Malformed lock timestamp is treated as absence
		return false, time.Time{}, m.clearLockout(ctx)
	}
	if m.now().Before(until) {
		return true, until, nil
	}
	return false, time.Time{}, m.clearLockout(ctx)
}

func (m *Manager) failedAttempts(ctx context.Context) (int, error) {
	raw, err := m.kv.Get(ctx, keyAttempts)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(raw)
	if perr != nil {
		return 0, nil
	}
	return n, nil
}

func (m *Manager) clearLockout(ctx context.Context) error {
	if err := m.kv.Delete(ctx, keyLockUntil); err != nil {
		return err
	}
	return m.kv.Delete(ctx, keyAttempts)
}

func (m *Manager) issueSession(ctx context.Context) (string, time.Time, error) {
	token, expiresAt, err := m.tokens.Generate(m.now(), m.cfg.SessionTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := m.kv.Set(ctx, keyToken, token); err != nil {
		return "", time.Time{}, fmt.Errorf("storing session token: %w", err)
	}
	if err := m.kv.Set(ctx, keyExpiry, formatMillis(expiresAt)); err != nil {
		return "", time.Time{}, fmt.Errorf("storing session expiry: %w", err)
	}
	return token, expiresAt, nil
}

// sleep waits for the configured friction delay, honoring context cancellation.
func (m *Manager) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Timestamps are stored as decimal milliseconds since epoch, the layout the
// original admin panel persisted.
func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
