// Package auth implements the admin session manager for portfolio-admin.
//
// # State Machine
//
// The manager cycles between three states per store:
//
//   - Unauthenticated: no valid session token
//   - Authenticated: a non-expired session token is stored
//   - Locked: too many consecutive failed attempts; regular logins are
//     rejected until the lock timestamp passes
//
// Lock expiry and session expiry are evaluated lazily whenever a relevant
// operation runs. There are no background timers.
//
// # Credentials
//
// The stored credential is a rolling 31-hash of the password (see
// HashPassword). It is explicitly non-cryptographic: the admin panel is a
// client-side-only system and the hash exists to keep the plaintext out of
// durable storage, nothing more.
//
// The owner password is a configuration-supplied override that clears the
// lockout counters without granting a session. It works while locked.
//
// # Sessions
//
// Session tokens are HS256 signed JWTs with a 24 hour default TTL. The token
// and its expiry timestamp are persisted under the manager's durable keys;
// ChangePassword revokes the current session as part of its contract.
package auth
