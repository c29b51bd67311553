// Package store provides persistent key-value storage for portfolio-admin
// using SQLite.
//
// The store is deliberately a flat key-value table: it mirrors the durable
// layout the admin panel persists (credential hash, session token, lockout
// counters, and the four content collections as JSON arrays). Keys are owned
// exclusively by the auth and content packages; nothing else should read or
// write them directly.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// # Error Handling
//
//   - ErrNotFound: requested key does not exist
//
// All methods accept context.Context.
//
// # Testing
//
// Use NewMemoryStore() for unit tests and NewSQLiteStore with a temp path for
// integration tests with real SQLite.
package store
