// Package content implements the portfolio content store: four independently
// persisted collections (projects, skills, social links, contact cards) with
// uniform CRUD semantics.
//
// # Ownership
//
// The Store owns the in-memory collections for the lifetime of the process.
// Durable storage is read once in Load and written after every mutation of
// the affected collection only; it is never re-read for queries.
//
// # Semantics
//
//   - add: assigns an id when the caller omitted one (name slug, or a
//     time-based fallback for unnamed items) and appends; append order is
//     display order
//   - update: shallow-merges a partial patch by id; unknown ids are a no-op
//   - delete: removes by id; unknown ids are a no-op
//
// Contact cards support update only; their membership is fixed.
//
// Malformed or absent stored collections fall back to the embedded defaults
// and are never surfaced as errors. Field-level validation is the form
// boundary's job, not the store's.
package content
