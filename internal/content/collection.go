// ABOUTME: Descriptor-parameterized CRUD engine shared by all four collections
// ABOUTME: One implementation of load/add/update/delete instead of per-type branches

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

// resource describes one collection: its durable key, how to reach an item's
// id, how to assign one when the caller left it empty, and its default data.
type resource[T any] struct {
	key      string
	id       func(*T) *string
	assignID func(*T, time.Time)
	defaults func() []T
}

// loadResource reads a collection from the store. Absence and malformed JSON
// both fall back to the defaults; neither is surfaced as an error.
func loadResource[T any](ctx context.Context, kv store.KV, r resource[T], logger *slog.Logger) ([]T, error) {
	raw, err := kv.Get(ctx, r.key)
	if errors.Is(err, store.ErrNotFound) {
		return r.defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.key, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("malformed stored collection, using defaults", "key", r.key, "error", err)
		return r.defaults(), nil
	}
	return items, nil
}

// persistResource mirrors one collection to the store as a JSON array.
func persistResource[T any](ctx context.Context, kv store.KV, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data))
}

// addItem assigns an id if needed, appends (append order is display order),
// and persists the collection.
func addItem[T any](ctx context.Context, kv store.KV, r resource[T], items []T, item T, now time.Time) ([]T, T, error) {
	if *r.id(&item) == "" {
		r.assignID(&item, now)
	}
	items = append(items, item)
	if err := persistResource(ctx, kv, r.key, items); err != nil {
		return nil, item, err
	}
	return items, item, nil
}

// updateItem shallow-merges patch into the item matching id and persists.
// An unknown id is a no-op.
func updateItem[T any](ctx context.Context, kv store.KV, r resource[T], items []T, id string, patch map[string]any) ([]T, error) {
	found := false
	for i := range items {
		if *r.id(&items[i]) != id {
			continue
		}
		merged, err := mergePatch(items[i], patch)
		if err != nil {
			return nil, fmt.Errorf("merging patch for %s/%s: %w", r.key, id, err)
		}
		items[i] = merged
		found = true
		break
	}
	if !found {
		return items, nil
	}
	if err := persistResource(ctx, kv, r.key, items); err != nil {
		return nil, err
	}
	return items, nil
}

// deleteItem removes the item matching id and persists. An unknown id is a
// no-op.
func deleteItem[T any](ctx context.Context, kv store.KV, r resource[T], items []T, id string) ([]T, error) {
	kept := items[:0:0]
	for i := range items {
		if *r.id(&items[i]) != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return items, nil
	}
	if err := persistResource(ctx, kv, r.key, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// mergePatch overlays the patch's keys onto the item's JSON representation.
// Keys absent from the patch keep their current values.
func mergePatch[T any](item T, patch map[string]any) (T, error) {
	var zero T

	base, err := json.Marshal(item)
	if err != nil {
		return zero, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return zero, err
	}
	for k, v := range patch {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// slugID builds an id from a display name ("Tailwind CSS" -> "tailwind-css").
// Unnamed items get a time-based fallback.
func slugID(name, prefix string, now time.Time) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return timeID(prefix, now)
	}
	return strings.Join(fields, "-")
}

// timeID is the fallback id for items without a usable name.
func timeID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}
