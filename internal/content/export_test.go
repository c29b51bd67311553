// ABOUTME: Tests for the export/import snapshot surface
// ABOUTME: Verifies round-trip fidelity, partial imports, and reset

package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := newTestContent(t)
	ctx := context.Background()

	_, err := s.AddProject(ctx, Project{Title: "Custom", Technologies: []string{"Go"}})
	require.NoError(t, err)
	_, err = s.AddSkill(ctx, Skill{Name: "Go", Level: 99})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSocial(ctx, "twitter"))

	data, err := s.ExportJSON()
	require.NoError(t, err)

	wantProjects := s.Projects()
	wantSkills := s.Skills()
	wantSocials := s.Socials()

	// Wreck the live state, then import the snapshot into a fresh store
	require.NoError(t, s.Reset(ctx))

	kv2 := store.NewMemoryStore()
	s2 := NewStore(kv2)
	require.NoError(t, s2.Load(ctx))
	require.NoError(t, s2.Import(ctx, data))

	assert.Equal(t, wantProjects, s2.Projects())
	assert.Equal(t, wantSkills, s2.Skills())
	assert.Equal(t, wantSocials, s2.Socials())
}

func TestExportTimestamp(t *testing.T) {
	s, _ := newTestContent(t)
	s.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	snap := s.Export()
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), snap.ExportedAt)
	assert.Equal(t, "portfolio-data-2026-08-30.json", s.ExportFilename())
}

func TestImportPartialSnapshot(t *testing.T) {
	s, _ := newTestContent(t)
	ctx := context.Background()

	before := s.Projects()
	require.NoError(t, s.Import(ctx, []byte(`{"skills":[{"id":"only","name":"Only"}]}`)))

	require.Len(t, s.Skills(), 1)
	assert.Equal(t, "only", s.Skills()[0].ID)
	// Projects untouched by a snapshot that lacks them
	assert.Equal(t, before, s.Projects())
}

func TestImportInvalidJSON(t *testing.T) {
	s, _ := newTestContent(t)
	err := s.Import(context.Background(), []byte("not json"))
	assert.Error(t, err)
}

func TestImportInvalidCollectionLeavesStorageUntouched(t *testing.T) {
	s, kv := newTestContent(t)
	ctx := context.Background()

	err := s.Import(ctx, []byte(`{"projects":{"not":"an array"}}`))
	require.Error(t, err)

	_, err = kv.Get(ctx, "projects")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResetRestoresDefaults(t *testing.T) {
	s, _ := newTestContent(t)
	ctx := context.Background()

	_, err := s.AddProject(ctx, Project{Title: "Custom"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateContactCard(ctx, "email", map[string]any{"value": "kept@example.com"}))

	require.NoError(t, s.Reset(ctx))

	assert.Equal(t, DefaultProjects(), s.Projects())
	assert.Equal(t, DefaultSkills(), s.Skills())
	assert.Equal(t, DefaultSocials(), s.Socials())

	// Contact cards are not part of the reset
	var card ContactCard
	for _, c := range s.ContactInfo() {
		if c.ID == "email" {
			card = c
		}
	}
	assert.Equal(t, "kept@example.com", card.Value)
}
