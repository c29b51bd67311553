// ABOUTME: Export/import snapshot surface for the content collections
// ABOUTME: JSON snapshot of projects, skills, and socials with a timestamp

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is the downloadable backup of the user-editable collections.
// Contact cards are not part of the snapshot; their membership is fixed.
type Snapshot struct {
	Projects   []Project `json:"projects"`
	Skills     []Skill   `json:"skills"`
	Socials    []Social  `json:"socials"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Export returns a snapshot of the three exportable collections.
func (s *Store) Export() Snapshot {
	return Snapshot{
		Projects:   s.Projects(),
		Skills:     s.Skills(),
		Socials:    s.Socials(),
		ExportedAt: s.now().UTC(),
	}
}

// ExportJSON renders the snapshot as indented JSON, the file the admin UI
// offers for download.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// ExportFilename returns the conventional download name for a snapshot taken
// now, e.g. "portfolio-data-2026-08-30.json".
func (s *Store) ExportFilename() string {
	return fmt.Sprintf("portfolio-data-%s.json", s.now().UTC().Format("2006-01-02"))
}

// Import overwrites the durable collections present in the snapshot and
// reloads. Collections absent from the snapshot are left untouched.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var raw struct {
		Projects json.RawMessage `json:"projects"`
		Skills   json.RawMessage `json:"skills"`
		Socials  json.RawMessage `json:"socials"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	// Validate each present collection before touching storage
	if raw.Projects != nil {
		var items []Project
		if err := json.Unmarshal(raw.Projects, &items); err != nil {
			return fmt.Errorf("parsing snapshot projects: %w", err)
		}
	}
	if raw.Skills != nil {
		var items []Skill
		if err := json.Unmarshal(raw.Skills, &items); err != nil {
			return fmt.Errorf("parsing snapshot skills: %w", err)
		}
	}
	if raw.Socials != nil {
		var items []Social
		if err := json.Unmarshal(raw.Socials, &items); err != nil {
			return fmt.Errorf("parsing snapshot socials: %w", err)
		}
	}

	if raw.Projects != nil {
		if err := s.kv.Set(ctx, keyProjects, string(raw.Projects)); err != nil {
			return err
		}
	}
	if raw.Skills != nil {
		if err := s.kv.Set(ctx, keySkills, string(raw.Skills)); err != nil {
			return err
		}
	}
	if raw.Socials != nil {
		if err := s.kv.Set(ctx, keySocials, string(raw.Socials)); err != nil {
			return err
		}
	}

	s.logger.Info("snapshot imported")
	return s.Load(ctx)
}

// Reset deletes the three exportable collections from storage and reloads,
// restoring the built-in defaults. Contact cards are preserved.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range []string{keyProjects, keySkills, keySocials} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	s.logger.Info("content reset to defaults")
	return s.Load(ctx)
}
