// ABOUTME: Content store owning the four portfolio collections
// ABOUTME: In-memory source of truth with the KV store as a passive mirror

package content

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

// Durable keys owned by the content store.
const (
	keyProjects    = "projects"
	keySkills      = "skills"
	keySocials     = "socials"
	keyContactInfo = "contact_info"
)

// Store owns the four content collections for the lifetime of the process.
// Durable storage is read once in Load and mirrored after every mutation;
// it is not consulted again for reads.
type Store struct {
	kv     store.KV
	logger *slog.Logger

	mu          sync.RWMutex
	loaded      bool
	projects    []Project
	skills      []Skill
	socials     []Social
	contactInfo []ContactCard

	now func() time.Time // test hook for id assignment
}

// NewStore creates a content store. Call Load before using it.
func NewStore(kv store.KV) *Store {
	return &Store{
		kv:     kv,
		logger: slog.Default().With("component", "content"),
		now:    time.Now,
	}
}

var (
	projectResource = resource[Project]{
		key: keyProjects,
		id:  func(p *Project) *string { return &p.ID },
		assignID: func(p *Project, now time.Time) {
			p.ID = timeID("project", now)
		},
		defaults: DefaultProjects,
	}
	skillResource = resource[Skill]{
		key: keySkills,
		id:  func(s *Skill) *string { return &s.ID },
		assignID: func(s *Skill, now time.Time) {
			s.ID = slugID(s.Name, "skill", now)
		},
		defaults: DefaultSkills,
	}
	socialResource = resource[Social]{
		key: keySocials,
		id:  func(s *Social) *string { return &s.ID },
		assignID: func(s *Social, now time.Time) {
			s.ID = slugID(s.Name, "social", now)
		},
		defaults: DefaultSocials,
	}
	contactResource = resource[ContactCard]{
		key:      keyContactInfo,
		id:       func(c *ContactCard) *string { return &c.ID },
		assignID: func(c *ContactCard, now time.Time) { c.ID = timeID("contact", now) },
		defaults: DefaultContactInfo,
	}
)

// Load reads all four collections from the store, falling back to the
// built-in defaults when a collection is absent or malformed.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.projects, err = loadResource(ctx, s.kv, projectResource, s.logger); err != nil {
		return err
	}
	if s.skills, err = loadResource(ctx, s.kv, skillResource, s.logger); err != nil {
		return err
	}
	if s.socials, err = loadResource(ctx, s.kv, socialResource, s.logger); err != nil {
		return err
	}
	if s.contactInfo, err = loadResource(ctx, s.kv, contactResource, s.logger); err != nil {
		return err
	}

	s.loaded = true
	s.logger.Info("content loaded",
		"projects", len(s.projects),
		"skills", len(s.skills),
		"socials", len(s.socials),
		"contact_cards", len(s.contactInfo))
	return nil
}

// Loaded reports whether Load has completed. Distinguishes "not yet loaded"
// from "loaded and possibly empty".
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Projects returns the projects in display order.
func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Skills returns the skills in display order.
func (s *Store) Skills() []Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Skill, len(s.skills))
	copy(out, s.skills)
	return out
}

// Socials returns the social links in display order.
func (s *Store) Socials() []Social {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Social, len(s.socials))
	copy(out, s.socials)
	return out
}

// ContactInfo returns the contact cards in display order.
func (s *Store) ContactInfo() []ContactCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ContactCard, len(s.contactInfo))
	copy(out, s.contactInfo)
	return out
}

// AddProject appends a project, assigning a time-based id when none is given.
func (s *Store) AddProject(ctx context.Context, p Project) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, added, err := addItem(ctx, s.kv, projectResource, s.projects, p, s.now())
	if err != nil {
		return Project{}, err
	}
	s.projects = items
	return added, nil
}

// UpdateProject shallow-merges patch into the project with the given id.
func (s *Store) UpdateProject(ctx context.Context, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := updateItem(ctx, s.kv, projectResource, s.projects, id, patch)
	if err != nil {
		return err
	}
	s.projects = items
	return nil
}

// DeleteProject removes the project with the given id.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := deleteItem(ctx, s.kv, projectResource, s.projects, id)
	if err != nil {
		return err
	}
	s.projects = items
	return nil
}

// AddSkill appends a skill, slugging its name into an id when none is given.
func (s *Store) AddSkill(ctx context.Context, sk Skill) (Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, added, err := addItem(ctx, s.kv, skillResource, s.skills, sk, s.now())
	if err != nil {
		return Skill{}, err
	}
	s.skills = items
	return added, nil
}

// UpdateSkill shallow-merges patch into the skill with the given id.
func (s *Store) UpdateSkill(ctx context.Context, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := updateItem(ctx, s.kv, skillResource, s.skills, id, patch)
	if err != nil {
		return err
	}
	s.skills = items
	return nil
}

// DeleteSkill removes the skill with the given id.
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := deleteItem(ctx, s.kv, skillResource, s.skills, id)
	if err != nil {
		return err
	}
	s.skills = items
	return nil
}

// AddSocial appends a social link, slugging its name into an id when none is
// given.
func (s *Store) AddSocial(ctx context.Context, so Social) (Social, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, added, err := addItem(ctx, s.kv, socialResource, s.socials, so, s.now())
	if err != nil {
		return Social{}, err
	}
	s.socials = items
	return added, nil
}

// UpdateSocial shallow-merges patch into the social link with the given id.
func (s *Store) UpdateSocial(ctx context.Context, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := updateItem(ctx, s.kv, socialResource, s.socials, id, patch)
	if err != nil {
		return err
	}
	s.socials = items
	return nil
}

// DeleteSocial removes the social link with the given id.
func (s *Store) DeleteSocial(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := deleteItem(ctx, s.kv, socialResource, s.socials, id)
	if err != nil {
		return err
	}
	s.socials = items
	return nil
}

// UpdateContactCard shallow-merges patch into the contact card with the given
// id. Contact cards support update only; their membership is fixed.
func (s *Store) UpdateContactCard(ctx context.Context, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := updateItem(ctx, s.kv, contactResource, s.contactInfo, id, patch)
	if err != nil {
		return err
	}
	s.contactInfo = items
	return nil
}
