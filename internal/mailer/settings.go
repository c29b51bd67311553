// ABOUTME: EmailJS settings stored in the KV store, overridable by config
// ABOUTME: Owns the emailjs_* and contact_to_email durable keys

package mailer

import (
	"context"
	"errors"

	"github.com/ayoubdev/portfolio-admin/internal/store"
)

// Durable keys owned by the mailer settings surface.
const (
	keyServiceID  = "emailjs_service_id"
	keyTemplateID = "emailjs_template_id"
	keyPublicKey  = "emailjs_public_key"
	keyToEmail    = "contact_to_email"
)

// Settings identifies the EmailJS service/template/key triple plus an
// optional override recipient address.
type Settings struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	ToEmail    string
}

// Configured reports whether the service/template/key triple is complete.
func (s Settings) Configured() bool {
	return s.ServiceID != "" && s.TemplateID != "" && s.PublicKey != ""
}

// Resolve merges configuration over stored settings. Configuration wins
// field by field; stored values only fill the gaps.
func Resolve(cfg, stored Settings) Settings {
	out := stored
	if cfg.ServiceID != "" {
		out.ServiceID = cfg.ServiceID
	}
	if cfg.TemplateID != "" {
		out.TemplateID = cfg.TemplateID
	}
	if cfg.PublicKey != "" {
		out.PublicKey = cfg.PublicKey
	}
	if cfg.ToEmail != "" {
		out.ToEmail = cfg.ToEmail
	}
	return out
}

// LoadSettings reads stored settings. Missing keys read as empty fields.
func LoadSettings(ctx context.Context, kv store.KV) (Settings, error) {
	var s Settings
	var err error
	if s.ServiceID, err = getOptional(ctx, kv, keyServiceID); err != nil {
		return Settings{}, err
	}
	if s.TemplateID, err = getOptional(ctx, kv, keyTemplateID); err != nil {
		return Settings{}, err
	}
	if s.PublicKey, err = getOptional(ctx, kv, keyPublicKey); err != nil {
		return Settings{}, err
	}
	if s.ToEmail, err = getOptional(ctx, kv, keyToEmail); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SaveSettings persists the settings. Empty fields delete their keys so the
// configuration fallback applies again.
func SaveSettings(ctx context.Context, kv store.KV, s Settings) error {
	fields := []struct {
		key, value string
	}{
		{keyServiceID, s.ServiceID},
		{keyTemplateID, s.TemplateID},
		{keyPublicKey, s.PublicKey},
		{keyToEmail, s.ToEmail},
	}
	for _, f := range fields {
		if f.value == "" {
			if err := kv.Delete(ctx, f.key); err != nil {
				return err
			}
			continue
		}
		if err := kv.Set(ctx, f.key, f.value); err != nil {
			return err
		}
	}
	return nil
}

func getOptional(ctx context.Context, kv store.KV, key string) (string, error) {
	v, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}
