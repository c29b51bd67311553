// ABOUTME: Built-in default datasets embedded as TOML
// ABOUTME: Used when a collection is absent from storage or fails to parse

package content

import (
	_ "embed"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML []byte

type defaultData struct {
	Projects    []Project     `toml:"projects"`
	Skills      []Skill       `toml:"skills"`
	Socials     []Social      `toml:"socials"`
	ContactInfo []ContactCard `toml:"contact_info"`
}

var loadDefaults = sync.OnceValue(func() defaultData {
	var d defaultData
	if err := toml.Unmarshal(defaultsTOML, &d); err != nil {
		// The embedded file ships with the binary; a parse failure is a build
		// defect, not a runtime condition.
		panic("content: parsing embedded defaults: " + err.Error())
	}
	return d
})

// DefaultProjects returns a fresh copy of the built-in project dataset.
func DefaultProjects() []Project {
	d := loadDefaults()
	out := make([]Project, len(d.Projects))
	copy(out, d.Projects)
	return out
}

// DefaultSkills returns a fresh copy of the built-in skill dataset.
func DefaultSkills() []Skill {
	d := loadDefaults()
	out := make([]Skill, len(d.Skills))
	copy(out, d.Skills)
	return out
}

// DefaultSocials returns a fresh copy of the built-in social dataset.
func DefaultSocials() []Social {
	d := loadDefaults()
	out := make([]Social, len(d.Socials))
	copy(out, d.Socials)
	return out
}

// DefaultContactInfo returns a fresh copy of the built-in contact cards.
func DefaultContactInfo() []ContactCard {
	d := loadDefaults()
	out := make([]ContactCard, len(d.ContactInfo))
	copy(out, d.ContactInfo)
	return out
}
