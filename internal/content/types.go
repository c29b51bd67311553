// ABOUTME: Content item types for the four portfolio collections
// ABOUTME: JSON tags match the durable layout; TOML tags match the embedded defaults

package content

// Project is a portfolio project card.
type Project struct {
	ID           string   `json:"id" toml:"id"`
	Title        string   `json:"title" toml:"title"`
	Description  string   `json:"description" toml:"description"`
	Image        string   `json:"image" toml:"image"`
	Technologies []string `json:"technologies" toml:"technologies"`
	Github       string   `json:"github,omitempty" toml:"github"`
	Demo         string   `json:"demo,omitempty" toml:"demo"`
	Featured     bool     `json:"featured" toml:"featured"`
}

// Skill is a skill entry with a 0-100 proficiency level.
type Skill struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Icon     string `json:"icon" toml:"icon"`
	Level    int    `json:"level" toml:"level"`
	Category string `json:"category" toml:"category"`
}

// Social is a social profile link.
type Social struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
	URL  string `json:"url" toml:"url"`
	Icon string `json:"icon" toml:"icon"`
}

// ContactCard is one of the contact-info cards shown on the contact section.
// The color fields are presentation hints carried through storage untouched.
type ContactCard struct {
	ID          string `json:"id" toml:"id"`
	Title       string `json:"title" toml:"title"`
	Value       string `json:"value" toml:"value"`
	Description string `json:"description" toml:"description"`
	Icon        string `json:"icon" toml:"icon"`
	Color       string `json:"color,omitempty" toml:"color"`
	BgColor     string `json:"bgColor,omitempty" toml:"bg_color"`
	BorderColor string `json:"borderColor,omitempty" toml:"border_color"`
}
