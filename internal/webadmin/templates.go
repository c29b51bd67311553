// ABOUTME: Template rendering functions for the admin UI and public site
// ABOUTME: Loads templates from the embedded filesystem and renders them

package webadmin

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ayoubdev/portfolio-admin/internal/content"
	"github.com/ayoubdev/portfolio-admin/internal/mailer"
)

// Template data types
type loginData struct {
	Title  string
	Error  string
	Notice string
	Hint   string
}

type projectView struct {
	content.Project
	DescriptionHTML template.HTML
}

type siteData struct {
	Title         string
	Projects      []projectView
	Skills        []content.Skill
	Socials       []content.Social
	ContactInfo   []content.ContactCard
	ContactNotice string
	ContactError  string
}

type dashboardData struct {
	Title       string
	Projects    []content.Project
	Skills      []content.Skill
	Socials     []content.Social
	ContactInfo []content.ContactCard
	Email       mailer.Settings
	Hint        string
	Notice      string
	Error       string
}

// markdown renders project descriptions on the public site
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown source to HTML. On conversion failure the
// source is returned escaped as plain text.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// renderLoginPage renders the admin login page
func (a *Admin) renderLoginPage(w http.ResponseWriter, data loginData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/login.html"))

	if data.Title == "" {
		data.Title = "Admin Login"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		a.logger.Error("failed to render login page", "error", err)
	}
}

// renderDashboard renders the admin dashboard
func (a *Admin) renderDashboard(w http.ResponseWriter, data dashboardData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/dashboard.html"))

	if data.Title == "" {
		data.Title = "Admin Dashboard"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		a.logger.Error("failed to render dashboard", "error", err)
	}
}

// renderSitePage renders the public portfolio page
func (a *Admin) renderSitePage(w http.ResponseWriter, data siteData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/site.html"))

	if data.Title == "" {
		data.Title = "Portfolio"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		a.logger.Error("failed to render site page", "error", err)
	}
}

// projectViews pairs each project with its rendered description
func projectViews(projects []content.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectView{
			Project:         p,
			DescriptionHTML: renderMarkdown(p.Description),
		})
	}
	return out
}
