// ABOUTME: Admin web UI and public portfolio page for portfolio-admin
// ABOUTME: Provides login, dashboard, content API routes, and the contact form

package webadmin

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ayoubdev/portfolio-admin/internal/auth"
	"github.com/ayoubdev/portfolio-admin/internal/content"
	"github.com/ayoubdev/portfolio-admin/internal/mailer"
	"github.com/ayoubdev/portfolio-admin/internal/store"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "portfolio_admin_session"

// maxImportSize caps uploaded snapshot files
const maxImportSize = 1 << 20 // 1 MiB

// Admin handles the admin UI, the content API, and the public site routes
type Admin struct {
	kv       store.KV
	sessions *auth.Manager
	content  *content.Store
	mail     *mailer.Client
	emailCfg mailer.Settings
	logger   *slog.Logger
}

// New creates a new Admin handler. emailCfg carries the configuration-level
// EmailJS settings; values saved from the dashboard fill any gaps.
func New(kv store.KV, sessions *auth.Manager, contentStore *content.Store, mail *mailer.Client, emailCfg mailer.Settings) *Admin {
	return &Admin{
		kv:       kv,
		sessions: sessions,
		content:  contentStore,
		mail:     mail,
		emailCfg: emailCfg,
		logger:   slog.Default().With("component", "webadmin"),
	}
}

// RegisterRoutes registers all routes on the given mux
func (a *Admin) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("GET /", a.handleSite)
	mux.HandleFunc("POST /contact", a.handleContact)
	mux.HandleFunc("GET /admin/login", a.handleLoginPage)
	mux.HandleFunc("POST /admin/login", a.handleLogin)

	// Protected pages
	mux.HandleFunc("GET /admin", a.requireAuth(a.handleDashboard))
	mux.HandleFunc("GET /admin/", a.requireAuth(a.handleDashboard))
	mux.HandleFunc("POST /admin/logout", a.requireAuth(a.handleLogout))
	mux.HandleFunc("POST /admin/password", a.requireAuth(a.handlePasswordChange))
	mux.HandleFunc("POST /admin/email", a.requireAuth(a.handleEmailSettings))
	mux.HandleFunc("GET /admin/export", a.requireAuth(a.handleExport))
	mux.HandleFunc("POST /admin/import", a.requireAuth(a.handleImport))
	mux.HandleFunc("POST /admin/reset", a.requireAuth(a.handleReset))

	// Content API
	mux.HandleFunc("GET /admin/api/projects", a.requireAuthAPI(a.handleProjectsList))
	mux.HandleFunc("POST /admin/api/projects", a.requireAuthAPI(a.handleProjectCreate))
	mux.HandleFunc("PUT /admin/api/projects/{id}", a.requireAuthAPI(a.handleProjectUpdate))
	mux.HandleFunc("DELETE /admin/api/projects/{id}", a.requireAuthAPI(a.handleProjectDelete))

	mux.HandleFunc("GET /admin/api/skills", a.requireAuthAPI(a.handleSkillsList))
	mux.HandleFunc("POST /admin/api/skills", a.requireAuthAPI(a.handleSkillCreate))
	mux.HandleFunc("PUT /admin/api/skills/{id}", a.requireAuthAPI(a.handleSkillUpdate))
	mux.HandleFunc("DELETE /admin/api/skills/{id}", a.requireAuthAPI(a.handleSkillDelete))

	mux.HandleFunc("GET /admin/api/socials", a.requireAuthAPI(a.handleSocialsList))
	mux.HandleFunc("POST /admin/api/socials", a.requireAuthAPI(a.handleSocialCreate))
	mux.HandleFunc("PUT /admin/api/socials/{id}", a.requireAuthAPI(a.handleSocialUpdate))
	mux.HandleFunc("DELETE /admin/api/socials/{id}", a.requireAuthAPI(a.handleSocialDelete))

	mux.HandleFunc("GET /admin/api/contact-info", a.requireAuthAPI(a.handleContactInfoList))
	mux.HandleFunc("PUT /admin/api/contact-info/{id}", a.requireAuthAPI(a.handleContactCardUpdate))

	a.logger.Info("routes registered")
}

// requireAuth wraps a page handler to require a valid session, redirecting to
// the login page otherwise
func (a *Admin) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.authenticated(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// requireAuthAPI wraps an API handler to require a valid session, answering
// 401 JSON otherwise
func (a *Admin) requireAuthAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.authenticated(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next(w, r)
	}
}

// authenticated checks the session cookie against the current session
func (a *Admin) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	ok, err := a.sessions.Authenticate(r.Context(), cookie.Value)
	if err != nil {
		a.logger.Error("session check failed", "error", err)
		return false
	}
	return ok
}

// handleSite renders the public portfolio page. Every path outside /admin and
// /contact falls through to it, so deep links into the single-page layout
// resolve instead of 404ing.
func (a *Admin) handleSite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.renderSitePage(w, siteData{
		Projects:      projectViews(a.content.Projects()),
		Skills:        a.content.Skills(),
		Socials:       a.content.Socials(),
		ContactInfo:   a.content.ContactInfo(),
		ContactNotice: q.Get("sent"),
		ContactError:  q.Get("contact_error"),
	})
}

// handleContact sends a contact-form submission through EmailJS
func (a *Admin) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?contact_error="+url.QueryEscape("Invalid form data"), http.StatusSeeOther)
		return
	}

	stored, err := mailer.LoadSettings(r.Context(), a.kv)
	if err != nil {
		a.logger.Error("failed to load email settings", "error", err)
		http.Redirect(w, r, "/?contact_error="+url.QueryEscape("Failed to send message. Please try again."), http.StatusSeeOther)
		return
	}
	cfg := mailer.Resolve(a.emailCfg, stored)

	msg := mailer.Message{
		FromName:  r.FormValue("name"),
		FromEmail: r.FormValue("email"),
		Subject:   r.FormValue("subject"),
		Body:      r.FormValue("message"),
		Recipient: a.recipientAddress(cfg),
	}

	if err := a.mail.Send(r.Context(), cfg, msg); err != nil {
		a.logger.Error("contact send failed", "error", err)
		http.Redirect(w, r, "/?contact_error="+url.QueryEscape(contactErrorMessage(err)), http.StatusSeeOther)
		return
	}

	a.logger.Info("contact message sent", "from", msg.FromEmail)
	http.Redirect(w, r, "/?sent="+url.QueryEscape("Message sent successfully!"), http.StatusSeeOther)
}

// recipientAddress resolves where contact mail goes: the value of the "email"
// contact card when it looks like an address, otherwise the configured or
// stored override.
func (a *Admin) recipientAddress(cfg mailer.Settings) string {
	for _, card := range a.content.ContactInfo() {
		if card.ID == "email" && strings.Contains(card.Value, "@") {
			return card.Value
		}
	}
	return cfg.ToEmail
}

// contactErrorMessage maps send failures to the message shown on the site
func contactErrorMessage(err error) string {
	var sendErr *mailer.SendError
	if errors.As(err, &sendErr) {
		return mailer.FriendlyMessage(sendErr.Category)
	}
	if errors.Is(err, mailer.ErrNotConfigured) || errors.Is(err, mailer.ErrNoRecipient) {
		return "Email service is not configured yet. Please try again later."
	}
	return "Failed to send message. Please try again."
}

// handleLoginPage renders the login page
func (a *Admin) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in
	if a.authenticated(r) {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}

	hint, err := a.sessions.PasswordHint(r.Context())
	if err != nil {
		a.logger.Error("failed to read password hint", "error", err)
	}
	a.renderLoginPage(w, loginData{
		Hint:   hint,
		Notice: r.URL.Query().Get("notice"),
	})
}

// handleLogin processes the login form
func (a *Admin) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderLoginPage(w, loginData{Error: "Invalid form data"})
		return
	}

	result, err := a.sessions.Login(r.Context(), r.FormValue("password"))
	if err != nil {
		a.logger.Error("login failed", "error", err)
		a.renderLoginPage(w, loginData{Error: "An error occurred"})
		return
	}

	switch result.Outcome {
	case auth.LoginSuccess:
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    result.Token,
			Path:     "/",
			Expires:  result.ExpiresAt,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)

	case auth.LoginUnlocked:
		hint, _ := a.sessions.PasswordHint(r.Context())
		a.renderLoginPage(w, loginData{Notice: result.Message, Hint: hint})

	default:
		hint, _ := a.sessions.PasswordHint(r.Context())
		a.renderLoginPage(w, loginData{Error: result.Message, Hint: hint})
	}
}

// handleDashboard renders the admin dashboard
func (a *Admin) handleDashboard(w http.ResponseWriter, r *http.Request) {
	hint, err := a.sessions.PasswordHint(r.Context())
	if err != nil {
		a.logger.Error("failed to read password hint", "error", err)
	}

	stored, err := mailer.LoadSettings(r.Context(), a.kv)
	if err != nil {
		a.logger.Error("failed to load email settings", "error", err)
	}

	q := r.URL.Query()
	a.renderDashboard(w, dashboardData{
		Projects:    a.content.Projects(),
		Skills:      a.content.Skills(),
		Socials:     a.content.Socials(),
		ContactInfo: a.content.ContactInfo(),
		Email:       stored,
		Hint:        hint,
		Notice:      q.Get("notice"),
		Error:       q.Get("error"),
	})
}

// handleLogout clears the session and the cookie
func (a *Admin) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(r.Context()); err != nil {
		a.logger.Error("logout failed", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handlePasswordChange processes the change-password form. A successful
// change revokes the session, so the browser lands back on the login page.
func (a *Admin) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Invalid form data"), http.StatusSeeOther)
		return
	}

	err := a.sessions.ChangePassword(r.Context(), r.FormValue("current_password"), r.FormValue("new_password"))
	switch {
	case err == nil:
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		http.Redirect(w, r, "/admin/login?notice="+url.QueryEscape("Password changed. Please login with your new password."), http.StatusSeeOther)

	case errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrSamePassword),
		errors.Is(err, auth.ErrWrongPassword):
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)

	default:
		a.logger.Error("password change failed", "error", err)
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("An error occurred"), http.StatusSeeOther)
	}
}

// handleEmailSettings saves the EmailJS settings from the dashboard
func (a *Admin) handleEmailSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Invalid form data"), http.StatusSeeOther)
		return
	}

	s := mailer.Settings{
		ServiceID:  r.FormValue("service_id"),
		TemplateID: r.FormValue("template_id"),
		PublicKey:  r.FormValue("public_key"),
		ToEmail:    r.FormValue("to_email"),
	}
	if err := mailer.SaveSettings(r.Context(), a.kv, s); err != nil {
		a.logger.Error("failed to save email settings", "error", err)
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Failed to save email settings"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/?notice="+url.QueryEscape("Email settings saved"), http.StatusSeeOther)
}

// handleExport offers the content snapshot as a JSON download
func (a *Admin) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := a.content.ExportJSON()
	if err != nil {
		a.logger.Error("export failed", "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.content.ExportFilename()+`"`)
	_, _ = w.Write(data)
}

// handleImport restores content from an uploaded snapshot file
func (a *Admin) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := readSnapshot(r)
	if err != nil {
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Invalid snapshot file"), http.StatusSeeOther)
		return
	}

	if err := a.content.Import(r.Context(), data); err != nil {
		a.logger.Error("import failed", "error", err)
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Import failed: snapshot is not valid"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/?notice="+url.QueryEscape("Content imported"), http.StatusSeeOther)
}

// readSnapshot pulls the snapshot bytes from a multipart upload, falling back
// to the raw request body for API clients
func readSnapshot(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxImportSize); err == nil {
		file, _, ferr := r.FormFile("snapshot")
		if ferr != nil {
			return nil, ferr
		}
		defer func() { _ = file.Close() }()
		return io.ReadAll(io.LimitReader(file, maxImportSize))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxImportSize))
}

// handleReset restores the exportable collections to their defaults
func (a *Admin) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := a.content.Reset(r.Context()); err != nil {
		a.logger.Error("reset failed", "error", err)
		http.Redirect(w, r, "/admin/?error="+url.QueryEscape("Reset failed"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/?notice="+url.QueryEscape("Content reset to defaults"), http.StatusSeeOther)
}

// =============================================================================
// Content API handlers
// =============================================================================

func (a *Admin) handleProjectsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.content.Projects())
}

func (a *Admin) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var p content.Project
	if !decodeBody(w, r, &p) {
		return
	}
	added, err := a.content.AddProject(r.Context(), p)
	if err != nil {
		a.serverError(w, "failed to add project", err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (a *Admin) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	if err := a.content.UpdateProject(r.Context(), r.PathValue("id"), patch); err != nil {
		a.serverError(w, "failed to update project", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Projects())
}

func (a *Admin) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		a.serverError(w, "failed to delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Projects())
}

func (a *Admin) handleSkillsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.content.Skills())
}

func (a *Admin) handleSkillCreate(w http.ResponseWriter, r *http.Request) {
	var s content.Skill
	if !decodeBody(w, r, &s) {
		return
	}
	added, err := a.content.AddSkill(r.Context(), s)
	if err != nil {
		a.serverError(w, "failed to add skill", err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (a *Admin) handleSkillUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	if err := a.content.UpdateSkill(r.Context(), r.PathValue("id"), patch); err != nil {
		a.serverError(w, "failed to update skill", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Skills())
}

func (a *Admin) handleSkillDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteSkill(r.Context(), r.PathValue("id")); err != nil {
		a.serverError(w, "failed to delete skill", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Skills())
}

func (a *Admin) handleSocialsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.content.Socials())
}

func (a *Admin) handleSocialCreate(w http.ResponseWriter, r *http.Request) {
	var s content.Social
	if !decodeBody(w, r, &s) {
		return
	}
	added, err := a.content.AddSocial(r.Context(), s)
	if err != nil {
		a.serverError(w, "failed to add social link", err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (a *Admin) handleSocialUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	if err := a.content.UpdateSocial(r.Context(), r.PathValue("id"), patch); err != nil {
		a.serverError(w, "failed to update social link", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Socials())
}

func (a *Admin) handleSocialDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.content.DeleteSocial(r.Context(), r.PathValue("id")); err != nil {
		a.serverError(w, "failed to delete social link", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.Socials())
}

func (a *Admin) handleContactInfoList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.content.ContactInfo())
}

func (a *Admin) handleContactCardUpdate(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}
	if err := a.content.UpdateContactCard(r.Context(), r.PathValue("id"), patch); err != nil {
		a.serverError(w, "failed to update contact card", err)
		return
	}
	writeJSON(w, http.StatusOK, a.content.ContactInfo())
}

// =============================================================================
// Helpers
// =============================================================================

func (a *Admin) serverError(w http.ResponseWriter, msg string, err error) {
	a.logger.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportSize)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func decodePatch(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var patch map[string]any
	if !decodeBody(w, r, &patch) {
		return nil, false
	}
	return patch, true
}
