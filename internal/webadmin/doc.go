// Package webadmin provides the web interface for the portfolio.
//
// It serves three surfaces from one handler:
//
//   - The public portfolio page, rendered from the content store with
//     project descriptions converted from markdown. Unknown paths fall
//     through to it so deep links resolve.
//   - The contact form, which relays submissions through the EmailJS
//     client and reports classified failures back to the visitor.
//   - The admin area under /admin: password login with lockout feedback,
//     a dashboard over all four collections, email settings, password
//     change, and export/import/reset, plus a JSON content API used for
//     programmatic edits.
//
// Authentication is a single session cookie carrying the token issued by
// the auth manager. Templates are embedded with go:embed for single-binary
// deployment.
package webadmin
