// Package mailer sends contact-form messages through the EmailJS
// transactional-email API.
//
// The send path is fire-once with a single fallback: a JSON API attempt, then
// one form-encoded attempt, then a classified error. Failures are bucketed by
// pattern-matching the raw error text (invalid key, invalid service, invalid
// template, not found, unauthorized, network) so the UI can show a friendly
// message alongside the raw detail.
//
// Settings resolve in two layers: values stored in the KV store (saved from
// the admin panel) are overridden field by field by configuration.
package mailer
