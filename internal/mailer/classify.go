// ABOUTME: Error classification for EmailJS send failures
// ABOUTME: Pattern-matches raw error text into friendly user-facing categories

package mailer

import (
	"fmt"
	"regexp"
)

// Category buckets an EmailJS failure for user-facing messaging.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPublicKey
	CategoryServiceID
	CategoryTemplateID
	CategoryNotFound
	CategoryUnauthorized
	CategoryNetwork
)

// Classification rules, applied in order; a later match overrides an earlier
// one. The order matters: "template not found" should read as not-found, not
// as a template-id problem.
var classifiers = []struct {
	re  *regexp.Regexp
	cat Category
}{
	{regexp.MustCompile(`(?i)user id|public key`), CategoryPublicKey},
	{regexp.MustCompile(`(?i)service id`), CategoryServiceID},
	{regexp.MustCompile(`(?i)template id`), CategoryTemplateID},
	{regexp.MustCompile(`(?i)not found|does not exist`), CategoryNotFound},
	{regexp.MustCompile(`(?i)unauthorized|401|403`), CategoryUnauthorized},
	{regexp.MustCompile(`(?i)network|fetch|cors`), CategoryNetwork},
}

// Classify maps raw error text to a Category.
func Classify(raw string) Category {
	cat := CategoryUnknown
	for _, c := range classifiers {
		if c.re.MatchString(raw) {
			cat = c.cat
		}
	}
	return cat
}

// FriendlyMessage returns the user-facing text for a category.
func FriendlyMessage(cat Category) string {
	switch cat {
	case CategoryPublicKey:
		return "EmailJS Public Key missing or invalid. Check Admin → Contact Info (Public Key)."
	case CategoryServiceID:
		return "EmailJS Service ID is invalid. Verify in Admin → Contact Info."
	case CategoryTemplateID:
		return "EmailJS Template ID is invalid. Verify in Admin → Contact Info."
	case CategoryNotFound:
		return "EmailJS template not found. Ensure the Template ID exists in your EmailJS dashboard."
	case CategoryUnauthorized:
		return "EmailJS authorization failed. Re-check the Public Key and that the service/template belong to your account."
	case CategoryNetwork:
		return "Network error while contacting EmailJS. Check your internet connection and try again."
	default:
		return "Failed to send message. Please try again later or contact me directly via email."
	}
}

// SendError carries both the friendly category text and the raw detail.
type SendError struct {
	Category Category
	Raw      string
}

func (e *SendError) Error() string {
	friendly := FriendlyMessage(e.Category)
	if e.Raw == "" {
		return friendly
	}
	return fmt.Sprintf("%s Details: %s", friendly, e.Raw)
}
