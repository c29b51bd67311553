// ABOUTME: Non-cryptographic password hashing for the stored credential record
// ABOUTME: Matches the rolling 31-hash the original admin panel persisted

package auth

import (
	"strconv"
	"unicode/utf16"
)

// HashPassword computes the rolling hash stored as the credential record.
//
// This is NOT a cryptographic hash. It exists only to avoid keeping the
// plaintext password in durable storage, and the output must stay
// byte-compatible with stores written by earlier versions (a decimal int32,
// hash = hash*31 + codeunit over UTF-16 code units).
func HashPassword(password string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(password)) {
		h = (h << 5) - h + int32(u)
	}
	return strconv.FormatInt(int64(h), 10)
}
