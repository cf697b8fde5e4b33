package email

import "strings"

// Normalize trims and lower-cases an address. Accounts are keyed by the
// normalized form.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
