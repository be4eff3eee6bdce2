// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Mobile strips whitespace from a phone number. Digits, "+" and "-" are
// kept as typed; format validation is the callers' concern.
func Mobile(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Status trims a lead status label. Statuses are opaque strings; the
// store does not interpret or case-fold them.
func Status(s string) string {
	return strings.TrimSpace(s)
}
