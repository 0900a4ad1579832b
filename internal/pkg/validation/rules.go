package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	URLPattern   = `^https?://[^\s]+$`

	PasswordMinLength = 8
	NameMinLength     = 2
	NameMaxLength     = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	URL   *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	URL:   regexp.MustCompile(URLPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidURL reports whether the value is an http(s) URL. Empty values are valid
// since all URL fields are optional.
func IsValidURL(value string) bool {
	if value == "" {
		return true
	}
	return CompiledPatterns.URL.MatchString(value)
}

// IsValidPassword reports whether the password satisfies the minimum length rule.
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}

// IsValidName reports whether a display name is within length bounds.
func IsValidName(value string) bool {
	return len(value) >= NameMinLength && len(value) <= NameMaxLength
}
