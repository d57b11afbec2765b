package auth

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// specialChars are the symbols that satisfy the special-character rule.
const specialChars = `!@#$%^&*(),.?":{}|<>`

type passwordRule struct {
	name string
	ok   func(string) bool
}

var passwordRules = []passwordRule{
	{"at least 8 characters", func(s string) bool { return len(s) >= MinPasswordLength }},
	{"an uppercase letter", hasRune(unicode.IsUpper)},
	{"a lowercase letter", hasRune(unicode.IsLower)},
	{"a number", hasRune(unicode.IsDigit)},
	{"a special character", func(s string) bool { return strings.ContainsAny(s, specialChars) }},
}

func hasRune(pred func(rune) bool) func(string) bool {
	return func(s string) bool { return strings.IndexFunc(s, pred) >= 0 }
}

func ruleNames() []string {
	names := make([]string, len(passwordRules))
	for i, r := range passwordRules {
		names[i] = r.name
	}
	return names
}

// PasswordError lists the password rules a candidate failed. It matches
// ErrWeakPassword with errors.Is.
type PasswordError struct {
	Missing []string
}

func (e *PasswordError) Error() string {
	return "password too weak: needs " + strings.Join(e.Missing, ", ")
}

func (e *PasswordError) Unwrap() error { return ErrWeakPassword }

// ValidatePassword checks a new password against every rule and reports all
// failures at once.
func ValidatePassword(password string) error {
	var missing []string
	for _, r := range passwordRules {
		if !r.ok(password) {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &PasswordError{Missing: missing}
	}
	return nil
}
