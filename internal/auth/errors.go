package auth

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmailInUse    = errors.New("email already in use")
	ErrWeakPassword  = errors.New("password too weak")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")

	// ErrInvalidToken means the remembered session could not be verified.
	ErrInvalidToken = errors.New("remembered session is invalid or expired")
)

// Message returns the text to show a user for an auth failure.
func Message(err error) string {
	var pwErr *PasswordError
	if errors.As(err, &pwErr) {
		return "Your password needs " + joinRules(pwErr.Missing) + "."
	}
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, ErrEmailInUse):
		return "That email is already registered. Try signing in instead."
	case errors.Is(err, ErrWeakPassword):
		return "Passwords need " + joinRules(ruleNames()) + "."
	case errors.Is(err, ErrUserNotFound):
		return "No account exists for that email."
	case errors.Is(err, ErrWrongPassword):
		return "The password is incorrect."
	case errors.Is(err, ErrInvalidToken):
		return "Your saved sign-in has expired. Please sign in again."
	case err == nil:
		return ""
	}
	return "Authentication failed. Please try again."
}

func joinRules(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
