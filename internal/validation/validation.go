// Package validation checks signup and profile fields before they reach the
// backend. Messages are user-facing.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 50
	passwordSpecials  = "!@#$%^&*"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// Result lists every failed rule in check order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newResult(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Password enforces length and character class rules.
func Password(p string) Result {
	var errs []string
	if utf8.RuneCountInString(p) < minPasswordLength {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if !upperPattern.MatchString(p) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lowerPattern.MatchString(p) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digitPattern.MatchString(p) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !strings.ContainsAny(p, passwordSpecials) {
		errs = append(errs, "Password must contain at least one special character (!@#$%^&*)")
	}
	return newResult(errs)
}

// Email reports whether e looks like an address.
func Email(e string) bool {
	return emailPattern.MatchString(e)
}

// Username enforces length and the allowed character set.
func Username(u string) Result {
	var errs []string
	n := utf8.RuneCountInString(u)
	if n < minUsernameLength {
		errs = append(errs, "Username must be at least 3 characters")
	}
	if n > maxUsernameLength {
		errs = append(errs, "Username must be less than 50 characters")
	}
	if !usernamePattern.MatchString(u) {
		errs = append(errs, "Username can only contain letters, numbers, hyphens, and underscores")
	}
	return newResult(errs)
}

// Signup is the set of fields a new account submits.
type Signup struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// FieldErrors maps a field name to its failed rules.
type FieldErrors map[string][]string

// Validate checks every field of s and returns nil when all pass.
func (s Signup) Validate() FieldErrors {
	out := FieldErrors{}
	if !Email(s.Email) {
		out["email"] = []string{"Invalid email address"}
	}
	if r := Username(s.Username); !r.Valid {
		out["username"] = r.Errors
	}
	if r := Password(s.Password); !r.Valid {
		out["password"] = r.Errors
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
