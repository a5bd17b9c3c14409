package account

import (
	"regexp"
	"strings"
)

// ValidationError reports the first policy rule a credential submission
// violated. Rules are checked in order; one reason is surfaced at a time.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidateRegistration checks name, email and password shape for the
// register flow. Fail-fast: the first violated rule wins.
func ValidateRegistration(name, email, password string) error {
	if name == "" {
		return &ValidationError{Message: "Name is required"}
	}
	trimmed := strings.TrimSpace(name)
	if !nameRe.MatchString(trimmed) {
		return &ValidationError{Message: "Name should contain only letters and spaces"}
	}
	if len(trimmed) < 2 {
		return &ValidationError{Message: "Name must be at least 2 characters"}
	}

	if err := validateEmail(email); err != nil {
		return err
	}

	if password == "" {
		return &ValidationError{Message: "Password is required"}
	}
	if len(password) < 8 {
		return &ValidationError{Message: "Password must be at least 8 characters"}
	}
	if !lowerRe.MatchString(password) {
		return &ValidationError{Message: "Password must contain at least one lowercase letter"}
	}
	if !upperRe.MatchString(password) {
		return &ValidationError{Message: "Password must contain at least one uppercase letter"}
	}
	if !digitRe.MatchString(password) {
		return &ValidationError{Message: "Password must contain at least one number"}
	}
	if !specialRe.MatchString(password) {
		return &ValidationError{Message: "Password must contain at least one special character"}
	}

	return nil
}

// ValidateLogin checks email shape and password presence only; strength
// rules are not re-applied to stored credentials.
func ValidateLogin(email, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Message: "Password is required"}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Message: "Email is required"}
	}
	// Deliberately permissive shape check, not full RFC 5322.
	if !emailRe.MatchString(email) {
		return &ValidationError{Message: "Please enter a valid email address"}
	}
	return nil
}
