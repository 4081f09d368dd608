package auth

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// FieldError is a validation failure tagged with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field-tagged validation failures so the caller
// can correct all of them at once instead of one per round trip.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	fullNameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe    = regexp.MustCompile(`^\d{10}$`)
)

// ValidateRegistration checks all registration input synchronously, before
// any persistence. Optional profile fields are only validated when present.
func ValidateRegistration(email, password, fullName, phone, dob string) ValidationErrors {
	var errs ValidationErrors

	if !emailRe.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email address"})
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)})
	}
	if fullName != "" && !fullNameRe.MatchString(fullName) {
		errs = append(errs, FieldError{Field: "fullname", Message: "full name can only contain letters and spaces"})
	}
	if phone != "" && !phoneRe.MatchString(phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "phone number must be exactly 10 digits"})
	}
	if dob != "" && !validDOB(dob) {
		errs = append(errs, FieldError{Field: "dob", Message: "date of birth must be in the format MM/DD/YYYY"})
	}

	return errs
}

// validDOB requires a strict MM/DD/YYYY date, zero-padded.
func validDOB(v string) bool {
	if len(v) != 10 {
		return false
	}
	_, err := time.Parse("01/02/2006", v)
	return err == nil
}
