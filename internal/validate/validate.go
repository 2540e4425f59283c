// Package validate holds the pure credential validators run before any
// persistence. All functions are deterministic and never panic.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}$`)

// FullName trims the input and checks its length is within [2, 80].
// It returns the cleaned name.
func FullName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.New("full name is required")
	}
	// Lengths count characters, not bytes, so multibyte names measure
	// the way users expect.
	if n := utf8.RuneCountInString(name); n < 2 {
		return "", errors.New("full name is too short")
	} else if n > 80 {
		return "", errors.New("full name is too long")
	}
	return name, nil
}

// Email trims and lowercases the input, then checks it is a syntactically
// valid address. It returns the normalized email, which is the form stored
// and compared everywhere.
func Email(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRe.MatchString(email) {
		return "", errors.New("please enter a valid email address")
	}
	return email, nil
}

// Password enforces the password policy: at least 8 characters with at
// least one lowercase letter, one uppercase letter, one digit and one
// symbol. The error names the first missing class.
func Password(raw string) error {
	if utf8.RuneCountInString(raw) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var lower, upper, digit, symbol bool
	for _, r := range raw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r) && r != '_':
			symbol = true
		}
	}
	switch {
	case !lower:
		return errors.New("add at least one lowercase letter")
	case !upper:
		return errors.New("add at least one uppercase letter")
	case !digit:
		return errors.New("add at least one number")
	case !symbol:
		return errors.New("add at least one symbol (e.g., !@#$%)")
	}
	return nil
}
