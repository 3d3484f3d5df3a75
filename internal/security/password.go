package security

import (
	"errors"
	"regexp"
)

var (
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain at least one digit")
	ErrPasswordNoSymbol = errors.New("password must contain at least one symbol")
)

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePassword enforces the registration password policy: at least one
// uppercase letter, one lowercase letter, one digit and one symbol.
func ValidatePassword(password string) error {
	if !upperRe.MatchString(password) {
		return ErrPasswordNoUpper
	}
	if !lowerRe.MatchString(password) {
		return ErrPasswordNoLower
	}
	if !digitRe.MatchString(password) {
		return ErrPasswordNoDigit
	}
	if !symbolRe.MatchString(password) {
		return ErrPasswordNoSymbol
	}
	return nil
}
