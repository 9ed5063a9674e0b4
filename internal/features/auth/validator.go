package auth

import (
	"errors"

	"github.com/xyz-asif/gotasks/internal/pkg/validator"
)

var (
	ErrInvalidEmail  = errors.New("a valid email address is required")
	ErrMissingUserID = errors.New("user id is required")
)

// ValidateEmail checks the email format shared by login and register payloads
func ValidateEmail(email string) error {
	if !validator.IsValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}
