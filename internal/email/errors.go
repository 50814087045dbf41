package email

import "errors"

var (
	// ErrNoRecipients is returned when an email has no To addresses.
	ErrNoRecipients = errors.New("email: no recipients")

	// ErrInvalidFromAddress is returned when the from address is invalid.
	ErrInvalidFromAddress = errors.New("email: invalid from address")
)
