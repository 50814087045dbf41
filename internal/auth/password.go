// Package auth provides password hashing and verification for account
// credentials. Hashes are bcrypt and safe to store directly on the user row.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8

	// MaxPasswordLength caps input at bcrypt's 72-byte limit so longer
	// passwords are rejected instead of silently truncated.
	MaxPasswordLength = 72

	// hashCost is the bcrypt work factor for newly minted hashes.
	hashCost = 12
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword returns a salted bcrypt hash of password at the current
// work factor.
func HashPassword(password string) (string, error) {
	if err := checkLength(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func checkLength(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// VerifyPassword compares password against a stored bcrypt hash.
func VerifyPassword(password, hash string) error {
	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("verifying password: %w", err)
	}
}

// NeedsRehash reports whether a stored hash was minted at a lower work
// factor than the current one. Logins use it to upgrade old hashes the
// next time the plaintext is available.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		// Not a bcrypt hash. Verification fails on its own terms.
		return false
	}
	return cost < hashCost
}
