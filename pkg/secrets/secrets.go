package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "notely/pkg/domain-errors"
)

// TemporaryPasswordLength is the length of passwords handed out on invite.
const TemporaryPasswordLength = 12

// Generate creates a cryptographically secure random secret of n bytes,
// base64url-encoded without padding.
func Generate(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TemporaryPassword returns a random password shown once to an invited user.
func TemporaryPassword() (string, error) {
	s, err := Generate(TemporaryPasswordLength)
	if err != nil {
		return "", err
	}
	return s[:TemporaryPasswordLength], nil
}

// Hash creates a bcrypt hash of the provided secret at the given cost.
func Hash(secret string, cost int) ([]byte, error) {
	if secret == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeValidation, "secret is too long")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash secret")
	}
	return hashed, nil
}

// Verify checks if a plaintext secret matches a bcrypt hash.
func Verify(secret string, hash []byte) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid secret")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify secret")
	}
	return nil
}
