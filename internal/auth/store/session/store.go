// Package session persists the single active login of a profile.
package session

import (
	"context"
	"errors"

	"notely/internal/auth/models"
)

// ErrNoSession is returned by Load when nothing is stored.
var ErrNoSession = errors.New("no stored session")

// Store persists the token and user of the current login.
//
// Error Contract:
//   - Load returns ErrNoSession when nothing is stored
//   - Token returns "" and a nil error when nothing is stored
//   - Clear is idempotent
type Store interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}
