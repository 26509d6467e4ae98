// Package accounts persists identity records. This is the Credential Store:
// the only component allowed to read or write password hashes.
package accounts

import (
	"context"
	"time"

	"github.com/learnable-edu/learnable/internal/server/models"
)

type Repository interface {
	// Create inserts the account. A duplicate email yields
	// common.ErrorDuplicateEmail.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail looks an account up by its exact email (no normalization).
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	GetByID(ctx context.Context, id string) (*models.Account, error)

	// UpdateProfile applies only the non-nil fields of upd and sets
	// updated_at, returning the fresh record.
	UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate, updatedAt time.Time) (*models.Account, error)

	UpdatePasswordHash(ctx context.Context, id string, hash string, updatedAt time.Time) error
}
