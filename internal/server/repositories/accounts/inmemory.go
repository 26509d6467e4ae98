package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by service tests and
// local development. It enforces the same email uniqueness the Postgres
// unique index does.
type InMemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{accounts: make(map[string]*models.Account)}
}

func clone(a *models.Account) *models.Account {
	c := *a
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}

	r.accounts[account.ID] = clone(account)
	return account, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(a), nil
}

func (r *InMemoryRepository) UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate, updatedAt time.Time) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.DisabilityTypes != nil {
		a.DisabilityTypes = *upd.DisabilityTypes
	}
	if upd.Age != nil {
		age := *upd.Age
		a.Age = &age
	}
	if upd.LanguagePreference != nil {
		a.LanguagePreference = *upd.LanguagePreference
	}
	if upd.GradeLevel != nil {
		grade := *upd.GradeLevel
		a.GradeLevel = &grade
	}
	a.UpdatedAt = updatedAt

	return clone(a), nil
}

func (r *InMemoryRepository) UpdatePasswordHash(ctx context.Context, id string, hash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = updatedAt
	return nil
}
