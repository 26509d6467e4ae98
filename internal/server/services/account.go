// Package services contains server-side business logic. This file implements
// AccountService, the only entry point for signup, login, profile reads and
// updates, and password changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/logging"
	"github.com/learnable-edu/learnable/internal/server/auth"
	"github.com/learnable-edu/learnable/internal/server/config"
	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/repositories/accounts"
)

// Plaintext password and name length policy, checked before anything reaches
// the hasher or the store.
const (
	minPasswordLength = 6
	maxPasswordLength = 100
	maxNameLength     = 100
	maxAge            = 150
)

// SignupRequest carries everything a caller may supply at registration.
// All profile fields are optional.
type SignupRequest struct {
	Name               string
	Email              string
	Password           string
	DisabilityTypes    *models.DisabilityTypes
	Age                *int
	LanguagePreference string
	GradeLevel         *string
}

// AccountService orchestrates the Credential Store, the password hasher, and
// the token issuer. It holds no mutable state beyond the injected
// dependencies; every method is safe for concurrent use.
type AccountService struct {
	repo                  accounts.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAccountService(repo accounts.Repository, logger logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                  repo,
		logger:                logger,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLength || n > maxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", common.ErrorInvalidInput, minPasswordLength, maxPasswordLength)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", common.ErrorInvalidInput, maxNameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", common.ErrorInvalidInput)
	}
	return nil
}

func validateAge(age int) error {
	if age < 0 || age > maxAge {
		return fmt.Errorf("%w: age must be 0-%d", common.ErrorInvalidInput, maxAge)
	}
	return nil
}

// Signup registers a new account and returns its public view together with a
// freshly issued token. A duplicate email fails with
// common.ErrorDuplicateEmail whether it is caught by the pre-check or by the
// unique index during the insert.
func (s *AccountService) Signup(ctx context.Context, req *SignupRequest) (*models.AccountView, string, error) {

	if err := validateName(req.Name); err != nil {
		return nil, "", err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, "", err
	}
	if req.Age != nil {
		if err := validateAge(*req.Age); err != nil {
			return nil, "", err
		}
	}

	// Best-effort pre-check; the unique index on email closes the race
	// between concurrent signups.
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", common.ErrorDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "signup: email lookup failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "signup: hashing failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hash,
		LanguagePreference: req.LanguagePreference,
		Age:                req.Age,
		GradeLevel:         req.GradeLevel,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.DisabilityTypes != nil {
		account.DisabilityTypes = *req.DisabilityTypes
	}
	if account.LanguagePreference == "" {
		account.LanguagePreference = "en"
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, "", common.ErrorDuplicateEmail
		}
		s.logger.Error(ctx, "signup: insert failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		s.logger.Error(ctx, "signup: token issue failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	s.logger.Info(ctx, "account created", "account_id", account.ID)
	return account.View(), token, nil
}

// AssertIdentity logs in, or first registers, an account for an identity an
// external provider has already verified. Only name and email come in; no
// password is involved. New accounts are stored with a random unguessable
// password, so password login stays closed until the owner sets one through
// ChangePassword. The returned flag reports whether an account was created.
func (s *AccountService) AssertIdentity(ctx context.Context, name, email string) (*models.AccountView, string, bool, error) {

	if err := validateName(name); err != nil {
		return nil, "", false, err
	}
	if err := validateEmail(email); err != nil {
		return nil, "", false, err
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		token, err := s.issueToken(account.ID)
		if err != nil {
			s.logger.Error(ctx, "identity assertion: token issue failed", "error", err)
			return nil, "", false, common.ErrorInternal
		}
		return account.View(), token, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "identity assertion: email lookup failed", "error", err)
		return nil, "", false, common.ErrorInternal
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		s.logger.Error(ctx, "identity assertion: hashing failed", "error", err)
		return nil, "", false, common.ErrorInternal
	}

	now := time.Now().UTC()
	account = &models.Account{
		ID:                 uuid.NewString(),
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		LanguagePreference: "en",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			// a concurrent assertion for the same email won the insert; log
			// in against the stored record instead
			existing, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				s.logger.Error(ctx, "identity assertion: re-fetch failed", "error", err)
				return nil, "", false, common.ErrorInternal
			}
			token, err := s.issueToken(existing.ID)
			if err != nil {
				s.logger.Error(ctx, "identity assertion: token issue failed", "error", err)
				return nil, "", false, common.ErrorInternal
			}
			return existing.View(), token, false, nil
		}
		s.logger.Error(ctx, "identity assertion: insert failed", "error", err)
		return nil, "", false, common.ErrorInternal
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		s.logger.Error(ctx, "identity assertion: token issue failed", "error", err)
		return nil, "", false, common.ErrorInternal
	}

	s.logger.Info(ctx, "account created via identity assertion", "account_id", account.ID)
	return account.View(), token, true, nil
}

// Login verifies credentials and issues a fresh token. An unknown email and a
// wrong password return the identical error so callers cannot probe which
// accounts exist.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.AccountView, string, error) {

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login: email lookup failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, account.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		s.logger.Error(ctx, "login: token issue failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	return account.View(), token, nil
}

// GetProfile resolves the token and returns the current account state.
func (s *AccountService) GetProfile(ctx context.Context, token string) (*models.AccountView, error) {
	account, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return account.View(), nil
}

// UpdateProfile applies only the supplied fields. Supplying no fields at all
// is rejected rather than silently succeeding.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, upd *models.ProfileUpdate) (*models.AccountView, error) {

	account, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if upd == nil || upd.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorInvalidInput)
	}
	if upd.Name != nil {
		if err := validateName(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Age != nil {
		if err := validateAge(*upd.Age); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateProfile(ctx, account.ID, upd, time.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		s.logger.Error(ctx, "profile update failed", "account_id", account.ID, "error", err)
		return nil, common.ErrorInternal
	}

	return updated.View(), nil
}

// ChangePassword re-verifies the current password before storing the new
// hash. Outstanding tokens stay valid: they carry no password fingerprint
// and there is no revocation list.
func (s *AccountService) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {

	account, err := s.authenticate(ctx, token)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(currentPassword, account.PasswordHash) {
		return common.ErrorInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password change: hashing failed", "error", err)
		return common.ErrorInternal
	}

	if err := s.repo.UpdatePasswordHash(ctx, account.ID, hash, time.Now().UTC()); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthenticated
		}
		s.logger.Error(ctx, "password change: update failed", "account_id", account.ID, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password changed", "account_id", account.ID)
	return nil
}

// authenticate verifies the token and re-fetches the account it names. The
// token payload is never trusted as current state: the account may have
// changed, or disappeared, since issuance.
func (s *AccountService) authenticate(ctx context.Context, token string) (*models.Account, error) {
	accountID, err := auth.GetAccountIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthenticated
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		s.logger.Error(ctx, "authenticate: account fetch failed", "error", err)
		return nil, common.ErrorInternal
	}
	return account, nil
}

func (s *AccountService) issueToken(accountID string) (string, error) {
	return auth.GenerateToken(accountID, s.jwtSecret, s.tokenValidityDuration)
}
