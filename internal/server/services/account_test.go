package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/logging"
	"github.com/learnable-edu/learnable/internal/server/config"
	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/repositories/accounts"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewAccountService(accounts.NewInMemoryRepository(), logger, cfg)
}

func signupSarah(t *testing.T, s *AccountService) (*models.AccountView, string) {
	t.Helper()
	view, token, err := s.Signup(context.Background(), &SignupRequest{
		Name:     "Sarah",
		Email:    "s@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return view, token
}

func TestSignup_ThenLogin_SameAccountID(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	created, token := signupSarah(t, s)
	require.NotEmpty(t, token)
	require.Equal(t, "Sarah", created.Name)
	require.Equal(t, "en", created.LanguagePreference, "language defaults to en")

	loggedIn, token2, err := s.Login(ctx, "s@x.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
	require.Equal(t, created.ID, loggedIn.ID)
}

func TestSignup_Validation(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *SignupRequest
	}{
		{"empty name", &SignupRequest{Name: "", Email: "a@x.com", Password: "secret123"}},
		{"long name", &SignupRequest{Name: strings.Repeat("n", 101), Email: "a@x.com", Password: "secret123"}},
		{"short password", &SignupRequest{Name: "A", Email: "a@x.com", Password: "12345"}},
		{"long password", &SignupRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 101)}},
		{"bad email", &SignupRequest{Name: "A", Email: "not-an-email", Password: "secret123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.Signup(ctx, tc.req)
			require.True(t, errors.Is(err, common.ErrorInvalidInput), "got %v", err)
		})
	}

	age := 200
	_, _, err := s.Signup(ctx, &SignupRequest{Name: "A", Email: "a@x.com", Password: "secret123", Age: &age})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))
}

func TestSignup_LongPassword(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	// the full 6-100 policy range must work end to end, including lengths
	// past bcrypt's 72-byte input limit
	for _, n := range []int{73, 100} {
		password := strings.Repeat("p", n)
		email := fmt.Sprintf("long%d@x.com", n)

		created, _, err := s.Signup(ctx, &SignupRequest{Name: "A", Email: email, Password: password})
		require.NoError(t, err)

		loggedIn, _, err := s.Login(ctx, email, password)
		require.NoError(t, err)
		require.Equal(t, created.ID, loggedIn.ID)
	}
}

func TestSignup_LengthPoliciesCountCharacters(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	// 100 Tamil characters are 300 bytes; both fields stay inside policy
	_, _, err := s.Signup(ctx, &SignupRequest{
		Name:     strings.Repeat("த", 100),
		Email:    "tamil@x.com",
		Password: strings.Repeat("த", 100),
	})
	require.NoError(t, err)

	_, _, err = s.Signup(ctx, &SignupRequest{
		Name:     "A",
		Email:    "toolong@x.com",
		Password: strings.Repeat("த", 101),
	})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	signupSarah(t, s)

	// duplicate fails regardless of whether the password differs
	_, _, err := s.Signup(ctx, &SignupRequest{Name: "Other", Email: "s@x.com", Password: "different9"})
	require.True(t, errors.Is(err, common.ErrorDuplicateEmail))
}

func TestAssertIdentity_CreatesThenReuses(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	view, token, created, err := s.AssertIdentity(ctx, "Sarah", "sarah@gmail.com")
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, token)
	require.Equal(t, "en", view.LanguagePreference)

	// second assertion finds the stored account instead of creating another
	again, token2, created, err := s.AssertIdentity(ctx, "Sarah", "sarah@gmail.com")
	require.NoError(t, err)
	require.False(t, created)
	require.NotEmpty(t, token2)
	require.Equal(t, view.ID, again.ID)

	// the token authenticates like any other
	me, err := s.GetProfile(ctx, token)
	require.NoError(t, err)
	require.Equal(t, view.ID, me.ID)
}

func TestAssertIdentity_NoPasswordLogin(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	_, _, _, err := s.AssertIdentity(ctx, "Sarah", "sarah@gmail.com")
	require.NoError(t, err)

	// no password was ever supplied, so password login stays closed
	_, _, err = s.Login(ctx, "sarah@gmail.com", "secret123")
	require.True(t, errors.Is(err, common.ErrorInvalidCredentials))
}

func TestAssertIdentity_Validation(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	_, _, _, err := s.AssertIdentity(ctx, "", "sarah@gmail.com")
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	_, _, _, err = s.AssertIdentity(ctx, "Sarah", "not-an-email")
	require.True(t, errors.Is(err, common.ErrorInvalidInput))
}

func TestLogin_WrongPasswordAndUnknownEmail_SameError(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	signupSarah(t, s)

	_, _, errWrongPassword := s.Login(ctx, "s@x.com", "wrongpassword")
	_, _, errUnknownEmail := s.Login(ctx, "nobody@x.com", "secret123")

	require.True(t, errors.Is(errWrongPassword, common.ErrorInvalidCredentials))
	require.True(t, errors.Is(errUnknownEmail, common.ErrorInvalidCredentials))
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error(),
		"both failure modes must be indistinguishable")
}

func TestGetProfile(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	created, token := signupSarah(t, s)

	view, err := s.GetProfile(ctx, token)
	require.NoError(t, err)
	require.Equal(t, created.ID, view.ID)
	require.Equal(t, "Sarah", view.Name)

	_, err = s.GetProfile(ctx, "garbage-token")
	require.True(t, errors.Is(err, common.ErrorUnauthenticated))
}

func TestGetProfile_NeverExposesPasswordHash(t *testing.T) {
	s := newAccountService(t)

	_, token := signupSarah(t, s)

	view, err := s.GetProfile(context.Background(), token)
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(raw)), "password")
}

func TestUpdateProfile_PartialAndEmpty(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	created, token := signupSarah(t, s)

	_, err := s.UpdateProfile(ctx, token, &models.ProfileUpdate{})
	require.True(t, errors.Is(err, common.ErrorInvalidInput), "empty update must be rejected")

	age := 12
	view, err := s.UpdateProfile(ctx, token, &models.ProfileUpdate{Age: &age})
	require.NoError(t, err)
	require.NotNil(t, view.Age)
	require.Equal(t, 12, *view.Age)
	require.Equal(t, "Sarah", view.Name, "unlisted fields stay untouched")
	require.True(t, view.UpdatedAt.After(created.UpdatedAt) || view.UpdatedAt.Equal(created.UpdatedAt))

	badAge := -5
	_, err = s.UpdateProfile(ctx, token, &models.ProfileUpdate{Age: &badAge})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))
}

func TestChangePassword_Flow(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	_, token := signupSarah(t, s)

	err := s.ChangePassword(ctx, token, "wrongcurrent", "newpass456")
	require.True(t, errors.Is(err, common.ErrorInvalidCredentials))

	err = s.ChangePassword(ctx, token, "secret123", "123")
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	err = s.ChangePassword(ctx, token, "secret123", "newpass456")
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "s@x.com", "secret123")
	require.True(t, errors.Is(err, common.ErrorInvalidCredentials), "old password must stop working")

	_, _, err = s.Login(ctx, "s@x.com", "newpass456")
	require.NoError(t, err)
}

func TestChangePassword_DoesNotRevokeTokens(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	created, token := signupSarah(t, s)

	require.NoError(t, s.ChangePassword(ctx, token, "secret123", "newpass456"))

	// the pre-change token still authenticates the account
	view, err := s.GetProfile(ctx, token)
	require.NoError(t, err)
	require.Equal(t, created.ID, view.ID)
}

func TestEndToEndScenario(t *testing.T) {
	s := newAccountService(t)
	ctx := context.Background()

	created, t1 := signupSarah(t, s)

	loggedIn, t2, err := s.Login(ctx, "s@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, created.ID, loggedIn.ID)

	// both tokens are valid, whether or not they differ
	for _, tok := range []string{t1, t2} {
		view, err := s.GetProfile(ctx, tok)
		require.NoError(t, err)
		require.Equal(t, "Sarah", view.Name)
	}

	require.NoError(t, s.ChangePassword(ctx, t2, "secret123", "newpass456"))

	_, _, err = s.Login(ctx, "s@x.com", "secret123")
	require.True(t, errors.Is(err, common.ErrorInvalidCredentials))

	_, _, err = s.Login(ctx, "s@x.com", "newpass456")
	require.NoError(t, err)
}
