package httpapi

import (
	"net/http"

	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/services"
)

type signupRequest struct {
	Name               string                  `json:"name"`
	Email              string                  `json:"email"`
	Password           string                  `json:"password"`
	DisabilityTypes    *models.DisabilityTypes `json:"disability_types"`
	Age                *int                    `json:"age"`
	LanguagePreference string                  `json:"language_preference"`
	GradeLevel         *string                 `json:"grade_level"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// googleLoginRequest carries an identity the frontend has already verified
// with the provider. PhotoURL is accepted for client compatibility but not
// stored.
type googleLoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

type updateProfileRequest struct {
	Name               *string                 `json:"name"`
	DisabilityTypes    *models.DisabilityTypes `json:"disability_types"`
	Age                *int                    `json:"age"`
	LanguagePreference *string                 `json:"language_preference"`
	GradeLevel         *string                 `json:"grade_level"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// authResponse is returned by signup and login.
type authResponse struct {
	User  *models.AccountView `json:"user"`
	Token string              `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	view, token, err := s.accounts.Signup(r.Context(), &services.SignupRequest{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		DisabilityTypes:    req.DisabilityTypes,
		Age:                req.Age,
		LanguagePreference: req.LanguagePreference,
		GradeLevel:         req.GradeLevel,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, authResponse{User: view, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	view, token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, authResponse{User: view, Token: token})
}

// handleGoogleLogin logs the asserted identity in, creating the account on
// first sight. 201 signals a fresh account, 200 an existing one.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	view, token, created, err := s.accounts.AssertIdentity(r.Context(), req.Name, req.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, authResponse{User: view, Token: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	view, err := s.accounts.GetProfile(r.Context(), bearerToken(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	var req updateProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	view, err := s.accounts.UpdateProfile(r.Context(), token, &models.ProfileUpdate{
		Name:               req.Name,
		DisabilityTypes:    req.DisabilityTypes,
		Age:                req.Age,
		LanguagePreference: req.LanguagePreference,
		GradeLevel:         req.GradeLevel,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	var req changePasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.accounts.ChangePassword(r.Context(), token, req.CurrentPassword, req.NewPassword); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
