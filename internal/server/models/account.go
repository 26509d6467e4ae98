package models

import "time"

// DisabilityTypes records the accessibility needs a learner self-reports.
// All flags default to false.
type DisabilityTypes struct {
	Vision    bool `json:"vision"`
	Hearing   bool `json:"hearing"`
	Motor     bool `json:"motor"`
	Cognitive bool `json:"cognitive"`
}

// Account is the persisted identity record. ID and Email never change after
// creation. PasswordHash never leaves the server; transport layers serialize
// AccountView instead.
type Account struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	DisabilityTypes    DisabilityTypes
	Age                *int
	LanguagePreference string
	GradeLevel         *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AccountView is the caller-facing projection of an Account. It has no hash
// field at all, so a view can never leak credentials by accident.
type AccountView struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	DisabilityTypes    DisabilityTypes `json:"disability_types"`
	Age                *int            `json:"age"`
	LanguagePreference string          `json:"language_preference"`
	GradeLevel         *string         `json:"grade_level"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// View returns the public projection of the account.
func (a *Account) View() *AccountView {
	return &AccountView{
		ID:                 a.ID,
		Name:               a.Name,
		Email:              a.Email,
		DisabilityTypes:    a.DisabilityTypes,
		Age:                a.Age,
		LanguagePreference: a.LanguagePreference,
		GradeLevel:         a.GradeLevel,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ProfileUpdate carries the profile fields a caller wants to change. A nil
// field means "leave unchanged". Clearing a stored value back to null is not
// supported through updates.
type ProfileUpdate struct {
	Name               *string
	DisabilityTypes    *DisabilityTypes
	Age                *int
	LanguagePreference *string
	GradeLevel         *string
}

// Empty reports whether no field is supplied at all.
func (u *ProfileUpdate) Empty() bool {
	return u.Name == nil &&
		u.DisabilityTypes == nil &&
		u.Age == nil &&
		u.LanguagePreference == nil &&
		u.GradeLevel == nil
}
