package store

import (
	"github.com/jinzhu/copier"

	"investconnect/internal/models"
)

type AuthPhase string

const (
	PhaseAnonymous      AuthPhase = "anonymous"
	PhaseAuthenticating AuthPhase = "authenticating"
	PhaseAuthenticated  AuthPhase = "authenticated"
)

const incompleteSessionMsg = "Login failed. Please try again."

// AuthState tracks the signed-in identity. IsAuthenticated holds iff User is
// set and Token is non-empty.
type AuthState struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	User            *models.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	RefreshToken    string       `json:"refreshToken,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// ProfilePatch holds the fields an edit-profile form may change. Empty
// fields are left untouched by PatchProfile. Verification never comes from
// a decoded request body.
type ProfilePatch struct {
	Username       string                  `json:"username,omitempty"`
	DisplayName    string                  `json:"displayName,omitempty"`
	Email          string                  `json:"email,omitempty"`
	Bio            string                  `json:"bio,omitempty"`
	ProfilePicture string                  `json:"profilePicture,omitempty"`
	Verification   models.VerificationTier `json:"-"`
}

// Apply returns u with the non-empty fields of p copied over.
func (p ProfilePatch) Apply(u models.User) models.User {
	next := u
	if err := copier.CopyWithOption(&next, &p, copier.Option{IgnoreEmpty: true}); err != nil {
		return u
	}
	return next
}

func (a *AuthState) Phase() AuthPhase {
	switch {
	case a.IsLoading:
		return PhaseAuthenticating
	case a.IsAuthenticated:
		return PhaseAuthenticated
	default:
		return PhaseAnonymous
	}
}

func (a *AuthState) BeginLogin() {
	a.IsLoading = true
	a.Error = ""
}

// CompleteLogin stores the session. A session missing its user or tokens is
// treated as a failed login.
func (a *AuthState) CompleteLogin(s models.Session) {
	if !s.Complete() {
		a.FailLogin(incompleteSessionMsg)
		return
	}
	u := s.User
	a.IsLoading = false
	a.IsAuthenticated = true
	a.User = &u
	a.Token = s.Token
	a.RefreshToken = s.RefreshToken
	a.Error = ""
}

func (a *AuthState) FailLogin(reason string) {
	a.IsLoading = false
	a.IsAuthenticated = false
	a.User = nil
	a.Token = ""
	a.RefreshToken = ""
	a.Error = reason
}

func (a *AuthState) Logout() {
	a.IsAuthenticated = false
	a.IsLoading = false
	a.User = nil
	a.Token = ""
	a.RefreshToken = ""
	a.Error = ""
}

// PatchProfile shallow-merges p into the current user. Without a session it
// does nothing.
func (a *AuthState) PatchProfile(p ProfilePatch) {
	if a.User == nil {
		return
	}
	u := p.Apply(*a.User)
	a.User = &u
}

func (a *AuthState) ClearError() {
	a.Error = ""
}

// normalize recomputes IsAuthenticated from the session after a wholesale replace.
func (a *AuthState) normalize() {
	a.IsAuthenticated = a.User != nil && a.Token != ""
	if !a.IsAuthenticated {
		a.User = nil
		a.Token = ""
		a.RefreshToken = ""
	}
}

func (a AuthState) clone() AuthState {
	if a.User != nil {
		u := *a.User
		a.User = &u
	}
	return a
}
