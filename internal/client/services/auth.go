// Package services contains the form-level operations of the client. This
// file defines the authentication service behind the login and signup pages.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/auth"
	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

// AuthService defines the authentication operations of the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, store it, re-verify the
//     session and move to the profile page.
//   - Signup: create an account and move to the login page.
//   - LogOut: end the session locally.
//
// Server-provided error messages are preserved in the returned error chain
// (see client.UserMessage).
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Signup(ctx context.Context, username, email string, password []byte) error
	LogOut(ctx context.Context)
}

// AuthAPI is the part of the backend contract used for authentication.
type AuthAPI interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Signup(ctx context.Context, username, email string, password []byte) (models.User, error)
}

type authService struct {
	api     AuthAPI
	store   auth.TokenStore
	session *auth.Context
	nav     auth.Navigator
	log     logging.Logger
}

// NewAuthService wires the service to the backend, the token store and the
// shared auth context.
func NewAuthService(api AuthAPI, store auth.TokenStore, session *auth.Context, nav auth.Navigator, log logging.Logger) AuthService {
	if nav == nil {
		nav = auth.NavigatorFunc(func(string) {})
	}
	return &authService{api: api, store: store, session: session, nav: nav, log: log}
}

// Login stores the issued token and re-authenticates. Navigation to the
// profile page happens whatever the verification outcome; the guard there
// sends an unverified user back to login.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return common.ErrEmptyInput
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, logging.Err(err))
		return fmt.Errorf("login: %w", err)
	}

	if err := a.store.Set(ctx, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}

	st := a.session.Authenticate(ctx)
	a.log.Info(ctx, "logged in", "user_id", st.CurrentUser.ID, "verified", st.IsLoggedIn)
	a.nav.Navigate(common.RouteProfile)
	return nil
}

// Signup creates the account. No token is issued; the user logs in next.
func (a *authService) Signup(ctx context.Context, username, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return common.ErrEmptyInput
	}

	u, err := a.api.Signup(ctx, strings.TrimSpace(username), email, password)
	if err != nil {
		a.log.Warn(ctx, "signup failed", "email", email, logging.Err(err))
		return fmt.Errorf("signup: %w", err)
	}

	a.log.Info(ctx, "account created", "user_id", u.ID)
	a.nav.Navigate(common.RouteLogin)
	return nil
}

func (a *authService) LogOut(ctx context.Context) {
	a.session.LogOut(ctx)
}
