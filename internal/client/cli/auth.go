package cli

import (
	"context"

	"github.com/Clairebear8888/Microlearning/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for a username, email and password and creates the
// account. The password is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	a.Navigate(common.RouteSignup)

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Signup(ctx, username, email, password); err != nil {
		return err
	}

	a.println("Account created. Type 'login' to sign in.")
	return nil
}

// Login prompts for credentials, stores the issued token and opens the
// profile page. A token the server then refuses to verify lands the user
// back on the login page.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(common.RouteLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	if a.route == common.RouteProfile {
		return a.Profile(ctx)
	}
	return nil
}

// Logout ends the session; the auth context moves the user to the login page.
func (a *App) Logout(ctx context.Context) error {
	a.authService.LogOut(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.State()
	switch {
	case st.IsLoading:
		a.println("Checking your session...")
	case !st.IsLoggedIn:
		a.println("Not logged in.")
	default:
		u := st.CurrentUser
		a.printf("%s <%s>\n", u.Username, u.Email)
	}
	return nil
}
