package auth

import (
	"context"
	"errors"

	"github.com/Clairebear8888/Microlearning/internal/common"
)

// ErrAccessDenied is returned by Guard.Render when no session exists.
var ErrAccessDenied = errors.New("access denied: sign in required")

type Decision int

const (
	DecisionLoading Decision = iota
	DecisionDenied
	DecisionAllowed
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionDenied:
		return "denied"
	case DecisionAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Decide maps a session snapshot to a guard decision. Loading wins over
// everything else.
func Decide(s State) Decision {
	switch {
	case s.IsLoading:
		return DecisionLoading
	case !s.IsLoggedIn:
		return DecisionDenied
	default:
		return DecisionAllowed
	}
}

// StateSource provides the session snapshot the guard decides on.
type StateSource interface {
	State() State
}

// Guard protects pages that need a signed-in user.
type Guard struct {
	src         StateSource
	nav         Navigator
	placeholder func()
}

// NewGuard builds a guard. placeholder is shown while verification is
// pending; it may be nil.
func NewGuard(src StateSource, nav Navigator, placeholder func()) *Guard {
	if placeholder == nil {
		placeholder = func() {}
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Guard{src: src, nav: nav, placeholder: placeholder}
}

// Render re-evaluates the decision and runs page only when allowed. A denied
// render redirects to the login page and returns ErrAccessDenied.
func (g *Guard) Render(ctx context.Context, page func(ctx context.Context) error) error {
	switch Decide(g.src.State()) {
	case DecisionLoading:
		g.placeholder()
		return nil
	case DecisionDenied:
		g.nav.Navigate(common.RouteLogin)
		return ErrAccessDenied
	default:
		return page(ctx)
	}
}
