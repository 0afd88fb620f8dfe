package auth

import (
	"context"
	"sync"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

// State is a snapshot of the session. While IsLoading is true IsLoggedIn is
// meaningless; afterwards IsLoggedIn holds exactly when CurrentUser is set.
type State struct {
	IsLoading   bool
	IsLoggedIn  bool
	CurrentUser models.User
}

// Verifier checks the stored token against the backend.
type Verifier interface {
	Verify(ctx context.Context) (models.User, error)
}

// TokenStore is the durable home of the session token.
type TokenStore interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Navigator receives navigation requests.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Context is the process-wide auth state holder. It is safe for concurrent
// use.
type Context struct {
	verifier Verifier
	store    TokenStore
	nav      Navigator
	log      logging.Logger

	mu    sync.RWMutex
	state State
	seq   uint64
}

// NewContext returns a Context in the loading state. nav may be nil.
func NewContext(verifier Verifier, store TokenStore, nav Navigator, log logging.Logger) *Context {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Context{
		verifier: verifier,
		store:    store,
		nav:      nav,
		log:      log,
		state:    State{IsLoading: true},
	}
}

func (c *Context) next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Authenticate verifies the stored token and publishes the outcome. It makes
// no network call when no token is stored and never fails: every error ends
// in the logged-out state. If a newer Authenticate or LogOut was issued while
// this one was in flight, its result is discarded and the current state is
// returned.
func (c *Context) Authenticate(ctx context.Context) State {
	seq := c.next()
	result := c.verify(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.log.Debug(ctx, "discarding stale verification", "seq", seq, "latest", c.seq)
		return c.state
	}
	c.state = result
	return result
}

func (c *Context) verify(ctx context.Context) State {
	_, ok, err := c.store.Get(ctx)
	if err != nil {
		c.log.Warn(ctx, "reading session token failed", logging.Err(err))
		return State{}
	}
	if !ok {
		return State{}
	}

	user, err := c.verifier.Verify(ctx)
	if err != nil {
		c.log.Warn(ctx, "session verification failed", logging.Err(err))
		return State{}
	}
	if user.IsEmpty() {
		c.log.Warn(ctx, "session verification returned no user")
		return State{}
	}

	c.log.Debug(ctx, "session verified", "user_id", user.ID)
	return State{IsLoggedIn: true, CurrentUser: user}
}

// LogOut forgets the token, resets the state and asks for the login page.
// Calling it again is harmless. Store errors are logged only.
func (c *Context) LogOut(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn(ctx, "clearing session token failed", logging.Err(err))
	}

	c.mu.Lock()
	c.seq++
	c.state = State{}
	c.mu.Unlock()

	c.nav.Navigate(common.RouteLogin)
}

// State returns the current snapshot.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Context) CurrentUser() models.User { return c.State().CurrentUser }

func (c *Context) IsLoggedIn() bool { return c.State().IsLoggedIn }

func (c *Context) IsLoading() bool { return c.State().IsLoading }
