package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Clairebear8888/Microlearning/internal/client/auth"
	"github.com/Clairebear8888/Microlearning/internal/client/client"
	"github.com/Clairebear8888/Microlearning/internal/client/config"
	"github.com/Clairebear8888/Microlearning/internal/client/lessons"
	"github.com/Clairebear8888/Microlearning/internal/client/quiz"
	"github.com/Clairebear8888/Microlearning/internal/client/services"
	"github.com/Clairebear8888/Microlearning/internal/client/session"
	"github.com/Clairebear8888/Microlearning/internal/client/task"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/Clairebear8888/Microlearning/internal/filex"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	api         client.Client
	session     *auth.Context
	guard       *auth.Guard
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer

	route   string
	page    *task.Runner
	browser *lessons.Browser
	quiz    *quiz.Session

	mu        sync.Mutex
	cancelCmd context.CancelFunc
}

// NewApp opens the session store and connects the client to the backend.
// With Ephemeral set the token lives in memory only and no database file is
// created.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		db    *sql.DB
		store auth.TokenStore
	)

	if c.Ephemeral {
		store = session.NewMemoryStore()
	} else {
		path, err := filex.EnsureParentDir(c.DatabasePath)
		if err != nil {
			return nil, err
		}
		db, err = client.InitDatabase(ctx, path)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.DatabasePath, logging.Err(err))
			return nil, err
		}
		store = session.NewStore(db)
	}

	api := client.NewHTTPClient(c.APIURL, c.RequestTimeout, store)
	a := newApp(c, log, api, store, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, api client.Client, store auth.TokenStore, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		log:    log,
		api:    api,
		reader: reader,
		out:    out,
		route:  common.RouteHome,
	}
	a.session = auth.NewContext(api, store, a, log)
	a.guard = auth.NewGuard(a.session, a, func() { a.println("Loading...") })
	a.authService = services.NewAuthService(api, store, a.session, a, log)
	a.browser = lessons.NewBrowser(api, log)
	a.quiz = quiz.NewSession(api, log)
	return a
}

// Navigate moves to route. Work still running for the previous page is
// cancelled and its results are dropped.
func (a *App) Navigate(route string) {
	if route == a.route {
		return
	}
	if a.page != nil {
		a.page.Close()
		a.page = nil
	}
	a.log.Debug(context.Background(), "navigate", "from", a.route, "to", route)
	a.route = route
}

// Route is the current client-side route.
func (a *App) Route() string { return a.route }

// openPage navigates to route and returns the runner owning that page's
// asynchronous work.
func (a *App) openPage(ctx context.Context, route string) *task.Runner {
	a.Navigate(route)
	if a.page == nil || a.page.Closed() {
		a.page = task.NewRunner(ctx)
	}
	return a.page
}

// Run restores the saved session and then serves commands until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to MicroLearn CLI (type 'help' for commands)")

	st := a.session.Authenticate(ctx)
	if st.IsLoggedIn {
		a.printf("Signed in as %s.\n", st.CurrentUser.Username)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// commandContext derives the context of one REPL command. Interrupt cancels
// it until the returned cancel func is called.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	a.mu.Lock()
	a.cancelCmd = cancel
	a.mu.Unlock()

	return ctx, func() {
		a.mu.Lock()
		a.cancelCmd = nil
		a.mu.Unlock()
		cancel()
	}
}

// Interrupt cancels the running command and reports whether there was one.
func (a *App) Interrupt() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancelCmd == nil {
		return false
	}
	a.cancelCmd()
	a.cancelCmd = nil
	return true
}

// Close cancels page work and releases the session database.
func (a *App) Close() {
	if a.page != nil {
		a.page.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close database", logging.Err(err))
		}
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) getStatus() string {
	s := "guest"
	if a.session.IsLoading() {
		s = "..."
	} else if u := a.session.CurrentUser(); a.session.IsLoggedIn() {
		s = fmt.Sprintf("[%s] %s", u.Initial(), u.Username)
	}
	return fmt.Sprintf("(%s) %s", s, a.route)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
