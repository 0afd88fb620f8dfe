// Package cli provides the interactive MicroLearn command-line client.
//
// It wires configuration, the local session store, the backend client and
// the page state machines into a read-eval-print loop. The loop plays the
// role of the browser: every command navigates to a route, guarded routes
// go through the auth guard, and each page's asynchronous work is cancelled
// when the user navigates away.
//
// Key features:
//   - Signup, login, logout and session restore on start
//   - Lesson generation, browsing, completion, editing and deletion
//   - Quizzes with answer marking, scoring and progress recording
//   - Profile page with progress statistics and recent quizzes
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
