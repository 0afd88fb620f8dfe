// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. Client: the transport-agnostic contract of the MicroLearn backend
//     (auth, lessons, progress, quizzes).
//  2. HTTPClient: the resty-based implementation. Protected calls carry
//     "Authorization: Bearer <token>" read from a TokenSource on every call.
//  3. InitDatabase / RunMigrations: the local sqlite database holding durable
//     client state, migrated with embedded goose migrations.
//
// # Error Handling
//
// Responses are mapped to sentinel errors matched with errors.Is:
// ErrUnauthorized (401/403), ErrNotFound (404), ErrUnavailable (transport
// failures and 502/503/504) and ErrMalformed (undecodable 2xx bodies). Any
// non-2xx response is also an *APIError carrying the server message.
//
// No retries and no client-side timeout unless configured; all operations
// honor context cancellation.
package client
