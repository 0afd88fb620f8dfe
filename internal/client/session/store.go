// Package session persists the bearer token of the signed-in user. The token
// lives in the local metadata table under a single fixed key and is never
// inspected by the client.
package session

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/client/repositories/metadata"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/Clairebear8888/Microlearning/internal/dbx"
)

// Store keeps the session token in the sqlite metadata table.
type Store struct {
	db  *sql.DB
	now func() time.Time
	mu  sync.Mutex
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Get returns the stored token. ok is false when none is stored.
func (s *Store) Get(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok, err := s.repo(s.db).Get(ctx, common.AuthTokenKey)
	if err != nil || !ok || v == "" {
		return "", false, err
	}
	return v, true, nil
}

// Set stores token, replacing any previous one, and records when it was saved.
func (s *Store) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savedAt := strconv.FormatInt(s.now().Unix(), 10)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Put(ctx, common.AuthTokenKey, token); err != nil {
			return err
		}
		return repo.Put(ctx, common.AuthTokenSavedAtKey, savedAt)
	})
}

// Clear removes the token. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo(s.db).Delete(ctx, common.AuthTokenKey, common.AuthTokenSavedAtKey)
}

// SavedAt returns when the current token was stored.
func (s *Store) SavedAt(ctx context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok, err := s.repo(s.db).Get(ctx, common.AuthTokenSavedAtKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.Unix(sec, 0), true, nil
}
