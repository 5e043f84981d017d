package domain

import (
	"context"
	"time"
)

// WatchlistItem marks one movie saved by one user.
// The (Username, MovieID) pair is unique at the store boundary.
type WatchlistItem struct {
	ID       int64
	Username string
	MovieID  int64
	AddedAt  time.Time
}

type WatchlistRepository interface {
	FetchByUsername(ctx context.Context, username string) ([]WatchlistItem, error)
	Exists(ctx context.Context, username string, movieID int64) (bool, error)

	// Store saves the item; storing an already-saved movie is a no-op.
	Store(ctx context.Context, item *WatchlistItem) error

	Delete(ctx context.Context, username string, movieID int64) error
}

type WatchlistUsecase interface {
	// Add saves the movie to the user's watchlist. The movie must exist
	// (ErrNotFound); adding twice is a no-op.
	Add(ctx context.Context, username string, movieID int64) error

	Remove(ctx context.Context, username string, movieID int64) error
	Contains(ctx context.Context, username string, movieID int64) (bool, error)

	// List returns the watchlisted movies, skipping any that have been
	// deleted since they were saved.
	List(ctx context.Context, username string) ([]Movie, error)
}
