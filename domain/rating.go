package domain

import "context"

const (
	RatingMin = 1
	RatingMax = 10
)

// Rating is one user's 1-10 score for one movie.
// The (MovieID, Username) pair is unique at the store boundary.
type Rating struct {
	ID       int64
	MovieID  int64
	Username string
	Rating   int
}

// RatingSummary is the aggregate computed from the rating rows of a movie.
// Average is 0.0 when the movie has no ratings; that sentinel means "no
// ratings", never "rated zero" (ratings start at 1).
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// UserMovieRating pairs a rating row with its movie for "my ratings" views.
type UserMovieRating struct {
	Movie  Movie
	Rating int
}

// RatingRepository defines the contract for rating persistence.
type RatingRepository interface {
	// Upsert inserts the rating or overwrites the existing row of the same
	// (movie, user) pair in place. Idempotent under repeated identical calls.
	Upsert(ctx context.Context, r *Rating) error

	// Get returns the user's rating for the movie, or ErrNotFound.
	Get(ctx context.Context, movieID int64, username string) (Rating, error)

	// Summary computes average and count straight from the rating rows.
	Summary(ctx context.Context, movieID int64) (RatingSummary, error)

	// Delete removes the user's rating; no-op when absent.
	Delete(ctx context.Context, movieID int64, username string) error

	// FetchByUsername returns all rating rows belonging to the user.
	FetchByUsername(ctx context.Context, username string) ([]Rating, error)
}

// RatingUsecase defines the business logic contract for movie ratings.
type RatingUsecase interface {
	// Rate validates the value (1-10) and the movie, then inserts or
	// updates the user's rating and evicts the movie's cached aggregates.
	Rate(ctx context.Context, movieID int64, username string, rating int) error

	// Summary returns the movie's average/count, read through the cache.
	Summary(ctx context.Context, movieID int64) (RatingSummary, error)

	// UserRating returns the user's rating for the movie; ok is false when
	// the user has not rated it.
	UserRating(ctx context.Context, movieID int64, username string) (rating int, ok bool, err error)

	// Remove withdraws the user's rating and evicts cached aggregates.
	Remove(ctx context.Context, movieID int64, username string) error

	// RatingsForUser joins the user's ratings with their movies.
	RatingsForUser(ctx context.Context, username string) ([]UserMovieRating, error)
}
