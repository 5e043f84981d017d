package domain

import (
	"context"
	"time"
)

// Movie is representing the Movie data struct
type Movie struct {
	ID          int64
	Title       string
	Description string
	Year        int
	PosterURL   string
	BackdropURL string
	Genres      []Genre
	Actors      []Actor
	Directors   []Director
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Genre struct {
	ID    int64
	Genre string
}

type Actor struct {
	ID   int64
	Name string
}

type Director struct {
	ID    int64
	Name  string
	About string
}

// MovieDBRepository defines the contract for movie persistence.
// The coordinating MovieRepository wraps it with the cache.
type MovieDBRepository interface {
	// GetByID retrieves a movie with its associations.
	// Returns ErrNotFound if the movie doesn't exist.
	GetByID(ctx context.Context, id int64) (Movie, error)

	// ExistsByID is a cheap existence probe used before attaching
	// dependent records (comments, ratings, watchlist items).
	ExistsByID(ctx context.Context, id int64) (bool, error)

	FetchAll(ctx context.Context) ([]Movie, error)
	FetchByTitle(ctx context.Context, title string) ([]Movie, error)
	FetchByGenre(ctx context.Context, genre string) ([]Movie, error)
	FetchByActor(ctx context.Context, actor string) ([]Movie, error)

	// Store creates a movie and backfills its ID.
	Store(ctx context.Context, m *Movie) error

	// Update modifies an existing movie.
	// Returns ErrNotFound if the movie doesn't exist.
	Update(ctx context.Context, m *Movie) error

	// Delete removes a movie by its ID.
	Delete(ctx context.Context, id int64) error

	// AttachDirector / DetachDirector maintain the movie-director link.
	AttachDirector(ctx context.Context, movieID, directorID int64) error
	DetachDirector(ctx context.Context, movieID, directorID int64) error
}

// MovieRepository is the read-through contract the services consume: same
// surface as MovieDBRepository, with list and by-ID reads served from the
// cache when warm.
type MovieRepository interface {
	MovieDBRepository
}

// MovieUsecase defines the business logic contract for the movie catalog.
type MovieUsecase interface {
	GetByID(ctx context.Context, id int64) (Movie, error)
	FetchAll(ctx context.Context) ([]Movie, error)
	FetchByTitle(ctx context.Context, title string) ([]Movie, error)
	FetchByGenre(ctx context.Context, genre string) ([]Movie, error)
	FetchByActor(ctx context.Context, actor string) ([]Movie, error)
	Store(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id int64) error
	AttachDirector(ctx context.Context, movieID, directorID int64) (Movie, error)
	DetachDirector(ctx context.Context, movieID, directorID int64) (Movie, error)
}
