package domain

import "context"

// Mutation identifies a write that can invalidate cached aggregates. Every
// service reports its writes through MovieCache.Invalidate with one of these
// kinds; the kind-to-eviction mapping lives in a single table inside the
// cache implementation so the coherence rules are auditable in one place.
type Mutation int8

const (
	// MutationRatingWrite covers rating add, update and removal.
	MutationRatingWrite Mutation = iota
	// MutationMovieWrite covers movie create, update and delete.
	MutationMovieWrite
	// MutationDirectorLink covers attaching or detaching a director.
	MutationDirectorLink
)

func (m Mutation) String() string {
	switch m {
	case MutationRatingWrite:
		return "rating-write"
	case MutationMovieWrite:
		return "movie-write"
	case MutationDirectorLink:
		return "director-link"
	default:
		return "unknown"
	}
}

// MovieCache holds derived, reconstructible data only: movies, movie list
// results and per-movie rating summaries. It is best-effort; every method
// may fail without affecting correctness, and reads signal absence with
// ErrCacheMiss.
type MovieCache interface {
	GetMovie(ctx context.Context, id int64) (Movie, error)
	SetMovie(ctx context.Context, m *Movie) error

	// GetMovieList/SetMovieList cache list results under a query key such
	// as "all", "genre:Action", "title:Alien".
	GetMovieList(ctx context.Context, key string) ([]Movie, error)
	SetMovieList(ctx context.Context, key string, movies []Movie) error

	GetRatingSummary(ctx context.Context, movieID int64) (RatingSummary, error)
	SetRatingSummary(ctx context.Context, movieID int64, s RatingSummary) error

	// Invalidate evicts everything whose result could depend on the given
	// mutation. movieID scopes per-movie entries; list namespaces are
	// always evicted as a whole.
	Invalidate(ctx context.Context, m Mutation, movieID int64) error
}
