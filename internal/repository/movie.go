// Package repository holds the coordinating movie repository: it fronts the
// database with the aggregate cache and keeps the two coherent. The cache is
// an optimization only; every path here works with the cache failing or
// absent.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/moviestar/moviestar/domain"
)

type movieRepository struct {
	db    domain.MovieDBRepository
	cache domain.MovieCache

	rebuildGroup singleflight.Group
}

var _ domain.MovieRepository = (*movieRepository)(nil)

func NewMovieRepository(db domain.MovieDBRepository, cache domain.MovieCache) *movieRepository {
	return &movieRepository{
		db:    db,
		cache: cache,
	}
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	movie, err := r.cache.GetMovie(ctx, id)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get movie %d: %v", id, err)
	}

	// singleflight collapses a miss stampede on a hot movie into one
	// database read.
	res, err, _ := r.rebuildGroup.Do(fmt.Sprintf("movie:%d", id), func() (any, error) {
		movie, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetMovie(ctx, &movie); err != nil {
			logrus.Warnf("cache set movie %d: %v", id, err)
		}
		return movie, nil
	})
	if err != nil {
		return domain.Movie{}, err
	}
	return res.(domain.Movie), nil
}

func (r *movieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if _, err := r.cache.GetMovie(ctx, id); err == nil {
		return true, nil
	}
	return r.db.ExistsByID(ctx, id)
}

func (r *movieRepository) FetchAll(ctx context.Context) ([]domain.Movie, error) {
	return r.cachedList(ctx, "all", r.db.FetchAll)
}

func (r *movieRepository) FetchByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	return r.cachedList(ctx, "title:"+title, func(ctx context.Context) ([]domain.Movie, error) {
		return r.db.FetchByTitle(ctx, title)
	})
}

func (r *movieRepository) FetchByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	return r.cachedList(ctx, "genre:"+genre, func(ctx context.Context) ([]domain.Movie, error) {
		return r.db.FetchByGenre(ctx, genre)
	})
}

func (r *movieRepository) FetchByActor(ctx context.Context, actor string) ([]domain.Movie, error) {
	return r.cachedList(ctx, "actor:"+actor, func(ctx context.Context) ([]domain.Movie, error) {
		return r.db.FetchByActor(ctx, actor)
	})
}

// cachedList is the read-through path for list queries, keyed by the query
// shape.
func (r *movieRepository) cachedList(ctx context.Context, key string, load func(context.Context) ([]domain.Movie, error)) ([]domain.Movie, error) {
	movies, err := r.cache.GetMovieList(ctx, key)
	if err == nil {
		return movies, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get list %q: %v", key, err)
	}

	res, err, _ := r.rebuildGroup.Do("list:"+key, func() (any, error) {
		movies, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetMovieList(ctx, key, movies); err != nil {
			logrus.Warnf("cache set list %q: %v", key, err)
		}
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Movie), nil
}

func (r *movieRepository) Store(ctx context.Context, m *domain.Movie) error {
	if err := r.db.Store(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, domain.MutationMovieWrite, m.ID)
	return nil
}

func (r *movieRepository) Update(ctx context.Context, m *domain.Movie) error {
	if err := r.db.Update(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, domain.MutationMovieWrite, m.ID)
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, domain.MutationMovieWrite, id)
	return nil
}

func (r *movieRepository) AttachDirector(ctx context.Context, movieID, directorID int64) error {
	if err := r.db.AttachDirector(ctx, movieID, directorID); err != nil {
		return err
	}
	r.invalidate(ctx, domain.MutationDirectorLink, movieID)
	return nil
}

func (r *movieRepository) DetachDirector(ctx context.Context, movieID, directorID int64) error {
	if err := r.db.DetachDirector(ctx, movieID, directorID); err != nil {
		return err
	}
	r.invalidate(ctx, domain.MutationDirectorLink, movieID)
	return nil
}

// invalidate is best-effort: a failed eviction is logged and the entry ages
// out by TTL instead.
func (r *movieRepository) invalidate(ctx context.Context, m domain.Mutation, movieID int64) {
	if err := r.cache.Invalidate(ctx, m, movieID); err != nil {
		logrus.Warnf("cache invalidate %v for movie %d: %v", m, movieID, err)
	}
}
