package watchlist

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/moviestar/moviestar/domain"
)

type service struct {
	watchlistRepo domain.WatchlistRepository
	movieRepo     domain.MovieRepository
}

var _ domain.WatchlistUsecase = (*service)(nil)

func NewService(watchlistRepo domain.WatchlistRepository, movieRepo domain.MovieRepository) *service {
	return &service{
		watchlistRepo: watchlistRepo,
		movieRepo:     movieRepo,
	}
}

func (s *service) Add(ctx context.Context, username string, movieID int64) error {
	exists, err := s.movieRepo.ExistsByID(ctx, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	return s.watchlistRepo.Store(ctx, &domain.WatchlistItem{
		Username: username,
		MovieID:  movieID,
	})
}

func (s *service) Remove(ctx context.Context, username string, movieID int64) error {
	return s.watchlistRepo.Delete(ctx, username, movieID)
}

func (s *service) Contains(ctx context.Context, username string, movieID int64) (bool, error) {
	return s.watchlistRepo.Exists(ctx, username, movieID)
}

// List resolves the saved items to movies concurrently, dropping entries
// whose movie has been deleted since.
func (s *service) List(ctx context.Context, username string) ([]domain.Movie, error) {
	items, err := s.watchlistRepo.FetchByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.Movie{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	movies := make([]*domain.Movie, len(items))
	for i, item := range items {
		g.Go(func() error {
			movie, err := s.movieRepo.GetByID(ctx, item.MovieID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			movies[i] = &movie
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m != nil {
			res = append(res, *m)
		}
	}
	return res, nil
}
