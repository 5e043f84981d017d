package rating

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/moviestar/moviestar/domain"
)

type service struct {
	ratingRepo domain.RatingRepository
	movieRepo  domain.MovieRepository
	cache      domain.MovieCache
}

var _ domain.RatingUsecase = (*service)(nil)

func NewService(ratingRepo domain.RatingRepository, movieRepo domain.MovieRepository, cache domain.MovieCache) *service {
	return &service{
		ratingRepo: ratingRepo,
		movieRepo:  movieRepo,
		cache:      cache,
	}
}

func (s *service) Rate(ctx context.Context, movieID int64, username string, rating int) error {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return domain.ErrBadParamInput
	}

	exists, err := s.movieRepo.ExistsByID(ctx, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	err = s.ratingRepo.Upsert(ctx, &domain.Rating{
		MovieID:  movieID,
		Username: username,
		Rating:   rating,
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, movieID)
	return nil
}

// Summary reads through the cache; a miss recomputes from the rating rows
// and refills. Cache trouble never fails the read.
func (s *service) Summary(ctx context.Context, movieID int64) (domain.RatingSummary, error) {
	summary, err := s.cache.GetRatingSummary(ctx, movieID)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get rating summary for movie %d: %v", movieID, err)
	}

	summary, err = s.ratingRepo.Summary(ctx, movieID)
	if err != nil {
		return domain.RatingSummary{}, err
	}

	if err := s.cache.SetRatingSummary(ctx, movieID, summary); err != nil {
		logrus.Warnf("cache set rating summary for movie %d: %v", movieID, err)
	}
	return summary, nil
}

func (s *service) UserRating(ctx context.Context, movieID int64, username string) (int, bool, error) {
	rating, err := s.ratingRepo.Get(ctx, movieID, username)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rating.Rating, true, nil
}

func (s *service) Remove(ctx context.Context, movieID int64, username string) error {
	if err := s.ratingRepo.Delete(ctx, movieID, username); err != nil {
		return err
	}
	s.invalidate(ctx, movieID)
	return nil
}

// RatingsForUser joins the user's rating rows with their movies, fetched
// concurrently. A movie deleted since it was rated is skipped, not an error.
func (s *service) RatingsForUser(ctx context.Context, username string) ([]domain.UserMovieRating, error) {
	ratings, err := s.ratingRepo.FetchByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return []domain.UserMovieRating{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*domain.UserMovieRating, len(ratings))
	for i, r := range ratings {
		g.Go(func() error {
			movie, err := s.movieRepo.GetByID(ctx, r.MovieID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = &domain.UserMovieRating{Movie: movie, Rating: r.Rating}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]domain.UserMovieRating, 0, len(results))
	for _, r := range results {
		if r != nil {
			res = append(res, *r)
		}
	}
	return res, nil
}

func (s *service) invalidate(ctx context.Context, movieID int64) {
	if err := s.cache.Invalidate(ctx, domain.MutationRatingWrite, movieID); err != nil {
		logrus.Warnf("cache invalidate rating for movie %d: %v", movieID, err)
	}
}
