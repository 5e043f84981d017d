package movie

import (
	"context"
	"time"

	"github.com/moviestar/moviestar/domain"
)

// Service exposes the movie catalog. All cache coordination happens in the
// repository underneath; this layer only holds the catalog rules.
type Service struct {
	movieRepo domain.MovieRepository
}

var _ domain.MovieUsecase = (*Service)(nil)

func NewService(movieRepo domain.MovieRepository) *Service {
	return &Service{
		movieRepo: movieRepo,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

func (s *Service) FetchAll(ctx context.Context) ([]domain.Movie, error) {
	return s.movieRepo.FetchAll(ctx)
}

func (s *Service) FetchByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	if title == "" {
		return nil, domain.ErrBadParamInput
	}
	return s.movieRepo.FetchByTitle(ctx, title)
}

func (s *Service) FetchByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	return s.movieRepo.FetchByGenre(ctx, genre)
}

func (s *Service) FetchByActor(ctx context.Context, actor string) ([]domain.Movie, error) {
	return s.movieRepo.FetchByActor(ctx, actor)
}

func (s *Service) Store(ctx context.Context, m *domain.Movie) error {
	if m.Title == "" || len(m.Genres) == 0 {
		return domain.ErrBadParamInput
	}
	return s.movieRepo.Store(ctx, m)
}

func (s *Service) Update(ctx context.Context, m *domain.Movie) error {
	if m.Title == "" || len(m.Genres) == 0 {
		return domain.ErrBadParamInput
	}
	m.UpdatedAt = time.Now()
	return s.movieRepo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.movieRepo.Delete(ctx, id)
}

func (s *Service) AttachDirector(ctx context.Context, movieID, directorID int64) (domain.Movie, error) {
	if err := s.movieRepo.AttachDirector(ctx, movieID, directorID); err != nil {
		return domain.Movie{}, err
	}
	return s.movieRepo.GetByID(ctx, movieID)
}

func (s *Service) DetachDirector(ctx context.Context, movieID, directorID int64) (domain.Movie, error) {
	if err := s.movieRepo.DetachDirector(ctx, movieID, directorID); err != nil {
		return domain.Movie{}, err
	}
	return s.movieRepo.GetByID(ctx, movieID)
}
