package movie_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moviestar/moviestar/domain"
	ucMovie "github.com/moviestar/moviestar/internal/usecase/movie"
)

type mockMovieRepo struct {
	mock.Mock
	domain.MovieRepository
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Movie), args.Error(1)
}

func (m *mockMovieRepo) FetchByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *mockMovieRepo) Store(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) AttachDirector(ctx context.Context, movieID, directorID int64) error {
	args := m.Called(ctx, movieID, directorID)
	return args.Error(0)
}

func TestStore(t *testing.T) {
	t.Run("requires a title and at least one genre", func(t *testing.T) {
		svc := ucMovie.NewService(new(mockMovieRepo))

		err := svc.Store(context.Background(), &domain.Movie{Title: ""})
		assert.ErrorIs(t, err, domain.ErrBadParamInput)

		err = svc.Store(context.Background(), &domain.Movie{Title: "Alien"})
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("stores a valid movie", func(t *testing.T) {
		repo := new(mockMovieRepo)
		repo.On("Store", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

		svc := ucMovie.NewService(repo)
		err := svc.Store(context.Background(), &domain.Movie{
			Title:  "Alien",
			Genres: []domain.Genre{{ID: 1, Genre: "Horror"}},
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestUpdate(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

	svc := ucMovie.NewService(repo)
	m := domain.Movie{
		ID:     5,
		Title:  "Alien",
		Genres: []domain.Genre{{ID: 1, Genre: "Horror"}},
	}
	err := svc.Update(context.Background(), &m)

	require.NoError(t, err)
	assert.False(t, m.UpdatedAt.IsZero())
}

func TestFetchByTitle(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		svc := ucMovie.NewService(new(mockMovieRepo))
		_, err := svc.FetchByTitle(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})
}

func TestAttachDirector(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("AttachDirector", mock.Anything, int64(5), int64(2)).Return(nil)
	repo.On("GetByID", mock.Anything, int64(5)).
		Return(domain.Movie{ID: 5, Directors: []domain.Director{{ID: 2, Name: "Ridley Scott"}}}, nil)

	svc := ucMovie.NewService(repo)
	movie, err := svc.AttachDirector(context.Background(), 5, 2)

	require.NoError(t, err)
	require.Len(t, movie.Directors, 1)
	assert.Equal(t, "Ridley Scott", movie.Directors[0].Name)
}
