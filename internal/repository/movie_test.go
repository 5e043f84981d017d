package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository"
)

type mockDBRepo struct {
	mock.Mock
	domain.MovieDBRepository
}

func (m *mockDBRepo) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Movie), args.Error(1)
}

func (m *mockDBRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockDBRepo) FetchByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	args := m.Called(ctx, genre)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *mockDBRepo) Store(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockDBRepo) AttachDirector(ctx context.Context, movieID, directorID int64) error {
	args := m.Called(ctx, movieID, directorID)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
	domain.MovieCache
}

func (m *mockCache) GetMovie(ctx context.Context, id int64) (domain.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Movie), args.Error(1)
}

func (m *mockCache) SetMovie(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockCache) GetMovieList(ctx context.Context, key string) ([]domain.Movie, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *mockCache) SetMovieList(ctx context.Context, key string, movies []domain.Movie) error {
	args := m.Called(ctx, key, movies)
	return args.Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, mut domain.Mutation, movieID int64) error {
	args := m.Called(ctx, mut, movieID)
	return args.Error(0)
}

func TestGetByID(t *testing.T) {
	t.Run("cache hit skips the database", func(t *testing.T) {
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{ID: 5, Title: "Alien"}, nil)

		repo := repository.NewMovieRepository(db, cache)
		movie, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, "Alien", movie.Title)
		db.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("miss loads from the database and refills", func(t *testing.T) {
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{}, domain.ErrCacheMiss)
		db.On("GetByID", mock.Anything, int64(5)).
			Return(domain.Movie{ID: 5, Title: "Alien"}, nil)
		cache.On("SetMovie", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)

		repo := repository.NewMovieRepository(db, cache)
		movie, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, "Alien", movie.Title)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure degrades to the database", func(t *testing.T) {
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{}, errors.New("connection refused"))
		db.On("GetByID", mock.Anything, int64(5)).
			Return(domain.Movie{ID: 5, Title: "Alien"}, nil)
		cache.On("SetMovie", mock.Anything, mock.Anything).
			Return(errors.New("connection refused"))

		repo := repository.NewMovieRepository(db, cache)
		movie, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, "Alien", movie.Title)
	})

	t.Run("concurrent misses collapse into one load", func(t *testing.T) {
		var loads atomic.Int64
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{}, domain.ErrCacheMiss)
		db.On("GetByID", mock.Anything, int64(5)).
			Run(func(args mock.Arguments) {
				loads.Add(1)
				time.Sleep(20 * time.Millisecond)
			}).
			Return(domain.Movie{ID: 5, Title: "Alien"}, nil)
		cache.On("SetMovie", mock.Anything, mock.Anything).Return(nil)

		repo := repository.NewMovieRepository(db, cache)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				movie, err := repo.GetByID(context.Background(), 5)
				assert.NoError(t, err)
				assert.Equal(t, "Alien", movie.Title)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), loads.Load())
	})
}

func TestExistsByID(t *testing.T) {
	t.Run("cached movie proves existence", func(t *testing.T) {
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{ID: 5}, nil)

		repo := repository.NewMovieRepository(db, cache)
		exists, err := repo.ExistsByID(context.Background(), 5)

		require.NoError(t, err)
		assert.True(t, exists)
		db.AssertNotCalled(t, "ExistsByID", mock.Anything, mock.Anything)
	})

	t.Run("miss falls back to the database probe", func(t *testing.T) {
		db := new(mockDBRepo)
		cache := new(mockCache)
		cache.On("GetMovie", mock.Anything, int64(5)).
			Return(domain.Movie{}, domain.ErrCacheMiss)
		db.On("ExistsByID", mock.Anything, int64(5)).Return(false, nil)

		repo := repository.NewMovieRepository(db, cache)
		exists, err := repo.ExistsByID(context.Background(), 5)

		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestFetchByGenre(t *testing.T) {
	db := new(mockDBRepo)
	cache := new(mockCache)
	cache.On("GetMovieList", mock.Anything, "genre:Horror").
		Return([]domain.Movie(nil), domain.ErrCacheMiss)
	db.On("FetchByGenre", mock.Anything, "Horror").
		Return([]domain.Movie{{ID: 1, Title: "Alien"}}, nil)
	cache.On("SetMovieList", mock.Anything, "genre:Horror", mock.Anything).Return(nil)

	repo := repository.NewMovieRepository(db, cache)
	movies, err := repo.FetchByGenre(context.Background(), "Horror")

	require.NoError(t, err)
	require.Len(t, movies, 1)
	cache.AssertExpectations(t)
}

func TestStoreInvalidates(t *testing.T) {
	db := new(mockDBRepo)
	cache := new(mockCache)
	db.On("Store", mock.Anything, mock.AnythingOfType("*domain.Movie")).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.MutationMovieWrite, int64(0)).Return(nil)

	repo := repository.NewMovieRepository(db, cache)
	err := repo.Store(context.Background(), &domain.Movie{Title: "Alien"})

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestAttachDirectorInvalidates(t *testing.T) {
	db := new(mockDBRepo)
	cache := new(mockCache)
	db.On("AttachDirector", mock.Anything, int64(5), int64(2)).Return(nil)
	cache.On("Invalidate", mock.Anything, domain.MutationDirectorLink, int64(5)).Return(nil)

	repo := repository.NewMovieRepository(db, cache)
	err := repo.AttachDirector(context.Background(), 5, 2)

	require.NoError(t, err)
	cache.AssertExpectations(t)
}
