package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository/mysql/model"
)

type movieRepository struct {
	DB *gorm.DB
}

// mysql layer only touches the database; caching sits one layer up.
var _ domain.MovieDBRepository = (*movieRepository)(nil)

func NewMovieDBRepository(db *gorm.DB) *movieRepository {
	return &movieRepository{db}
}

func (m *movieRepository) preloaded(ctx context.Context) *gorm.DB {
	return m.DB.WithContext(ctx).
		Preload("Genres").
		Preload("Actors").
		Preload("Directors")
}

func (m *movieRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	var movie model.Movie
	err := m.preloaded(ctx).First(&movie, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Movie{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Movie{}, err
	}
	return movie.ToDomain(), nil
}

func (m *movieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.Movie{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (m *movieRepository) FetchAll(ctx context.Context) ([]domain.Movie, error) {
	var movies []model.Movie
	if err := m.preloaded(ctx).Find(&movies).Error; err != nil {
		return nil, err
	}
	return toDomainMovies(movies), nil
}

func (m *movieRepository) FetchByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	var movies []model.Movie
	err := m.preloaded(ctx).
		Where("title LIKE ?", "%"+title+"%").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return toDomainMovies(movies), nil
}

func (m *movieRepository) FetchByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	var movies []model.Movie
	err := m.preloaded(ctx).
		Joins("JOIN movie_genre mg ON mg.movie_id = movie.id").
		Joins("JOIN genre g ON g.id = mg.genre_id").
		Where("g.genre = ?", genre).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return toDomainMovies(movies), nil
}

func (m *movieRepository) FetchByActor(ctx context.Context, actor string) ([]domain.Movie, error) {
	var movies []model.Movie
	err := m.preloaded(ctx).
		Joins("JOIN movie_actor ma ON ma.movie_id = movie.id").
		Joins("JOIN actor a ON a.id = ma.actor_id").
		Where("a.name = ?", actor).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return toDomainMovies(movies), nil
}

func (m *movieRepository) Store(ctx context.Context, movie *domain.Movie) error {
	movieModel := model.NewMovieFromDomain(movie)
	if err := m.DB.WithContext(ctx).Create(movieModel).Error; err != nil {
		return err
	}
	movie.ID = movieModel.ID
	movie.CreatedAt = movieModel.CreatedAt
	movie.UpdatedAt = movieModel.UpdatedAt
	return nil
}

func (m *movieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	movieModel := model.NewMovieFromDomain(movie)
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Movie{ID: movie.ID}).
			Select("Title", "Description", "Year", "PosterURL", "BackdropURL").
			Updates(movieModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Model(&model.Movie{ID: movie.ID}).Association("Genres").Replace(movieModel.Genres); err != nil {
			return err
		}
		return tx.Model(&model.Movie{ID: movie.ID}).Association("Actors").Replace(movieModel.Actors)
	})
}

func (m *movieRepository) Delete(ctx context.Context, id int64) error {
	result := m.DB.WithContext(ctx).Select("Genres", "Actors", "Directors").Delete(&model.Movie{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *movieRepository) AttachDirector(ctx context.Context, movieID, directorID int64) error {
	var director model.Director
	if err := m.DB.WithContext(ctx).First(&director, "id = ?", directorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return m.DB.WithContext(ctx).Model(&model.Movie{ID: movieID}).Association("Directors").Append(&director)
}

func (m *movieRepository) DetachDirector(ctx context.Context, movieID, directorID int64) error {
	return m.DB.WithContext(ctx).Model(&model.Movie{ID: movieID}).
		Association("Directors").Delete(&model.Director{ID: directorID})
}

func toDomainMovies(movies []model.Movie) []domain.Movie {
	res := make([]domain.Movie, len(movies))
	for i := range movies {
		res[i] = movies[i].ToDomain()
	}
	return res
}
