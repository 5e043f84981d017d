package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository/mysql/model"
)

type ratingRepository struct {
	DB *gorm.DB
}

var _ domain.RatingRepository = (*ratingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *ratingRepository {
	return &ratingRepository{
		DB: db,
	}
}

// Upsert relies on the (movie_id, username) unique index: a concurrent
// first rating of the same pair collapses into an update of the winning
// row, so repeated or racing calls leave exactly one row behind.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	ratingModel := model.NewRatingFromDomain(rating)
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}, {Name: "username"}},
			DoUpdates: clause.Assignments(map[string]any{"rating": rating.Rating}),
		}).
		Create(ratingModel).Error
	if err != nil {
		return err
	}
	rating.ID = ratingModel.ID
	return nil
}

func (r *ratingRepository) Get(ctx context.Context, movieID int64, username string) (domain.Rating, error) {
	var rating model.Rating
	err := r.DB.WithContext(ctx).First(&rating, "movie_id = ? AND username = ?", movieID, username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Rating{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Rating{}, err
	}
	return rating.ToDomain(), nil
}

func (r *ratingRepository) Summary(ctx context.Context, movieID int64) (domain.RatingSummary, error) {
	var res domain.RatingSummary
	err := r.DB.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&res).Error
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return res, nil
}

func (r *ratingRepository) Delete(ctx context.Context, movieID int64, username string) error {
	return r.DB.WithContext(ctx).
		Where("movie_id = ? AND username = ?", movieID, username).
		Delete(&model.Rating{}).Error
}

func (r *ratingRepository) FetchByUsername(ctx context.Context, username string) ([]domain.Rating, error) {
	var ratings []model.Rating
	err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Rating, len(ratings))
	for i := range ratings {
		res[i] = ratings[i].ToDomain()
	}
	return res, nil
}
