package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository/mysql/model"
)

type watchlistRepository struct {
	DB *gorm.DB
}

var _ domain.WatchlistRepository = (*watchlistRepository)(nil)

func NewWatchlistRepository(db *gorm.DB) *watchlistRepository {
	return &watchlistRepository{
		DB: db,
	}
}

func (w *watchlistRepository) FetchByUsername(ctx context.Context, username string) ([]domain.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := w.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.WatchlistItem, len(items))
	for i := range items {
		res[i] = items[i].ToDomain()
	}
	return res, nil
}

func (w *watchlistRepository) Exists(ctx context.Context, username string, movieID int64) (bool, error) {
	var count int64
	err := w.DB.WithContext(ctx).Model(&model.WatchlistItem{}).
		Where("username = ? AND movie_id = ?", username, movieID).
		Count(&count).Error
	return count > 0, err
}

func (w *watchlistRepository) Store(ctx context.Context, item *domain.WatchlistItem) error {
	itemModel := model.NewWatchlistItemFromDomain(item)
	// Saving an already-saved movie is a no-op, the unique pair absorbs it.
	err := w.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(itemModel).Error
	if err != nil {
		return err
	}
	item.ID = itemModel.ID
	return nil
}

func (w *watchlistRepository) Delete(ctx context.Context, username string, movieID int64) error {
	return w.DB.WithContext(ctx).
		Where("username = ? AND movie_id = ?", username, movieID).
		Delete(&model.WatchlistItem{}).Error
}
