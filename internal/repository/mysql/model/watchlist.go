package model

import (
	"time"

	"github.com/moviestar/moviestar/domain"
)

type WatchlistItem struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Username string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_user_movie"`
	MovieID  int64     `gorm:"column:movie_id;not null;uniqueIndex:uq_user_movie"`
	AddedAt  time.Time `gorm:"column:added_at;type:datetime;autoCreateTime"`
}

func (WatchlistItem) TableName() string {
	return "watchlist"
}

func NewWatchlistItemFromDomain(w *domain.WatchlistItem) *WatchlistItem {
	return &WatchlistItem{
		ID:       w.ID,
		Username: w.Username,
		MovieID:  w.MovieID,
		AddedAt:  w.AddedAt,
	}
}

func (m *WatchlistItem) ToDomain() domain.WatchlistItem {
	return domain.WatchlistItem{
		ID:       m.ID,
		Username: m.Username,
		MovieID:  m.MovieID,
		AddedAt:  m.AddedAt,
	}
}
