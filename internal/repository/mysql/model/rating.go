package model

import "github.com/moviestar/moviestar/domain"

type Rating struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	MovieID  int64  `gorm:"column:movie_id;not null;uniqueIndex:uq_movie_user"`
	Username string `gorm:"type:varchar(50);not null;uniqueIndex:uq_movie_user"`
	Rating   int    `gorm:"not null"`
}

func (Rating) TableName() string {
	return "rating"
}

func NewRatingFromDomain(r *domain.Rating) *Rating {
	return &Rating{
		ID:       r.ID,
		MovieID:  r.MovieID,
		Username: r.Username,
		Rating:   r.Rating,
	}
}

func (m *Rating) ToDomain() domain.Rating {
	return domain.Rating{
		ID:       m.ID,
		MovieID:  m.MovieID,
		Username: m.Username,
		Rating:   m.Rating,
	}
}
