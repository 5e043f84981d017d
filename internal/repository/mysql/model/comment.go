package model

import (
	"time"

	"github.com/moviestar/moviestar/domain"
)

type Comment struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	MovieID       int64      `gorm:"column:movie_id;not null;index"`
	Username      string     `gorm:"type:varchar(50);not null;index"`
	Content       string     `gorm:"type:varchar(1200);not null"`
	LikesCount    int64      `gorm:"column:likes_count;not null;default:0"`
	DislikesCount int64      `gorm:"column:dislikes_count;not null;default:0"`
	CreatedAt     time.Time  `gorm:"type:datetime"`
	UpdatedAt     *time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:            c.ID,
		MovieID:       c.MovieID,
		Username:      c.Username,
		Content:       c.Content,
		LikesCount:    c.LikesCount,
		DislikesCount: c.DislikesCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:            m.ID,
		MovieID:       m.MovieID,
		Username:      m.Username,
		Content:       m.Content,
		LikesCount:    m.LikesCount,
		DislikesCount: m.DislikesCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
