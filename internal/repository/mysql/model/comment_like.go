package model

import (
	"time"

	"github.com/moviestar/moviestar/domain"
)

// CommentLike is the per-user vote row. The unique index on
// (comment_id, username) is what serializes concurrent first votes of the
// same pair.
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CommentID int64     `gorm:"column:comment_id;not null;uniqueIndex:uq_comment_user"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_comment_user"`
	IsLike    bool      `gorm:"column:is_like;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CommentLike) TableName() string {
	return "comment_like"
}

func NewCommentLikeFromDomain(v domain.CommentVote) CommentLike {
	return CommentLike{
		CommentID: v.CommentID,
		Username:  v.Username,
		IsLike:    v.IsLike,
		CreatedAt: v.CreatedAt,
	}
}

func (m *CommentLike) ToDomain() domain.CommentVote {
	return domain.CommentVote{
		CommentID: m.CommentID,
		Username:  m.Username,
		IsLike:    m.IsLike,
		CreatedAt: m.CreatedAt,
	}
}
