package response

import (
	"time"

	"github.com/moviestar/moviestar/domain"
)

type Comment struct {
	ID            int64   `json:"id"`
	MovieID       int64   `json:"movieId"`
	Username      string  `json:"username"`
	Comment       string  `json:"comment"`
	LikesCount    int64   `json:"likesCount"`
	DislikesCount int64   `json:"dislikesCount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     *string `json:"updatedAt,omitempty"`
}

func NewCommentFromDomain(c *domain.Comment) Comment {
	res := Comment{
		ID:            c.ID,
		MovieID:       c.MovieID,
		Username:      c.Username,
		Comment:       c.Content,
		LikesCount:    c.LikesCount,
		DislikesCount: c.DislikesCount,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.UpdatedAt != nil {
		updated := c.UpdatedAt.Format(time.RFC3339)
		res.UpdatedAt = &updated
	}
	return res
}

func NewCommentsFromDomain(comments []domain.Comment) []Comment {
	res := make([]Comment, len(comments))
	for i := range comments {
		res[i] = NewCommentFromDomain(&comments[i])
	}
	return res
}

type VoteState struct {
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
}
