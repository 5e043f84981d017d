package domain

import (
	"context"
	"time"
)

const (
	CommentMinLen = 1
	CommentMaxLen = 1200
)

// Comment is representing a user comment on a movie.
// LikesCount and DislikesCount are denormalized from the comment_like table
// and must only be written by the vote repository's transition code.
type Comment struct {
	ID            int64
	MovieID       int64
	Username      string
	Content       string
	LikesCount    int64
	DislikesCount int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// CommentSort selects the ordering of a movie's comment list.
type CommentSort string

const (
	SortNewest   CommentSort = "newest"
	SortLikes    CommentSort = "likes"
	SortDislikes CommentSort = "dislikes"
	// SortScore orders by (likes - dislikes) descending
	SortScore CommentSort = "rating"
)

// Valid reports whether s is one of the known sort modes.
func (s CommentSort) Valid() bool {
	switch s {
	case SortNewest, SortLikes, SortDislikes, SortScore:
		return true
	}
	return false
}

// CommentRepository defines the contract for comment data persistence.
type CommentRepository interface {
	// GetByID retrieves a single comment.
	// Returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id int64) (Comment, error)

	// Store creates a new comment with zeroed counters.
	// Backfills ID and CreatedAt on success.
	Store(ctx context.Context, c *Comment) error

	// UpdateContent replaces the comment text and sets updated_at.
	UpdateContent(ctx context.Context, id int64, content string) (Comment, error)

	// FetchByMovie returns all comments of a movie in the given order.
	FetchByMovie(ctx context.Context, movieID int64, sort CommentSort) ([]Comment, error)

	// FetchByUsername returns a user's comments, newest first.
	FetchByUsername(ctx context.Context, username string) ([]Comment, error)

	// IDsByUsername returns the IDs of every comment authored by username.
	IDsByUsername(ctx context.Context, username string) ([]int64, error)

	// DeleteCascade removes the comment's votes and then the comment itself
	// in one transaction. Votes go first so no reader ever observes a vote
	// whose comment is already gone.
	DeleteCascade(ctx context.Context, id int64) error

	// Recount rebuilds likes_count/dislikes_count from the comment_like
	// table for the given comments.
	Recount(ctx context.Context, ids []int64) error
}

// CommentUsecase defines the business logic contract for comments and their
// like/dislike engagement.
type CommentUsecase interface {
	Create(ctx context.Context, c *Comment) error
	FetchByMovie(ctx context.Context, movieID int64, sort CommentSort) ([]Comment, error)
	FetchByUsername(ctx context.Context, username string) ([]Comment, error)

	// UpdateContent edits a comment's text. Returns ErrForbidden when the
	// acting username is not the author.
	UpdateContent(ctx context.Context, id int64, username, content string) (Comment, error)

	// DeleteOwn removes a comment and its votes. Returns ErrForbidden when
	// the acting username is not the author.
	DeleteOwn(ctx context.Context, id int64, username string) error

	// AdminDelete removes any comment and its votes, no ownership check.
	AdminDelete(ctx context.Context, id int64) error

	// DeleteAllForUser cascades every comment authored by username. All
	// comments are attempted even when some fail; a partial failure is
	// reported as *AggregateError.
	DeleteAllForUser(ctx context.Context, username string) error

	// LikeOrDislike records the user's vote and returns the comment with
	// refreshed counters. Voting the same way twice is a no-op.
	LikeOrDislike(ctx context.Context, commentID int64, username string, isLike bool) (Comment, error)

	// RemoveVote withdraws the user's vote if any and returns the comment.
	RemoveVote(ctx context.Context, commentID int64, username string) (Comment, error)

	// VoteState reports whether the user has liked or disliked the comment.
	VoteState(ctx context.Context, commentID int64, username string) (VoteState, error)
}
