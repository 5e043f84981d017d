package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Comment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment.ToDomain(), nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	commentModel.LikesCount = 0
	commentModel.DislikesCount = 0
	if err := c.DB.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (c *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (domain.Comment, error) {
	now := time.Now()
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": now})
	if result.Error != nil {
		return domain.Comment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Comment{}, domain.ErrNotFound
	}
	return c.GetByID(ctx, id)
}

// sortClauses mirrors the comment list orderings the API exposes; ties break
// newest first.
var sortClauses = map[domain.CommentSort]string{
	domain.SortNewest:   "created_at DESC",
	domain.SortLikes:    "likes_count DESC, created_at DESC",
	domain.SortDislikes: "dislikes_count DESC, created_at DESC",
	domain.SortScore:    "(likes_count - dislikes_count) DESC, created_at DESC",
}

func (c *commentRepository) FetchByMovie(ctx context.Context, movieID int64, sort domain.CommentSort) ([]domain.Comment, error) {
	order, ok := sortClauses[sort]
	if !ok {
		return nil, domain.ErrBadParamInput
	}

	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order(order).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *commentRepository) FetchByUsername(ctx context.Context, username string) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *commentRepository) IDsByUsername(ctx context.Context, username string) ([]int64, error) {
	var ids []int64
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("username = ?", username).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *commentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Votes go first; a comment without counters must never leave a
		// dangling vote behind.
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (c *commentRepository) Recount(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id IN ?", ids).
		UpdateColumns(map[string]any{
			"likes_count":    gorm.Expr("(SELECT COUNT(*) FROM comment_like WHERE comment_like.comment_id = comment.id AND comment_like.is_like = TRUE)"),
			"dislikes_count": gorm.Expr("(SELECT COUNT(*) FROM comment_like WHERE comment_like.comment_id = comment.id AND comment_like.is_like = FALSE)"),
		}).Error
}
