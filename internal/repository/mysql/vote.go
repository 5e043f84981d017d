package mysql

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/repository/mysql/model"
)

// errVoteRace marks a lost insert race on the (comment_id, username) unique
// index. It never leaves this package; the caller re-reads and retries the
// flip/no-op path once.
var errVoteRace = errors.New("concurrent vote insert")

const mysqlErrDuplicateEntry = 1062

type voteRepository struct {
	DB *gorm.DB
}

var _ domain.VoteRepository = (*voteRepository)(nil)

func NewVoteRepository(db *gorm.DB) *voteRepository {
	return &voteRepository{
		DB: db,
	}
}

func (r *voteRepository) Get(ctx context.Context, commentID int64, username string) (domain.CommentVote, error) {
	var row model.CommentLike
	err := r.DB.WithContext(ctx).First(&row, "comment_id = ? AND username = ?", commentID, username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CommentVote{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CommentVote{}, err
	}
	return row.ToDomain(), nil
}

func (r *voteRepository) ApplyVote(ctx context.Context, commentID int64, username string, isLike bool) (domain.Comment, error) {
	// One retry: a concurrent first vote of the same pair makes our insert
	// hit the unique index; the re-read then sees that row and reconciles
	// against it instead.
	for range 2 {
		err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			existing, err := findVote(tx, commentID, username)
			if err != nil {
				return err
			}

			transition := domain.ReconcileVote(existing, isLike)
			switch transition.Op {
			case domain.OpCreate:
				row := model.CommentLike{CommentID: commentID, Username: username, IsLike: isLike}
				if err := tx.Create(&row).Error; err != nil {
					if isDuplicateEntry(err) {
						return errVoteRace
					}
					return err
				}
			case domain.OpFlip:
				err := tx.Model(&model.CommentLike{}).
					Where("comment_id = ? AND username = ?", commentID, username).
					Update("is_like", isLike).Error
				if err != nil {
					return err
				}
			case domain.OpNone:
				return nil
			}

			return applyCounterDeltas(tx, commentID, transition, false)
		})
		if errors.Is(err, errVoteRace) {
			continue
		}
		if err != nil {
			return domain.Comment{}, err
		}
		return r.getComment(ctx, commentID)
	}
	return domain.Comment{}, domain.ErrConflict
}

func (r *voteRepository) RemoveVote(ctx context.Context, commentID int64, username string) (domain.Comment, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findVote(tx, commentID, username)
		if err != nil {
			return err
		}

		transition := domain.ReconcileRemoval(existing)
		if transition.Op == domain.OpNone {
			return nil
		}

		err = tx.Where("comment_id = ? AND username = ?", commentID, username).
			Delete(&model.CommentLike{}).Error
		if err != nil {
			return err
		}

		// Clamped at zero: the decrement is paired with the row we just
		// deleted, the floor only matters if the counter had drifted.
		return applyCounterDeltas(tx, commentID, transition, true)
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return r.getComment(ctx, commentID)
}

// findVote loads the pair's vote inside the transaction, verifying the
// comment exists first. Returns (nil, nil) when the user has not voted.
func findVote(tx *gorm.DB, commentID int64, username string) (*domain.CommentVote, error) {
	var comment model.Comment
	if err := tx.Select("id").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var row model.CommentLike
	err := tx.First(&row, "comment_id = ? AND username = ?", commentID, username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	vote := row.ToDomain()
	return &vote, nil
}

// applyCounterDeltas turns a transition into relative counter updates so the
// arithmetic happens in the database, not on a value read earlier.
func applyCounterDeltas(tx *gorm.DB, commentID int64, t domain.VoteTransition, clamp bool) error {
	updates := map[string]any{}
	if t.LikesDelta != 0 {
		updates["likes_count"] = counterExpr("likes_count", t.LikesDelta, clamp)
	}
	if t.DislikesDelta != 0 {
		updates["dislikes_count"] = counterExpr("dislikes_count", t.DislikesDelta, clamp)
	}
	if len(updates) == 0 {
		return nil
	}
	// UpdateColumns keeps updated_at untouched; that column tracks content
	// edits, not counter movement.
	return tx.Model(&model.Comment{}).Where("id = ?", commentID).UpdateColumns(updates).Error
}

func counterExpr(column string, delta int64, clamp bool) any {
	if clamp && delta < 0 {
		return gorm.Expr("GREATEST("+column+" - ?, 0)", -delta)
	}
	return gorm.Expr(column+" + ?", delta)
}

func (r *voteRepository) getComment(ctx context.Context, commentID int64) (domain.Comment, error) {
	var comment model.Comment
	if err := r.DB.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrNotFound
		}
		return domain.Comment{}, err
	}
	return comment.ToDomain(), nil
}

func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
