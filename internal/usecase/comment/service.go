package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/moviestar/moviestar/domain"
)

type service struct {
	commentRepo domain.CommentRepository
	voteRepo    domain.VoteRepository
	movieRepo   domain.MovieRepository
	recounter   domain.CounterRecountWorker
	sanitizer   *bluemonday.Policy
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, voteRepo domain.VoteRepository, movieRepo domain.MovieRepository, recounter domain.CounterRecountWorker) *service {
	return &service{
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		movieRepo:   movieRepo,
		recounter:   recounter,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

// cleanContent strips any markup from user text and validates the length of
// what is left.
func (s *service) cleanContent(content string) (string, error) {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if len(cleaned) < domain.CommentMinLen || len(cleaned) > domain.CommentMaxLen {
		return "", domain.ErrBadParamInput
	}
	return cleaned, nil
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	content, err := s.cleanContent(c.Content)
	if err != nil {
		return err
	}
	c.Content = content

	exists, err := s.movieRepo.ExistsByID(ctx, c.MovieID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	return s.commentRepo.Store(ctx, c)
}

func (s *service) FetchByMovie(ctx context.Context, movieID int64, sort domain.CommentSort) ([]domain.Comment, error) {
	if !sort.Valid() {
		return nil, domain.ErrBadParamInput
	}
	return s.commentRepo.FetchByMovie(ctx, movieID, sort)
}

func (s *service) FetchByUsername(ctx context.Context, username string) ([]domain.Comment, error) {
	return s.commentRepo.FetchByUsername(ctx, username)
}

// mustOwn loads the comment and verifies the acting user wrote it.
func (s *service) mustOwn(ctx context.Context, id int64, username string) (domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if comment.Username != username {
		return domain.Comment{}, domain.ErrForbidden
	}
	return comment, nil
}

func (s *service) UpdateContent(ctx context.Context, id int64, username, content string) (domain.Comment, error) {
	if _, err := s.mustOwn(ctx, id, username); err != nil {
		return domain.Comment{}, err
	}

	cleaned, err := s.cleanContent(content)
	if err != nil {
		return domain.Comment{}, err
	}
	return s.commentRepo.UpdateContent(ctx, id, cleaned)
}

func (s *service) DeleteOwn(ctx context.Context, id int64, username string) error {
	if _, err := s.mustOwn(ctx, id, username); err != nil {
		return err
	}
	return s.commentRepo.DeleteCascade(ctx, id)
}

func (s *service) AdminDelete(ctx context.Context, id int64) error {
	return s.commentRepo.DeleteCascade(ctx, id)
}

func (s *service) DeleteAllForUser(ctx context.Context, username string) error {
	ids, err := s.commentRepo.IDsByUsername(ctx, username)
	if err != nil {
		return err
	}

	// Every comment is attempted; one failed cascade must not strand the
	// rest of the batch.
	var failed []int64
	for _, id := range ids {
		if err := s.commentRepo.DeleteCascade(ctx, id); err != nil {
			logrus.Errorf("cascade delete comment %d of user %q: %v", id, username, err)
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return &domain.AggregateError{Username: username, FailedIDs: failed}
	}
	return nil
}

func (s *service) LikeOrDislike(ctx context.Context, commentID int64, username string, isLike bool) (domain.Comment, error) {
	comment, err := s.voteRepo.ApplyVote(ctx, commentID, username, isLike)
	if err != nil {
		return domain.Comment{}, err
	}
	s.recounter.Send(commentID)
	return comment, nil
}

func (s *service) RemoveVote(ctx context.Context, commentID int64, username string) (domain.Comment, error) {
	comment, err := s.voteRepo.RemoveVote(ctx, commentID, username)
	if err != nil {
		return domain.Comment{}, err
	}
	s.recounter.Send(commentID)
	return comment, nil
}

func (s *service) VoteState(ctx context.Context, commentID int64, username string) (domain.VoteState, error) {
	vote, err := s.voteRepo.Get(ctx, commentID, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VoteState{}, nil
		}
		return domain.VoteState{}, err
	}
	return domain.VoteState{Liked: vote.IsLike, Disliked: !vote.IsLike}, nil
}
