package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moviestar/moviestar/domain"
	ucComment "github.com/moviestar/moviestar/internal/usecase/comment"
)

type mockCommentRepo struct {
	mock.Mock
	domain.CommentRepository
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (domain.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, id int64, content string) (domain.Comment, error) {
	args := m.Called(ctx, id, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) IDsByUsername(ctx context.Context, username string) ([]int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockCommentRepo) DeleteCascade(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVoteRepo struct {
	mock.Mock
	domain.VoteRepository
}

func (m *mockVoteRepo) Get(ctx context.Context, commentID int64, username string) (domain.CommentVote, error) {
	args := m.Called(ctx, commentID, username)
	return args.Get(0).(domain.CommentVote), args.Error(1)
}

func (m *mockVoteRepo) ApplyVote(ctx context.Context, commentID int64, username string, isLike bool) (domain.Comment, error) {
	args := m.Called(ctx, commentID, username, isLike)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *mockVoteRepo) RemoveVote(ctx context.Context, commentID int64, username string) (domain.Comment, error) {
	args := m.Called(ctx, commentID, username)
	return args.Get(0).(domain.Comment), args.Error(1)
}

type mockMovieRepo struct {
	mock.Mock
	domain.MovieRepository
}

func (m *mockMovieRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// recorderWorker records recount requests instead of batching them.
type recorderWorker struct {
	sent []int64
}

func (r *recorderWorker) Start(ctx context.Context) {}
func (r *recorderWorker) Send(commentID int64)      { r.sent = append(r.sent, commentID) }

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		movieRepo := new(mockMovieRepo)
		movieRepo.On("ExistsByID", mock.Anything, int64(7)).Return(true, nil)
		commentRepo.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), movieRepo, &recorderWorker{})
		c := domain.Comment{MovieID: 7, Username: "alice", Content: "  great movie  "}
		err := svc.Create(context.Background(), &c)

		require.NoError(t, err)
		assert.Equal(t, "great movie", c.Content)
		commentRepo.AssertExpectations(t)
		movieRepo.AssertExpectations(t)
	})

	t.Run("strips markup before storing", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		movieRepo := new(mockMovieRepo)
		movieRepo.On("ExistsByID", mock.Anything, int64(7)).Return(true, nil)
		commentRepo.On("Store", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), movieRepo, &recorderWorker{})
		c := domain.Comment{MovieID: 7, Username: "alice", Content: `<script>alert(1)</script>loved it`}
		err := svc.Create(context.Background(), &c)

		require.NoError(t, err)
		assert.Equal(t, "loved it", c.Content)
	})

	t.Run("rejects content that sanitizes to empty", func(t *testing.T) {
		svc := ucComment.NewService(new(mockCommentRepo), new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		c := domain.Comment{MovieID: 7, Username: "alice", Content: "<b></b>   "}
		err := svc.Create(context.Background(), &c)

		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("unknown movie", func(t *testing.T) {
		movieRepo := new(mockMovieRepo)
		movieRepo.On("ExistsByID", mock.Anything, int64(404)).Return(false, nil)

		svc := ucComment.NewService(new(mockCommentRepo), new(mockVoteRepo), movieRepo, &recorderWorker{})
		c := domain.Comment{MovieID: 404, Username: "alice", Content: "hello"}
		err := svc.Create(context.Background(), &c)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFetchByMovie(t *testing.T) {
	t.Run("invalid sort", func(t *testing.T) {
		svc := ucComment.NewService(new(mockCommentRepo), new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		_, err := svc.FetchByMovie(context.Background(), 1, domain.CommentSort("sideways"))
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})
}

func TestUpdateContent(t *testing.T) {
	t.Run("not the author", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("GetByID", mock.Anything, int64(3)).
			Return(domain.Comment{ID: 3, Username: "bob"}, nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		_, err := svc.UpdateContent(context.Background(), 3, "alice", "edited")

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("author edits", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("GetByID", mock.Anything, int64(3)).
			Return(domain.Comment{ID: 3, Username: "alice"}, nil)
		commentRepo.On("UpdateContent", mock.Anything, int64(3), "edited").
			Return(domain.Comment{ID: 3, Username: "alice", Content: "edited"}, nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		updated, err := svc.UpdateContent(context.Background(), 3, "alice", "edited")

		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
		commentRepo.AssertExpectations(t)
	})
}

func TestDeleteOwn(t *testing.T) {
	t.Run("not the author", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("GetByID", mock.Anything, int64(3)).
			Return(domain.Comment{ID: 3, Username: "bob"}, nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		err := svc.DeleteOwn(context.Background(), 3, "alice")

		assert.ErrorIs(t, err, domain.ErrForbidden)
		commentRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
	})

	t.Run("author deletes with cascade", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("GetByID", mock.Anything, int64(3)).
			Return(domain.Comment{ID: 3, Username: "alice"}, nil)
		commentRepo.On("DeleteCascade", mock.Anything, int64(3)).Return(nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		err := svc.DeleteOwn(context.Background(), 3, "alice")

		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})
}

func TestDeleteAllForUser(t *testing.T) {
	username := faker.Username()

	t.Run("all deleted", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("IDsByUsername", mock.Anything, username).Return([]int64{1, 2, 3}, nil)
		commentRepo.On("DeleteCascade", mock.Anything, mock.AnythingOfType("int64")).Return(nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		err := svc.DeleteAllForUser(context.Background(), username)

		require.NoError(t, err)
		commentRepo.AssertNumberOfCalls(t, "DeleteCascade", 3)
	})

	t.Run("partial failure still attempts the rest", func(t *testing.T) {
		commentRepo := new(mockCommentRepo)
		commentRepo.On("IDsByUsername", mock.Anything, username).Return([]int64{1, 2, 3}, nil)
		commentRepo.On("DeleteCascade", mock.Anything, int64(1)).Return(nil)
		commentRepo.On("DeleteCascade", mock.Anything, int64(2)).Return(errors.New("deadlock"))
		commentRepo.On("DeleteCascade", mock.Anything, int64(3)).Return(nil)

		svc := ucComment.NewService(commentRepo, new(mockVoteRepo), new(mockMovieRepo), &recorderWorker{})
		err := svc.DeleteAllForUser(context.Background(), username)

		var aggErr *domain.AggregateError
		require.ErrorAs(t, err, &aggErr)
		assert.Equal(t, username, aggErr.Username)
		assert.Equal(t, []int64{2}, aggErr.FailedIDs)
		commentRepo.AssertNumberOfCalls(t, "DeleteCascade", 3)
	})
}

func TestLikeOrDislike(t *testing.T) {
	voteRepo := new(mockVoteRepo)
	voteRepo.On("ApplyVote", mock.Anything, int64(9), "alice", true).
		Return(domain.Comment{ID: 9, LikesCount: 1}, nil)

	recorder := &recorderWorker{}
	svc := ucComment.NewService(new(mockCommentRepo), voteRepo, new(mockMovieRepo), recorder)
	comment, err := svc.LikeOrDislike(context.Background(), 9, "alice", true)

	require.NoError(t, err)
	assert.Equal(t, int64(1), comment.LikesCount)
	assert.Equal(t, []int64{9}, recorder.sent)
}

func TestRemoveVote(t *testing.T) {
	voteRepo := new(mockVoteRepo)
	voteRepo.On("RemoveVote", mock.Anything, int64(9), "alice").
		Return(domain.Comment{ID: 9}, nil)

	recorder := &recorderWorker{}
	svc := ucComment.NewService(new(mockCommentRepo), voteRepo, new(mockMovieRepo), recorder)
	_, err := svc.RemoveVote(context.Background(), 9, "alice")

	require.NoError(t, err)
	assert.Equal(t, []int64{9}, recorder.sent)
}

func TestVoteState(t *testing.T) {
	t.Run("no vote maps to empty state", func(t *testing.T) {
		voteRepo := new(mockVoteRepo)
		voteRepo.On("Get", mock.Anything, int64(9), "alice").
			Return(domain.CommentVote{}, domain.ErrNotFound)

		svc := ucComment.NewService(new(mockCommentRepo), voteRepo, new(mockMovieRepo), &recorderWorker{})
		state, err := svc.VoteState(context.Background(), 9, "alice")

		require.NoError(t, err)
		assert.Equal(t, domain.VoteState{}, state)
	})

	t.Run("dislike", func(t *testing.T) {
		voteRepo := new(mockVoteRepo)
		voteRepo.On("Get", mock.Anything, int64(9), "alice").
			Return(domain.CommentVote{CommentID: 9, Username: "alice", IsLike: false}, nil)

		svc := ucComment.NewService(new(mockCommentRepo), voteRepo, new(mockMovieRepo), &recorderWorker{})
		state, err := svc.VoteState(context.Background(), 9, "alice")

		require.NoError(t, err)
		assert.Equal(t, domain.VoteState{Liked: false, Disliked: true}, state)
	})
}
