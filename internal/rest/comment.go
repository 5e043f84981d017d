package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/rest/request"
	"github.com/moviestar/moviestar/internal/rest/response"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// actingUsername pulls the identity set by the auth middleware.
func actingUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return "", false
	}
	return username.(string), true
}

func (h *commentHandler) Create(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment := domain.Comment{
		MovieID:  movieID,
		Username: username,
		Content:  req.Comment,
	}
	if err := h.Service.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

func (h *commentHandler) FetchByMovie(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q request.ListComments
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comments, err := h.Service.FetchByMovie(c.Request.Context(), movieID, q.SortMode())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentsFromDomain(comments))
}

func (h *commentHandler) FetchMine(c *gin.Context) {
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	comments, err := h.Service.FetchByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentsFromDomain(comments))
}

func (h *commentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment, err := h.Service.UpdateContent(c.Request.Context(), id, username, req.Comment)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

func (h *commentHandler) DeleteOwn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteOwn(c.Request.Context(), id, username); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *commentHandler) AdminDelete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.AdminDelete(c.Request.Context(), id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *commentHandler) AdminDeleteAllForUser(c *gin.Context) {
	username := c.Param("username")

	err := h.Service.DeleteAllForUser(c.Request.Context(), username)
	var aggErr *domain.AggregateError
	if errors.As(err, &aggErr) {
		// Partial failure: report which cascades to retry.
		c.JSON(http.StatusMultiStatus, gin.H{
			"message":   aggErr.Error(),
			"failedIds": aggErr.FailedIDs,
		})
		return
	}
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *commentHandler) Vote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	var req request.CommentVote
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment, err := h.Service.LikeOrDislike(c.Request.Context(), id, username, *req.IsLike)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

func (h *commentHandler) Unvote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	comment, err := h.Service.RemoveVote(c.Request.Context(), id, username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

func (h *commentHandler) VoteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	state, err := h.Service.VoteState(c.Request.Context(), id, username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.VoteState{Liked: state.Liked, Disliked: state.Disliked})
}
