package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/rest/request"
	"github.com/moviestar/moviestar/internal/rest/response"
)

type ratingHandler struct {
	Service domain.RatingUsecase
}

func NewRatingHandler(svc domain.RatingUsecase) *ratingHandler {
	return &ratingHandler{
		Service: svc,
	}
}

func (h *ratingHandler) Rate(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	var req request.Rating
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	if err := h.Service.Rate(c.Request.Context(), movieID, username, req.Rating); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Status returns the movie's aggregate together with the caller's own
// rating when present.
func (h *ratingHandler) Status(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	summary, err := h.Service.Summary(ctx, movieID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := response.RatingStatus{Average: summary.Average, Count: summary.Count}
	if rating, ok, err := h.Service.UserRating(ctx, movieID, username); err == nil && ok {
		res.UserRating = &rating
	}
	c.JSON(http.StatusOK, res)
}

func (h *ratingHandler) Remove(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	if err := h.Service.Remove(c.Request.Context(), movieID, username); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ratingHandler) Mine(c *gin.Context) {
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	ratings, err := h.Service.RatingsForUser(c.Request.Context(), username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.UserRating, 0, len(ratings))
	for i := range ratings {
		summary, err := h.Service.Summary(c.Request.Context(), ratings[i].Movie.ID)
		if err != nil {
			summary = domain.RatingSummary{}
		}
		res = append(res, response.UserRating{
			Movie:  response.NewMovieFromDomain(&ratings[i].Movie, summary),
			Rating: ratings[i].Rating,
		})
	}
	c.JSON(http.StatusOK, res)
}
