package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/moviestar/moviestar/domain"
	"github.com/moviestar/moviestar/internal/rest/request"
	"github.com/moviestar/moviestar/internal/rest/response"
)

// MovieHandler represents the httphandler for the movie catalog. Rating
// aggregates are joined into every movie response, so it also depends on
// the rating usecase.
type MovieHandler struct {
	Service domain.MovieUsecase
	Ratings domain.RatingUsecase
}

func NewMovieHandler(svc domain.MovieUsecase, ratings domain.RatingUsecase) *MovieHandler {
	return &MovieHandler{
		Service: svc,
		Ratings: ratings,
	}
}

func (h *MovieHandler) toResponse(c *gin.Context, m *domain.Movie) response.Movie {
	summary, err := h.Ratings.Summary(c.Request.Context(), m.ID)
	if err != nil {
		logrus.Warnf("rating summary for movie %d: %v", m.ID, err)
		summary = domain.RatingSummary{}
	}
	return response.NewMovieFromDomain(m, summary)
}

func (h *MovieHandler) toResponses(c *gin.Context, movies []domain.Movie) []response.Movie {
	res := make([]response.Movie, len(movies))
	for i := range movies {
		res[i] = h.toResponse(c, &movies[i])
	}
	return res
}

func (h *MovieHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	movie, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, &movie))
}

func (h *MovieHandler) FetchAll(c *gin.Context) {
	movies, err := h.Service.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponses(c, movies))
}

func (h *MovieHandler) Search(c *gin.Context) {
	movies, err := h.Service.FetchByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponses(c, movies))
}

func (h *MovieHandler) FetchByGenre(c *gin.Context) {
	movies, err := h.Service.FetchByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponses(c, movies))
}

func (h *MovieHandler) FetchByActor(c *gin.Context) {
	movies, err := h.Service.FetchByActor(c.Request.Context(), c.Param("actor"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponses(c, movies))
}

func (h *MovieHandler) Store(c *gin.Context) {
	var req request.Movie
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	movie := req.ToDomain()
	if err := h.Service.Store(c.Request.Context(), &movie); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(c, &movie))
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Movie
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	movie := req.ToDomain()
	movie.ID = id
	if err := h.Service.Update(c.Request.Context(), &movie); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	updated, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, &updated))
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MovieHandler) AttachDirector(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	directorID, ok := pathID(c, "directorId")
	if !ok {
		return
	}

	movie, err := h.Service.AttachDirector(c.Request.Context(), movieID, directorID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, &movie))
}

func (h *MovieHandler) DetachDirector(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	directorID, ok := pathID(c, "directorId")
	if !ok {
		return
	}

	movie, err := h.Service.DetachDirector(c.Request.Context(), movieID, directorID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, &movie))
}
