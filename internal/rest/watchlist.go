package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moviestar/moviestar/domain"
)

type watchlistHandler struct {
	Service domain.WatchlistUsecase
	Movies  *MovieHandler
}

func NewWatchlistHandler(svc domain.WatchlistUsecase, movies *MovieHandler) *watchlistHandler {
	return &watchlistHandler{
		Service: svc,
		Movies:  movies,
	}
}

func (h *watchlistHandler) List(c *gin.Context) {
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	movies, err := h.Service.List(c.Request.Context(), username)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Movies.toResponses(c, movies))
}

func (h *watchlistHandler) Add(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	if err := h.Service.Add(c.Request.Context(), username, movieID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *watchlistHandler) Remove(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	if err := h.Service.Remove(c.Request.Context(), username, movieID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *watchlistHandler) Contains(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, ok := actingUsername(c)
	if !ok {
		return
	}

	contains, err := h.Service.Contains(c.Request.Context(), username, movieID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWatchlist": contains})
}
