package request

import "github.com/moviestar/moviestar/domain"

type Movie struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Year        int     `json:"year" binding:"required"`
	PosterURL   string  `json:"posterURL"`
	BackdropURL string  `json:"backdropURL"`
	GenreIDs    []int64 `json:"genreIds" binding:"required,min=1"`
	ActorIDs    []int64 `json:"actorIds"`
}

// ToDomain: Request -> Domain
func (r *Movie) ToDomain() domain.Movie {
	m := domain.Movie{
		Title:       r.Title,
		Description: r.Description,
		Year:        r.Year,
		PosterURL:   r.PosterURL,
		BackdropURL: r.BackdropURL,
	}
	for _, id := range r.GenreIDs {
		m.Genres = append(m.Genres, domain.Genre{ID: id})
	}
	for _, id := range r.ActorIDs {
		m.Actors = append(m.Actors, domain.Actor{ID: id})
	}
	return m
}
