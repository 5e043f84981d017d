package response

import "github.com/moviestar/moviestar/domain"

type Movie struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Year          int        `json:"year"`
	PosterURL     string     `json:"posterURL"`
	BackdropURL   string     `json:"backdropURL"`
	Genres        []Genre    `json:"genres"`
	Actors        []Actor    `json:"actors"`
	Directors     []Director `json:"directors"`
	AverageRating float64    `json:"averageRating"`
	TotalRatings  int64      `json:"totalRatings"`
}

type Genre struct {
	ID    int64  `json:"id"`
	Genre string `json:"genre"`
}

type Actor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Director struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	About string `json:"about,omitempty"`
}

// NewMovieFromDomain shapes a movie together with its rating aggregate.
func NewMovieFromDomain(m *domain.Movie, summary domain.RatingSummary) Movie {
	res := Movie{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Year:          m.Year,
		PosterURL:     m.PosterURL,
		BackdropURL:   m.BackdropURL,
		Genres:        []Genre{},
		Actors:        []Actor{},
		Directors:     []Director{},
		AverageRating: summary.Average,
		TotalRatings:  summary.Count,
	}
	for _, g := range m.Genres {
		res.Genres = append(res.Genres, Genre{ID: g.ID, Genre: g.Genre})
	}
	for _, a := range m.Actors {
		res.Actors = append(res.Actors, Actor{ID: a.ID, Name: a.Name})
	}
	for _, d := range m.Directors {
		res.Directors = append(res.Directors, Director{ID: d.ID, Name: d.Name, About: d.About})
	}
	return res
}

type UserRating struct {
	Movie  Movie `json:"movie"`
	Rating int   `json:"rating"`
}

type RatingStatus struct {
	Average    float64 `json:"average"`
	Count      int64   `json:"count"`
	UserRating *int    `json:"userRating,omitempty"`
}
