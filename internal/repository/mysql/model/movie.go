package model

import (
	"time"

	"github.com/moviestar/moviestar/domain"
)

type Movie struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Year        int        `gorm:"not null"`
	PosterURL   string     `gorm:"column:poster_url;type:varchar(512)"`
	BackdropURL string     `gorm:"column:backdrop_url;type:varchar(512)"`
	Genres      []Genre    `gorm:"many2many:movie_genre;"`
	Actors      []Actor    `gorm:"many2many:movie_actor;"`
	Directors   []Director `gorm:"many2many:movie_director;"`
	CreatedAt   time.Time  `gorm:"type:datetime"`
	UpdatedAt   time.Time  `gorm:"type:datetime"`
}

func (Movie) TableName() string {
	return "movie"
}

type Genre struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Genre string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (Genre) TableName() string {
	return "genre"
}

type Actor struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (Actor) TableName() string {
	return "actor"
}

type Director struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(255);not null"`
	About string `gorm:"type:text"`
}

func (Director) TableName() string {
	return "director"
}

func (m *Movie) ToDomain() domain.Movie {
	res := domain.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Year:        m.Year,
		PosterURL:   m.PosterURL,
		BackdropURL: m.BackdropURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, g := range m.Genres {
		res.Genres = append(res.Genres, domain.Genre{ID: g.ID, Genre: g.Genre})
	}
	for _, a := range m.Actors {
		res.Actors = append(res.Actors, domain.Actor{ID: a.ID, Name: a.Name})
	}
	for _, d := range m.Directors {
		res.Directors = append(res.Directors, domain.Director{ID: d.ID, Name: d.Name, About: d.About})
	}
	return res
}

func NewMovieFromDomain(m *domain.Movie) *Movie {
	res := &Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Year:        m.Year,
		PosterURL:   m.PosterURL,
		BackdropURL: m.BackdropURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
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
