package dto

import (
	"time"

	"streamhub/internal/http-api/models"
)

// CreateMovieDTO used for POST /api/v1/movies
type CreateMovieDTO struct {
	Slug        *string `json:"slug,omitempty"` // optional client slug
	Title       string  `json:"title" binding:"required"`
	Status      *string `json:"status,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Description *string `json:"description,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty"`
}

// UpdateMovieDTO used for PUT /api/v1/movies/:id (partial updates allowed)
type UpdateMovieDTO struct {
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	Status      *string `json:"status,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Description *string `json:"description,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty"`
}

// MovieResponse DTO for responses
type MovieResponse struct {
	ID          int64             `json:"id"`
	Slug        *string           `json:"slug,omitempty"`
	Title       string            `json:"title"`
	Status      *string           `json:"status,omitempty"`
	Year        *int              `json:"year,omitempty"`
	Description *string           `json:"description,omitempty"`
	PosterURL   *string           `json:"poster_url,omitempty"`
	Episodes    []EpisodeResponse `json:"episodes,omitempty"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`
}

type EpisodeResponse struct {
	ID       int64   `json:"id"`
	Number   int     `json:"number"`
	Title    *string `json:"title,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	VideoURL *string `json:"video_url,omitempty"`
}

// Converters
func (d CreateMovieDTO) ToModel() models.Movie {
	return models.Movie{
		Slug:        d.Slug,
		Title:       d.Title,
		Status:      d.Status,
		Year:        d.Year,
		Description: d.Description,
		PosterURL:   d.PosterURL,
	}
}

func (d UpdateMovieDTO) ApplyTo(m *models.Movie) {
	if d.Slug != nil {
		m.Slug = d.Slug
	}
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Status != nil {
		m.Status = d.Status
	}
	if d.Year != nil {
		m.Year = d.Year
	}
	if d.Description != nil {
		m.Description = d.Description
	}
	if d.PosterURL != nil {
		m.PosterURL = d.PosterURL
	}
}

func FromMovieToResponse(m models.Movie) MovieResponse {
	resp := MovieResponse{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Status:      m.Status,
		Year:        m.Year,
		Description: m.Description,
		PosterURL:   m.PosterURL,
		CreatedAt:   m.CreatedAt,
	}
	for _, e := range m.Episodes {
		resp.Episodes = append(resp.Episodes, EpisodeResponse{
			ID:       e.ID,
			Number:   e.Number,
			Title:    e.Title,
			Duration: e.Duration,
			VideoURL: e.VideoURL,
		})
	}
	return resp
}
