package dto

import (
	"time"

	"streamhub/internal/http-api/models"
)

// CreateComicDTO used for POST /api/v1/comics
type CreateComicDTO struct {
	Slug        *string `json:"slug,omitempty"`
	Title       string  `json:"title" binding:"required"`
	Author      *string `json:"author,omitempty"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
}

// UpdateComicDTO used for PUT /api/v1/comics/:id (partial updates allowed)
type UpdateComicDTO struct {
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
}

// ComicResponse DTO for responses
type ComicResponse struct {
	ID          int64             `json:"id"`
	Slug        *string           `json:"slug,omitempty"`
	Title       string            `json:"title"`
	Author      *string           `json:"author,omitempty"`
	Status      *string           `json:"status,omitempty"`
	Description *string           `json:"description,omitempty"`
	CoverURL    *string           `json:"cover_url,omitempty"`
	Chapters    []ChapterResponse `json:"chapters,omitempty"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`
}

type ChapterResponse struct {
	ID        int64   `json:"id"`
	Number    float64 `json:"number"`
	Title     *string `json:"title,omitempty"`
	PageCount *int    `json:"page_count,omitempty"`
}

// Converters
func (d CreateComicDTO) ToModel() models.Comic {
	return models.Comic{
		Slug:        d.Slug,
		Title:       d.Title,
		Author:      d.Author,
		Status:      d.Status,
		Description: d.Description,
		CoverURL:    d.CoverURL,
	}
}

func (d UpdateComicDTO) ApplyTo(c *models.Comic) {
	if d.Slug != nil {
		c.Slug = d.Slug
	}
	if d.Title != nil {
		c.Title = *d.Title
	}
	if d.Author != nil {
		c.Author = d.Author
	}
	if d.Status != nil {
		c.Status = d.Status
	}
	if d.Description != nil {
		c.Description = d.Description
	}
	if d.CoverURL != nil {
		c.CoverURL = d.CoverURL
	}
}

func FromComicToResponse(c models.Comic) ComicResponse {
	resp := ComicResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Author:      c.Author,
		Status:      c.Status,
		Description: c.Description,
		CoverURL:    c.CoverURL,
		CreatedAt:   c.CreatedAt,
	}
	for _, ch := range c.Chapters {
		resp.Chapters = append(resp.Chapters, ChapterResponse{
			ID:        ch.ID,
			Number:    ch.Number,
			Title:     ch.Title,
			PageCount: ch.PageCount,
		})
	}
	return resp
}
