package dto

import (
	"time"

	"streamhub/internal/http-api/models"
)

// CreateCollectionRequest: payload for POST /collections
type CreateCollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	IsPublic    bool    `json:"is_public"`
	Type        string  `json:"type,omitempty"` // defaults to "movie" when omitted
}

// UpdateCollectionRequest: sparse patch for PUT /collections/:id, absent fields are untouched
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// AddMovieRequest: payload for POST /collections/:id/movies
type AddMovieRequest struct {
	MovieID int64 `json:"movie_id" binding:"required"`
}

// AddComicRequest: payload for POST /collections/:id/comics
type AddComicRequest struct {
	ComicID int64 `json:"comic_id" binding:"required"`
}

// MovieMembershipResponse: one movie row inside a collection
type MovieMembershipResponse struct {
	ID            int64          `json:"id"`
	MovieID       int64          `json:"movie_id"`
	Movie         *MovieResponse `json:"movie,omitempty"`
	LatestEpisode *int           `json:"latest_episode,omitempty"`
	AddedAt       time.Time      `json:"added_at"`
}

// ComicMembershipResponse: one comic row inside a collection
type ComicMembershipResponse struct {
	ID            int64          `json:"id"`
	ComicID       int64          `json:"comic_id"`
	Comic         *ComicResponse `json:"comic,omitempty"`
	LatestChapter *float64       `json:"latest_chapter,omitempty"`
	AddedAt       time.Time      `json:"added_at"`
}

// CollectionResponse: response for a single collection
type CollectionResponse struct {
	ID            int64                     `json:"id"`
	OwnerID       string                    `json:"owner_id"`
	OwnerUsername string                    `json:"owner_username,omitempty"`
	Name          string                    `json:"name"`
	Description   *string                   `json:"description,omitempty"`
	IsPublic      bool                      `json:"is_public"`
	Type          string                    `json:"type"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
	Movies        []MovieMembershipResponse `json:"movies,omitempty"`
	Comics        []ComicMembershipResponse `json:"comics,omitempty"`
}

// CollectionListResponse: list of the caller's collections
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
	Total int                  `json:"total"`
}

// Converters

func FromMovieMembership(m models.CollectionMovie) MovieMembershipResponse {
	resp := MovieMembershipResponse{
		ID:      m.ID,
		MovieID: m.MovieID,
		AddedAt: m.AddedAt,
	}
	if m.Movie != nil {
		movie := FromMovieToResponse(*m.Movie)
		resp.Movie = &movie
		if len(m.Movie.Episodes) > 0 {
			n := m.Movie.Episodes[0].Number
			resp.LatestEpisode = &n
		}
	}
	return resp
}

func FromComicMembership(m models.CollectionComic) ComicMembershipResponse {
	resp := ComicMembershipResponse{
		ID:      m.ID,
		ComicID: m.ComicID,
		AddedAt: m.AddedAt,
	}
	if m.Comic != nil {
		comic := FromComicToResponse(*m.Comic)
		resp.Comic = &comic
		if len(m.Comic.Chapters) > 0 {
			n := m.Comic.Chapters[0].Number
			resp.LatestChapter = &n
		}
	}
	return resp
}

func FromCollectionToResponse(c models.Collection) CollectionResponse {
	resp := CollectionResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		IsPublic:    c.IsPublic,
		Type:        c.Type,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Owner != nil {
		resp.OwnerUsername = c.Owner.Username
	}
	for _, m := range c.Movies {
		resp.Movies = append(resp.Movies, FromMovieMembership(m))
	}
	for _, m := range c.Comics {
		resp.Comics = append(resp.Comics, FromComicMembership(m))
	}
	return resp
}
