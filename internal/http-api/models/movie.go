package models

import "time"

type Movie struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        *string    `json:"slug,omitempty" gorm:"uniqueIndex;size:200"`
	Title       string     `json:"title" gorm:"not null"`
	Status      *string    `json:"status,omitempty"` // "ongoing", "completed"
	Year        *int       `json:"year,omitempty"`
	Description *string    `json:"description,omitempty"`
	PosterURL   *string    `json:"poster_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// association
	Episodes []Episode `json:"episodes,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}

type Episode struct {
	ID       int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID  int64   `json:"movie_id" gorm:"not null;index"`
	Number   int     `json:"number" gorm:"not null"`
	Title    *string `json:"title,omitempty"`
	Duration *int    `json:"duration,omitempty"` // seconds
	VideoURL *string `json:"video_url,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Episode) TableName() string {
	return "episodes"
}
