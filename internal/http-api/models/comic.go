package models

import "time"

type Comic struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug        *string    `json:"slug,omitempty" gorm:"uniqueIndex;size:200"`
	Title       string     `json:"title" gorm:"not null"`
	Author      *string    `json:"author,omitempty"`
	Status      *string    `json:"status,omitempty"` // "ongoing", "completed"
	Description *string    `json:"description,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// association
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:ComicID;constraint:OnDelete:CASCADE;"`
}

func (Comic) TableName() string {
	return "comics"
}

type Chapter struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ComicID   int64   `json:"comic_id" gorm:"not null;index"`
	Number    float64 `json:"number" gorm:"not null"` // decimal chapter numbers (e.g. 10.5) exist
	Title     *string `json:"title,omitempty"`
	PageCount *int    `json:"page_count,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
