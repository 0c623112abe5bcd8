package models

import "time"

// Collection types govern which membership table a collection may use.
const (
	CollectionTypeMovie = "movie"
	CollectionTypeComic = "comic"
)

type Collection struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `gorm:"default:false;not null" json:"is_public"`
	Type        string    `gorm:"not null;default:'movie'" json:"type"` // "movie" or "comic"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"` // touched on every membership change, drives recency ordering

	// Associations
	Owner  *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Movies []CollectionMovie `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"movies,omitempty"`
	Comics []CollectionComic `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE;" json:"comics,omitempty"`
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionMovie links one collection to one movie. The composite unique index is the
// source of truth for duplicate membership under concurrent adds.
type CollectionMovie struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64     `gorm:"not null;uniqueIndex:idx_collection_movie" json:"collection_id"`
	MovieID      int64     `gorm:"not null;uniqueIndex:idx_collection_movie" json:"movie_id"`
	AddedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	Movie *Movie `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
}

func (CollectionMovie) TableName() string {
	return "collection_movies"
}

type CollectionComic struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID int64     `gorm:"not null;uniqueIndex:idx_collection_comic" json:"collection_id"`
	ComicID      int64     `gorm:"not null;uniqueIndex:idx_collection_comic" json:"comic_id"`
	AddedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	Comic *Comic `gorm:"foreignKey:ComicID" json:"comic,omitempty"`
}

func (CollectionComic) TableName() string {
	return "collection_comics"
}

// ValidCollectionType reports whether t is one of the supported collection types.
func ValidCollectionType(t string) bool {
	return t == CollectionTypeMovie || t == CollectionTypeComic
}
