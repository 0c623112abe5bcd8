package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a platform account. Watchlists and reading collections hang off it via
// Collection.OwnerID.
type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"column:password_hash;not null" json:"-"`
	Role      string     `gorm:"default:'user';not null" json:"role"` // "user" or "admin"
	AvatarURL *string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	Collections []Collection `gorm:"foreignKey:OwnerID" json:"collections,omitempty"`
}

// BeforeCreate assigns a uuid when the caller didn't set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
