package models

import "time"

// Point event types recorded in the ledger.
const (
	EventWatchlistCreated = "watchlist_created"
	EventDailyCheckIn     = "daily_checkin"
)

// PointEvent is an append-only ledger row. DayKey is set only for once-per-day events
// (daily check-in); the partial unique index on (user_id, type, day_key) enforces the
// one-per-day rule at the database level.
type PointEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_event_day,where:day_key <> ''" json:"user_id"`
	Type      string    `gorm:"not null;uniqueIndex:idx_user_event_day,where:day_key <> ''" json:"type"`
	Points    int       `gorm:"not null" json:"points"`
	DayKey    string    `gorm:"default:'';uniqueIndex:idx_user_event_day,where:day_key <> ''" json:"-"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PointEvent) TableName() string {
	return "point_events"
}

// UserPoints keeps the running total so leaderboards don't aggregate the ledger.
type UserPoints struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Total     int       `gorm:"not null;default:0" json:"total"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserPoints) TableName() string {
	return "user_points"
}

type UserBadge struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	Code      string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"code"`
	AwardedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"awarded_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
