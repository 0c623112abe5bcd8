package repository

import (
	"context"

	"streamhub/internal/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error
	GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkAsRead is scoped by user so one caller can't read-flag another's rows;
	// returns rows affected.
	MarkAsRead(ctx context.Context, userID string, notificationID int64) (int64, error)
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(notification).Error
}

func (r *notificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND read = false", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID string, notificationID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("read", true).Error
}
