package service

import (
	"context"
	"errors"

	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/repository"
)

var ErrNotificationNotFound = errors.New("notification not found or already read")

type NotificationService interface {
	GetUnread(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.GetUnreadByUser(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	rows, err := s.repo.MarkAsRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
