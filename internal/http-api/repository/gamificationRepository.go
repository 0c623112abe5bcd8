package repository

import (
	"context"
	"fmt"

	"streamhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GamificationRepository interface {
	// CreatePointEvent appends to the ledger. For events carrying a DayKey it reports
	// (false, nil) when the (user, type, day) row already exists.
	CreatePointEvent(ctx context.Context, tx *gorm.DB, ev *models.PointEvent) (bool, error)
	AddPoints(ctx context.Context, tx *gorm.DB, userID string, delta int) error
	GetPoints(ctx context.Context, userID string) (*models.UserPoints, error)
	AwardBadge(ctx context.Context, tx *gorm.DB, userID, code string) (bool, error)
	CountEventsByType(ctx context.Context, tx *gorm.DB, userID, eventType string) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]models.UserPoints, error)
}

type gamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

func (r *gamificationRepository) handle(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *gamificationRepository) CreatePointEvent(ctx context.Context, tx *gorm.DB, ev *models.PointEvent) (bool, error) {
	if err := r.handle(ctx, tx).Create(ev).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create point event: %w", err)
	}
	return true, nil
}

func (r *gamificationRepository) AddPoints(ctx context.Context, tx *gorm.DB, userID string, delta int) error {
	points := models.UserPoints{UserID: userID, Total: delta}
	err := r.handle(ctx, tx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"total": gorm.Expr("user_points.total + ?", delta)}),
		}).
		Create(&points).Error
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

func (r *gamificationRepository) GetPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	var points models.UserPoints
	if err := r.db.WithContext(ctx).First(&points, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &points, nil
}

func (r *gamificationRepository) AwardBadge(ctx context.Context, tx *gorm.DB, userID, code string) (bool, error) {
	badge := models.UserBadge{UserID: userID, Code: code}
	if err := r.handle(ctx, tx).Create(&badge).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("award badge: %w", err)
	}
	return true, nil
}

func (r *gamificationRepository) CountEventsByType(ctx context.Context, tx *gorm.DB, userID, eventType string) (int64, error) {
	var count int64
	err := r.handle(ctx, tx).
		Model(&models.PointEvent{}).
		Where("user_id = ? AND type = ?", userID, eventType).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gamificationRepository) Leaderboard(ctx context.Context, limit int) ([]models.UserPoints, error) {
	var rows []models.UserPoints
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("total DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return rows, nil
}
