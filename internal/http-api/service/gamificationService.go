package service

import (
	"context"
	"errors"
	"time"

	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrAlreadyCheckedIn = errors.New("already checked in today")

// Points per ledger event type.
var eventPoints = map[string]int{
	models.EventWatchlistCreated: 10,
	models.EventDailyCheckIn:     5,
}

// Badge codes awarded on watchlist milestones.
const (
	BadgeFirstWatchlist = "first_watchlist"
	BadgeCollector      = "collector" // ten watchlists
)

type GamificationService interface {
	// Award records an event and its points inside the caller's transaction. Callers
	// that create domain objects (e.g. a new watchlist) pass their open tx so the
	// award commits or rolls back with the object itself.
	Award(ctx context.Context, tx *gorm.DB, userID, eventType string) error
	DailyCheckIn(ctx context.Context, userID string) (*models.PointEvent, error)
	GetPoints(ctx context.Context, userID string) (*models.UserPoints, error)
	Leaderboard(ctx context.Context, limit int) ([]models.UserPoints, error)
}

type gamificationService struct {
	tx               repository.TxRunner
	repo             repository.GamificationRepository
	notificationRepo repository.NotificationRepository
}

func NewGamificationService(
	tx repository.TxRunner,
	repo repository.GamificationRepository,
	notificationRepo repository.NotificationRepository,
) GamificationService {
	return &gamificationService{
		tx:               tx,
		repo:             repo,
		notificationRepo: notificationRepo,
	}
}

func (s *gamificationService) Award(ctx context.Context, tx *gorm.DB, userID, eventType string) error {
	points := eventPoints[eventType]

	ev := &models.PointEvent{
		UserID: userID,
		Type:   eventType,
		Points: points,
	}
	if _, err := s.repo.CreatePointEvent(ctx, tx, ev); err != nil {
		return err
	}
	if err := s.repo.AddPoints(ctx, tx, userID, points); err != nil {
		return err
	}
	return s.checkBadges(ctx, tx, userID, eventType)
}

func (s *gamificationService) DailyCheckIn(ctx context.Context, userID string) (*models.PointEvent, error) {
	points := eventPoints[models.EventDailyCheckIn]
	ev := &models.PointEvent{
		UserID: userID,
		Type:   models.EventDailyCheckIn,
		Points: points,
		DayKey: time.Now().UTC().Format("2006-01-02"),
	}

	err := s.tx.InTransaction(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.CreatePointEvent(ctx, tx, ev)
		if err != nil {
			return err
		}
		if !created {
			// The partial unique index on (user, type, day) already holds a row.
			return ErrAlreadyCheckedIn
		}
		return s.repo.AddPoints(ctx, tx, userID, points)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *gamificationService) GetPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	points, err := s.repo.GetPoints(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No events yet, report a zero total instead of an error.
			return &models.UserPoints{UserID: userID}, nil
		}
		return nil, err
	}
	return points, nil
}

func (s *gamificationService) Leaderboard(ctx context.Context, limit int) ([]models.UserPoints, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.Leaderboard(ctx, limit)
}

func (s *gamificationService) checkBadges(ctx context.Context, tx *gorm.DB, userID, eventType string) error {
	if eventType != models.EventWatchlistCreated {
		return nil
	}

	count, err := s.repo.CountEventsByType(ctx, tx, userID, models.EventWatchlistCreated)
	if err != nil {
		return err
	}

	switch count {
	case 1:
		return s.awardBadge(ctx, tx, userID, BadgeFirstWatchlist)
	case 10:
		return s.awardBadge(ctx, tx, userID, BadgeCollector)
	}
	return nil
}

func (s *gamificationService) awardBadge(ctx context.Context, tx *gorm.DB, userID, code string) error {
	created, err := s.repo.AwardBadge(ctx, tx, userID, code)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	return s.notificationRepo.Create(ctx, tx, &models.Notification{
		UserID:  userID,
		Type:    "BADGE_AWARDED",
		Title:   "New badge earned",
		Message: "You earned the " + code + " badge",
	})
}
