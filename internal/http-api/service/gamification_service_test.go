package service

import (
	"context"
	"testing"

	"streamhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockGamificationRepository struct {
	mock.Mock
}

func (m *MockGamificationRepository) CreatePointEvent(ctx context.Context, tx *gorm.DB, ev *models.PointEvent) (bool, error) {
	args := m.Called(ctx, tx, ev)
	return args.Bool(0), args.Error(1)
}

func (m *MockGamificationRepository) AddPoints(ctx context.Context, tx *gorm.DB, userID string, delta int) error {
	return m.Called(ctx, tx, userID, delta).Error(0)
}

func (m *MockGamificationRepository) GetPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPoints), args.Error(1)
}

func (m *MockGamificationRepository) AwardBadge(ctx context.Context, tx *gorm.DB, userID, code string) (bool, error) {
	args := m.Called(ctx, tx, userID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGamificationRepository) CountEventsByType(ctx context.Context, tx *gorm.DB, userID, eventType string) (int64, error) {
	args := m.Called(ctx, tx, userID, eventType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGamificationRepository) Leaderboard(ctx context.Context, limit int) ([]models.UserPoints, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserPoints), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	return m.Called(ctx, tx, notification).Error(0)
}

func (m *MockNotificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, userID string, notificationID int64) (int64, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func TestAward_FirstWatchlistGrantsBadgeAndNotifies(t *testing.T) {
	repo := new(MockGamificationRepository)
	notif := new(MockNotificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, notif)

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.MatchedBy(func(ev *models.PointEvent) bool {
		return ev.Type == models.EventWatchlistCreated && ev.Points == 10
	})).Return(true, nil)
	repo.On("AddPoints", mock.Anything, mock.Anything, "user-1", 10).Return(nil)
	repo.On("CountEventsByType", mock.Anything, mock.Anything, "user-1", models.EventWatchlistCreated).
		Return(int64(1), nil)
	repo.On("AwardBadge", mock.Anything, mock.Anything, "user-1", BadgeFirstWatchlist).Return(true, nil)
	notif.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "user-1" && n.Type == "BADGE_AWARDED"
	})).Return(nil)

	err := svc.Award(context.Background(), nil, "user-1", models.EventWatchlistCreated)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestAward_SecondWatchlistNoBadge(t *testing.T) {
	repo := new(MockGamificationRepository)
	notif := new(MockNotificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, notif)

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("AddPoints", mock.Anything, mock.Anything, "user-1", 10).Return(nil)
	repo.On("CountEventsByType", mock.Anything, mock.Anything, "user-1", models.EventWatchlistCreated).
		Return(int64(2), nil)

	err := svc.Award(context.Background(), nil, "user-1", models.EventWatchlistCreated)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "AwardBadge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notif.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAward_TenthWatchlistGrantsCollector(t *testing.T) {
	repo := new(MockGamificationRepository)
	notif := new(MockNotificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, notif)

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("AddPoints", mock.Anything, mock.Anything, "user-1", 10).Return(nil)
	repo.On("CountEventsByType", mock.Anything, mock.Anything, "user-1", models.EventWatchlistCreated).
		Return(int64(10), nil)
	repo.On("AwardBadge", mock.Anything, mock.Anything, "user-1", BadgeCollector).Return(true, nil)
	notif.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := svc.Award(context.Background(), nil, "user-1", models.EventWatchlistCreated)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAward_BadgeAlreadyHeldSkipsNotification(t *testing.T) {
	repo := new(MockGamificationRepository)
	notif := new(MockNotificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, notif)

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("AddPoints", mock.Anything, mock.Anything, "user-1", 10).Return(nil)
	repo.On("CountEventsByType", mock.Anything, mock.Anything, "user-1", models.EventWatchlistCreated).
		Return(int64(1), nil)
	repo.On("AwardBadge", mock.Anything, mock.Anything, "user-1", BadgeFirstWatchlist).Return(false, nil)

	err := svc.Award(context.Background(), nil, "user-1", models.EventWatchlistCreated)

	assert.NoError(t, err)
	notif.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDailyCheckIn_FirstOfTheDay(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, new(MockNotificationRepository))

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.MatchedBy(func(ev *models.PointEvent) bool {
		return ev.Type == models.EventDailyCheckIn && ev.DayKey != ""
	})).Return(true, nil)
	repo.On("AddPoints", mock.Anything, mock.Anything, "user-1", 5).Return(nil)

	ev, err := svc.DailyCheckIn(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 5, ev.Points)
	repo.AssertExpectations(t)
}

func TestDailyCheckIn_SecondAttemptConflicts(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, new(MockNotificationRepository))

	repo.On("CreatePointEvent", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.DailyCheckIn(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	repo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPoints_NoRowsMeansZeroTotal(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, new(MockNotificationRepository))

	repo.On("GetPoints", mock.Anything, "user-1").Return(nil, gorm.ErrRecordNotFound)

	points, err := svc.GetPoints(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, points.Total)
	assert.Equal(t, "user-1", points.UserID)
}

func TestLeaderboard_ClampsLimit(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(stubTxRunner{}, repo, new(MockNotificationRepository))

	repo.On("Leaderboard", mock.Anything, 10).Return([]models.UserPoints{}, nil)

	_, err := svc.Leaderboard(context.Background(), -3)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
