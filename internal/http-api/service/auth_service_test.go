package service

import (
	"errors"
	"testing"
	"time"

	"streamhub/internal/config"
	"streamhub/internal/http-api/models"
	"streamhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return m.Called(token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByToken(token string) error {
	return m.Called(token).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUser(userID string) error {
	return m.Called(userID).Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestRegister_NewUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockRefreshTokenRepository), testAuthConfig())

	userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// the stored password must be a hash, never the plaintext
		return u.Username == "alice" && u.Password != "secret123" && u.ID != ""
	})).Return(nil)

	user, err := svc.Register("alice", "secret123", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, auth.VerifyPassword(user.Password, "secret123"))
	userRepo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockRefreshTokenRepository), testAuthConfig())

	userRepo.On("FindByUsername", "alice").Return(&models.User{Username: "alice"}, nil)

	_, err := svc.Register("alice", "secret123", "other@example.com")

	assert.ErrorIs(t, err, ErrNameInUse)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockRefreshTokenRepository), testAuthConfig())

	userRepo.On("FindByUsername", "bob").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "alice@example.com").Return(&models.User{Email: "alice@example.com"}, nil)

	_, err := svc.Register("bob", "secret123", "alice@example.com")

	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hashed, _ := auth.HashPassword("secret123")
	user := &models.User{ID: "user-1", Username: "alice", Role: "user", Password: hashed}

	userRepo.On("FindByUsername", "alice").Return(user, nil)
	userRepo.On("UpdateLastLogin", user).Return(nil)
	tokenRepo.On("Create", mock.Anything).Return(nil)

	accessToken, refreshToken, got, err := svc.Login("alice", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "user-1", got.ID)

	// the minted access token must validate and carry the user's identity
	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockRefreshTokenRepository), testAuthConfig())

	hashed, _ := auth.HashPassword("secret123")
	userRepo.On("FindByUsername", "alice").Return(&models.User{ID: "user-1", Password: hashed}, nil)

	_, _, _, err := svc.Login("alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockRefreshTokenRepository), testAuthConfig())

	userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login("ghost", "whatever")

	// indistinguishable from a wrong password
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAccessToken_Valid(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	tokenRepo.On("FindByToken", "opaque-token").Return(&models.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		Token:     "opaque-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil)

	accessToken, err := svc.RefreshAccessToken("opaque-token")

	assert.NoError(t, err)
	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshAccessToken_ExpiredTokenIsDeleted(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(new(MockUserRepository), tokenRepo, testAuthConfig())

	tokenRepo.On("FindByToken", "stale").Return(&models.RefreshToken{
		ID:        "rt-2",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	tokenRepo.On("Delete", "rt-2").Return(nil)

	_, err := svc.RefreshAccessToken("stale")

	assert.ErrorIs(t, err, ErrExpiredToken)
	tokenRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_UnknownToken(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(new(MockUserRepository), tokenRepo, testAuthConfig())

	tokenRepo.On("FindByToken", "nope").Return(nil, errors.New("record not found"))

	_, err := svc.RefreshAccessToken("nope")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), testAuthConfig())

	_, err := svc.ValidateToken("not.a.jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	minter := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), &config.Config{
		JWTSecret:      "other-secret",
		AccessTokenTTL: time.Minute,
	})
	verifier := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), testAuthConfig())

	token, err := minter.(*authService).generateAccessToken(&models.User{ID: "user-1"})
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeToken(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(new(MockUserRepository), tokenRepo, testAuthConfig())

	tokenRepo.On("DeleteByToken", "opaque-token").Return(nil)

	assert.NoError(t, svc.RevokeToken("opaque-token"))
	tokenRepo.AssertExpectations(t)
}
