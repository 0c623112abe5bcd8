package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"streamhub/internal/http-api/models"
	"streamhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCollectionService mocks the CollectionService interface
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Create(ctx context.Context, ownerID string, in service.CreateCollectionInput) (*models.Collection, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Update(ctx context.Context, ownerID string, id int64, in service.UpdateCollectionInput) (*models.Collection, error) {
	args := m.Called(ctx, ownerID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Delete(ctx context.Context, ownerID string, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockCollectionService) List(ctx context.Context, ownerID, typeFilter string, includeItems bool) ([]models.Collection, error) {
	args := m.Called(ctx, ownerID, typeFilter, includeItems)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionService) GetByID(ctx context.Context, callerID string, id int64) (*models.Collection, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) AddMovie(ctx context.Context, ownerID string, collectionID, movieID int64) (*models.CollectionMovie, error) {
	args := m.Called(ctx, ownerID, collectionID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionMovie), args.Error(1)
}

func (m *MockCollectionService) AddComic(ctx context.Context, ownerID string, collectionID, comicID int64) (*models.CollectionComic, error) {
	args := m.Called(ctx, ownerID, collectionID, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionComic), args.Error(1)
}

func (m *MockCollectionService) RemoveMovie(ctx context.Context, ownerID string, collectionID, movieID int64) error {
	return m.Called(ctx, ownerID, collectionID, movieID).Error(0)
}

func (m *MockCollectionService) RemoveComic(ctx context.Context, ownerID string, collectionID, comicID int64) error {
	return m.Called(ctx, ownerID, collectionID, comicID).Error(0)
}

// asUser fakes the auth middleware for tests
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func setupCollectionRouter(svc *MockCollectionService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCollectionHandler(svc)

	router.POST("/collections", asUser(userID), h.Create)
	router.GET("/collections", asUser(userID), h.List)
	router.GET("/collections/:id", asUser(userID), h.GetByID)
	router.PUT("/collections/:id", asUser(userID), h.Update)
	router.DELETE("/collections/:id", asUser(userID), h.Delete)
	router.POST("/collections/:id/movies", asUser(userID), h.AddMovie)
	router.DELETE("/collections/:id/movies/:movie_id", asUser(userID), h.RemoveMovie)
	router.POST("/collections/:id/comics", asUser(userID), h.AddComic)
	router.DELETE("/collections/:id/comics/:comic_id", asUser(userID), h.RemoveComic)
	return router
}

func TestCreateCollection_Returns201(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	created := &models.Collection{ID: 1, OwnerID: "user-1", Name: "Favorites", Type: "movie"}
	svc.On("Create", mock.Anything, "user-1", mock.Anything).Return(created, nil)

	body, _ := json.Marshal(map[string]any{"name": "Favorites", "type": "movie"})
	req, _ := http.NewRequest("POST", "/collections", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Favorites", resp["name"])
	assert.Equal(t, false, resp["is_public"])
	svc.AssertExpectations(t)
}

func TestCreateCollection_MissingNameIs400(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	req, _ := http.NewRequest("POST", "/collections", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCollection_EmptyNameIs400(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("Create", mock.Anything, "user-1", mock.Anything).
		Return(nil, service.ErrEmptyCollectionName)

	body, _ := json.Marshal(map[string]any{"name": "   "})
	req, _ := http.NewRequest("POST", "/collections", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCollection_NotOwnedIs404(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-2")

	svc.On("Update", mock.Anything, "user-2", int64(7), mock.Anything).
		Return(nil, service.ErrCollectionNotFound)

	body, _ := json.Marshal(map[string]any{"name": "Taken"})
	req, _ := http.NewRequest("PUT", "/collections/7", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// not 403: mutations never reveal that the collection exists
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCollection_PrivateIs403ForNonOwner(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-2")

	svc.On("GetByID", mock.Anything, "user-2", int64(5)).
		Return(nil, service.ErrPrivateCollection)

	req, _ := http.NewRequest("GET", "/collections/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCollection_AnonymousCallerAllowedThrough(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "") // no auth context

	public := &models.Collection{ID: 6, OwnerID: "owner", Name: "Shared", IsPublic: true, Type: "movie"}
	svc.On("GetByID", mock.Anything, "", int64(6)).Return(public, nil)

	req, _ := http.NewRequest("GET", "/collections/6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCollection_MissingIs404(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("GetByID", mock.Anything, "user-1", int64(99)).
		Return(nil, service.ErrCollectionNotFound)

	req, _ := http.NewRequest("GET", "/collections/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddMovie_ConflictIs409(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("AddMovie", mock.Anything, "user-1", int64(1), int64(42)).
		Return(nil, service.ErrAlreadyInCollection)

	body, _ := json.Marshal(map[string]any{"movie_id": 42})
	req, _ := http.NewRequest("POST", "/collections/1/movies", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddMovie_MissingBodyIs400(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	req, _ := http.NewRequest("POST", "/collections/1/movies", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddMovie", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddComic_WrongTypeIs400(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("AddComic", mock.Anything, "user-1", int64(3), int64(9)).
		Return(nil, service.ErrWrongCollectionType)

	body, _ := json.Marshal(map[string]any{"comic_id": 9})
	req, _ := http.NewRequest("POST", "/collections/3/comics", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveMovie_SuccessThenNotFound(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("RemoveMovie", mock.Anything, "user-1", int64(1), int64(42)).Return(nil).Once()
	svc.On("RemoveMovie", mock.Anything, "user-1", int64(1), int64(42)).
		Return(service.ErrNotInCollection).Once()

	req, _ := http.NewRequest("DELETE", "/collections/1/movies/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", "/collections/1/movies/42", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCollections_ReturnsOwnOnly(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "user-1")

	svc.On("List", mock.Anything, "user-1", "movie", true).
		Return([]models.Collection{
			{ID: 2, OwnerID: "user-1", Name: "Recent", Type: "movie"},
			{ID: 1, OwnerID: "user-1", Name: "Favorites", Type: "movie"},
		}, nil)

	req, _ := http.NewRequest("GET", "/collections?type=movie&include_items=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Recent", resp.Items[0]["name"])
}

func TestDeleteCollection_Unauthenticated(t *testing.T) {
	svc := new(MockCollectionService)
	router := setupCollectionRouter(svc, "")

	req, _ := http.NewRequest("DELETE", "/collections/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
