package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"streamhub/internal/http-api/dto"
	"streamhub/internal/http-api/middleware"
	"streamhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService) {
	required := middleware.AuthMiddleware(authSvc)
	optional := middleware.OptionalAuthMiddleware(authSvc)

	rg.POST("", required, h.Create)
	rg.GET("", required, h.List)
	// reads are the one route anonymous callers may hit (public collections)
	rg.GET("/:id", optional, h.GetByID)
	rg.PUT("/:id", required, h.Update)
	rg.DELETE("/:id", required, h.Delete)

	rg.POST("/:id/movies", required, h.AddMovie)
	rg.DELETE("/:id/movies/:movie_id", required, h.RemoveMovie)
	rg.POST("/:id/comics", required, h.AddComic)
	rg.DELETE("/:id/comics/:comic_id", required, h.RemoveComic)
}

// Create a new collection for the authenticated user
func (h *CollectionHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Create(ctx, userID.(string), service.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Type:        req.Type,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCollectionToResponse(*collection))
}

// List the caller's own collections, newest activity first
func (h *CollectionHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	includeItems := c.Query("include_items") == "true"
	typeFilter := c.Query("type")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collections, err := h.svc.List(ctx, userID.(string), typeFilter, includeItems)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]dto.CollectionResponse, 0, len(collections))
	for _, col := range collections {
		items = append(items, dto.FromCollectionToResponse(col))
	}

	c.JSON(http.StatusOK, dto.CollectionListResponse{
		Items: items,
		Total: len(items),
	})
}

// GetByID returns a collection with its membership preview. Anonymous callers are
// allowed; visibility is decided by the service.
func (h *CollectionHandler) GetByID(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	// empty for anonymous callers
	callerID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.GetByID(ctx, callerID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCollectionToResponse(*collection))
}

// Update applies a sparse patch to an owned collection
func (h *CollectionHandler) Update(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Update(ctx, userID.(string), id, service.UpdateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Type:        req.Type,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCollectionToResponse(*collection))
}

// Delete removes an owned collection and all its membership rows
func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, userID.(string), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collection deleted"})
}

func (h *CollectionHandler) AddMovie(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AddMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	membership, err := h.svc.AddMovie(ctx, userID.(string), id, req.MovieID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovieMembership(*membership))
}

func (h *CollectionHandler) AddComic(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AddComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	membership, err := h.svc.AddComic(ctx, userID.(string), id, req.ComicID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromComicMembership(*membership))
}

func (h *CollectionHandler) RemoveMovie(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	movieID, ok := h.paramID(c, "movie_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveMovie(ctx, userID.(string), id, movieID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie removed from collection"})
}

func (h *CollectionHandler) RemoveComic(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	comicID, ok := h.paramID(c, "comic_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveComic(ctx, userID.(string), id, comicID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comic removed from collection"})
}

func (h *CollectionHandler) paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps service sentinels onto HTTP statuses. Mutations surface 404 and
// private reads 403; which one applies is decided in the service layer.
func (h *CollectionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCollectionName),
		errors.Is(err, service.ErrInvalidCollectionType),
		errors.Is(err, service.ErrWrongCollectionType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOwnerNotFound),
		errors.Is(err, service.ErrCollectionNotFound),
		errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrComicNotFound),
		errors.Is(err, service.ErrNotInCollection):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPrivateCollection):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyInCollection):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
