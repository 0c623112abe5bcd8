package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"streamhub/internal/http-api/dto"
	"streamhub/internal/http-api/middleware"
	"streamhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ComicHandler struct {
	svc service.ComicService
}

func NewComicHandler(svc service.ComicService) *ComicHandler {
	return &ComicHandler{svc: svc}
}

func (h *ComicHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService) {
	auth := middleware.AuthMiddleware(authSvc)

	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:comic_id", h.Get)

	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
	rg.PUT("/:comic_id", auth, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:comic_id", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *ComicHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page := 1
	pageSize := 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	list, total, err := h.svc.GetAll(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ComicResponse, 0, len(list))
	for _, item := range list {
		resp = append(resp, dto.FromComicToResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

func (h *ComicHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("comic_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comic, err := h.svc.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comic not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromComicToResponse(*comic))
}

func (h *ComicHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.SearchByTitle(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.ComicResponse, 0, len(list))
	for _, item := range list {
		resp = append(resp, dto.FromComicToResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": len(resp)})
}

func (h *ComicHandler) Create(c *gin.Context) {
	var in dto.CreateComicDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := in.ToModel()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Create(ctx, &model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromComicToResponse(model))
}

func (h *ComicHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("comic_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateComicDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.svc.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comic not found"})
		return
	}

	in.ApplyTo(existing)
	if err := h.svc.Update(ctx, id, existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromComicToResponse(*existing))
}

func (h *ComicHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("comic_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
