package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"streamhub/internal/http-api/middleware"
	"streamhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	svc service.GamificationService
}

func NewGamificationHandler(svc service.GamificationService) *GamificationHandler {
	return &GamificationHandler{svc: svc}
}

func (h *GamificationHandler) RegisterRoutes(rg *gin.RouterGroup, authSvc service.AuthService) {
	auth := middleware.AuthMiddleware(authSvc)

	rg.POST("/checkin", auth, h.CheckIn)
	rg.GET("/points", auth, h.Points)
	rg.GET("/leaderboard", h.Leaderboard)
}

// CheckIn records the caller's daily check-in; one per UTC day.
func (h *GamificationHandler) CheckIn(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ev, err := h.svc.DailyCheckIn(ctx, userID.(string))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"points": ev.Points, "message": "checked in"})
}

func (h *GamificationHandler) Points(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	points, err := h.svc.GetPoints(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": points.UserID, "total": points.Total})
}

func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.svc.Leaderboard(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type entry struct {
		UserID   string `json:"user_id"`
		Username string `json:"username,omitempty"`
		Total    int    `json:"total"`
	}
	resp := make([]entry, 0, len(rows))
	for _, row := range rows {
		e := entry{UserID: row.UserID, Total: row.Total}
		if row.User != nil {
			e.Username = row.User.Username
		}
		resp = append(resp, e)
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": resp})
}
