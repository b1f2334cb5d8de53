package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/internal/review"
	"github.com/example/codereps/pkg/models"
)

// NotificationStore persists users' reminder settings.
type NotificationStore interface {
	SaveNotificationSettings(ctx context.Context, ns *models.NotificationSettings) error
	DeleteNotificationSettings(ctx context.Context, userID string) error
}

// Handler carries the dependencies for all HTTP handlers.
type Handler struct {
	service       *review.Service
	notifications NotificationStore
	log           *logger.Logger
}

func NewHandler(service *review.Service, notifications NotificationStore, log *logger.Logger) *Handler {
	return &Handler{
		service:       service,
		notifications: notifications,
		log:           log.With("component", "api"),
	}
}

// Root is the public liveness endpoint.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "codereps backend is live!"})
}

type logRequest struct {
	Slug       string `json:"slug" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Difficulty int    `json:"difficulty" binding:"required"`
}

// LogProblem records a solved problem and returns its next review date.
func (h *Handler) LogProblem(c *gin.Context) {
	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.service.LogProblem(c.Request.Context(), userID(c), req.Slug, req.Title, req.Difficulty)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TodaysReviews lists due reviews, or the next upcoming one when nothing is
// due.
func (h *Handler) TodaysReviews(c *gin.Context) {
	result, err := h.service.TodaysReviews(c.Request.Context(), userID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DashboardStats reports the user's current daily streak.
func (h *Handler) DashboardStats(c *gin.Context) {
	streak, err := h.service.CurrentStreak(c.Request.Context(), userID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_streak": streak})
}

// AllProblems lists everything the user has logged.
func (h *Handler) AllProblems(c *gin.Context) {
	problems, err := h.service.AllProblems(c.Request.Context(), userID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"all_problems": problems})
}

// ProblemBank returns the full catalog.
func (h *Handler) ProblemBank(c *gin.Context) {
	problems, err := h.service.ProblemBank(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

type notificationRequest struct {
	TelegramChatID int64 `json:"telegram_chat_id" binding:"required"`
	NotifyHour     *int  `json:"notify_hour"`
}

// LinkNotifications enables Telegram due-review reminders for the user.
func (h *Handler) LinkNotifications(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	hour := 9
	if req.NotifyHour != nil {
		hour = *req.NotifyHour
	}
	if hour < 0 || hour > 23 {
		respondError(c, http.StatusBadRequest, "bad_request",
			errors.New("notify_hour must be between 0 and 23"))
		return
	}

	ns := &models.NotificationSettings{
		UserID:         userID(c),
		TelegramChatID: req.TelegramChatID,
		Enabled:        true,
		NotifyHour:     hour,
	}
	if err := h.notifications.SaveNotificationSettings(c.Request.Context(), ns); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications enabled"})
}

// UnlinkNotifications disables reminders for the user.
func (h *Handler) UnlinkNotifications(c *gin.Context) {
	if err := h.notifications.DeleteNotificationSettings(c.Request.Context(), userID(c)); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications disabled"})
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, review.ErrProblemNotFound):
		respondError(c, http.StatusBadRequest, "problem_not_found", err)
	case errors.Is(err, review.ErrInvalidDifficulty),
		errors.Is(err, review.ErrInvalidDateFormat):
		respondError(c, http.StatusBadRequest, "invalid_input", err)
	default:
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
