package api

import (
	"net/http"

	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SubscriptionHandler 订阅/退订接口
type SubscriptionHandler struct {
	subService *service.SubscriptionService
	logger     *logrus.Logger
}

func NewSubscriptionHandler(subService *service.SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService, logger: logger}
}

type subscriptionRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ContestID string `json:"contest_id" binding:"required"`
}

// Subscribe 订阅赛事并生成提醒
// POST /api/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and contest_id are required"})
		return
	}

	reminders, err := h.subService.Subscribe(c.Request.Context(), req.UserID, req.ContestID)
	if err != nil {
		h.logger.WithError(err).Error("订阅失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "subscribed",
		"reminders": len(reminders),
	})
}

// Unsubscribe 退订并清理未投递提醒
// DELETE /api/subscriptions
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and contest_id are required"})
		return
	}

	if err := h.subService.Unsubscribe(c.Request.Context(), req.UserID, req.ContestID); err != nil {
		h.logger.WithError(err).Error("退订失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// ListByUser 用户订阅列表
// GET /api/users/:user_id/subscriptions
func (h *SubscriptionHandler) ListByUser(c *gin.Context) {
	userID := c.Param("user_id")
	subs, err := h.subService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("订阅列表查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}
