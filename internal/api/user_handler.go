package api

import (
	"net/http"

	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 用户侧聚合接口：推荐与月度统计
type UserHandler struct {
	suggestService *service.SuggestionService
	statsService   *service.StatsService
	logger         *logrus.Logger
}

func NewUserHandler(
	suggestService *service.SuggestionService,
	statsService *service.StatsService,
	logger *logrus.Logger,
) *UserHandler {
	return &UserHandler{
		suggestService: suggestService,
		statsService:   statsService,
		logger:         logger,
	}
}

// GetSuggestions 赛事推荐
// GET /api/users/:user_id/suggestions
func (h *UserHandler) GetSuggestions(c *gin.Context) {
	userID := c.Param("user_id")
	suggestions, err := h.suggestService.SuggestFor(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("推荐计算失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetMonthlyStats 月度出勤统计
// GET /api/users/:user_id/stats/monthly?month=2026-09
func (h *UserHandler) GetMonthlyStats(c *gin.Context) {
	userID := c.Param("user_id")
	stats, err := h.statsService.MonthlyFor(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		h.logger.WithError(err).Error("月度统计查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
