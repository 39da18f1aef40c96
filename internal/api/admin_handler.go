package api

import (
	"errors"
	"net/http"
	"strconv"

	"ContestSync/internal/repository"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler 管理端接口：精选标记、赛事删除、看板统计、同步审计
type AdminHandler struct {
	contestRepo  repository.ContestRepository
	syncLogRepo  repository.SyncLogRepository
	statsService *service.StatsService
	logger       *logrus.Logger
}

func NewAdminHandler(
	contestRepo repository.ContestRepository,
	syncLogRepo repository.SyncLogRepository,
	statsService *service.StatsService,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		contestRepo:  contestRepo,
		syncLogRepo:  syncLogRepo,
		statsService: statsService,
		logger:       logger,
	}
}

type featureRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// SetFeatured 设置/取消赛事精选标记
// POST /api/admin/contests/:id/feature
func (h *AdminHandler) SetFeatured(c *gin.Context) {
	id := c.Param("id")

	var req featureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "featured is required"})
		return
	}

	if err := h.contestRepo.SetFeatured(c.Request.Context(), id, *req.Featured); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contest not found"})
			return
		}
		h.logger.WithError(err).Error("精选标记更新失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "featured updated"})
}

// DeleteContest 删除赛事
// DELETE /api/admin/contests/:id
func (h *AdminHandler) DeleteContest(c *gin.Context) {
	id := c.Param("id")
	if err := h.contestRepo.Delete(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("赛事删除失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contest deleted"})
}

// GetStats 管理端看板统计
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.AdminOverview(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("看板统计查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListSyncLogs 最近同步审计记录
// GET /api/admin/sync-logs?limit=20
func (h *AdminHandler) ListSyncLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.syncLogRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("同步审计查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sync_logs": logs})
}
