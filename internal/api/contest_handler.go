package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ContestSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContestHandler 提供给前端的赛事查询接口
type ContestHandler struct {
	contestRepo repository.ContestRepository
	logger      *logrus.Logger
}

func NewContestHandler(contestRepo repository.ContestRepository, logger *logrus.Logger) *ContestHandler {
	return &ContestHandler{contestRepo: contestRepo, logger: logger}
}

// ListContests 赛事列表接口
// GET /api/contests?platform=Codeforces&featured=true&upcoming=true&page=1&page_size=20
func (h *ContestHandler) ListContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ContestFilter{
		Platform:     c.Query("platform"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	// 默认只看未来场次，历史24小时内的行要查需显式 upcoming=false
	if c.DefaultQuery("upcoming", "true") == "true" {
		now := time.Now().UTC()
		filter.From = &now
	}

	contests, total, err := h.contestRepo.ListContests(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("赛事列表查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contests":  contests,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetContest 赛事详情
// GET /api/contests/:id
func (h *ContestHandler) GetContest(c *gin.Context) {
	id := c.Param("id")
	contest, err := h.contestRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contest not found"})
			return
		}
		h.logger.WithError(err).Error("赛事详情查询失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contest)
}
