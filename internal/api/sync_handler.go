package api

import (
	"net/http"

	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 同步触发接口
type SyncHandler struct {
	engine *service.SyncEngine
	logger *logrus.Logger
}

func NewSyncHandler(engine *service.SyncEngine, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{engine: engine, logger: logger}
}

// RunSync 触发一轮完整同步
// POST /sync/run
func (h *SyncHandler) RunSync(c *gin.Context) {
	result, err := h.engine.RunSync(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("同步执行失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
