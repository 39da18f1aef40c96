package api

import (
	"net/http"

	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DispatchHandler 提醒投递触发接口
type DispatchHandler struct {
	dispatcher *service.ReminderDispatcher
	logger     *logrus.Logger
}

func NewDispatchHandler(dispatcher *service.ReminderDispatcher, logger *logrus.Logger) *DispatchHandler {
	return &DispatchHandler{dispatcher: dispatcher, logger: logger}
}

// Dispatch 触发一轮到期提醒投递
// POST /reminders/dispatch
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	result, err := h.dispatcher.Dispatch(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("提醒投递失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
