package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ProfileHandler 用户提醒偏好接口
type ProfileHandler struct {
	profileRepo repository.ProfileRepository
	logger      *logrus.Logger
}

func NewProfileHandler(profileRepo repository.ProfileRepository, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo, logger: logger}
}

// GetProfile 查询用户偏好；没存过时返回一份带默认值的虚拟档案
// GET /api/users/:user_id/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")
	profile, err := h.profileRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			profile = &model.Profile{UserID: userID}
		} else {
			h.logger.WithError(err).Error("偏好查询失败")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":                 profile.UserID,
		"full_name":               profile.FullName,
		"phone_number":            profile.PhoneNumber,
		"reminder_offsets":        profile.Offsets(),
		"notification_channels":   profile.Channels(),
		"auto_reminder_platforms": profile.AutoPlatforms(),
		"preferred_platforms":     profile.Preferred(),
		"rating_codeforces":       profile.RatingCodeforces,
		"rating_codechef":         profile.RatingCodechef,
		"rating_leetcode":         profile.RatingLeetcode,
	})
}

type profileUpdateRequest struct {
	FullName              *string         `json:"full_name"`
	PhoneNumber           *string         `json:"phone_number"`
	ReminderOffsets       []int           `json:"reminder_offsets"`
	NotificationChannels  map[string]bool `json:"notification_channels"`
	AutoReminderPlatforms []string        `json:"auto_reminder_platforms"`
	PreferredPlatforms    []string        `json:"preferred_platforms"`
	RatingCodeforces      *int            `json:"rating_codeforces"`
	RatingCodechef        *int            `json:"rating_codechef"`
	RatingLeetcode        *int            `json:"rating_leetcode"`
}

// UpdateProfile 保存用户偏好（幂等upsert）
// 偏好改动只影响之后的订阅，已生成的提醒不回溯
// PUT /api/users/:user_id/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.Param("user_id")

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile := &model.Profile{
		UserID:           userID,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		RatingCodeforces: req.RatingCodeforces,
		RatingCodechef:   req.RatingCodechef,
		RatingLeetcode:   req.RatingLeetcode,
	}
	if req.ReminderOffsets != nil {
		profile.ReminderOffsets = mustJSON(req.ReminderOffsets)
	}
	if req.NotificationChannels != nil {
		profile.NotificationChannels = mustJSON(req.NotificationChannels)
	}
	if req.AutoReminderPlatforms != nil {
		profile.AutoReminderPlatforms = mustJSON(req.AutoReminderPlatforms)
	}
	if req.PreferredPlatforms != nil {
		profile.PreferredPlatforms = mustJSON(req.PreferredPlatforms)
	}

	if err := h.profileRepo.UpsertProfile(c.Request.Context(), profile); err != nil {
		h.logger.WithError(err).Error("偏好保存失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// mustJSON 入参来自已通过绑定的请求体，序列化不会失败
func mustJSON(v interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}
