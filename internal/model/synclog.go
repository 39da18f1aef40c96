package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 同步运行状态：running 开场写入，结束时改写为其余三态之一
const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial" // 有来源失败但整体提交
	SyncStatusFailed  = "failed"
)

// SyncLog 同步审计日志，一次同步一行，只追加；running 行收尾时关闭
type SyncLog struct {
	ID             string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SyncType       string     `gorm:"column:sync_type;type:varchar(32);not null" json:"sync_type"`
	Status         string     `gorm:"column:status;type:varchar(16);not null;default:running" json:"status"`
	ContestsSynced int        `gorm:"column:contests_synced;not null;default:0" json:"contests_synced"`
	ErrorMessage   *string    `gorm:"column:error_message;type:text" json:"error_message"`
	StartedAt      time.Time  `gorm:"column:started_at;autoCreateTime" json:"started_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at;type:timestamptz" json:"completed_at"`
}

func (SyncLog) TableName() string { return "sync_logs" }

func (l *SyncLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
