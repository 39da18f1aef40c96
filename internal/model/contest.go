package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contest 聚合后的规范赛事表（同一场比赛多来源去重后一条）
// (platform, external_id) 为同步幂等键，重复同步只更新字段不产生新行
type Contest struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;type:varchar(256);not null" json:"name"`
	URL        string    `gorm:"column:url;type:varchar(512);not null" json:"url"`
	StartTime  time.Time `gorm:"column:start_time;type:timestamptz;not null;index" json:"start_time"`
	Duration   int       `gorm:"column:duration;not null;default:0" json:"duration"` // 时长（秒）
	Platform   string    `gorm:"column:platform;type:varchar(64);not null;uniqueIndex:uq_platform_external" json:"platform"`
	ExternalID string    `gorm:"column:external_id;type:varchar(128);not null;uniqueIndex:uq_platform_external" json:"external_id"`
	IsFeatured bool      `gorm:"column:is_featured;not null;default:false" json:"is_featured"` // 管理员推荐位
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Contest) TableName() string { return "contests" }

// BeforeCreate 入库前补uuid主键
func (c *Contest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NormalizedContest 适配器输出的规范化赛事（仅在一次抓取内存活，不落库）
type NormalizedContest struct {
	Name       string
	URL        string
	StartTime  time.Time // 统一UTC
	Duration   int       // 秒
	Platform   string    // 平台展示名（如 CodeForces）
	ExternalID string    // 平台前缀ID（如 cf-1234）
}

// ToContest 转换为待upsert的数据库模型
func (n *NormalizedContest) ToContest() *Contest {
	return &Contest{
		Name:       n.Name,
		URL:        n.URL,
		StartTime:  n.StartTime.UTC(),
		Duration:   n.Duration,
		Platform:   n.Platform,
		ExternalID: n.ExternalID,
	}
}
