package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription 用户-赛事订阅关系，存在即订阅
type Subscription struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_contest;index" json:"user_id"`
	ContestID string    `gorm:"column:contest_id;type:uuid;not null;uniqueIndex:uq_user_contest;index" json:"contest_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string { return "contest_subscriptions" }

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Submission 用户参赛记录，月度统计里算出勤率用
type Submission struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ContestID    string    `gorm:"column:contest_id;type:uuid;not null;index" json:"contest_id"`
	Solved       int       `gorm:"column:solved;not null;default:0" json:"solved"`
	Rank         *int      `gorm:"column:rank" json:"rank"`
	RatingChange *int      `gorm:"column:rating_change" json:"rating_change"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Submission) TableName() string { return "submissions" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
