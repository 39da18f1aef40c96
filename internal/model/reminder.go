package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 提醒状态机：pending → sent / failed，不回退不重试
const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
	ReminderFailed  = "failed"
)

// Reminder 单条提醒投递实例
// (user_id, contest_id, reminder_time, channel) 唯一：reminder_time 由
// 开赛时间减提前量算出，等价于按 (offset, channel) 去重；偏好后续修改
// 不会回溯改写已生成的行
type Reminder struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_reminder_instance;index" json:"user_id"`
	ContestID    string    `gorm:"column:contest_id;type:uuid;not null;uniqueIndex:uq_reminder_instance;index" json:"contest_id"`
	ReminderTime time.Time `gorm:"column:reminder_time;type:timestamptz;not null;uniqueIndex:uq_reminder_instance;index" json:"reminder_time"`
	Channel      string    `gorm:"column:channel;type:varchar(32);not null;default:browser;uniqueIndex:uq_reminder_instance" json:"channel"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;default:pending;index" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reminder) TableName() string { return "reminders" }

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
