package model

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 通知渠道名（reminders.channel 同一取值域）
const (
	ChannelBrowser  = "browser"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Profile 用户提醒偏好（偏好字段以JSON列存储，读取时经helper兜底默认值）
type Profile struct {
	ID                    string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID                string         `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName              *string        `gorm:"column:full_name;type:varchar(128)" json:"full_name"`
	PhoneNumber           *string        `gorm:"column:phone_number;type:varchar(32)" json:"phone_number"`
	ReminderOffsets       datatypes.JSON `gorm:"column:reminder_offsets" json:"reminder_offsets"`             // [30,60] 分钟
	NotificationChannels  datatypes.JSON `gorm:"column:notification_channels" json:"notification_channels"`   // {"email":true,...}
	AutoReminderPlatforms datatypes.JSON `gorm:"column:auto_reminder_platforms" json:"auto_reminder_platforms"` // ["leetcode",...]
	PreferredPlatforms    datatypes.JSON `gorm:"column:preferred_platforms" json:"preferred_platforms"`
	RatingCodeforces      *int           `gorm:"column:rating_codeforces" json:"rating_codeforces"`
	RatingCodechef        *int           `gorm:"column:rating_codechef" json:"rating_codechef"`
	RatingLeetcode        *int           `gorm:"column:rating_leetcode" json:"rating_leetcode"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Offsets 解析提醒提前量列表（分钟），空或非法时返回默认 [30,60]
// 负数过滤掉，0 表示“开赛时提醒”
func (p *Profile) Offsets() []int {
	var raw []int
	if len(p.ReminderOffsets) > 0 {
		if err := json.Unmarshal(p.ReminderOffsets, &raw); err != nil {
			raw = nil
		}
	}
	if len(raw) == 0 {
		return []int{30, 60}
	}
	offsets := make([]int, 0, len(raw))
	seen := make(map[int]bool)
	for _, o := range raw {
		if o < 0 || seen[o] {
			continue
		}
		seen[o] = true
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	return offsets
}

// Channels 解析渠道开关，空或非法时返回默认 {email:true, browser:true, whatsapp:false}
func (p *Profile) Channels() map[string]bool {
	var m map[string]bool
	if len(p.NotificationChannels) > 0 {
		if err := json.Unmarshal(p.NotificationChannels, &m); err != nil {
			m = nil
		}
	}
	if len(m) == 0 {
		return map[string]bool{ChannelEmail: true, ChannelBrowser: true, ChannelWhatsApp: false}
	}
	return m
}

// EnabledChannels 返回开启的渠道名，按字典序保证遍历顺序稳定
func (p *Profile) EnabledChannels() []string {
	var enabled []string
	for name, on := range p.Channels() {
		if on {
			enabled = append(enabled, name)
		}
	}
	sort.Strings(enabled)
	return enabled
}

// AutoPlatforms 解析自动订阅的平台key列表，未设置返回空
func (p *Profile) AutoPlatforms() []string {
	var keys []string
	if len(p.AutoReminderPlatforms) > 0 {
		if err := json.Unmarshal(p.AutoReminderPlatforms, &keys); err != nil {
			return nil
		}
	}
	return keys
}

// Preferred 解析偏好平台key列表，空时返回默认四平台
func (p *Profile) Preferred() []string {
	var keys []string
	if len(p.PreferredPlatforms) > 0 {
		if err := json.Unmarshal(p.PreferredPlatforms, &keys); err != nil {
			keys = nil
		}
	}
	if len(keys) == 0 {
		return []string{"codeforces", "leetcode", "codechef", "atcoder"}
	}
	return keys
}
