package service

import (
	"context"
	"testing"
	"time"

	"ContestSync/internal/model"

	"gorm.io/datatypes"
)

func profileWith(t *testing.T, offsets, channels, autoPlatforms string) *model.Profile {
	t.Helper()
	p := &model.Profile{UserID: "u-1"}
	if offsets != "" {
		p.ReminderOffsets = datatypes.JSON(offsets)
	}
	if channels != "" {
		p.NotificationChannels = datatypes.JSON(channels)
	}
	if autoPlatforms != "" {
		p.AutoReminderPlatforms = datatypes.JSON(autoPlatforms)
	}
	return p
}

func TestBuildRemindersOffsetsTimesChannels(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	contest := &model.Contest{ID: "c-1", Name: "Round 1", StartTime: now.Add(90 * time.Minute)}

	// 90分钟后开赛，3个提前量全部还来得及，单渠道 → 3条
	p := profileWith(t, `[10,30,60]`, `{"browser":true,"email":false,"whatsapp":false}`, "")
	reminders := BuildReminders(p, contest, now)
	if len(reminders) != 3 {
		t.Fatalf("应生成3条提醒, 实际%d条", len(reminders))
	}
	for _, r := range reminders {
		if r.Channel != model.ChannelBrowser {
			t.Errorf("渠道应为browser, 实际%s", r.Channel)
		}
		if r.Status != model.ReminderPending {
			t.Errorf("初始状态应为pending, 实际%s", r.Status)
		}
		if !r.ReminderTime.After(now) {
			t.Errorf("提醒时刻%s不应早于当前时刻", r.ReminderTime)
		}
	}
}

func TestBuildRemindersSkipsPastOffsets(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	// 10分钟后开赛，默认提前量[30,60]全部已过 → 0条
	contest := &model.Contest{ID: "c-1", StartTime: now.Add(10 * time.Minute)}

	reminders := BuildReminders(profileWith(t, "", "", ""), contest, now)
	if len(reminders) != 0 {
		t.Fatalf("所有提前量均已过期, 应生成0条, 实际%d条", len(reminders))
	}
}

func TestBuildRemindersDefaultPreferences(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	contest := &model.Contest{ID: "c-1", StartTime: now.Add(2 * time.Hour)}

	// 未设置偏好：提前量[30,60] × 默认开启渠道{email,browser} → 4条
	reminders := BuildReminders(profileWith(t, "", "", ""), contest, now)
	if len(reminders) != 4 {
		t.Fatalf("默认偏好应生成4条, 实际%d条", len(reminders))
	}
}

func TestBuildRemindersAllChannelsDisabled(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	contest := &model.Contest{ID: "c-1", StartTime: now.Add(2 * time.Hour)}

	p := profileWith(t, `[30]`, `{"browser":false,"email":false,"whatsapp":false}`, "")
	reminders := BuildReminders(p, contest, now)
	if len(reminders) != 1 {
		t.Fatalf("全关时应兜底browser渠道生成1条, 实际%d条", len(reminders))
	}
	if reminders[0].Channel != model.ChannelBrowser {
		t.Errorf("兜底渠道应为browser, 实际%s", reminders[0].Channel)
	}
}

func TestScheduleForIdempotent(t *testing.T) {
	reminderRepo := newFakeReminderRepo()
	scheduler := NewReminderScheduler(reminderRepo, testLogger())

	contest := &model.Contest{ID: "c-1", StartTime: time.Now().Add(3 * time.Hour)}
	p := profileWith(t, `[30,60]`, `{"browser":true}`, "")

	if _, err := scheduler.ScheduleFor(context.Background(), p, contest); err != nil {
		t.Fatalf("首次生成失败: %v", err)
	}
	if _, err := scheduler.ScheduleFor(context.Background(), p, contest); err != nil {
		t.Fatalf("重复生成失败: %v", err)
	}
	if len(reminderRepo.rows) != 2 {
		t.Errorf("重复订阅不应产生新行, 应为2条, 实际%d条", len(reminderRepo.rows))
	}
}
