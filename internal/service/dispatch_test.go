package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ContestSync/internal/model"
)

func newTestDispatcher(
	reminderRepo *fakeReminderRepo,
	contestRepo *fakeContestRepo,
	profileRepo *fakeProfileRepo,
	notifier *fakeNotifier,
	now time.Time,
) *ReminderDispatcher {
	d := NewReminderDispatcher(reminderRepo, contestRepo, profileRepo, notifier, testLogger())
	d.now = func() time.Time { return now }
	return d
}

func seedReminder(repo *fakeReminderRepo, id, userID, contestID, channel string, at time.Time) *model.Reminder {
	r := &model.Reminder{
		ID:           id,
		UserID:       userID,
		ContestID:    contestID,
		ReminderTime: at,
		Channel:      channel,
		Status:       model.ReminderPending,
	}
	repo.rows = append(repo.rows, r)
	repo.keys[reminderKey(r)] = true
	return r
}

func TestDispatchBrowserAndEmailMarkedSent(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	contestRepo := newFakeContestRepo()
	profileRepo := newFakeProfileRepo()
	notifier := &fakeNotifier{}

	contestRepo.add(&model.Contest{ID: "c-1", Name: "Round 1", Platform: "CodeForces", ExternalID: "cf-1", StartTime: now.Add(30 * time.Minute)})
	seedReminder(reminderRepo, "r-1", "u-1", "c-1", model.ChannelBrowser, now)
	seedReminder(reminderRepo, "r-2", "u-1", "c-1", model.ChannelEmail, now.Add(2*time.Minute))

	d := newTestDispatcher(reminderRepo, contestRepo, profileRepo, notifier, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	if result.Sent != 2 || result.Failed != 0 || result.Total != 2 {
		t.Errorf("结果错误: %+v", result)
	}
	for _, r := range reminderRepo.rows {
		if r.Status != model.ReminderSent {
			t.Errorf("提醒%s应为sent, 实际%s", r.ID, r.Status)
		}
	}
	if len(notifier.sent) != 0 {
		t.Errorf("browser/email不应走出站通知, 实际发了%d条", len(notifier.sent))
	}
}

func TestDispatchLookaheadWindow(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	contestRepo := newFakeContestRepo()
	contestRepo.add(&model.Contest{ID: "c-1", Name: "Round 1", Platform: "CodeForces", ExternalID: "cf-1", StartTime: now.Add(time.Hour)})

	// 窗口内（now+4m）投，窗口外（now+6m）留
	seedReminder(reminderRepo, "r-in", "u-1", "c-1", model.ChannelBrowser, now.Add(4*time.Minute))
	seedReminder(reminderRepo, "r-out", "u-1", "c-1", model.ChannelBrowser, now.Add(6*time.Minute))

	d := newTestDispatcher(reminderRepo, contestRepo, newFakeProfileRepo(), &fakeNotifier{}, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("只应出队窗口内1条, 实际%d条", result.Total)
	}
	for _, r := range reminderRepo.rows {
		switch r.ID {
		case "r-in":
			if r.Status != model.ReminderSent {
				t.Errorf("窗口内提醒应投递, 实际%s", r.Status)
			}
		case "r-out":
			if r.Status != model.ReminderPending {
				t.Errorf("窗口外提醒应保持pending, 实际%s", r.Status)
			}
		}
	}
}

func TestDispatchWhatsAppWithPhone(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	contestRepo := newFakeContestRepo()
	profileRepo := newFakeProfileRepo()
	notifier := &fakeNotifier{}

	contestRepo.add(&model.Contest{ID: "c-1", Name: "Starters 170", Platform: "CodeChef", ExternalID: "cc-170", StartTime: now.Add(45 * time.Minute)})
	phone := "+8613800138000"
	profileRepo.profiles["u-1"] = &model.Profile{UserID: "u-1", PhoneNumber: &phone}
	seedReminder(reminderRepo, "r-1", "u-1", "c-1", model.ChannelWhatsApp, now)

	d := newTestDispatcher(reminderRepo, contestRepo, profileRepo, notifier, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	if result.Sent != 1 {
		t.Fatalf("应投递1条, 实际%+v", result)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("应发1条whatsapp, 实际%d条", len(notifier.sent))
	}
	if notifier.sent[0].recipient != phone {
		t.Errorf("收件人应为%s, 实际%s", phone, notifier.sent[0].recipient)
	}
}

func TestDispatchWhatsAppMissingPhoneFails(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	contestRepo := newFakeContestRepo()
	contestRepo.add(&model.Contest{ID: "c-1", Name: "Round 1", Platform: "CodeForces", ExternalID: "cf-1", StartTime: now.Add(time.Hour)})
	seedReminder(reminderRepo, "r-1", "u-1", "c-1", model.ChannelWhatsApp, now)

	notifier := &fakeNotifier{}
	d := newTestDispatcher(reminderRepo, contestRepo, newFakeProfileRepo(), notifier, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	if result.Failed != 1 || result.Sent != 0 {
		t.Errorf("缺手机号应标failed: %+v", result)
	}
	if reminderRepo.rows[0].Status != model.ReminderFailed {
		t.Errorf("状态应为failed, 实际%s", reminderRepo.rows[0].Status)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("缺手机号不应尝试发送")
	}
}

func TestDispatchWhatsAppSendErrorStillMarkedSent(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	contestRepo := newFakeContestRepo()
	profileRepo := newFakeProfileRepo()
	contestRepo.add(&model.Contest{ID: "c-1", Name: "Round 1", Platform: "CodeForces", ExternalID: "cf-1", StartTime: now.Add(time.Hour)})
	phone := "+8613800138000"
	profileRepo.profiles["u-1"] = &model.Profile{UserID: "u-1", PhoneNumber: &phone}
	seedReminder(reminderRepo, "r-1", "u-1", "c-1", model.ChannelWhatsApp, now)

	notifier := &fakeNotifier{err: errors.New("Twilio超时")}
	d := newTestDispatcher(reminderRepo, contestRepo, profileRepo, notifier, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	// 已尝试发送：不重试，标sent
	if result.Sent != 1 {
		t.Errorf("发送失败也应标sent: %+v", result)
	}
	if reminderRepo.rows[0].Status != model.ReminderSent {
		t.Errorf("状态应为sent, 实际%s", reminderRepo.rows[0].Status)
	}
}

func TestDispatchMissingContestFails(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	reminderRepo := newFakeReminderRepo()
	seedReminder(reminderRepo, "r-1", "u-1", "c-gone", model.ChannelBrowser, now)

	d := newTestDispatcher(reminderRepo, newFakeContestRepo(), newFakeProfileRepo(), &fakeNotifier{}, now)
	result, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("投递失败: %v", err)
	}
	if result.Failed != 1 {
		t.Errorf("赛事缺失应标failed: %+v", result)
	}
	if reminderRepo.rows[0].Status != model.ReminderFailed {
		t.Errorf("状态应为failed, 实际%s", reminderRepo.rows[0].Status)
	}
}

func TestFormatTimeUntil(t *testing.T) {
	cases := []struct {
		until time.Duration
		want  string
	}{
		{150 * time.Minute, "2h 30m"},
		{61 * time.Minute, "1h 1m"},
		{60 * time.Minute, "60 minutes"},
		{45 * time.Minute, "45 minutes"},
		{0, "0 minutes"},
		{-5 * time.Minute, "0 minutes"},
	}
	for _, c := range cases {
		if got := formatTimeUntil(c.until); got != c.want {
			t.Errorf("formatTimeUntil(%s) = %q, 期望 %q", c.until, got, c.want)
		}
	}
}
