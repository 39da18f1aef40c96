package service

import (
	"context"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReminderScheduler 订阅时刻的提醒实例生成器
// 提前量 × 已开启渠道 做笛卡尔积；落库后即固化，
// 用户之后改偏好不回溯已生成的行
type ReminderScheduler struct {
	reminderRepo repository.ReminderRepository
	logger       *logrus.Logger
}

func NewReminderScheduler(reminderRepo repository.ReminderRepository, logger *logrus.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		reminderRepo: reminderRepo,
		logger:       logger,
	}
}

// BuildReminders 纯计算部分：给定用户偏好与赛事，算出应生成的提醒实例
// 触发时刻已过去的组合直接丢弃（比赛快开始时部分提前量生不出行，属预期）
func BuildReminders(profile *model.Profile, contest *model.Contest, now time.Time) []*model.Reminder {
	channels := profile.EnabledChannels()
	if len(channels) == 0 {
		// 全关时兜底浏览器渠道，保证订阅至少有提醒可投
		channels = []string{model.ChannelBrowser}
	}

	var reminders []*model.Reminder
	for _, offset := range profile.Offsets() {
		reminderTime := contest.StartTime.Add(-time.Duration(offset) * time.Minute)
		if !reminderTime.After(now) {
			continue
		}
		for _, channel := range channels {
			reminders = append(reminders, &model.Reminder{
				UserID:       profile.UserID,
				ContestID:    contest.ID,
				ReminderTime: reminderTime.UTC(),
				Channel:      channel,
				Status:       model.ReminderPending,
			})
		}
	}
	return reminders
}

// ScheduleFor 计算并批量落库，撞唯一键的行静默跳过（重复订阅幂等）
func (s *ReminderScheduler) ScheduleFor(ctx context.Context, profile *model.Profile, contest *model.Contest) ([]*model.Reminder, error) {
	reminders := BuildReminders(profile, contest, time.Now())
	if len(reminders) == 0 {
		s.logger.WithFields(logrus.Fields{
			"user_id":    profile.UserID,
			"contest_id": contest.ID,
		}).Info("所有提前量均已过期，本次订阅不生成提醒")
		return reminders, nil
	}
	if err := s.reminderRepo.InsertIgnoreDuplicates(ctx, reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}
