package service

import (
	"context"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// AutoSubscriber 平台级自动订阅：同步完成后，把新入库的赛事
// 按用户的 auto_reminder_platforms 扇出成订阅+提醒
type AutoSubscriber struct {
	profileRepo  repository.ProfileRepository
	subRepo      repository.SubscriptionRepository
	reminderRepo repository.ReminderRepository
	logger       *logrus.Logger
}

func NewAutoSubscriber(
	profileRepo repository.ProfileRepository,
	subRepo repository.SubscriptionRepository,
	reminderRepo repository.ReminderRepository,
	logger *logrus.Logger,
) *AutoSubscriber {
	return &AutoSubscriber{
		profileRepo:  profileRepo,
		subRepo:      subRepo,
		reminderRepo: reminderRepo,
		logger:       logger,
	}
}

// AutoSubscribe 入参须是upsert后带权威id的赛事行
// 订阅与提醒都是撞唯一键跳过的幂等写入，重复同步不会翻倍；
// 单个用户失败只记日志不中断其他用户
func (a *AutoSubscriber) AutoSubscribe(ctx context.Context, contests []*model.Contest) error {
	if len(contests) == 0 {
		return nil
	}

	profiles, err := a.profileRepo.ListWithAutoReminders(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return nil
	}

	now := time.Now()
	var subscribed int
	for _, profile := range profiles {
		wanted := make(map[string]bool)
		for _, key := range profile.AutoPlatforms() {
			wanted[key] = true
		}
		if len(wanted) == 0 {
			continue
		}

		for _, contest := range contests {
			// 展示名→key走固定映射表，表外平台不参与自动订阅
			key, ok := model.PlatformKey(contest.Platform)
			if !ok || !wanted[key] {
				continue
			}

			if err := a.subRepo.InsertIgnore(ctx, &model.Subscription{
				UserID:    profile.UserID,
				ContestID: contest.ID,
			}); err != nil {
				a.logger.WithError(err).WithFields(logrus.Fields{
					"user_id":    profile.UserID,
					"contest_id": contest.ID,
				}).Warn("自动订阅写入失败，跳过该场")
				continue
			}

			reminders := BuildReminders(profile, contest, now)
			if err := a.reminderRepo.InsertIgnoreDuplicates(ctx, reminders); err != nil {
				a.logger.WithError(err).WithFields(logrus.Fields{
					"user_id":    profile.UserID,
					"contest_id": contest.ID,
				}).Warn("自动订阅提醒写入失败")
				continue
			}
			subscribed++
		}
	}

	a.logger.WithFields(logrus.Fields{
		"profiles":      len(profiles),
		"subscriptions": subscribed,
	}).Info("自动订阅扇出完成")
	return nil
}
