package service

import (
	"context"
	"errors"
	"fmt"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// SubscriptionService 手动订阅/退订编排
type SubscriptionService struct {
	contestRepo  repository.ContestRepository
	profileRepo  repository.ProfileRepository
	subRepo      repository.SubscriptionRepository
	reminderRepo repository.ReminderRepository
	scheduler    *ReminderScheduler
	logger       *logrus.Logger
}

func NewSubscriptionService(
	contestRepo repository.ContestRepository,
	profileRepo repository.ProfileRepository,
	subRepo repository.SubscriptionRepository,
	reminderRepo repository.ReminderRepository,
	scheduler *ReminderScheduler,
	logger *logrus.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		contestRepo:  contestRepo,
		profileRepo:  profileRepo,
		subRepo:      subRepo,
		reminderRepo: reminderRepo,
		scheduler:    scheduler,
		logger:       logger,
	}
}

// Subscribe 建订阅并按当前偏好生成提醒实例
// 用户还没存过偏好时按默认偏好生成（helper层兜底），重复订阅幂等
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, contestID string) ([]*model.Reminder, error) {
	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("赛事不存在: %s", contestID)
		}
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile = &model.Profile{UserID: userID}
	}

	if err := s.subRepo.InsertIgnore(ctx, &model.Subscription{
		UserID:    userID,
		ContestID: contest.ID,
	}); err != nil {
		return nil, fmt.Errorf("订阅写入失败: %w", err)
	}

	reminders, err := s.scheduler.ScheduleFor(ctx, profile, contest)
	if err != nil {
		return nil, fmt.Errorf("提醒生成失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"contest_id": contestID,
		"reminders":  len(reminders),
	}).Info("订阅完成")
	return reminders, nil
}

// Unsubscribe 删订阅并清掉该赛事未投递的提醒，已投递的历史保留
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, contestID string) error {
	if err := s.subRepo.Delete(ctx, userID, contestID); err != nil {
		return fmt.Errorf("退订失败: %w", err)
	}
	if err := s.reminderRepo.DeletePending(ctx, userID, contestID); err != nil {
		return fmt.Errorf("退订清理提醒失败: %w", err)
	}
	return nil
}

// ListForUser 列出用户全部订阅
func (s *SubscriptionService) ListForUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	return s.subRepo.ListByUser(ctx, userID)
}
