package service

import (
	"context"
	"fmt"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// 投递前瞻窗口：每轮把 now+5m 之前到期的pending提醒全部出队
const dispatchLookahead = 5 * time.Minute

// DispatchResult 一轮投递的对外结果
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// ReminderDispatcher 到期提醒投递器
// 浏览器/邮件渠道是交付给外部推送层的占位：本服务只负责把行标成
// sent，实际推送由前端轮询/邮件worker各自消费。whatsapp走Notifier
// 真发，发送失败也标sent（至多一次语义，防止坏号码每轮重发）
type ReminderDispatcher struct {
	reminderRepo repository.ReminderRepository
	contestRepo  repository.ContestRepository
	profileRepo  repository.ProfileRepository
	notifier     interfaces.Notifier
	logger       *logrus.Logger
	now          func() time.Time // 可注入时钟，测试用
}

func NewReminderDispatcher(
	reminderRepo repository.ReminderRepository,
	contestRepo repository.ContestRepository,
	profileRepo repository.ProfileRepository,
	notifier interfaces.Notifier,
	logger *logrus.Logger,
) *ReminderDispatcher {
	return &ReminderDispatcher{
		reminderRepo: reminderRepo,
		contestRepo:  contestRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Dispatch 执行一轮投递：出队→批量回查赛事和用户→逐条处理
// 单条失败只标failed并继续，一条坏数据不能卡住整个队列
func (d *ReminderDispatcher) Dispatch(ctx context.Context) (*DispatchResult, error) {
	now := d.now()
	due, err := d.reminderRepo.ListDue(ctx, now.Add(dispatchLookahead))
	if err != nil {
		return nil, fmt.Errorf("到期提醒出队失败: %w", err)
	}

	result := &DispatchResult{Total: len(due)}
	if len(due) == 0 {
		return result, nil
	}

	contests, profiles, err := d.loadRefs(ctx, due)
	if err != nil {
		return nil, err
	}

	for _, rem := range due {
		if d.dispatchOne(ctx, rem, contests[rem.ContestID], profiles[rem.UserID], now) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	d.logger.WithFields(logrus.Fields{
		"total":  result.Total,
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("提醒投递轮次完成")
	return result, nil
}

// loadRefs 批量回查本轮涉及的赛事与用户偏好，避免逐条查库
func (d *ReminderDispatcher) loadRefs(ctx context.Context, due []*model.Reminder) (map[string]*model.Contest, map[string]*model.Profile, error) {
	contestIDs := make([]string, 0, len(due))
	userIDs := make([]string, 0, len(due))
	seenContest := make(map[string]bool)
	seenUser := make(map[string]bool)
	for _, rem := range due {
		if !seenContest[rem.ContestID] {
			seenContest[rem.ContestID] = true
			contestIDs = append(contestIDs, rem.ContestID)
		}
		if !seenUser[rem.UserID] {
			seenUser[rem.UserID] = true
			userIDs = append(userIDs, rem.UserID)
		}
	}

	contests, err := d.contestRepo.GetByIDs(ctx, contestIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("投递回查赛事失败: %w", err)
	}
	profiles, err := d.profileRepo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("投递回查用户失败: %w", err)
	}
	return contests, profiles, nil
}

// dispatchOne 处理单条提醒，返回是否标记为sent
func (d *ReminderDispatcher) dispatchOne(ctx context.Context, rem *model.Reminder, contest *model.Contest, profile *model.Profile, now time.Time) bool {
	log := d.logger.WithFields(logrus.Fields{
		"reminder_id": rem.ID,
		"channel":     rem.Channel,
	})

	// 赛事已被留存清理删掉，提醒作废
	if contest == nil {
		log.Warn("提醒指向的赛事不存在，标记失败")
		d.markStatus(ctx, rem.ID, model.ReminderFailed)
		return false
	}

	switch rem.Channel {
	case model.ChannelWhatsApp:
		if profile == nil || profile.PhoneNumber == nil || *profile.PhoneNumber == "" {
			log.Warn("用户未配置手机号，whatsapp提醒标记失败")
			d.markStatus(ctx, rem.ID, model.ReminderFailed)
			return false
		}
		timeUntil := "Starts in " + formatTimeUntil(contest.StartTime.Sub(now))
		if err := d.notifier.Send(ctx, rem.Channel, *profile.PhoneNumber, contest.Name, contest.Platform, timeUntil); err != nil {
			// 发送尝试之后不回滚成failed：号码可达性问题重发也无益
			log.WithError(err).Warn("whatsapp发送失败")
		}
		d.markStatus(ctx, rem.ID, model.ReminderSent)
		return true

	case model.ChannelBrowser, model.ChannelEmail:
		// 标sent即交付，消费方各自拉取
		d.markStatus(ctx, rem.ID, model.ReminderSent)
		return true

	default:
		log.Warn("未知提醒渠道，标记失败")
		d.markStatus(ctx, rem.ID, model.ReminderFailed)
		return false
	}
}

func (d *ReminderDispatcher) markStatus(ctx context.Context, id, status string) {
	if err := d.reminderRepo.UpdateStatus(ctx, id, status); err != nil {
		d.logger.WithError(err).WithField("reminder_id", id).Error("提醒状态更新失败")
	}
}

// formatTimeUntil 把距开赛时长格式化成提醒文案用的人类可读形式
// 超过一小时显示 "2h 30m"，否则显示 "45 minutes"
func formatTimeUntil(until time.Duration) string {
	minutes := int(until.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
