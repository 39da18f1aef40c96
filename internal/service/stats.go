package service

import (
	"context"
	"fmt"
	"time"

	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// MonthlyStats 用户月度统计
type MonthlyStats struct {
	Month          string  `json:"month"` // "2026-09"
	RemindersSent  int64   `json:"reminders_sent"`
	Participations int64   `json:"participations"`
	AttendanceRate float64 `json:"attendance_rate"` // participations / reminders_sent
}

// AdminStats 管理端看板汇总
type AdminStats struct {
	TotalContests    int64            `json:"total_contests"`
	RemindersByState map[string]int64 `json:"reminders_by_state"`
}

// StatsService 统计聚合
type StatsService struct {
	contestRepo    repository.ContestRepository
	reminderRepo   repository.ReminderRepository
	submissionRepo repository.SubmissionRepository
	logger         *logrus.Logger
}

func NewStatsService(
	contestRepo repository.ContestRepository,
	reminderRepo repository.ReminderRepository,
	submissionRepo repository.SubmissionRepository,
	logger *logrus.Logger,
) *StatsService {
	return &StatsService{
		contestRepo:    contestRepo,
		reminderRepo:   reminderRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// MonthlyFor 计算用户指定月份（"2026-09"格式，空取当月）的出勤统计
func (s *StatsService) MonthlyFor(ctx context.Context, userID, month string) (*MonthlyStats, error) {
	var from time.Time
	if month == "" {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		from, err = time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("月份格式非法（需YYYY-MM）: %s", month)
		}
	}
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	sent, err := s.reminderRepo.CountSentInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	participated, err := s.submissionRepo.CountInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{
		Month:          from.Format("2006-01"),
		RemindersSent:  sent,
		Participations: participated,
	}
	if sent > 0 {
		stats.AttendanceRate = float64(participated) / float64(sent)
	}
	return stats, nil
}

// AdminOverview 管理端看板：赛事总量 + 各状态提醒计数
func (s *StatsService) AdminOverview(ctx context.Context) (*AdminStats, error) {
	total, err := s.contestRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byState, err := s.reminderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalContests:    total,
		RemindersByState: byState,
	}, nil
}
