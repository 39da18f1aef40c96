package repository

import (
	"context"
	"time"

	"ContestSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderRepository 提醒实例仓储
type ReminderRepository interface {
	// InsertIgnoreDuplicates 批量写入，撞唯一键
	// (user_id, contest_id, reminder_time, channel) 时静默跳过
	InsertIgnoreDuplicates(ctx context.Context, reminders []*model.Reminder) error
	// ListDue 取 reminder_time <= before 的pending提醒，按时间升序
	ListDue(ctx context.Context, before time.Time) ([]*model.Reminder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// DeletePending 退订时清理该用户该赛事未投递的提醒
	DeletePending(ctx context.Context, userID, contestID string) error
	// CountByStatus 按状态统计全量提醒（管理端看板用）
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// CountSentInRange 统计用户某时间段内已投递提醒数（月度统计用）
	CountSentInRange(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) InsertIgnoreDuplicates(ctx context.Context, reminders []*model.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "contest_id"},
			{Name: "reminder_time"}, {Name: "channel"},
		},
		DoNothing: true,
	}).Create(&reminders).Error
}

func (r *reminderRepository) ListDue(ctx context.Context, before time.Time) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_time <= ?", model.ReminderPending, before).
		Order("reminder_time ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *reminderRepository) DeletePending(ctx context.Context, userID, contestID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND contest_id = ? AND status = ?", userID, contestID, model.ReminderPending).
		Delete(&model.Reminder{}).Error
}

func (r *reminderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Total
	}
	return result, nil
}

func (r *reminderRepository) CountSentInRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("user_id = ? AND status = ?", userID, model.ReminderSent).
		Where("reminder_time >= ? AND reminder_time <= ?", from, to).
		Count(&total).Error
	return total, err
}
