package repository

import (
	"context"
	"time"

	"ContestSync/internal/model"

	"gorm.io/gorm"
)

// SyncLogRepository 同步审计日志仓储，只追加 + 关闭running行两种写入
type SyncLogRepository interface {
	Create(ctx context.Context, log *model.SyncLog) error
	// Close 收尾running行：写入终态、同步数与错误信息
	Close(ctx context.Context, id, status string, contestsSynced int, errorMessage *string) error
	ListRecent(ctx context.Context, limit int) ([]*model.SyncLog, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) Create(ctx context.Context, log *model.SyncLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *syncLogRepository) Close(ctx context.Context, id, status string, contestsSynced int, errorMessage *string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.SyncLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"contests_synced": contestsSynced,
			"error_message":   errorMessage,
			"completed_at":    &now,
		}).Error
}

func (r *syncLogRepository) ListRecent(ctx context.Context, limit int) ([]*model.SyncLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var logs []*model.SyncLog
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
