package repository

import (
	"context"
	"time"

	"ContestSync/internal/model"

	"gorm.io/gorm"
)

// SubmissionRepository 参赛记录仓储（月度出勤统计用）
type SubmissionRepository interface {
	CountInRange(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CountInRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ?", userID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&total).Error
	return total, err
}
