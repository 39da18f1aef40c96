package repository

import (
	"context"

	"ContestSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository 订阅关系仓储
type SubscriptionRepository interface {
	// InsertIgnore 幂等建订阅，撞 (user_id, contest_id) 唯一键时静默跳过
	InsertIgnore(ctx context.Context, sub *model.Subscription) error
	Delete(ctx context.Context, userID, contestID string) error
	ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) InsertIgnore(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "contest_id"}},
		DoNothing: true,
	}).Create(sub).Error
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, contestID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND contest_id = ?", userID, contestID).
		Delete(&model.Subscription{}).Error
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
