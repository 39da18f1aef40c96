package repository

import (
	"context"

	"ContestSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 用户偏好仓储
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.Profile, error)
	// UpsertProfile 按user_id幂等写入（首次保存偏好时建行）
	UpsertProfile(ctx context.Context, p *model.Profile) error
	// ListWithAutoReminders 取所有配置了平台自动订阅的用户
	ListWithAutoReminders(ctx context.Context) ([]*model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.Profile, error) {
	result := make(map[string]*model.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []*model.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

func (r *profileRepository) UpsertProfile(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "phone_number", "reminder_offsets", "notification_channels",
			"auto_reminder_platforms", "preferred_platforms",
			"rating_codeforces", "rating_codechef", "rating_leetcode", "updated_at",
		}),
	}).Create(p).Error
}

func (r *profileRepository) ListWithAutoReminders(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	// JSON列存的是数组，文本形态排除空数组/null即可
	if err := r.db.WithContext(ctx).
		Where("auto_reminder_platforms IS NOT NULL").
		Where("auto_reminder_platforms::text NOT IN ('[]', 'null')").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
