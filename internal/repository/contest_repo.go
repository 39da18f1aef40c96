package repository

import (
	"context"
	"time"

	"ContestSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 统一的未命中错误，service层用 errors.Is 判断
var ErrNotFound = gorm.ErrRecordNotFound

// ContestFilter 赛事列表筛选条件
type ContestFilter struct {
	Platform     string // 平台展示名
	FeaturedOnly bool
	From         *time.Time // 开赛时间起（列表页传now只看未来场次）
}

// ContestRepository 规范赛事仓储
type ContestRepository interface {
	// UpsertContests 按 (platform, external_id) 幂等批量写入，
	// 冲突时只更新可变字段，重复同步不产生新行
	UpsertContests(ctx context.Context, contests []*model.Contest) error
	// ListByExternalIDs 按external_id批量回查（upsert后取权威id用）
	ListByExternalIDs(ctx context.Context, externalIDs []string) ([]*model.Contest, error)
	// DeleteStartedBefore 留存清理：删除开赛早于cutoff的行，返回删除数
	DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListContests(ctx context.Context, filter ContestFilter, page, pageSize int) ([]*model.Contest, int64, error)
	GetByID(ctx context.Context, id string) (*model.Contest, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Contest, error)
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type contestRepository struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) ContestRepository {
	return &contestRepository{db: db}
}

func (r *contestRepository) UpsertContests(ctx context.Context, contests []*model.Contest) error {
	if len(contests) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "url", "start_time", "duration", "updated_at"}),
	}).Create(&contests).Error
}

func (r *contestRepository) ListByExternalIDs(ctx context.Context, externalIDs []string) ([]*model.Contest, error) {
	if len(externalIDs) == 0 {
		return []*model.Contest{}, nil
	}
	var contests []*model.Contest
	if err := r.db.WithContext(ctx).
		Where("external_id IN ?", externalIDs).
		Find(&contests).Error; err != nil {
		return nil, err
	}
	return contests, nil
}

func (r *contestRepository) DeleteStartedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("start_time < ?", cutoff).
		Delete(&model.Contest{})
	return res.RowsAffected, res.Error
}

func (r *contestRepository) ListContests(ctx context.Context, filter ContestFilter, page, pageSize int) ([]*model.Contest, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Contest{})
	if filter.Platform != "" {
		db = db.Where("platform = ?", filter.Platform)
	}
	if filter.FeaturedOnly {
		db = db.Where("is_featured = ?", true)
	}
	if filter.From != nil {
		db = db.Where("start_time >= ?", *filter.From)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []*model.Contest
	if err := db.
		Order("start_time ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contests).Error; err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

func (r *contestRepository) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	var c model.Contest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contestRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Contest, error) {
	result := make(map[string]*model.Contest, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var contests []*model.Contest
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&contests).Error; err != nil {
		return nil, err
	}
	for _, c := range contests {
		result[c.ID] = c
	}
	return result, nil
}

func (r *contestRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	res := r.db.WithContext(ctx).Model(&model.Contest{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contest{}).Error
}

func (r *contestRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Contest{}).Count(&total).Error
	return total, err
}
