package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"college-central/backend/internal/model"
)

// CampusUpdateRepository 校园动态数据访问接口
type CampusUpdateRepository interface {
	List(ctx context.Context, category string, offset, limit int) ([]model.CampusUpdate, int64, error)
	ListLatest(ctx context.Context, limit int) ([]model.CampusUpdate, error)
	// InsertIgnoreDuplicate 按 (title, date) 去重插入；已存在返回 false
	InsertIgnoreDuplicate(ctx context.Context, update *model.CampusUpdate) (bool, error)
}

type campusUpdateRepo struct {
	db *gorm.DB
}

// NewCampusUpdateRepo 创建 CampusUpdateRepository 实例
func NewCampusUpdateRepo(db *gorm.DB) CampusUpdateRepository {
	return &campusUpdateRepo{db: db}
}

func (r *campusUpdateRepo) List(ctx context.Context, category string, offset, limit int) ([]model.CampusUpdate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.CampusUpdate{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []model.CampusUpdate
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&updates).Error
	return updates, total, err
}

func (r *campusUpdateRepo) ListLatest(ctx context.Context, limit int) ([]model.CampusUpdate, error) {
	var updates []model.CampusUpdate
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Find(&updates).Error
	return updates, err
}

func (r *campusUpdateRepo) InsertIgnoreDuplicate(ctx context.Context, update *model.CampusUpdate) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(update)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
