package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"college-central/backend/internal/model"
)

// GradesRepository 成绩快照数据访问接口
// 快照为整体替换/整体删除，不做局部更新
type GradesRepository interface {
	GetByUser(ctx context.Context, userID string) (*model.GradesSnapshot, error)
	// Replace 整体写入快照（upsert：存在即覆盖）
	Replace(ctx context.Context, snapshot *model.GradesSnapshot) error
	DeleteByUser(ctx context.Context, userID string) error
}

type gradesRepo struct {
	db *gorm.DB
}

// NewGradesRepo 创建 GradesRepository 实例
func NewGradesRepo(db *gorm.DB) GradesRepository {
	return &gradesRepo{db: db}
}

func (r *gradesRepo) GetByUser(ctx context.Context, userID string) (*model.GradesSnapshot, error) {
	var snapshot model.GradesSnapshot
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *gradesRepo) Replace(ctx context.Context, snapshot *model.GradesSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(snapshot).Error
}

func (r *gradesRepo) DeleteByUser(ctx context.Context, userID string) error {
	// 删除不存在的快照视为已删除，不报错
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.GradesSnapshot{}).Error
}
