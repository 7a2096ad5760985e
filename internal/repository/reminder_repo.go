package repository

import (
	"context"

	"gorm.io/gorm"

	"college-central/backend/internal/model"
)

// ReminderRepository 提醒事项数据访问接口
type ReminderRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Reminder, error)
	GetByID(ctx context.Context, reminderID string) (*model.Reminder, error)
	Create(ctx context.Context, reminder *model.Reminder) error
	Update(ctx context.Context, reminder *model.Reminder) error
	Delete(ctx context.Context, reminderID string) error
}

type reminderRepo struct {
	db *gorm.DB
}

// NewReminderRepo 创建 ReminderRepository 实例
func NewReminderRepo(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) ListByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("done ASC, due_at ASC NULLS LAST, created_at DESC").
		Find(&reminders).Error
	return reminders, err
}

func (r *reminderRepo) GetByID(ctx context.Context, reminderID string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := r.db.WithContext(ctx).Where("reminder_id = ?", reminderID).First(&reminder).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepo) Create(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepo) Update(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *reminderRepo) Delete(ctx context.Context, reminderID string) error {
	return r.db.WithContext(ctx).
		Where("reminder_id = ?", reminderID).
		Delete(&model.Reminder{}).Error
}
