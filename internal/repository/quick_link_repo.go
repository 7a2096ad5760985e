package repository

import (
	"context"

	"gorm.io/gorm"

	"college-central/backend/internal/model"
)

// QuickLinkRepository 快捷链接数据访问接口
type QuickLinkRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.QuickLink, error)
	GetByID(ctx context.Context, linkID string) (*model.QuickLink, error)
	Create(ctx context.Context, link *model.QuickLink) error
	Delete(ctx context.Context, linkID string) error
}

type quickLinkRepo struct {
	db *gorm.DB
}

// NewQuickLinkRepo 创建 QuickLinkRepository 实例
func NewQuickLinkRepo(db *gorm.DB) QuickLinkRepository {
	return &quickLinkRepo{db: db}
}

func (r *quickLinkRepo) ListByUser(ctx context.Context, userID string) ([]model.QuickLink, error) {
	var links []model.QuickLink
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, created_at ASC").
		Find(&links).Error
	return links, err
}

func (r *quickLinkRepo) GetByID(ctx context.Context, linkID string) (*model.QuickLink, error) {
	var link model.QuickLink
	err := r.db.WithContext(ctx).Where("link_id = ?", linkID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *quickLinkRepo) Create(ctx context.Context, link *model.QuickLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *quickLinkRepo) Delete(ctx context.Context, linkID string) error {
	return r.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Delete(&model.QuickLink{}).Error
}
