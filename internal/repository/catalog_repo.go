package repository

import (
	"context"

	"gorm.io/gorm"

	"college-central/backend/internal/model"
)

// CatalogRepository 课程目录数据访问接口（只读参考数据）
type CatalogRepository interface {
	List(ctx context.Context) ([]model.CourseCatalogEntry, error)
	GetByCode(ctx context.Context, courseCode string) (*model.CourseCatalogEntry, error)
	ListByCodes(ctx context.Context, courseCodes []string) ([]model.CourseCatalogEntry, error)
}

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo 创建 CatalogRepository 实例
func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) List(ctx context.Context) ([]model.CourseCatalogEntry, error) {
	var courses []model.CourseCatalogEntry
	err := r.db.WithContext(ctx).Order("course_code ASC").Find(&courses).Error
	return courses, err
}

func (r *catalogRepo) GetByCode(ctx context.Context, courseCode string) (*model.CourseCatalogEntry, error) {
	var course model.CourseCatalogEntry
	err := r.db.WithContext(ctx).Where("course_code = ?", courseCode).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *catalogRepo) ListByCodes(ctx context.Context, courseCodes []string) ([]model.CourseCatalogEntry, error) {
	if len(courseCodes) == 0 {
		return nil, nil
	}
	var courses []model.CourseCatalogEntry
	err := r.db.WithContext(ctx).
		Where("course_code IN ?", courseCodes).
		Order("course_code ASC").
		Find(&courses).Error
	return courses, err
}
