package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
)

// ErrCourseNotFound 目录课程不存在
var ErrCourseNotFound = errors.New("课程不存在")

// CatalogService 课程目录服务接口（只读参考数据）
type CatalogService interface {
	List(ctx context.Context) ([]dto.CatalogCourseResponse, error)
	GetByCode(ctx context.Context, courseCode string) (*dto.CatalogCourseResponse, error)
}

type catalogService struct {
	repo *repository.Repository
}

// NewCatalogService 创建课程目录服务实例
func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{repo: repo}
}

func toCatalogResponse(course *model.CourseCatalogEntry) dto.CatalogCourseResponse {
	resp := dto.CatalogCourseResponse{
		CourseCode:  course.CourseCode,
		Name:        course.Name,
		LTP:         course.LTP,
		CreditsCBCS: CreditsCBCS(course.LTP),
		CreditsNEP:  CreditsNEP(course.LTP),
		Slots:       make([]dto.MeetingSlotResponse, 0, len(course.Slots)),
	}
	for _, slot := range course.Slots {
		resp.Slots = append(resp.Slots, dto.MeetingSlotResponse{
			Day:   slot.Day,
			Start: slot.Start,
			End:   slot.End,
			Venue: slot.Venue,
		})
	}
	return resp
}

func (s *catalogService) List(ctx context.Context) ([]dto.CatalogCourseResponse, error) {
	courses, err := s.repo.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询课程目录失败: %w", err)
	}
	out := make([]dto.CatalogCourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, toCatalogResponse(&courses[i]))
	}
	return out, nil
}

func (s *catalogService) GetByCode(ctx context.Context, courseCode string) (*dto.CatalogCourseResponse, error) {
	course, err := s.repo.Catalog.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("查询课程目录失败: %w", err)
	}
	resp := toCatalogResponse(course)
	return &resp, nil
}
