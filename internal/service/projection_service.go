package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
)

// ProjectionService 学业推算服务接口
type ProjectionService interface {
	// ProjectCurrent 基于当前课表与假设等级推算本学期 SGPA 与合成 CGPA
	ProjectCurrent(ctx context.Context, userID string, req *dto.CurrentProjectionRequest) (*dto.CurrentProjectionResponse, error)
	// ProjectTarget 推算达成目标 CGPA 所需的未来平均 SGPA
	ProjectTarget(ctx context.Context, userID string, req *dto.TargetProjectionRequest) (*dto.TargetProjectionResponse, error)
	// Distribution 历史成绩按等级分布
	Distribution(ctx context.Context, userID string) (*dto.GradeDistributionResponse, error)
	// CategoryAverages 按学科类别聚合的平均绩点
	CategoryAverages(ctx context.Context, userID string) ([]dto.CategoryAverageResponse, error)
}

type projectionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectionService 创建学业推算服务实例
func NewProjectionService(repo *repository.Repository, logger *zap.Logger) ProjectionService {
	return &projectionService{repo: repo, logger: logger}
}

// priorStanding 读取既有成绩快照；无快照按 (0, 0) 起算
func (s *projectionService) priorStanding(ctx context.Context, userID string) (cgpa, credits float64, err error) {
	snapshot, err := s.repo.Grades.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("查询成绩快照失败: %w", err)
	}
	return snapshot.CGPA, snapshot.TotalCredits, nil
}

func (s *projectionService) ProjectCurrent(ctx context.Context, userID string, req *dto.CurrentProjectionRequest) (*dto.CurrentProjectionResponse, error) {
	priorCGPA, priorCredits, err := s.priorStanding(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 本学期课程集合来自当前课表的目录派生条目
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	codes := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.IsCustom || e.CourseCode == "" || seen[e.CourseCode] {
			continue
		}
		seen[e.CourseCode] = true
		codes = append(codes, e.CourseCode)
	}

	resp := &dto.CurrentProjectionResponse{
		PriorCGPA:     priorCGPA,
		PriorCredits:  priorCredits,
		ProjectedCGPA: priorCGPA,
	}
	if len(codes) == 0 {
		// 课表为空: 无本学期可推算
		return resp, nil
	}

	courses, err := s.repo.Catalog.ListByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("查询课程目录失败: %w", err)
	}

	// 每门课按学分公式折算学分, 假设等级缺省为未给出 → 不计入
	formula := FormulaByName(req.Formula)
	grades := make([]model.Grade, 0, len(courses))
	for _, course := range courses {
		letter, ok := req.HypotheticalGrades[course.CourseCode]
		if !ok {
			continue
		}
		grades = append(grades, model.Grade{
			SubjectCode: course.CourseCode,
			SubjectName: course.Name,
			Credits:     float64(formula(course.LTP)),
			Letter:      letter,
		})
	}

	sgpa, semCredits := ComputeSemesterGPA(grades)
	resp.SGPA = sgpa
	resp.SemesterCredits = semCredits
	resp.ProjectedCGPA = ComputeProjectedCGPA(priorCGPA, priorCredits, sgpa, semCredits)
	resp.Available = semCredits > 0
	return resp, nil
}

func (s *projectionService) ProjectTarget(ctx context.Context, userID string, req *dto.TargetProjectionRequest) (*dto.TargetProjectionResponse, error) {
	priorCGPA, priorCredits, err := s.priorStanding(ctx, userID)
	if err != nil {
		return nil, err
	}

	required, achievable, total := ComputeRequiredFutureSGPA(
		priorCGPA, priorCredits,
		req.TargetCGPA, req.SemestersRemaining, req.AvgCreditsPerSemester,
	)
	return &dto.TargetProjectionResponse{
		RequiredSGPA:          required,
		Achievable:            achievable,
		ProjectedTotalCredits: total,
	}, nil
}

// snapshotSemesters 统计类接口共用：无快照返回 ErrNoGradesData
func (s *projectionService) snapshotSemesters(ctx context.Context, userID string) ([]model.Semester, error) {
	snapshot, err := s.repo.Grades.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoGradesData
		}
		return nil, fmt.Errorf("查询成绩快照失败: %w", err)
	}
	return snapshot.Semesters, nil
}

func (s *projectionService) Distribution(ctx context.Context, userID string) (*dto.GradeDistributionResponse, error) {
	semesters, err := s.snapshotSemesters(ctx, userID)
	if err != nil {
		return nil, err
	}

	buckets := GradeDistribution(semesters)
	resp := &dto.GradeDistributionResponse{Buckets: make([]dto.GradeDistributionBucket, 0, len(buckets))}
	for _, b := range buckets {
		resp.Buckets = append(resp.Buckets, dto.GradeDistributionBucket{
			Letter:  b.Letter,
			Count:   b.Count,
			Courses: b.Courses,
		})
	}
	return resp, nil
}

func (s *projectionService) CategoryAverages(ctx context.Context, userID string) ([]dto.CategoryAverageResponse, error) {
	semesters, err := s.snapshotSemesters(ctx, userID)
	if err != nil {
		return nil, err
	}

	avgs := SubjectCategoryAverages(semesters)
	out := make([]dto.CategoryAverageResponse, 0, len(avgs))
	for _, a := range avgs {
		out = append(out, dto.CategoryAverageResponse{
			Category:      a.Category,
			AveragePoints: a.AveragePoints,
			Courses:       a.Courses,
		})
	}
	return out, nil
}
