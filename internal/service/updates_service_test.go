package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/dto"
)

// mockGenerator 固定返回预设文本的文本生成器
type mockGenerator struct {
	output string
	err    error
}

func (m *mockGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return m.output, m.err
}

func newTestUpdatesService(t *testing.T, generator *mockGenerator) UpdatesService {
	t.Helper()
	cfg := &config.UpdatesConfig{Institution: "IIT (ISM) Dhanbad"}
	return NewUpdatesService(newMockRepository(), generator, cfg, zap.NewNop())
}

const sampleUpdates = `[
  {"title":"Mid-semester exam schedule released","date":"2026-02-10","summary":"Exams start Feb 24.","link":"https://example.edu/notices/1","category":"exam"},
  {"title":"Srijan 2026 registrations open","date":"2026-02-08","summary":"Annual cultural fest.","link":"","category":"fest"},
  {"title":"","date":"2026-02-01","summary":"无标题应被丢弃","link":"","category":"general"}
]`

func TestUpdatesFetchAndStore(t *testing.T) {
	svc := newTestUpdatesService(t, &mockGenerator{output: "```json\n" + sampleUpdates + "\n```"})
	ctx := context.Background()

	resp, err := svc.FetchAndStore(ctx)
	if err != nil {
		t.Fatalf("抓取失败: %v", err)
	}
	if resp.Fetched != 3 || resp.Stored != 2 {
		t.Fatalf("期望 fetched=3 stored=2, 实际 %+v", resp)
	}

	// 再次抓取同样内容: (title, date) 去重, 不新增
	resp, err = svc.FetchAndStore(ctx)
	if err != nil {
		t.Fatalf("重复抓取失败: %v", err)
	}
	if resp.Stored != 0 {
		t.Errorf("重复抓取不应新增, 实际 stored=%d", resp.Stored)
	}

	list, _, err := svc.List(ctx, &dto.CampusUpdateListRequest{})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条动态, 实际 %d", len(list))
	}
	// 未知类别归 general
	for _, u := range list {
		if u.Title == "Srijan 2026 registrations open" && u.Category != "general" {
			t.Errorf("未知类别应归 general, 实际 %q", u.Category)
		}
	}
}

func TestUpdatesFetchFailures(t *testing.T) {
	ctx := context.Background()

	svc := newTestUpdatesService(t, &mockGenerator{err: errors.New("调用超时")})
	if _, err := svc.FetchAndStore(ctx); !errors.Is(err, ErrUpdatesFetchFailed) {
		t.Errorf("AI 失败应折叠为 ErrUpdatesFetchFailed, 实际 %v", err)
	}

	svc = newTestUpdatesService(t, &mockGenerator{output: "这不是 JSON"})
	if _, err := svc.FetchAndStore(ctx); !errors.Is(err, ErrUpdatesFetchFailed) {
		t.Errorf("不可解析输出应折叠为 ErrUpdatesFetchFailed, 实际 %v", err)
	}
}

func TestUpdatesListFilterAndPagination(t *testing.T) {
	svc := newTestUpdatesService(t, &mockGenerator{output: sampleUpdates})
	ctx := context.Background()

	if _, err := svc.FetchAndStore(ctx); err != nil {
		t.Fatalf("抓取失败: %v", err)
	}

	list, pag, err := svc.List(ctx, &dto.CampusUpdateListRequest{Category: "exam"})
	if err != nil {
		t.Fatalf("筛选查询失败: %v", err)
	}
	if len(list) != 1 || pag.Total != 1 {
		t.Errorf("exam 类别期望 1 条, 实际 %d (total=%d)", len(list), pag.Total)
	}

	latest, err := svc.Latest(ctx, 1)
	if err != nil {
		t.Fatalf("最新动态查询失败: %v", err)
	}
	if len(latest) != 1 {
		t.Errorf("期望 1 条最新动态, 实际 %d", len(latest))
	}
}
