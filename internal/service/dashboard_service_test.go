package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/dto"
	apperrors "college-central/backend/pkg/errors"
	"college-central/backend/pkg/weather"
)

// mockWeatherFetcher 固定返回预设天气的获取器
type mockWeatherFetcher struct {
	current *weather.Current
	err     error
	calls   int
}

func (m *mockWeatherFetcher) FetchCurrent(_ context.Context) (*weather.Current, error) {
	m.calls++
	return m.current, m.err
}

func newTestDashboardService(t *testing.T, fetcher *mockWeatherFetcher) DashboardService {
	t.Helper()
	// rdb 传 nil: 直连降级路径
	return NewDashboardService(newMockRepository(), fetcher, nil, &config.WeatherConfig{}, zap.NewNop())
}

func TestDashboardWeather(t *testing.T) {
	fetcher := &mockWeatherFetcher{current: &weather.Current{
		Temperature: 31.4, Humidity: 62, WindSpeed: 9.7, WeatherCode: 2,
	}}
	svc := newTestDashboardService(t, fetcher)

	resp, err := svc.Weather(context.Background())
	if err != nil {
		t.Fatalf("天气查询失败: %v", err)
	}
	if resp.Temperature != 31.4 || resp.WeatherCode != 2 {
		t.Errorf("天气数据不符: %+v", resp)
	}
	if resp.Cached {
		t.Errorf("无缓存时 Cached 应为 false")
	}

	fetcher.err = errors.New("上游超时")
	fetcher.current = nil
	if _, err := svc.Weather(context.Background()); !errors.Is(err, apperrors.ErrExternalService) {
		t.Errorf("上游失败期望 ErrExternalService, 实际 %v", err)
	}
}

func TestDashboardReminders(t *testing.T) {
	svc := newTestDashboardService(t, &mockWeatherFetcher{})
	ctx := context.Background()

	created, err := svc.CreateReminder(ctx, "user-1", &dto.CreateReminderRequest{
		Text: "交热力学作业", DueAt: "2026-09-01T18:00:00+05:30",
	})
	if err != nil {
		t.Fatalf("创建提醒失败: %v", err)
	}
	if created.Text != "交热力学作业" || created.DueAt == "" {
		t.Errorf("提醒内容不符: %+v", created)
	}

	// 非法截止时间
	if _, err := svc.CreateReminder(ctx, "user-1", &dto.CreateReminderRequest{
		Text: "x", DueAt: "明天下午",
	}); err == nil {
		t.Errorf("非法截止时间应校验失败")
	}

	done := true
	updated, err := svc.UpdateReminder(ctx, "user-1", created.ID, &dto.UpdateReminderRequest{Done: &done})
	if err != nil {
		t.Fatalf("更新提醒失败: %v", err)
	}
	if !updated.Done {
		t.Errorf("提醒应标记完成")
	}

	// 越权: 其他用户操作同一提醒
	if _, err := svc.UpdateReminder(ctx, "user-2", created.ID, &dto.UpdateReminderRequest{Done: &done}); !errors.Is(err, ErrReminderNotFound) {
		t.Errorf("越权更新期望 ErrReminderNotFound, 实际 %v", err)
	}
	if err := svc.DeleteReminder(ctx, "user-2", created.ID); !errors.Is(err, ErrReminderNotFound) {
		t.Errorf("越权删除期望 ErrReminderNotFound, 实际 %v", err)
	}

	if err := svc.DeleteReminder(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("删除提醒失败: %v", err)
	}
	list, _ := svc.ListReminders(ctx, "user-1")
	if len(list) != 0 {
		t.Errorf("删除后提醒列表应为空, 实际 %d", len(list))
	}
}

func TestDashboardQuickLinks(t *testing.T) {
	svc := newTestDashboardService(t, &mockWeatherFetcher{})
	ctx := context.Background()

	link, err := svc.CreateQuickLink(ctx, "user-1", &dto.CreateQuickLinkRequest{
		Label: "Parent Portal", URL: "https://parent.example.edu", Position: 1,
	})
	if err != nil {
		t.Fatalf("创建快捷链接失败: %v", err)
	}

	list, err := svc.ListQuickLinks(ctx, "user-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("期望 1 条快捷链接, 实际 %d (err=%v)", len(list), err)
	}

	if err := svc.DeleteQuickLink(ctx, "user-2", link.ID); !errors.Is(err, ErrQuickLinkNotFound) {
		t.Errorf("越权删除期望 ErrQuickLinkNotFound, 实际 %v", err)
	}
	if err := svc.DeleteQuickLink(ctx, "user-1", link.ID); err != nil {
		t.Fatalf("删除快捷链接失败: %v", err)
	}
}
