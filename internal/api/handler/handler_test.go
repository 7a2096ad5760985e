package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"college-central/backend/internal/dto"
	"college-central/backend/internal/service"
	apperrors "college-central/backend/pkg/errors"
	"college-central/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.RegisterResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserDetailResponse
	meErr          error
	changePassErr  error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *dto.LogoutRequest) error {
	return m.logoutErr
}
func (m *mockAuthService) GetMe(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	getResult    *dto.ScheduleResponse
	getErr       error
	applyResult  *dto.ScheduleResponse
	applyErr     error
	upsertResult *dto.ScheduleMutationResponse
	upsertErr    error
	dupResult    *dto.ScheduleMutationResponse
	dupErr       error
	deleteErr    error
	taskResult   *dto.ScheduleMutationResponse
	taskErr      error
	resetResult  *dto.ScheduleResponse
	resetErr     error
	clearResult  *dto.ScheduleResponse
	clearErr     error
	creditsRes   *dto.TotalCreditsResponse
	creditsErr   error
}

func (m *mockScheduleService) GetSchedule(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) ApplyCourseSelection(_ context.Context, _ string, _ *dto.ApplyCourseSelectionRequest) (*dto.ScheduleResponse, error) {
	return m.applyResult, m.applyErr
}
func (m *mockScheduleService) UpsertEntry(_ context.Context, _, _ string, _ *dto.UpsertEntryRequest) (*dto.ScheduleMutationResponse, error) {
	return m.upsertResult, m.upsertErr
}
func (m *mockScheduleService) DuplicateEntry(_ context.Context, _, _ string, _ *dto.DuplicateEntryRequest) (*dto.ScheduleMutationResponse, error) {
	return m.dupResult, m.dupErr
}
func (m *mockScheduleService) DeleteEntry(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockScheduleService) CreateCustomTask(_ context.Context, _ string, _ *dto.CreateCustomTaskRequest) (*dto.ScheduleMutationResponse, error) {
	return m.taskResult, m.taskErr
}
func (m *mockScheduleService) ResetToCatalog(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.resetResult, m.resetErr
}
func (m *mockScheduleService) ClearCustomTasks(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.clearResult, m.clearErr
}
func (m *mockScheduleService) TotalCredits(_ context.Context, _, _ string) (*dto.TotalCreditsResponse, error) {
	return m.creditsRes, m.creditsErr
}

// ── Mock GradesService ──

type mockGradesService struct {
	uploadResult *dto.GradesSnapshotResponse
	uploadErr    error
	getResult    *dto.GradesSnapshotResponse
	getErr       error
	resetErr     error
}

func (m *mockGradesService) Upload(_ context.Context, _ string, _ []byte, _ string) (*dto.GradesSnapshotResponse, error) {
	return m.uploadResult, m.uploadErr
}
func (m *mockGradesService) Get(_ context.Context, _ string) (*dto.GradesSnapshotResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockGradesService) Reset(_ context.Context, _ string) error {
	return m.resetErr
}

// ── 测试辅助 ──

// authedContext 构造注入了 user_id 的测试上下文
func performJSON(t *testing.T, handlerFn gin.HandlerFunc, method, path string, body interface{}, authed bool, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if authed {
		c.Set("user_id", "test-user-1")
	}

	handlerFn(c)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v (body=%s)", err, w.Body.String())
	}
	return &resp
}

// ═══════════════════════════════════════════════════════════
// 测试用例
// ═══════════════════════════════════════════════════════════

func TestAuthHandlerLogin(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt"},
	})

	w := performJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{RollNumber: "20JE0001", Password: "password123"}, false)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeResponse(t, w); resp.Code != 0 {
		t.Errorf("期望业务码 0, 实际 %d", resp.Code)
	}
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	// 参数缺失
	h := NewAuthHandler(&mockAuthService{})
	w := performJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"roll_number": "20JE0001"}, false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少密码期望 400, 实际 %d", w.Code)
	}

	// 凭证错误 → 11001
	h = NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
	w = performJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{RollNumber: "20JE0001", Password: "wrong"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401, 实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 11001 {
		t.Errorf("期望业务码 11001, 实际 %d", resp.Code)
	}
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrRollNumberExists})
	w := performJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register",
		dto.RegisterRequest{RollNumber: "20JE0001", Name: "Aarav", Email: "a@example.edu", Password: "password123"}, false)
	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409, 实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 11002 {
		t.Errorf("期望业务码 11002, 实际 %d", resp.Code)
	}
}

func TestScheduleHandlerUpsert(t *testing.T) {
	// 冲突未确认: 200 + saved=false
	h := NewScheduleHandler(&mockScheduleService{
		upsertResult: &dto.ScheduleMutationResponse{
			Saved:     false,
			Conflicts: []dto.ConflictResponse{{SlotID: "other", Title: "Organic Chemistry"}},
		},
	})
	w := performJSON(t, h.UpsertEntry, http.MethodPut, "/api/v1/schedule/entries/s1",
		dto.UpsertEntryRequest{Day: "Monday", StartTime: "08:00", EndTime: "08:50", Venue: "LC-101"},
		true, gin.Param{Key: "slot_id", Value: "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d: %s", w.Code, w.Body.String())
	}

	// 条目不存在 → 404 / 13001
	h = NewScheduleHandler(&mockScheduleService{upsertErr: service.ErrEntryNotFound})
	w = performJSON(t, h.UpsertEntry, http.MethodPut, "/api/v1/schedule/entries/s1",
		dto.UpsertEntryRequest{Day: "Monday", StartTime: "08:00", EndTime: "08:50", Venue: "LC-101"},
		true, gin.Param{Key: "slot_id", Value: "s1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404, 实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 13001 {
		t.Errorf("期望业务码 13001, 实际 %d", resp.Code)
	}

	// 字段校验失败 → 400 + details
	h = NewScheduleHandler(&mockScheduleService{
		upsertErr: apperrors.NewValidation(apperrors.FieldErrors{"end_time": "结束时间必须晚于开始时间"}),
	})
	w = performJSON(t, h.UpsertEntry, http.MethodPut, "/api/v1/schedule/entries/s1",
		dto.UpsertEntryRequest{Day: "Monday", StartTime: "09:00", EndTime: "08:00", Venue: "LC-101"},
		true, gin.Param{Key: "slot_id", Value: "s1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400, 实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 10001 || resp.Details == nil {
		t.Errorf("期望业务码 10001 且携带字段详情, 实际 %+v", resp)
	}
}

func TestScheduleHandlerUnauthenticated(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})
	w := performJSON(t, h.GetSchedule, http.MethodGet, "/api/v1/schedule", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未注入 user_id 期望 401, 实际 %d", w.Code)
	}
}

func TestGradesHandlerGet(t *testing.T) {
	h := NewGradesHandler(&mockGradesService{getErr: service.ErrNoGradesData})
	w := performJSON(t, h.Get, http.MethodGet, "/api/v1/grades", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("无数据期望 404, 实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 14001 {
		t.Errorf("期望业务码 14001, 实际 %d", resp.Code)
	}

	h = NewGradesHandler(&mockGradesService{getResult: &dto.GradesSnapshotResponse{CGPA: 8.5}})
	w = performJSON(t, h.Get, http.MethodGet, "/api/v1/grades", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
}
