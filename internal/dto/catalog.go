package dto

// ── 课程目录 DTO ──

// MeetingSlotResponse 目录课程每周时段
type MeetingSlotResponse struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
	Venue string `json:"venue"`
}

// CatalogCourseResponse 目录课程响应
type CatalogCourseResponse struct {
	CourseCode  string                `json:"course_code"`
	Name        string                `json:"name"`
	LTP         string                `json:"ltp"`
	CreditsCBCS int                   `json:"credits_cbcs"`
	CreditsNEP  int                   `json:"credits_nep"`
	Slots       []MeetingSlotResponse `json:"slots"`
}
