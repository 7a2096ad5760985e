package dto

// ── 仪表盘模块 DTO ──

// WeatherResponse 当前天气响应
type WeatherResponse struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	WeatherCode int     `json:"weather_code"`
	Cached      bool    `json:"cached"`
}

// CreateReminderRequest 创建提醒请求
type CreateReminderRequest struct {
	Text  string `json:"text"   binding:"required,max=500"`
	DueAt string `json:"due_at" binding:"omitempty"` // RFC3339
}

// UpdateReminderRequest 更新提醒请求
type UpdateReminderRequest struct {
	Text  *string `json:"text"  binding:"omitempty,max=500"`
	Done  *bool   `json:"done"`
	DueAt *string `json:"due_at"`
}

// ReminderResponse 提醒响应
type ReminderResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	DueAt     string `json:"due_at,omitempty"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

// CreateQuickLinkRequest 创建快捷链接请求
type CreateQuickLinkRequest struct {
	Label    string `json:"label"    binding:"required,max=100"`
	URL      string `json:"url"      binding:"required,url,max=500"`
	Position int    `json:"position" binding:"omitempty,min=0"`
}

// QuickLinkResponse 快捷链接响应
type QuickLinkResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}
