package dto

// ── 校园动态模块 DTO ──

// CampusUpdateListRequest 动态列表查询参数
type CampusUpdateListRequest struct {
	Category string `form:"category" binding:"omitempty,max=50"`
	PaginationRequest
}

// CampusUpdateResponse 校园动态响应
type CampusUpdateResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
	Link      string `json:"link,omitempty"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// FetchUpdatesResponse 手动触发抓取响应
type FetchUpdatesResponse struct {
	Fetched int `json:"fetched"` // AI 返回条数
	Stored  int `json:"stored"`  // 实际新增条数（去重后）
}
