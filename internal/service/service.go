package service

import (
	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/repository"
	"college-central/backend/pkg/genai"
	"college-central/backend/pkg/jwt"
	"college-central/backend/pkg/redis"
	"college-central/backend/pkg/weather"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Catalog    CatalogService
	Schedule   ScheduleService
	Grades     GradesService
	Projection ProjectionService
	Dashboard  DashboardService
	Updates    UpdatesService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	aiClient *genai.Client,
	weatherClient *weather.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, &cfg.Auth, logger),
		Catalog:    NewCatalogService(repo),
		Schedule:   NewScheduleService(repo, logger),
		Grades:     NewGradesService(repo, aiClient, logger),
		Projection: NewProjectionService(repo, logger),
		Dashboard:  NewDashboardService(repo, weatherClient, rdb, &cfg.Weather, logger),
		Updates:    NewUpdatesService(repo, aiClient, &cfg.Updates, logger),
		Export:     NewExportService(repo, logger),
	}
}
