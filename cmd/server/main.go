package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"college-central/backend/config"
	"college-central/backend/internal/api/handler"
	"college-central/backend/internal/api/router"
	"college-central/backend/internal/repository"
	"college-central/backend/internal/service"
	"college-central/backend/pkg/database"
	"college-central/backend/pkg/genai"
	"college-central/backend/pkg/jwt"
	applogger "college-central/backend/pkg/logger"
	"college-central/backend/pkg/redis"
	"college-central/backend/pkg/weather"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与天气缓存将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器与外部客户端
	jwtMgr := jwt.NewManager(&cfg.Auth)
	aiClient := genai.NewClient(&cfg.GenAI, logger)
	weatherClient := weather.NewClient(&cfg.Weather, logger)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, aiClient, weatherClient, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 校园动态后台定时抓取
	fetchCtx, stopFetcher := context.WithCancel(context.Background())
	defer stopFetcher()
	if cfg.Updates.Enabled {
		go runUpdatesFetcher(fetchCtx, svc.Updates, cfg.Updates.Interval, logger)
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	stopFetcher()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// runUpdatesFetcher 周期性触发校园动态抓取，直到 ctx 取消。
// 启动后立即抓取一次，之后按 interval 重复；单次失败只记日志不退出。
func runUpdatesFetcher(ctx context.Context, svc service.UpdatesService, interval time.Duration, logger *zap.Logger) {
	logger.Info("校园动态定时抓取已启用", zap.Duration("interval", interval))

	fetch := func() {
		fctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		result, err := svc.FetchAndStore(fctx)
		if err != nil {
			logger.Warn("校园动态抓取失败", zap.Error(err))
			return
		}
		logger.Info("校园动态抓取完成",
			zap.Int("fetched", result.Fetched),
			zap.Int("stored", result.Stored),
		)
	}

	fetch()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("校园动态定时抓取已停止")
			return
		case <-ticker.C:
			fetch()
		}
	}
}
