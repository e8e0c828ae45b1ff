package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"listing_export_v1/internal/controller"
	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/middleware"
	"listing_export_v1/internal/model"
	"listing_export_v1/internal/repository"
	"listing_export_v1/internal/router"
	"listing_export_v1/internal/service"
	"listing_export_v1/internal/task"
	"listing_export_v1/pkg/config"
	"listing_export_v1/pkg/database"
	"listing_export_v1/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志
	zapLogger, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zapLogger.Sync()

	// 3. JWT 配置
	jwtCfg := middleware.DefaultJWTConfig()
	if cfg.JWTSecret != "" {
		jwtCfg.SecretKey = cfg.JWTSecret
	}
	middleware.SetJWTConfig(jwtCfg)

	// 4. 初始化数据库
	db := initDatabase(cfg)

	// 5. 初始化依赖
	deps := initDependencies(db, cfg, zapLogger)

	// 6. 播种内置渠道目录
	if err := deps.Services.Channel.EnsureDefaults(context.Background()); err != nil {
		zapLogger.Fatal("渠道目录播种失败", zap.Error(err))
	}

	// 7. 启动定时任务
	deps.LogTask.Start()
	defer deps.LogTask.Stop()

	// 8. 初始化路由
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers.Export, deps.Controllers.Channel)

	// 9. 启动服务
	startServer(r, cfg.ServerPort, zapLogger)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	LogTask     *task.ExportLogTask
}

// Repositories 仓库集合
type Repositories struct {
	Listing        repository.ListingRepository
	Channel        repository.ChannelRepository
	ChannelListing repository.ChannelListingRepository
	ExportLog      repository.ExportLogRepository
}

// Services 服务集合
type Services struct {
	Package *service.PackageService
	Export  *service.ExportService
	Channel *service.ChannelService
}

// Controllers 控制器集合
type Controllers struct {
	Export  *controller.ExportController
	Channel *controller.ChannelController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN, cfg.Debug,
		// Listing
		&model.Listing{}, &model.ListingImage{},
		// Channel
		&model.Channel{}, &model.ChannelListing{},
		// Log
		&model.ExportLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config, zapLogger *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Listing:        repository.NewListingRepository(db),
		Channel:        repository.NewChannelRepository(db),
		ChannelListing: repository.NewChannelListingRepository(db),
		ExportLog:      repository.NewExportLogRepository(db),
	}

	// -------- 业务服务 --------
	registry := exporter.NewRegistry()
	packageSvc := service.NewPackageService(zapLogger, cfg.DownloadTimeout)
	services := &Services{
		Package: packageSvc,
		Export: service.NewExportService(
			repos.Listing, repos.Channel, repos.ChannelListing, repos.ExportLog,
			registry, packageSvc, zapLogger,
		),
		Channel: service.NewChannelService(repos.Channel, zapLogger),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Export:  controller.NewExportController(services.Export),
		Channel: controller.NewChannelController(services.Channel),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		LogTask:     task.NewExportLogTask(repos.ExportLog, zapLogger, cfg.LogRetentionDays),
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string, zapLogger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		zapLogger.Info("服务启动", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("服务强制关闭", zap.Error(err))
	}

	zapLogger.Info("服务已退出")
}
