package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"listing_export_v1/internal/repository"
)

// ==================== ExportLogTask 导出日志清理任务 ====================

// ExportLogTask 定期清理过期导出日志
// 日志表只追加，不清理会无限增长
type ExportLogTask struct {
	logRepo       repository.ExportLogRepository
	logger        *zap.Logger
	cron          *cron.Cron
	retentionDays int
}

// NewExportLogTask 创建日志清理任务
func NewExportLogTask(logRepo repository.ExportLogRepository, logger *zap.Logger, retentionDays int) *ExportLogTask {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &ExportLogTask{
		logRepo:       logRepo,
		logger:        logger,
		cron:          cron.New(cron.WithSeconds()),
		retentionDays: retentionDays,
	}
}

// Start 启动定时任务
func (t *ExportLogTask) Start() {
	// 定时策略：每天凌晨 3 点执行
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.execute(ctx)
	})

	if err != nil {
		t.logger.Fatal("无法启动日志清理任务", zap.Error(err))
	}

	t.cron.Start()
	t.logger.Info("导出日志清理任务已启动",
		zap.Int("retention_days", t.retentionDays),
	)
}

// Stop 停止任务
func (t *ExportLogTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("导出日志清理任务已停止")
}

// execute 执行一次清理
func (t *ExportLogTask) execute(ctx context.Context) {
	before := time.Now().AddDate(0, 0, -t.retentionDays)
	deleted, err := t.logRepo.DeleteBefore(ctx, before)
	if err != nil {
		t.logger.Error("清理导出日志失败", zap.Error(err))
		return
	}
	if deleted > 0 {
		t.logger.Info("清理过期导出日志",
			zap.Int64("deleted", deleted),
			zap.Time("before", before),
		)
	}
}
