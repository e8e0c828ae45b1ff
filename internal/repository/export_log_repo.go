package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"listing_export_v1/internal/model"
)

// ==================== 仓储接口 ====================

// ExportLogRepository 导出日志仓储接口（只追加）
type ExportLogRepository interface {
	Append(ctx context.Context, entry *model.ExportLog) error
	ListByListing(ctx context.Context, listingID int64, limit int) ([]model.ExportLog, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 仓储实现 ====================

type exportLogRepo struct {
	db *gorm.DB
}

// NewExportLogRepository 创建导出日志仓储
func NewExportLogRepository(db *gorm.DB) ExportLogRepository {
	return &exportLogRepo{db: db}
}

func (r *exportLogRepo) Append(ctx context.Context, entry *model.ExportLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *exportLogRepo) ListByListing(ctx context.Context, listingID int64, limit int) ([]model.ExportLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var logs []model.ExportLog
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// DeleteBefore 清理过期日志，返回删除条数
func (r *exportLogRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.ExportLog{})
	return result.RowsAffected, result.Error
}
