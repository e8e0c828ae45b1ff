package repository

import (
	"context"

	"gorm.io/gorm"

	"listing_export_v1/internal/model"
)

// ==================== 仓储接口 ====================

// ListingRepository 刊登仓储接口
// 本子系统对刊登内容只读，写入发生在上游编辑模块
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建刊登仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC, id ASC")
		}).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
