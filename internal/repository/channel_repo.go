package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"listing_export_v1/internal/model"
)

// ==================== 仓储接口 ====================

// ChannelRepository 渠道仓储接口
type ChannelRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Channel, error)
	GetBySlug(ctx context.Context, slug string) (*model.Channel, error)
	ListAll(ctx context.Context) ([]model.Channel, error)
	EnsureSeeded(ctx context.Context, defaults []model.Channel) error
}

// ChannelListingRepository 渠道刊登关联仓储接口
type ChannelListingRepository interface {
	GetByListingAndChannel(ctx context.Context, listingID, channelID int64) (*model.ChannelListing, error)
	TouchExportedAt(ctx context.Context, listingID, channelID int64, at time.Time) error
}

// ==================== Channel 仓储实现 ====================

type channelRepo struct {
	db *gorm.DB
}

// NewChannelRepository 创建渠道仓储
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepo{db: db}
}

func (r *channelRepo) GetByID(ctx context.Context, id int64) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepo) GetBySlug(ctx context.Context, slug string) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepo) ListAll(ctx context.Context) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&channels).Error
	return channels, err
}

// EnsureSeeded 播种缺失的内置渠道（已存在的不覆盖，允许运维手工调规则）
func (r *channelRepo) EnsureSeeded(ctx context.Context, defaults []model.Channel) error {
	for _, ch := range defaults {
		var existing model.Channel
		err := r.db.WithContext(ctx).Where("slug = ?", ch.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created := ch
		if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
			return err
		}
	}
	return nil
}

// ==================== ChannelListing 仓储实现 ====================

type channelListingRepo struct {
	db *gorm.DB
}

// NewChannelListingRepository 创建渠道刊登关联仓储
func NewChannelListingRepository(db *gorm.DB) ChannelListingRepository {
	return &channelListingRepo{db: db}
}

func (r *channelListingRepo) GetByListingAndChannel(ctx context.Context, listingID, channelID int64) (*model.ChannelListing, error) {
	var cl model.ChannelListing
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND channel_id = ?", listingID, channelID).
		First(&cl).Error
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// TouchExportedAt 更新导出时间戳（幂等；关联不存在时补一条裸关联）
func (r *channelListingRepo) TouchExportedAt(ctx context.Context, listingID, channelID int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.ChannelListing{}).
		Where("listing_id = ? AND channel_id = ?", listingID, channelID).
		Update("exported_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	cl := model.ChannelListing{
		ListingID:  listingID,
		ChannelID:  channelID,
		ExportedAt: &at,
	}
	return r.db.WithContext(ctx).Create(&cl).Error
}
