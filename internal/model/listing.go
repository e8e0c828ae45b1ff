package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 数据库模型 ====================

// Listing 基础刊登内容（渠道无关）
// 由上游编辑器/向导模块写入，本子系统只读
type Listing struct {
	ID           int64                       `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time                   `gorm:"index"`
	UpdatedAt    time.Time                   `gorm:"index"`
	DeletedAt    gorm.DeletedAt              `gorm:"index"`
	UserID       int64                       `gorm:"index;not null;comment:用户ID"`
	Title        string                      `gorm:"size:255;comment:商品标题"`
	Description  string                      `gorm:"type:text;comment:商品描述"`
	PriceAmount  int64                       `gorm:"comment:价格(分)"`
	PriceDivisor int64                       `gorm:"default:100;comment:价格除数"`
	CurrencyCode string                      `gorm:"size:3;default:USD;comment:货币代码"`
	Quantity     int                         `gorm:"default:1;comment:库存数量"`
	Category     string                      `gorm:"size:128;comment:商品类目"`
	Materials    datatypes.JSONSlice[string] `gorm:"comment:材质"`
	VideoURL     string                      `gorm:"size:2048;comment:视频URL"`

	// 关联
	Images []ListingImage `gorm:"foreignKey:ListingID"`
}

func (*Listing) TableName() string {
	return "listings"
}

// ListingImage 刊登图片引用
type ListingImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ListingID int64  `gorm:"index;not null;comment:刊登ID"`
	URL       string `gorm:"size:2048;not null;comment:图片URL"`
	AltText   string `gorm:"size:255;comment:替代文本"`
	Rank      int    `gorm:"comment:排序"`
}

func (*ListingImage) TableName() string {
	return "listing_images"
}

// ==================== 辅助方法 ====================

// GetPrice 获取价格（浮点数）
func (l *Listing) GetPrice() float64 {
	if l.PriceDivisor == 0 {
		l.PriceDivisor = 100
	}
	return float64(l.PriceAmount) / float64(l.PriceDivisor)
}

// ImageURLs 按排序返回图片URL列表
func (l *Listing) ImageURLs() []string {
	urls := make([]string, 0, len(l.Images))
	for _, img := range l.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
