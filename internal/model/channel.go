package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 常量 ====================

const (
	// 渠道导出格式类别
	ChannelFormatFlat     = "flat"     // 批量上传平面文件
	ChannelFormatDocument = "document" // 格式化文档
)

// ==================== 规则类型 ====================

// ChannelRules 渠道内容规则（JSON 列）
// 规则只是数据，渠道相关的行为逻辑在 exporter 层
type ChannelRules struct {
	TitleMaxLen           int  `json:"title_max_len"`
	DescriptionMaxLen     int  `json:"description_max_len"`
	TagsMin               int  `json:"tags_min"`
	TagsMax               int  `json:"tags_max"`
	TagMaxLen             int  `json:"tag_max_len"`
	BulletCount           int  `json:"bullet_count"`
	BulletShortfallBlocks bool `json:"bullet_shortfall_blocks"` // 要点不足按阻断处理
	MinImages             int  `json:"min_images"`
}

func (r ChannelRules) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *ChannelRules) Scan(value interface{}) error {
	if value == nil {
		*r = ChannelRules{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, okStr := value.(string)
		if !okStr {
			return errors.New("type assertion to []byte failed")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, r)
}

// ==================== 数据库模型 ====================

// Channel 目标渠道（平台）定义
type Channel struct {
	ID             int64        `gorm:"primaryKey;autoIncrement"`
	CreatedAt      time.Time    `gorm:"index"`
	UpdatedAt      time.Time    `gorm:"index"`
	Slug           string       `gorm:"size:32;uniqueIndex;not null;comment:渠道标识"`
	DisplayName    string       `gorm:"size:64;comment:展示名称"`
	FormatCategory string       `gorm:"size:16;default:flat;comment:导出格式类别"`
	Rules          ChannelRules `gorm:"type:json;comment:内容规则"`
}

func (*Channel) TableName() string {
	return "channels"
}

// ChannelListing 渠道与刊登的关联，承载渠道级覆盖（delta，不是完整拷贝）
type ChannelListing struct {
	ID           int64                       `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time                   `gorm:"index"`
	UpdatedAt    time.Time                   `gorm:"index"`
	DeletedAt    gorm.DeletedAt              `gorm:"index"`
	ListingID    int64                       `gorm:"index:idx_listing_channel,unique;not null;comment:刊登ID"`
	ChannelID    int64                       `gorm:"index:idx_listing_channel,unique;not null;comment:渠道ID"`
	ChannelSlug  string                      `gorm:"size:32;comment:渠道标识(诊断用)"`
	Title        string                      `gorm:"size:255;comment:标题覆盖"`
	Description  string                      `gorm:"type:text;comment:描述覆盖"`
	Tags         datatypes.JSONSlice[string] `gorm:"comment:标签"`
	Bullets      datatypes.JSONSlice[string] `gorm:"comment:卖点要点"`
	Materials    datatypes.JSONSlice[string] `gorm:"comment:材质覆盖"`
	PriceAmount  int64                       `gorm:"comment:价格覆盖(分); 0 表示无覆盖"`
	CustomFields JSONMap                     `gorm:"type:json;comment:渠道自定义字段"`
	ExportedAt   *time.Time                  `gorm:"comment:最近导出时间"`
}

func (*ChannelListing) TableName() string {
	return "channel_listings"
}

// ==================== 默认渠道目录 ====================

// DefaultChannels 内置渠道目录，首次启动时播种
// 规则值对齐各平台批量上传规范
func DefaultChannels() []Channel {
	return []Channel{
		{
			Slug:           "etsy",
			DisplayName:    "Etsy",
			FormatCategory: ChannelFormatFlat,
			Rules: ChannelRules{
				TitleMaxLen:       140,
				DescriptionMaxLen: 10000,
				TagsMin:           1,
				TagsMax:           13,
				TagMaxLen:         20,
				MinImages:         1,
			},
		},
		{
			Slug:           "shopify",
			DisplayName:    "Shopify",
			FormatCategory: ChannelFormatFlat,
			Rules: ChannelRules{
				TitleMaxLen:       255,
				DescriptionMaxLen: 65535,
				TagsMax:           250,
				TagMaxLen:         255,
				MinImages:         1,
			},
		},
		{
			Slug:           "facebook",
			DisplayName:    "Facebook Marketplace",
			FormatCategory: ChannelFormatFlat,
			Rules: ChannelRules{
				TitleMaxLen:       150,
				DescriptionMaxLen: 5000,
				TagsMax:           20,
				TagMaxLen:         50,
				MinImages:         1,
			},
		},
		{
			Slug:           "instagram",
			DisplayName:    "Instagram Shopping",
			FormatCategory: ChannelFormatFlat,
			Rules: ChannelRules{
				TitleMaxLen:       150,
				DescriptionMaxLen: 5000,
				TagsMax:           30,
				TagMaxLen:         50,
				MinImages:         1,
			},
		},
		{
			Slug:           "ebay",
			DisplayName:    "eBay",
			FormatCategory: ChannelFormatFlat,
			Rules: ChannelRules{
				TitleMaxLen:       80,
				DescriptionMaxLen: 500000,
				TagsMax:           0, // eBay 无标签概念
				MinImages:         1,
			},
		},
		{
			Slug:           "amazon",
			DisplayName:    "Amazon",
			FormatCategory: ChannelFormatDocument,
			Rules: ChannelRules{
				TitleMaxLen:           200,
				DescriptionMaxLen:     2000,
				TagsMax:               5, // search terms
				TagMaxLen:             50,
				BulletCount:           5,
				BulletShortfallBlocks: true, // Amazon 模板缺要点直接拒收
				MinImages:             1,
			},
		},
	}
}
