package model

import "time"

// ==================== 数据库模型 ====================

// ExportLog 导出日志（只追加，不更新）
type ExportLog struct {
	ID           string    `gorm:"primaryKey;size:36;comment:日志ID(UUID)"`
	CreatedAt    time.Time `gorm:"index"`
	ListingID    int64     `gorm:"index;not null;comment:刊登ID"`
	ChannelID    int64     `gorm:"index;not null;comment:渠道ID"`
	ChannelSlug  string    `gorm:"size:32;comment:渠道标识"`
	Format       string    `gorm:"size:16;comment:导出格式"`
	FileName     string    `gorm:"size:255;comment:导出文件名"`
	Success      bool      `gorm:"comment:是否成功"`
	ErrorMessage string    `gorm:"size:1024;comment:失败原因"`
	Score        int       `gorm:"comment:就绪评分"`
}

func (*ExportLog) TableName() string {
	return "export_logs"
}
