package dto

import (
	"encoding/base64"
	"time"

	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/model"
)

// ==================== 请求 DTO ====================

// GenerateExportRequest 生成导出请求
// Format 缺省为 flat
type GenerateExportRequest struct {
	ListingID int64  `json:"listing_id" binding:"required,min=1"`
	Channel   string `json:"channel" binding:"required"`
	Format    string `json:"format" binding:"omitempty,oneof=flat document package"`
}

// PreflightRequest 预检请求（query 绑定）
type PreflightRequest struct {
	ListingID int64  `form:"listing_id" binding:"required,min=1"`
	Channel   string `form:"channel" binding:"required"`
}

// ListExportLogsRequest 导出历史请求（query 绑定）
type ListExportLogsRequest struct {
	ListingID int64 `form:"listing_id" binding:"required,min=1"`
	Limit     int   `form:"limit,default=50"`
}

// ==================== 响应 DTO ====================

// ExportFileVO 导出文件视图对象，内容走 base64
type ExportFileVO struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Encoding    string `json:"encoding"` // 固定 base64
	Content     string `json:"content"`
	SizeBytes   int    `json:"size_bytes"`
}

// ValidationVO 校验结论视图对象
type ValidationVO struct {
	IsReady  bool     `json:"is_ready"`
	Score    int      `json:"score"`
	Band     string   `json:"band"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ExportResponse 导出响应
type ExportResponse struct {
	File       *ExportFileVO `json:"file"`
	Validation *ValidationVO `json:"validation"`
}

// PreflightCheckVO 预检项视图对象
type PreflightCheckVO struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Detail      string `json:"detail,omitempty"`
}

// PreflightResponse 预检响应
type PreflightResponse struct {
	Checks     []PreflightCheckVO `json:"checks"`
	Validation *ValidationVO      `json:"validation"`
}

// ChannelVO 渠道视图对象
type ChannelVO struct {
	ID             int64  `json:"id"`
	Slug           string `json:"slug"`
	DisplayName    string `json:"display_name"`
	FormatCategory string `json:"format_category"`
	TitleMaxLen    int    `json:"title_max_len"`
	TagsMax        int    `json:"tags_max"`
	MinImages      int    `json:"min_images"`
}

// ExportLogVO 导出日志视图对象
type ExportLogVO struct {
	ID           string `json:"id"`
	ListingID    int64  `json:"listing_id"`
	ChannelSlug  string `json:"channel_slug"`
	Format       string `json:"format"`
	FileName     string `json:"file_name,omitempty"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
	Score        int    `json:"score"`
	CreatedAt    string `json:"created_at"`
}

// ==================== 转换函数 ====================

// NewExportFileVO 产物转视图对象
func NewExportFileVO(artifact *exporter.ExportArtifact) *ExportFileVO {
	return &ExportFileVO{
		FileName:    artifact.FileName,
		ContentType: artifact.ContentType,
		Encoding:    "base64",
		Content:     base64.StdEncoding.EncodeToString(artifact.Content),
		SizeBytes:   len(artifact.Content),
	}
}

// NewValidationVO 校验结果转视图对象
func NewValidationVO(v *exporter.ValidationResult) *ValidationVO {
	if v == nil {
		return nil
	}
	return &ValidationVO{
		IsReady:  v.IsReady,
		Score:    v.Score,
		Band:     v.Band,
		Errors:   v.Errors,
		Warnings: v.Warnings,
	}
}

// NewPreflightCheckVOs 预检清单转视图对象
func NewPreflightCheckVOs(checks []exporter.PreflightCheck) []PreflightCheckVO {
	vos := make([]PreflightCheckVO, 0, len(checks))
	for _, check := range checks {
		vos = append(vos, PreflightCheckVO{
			Name:        check.Name,
			Status:      check.Status,
			Description: check.Description,
			Detail:      check.Detail,
		})
	}
	return vos
}

// NewChannelVO 渠道模型转视图对象
func NewChannelVO(ch *model.Channel) ChannelVO {
	return ChannelVO{
		ID:             ch.ID,
		Slug:           ch.Slug,
		DisplayName:    ch.DisplayName,
		FormatCategory: ch.FormatCategory,
		TitleMaxLen:    ch.Rules.TitleMaxLen,
		TagsMax:        ch.Rules.TagsMax,
		MinImages:      ch.Rules.MinImages,
	}
}

// NewExportLogVO 日志模型转视图对象
func NewExportLogVO(log *model.ExportLog) ExportLogVO {
	return ExportLogVO{
		ID:           log.ID,
		ListingID:    log.ListingID,
		ChannelSlug:  log.ChannelSlug,
		Format:       log.Format,
		FileName:     log.FileName,
		Success:      log.Success,
		ErrorMessage: log.ErrorMessage,
		Score:        log.Score,
		CreatedAt:    log.CreatedAt.Format(time.RFC3339),
	}
}
