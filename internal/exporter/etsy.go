package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"listing_export_v1/internal/model"
)

// Etsy 批量上传文件最多 10 列图片
const etsyMaxImageColumns = 10

// EtsyExporter Etsy 批量上传 CSV 策略
type EtsyExporter struct{}

func (e *EtsyExporter) Validate(view *ResolvedListingView, channel *model.Channel) *ValidationResult {
	return Validate(view, channel.Rules)
}

// Generate 生成 Etsy 批量上传 CSV
// 列结构对齐 Etsy 卖家后台的 listings 批量文件
func (e *EtsyExporter) Generate(view *ResolvedListingView, channel *model.Channel) (*ExportArtifact, error) {
	header := []string{
		"TITLE", "DESCRIPTION", "PRICE", "CURRENCY_CODE", "QUANTITY",
		"TAGS", "MATERIALS", "CATEGORY",
	}
	for i := 1; i <= etsyMaxImageColumns; i++ {
		header = append(header, fmt.Sprintf("IMAGE%d", i))
	}
	header = append(header, "VIDEO_URL")

	row := []string{
		view.Title,
		view.Description,
		formatPrice(view.Price),
		view.CurrencyCode,
		strconv.Itoa(view.Quantity),
		strings.Join(view.Tags, ","),
		strings.Join(view.Materials, ","),
		view.Category,
	}
	for i := 0; i < etsyMaxImageColumns; i++ {
		if i < len(view.ImageURLs) {
			row = append(row, view.ImageURLs[i])
		} else {
			row = append(row, "")
		}
	}
	row = append(row, view.VideoURL)

	content, err := writeCSV([][]string{header, row})
	if err != nil {
		return nil, fmt.Errorf("生成 Etsy CSV 失败: %v", err)
	}

	return &ExportArtifact{
		FileName:    flatFileName(channel.Slug),
		Content:     content,
		ContentType: "text/csv",
	}, nil
}

func (e *EtsyExporter) PreflightChecks(view *ResolvedListingView, channel *model.Channel) []PreflightCheck {
	checks := buildCommonChecks(view, channel.Rules)

	// Etsy 搜索权重依赖材质字段，缺省给出提示
	materialsCheck := PreflightCheck{
		Name:        "materials",
		Status:      PreflightPass,
		Description: "材质已填写（影响 Etsy 搜索权重）",
	}
	if len(view.Materials) == 0 {
		materialsCheck.Status = PreflightWarning
		materialsCheck.Detail = "未填写材质，建议补充以提升搜索曝光"
	}
	checks = append(checks, materialsCheck)

	return checks
}
