package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"listing_export_v1/internal/model"

	"listing_export_v1/pkg/utils"
)

// ShopifyExporter Shopify 商品 CSV 策略
// facebook / instagram 的商品目录文件与其同构，注册表中三个 slug 复用本实现
type ShopifyExporter struct{}

func (e *ShopifyExporter) Validate(view *ResolvedListingView, channel *model.Channel) *ValidationResult {
	return Validate(view, channel.Rules)
}

// Generate 生成 Shopify 商品 CSV
// 首行为完整商品信息，每张额外图片追加一行只带 Handle 和 Image Src
func (e *ShopifyExporter) Generate(view *ResolvedListingView, channel *model.Channel) (*ExportArtifact, error) {
	header := []string{
		"Handle", "Title", "Body (HTML)", "Vendor", "Type", "Tags",
		"Published", "Variant Price", "Variant Inventory Qty",
		"Image Src", "Image Alt Text",
	}

	handle := utils.SanitizeFilename(view.Title)
	vendor := ""
	if v, ok := view.CustomFields["vendor"]; ok {
		vendor = fmt.Sprint(v)
	}

	firstImage := ""
	if len(view.ImageURLs) > 0 {
		firstImage = view.ImageURLs[0]
	}

	rows := [][]string{header, {
		handle,
		view.Title,
		view.Description,
		vendor,
		view.Category,
		strings.Join(view.Tags, ", "),
		"TRUE",
		formatPrice(view.Price),
		strconv.Itoa(view.Quantity),
		firstImage,
		view.Title,
	}}

	if len(view.ImageURLs) > 1 {
		for _, imageURL := range view.ImageURLs[1:] {
			rows = append(rows, []string{
				handle, "", "", "", "", "", "", "", "", imageURL, "",
			})
		}
	}

	content, err := writeCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("生成 Shopify CSV 失败: %v", err)
	}

	return &ExportArtifact{
		FileName:    flatFileName(channel.Slug),
		Content:     content,
		ContentType: "text/csv",
	}, nil
}

func (e *ShopifyExporter) PreflightChecks(view *ResolvedListingView, channel *model.Channel) []PreflightCheck {
	checks := buildCommonChecks(view, channel.Rules)

	// 目录类渠道要求类目（product type）用于商品分组
	categoryCheck := PreflightCheck{
		Name:        "category",
		Status:      PreflightPass,
		Description: "商品类目已填写",
	}
	if view.Category == "" {
		categoryCheck.Status = PreflightWarning
		categoryCheck.Detail = "未填写类目，目录内商品将无法按类型分组"
	}
	checks = append(checks, categoryCheck)

	return checks
}
