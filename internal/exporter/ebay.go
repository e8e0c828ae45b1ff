package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"listing_export_v1/internal/model"
)

// EbayExporter eBay File Exchange CSV 策略
type EbayExporter struct{}

func (e *EbayExporter) Validate(view *ResolvedListingView, channel *model.Channel) *ValidationResult {
	return Validate(view, channel.Rules)
}

// Generate 生成 eBay File Exchange CSV
// 多图以竖线拼接进 PicURL，是 File Exchange 的约定格式
func (e *EbayExporter) Generate(view *ResolvedListingView, channel *model.Channel) (*ExportArtifact, error) {
	header := []string{
		"Action(SiteID=US|Country=US|Currency=USD|Version=1193)",
		"Category", "Title", "Description", "PicURL",
		"Quantity", "StartPrice", "ConditionID", "Format", "Duration",
	}

	row := []string{
		"Add",
		view.Category,
		view.Title,
		view.Description,
		strings.Join(view.ImageURLs, "|"),
		strconv.Itoa(view.Quantity),
		formatPrice(view.Price),
		"1000", // New
		"FixedPrice",
		"GTC",
	}

	content, err := writeCSV([][]string{header, row})
	if err != nil {
		return nil, fmt.Errorf("生成 eBay CSV 失败: %v", err)
	}

	return &ExportArtifact{
		FileName:    flatFileName(channel.Slug),
		Content:     content,
		ContentType: "text/csv",
	}, nil
}

func (e *EbayExporter) PreflightChecks(view *ResolvedListingView, channel *model.Channel) []PreflightCheck {
	checks := buildCommonChecks(view, channel.Rules)

	// File Exchange 的 Category 是数字类目 ID，缺失会整行被拒
	categoryCheck := PreflightCheck{
		Name:        "category",
		Status:      PreflightPass,
		Description: "eBay 类目 ID 已填写",
	}
	if view.Category == "" {
		categoryCheck.Status = PreflightFail
		categoryCheck.Detail = "缺少类目 ID，File Exchange 会拒绝该行"
	}
	checks = append(checks, categoryCheck)

	return checks
}
