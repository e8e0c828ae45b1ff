package exporter

import (
	"fmt"

	"listing_export_v1/internal/model"
)

// AmazonExporter Amazon 检查器策略
// 仅支持校验与预检：真实发布路径是类目专属的库存模板（Inventory File Template），
// 每个类目列结构都不同，无法在这里通用生成
type AmazonExporter struct{}

func (e *AmazonExporter) Validate(view *ResolvedListingView, channel *model.Channel) *ValidationResult {
	return Validate(view, channel.Rules)
}

// Generate 显式拒绝生成，返回 ErrGenerationUnsupported
func (e *AmazonExporter) Generate(view *ResolvedListingView, channel *model.Channel) (*ExportArtifact, error) {
	return nil, fmt.Errorf("amazon: %w", ErrGenerationUnsupported)
}

func (e *AmazonExporter) PreflightChecks(view *ResolvedListingView, channel *model.Channel) []PreflightCheck {
	checks := buildCommonChecks(view, channel.Rules)

	// 提示用户走模板路径
	templateCheck := PreflightCheck{
		Name:        "inventory_template",
		Status:      PreflightWarning,
		Description: "Amazon 需使用类目专属库存模板上传",
		Detail:      "本系统只做内容就绪检查，请在卖家后台下载对应类目模板后手工填入",
	}
	checks = append(checks, templateCheck)

	return checks
}
