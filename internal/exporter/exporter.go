package exporter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"listing_export_v1/internal/model"
)

// ==================== 策略接口 ====================

// ChannelExporter 渠道导出策略，每个渠道族实现一次
type ChannelExporter interface {
	// Validate 按渠道规则校验视图
	Validate(view *ResolvedListingView, channel *model.Channel) *ValidationResult

	// Generate 生成该渠道的平面导出文件
	Generate(view *ResolvedListingView, channel *model.Channel) (*ExportArtifact, error)

	// PreflightChecks 生成导出前检查清单
	PreflightChecks(view *ResolvedListingView, channel *model.Channel) []PreflightCheck
}

// ==================== 错误 ====================

// ErrGenerationUnsupported 渠道族仅支持校验/预检，不支持生成
var ErrGenerationUnsupported = errors.New("该渠道暂不支持文件生成")

// UnsupportedChannelError 渠道无对应实现
type UnsupportedChannelError struct {
	Slug      string
	Supported []string
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("不支持的渠道 %q，当前支持: %s", e.Slug, strings.Join(e.Supported, ", "))
}

// ==================== 注册表 ====================

// Registry 渠道策略注册表
// 未知 slug 必须显式报错并列出支持的渠道，绝不静默回退
type Registry struct {
	exporters map[string]ChannelExporter
}

// NewRegistry 创建并注册全部内置渠道策略
func NewRegistry() *Registry {
	r := &Registry{exporters: make(map[string]ChannelExporter)}

	r.register("etsy", &EtsyExporter{})

	// facebook 与 instagram 的商品目录批量文件与 Shopify CSV 同构，
	// 三个 slug 共享同一实现。这是刻意的设计决定，不是遗漏
	shopify := &ShopifyExporter{}
	r.register("shopify", shopify)
	r.register("facebook", shopify)
	r.register("instagram", shopify)

	r.register("ebay", &EbayExporter{})

	// amazon 仅做校验与预检：真实发布走类目专属库存模板，不在此通用建模
	r.register("amazon", &AmazonExporter{})

	return r
}

func (r *Registry) register(slug string, exp ChannelExporter) {
	r.exporters[slug] = exp
}

// Get 按 slug 取策略实现
func (r *Registry) Get(slug string) (ChannelExporter, error) {
	exp, ok := r.exporters[slug]
	if !ok {
		return nil, &UnsupportedChannelError{Slug: slug, Supported: r.SupportedSlugs()}
	}
	return exp, nil
}

// SupportedSlugs 返回已注册的渠道 slug（排序稳定）
func (r *Registry) SupportedSlugs() []string {
	slugs := make([]string, 0, len(r.exporters))
	for slug := range r.exporters {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
