package service

import (
	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/model"
)

// ==================== 视图归一 ====================

// ResolveListingView 把基础刊登与渠道覆盖合并为只读视图
// 回退规则：覆盖值存在且非空则用覆盖，否则回退基础值。
// 数组字段：覆盖数组为空或缺失视作"无覆盖"，不是"覆盖成空"。
// override 可以为 nil（该渠道尚无覆盖记录）
func ResolveListingView(listing *model.Listing, override *model.ChannelListing, channel *model.Channel) *exporter.ResolvedListingView {
	view := &exporter.ResolvedListingView{
		ListingID:    listing.ID,
		ChannelID:    channel.ID,
		ChannelSlug:  channel.Slug,
		Title:        listing.Title,
		Description:  listing.Description,
		Price:        listing.GetPrice(),
		CurrencyCode: listing.CurrencyCode,
		Quantity:     listing.Quantity,
		Category:     listing.Category,
		Materials:    normalizeSlice(listing.Materials),
		ImageURLs:    listing.ImageURLs(),
		VideoURL:     listing.VideoURL,
		Tags:         []string{},
		Bullets:      []string{},
		CustomFields: map[string]interface{}{},
	}

	if override == nil {
		return view
	}

	if override.Title != "" {
		view.Title = override.Title
	}
	if override.Description != "" {
		view.Description = override.Description
	}
	if override.PriceAmount > 0 {
		view.Price = float64(override.PriceAmount) / 100
	}

	// 覆盖记录里的数组列可能是数据库 NULL，合并前一律先归一为空切片
	// （历史缺陷：直接遍历 nil tags/bullets 当场崩溃）
	tags := normalizeSlice(override.Tags)
	if len(tags) > 0 {
		view.Tags = tags
	}
	bullets := normalizeSlice(override.Bullets)
	if len(bullets) > 0 {
		view.Bullets = bullets
	}
	materials := normalizeSlice(override.Materials)
	if len(materials) > 0 {
		view.Materials = materials
	}

	if override.CustomFields != nil {
		view.CustomFields = map[string]interface{}(override.CustomFields)
	}

	return view
}

// normalizeSlice nil 切片归一为空切片
func normalizeSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
