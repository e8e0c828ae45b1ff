package exporter

import (
	"fmt"
	"unicode/utf8"

	"listing_export_v1/internal/model"
)

// ==================== 评分策略 ====================

const (
	// 每个出错类别扣 25 分，每个警告类别扣 10 分，下限 0。
	// 错误扣分必须压到 good 阈值以下：单个阻断错误不允许仍显示"良好"
	ScorePenaltyError   = 25
	ScorePenaltyWarning = 10

	// 就绪评分区间：>=80 良好，>=60 警戒，其余较差
	ScoreBandGood    = 80
	ScoreBandCaution = 60
)

// 评分档位
const (
	BandGood    = "good"
	BandCaution = "caution"
	BandPoor    = "poor"
)

// ScoreBand 评分到档位
func ScoreBand(score int) string {
	switch {
	case score >= ScoreBandGood:
		return BandGood
	case score >= ScoreBandCaution:
		return BandCaution
	default:
		return BandPoor
	}
}

// ==================== 校验 ====================

// Validate 按渠道规则校验合并视图，产出错误、警告与就绪评分
// 纯函数：相同输入必得相同结果，不依赖任何隐藏状态
func Validate(view *ResolvedListingView, rules model.ChannelRules) *ValidationResult {
	result := &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}
	errorCategories := make(map[string]bool)
	warningCategories := make(map[string]bool)

	addError := func(category, msg string) {
		result.Errors = append(result.Errors, msg)
		errorCategories[category] = true
	}
	addWarning := func(category, msg string) {
		result.Warnings = append(result.Warnings, msg)
		warningCategories[category] = true
	}

	// 1. 必填字段
	if view.Title == "" {
		addError("required", "标题不能为空")
	}
	if view.Description == "" {
		addError("required", "描述不能为空")
	}

	// 2. 长度上限
	titleLen := utf8.RuneCountInString(view.Title)
	if rules.TitleMaxLen > 0 && titleLen > rules.TitleMaxLen {
		addError("title_length", fmt.Sprintf("标题超出 %d 字符上限（当前 %d）", rules.TitleMaxLen, titleLen))
	}
	descLen := utf8.RuneCountInString(view.Description)
	if rules.DescriptionMaxLen > 0 && descLen > rules.DescriptionMaxLen {
		addError("description_length", fmt.Sprintf("描述超出 %d 字符上限（当前 %d）", rules.DescriptionMaxLen, descLen))
	}

	// 3. 标签数量与单标签长度
	if rules.TagsMax > 0 {
		tagCount := len(view.Tags)
		if tagCount > rules.TagsMax {
			addError("tag_count", fmt.Sprintf("标签数量超出上限 %d（当前 %d）", rules.TagsMax, tagCount))
		}
		if rules.TagsMin > 0 && tagCount < rules.TagsMin {
			addError("tag_count", fmt.Sprintf("标签数量低于下限 %d（当前 %d）", rules.TagsMin, tagCount))
		}
		if rules.TagMaxLen > 0 {
			for _, tag := range view.Tags {
				if utf8.RuneCountInString(tag) > rules.TagMaxLen {
					addError("tag_length", fmt.Sprintf("标签 %q 超出 %d 字符上限", tag, rules.TagMaxLen))
				}
			}
		}
	}

	// 4. 卖点要点：默认警告，渠道策略可升级为阻断
	if rules.BulletCount > 0 && len(view.Bullets) < rules.BulletCount {
		msg := fmt.Sprintf("卖点要点不足：需要 %d 条，当前 %d 条", rules.BulletCount, len(view.Bullets))
		if rules.BulletShortfallBlocks {
			addError("bullets", msg)
		} else {
			addWarning("bullets", msg)
		}
	}

	// 5. 图片数量下限
	if rules.MinImages > 0 && len(view.ImageURLs) < rules.MinImages {
		addError("images", fmt.Sprintf("图片数量不足：至少需要 %d 张，当前 %d 张", rules.MinImages, len(view.ImageURLs)))
	}

	// 评分：按类别去重扣分
	score := 100 - len(errorCategories)*ScorePenaltyError - len(warningCategories)*ScorePenaltyWarning
	if score < 0 {
		score = 0
	}
	result.Score = score
	result.Band = ScoreBand(score)
	result.IsReady = len(result.Errors) == 0
	return result
}
