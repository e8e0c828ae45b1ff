package exporter

import (
	"fmt"
	"unicode/utf8"

	"listing_export_v1/internal/model"
)

// buildCommonChecks 各渠道族共用的预检项
// 语义与 Validate 保持一致：同一越界在两边必须同判，不允许分叉
func buildCommonChecks(view *ResolvedListingView, rules model.ChannelRules) []PreflightCheck {
	checks := []PreflightCheck{}

	// 标题
	titleCheck := PreflightCheck{
		Name:        "title",
		Status:      PreflightPass,
		Description: "标题已填写且未超长",
	}
	titleLen := utf8.RuneCountInString(view.Title)
	switch {
	case view.Title == "":
		titleCheck.Status = PreflightFail
		titleCheck.Detail = "标题为空"
	case rules.TitleMaxLen > 0 && titleLen > rules.TitleMaxLen:
		titleCheck.Status = PreflightFail
		titleCheck.Detail = fmt.Sprintf("超出 %d 字符上限（当前 %d）", rules.TitleMaxLen, titleLen)
	}
	checks = append(checks, titleCheck)

	// 描述
	descCheck := PreflightCheck{
		Name:        "description",
		Status:      PreflightPass,
		Description: "描述已填写且未超长",
	}
	descLen := utf8.RuneCountInString(view.Description)
	switch {
	case view.Description == "":
		descCheck.Status = PreflightFail
		descCheck.Detail = "描述为空"
	case rules.DescriptionMaxLen > 0 && descLen > rules.DescriptionMaxLen:
		descCheck.Status = PreflightFail
		descCheck.Detail = fmt.Sprintf("超出 %d 字符上限（当前 %d）", rules.DescriptionMaxLen, descLen)
	}
	checks = append(checks, descCheck)

	// 标签
	if rules.TagsMax > 0 {
		tagCheck := PreflightCheck{
			Name:        "tags",
			Status:      PreflightPass,
			Description: fmt.Sprintf("标签数量在 [%d, %d] 区间内", rules.TagsMin, rules.TagsMax),
		}
		tagCount := len(view.Tags)
		switch {
		case tagCount > rules.TagsMax:
			tagCheck.Status = PreflightFail
			tagCheck.Detail = fmt.Sprintf("超出上限 %d（当前 %d）", rules.TagsMax, tagCount)
		case rules.TagsMin > 0 && tagCount < rules.TagsMin:
			tagCheck.Status = PreflightFail
			tagCheck.Detail = fmt.Sprintf("低于下限 %d（当前 %d）", rules.TagsMin, tagCount)
		}
		checks = append(checks, tagCheck)
	}

	// 卖点要点
	if rules.BulletCount > 0 {
		bulletCheck := PreflightCheck{
			Name:        "bullets",
			Status:      PreflightPass,
			Description: fmt.Sprintf("卖点要点满 %d 条", rules.BulletCount),
		}
		if len(view.Bullets) < rules.BulletCount {
			if rules.BulletShortfallBlocks {
				bulletCheck.Status = PreflightFail
			} else {
				bulletCheck.Status = PreflightWarning
			}
			bulletCheck.Detail = fmt.Sprintf("需要 %d 条，当前 %d 条", rules.BulletCount, len(view.Bullets))
		}
		checks = append(checks, bulletCheck)
	}

	// 图片
	imageCheck := PreflightCheck{
		Name:        "images",
		Status:      PreflightPass,
		Description: fmt.Sprintf("图片数量满足下限 %d", rules.MinImages),
	}
	if rules.MinImages > 0 && len(view.ImageURLs) < rules.MinImages {
		imageCheck.Status = PreflightFail
		imageCheck.Detail = fmt.Sprintf("至少需要 %d 张，当前 %d 张", rules.MinImages, len(view.ImageURLs))
	}
	checks = append(checks, imageCheck)

	// 价格
	priceCheck := PreflightCheck{
		Name:        "price",
		Status:      PreflightPass,
		Description: "价格已设置",
	}
	if view.Price <= 0 {
		priceCheck.Status = PreflightWarning
		priceCheck.Detail = "价格为 0，导出文件中将以 0 填充"
	}
	checks = append(checks, priceCheck)

	return checks
}
