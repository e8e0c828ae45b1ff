package utils

import "strings"

// 文件名主干长度上限，避免拼接渠道后缀后超出文件系统限制
const maxFilenameLen = 60

// SanitizeFilename 清洗标题用于文件名：
// 非字母数字替换为下划线、折叠连续下划线、去首尾下划线、截断、转小写。
// 幂等：对已清洗的字符串再清洗结果不变
func SanitizeFilename(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lowered))
	prevUnderscore := false
	for _, r := range lowered {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}

	result := strings.Trim(b.String(), "_")
	if len(result) > maxFilenameLen {
		result = result[:maxFilenameLen]
		result = strings.TrimRight(result, "_")
	}
	if result == "" {
		result = "untitled"
	}
	return result
}
