package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"普通标题", "Handmade Ceramic Mug", "handmade_ceramic_mug"},
		{"特殊字符", "Mug: 12oz / Blue & White!", "mug_12oz_blue_white"},
		{"连续分隔符折叠", "a -- b   c", "a_b_c"},
		{"首尾分隔符去除", "  *Mug*  ", "mug"},
		{"空串回退", "", "untitled"},
		{"纯符号回退", "!!!", "untitled"},
		{"非 ASCII 字符", "café mug", "caf_mug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 100))
	if len(got) != maxFilenameLen {
		t.Errorf("长度 = %d, want %d", len(got), maxFilenameLen)
	}

	// 截断后不允许残留结尾下划线
	got = SanitizeFilename(strings.Repeat("ab ", 40))
	if strings.HasSuffix(got, "_") {
		t.Errorf("截断后残留下划线: %q", got)
	}
}

// 幂等：清洗结果再清洗必须原样返回
func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Handmade Ceramic Mug",
		"Mug: 12oz / Blue & White!",
		strings.Repeat("long title ", 20),
		"",
	}
	for _, input := range inputs {
		once := SanitizeFilename(input)
		twice := SanitizeFilename(once)
		if once != twice {
			t.Errorf("非幂等: %q -> %q -> %q", input, once, twice)
		}
	}
}
