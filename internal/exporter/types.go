package exporter

// ==================== 临时计算类型 ====================
// 以下类型均按请求计算、用完即弃，不落库

// ResolvedListingView 基础刊登与渠道覆盖合并后的只读视图
type ResolvedListingView struct {
	ListingID    int64
	ChannelID    int64
	ChannelSlug  string
	Title        string
	Description  string
	Price        float64
	CurrencyCode string
	Quantity     int
	Category     string
	Tags         []string
	Bullets      []string
	Materials    []string
	ImageURLs    []string
	VideoURL     string
	CustomFields map[string]interface{}
}

// ValidationResult 校验结果
// 不变式：IsReady 当且仅当 Errors 为空，与 Warnings、Score 无关
type ValidationResult struct {
	IsReady  bool     `json:"is_ready"`
	Score    int      `json:"score"`
	Band     string   `json:"band"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ExportArtifact 导出产物（按请求生成）
type ExportArtifact struct {
	FileName    string
	Content     []byte
	ContentType string
	Encoding    string // 可选编码标记；响应中按 base64 传输时由控制层填写
}

// ==================== 预检 ====================

const (
	PreflightPass    = "pass"
	PreflightWarning = "warning"
	PreflightFail    = "fail"
)

// PreflightCheck 导出前预检项
type PreflightCheck struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Detail      string `json:"detail,omitempty"`
}
