package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// 图片源站响应可能比较慢，默认给 20s
const DefaultDownloadTimeout = 20 * time.Second

// NewExportClient 创建导出流程统一使用的 Resty 客户端
// 超时来自配置项 download_timeout，非正值回退默认
func NewExportClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Listing-Export-Go-App/1.0")
}
