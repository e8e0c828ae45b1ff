package utils

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ==================== 下载结果 ====================

// ImageDownloadResult 单张图片的下载结果
// 部分失败是正常路径：调用方按 Err 是否为空聚合，不中断整体流程
type ImageDownloadResult struct {
	Index int    // 源列表中的序号（0 起）
	URL   string
	Data  []byte
	Ext   string // 不含点的扩展名
	Err   error
}

// OK 下载是否成功
func (r *ImageDownloadResult) OK() bool {
	return r.Err == nil
}

// ==================== 下载 ====================

// DownloadImage 下载网络图片并返回字节切片
func DownloadImage(ctx context.Context, client *resty.Client, imageURL string) ([]byte, error) {
	resp, err := client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("http get failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// DownloadImages 顺序下载图片列表，逐张隔离失败
// 顺序而非并发：限制峰值内存，也避免打爆图片源站
func DownloadImages(ctx context.Context, client *resty.Client, urls []string) []ImageDownloadResult {
	results := make([]ImageDownloadResult, len(urls))
	for i, u := range urls {
		results[i] = ImageDownloadResult{
			Index: i,
			URL:   u,
			Ext:   SniffImageExt(u),
		}
		data, err := DownloadImage(ctx, client, u)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Data = data
	}
	return results
}

// SniffImageExt 从 URL 推断图片扩展名，无法识别时回退 jpg
func SniffImageExt(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	rawPath := imageURL
	if err == nil {
		rawPath = parsed.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(rawPath), "."))
	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp", "bmp":
		return ext
	}
	return "jpg"
}
