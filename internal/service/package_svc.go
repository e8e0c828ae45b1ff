package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/model"
	"listing_export_v1/pkg/docx"
	"listing_export_v1/pkg/utils"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	zipContentType  = "application/zip"
)

// ==================== 服务 ====================

// PackageService 组合包构建服务
// 负责格式化文档与组合压缩包两类产物；图片逐张下载、逐张容错
type PackageService struct {
	client *resty.Client
	logger *zap.Logger
}

// NewPackageService 创建组合包构建服务
// downloadTimeout 为单次图片请求超时，非正值用客户端默认
func NewPackageService(logger *zap.Logger, downloadTimeout time.Duration) *PackageService {
	return &PackageService{
		client: utils.NewExportClient(downloadTimeout),
		logger: logger,
	}
}

// ==================== 文档生成 ====================

// BuildDocument 生成独立的格式化文档（docx）
func (s *PackageService) BuildDocument(ctx context.Context, view *exporter.ResolvedListingView, channel *model.Channel) (*exporter.ExportArtifact, error) {
	results := s.downloadImages(ctx, view)
	return s.buildDocumentArtifact(view, channel, results)
}

// BuildPackage 生成组合压缩包：文档 + 图片目录 + 可选平面文件 + README + 纯文本拷贝稿
// flat 为 nil 表示该渠道族不支持平面文件生成，包里省略该文件
func (s *PackageService) BuildPackage(ctx context.Context, view *exporter.ResolvedListingView, channel *model.Channel, flat *exporter.ExportArtifact) (*exporter.ExportArtifact, error) {
	results := s.downloadImages(ctx, view)

	docArtifact, err := s.buildDocumentArtifact(view, channel, results)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	writeEntry := func(name string, content []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("创建压缩包条目 %s 失败: %v", name, err)
		}
		if _, err := f.Write(content); err != nil {
			return fmt.Errorf("写入压缩包条目 %s 失败: %v", name, err)
		}
		return nil
	}

	if err := writeEntry(docArtifact.FileName, docArtifact.Content); err != nil {
		return nil, err
	}

	// 图片目录：序号跟随源列表位置（1 起），下载失败留空号
	for _, result := range results {
		if !result.OK() {
			continue
		}
		name := fmt.Sprintf("images/image_%d.%s", result.Index+1, result.Ext)
		if err := writeEntry(name, result.Data); err != nil {
			return nil, err
		}
	}

	if flat != nil {
		if err := writeEntry(flat.FileName, flat.Content); err != nil {
			return nil, err
		}
	}

	if err := writeEntry("README.txt", []byte(buildReadme(view, channel, flat != nil))); err != nil {
		return nil, err
	}
	if err := writeEntry("content_copy_paste.txt", []byte(buildCopyPasteText(view, channel))); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("关闭压缩包失败: %v", err)
	}

	return &exporter.ExportArtifact{
		FileName:    fmt.Sprintf("%s_%s_package.zip", utils.SanitizeFilename(view.Title), channel.Slug),
		Content:     buf.Bytes(),
		ContentType: zipContentType,
	}, nil
}

// ==================== 内部实现 ====================

// downloadImages 顺序下载全部图片并记录逐张结果
// 单张失败只记日志，包必须带着剩余图片照常产出
func (s *PackageService) downloadImages(ctx context.Context, view *exporter.ResolvedListingView) []utils.ImageDownloadResult {
	results := utils.DownloadImages(ctx, s.client, view.ImageURLs)
	for _, r := range results {
		if r.OK() {
			continue
		}
		s.logger.Warn("图片下载失败，跳过该张",
			zap.Int64("listing_id", view.ListingID),
			zap.String("channel", view.ChannelSlug),
			zap.Int("image_index", r.Index+1),
			zap.String("url", r.URL),
			zap.Error(r.Err),
		)
	}
	return results
}

func (s *PackageService) buildDocumentArtifact(view *exporter.ResolvedListingView, channel *model.Channel, results []utils.ImageDownloadResult) (*exporter.ExportArtifact, error) {
	doc := buildListingDocument(view, channel, results)
	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("生成文档失败: %v", err)
	}
	return &exporter.ExportArtifact{
		FileName:    fmt.Sprintf("%s_%s.docx", utils.SanitizeFilename(view.Title), channel.Slug),
		Content:     data,
		ContentType: docxContentType,
	}, nil
}

// buildListingDocument 按固定章节组织文档内容
// 章节顺序：标题、平台、商品图片、描述、标签、卖点、材质、商品详情
func buildListingDocument(view *exporter.ResolvedListingView, channel *model.Channel, results []utils.ImageDownloadResult) *docx.Document {
	doc := docx.New()

	doc.AddHeading(view.Title, 1)
	doc.AddHeading(fmt.Sprintf("Platform: %s", channel.DisplayName), 2)

	doc.AddHeading("Product Images", 2)
	if len(results) == 0 {
		doc.AddParagraph("No images attached to this listing.")
	}
	for _, result := range results {
		if result.OK() {
			doc.AddImage(result.Data, result.Ext)
		} else {
			// 单张失败不中断文档生成，占位行标明缺图
			doc.AddParagraph(fmt.Sprintf("[Image %d could not be downloaded]", result.Index+1))
		}
	}

	doc.AddHeading("Description", 2)
	for _, line := range strings.Split(view.Description, "\n") {
		doc.AddParagraph(line)
	}

	doc.AddHeading("Tags/Keywords", 2)
	if len(view.Tags) > 0 {
		doc.AddParagraph(strings.Join(view.Tags, ", "))
	} else {
		doc.AddParagraph("(none)")
	}

	doc.AddHeading("Key Features", 2)
	if len(view.Bullets) > 0 {
		for _, bullet := range view.Bullets {
			doc.AddParagraph("- " + bullet)
		}
	} else {
		doc.AddParagraph("(none)")
	}

	doc.AddHeading("Materials", 2)
	if len(view.Materials) > 0 {
		doc.AddParagraph(strings.Join(view.Materials, ", "))
	} else {
		doc.AddParagraph("(none)")
	}

	doc.AddHeading("Product Details", 2)
	doc.AddParagraph(fmt.Sprintf("Price: %.2f %s", view.Price, view.CurrencyCode))
	doc.AddParagraph(fmt.Sprintf("Quantity: %d", view.Quantity))
	if view.Category != "" {
		doc.AddParagraph(fmt.Sprintf("Category: %s", view.Category))
	}
	for key, value := range view.CustomFields {
		doc.AddParagraph(fmt.Sprintf("%s: %v", key, value))
	}

	return doc
}

// buildReadme 包内使用说明
func buildReadme(view *exporter.ResolvedListingView, channel *model.Channel, hasFlatFile bool) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Listing Export Package: %s\n", view.Title)
	fmt.Fprintf(b, "Target platform: %s\n\n", channel.DisplayName)
	b.WriteString("Package contents:\n")
	fmt.Fprintf(b, "  - %s_%s.docx: formatted listing document with embedded images\n",
		utils.SanitizeFilename(view.Title), channel.Slug)
	b.WriteString("  - images/: product images, numbered in listing order\n")
	if hasFlatFile {
		fmt.Fprintf(b, "  - %s_bulk_upload.csv: bulk upload file for the platform's import tool\n", channel.Slug)
	}
	b.WriteString("  - content_copy_paste.txt: all fields in plain text for manual entry\n\n")
	b.WriteString("Suggested workflow:\n")
	b.WriteString("  1. Review the document to confirm the content is correct.\n")
	if hasFlatFile {
		b.WriteString("  2. Upload the CSV file through the platform's bulk import tool.\n")
		b.WriteString("  3. Upload the images from the images/ folder to the new listing.\n")
	} else {
		b.WriteString("  2. Create the listing manually, pasting fields from content_copy_paste.txt.\n")
		b.WriteString("  3. Upload the images from the images/ folder.\n")
	}
	return b.String()
}

// buildCopyPasteText 纯文本拷贝稿，按章节组织全部字段
func buildCopyPasteText(view *exporter.ResolvedListingView, channel *model.Channel) string {
	b := &strings.Builder{}
	writeSection := func(name, content string) {
		fmt.Fprintf(b, "=== %s ===\n%s\n\n", name, content)
	}

	writeSection("TITLE", view.Title)
	writeSection("PLATFORM", channel.DisplayName)
	writeSection("DESCRIPTION", view.Description)
	writeSection("TAGS", strings.Join(view.Tags, ", "))
	writeSection("KEY FEATURES", strings.Join(view.Bullets, "\n"))
	writeSection("MATERIALS", strings.Join(view.Materials, ", "))
	writeSection("PRICE", fmt.Sprintf("%.2f %s", view.Price, view.CurrencyCode))
	writeSection("QUANTITY", fmt.Sprintf("%d", view.Quantity))
	writeSection("CATEGORY", view.Category)
	writeSection("IMAGES", strings.Join(view.ImageURLs, "\n"))
	if view.VideoURL != "" {
		writeSection("VIDEO", view.VideoURL)
	}

	return b.String()
}
