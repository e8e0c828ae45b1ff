// Package docx 实现最小可用的 OOXML 文档写出。
// 只覆盖本系统需要的能力：标题、正文段落、内嵌图片。
// 不引入第三方 docx 库：参见仓库 DESIGN.md 中的取舍说明。
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

// EMU 换算：96dpi 下每像素 9525 EMU
const (
	emuPerPixel   = 9525
	defaultWidth  = 4572000 // 约 5 英寸
	defaultHeight = 3429000
	maxWidthEMU   = 5486400 // 约 6 英寸，超宽图片等比缩到此宽度
)

// ==================== 文档构建 ====================

type imagePart struct {
	data []byte
	ext  string
}

// Document 逐段累积的 OOXML 文档
type Document struct {
	body   bytes.Buffer
	images []imagePart
}

// New 创建空文档
func New() *Document {
	return &Document{}
}

// AddHeading 添加标题段落，level 取 1 或 2
func (d *Document) AddHeading(text string, level int) {
	if level < 1 {
		level = 1
	}
	if level > 2 {
		level = 2
	}
	d.body.WriteString(fmt.Sprintf(`<w:p><w:pPr><w:pStyle w:val="Heading%d"/></w:pPr><w:r><w:t xml:space="preserve">`, level))
	d.writeEscaped(text)
	d.body.WriteString(`</w:t></w:r></w:p>`)
}

// AddParagraph 添加正文段落
func (d *Document) AddParagraph(text string) {
	d.body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
	d.writeEscaped(text)
	d.body.WriteString(`</w:t></w:r></w:p>`)
}

// AddImage 内嵌一张图片，ext 为不含点的扩展名
// 尺寸按图片实际像素换算，解析失败用默认尺寸
func (d *Document) AddImage(data []byte, ext string) {
	d.images = append(d.images, imagePart{data: data, ext: ext})
	idx := len(d.images) // rId 与 media 序号均为 1 起

	cx, cy := imageExtent(data)
	d.body.WriteString(fmt.Sprintf(
		`<w:p><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="Image%d"/>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic>`+
			`<pic:nvPicPr><pic:cNvPr id="%d" name="Image%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="rIdImg%d"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, idx, idx, idx, idx, idx, cx, cy))
}

// ImageCount 已内嵌的图片数量
func (d *Document) ImageCount() int {
	return len(d.images)
}

func (d *Document) writeEscaped(text string) {
	_ = xml.EscapeText(&d.body, []byte(text))
}

// imageExtent 从图片字节解析像素尺寸并换算 EMU
func imageExtent(data []byte) (cx, cy int64) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return defaultWidth, defaultHeight
	}
	cx = int64(cfg.Width) * emuPerPixel
	cy = int64(cfg.Height) * emuPerPixel
	if cx > maxWidthEMU {
		cy = cy * maxWidthEMU / cx
		cx = maxWidthEMU
	}
	return cx, cy
}

// ==================== 容器写出 ====================

// Write 将文档打包为 docx 写入 w
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", d.contentTypes()},
		{"_rels/.rels", []byte(rootRels)},
		{"word/document.xml", d.documentXML()},
		{"word/_rels/document.xml.rels", d.documentRels()},
		{"word/styles.xml", []byte(stylesXML)},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("创建 %s 失败: %v", part.name, err)
		}
		if _, err := f.Write(part.content); err != nil {
			return fmt.Errorf("写入 %s 失败: %v", part.name, err)
		}
	}

	for i, img := range d.images {
		name := fmt.Sprintf("word/media/image%d.%s", i+1, img.ext)
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("创建 %s 失败: %v", name, err)
		}
		if _, err := f.Write(img.data); err != nil {
			return fmt.Errorf("写入 %s 失败: %v", name, err)
		}
	}

	return zw.Close()
}

// Bytes 打包为 docx 字节
func (d *Document) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := d.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:document` +
		` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	buf.WriteString(`<w:body>`)
	buf.Write(d.body.Bytes())
	buf.WriteString(`<w:sectPr/></w:body></w:document>`)
	return buf.Bytes()
}

func (d *Document) documentRels() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	buf.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for i, img := range d.images {
		buf.WriteString(fmt.Sprintf(
			`<Relationship Id="rIdImg%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image%d.%s"/>`,
			i+1, i+1, img.ext))
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func (d *Document) contentTypes() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	seen := make(map[string]bool)
	for _, img := range d.images {
		if seen[img.ext] {
			continue
		}
		seen[img.ext] = true
		buf.WriteString(fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, img.ext, imageContentType(img.ext)))
	}

	buf.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	buf.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

// imageContentType 扩展名到 MIME 类型
func imageContentType(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}

// ==================== 固定部件 ====================

const rootRels = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:styleId="Heading1">` +
	`<w:name w:val="heading 1"/>` +
	`<w:rPr><w:b/><w:sz w:val="32"/></w:rPr>` +
	`</w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2">` +
	`<w:name w:val="heading 2"/>` +
	`<w:rPr><w:b/><w:sz w:val="26"/></w:rPr>` +
	`</w:style>` +
	`</w:styles>`
