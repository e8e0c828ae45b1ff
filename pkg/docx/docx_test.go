package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

// 1x1 PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

func readZip(t *testing.T, content []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("文档不是合法 zip: %v", err)
	}
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("打开 %s 失败: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("读取 %s 失败: %v", f.Name, err)
		}
		parts[f.Name] = data
	}
	return parts
}

func TestDocument_RequiredParts(t *testing.T) {
	doc := New()
	doc.AddHeading("Title", 1)
	doc.AddParagraph("Body text")

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("打包失败: %v", err)
	}

	parts := readZip(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("缺少部件 %s", name)
		}
	}

	body := string(parts["word/document.xml"])
	if !strings.Contains(body, `w:val="Heading1"`) {
		t.Error("标题样式未写入")
	}
	if !strings.Contains(body, "Body text") {
		t.Error("正文段落未写入")
	}
}

func TestDocument_EscapesXML(t *testing.T) {
	doc := New()
	doc.AddParagraph(`Mug & Bowl <set> "quoted"`)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("打包失败: %v", err)
	}

	body := string(readZip(t, data)["word/document.xml"])
	if strings.Contains(body, "& Bowl") || strings.Contains(body, "<set>") {
		t.Error("特殊字符未转义")
	}
	if !strings.Contains(body, "&amp; Bowl") {
		t.Error("& 应转义为 &amp;")
	}
}

func TestDocument_EmbedsImages(t *testing.T) {
	doc := New()
	doc.AddImage(tinyPNG, "png")
	doc.AddImage([]byte("not-an-image"), "jpg")

	if doc.ImageCount() != 2 {
		t.Fatalf("image count = %d, want 2", doc.ImageCount())
	}

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("打包失败: %v", err)
	}

	parts := readZip(t, data)
	if !bytes.Equal(parts["word/media/image1.png"], tinyPNG) {
		t.Error("图片字节未原样写入")
	}
	if _, ok := parts["word/media/image2.jpg"]; !ok {
		t.Error("缺少第二张图片")
	}

	// 关系表与正文引用一致
	rels := string(parts["word/_rels/document.xml.rels"])
	body := string(parts["word/document.xml"])
	for _, rid := range []string{"rIdImg1", "rIdImg2"} {
		if !strings.Contains(rels, rid) {
			t.Errorf("关系表缺少 %s", rid)
		}
		if !strings.Contains(body, rid) {
			t.Errorf("正文未引用 %s", rid)
		}
	}

	// 内容类型表要声明用到的扩展名
	types := string(parts["[Content_Types].xml"])
	if !strings.Contains(types, `Extension="png"`) || !strings.Contains(types, `Extension="jpg"`) {
		t.Errorf("内容类型表不完整: %s", types)
	}
}
