package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSniffImageExt(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/photo.jpg", "jpg"},
		{"https://cdn.example.com/photo.PNG", "png"},
		{"https://cdn.example.com/photo.webp?size=large", "webp"},
		{"https://cdn.example.com/photo", "jpg"},
		{"https://cdn.example.com/photo.exe", "jpg"},
		{"not a url .gif", "gif"},
	}

	for _, tt := range tests {
		if got := SniffImageExt(tt.url); got != tt.want {
			t.Errorf("SniffImageExt(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

// 逐张隔离失败：坏图不影响好图，结果位置与源列表一一对应
func TestDownloadImages_PartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/a.jpg",
		srv.URL + "/bad.jpg",
		srv.URL + "/c.png",
	}
	results := DownloadImages(context.Background(), NewExportClient(0), urls)

	if len(results) != 3 {
		t.Fatalf("结果数 = %d, want 3", len(results))
	}
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("好图不应失败: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].OK() {
		t.Error("404 图片应标记失败")
	}
	if results[1].Index != 1 {
		t.Errorf("失败结果序号 = %d, want 1", results[1].Index)
	}
	if results[2].Ext != "png" {
		t.Errorf("ext = %s, want png", results[2].Ext)
	}
	if string(results[0].Data) != "image-bytes" {
		t.Errorf("data = %q", results[0].Data)
	}
}
