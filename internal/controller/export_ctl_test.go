package controller

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/middleware"
	"listing_export_v1/internal/model"
	"listing_export_v1/internal/repository"
	"listing_export_v1/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func setupExportCtlTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(
		&model.Listing{}, &model.ListingImage{},
		&model.Channel{}, &model.ChannelListing{},
		&model.ExportLog{},
	)
	return db
}

// setupExportCtlRouter 装配真实服务链路；JWT 中间件由认证专项测试单独覆盖
func setupExportCtlRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	channelRepo := repository.NewChannelRepository(db)
	if err := channelRepo.EnsureSeeded(context.Background(), model.DefaultChannels()); err != nil {
		t.Fatalf("播种渠道失败: %v", err)
	}

	zapLogger := zap.NewNop()
	exportSvc := service.NewExportService(
		repository.NewListingRepository(db),
		channelRepo,
		repository.NewChannelListingRepository(db),
		repository.NewExportLogRepository(db),
		exporter.NewRegistry(),
		service.NewPackageService(zapLogger, 0),
		zapLogger,
	)
	channelSvc := service.NewChannelService(channelRepo, zapLogger)

	exportCtl := NewExportController(exportSvc)
	channelCtl := NewChannelController(channelSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	api := r.Group("/api")
	{
		exports := api.Group("/exports")
		{
			exports.POST("", exportCtl.GenerateExport)
			exports.GET("/preflight", exportCtl.Preflight)
			exports.GET("/logs", exportCtl.ListLogs)
		}
		api.GET("/channels", channelCtl.ListChannels)
	}
	return r
}

func seedCtlListing(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	listing := model.Listing{
		UserID:       1,
		Title:        "Handmade Ceramic Mug",
		Description:  "A lovely handmade ceramic mug.",
		PriceAmount:  1999,
		PriceDivisor: 100,
		CurrencyCode: "USD",
		Quantity:     5,
		Images: []model.ListingImage{
			{URL: "https://cdn.example.com/a.jpg", Rank: 1},
		},
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("创建刊登失败: %v", err)
	}

	var etsy model.Channel
	db.Where("slug = ?", "etsy").First(&etsy)
	override := model.ChannelListing{
		ListingID: listing.ID,
		ChannelID: etsy.ID,
		Tags:      datatypes.JSONSlice[string]{"ceramic", "mug"},
	}
	if err := db.Create(&override).Error; err != nil {
		t.Fatalf("创建渠道覆盖失败: %v", err)
	}
	return listing.ID
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==================== 测试用例 ====================

func TestExportController_GenerateFlat(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)
	listingID := seedCtlListing(t, db)

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": listingID,
		"channel":    "etsy",
		"format":     "flat",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			File struct {
				FileName    string `json:"file_name"`
				ContentType string `json:"content_type"`
				Encoding    string `json:"encoding"`
				Content     string `json:"content"`
			} `json:"file"`
			Validation struct {
				IsReady bool `json:"is_ready"`
				Score   int  `json:"score"`
			} `json:"validation"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "etsy_bulk_upload.csv", resp.Data.File.FileName)
	assert.Equal(t, "base64", resp.Data.File.Encoding)
	assert.True(t, resp.Data.Validation.IsReady)

	// 内容必须是可解码的 base64
	decoded, err := base64.StdEncoding.DecodeString(resp.Data.File.Content)
	assert.NoError(t, err)
	assert.Contains(t, string(decoded), "Handmade Ceramic Mug")
}

// format 缺省回退 flat
func TestExportController_DefaultFormat(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)
	listingID := seedCtlListing(t, db)

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": listingID,
		"channel":    "etsy",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			File struct {
				FileName string `json:"file_name"`
			} `json:"file"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "etsy_bulk_upload.csv", resp.Data.File.FileName)
}

func TestExportController_InvalidFormat(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": 1,
		"channel":    "etsy",
		"format":     "pdf",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportController_ListingNotFound(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": 999,
		"channel":    "etsy",
		"format":     "flat",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// 未注册渠道：400 且响应中列出支持的渠道
func TestExportController_UnsupportedChannel(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)
	listingID := seedCtlListing(t, db)

	// 渠道表里有，但注册表没有对应策略
	db.Create(&model.Channel{Slug: "walmart", DisplayName: "Walmart"})

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": listingID,
		"channel":    "walmart",
		"format":     "flat",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			SupportedChannels []string `json:"supported_channels"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.SupportedChannels, "etsy")
	assert.Contains(t, resp.Data.SupportedChannels, "shopify")
}

// 校验阻断：400 且附带完整校验详情
func TestExportController_ValidationBlocked(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)
	listingID := seedCtlListing(t, db)

	db.Model(&model.Listing{}).Where("id = ?", listingID).Update("title", "")

	w := postJSON(router, "/api/exports", gin.H{
		"listing_id": listingID,
		"channel":    "etsy",
		"format":     "flat",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Validation struct {
				IsReady bool     `json:"is_ready"`
				Errors  []string `json:"errors"`
			} `json:"validation"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Validation.IsReady)
	assert.NotEmpty(t, resp.Data.Validation.Errors)
}

func TestExportController_Preflight(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)
	listingID := seedCtlListing(t, db)

	req := httptest.NewRequest(http.MethodGet,
		"/api/exports/preflight?listing_id=1&channel=etsy", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Checks []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"checks"`
			Validation struct {
				IsReady bool `json:"is_ready"`
			} `json:"validation"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Checks)
	assert.True(t, resp.Data.Validation.IsReady)

	// 预检不落日志
	var logCount int64
	db.Model(&model.ExportLog{}).Where("listing_id = ?", listingID).Count(&logCount)
	assert.Equal(t, int64(0), logCount)
}

func TestChannelController_ListChannels(t *testing.T) {
	db := setupExportCtlTestDB(t)
	router := setupExportCtlRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data []struct {
			Slug        string `json:"slug"`
			TitleMaxLen int    `json:"title_max_len"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 6)

	slugs := make(map[string]int)
	for _, ch := range resp.Data {
		slugs[ch.Slug] = ch.TitleMaxLen
	}
	assert.Equal(t, 140, slugs["etsy"])
	assert.Equal(t, 80, slugs["ebay"])
}

// 线上路由均挂认证中间件：无 Token 拒绝，持有效 Token 放行
func TestChannelController_JWTProtected(t *testing.T) {
	db := setupExportCtlTestDB(t)
	channelRepo := repository.NewChannelRepository(db)
	assert.NoError(t, channelRepo.EnsureSeeded(context.Background(), model.DefaultChannels()))
	channelCtl := NewChannelController(service.NewChannelService(channelRepo, zap.NewNop()))

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	api.GET("/channels", channelCtl.ListChannels)

	// 未携带 Token
	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 有效 Token
	token, err := middleware.GenerateAccessToken(1, "seller")
	assert.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
