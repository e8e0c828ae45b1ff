package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"listing_export_v1/internal/model"
)

// ==================== 测试辅助 ====================

func setupChannelTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Channel{}, &model.ChannelListing{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

// 播种幂等：已存在的渠道不覆盖（运维可能手工调过规则）
func TestChannelRepo_EnsureSeededIdempotent(t *testing.T) {
	db := setupChannelTestDB(t)
	repo := NewChannelRepository(db)
	ctx := context.Background()

	if err := repo.EnsureSeeded(ctx, model.DefaultChannels()); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}

	// 手工调整 etsy 规则
	var etsy model.Channel
	db.Where("slug = ?", "etsy").First(&etsy)
	etsy.Rules.TitleMaxLen = 120
	db.Save(&etsy)

	if err := repo.EnsureSeeded(ctx, model.DefaultChannels()); err != nil {
		t.Fatalf("二次播种失败: %v", err)
	}

	var count int64
	db.Model(&model.Channel{}).Count(&count)
	if count != int64(len(model.DefaultChannels())) {
		t.Errorf("渠道数 = %d, want %d", count, len(model.DefaultChannels()))
	}

	db.Where("slug = ?", "etsy").First(&etsy)
	if etsy.Rules.TitleMaxLen != 120 {
		t.Errorf("二次播种覆盖了手工调整: TitleMaxLen = %d", etsy.Rules.TitleMaxLen)
	}
}

func TestChannelRepo_RulesRoundTrip(t *testing.T) {
	db := setupChannelTestDB(t)
	repo := NewChannelRepository(db)
	ctx := context.Background()

	if err := repo.EnsureSeeded(ctx, model.DefaultChannels()); err != nil {
		t.Fatalf("播种失败: %v", err)
	}

	amazon, err := repo.GetBySlug(ctx, "amazon")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if amazon.Rules.BulletCount != 5 || !amazon.Rules.BulletShortfallBlocks {
		t.Errorf("JSON 规则列读回异常: %+v", amazon.Rules)
	}
}

// TouchExportedAt：已有关联就地更新，无关联补一条裸关联
func TestChannelListingRepo_TouchExportedAt(t *testing.T) {
	db := setupChannelTestDB(t)
	repo := NewChannelListingRepository(db)
	ctx := context.Background()

	now := time.Now()

	// 无关联：补裸关联
	if err := repo.TouchExportedAt(ctx, 1, 2, now); err != nil {
		t.Fatalf("首次 touch 失败: %v", err)
	}
	cl, err := repo.GetByListingAndChannel(ctx, 1, 2)
	if err != nil {
		t.Fatalf("查询关联失败: %v", err)
	}
	if cl.ExportedAt == nil {
		t.Fatal("exported_at 未写入")
	}

	// 再 touch：更新同一条，不新增
	later := now.Add(time.Hour)
	if err := repo.TouchExportedAt(ctx, 1, 2, later); err != nil {
		t.Fatalf("二次 touch 失败: %v", err)
	}

	var count int64
	db.Model(&model.ChannelListing{}).Count(&count)
	if count != 1 {
		t.Errorf("关联条数 = %d, want 1", count)
	}

	cl, _ = repo.GetByListingAndChannel(ctx, 1, 2)
	if !cl.ExportedAt.After(now) {
		t.Errorf("exported_at 未前移: %v", cl.ExportedAt)
	}
}
