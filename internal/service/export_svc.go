package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/model"
	"listing_export_v1/internal/repository"
)

// ==================== 常量 ====================

const (
	// 导出格式
	FormatFlat     = "flat"     // 单个平面文件
	FormatDocument = "document" // 单个格式化文档
	FormatPackage  = "package"  // 组合压缩包
)

// ==================== 错误 ====================

var (
	// ErrNotFound 刊登或渠道不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrValidationBlocked 校验存在阻断性错误，拒绝生成文件
	ErrValidationBlocked = errors.New("校验未通过，导出被阻断")
)

// ==================== 结果类型 ====================

// ExportResult 导出结果
// 校验被阻断时 Artifact 为 nil，Validation 始终携带完整校验结论
type ExportResult struct {
	Artifact   *exporter.ExportArtifact
	Validation *exporter.ValidationResult
}

// PreflightResult 预检结果（只读，不产生任何副作用）
type PreflightResult struct {
	Checks     []exporter.PreflightCheck
	Validation *exporter.ValidationResult
}

// ==================== 服务 ====================

// ExportService 导出编排服务
type ExportService struct {
	listingRepo        repository.ListingRepository
	channelRepo        repository.ChannelRepository
	channelListingRepo repository.ChannelListingRepository
	logRepo            repository.ExportLogRepository
	registry           *exporter.Registry
	packageSvc         *PackageService
	logger             *zap.Logger
}

// NewExportService 创建导出编排服务
func NewExportService(
	listingRepo repository.ListingRepository,
	channelRepo repository.ChannelRepository,
	channelListingRepo repository.ChannelListingRepository,
	logRepo repository.ExportLogRepository,
	registry *exporter.Registry,
	packageSvc *PackageService,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		listingRepo:        listingRepo,
		channelRepo:        channelRepo,
		channelListingRepo: channelListingRepo,
		logRepo:            logRepo,
		registry:           registry,
		packageSvc:         packageSvc,
		logger:             logger,
	}
}

// ==================== 导出 ====================

// GenerateExport 生成一次导出：取数 -> 归一化 -> 校验 -> 生成 -> 记日志 -> 更新导出时间
// 校验存在阻断错误时返回 ErrValidationBlocked，此时结果仍携带校验详情
func (s *ExportService) GenerateExport(ctx context.Context, listingID int64, channelSlug, format string) (*ExportResult, error) {
	view, channel, exp, err := s.resolve(ctx, listingID, channelSlug)
	if err != nil {
		return nil, err
	}

	validation := exp.Validate(view, channel)
	if !validation.IsReady {
		s.appendLog(ctx, view, channel, format, "", validation.Score, false, "校验存在阻断错误")
		return &ExportResult{Validation: validation}, ErrValidationBlocked
	}

	artifact, err := s.generateArtifact(ctx, view, channel, exp, format)
	if err != nil {
		s.appendLog(ctx, view, channel, format, "", validation.Score, false, err.Error())
		return nil, err
	}

	s.appendLog(ctx, view, channel, format, artifact.FileName, validation.Score, true, "")

	// 导出时间戳只是诊断信息，更新失败不应让已生成的文件作废
	if err := s.channelListingRepo.TouchExportedAt(ctx, view.ListingID, channel.ID, time.Now()); err != nil {
		s.logger.Warn("更新导出时间失败",
			zap.Int64("listing_id", view.ListingID),
			zap.String("channel", channel.Slug),
			zap.Error(err),
		)
	}

	s.logger.Info("导出完成",
		zap.Int64("listing_id", view.ListingID),
		zap.String("channel", channel.Slug),
		zap.String("format", format),
		zap.String("file_name", artifact.FileName),
		zap.Int("score", validation.Score),
	)

	return &ExportResult{Artifact: artifact, Validation: validation}, nil
}

// Preflight 预检：校验 + 检查清单，不写任何数据
func (s *ExportService) Preflight(ctx context.Context, listingID int64, channelSlug string) (*PreflightResult, error) {
	view, channel, exp, err := s.resolve(ctx, listingID, channelSlug)
	if err != nil {
		return nil, err
	}
	return &PreflightResult{
		Checks:     exp.PreflightChecks(view, channel),
		Validation: exp.Validate(view, channel),
	}, nil
}

// ListLogs 查询某刊登的导出历史（倒序）
func (s *ExportService) ListLogs(ctx context.Context, listingID int64, limit int) ([]model.ExportLog, error) {
	return s.logRepo.ListByListing(ctx, listingID, limit)
}

// ==================== 内部实现 ====================

// resolve 完成取数、覆盖合并与策略查找，是导出与预检的公共前半程
func (s *ExportService) resolve(ctx context.Context, listingID int64, channelSlug string) (*exporter.ResolvedListingView, *model.Channel, exporter.ChannelExporter, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: 刊登 %d", ErrNotFound, listingID)
		}
		return nil, nil, nil, fmt.Errorf("查询刊登失败: %v", err)
	}

	channel, err := s.channelRepo.GetBySlug(ctx, channelSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: 渠道 %s", ErrNotFound, channelSlug)
		}
		return nil, nil, nil, fmt.Errorf("查询渠道失败: %v", err)
	}

	exp, err := s.registry.Get(channel.Slug)
	if err != nil {
		return nil, nil, nil, err
	}

	override, err := s.channelListingRepo.GetByListingAndChannel(ctx, listingID, channel.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, fmt.Errorf("查询渠道覆盖失败: %v", err)
		}
		override = nil // 无覆盖，全量回退基础内容
	}

	return ResolveListingView(listing, override, channel), channel, exp, nil
}

// generateArtifact 按格式分派到对应的生成路径
func (s *ExportService) generateArtifact(ctx context.Context, view *exporter.ResolvedListingView, channel *model.Channel, exp exporter.ChannelExporter, format string) (*exporter.ExportArtifact, error) {
	switch format {
	case FormatFlat:
		return exp.Generate(view, channel)

	case FormatDocument:
		return s.packageSvc.BuildDocument(ctx, view, channel)

	case FormatPackage:
		flat, err := exp.Generate(view, channel)
		if err != nil {
			if !errors.Is(err, exporter.ErrGenerationUnsupported) {
				return nil, err
			}
			flat = nil // 该渠道族无平面文件，包里省略
		}
		return s.packageSvc.BuildPackage(ctx, view, channel, flat)

	default:
		return nil, fmt.Errorf("未知导出格式: %s", format)
	}
}

// appendLog 追加导出日志；日志写入失败只告警，不影响主流程
func (s *ExportService) appendLog(ctx context.Context, view *exporter.ResolvedListingView, channel *model.Channel, format, fileName string, score int, success bool, errMsg string) {
	entry := &model.ExportLog{
		ID:           uuid.NewString(),
		ListingID:    view.ListingID,
		ChannelID:    channel.ID,
		ChannelSlug:  channel.Slug,
		Format:       format,
		FileName:     fileName,
		Success:      success,
		ErrorMessage: errMsg,
		Score:        score,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("写入导出日志失败",
			zap.Int64("listing_id", view.ListingID),
			zap.String("channel", channel.Slug),
			zap.Error(err),
		)
	}
}
