package service

import (
	"context"

	"go.uber.org/zap"

	"listing_export_v1/internal/model"
	"listing_export_v1/internal/repository"
)

// ==================== 服务 ====================

// ChannelService 渠道目录服务
type ChannelService struct {
	channelRepo repository.ChannelRepository
	logger      *zap.Logger
}

// NewChannelService 创建渠道目录服务
func NewChannelService(channelRepo repository.ChannelRepository, logger *zap.Logger) *ChannelService {
	return &ChannelService{channelRepo: channelRepo, logger: logger}
}

// List 列出全部渠道
func (s *ChannelService) List(ctx context.Context) ([]model.Channel, error) {
	return s.channelRepo.ListAll(ctx)
}

// EnsureDefaults 播种内置渠道目录（启动时调用，幂等）
func (s *ChannelService) EnsureDefaults(ctx context.Context) error {
	if err := s.channelRepo.EnsureSeeded(ctx, model.DefaultChannels()); err != nil {
		return err
	}
	s.logger.Info("内置渠道目录就绪")
	return nil
}
