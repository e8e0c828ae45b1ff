package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listing_export_v1/internal/api/dto"
	"listing_export_v1/internal/service"
)

// ==================== 控制器 ====================

// ChannelController 渠道目录控制器
type ChannelController struct {
	channelService *service.ChannelService
}

func NewChannelController(channelService *service.ChannelService) *ChannelController {
	return &ChannelController{channelService: channelService}
}

// ==================== API 方法 ====================

// ListChannels 渠道目录
// @Summary 列出全部渠道及其内容规则摘要
// @Tags Channel
// @Produce json
// @Success 200 {object} []dto.ChannelVO
// @Router /api/channels [get]
func (ctrl *ChannelController) ListChannels(c *gin.Context) {
	ctx := c.Request.Context()
	channels, err := ctrl.channelService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	vos := make([]dto.ChannelVO, 0, len(channels))
	for i := range channels {
		vos = append(vos, dto.NewChannelVO(&channels[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    vos,
	})
}
