package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"listing_export_v1/internal/api/dto"
	"listing_export_v1/internal/exporter"
	"listing_export_v1/internal/service"
)

// ==================== 控制器 ====================

// ExportController 导出控制器
type ExportController struct {
	exportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// ==================== API 方法 ====================

// GenerateExport 生成导出
// @Summary 为指定刊登与渠道生成导出产物
// @Tags Export
// @Accept json
// @Produce json
// @Param body body dto.GenerateExportRequest true "导出请求"
// @Success 200 {object} dto.ExportResponse
// @Router /api/exports [post]
func (ctrl *ExportController) GenerateExport(c *gin.Context) {
	var req dto.GenerateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	if req.Format == "" {
		req.Format = service.FormatFlat
	}

	ctx := c.Request.Context()
	result, err := ctrl.exportService.GenerateExport(ctx, req.ListingID, req.Channel, req.Format)
	if err != nil {
		ctrl.writeExportError(c, result, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ExportResponse{
			File:       dto.NewExportFileVO(result.Artifact),
			Validation: dto.NewValidationVO(result.Validation),
		},
	})
}

// Preflight 导出预检
// @Summary 只读预检，不生成文件、不写日志
// @Tags Export
// @Produce json
// @Param listing_id query int true "刊登ID"
// @Param channel query string true "渠道标识"
// @Success 200 {object} dto.PreflightResponse
// @Router /api/exports/preflight [get]
func (ctrl *ExportController) Preflight(c *gin.Context) {
	var req dto.PreflightRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	result, err := ctrl.exportService.Preflight(ctx, req.ListingID, req.Channel)
	if err != nil {
		ctrl.writeExportError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.PreflightResponse{
			Checks:     dto.NewPreflightCheckVOs(result.Checks),
			Validation: dto.NewValidationVO(result.Validation),
		},
	})
}

// ListLogs 导出历史
// @Summary 查询某刊登的导出历史（倒序）
// @Tags Export
// @Produce json
// @Param listing_id query int true "刊登ID"
// @Param limit query int false "返回条数，默认50，最大100"
// @Success 200 {object} []dto.ExportLogVO
// @Router /api/exports/logs [get]
func (ctrl *ExportController) ListLogs(c *gin.Context) {
	var req dto.ListExportLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	logs, err := ctrl.exportService.ListLogs(ctx, req.ListingID, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	vos := make([]dto.ExportLogVO, 0, len(logs))
	for i := range logs {
		vos = append(vos, dto.NewExportLogVO(&logs[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    vos,
	})
}

// ==================== 错误映射 ====================

// writeExportError 将服务层错误映射为 HTTP 响应
// 校验阻断返回 400 并附带完整校验详情，便于前端直接展示
func (ctrl *ExportController) writeExportError(c *gin.Context, result *service.ExportResult, err error) {
	var unsupported *exporter.UnsupportedChannelError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
		})

	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": unsupported.Error(),
			"data": gin.H{
				"supported_channels": unsupported.Supported,
			},
		})

	case errors.Is(err, service.ErrValidationBlocked):
		resp := gin.H{
			"code":    400,
			"message": err.Error(),
		}
		if result != nil && result.Validation != nil {
			resp["data"] = gin.H{
				"validation": dto.NewValidationVO(result.Validation),
			}
		}
		c.JSON(http.StatusBadRequest, resp)

	case errors.Is(err, exporter.ErrGenerationUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "导出失败: " + err.Error(),
		})
	}
}
