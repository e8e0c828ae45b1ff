package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"listing_export_v1/internal/controller"
	"listing_export_v1/internal/middleware"

	_ "listing_export_v1/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	exportCtl *controller.ExportController,
	channelCtl *controller.ChannelController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// exports 导出组
		exports := api.Group("/exports")
		{
			// POST /api/exports
			exports.POST("", exportCtl.GenerateExport)

			// GET /api/exports/preflight
			// 只读预检，不生成文件、不写日志
			exports.GET("/preflight", exportCtl.Preflight)

			// GET /api/exports/logs
			exports.GET("/logs", exportCtl.ListLogs)
		}

		// channels 渠道目录
		channels := api.Group("/channels")
		{
			// GET /api/channels
			channels.GET("", channelCtl.ListChannels)
		}
	}
}
