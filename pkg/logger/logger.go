package logger

import (
	"go.uber.org/zap"
)

// New 创建结构化日志器
// debug 模式下用开发配置（彩色、可读），否则走 JSON 生产配置
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
