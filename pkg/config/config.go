package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置 ====================

// Config 服务配置
type Config struct {
	ServerPort       string        `mapstructure:"server_port"`
	DatabaseDSN      string        `mapstructure:"database_dsn"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	Debug            bool          `mapstructure:"debug"`
	LogRetentionDays int           `mapstructure:"log_retention_days"`
	DownloadTimeout  time.Duration `mapstructure:"download_timeout"`
}

// Load 加载配置：环境变量优先，其次工作目录下的 config.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server_port", "8080")
	v.SetDefault("database_dsn", "host=localhost user=listing_admin password=1234 dbname=listing_export port=5432 sslmode=disable")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("debug", false)
	v.SetDefault("log_retention_days", 90)
	v.SetDefault("download_timeout", "20s")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// 配置文件可选，没有就全用环境变量和默认值
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
