package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// setDefaults 社区审核与榜单的默认策略，配置文件可覆盖
func setDefaults() {
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("community.quorum", 5)
	viper.SetDefault("community.approval_ratio", 0.6)

	viper.SetDefault("rate_limit.vote.window", time.Hour)
	viper.SetDefault("rate_limit.vote.max_count", 20)
	viper.SetDefault("rate_limit.share.window", 24*time.Hour)
	viper.SetDefault("rate_limit.share.max_count", 5)

	viper.SetDefault("leaderboard.rebuild_spec", "@every 10m")
	viper.SetDefault("leaderboard.top_n", 100)
	viper.SetDefault("leaderboard.cache_ttl", time.Minute)
}
