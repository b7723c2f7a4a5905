package config

import (
	"errors"
	"fmt"

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

// setDefaults 声誉与调度相关的兜底默认值
func setDefaults() {
	viper.SetDefault("reputation.game_confidence", 5.0)
	viper.SetDefault("reputation.game_prior", 3.5)
	viper.SetDefault("reputation.user_confidence", 5.0)
	viper.SetDefault("reputation.user_prior", 3.5)
	viper.SetDefault("reputation.weights.review", 0.45)
	viper.SetDefault("reputation.weights.skill", 0.30)
	viper.SetDefault("reputation.weights.reliability", 0.15)
	viper.SetDefault("reputation.weights.participation", 0.10)
	viper.SetDefault("reputation.cache_ttl_minutes", 5)

	viper.SetDefault("moderation.flag_threshold", 3)

	viper.SetDefault("scheduler.workers", 4)
	viper.SetDefault("scheduler.queue_size", 4096)
	viper.SetDefault("scheduler.recompute_timeout", 10)
	viper.SetDefault("scheduler.sweep_cron", "@every 30m")

	viper.SetDefault("signals.timeout_millis", 800)
	viper.SetDefault("signals.cache_ttl_minutes", 10)
}
