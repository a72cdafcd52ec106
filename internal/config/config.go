package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取 yaml 配置并套用默认值；文件不存在时直接返回默认配置。
func Load(path string) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		cfg.applyDefaults()
		return &cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyDefaults()
		return &cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if !strings.HasPrefix(cfg.Market.FearGreedEndpoint, "http") {
		return fmt.Errorf("market.fear_greed_endpoint must be an http(s) url")
	}
	if strings.TrimSpace(cfg.Journal.DataPath) == "" {
		return fmt.Errorf("journal.data_path cannot be empty")
	}
	return nil
}
