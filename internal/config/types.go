package config

import "time"

// Config 是交易日志服务的主配置载体。
type Config struct {
	App     AppConfig     `toml:"app"`
	Journal JournalConfig `toml:"journal"`
	Market  MarketConfig  `toml:"market"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

type JournalConfig struct {
	DataPath string `toml:"data_path"`
}

// MarketConfig 控制行情上下文采集（恐惧贪婪指数 + BTC 日线）。
type MarketConfig struct {
	Symbol             string        `toml:"symbol"`
	FearGreedEndpoint  string        `toml:"fear_greed_endpoint"`
	CacheTTLSeconds    int           `toml:"cache_ttl_seconds"`
	HTTPTimeoutSeconds int           `toml:"http_timeout_seconds"`
	Binance            BinanceConfig `toml:"binance"`
}

type BinanceConfig struct {
	RESTBaseURL string `toml:"rest_base_url"`
	ProxyURL    string `toml:"proxy_url"`
}

func (m MarketConfig) CacheTTL() time.Duration {
	if m.CacheTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(m.CacheTTLSeconds) * time.Second
}

func (m MarketConfig) HTTPTimeout() time.Duration {
	if m.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.HTTPTimeoutSeconds) * time.Second
}
