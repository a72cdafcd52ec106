package config

import "strings"

const (
	defaultHTTPAddr          = ":8686"
	defaultDataPath          = "data/journal.csv"
	defaultSymbol            = "BTC/USDT"
	defaultFearGreedEndpoint = "https://api.alternative.me/fng/?limit=0"
)

func (c *Config) applyDefaults() {
	if c == nil {
		return
	}
	if strings.TrimSpace(c.App.Env) == "" {
		c.App.Env = "dev"
	}
	if strings.TrimSpace(c.App.LogLevel) == "" {
		c.App.LogLevel = "info"
	}
	if strings.TrimSpace(c.App.HTTPAddr) == "" {
		c.App.HTTPAddr = defaultHTTPAddr
	}
	if strings.TrimSpace(c.Journal.DataPath) == "" {
		c.Journal.DataPath = defaultDataPath
	}
	if strings.TrimSpace(c.Market.Symbol) == "" {
		c.Market.Symbol = defaultSymbol
	}
	if strings.TrimSpace(c.Market.FearGreedEndpoint) == "" {
		c.Market.FearGreedEndpoint = defaultFearGreedEndpoint
	}
	if c.Market.CacheTTLSeconds <= 0 {
		c.Market.CacheTTLSeconds = 3600
	}
	if c.Market.HTTPTimeoutSeconds <= 0 {
		c.Market.HTTPTimeoutSeconds = 10
	}
}
