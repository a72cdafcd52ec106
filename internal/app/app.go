package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cosmosider/O-bok-wan/internal/config"
	"github.com/cosmosider/O-bok-wan/internal/gateway/binance"
	"github.com/cosmosider/O-bok-wan/internal/journal"
	"github.com/cosmosider/O-bok-wan/internal/logger"
	"github.com/cosmosider/O-bok-wan/internal/market"
	journalhttp "github.com/cosmosider/O-bok-wan/internal/transport/http"
)

// App 负责应用级编排：配置 → 依赖装配 → 启动 HTTP 服务。
type App struct {
	cfg    *config.Config
	server *journalhttp.Server
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	store := journal.NewStore(cfg.Journal.DataPath)

	source, err := binance.New(binance.Config{
		RESTBaseURL: cfg.Market.Binance.RESTBaseURL,
		HTTPTimeout: cfg.Market.HTTPTimeout(),
		ProxyURL:    cfg.Market.Binance.ProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("building binance source failed: %w", err)
	}
	feed := market.NewAlternativeFeed(cfg.Market.FearGreedEndpoint, cfg.Market.HTTPTimeout())
	contexts := market.NewContextService(feed, source, cfg.Market.Symbol, cfg.Market.CacheTTL())

	server, err := journalhttp.NewServer(journalhttp.ServerConfig{
		Addr:     cfg.App.HTTPAddr,
		Store:    store,
		Contexts: contexts,
	})
	if err != nil {
		return nil, fmt.Errorf("building http server failed: %w", err)
	}

	return &App{cfg: cfg, server: server}, nil
}

// Run 启动 HTTP 服务，阻塞到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("journal: 服务启动，监听 %s，数据文件 %s", a.server.Addr(), a.cfg.Journal.DataPath)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}
