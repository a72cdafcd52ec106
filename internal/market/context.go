package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cosmosider/O-bok-wan/internal/logger"
)

// BTC 日线趋势的展示值。
const (
	TrendBullish = "bullish candle"
	TrendBearish = "bearish candle"
	TrendNoData  = "no data"
	TrendUnknown = "-"
)

const dateKeyLayout = "2006-01-02"

// Context 是一笔交易落盘时附带的市场背景快照。
type Context struct {
	FearGreedValue int    `json:"fear_greed_value"`
	FearGreedLabel string `json:"fear_greed_label"`
	BTCTrend       string `json:"btc_trend"`
}

// FallbackContext 是采集失败时的兜底值，保证主流程不被阻塞。
func FallbackContext() Context {
	return Context{FearGreedValue: 0, FearGreedLabel: "-", BTCTrend: TrendNoData}
}

type contextCacheEntry struct {
	At   time.Time
	Data Context
}

// ContextService 按日期聚合恐惧贪婪指数与当日 BTC 日线趋势，
// 结果（含兜底结果）按日期键缓存一个 TTL 周期，避免重复网络请求。
type ContextService struct {
	feed   FearGreedFeed
	source CandleSource
	symbol string
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	cache    map[string]contextCacheEntry
	lookupMu sync.Mutex
}

func NewContextService(feed FearGreedFeed, source CandleSource, symbol string, ttl time.Duration) *ContextService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ContextService{
		feed:   feed,
		source: source,
		symbol: symbol,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]contextCacheEntry),
	}
}

// Get 返回目标日期的市场背景。任何采集失败都折算成 FallbackContext，
// 不向调用方返回错误。
func (s *ContextService) Get(ctx context.Context, day time.Time) Context {
	if s == nil {
		return FallbackContext()
	}
	key := day.Format(dateKeyLayout)
	if data, ok := s.cached(key); ok {
		return data
	}

	// 同一窗口内的并发请求只触发一次网络往返
	s.lookupMu.Lock()
	defer s.lookupMu.Unlock()
	if data, ok := s.cached(key); ok {
		return data
	}

	data, err := s.lookup(ctx, day)
	if err != nil {
		logger.Warnf("market: %s 市场背景采集失败，使用默认值: %v", key, err)
		data = FallbackContext()
	}
	s.mu.Lock()
	s.cache[key] = contextCacheEntry{At: s.now(), Data: data}
	s.mu.Unlock()
	return data
}

func (s *ContextService) cached(key string) (Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok || s.now().Sub(entry.At) >= s.ttl {
		return Context{}, false
	}
	return entry.Data, true
}

// lookup 是唯一接触网络的路径，任何一步失败都整体返回错误，
// 由 Get 统一折算成兜底值。不做重试。
func (s *ContextService) lookup(ctx context.Context, day time.Time) (Context, error) {
	if s.feed == nil || s.source == nil {
		return Context{}, fmt.Errorf("context service not initialized")
	}
	points, err := s.feed.FetchSeries(ctx)
	if err != nil {
		return Context{}, err
	}
	if len(points) == 0 {
		return Context{}, fmt.Errorf("fear & greed series empty")
	}

	// 精确匹配目标日期（本地日历日）；找不到时退回序列首项，
	// 即接口的最新一条，不做最近日期搜索。
	key := day.Format(dateKeyLayout)
	value := points[0].Value
	label := points[0].Classification
	for _, p := range points {
		if p.Timestamp.In(time.Local).Format(dateKeyLayout) == key {
			value = p.Value
			label = p.Classification
			break
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	candles, err := s.source.FetchDailyRange(ctx, s.symbol, start, start.AddDate(0, 0, 2))
	if err != nil {
		return Context{}, err
	}
	trend := TrendUnknown
	if len(candles) > 0 {
		if candles[0].Close > candles[0].Open {
			trend = TrendBullish
		} else {
			trend = TrendBearish
		}
	}

	return Context{
		FearGreedValue: value,
		FearGreedLabel: label,
		BTCTrend:       trend,
	}, nil
}
