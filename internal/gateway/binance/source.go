package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sdk "github.com/adshao/go-binance/v2"

	"github.com/cosmosider/O-bok-wan/internal/market"
)

// Source 基于 go-binance SDK 实现 market.CandleSource。
type Source struct {
	cfg    Config
	client *sdk.Client
}

func New(cfg Config) (*Source, error) {
	final := cfg.withDefaults()
	client := sdk.NewClient("", "")
	client.BaseURL = final.RESTBaseURL
	httpClient := &http.Client{Timeout: final.HTTPTimeout}
	if final.ProxyURL != "" {
		proxyURL, err := url.Parse(final.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	client.HTTPClient = httpClient
	return &Source{cfg: final, client: client}, nil
}

// FetchDailyRange 拉取 [start, end) 的日线。
// Binance 的 endTime 是闭区间，所以减 1ms。
func (s *Source) FetchDailyRange(ctx context.Context, symbol string, start, end time.Time) ([]market.Candle, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("invalid range: %s >= %s", start, end)
	}
	// Binance requires symbols without slashes (e.g., BTCUSDT)
	cleanSymbol := strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))

	svc := s.client.NewKlinesService().
		Symbol(cleanSymbol).
		Interval("1d").
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli() - 1)
	kls, err := svc.Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]market.Candle, 0, len(kls))
	for _, kl := range kls {
		if kl == nil {
			continue
		}
		out = append(out, market.Candle{
			OpenTime:  kl.OpenTime,
			CloseTime: kl.CloseTime,
			Open:      parseFloat(kl.Open),
			High:      parseFloat(kl.High),
			Low:       parseFloat(kl.Low),
			Close:     parseFloat(kl.Close),
			Volume:    parseFloat(kl.Volume),
		})
	}
	return out, nil
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return f
}
