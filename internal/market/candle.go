package market

import (
	"context"
	"time"
)

type Candle struct {
	OpenTime  int64   `json:"open_time"`
	CloseTime int64   `json:"close_time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// CandleSource 提供参考标的的日线行情。
type CandleSource interface {
	// FetchDailyRange 返回 [start, end) 区间内的日线，按时间升序。
	FetchDailyRange(ctx context.Context, symbol string, start, end time.Time) ([]Candle, error)
}
