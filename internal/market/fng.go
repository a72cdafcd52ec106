package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// FearGreedPoint 是情绪指数序列里的一个采样点。
type FearGreedPoint struct {
	Value          int
	Classification string
	Timestamp      time.Time
}

// FearGreedFeed 拉取完整的恐惧贪婪指数历史序列。
type FearGreedFeed interface {
	FetchSeries(ctx context.Context) ([]FearGreedPoint, error)
}

// AlternativeFeed 对接 alternative.me 的 /fng 接口。
// 接口返回的 value/timestamp 可能是字符串也可能是数字，用 gjson 做宽松解析。
type AlternativeFeed struct {
	endpoint string
	client   *http.Client
}

func NewAlternativeFeed(endpoint string, timeout time.Duration) *AlternativeFeed {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AlternativeFeed{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (f *AlternativeFeed) FetchSeries(ctx context.Context) ([]FearGreedPoint, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("fear & greed feed not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseFearGreedSeries(body)
}

func parseFearGreedSeries(body []byte) ([]FearGreedPoint, error) {
	doc := gjson.ParseBytes(body)
	if meta := doc.Get("metadata.error"); meta.Exists() && meta.Type != gjson.Null {
		return nil, fmt.Errorf("api error: %s", meta.String())
	}
	data := doc.Get("data")
	if !data.IsArray() {
		return nil, fmt.Errorf("api data missing")
	}
	points := make([]FearGreedPoint, 0, len(data.Array()))
	for _, item := range data.Array() {
		classification := strings.TrimSpace(item.Get("value_classification").String())
		value := item.Get("value")
		ts := item.Get("timestamp")
		if !value.Exists() || !ts.Exists() {
			continue
		}
		points = append(points, FearGreedPoint{
			Value:          int(value.Int()),
			Classification: classification,
			Timestamp:      time.Unix(ts.Int(), 0),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("api data empty")
	}
	return points, nil
}
