package journal

import (
	"strings"
	"time"
)

// Position 表示仓位方向。
type Position string

const (
	PositionLong  Position = "Long"
	PositionShort Position = "Short"
)

// ParsePosition 把用户输入归一化为 Long/Short，默认 Long。
func ParsePosition(raw string) Position {
	if strings.EqualFold(strings.TrimSpace(raw), string(PositionShort)) {
		return PositionShort
	}
	return PositionLong
}

// Result 表示单笔交易的胜负判定。
type Result string

const (
	ResultWin  Result = "Win"
	ResultLose Result = "Lose"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// DateTime 包装 time.Time，提供 CSV 列的序列化格式。
// 历史文件里该列缺失或无法解析时保持零值，不影响整行读取。
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (dt DateTime) MarshalCSV() (string, error) {
	if dt.IsZero() {
		return "", nil
	}
	return dt.Format(dateTimeLayout), nil
}

func (dt *DateTime) UnmarshalCSV(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		dt.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, raw, time.Local)
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}

// TradeRecord 是一条已落盘的交易日志，写入后不再修改。
type TradeRecord struct {
	ID         string   `csv:"id" json:"id"`
	EntryTime  DateTime `csv:"entry_time" json:"entry_time"`
	Ticker     string   `csv:"ticker" json:"ticker"`
	Position   Position `csv:"position" json:"position"`
	Leverage   float64  `csv:"leverage" json:"leverage"`
	PnlPercent float64  `csv:"pnl_percent" json:"pnl_percent"`
	Result     Result   `csv:"result" json:"result"`
	RiskReward float64  `csv:"risk_reward" json:"risk_reward"`
	FearGreed  int      `csv:"fear_greed" json:"fear_greed"`
	Sentiment  string   `csv:"sentiment" json:"sentiment"`
	BTCTrend   string   `csv:"btc_trend" json:"btc_trend"`
}
