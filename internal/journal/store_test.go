package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "journal.csv"))
}

func sampleRecord(ticker string) TradeRecord {
	return TradeRecord{
		ID:         "rec-" + ticker,
		EntryTime:  NewDateTime(time.Date(2026, 8, 30, 14, 30, 0, 0, time.Local)),
		Ticker:     ticker,
		Position:   PositionLong,
		Leverage:   2,
		PnlPercent: 20.00,
		Result:     ResultWin,
		RiskReward: 1.5,
		FearGreed:  72,
		Sentiment:  "Greed",
		BTCTrend:   "bullish candle",
	}
}

func TestStore_LoadAllMissingFile(t *testing.T) {
	store := tempStore(t)
	assert.Empty(t, store.LoadAll())
}

func TestStore_AppendThenLoad(t *testing.T) {
	store := tempStore(t)
	rec := sampleRecord("BTC/USDT")
	require.NoError(t, store.Append(rec))

	loaded := store.LoadAll()
	require.Len(t, loaded, 1)
	assert.Equal(t, rec, loaded[0])
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	store := tempStore(t)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("SYM%d", i))
		require.NoError(t, store.Append(rec))
	}
	loaded := store.LoadAll()
	require.Len(t, loaded, 5)
	for i, rec := range loaded {
		assert.Equal(t, fmt.Sprintf("SYM%d", i), rec.Ticker)
	}
}

func TestStore_MalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	garbage := "id,entry_time,ticker\n\"unterminated quote,nope\nmore,garbage"
	require.NoError(t, os.WriteFile(path, []byte(garbage), 0o644))

	store := NewStore(path)
	assert.Empty(t, store.LoadAll())
}

func TestStore_EmptyFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.Empty(t, NewStore(path).LoadAll())
}

func TestStore_MissingTimestampColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	content := "ticker,position,pnl_percent,result\nETH/USDT,Short,-3.5,Lose\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewStore(path)
	loaded := store.LoadAll()
	require.Len(t, loaded, 1)
	assert.Equal(t, "ETH/USDT", loaded[0].Ticker)
	assert.Equal(t, PositionShort, loaded[0].Position)
	assert.True(t, loaded[0].EntryTime.IsZero())

	// 追加后新列齐全，旧行数据保留
	require.NoError(t, store.Append(sampleRecord("BTC/USDT")))
	loaded = store.LoadAll()
	require.Len(t, loaded, 2)
	assert.Equal(t, "ETH/USDT", loaded[0].Ticker)
	assert.Equal(t, "BTC/USDT", loaded[1].Ticker)
}

func TestStore_AppendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.csv")
	store := NewStore(path)
	require.NoError(t, store.Append(sampleRecord("BTC/USDT")))
	assert.Len(t, store.LoadAll(), 1)
}
