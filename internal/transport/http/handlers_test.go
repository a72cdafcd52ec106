package journalhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosider/O-bok-wan/internal/journal"
	"github.com/cosmosider/O-bok-wan/internal/market"
)

type stubStore struct {
	records   []journal.TradeRecord
	appendErr error
}

func (s *stubStore) LoadAll() []journal.TradeRecord {
	return s.records
}

func (s *stubStore) Append(rec journal.TradeRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, rec)
	return nil
}

type stubContexts struct {
	data  market.Context
	calls int
}

func (s *stubContexts) Get(ctx context.Context, day time.Time) market.Context {
	s.calls++
	return s.data
}

func newTestServer(t *testing.T, store *stubStore, contexts *stubContexts) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Addr:     ":0",
		Store:    store,
		Contexts: contexts,
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestSubmitTrade_Success(t *testing.T) {
	store := &stubStore{}
	contexts := &stubContexts{data: market.Context{
		FearGreedValue: 75,
		FearGreedLabel: "Greed",
		BTCTrend:       market.TrendBullish,
	}}
	srv := newTestServer(t, store, contexts)

	w := doJSON(t, srv, http.MethodPost, "/api/trades", map[string]any{
		"ticker":      "BTC/USDT",
		"date":        "2026-08-30",
		"time":        "14:30",
		"position":    "Long",
		"leverage":    2,
		"entry_price": 100,
		"exit_price":  110,
		"stop_loss":   95,
		"take_profit": 120,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Record journal.TradeRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Record.ID)
	assert.Equal(t, 20.00, resp.Record.PnlPercent)
	assert.Equal(t, journal.ResultWin, resp.Record.Result)
	assert.Equal(t, 4.00, resp.Record.RiskReward)
	assert.Equal(t, 75, resp.Record.FearGreed)
	assert.Equal(t, "Greed", resp.Record.Sentiment)
	assert.Equal(t, market.TrendBullish, resp.Record.BTCTrend)

	require.Len(t, store.records, 1)
	assert.Equal(t, 1, contexts.calls)
}

func TestSubmitTrade_PricesRequired(t *testing.T) {
	store := &stubStore{}
	contexts := &stubContexts{}
	srv := newTestServer(t, store, contexts)

	w := doJSON(t, srv, http.MethodPost, "/api/trades", map[string]any{
		"ticker":      "BTC/USDT",
		"position":    "Long",
		"entry_price": 0,
		"exit_price":  110,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "prices required")
	// 校验失败不落盘、不触发行情采集
	assert.Empty(t, store.records)
	assert.Equal(t, 0, contexts.calls)
}

func TestSubmitTrade_AppendFailure(t *testing.T) {
	store := &stubStore{appendErr: fmt.Errorf("disk full")}
	contexts := &stubContexts{data: market.FallbackContext()}
	srv := newTestServer(t, store, contexts)

	w := doJSON(t, srv, http.MethodPost, "/api/trades", map[string]any{
		"position":    "Short",
		"entry_price": 100,
		"exit_price":  90,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSubmitTrade_EnrichmentFallbackStillPersists(t *testing.T) {
	store := &stubStore{}
	contexts := &stubContexts{data: market.FallbackContext()}
	srv := newTestServer(t, store, contexts)

	w := doJSON(t, srv, http.MethodPost, "/api/trades", map[string]any{
		"position":    "Long",
		"entry_price": 100,
		"exit_price":  105,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.records, 1)
	assert.Equal(t, 0, store.records[0].FearGreed)
	assert.Equal(t, "-", store.records[0].Sentiment)
	assert.Equal(t, market.TrendNoData, store.records[0].BTCTrend)
}

func TestListTrades(t *testing.T) {
	store := &stubStore{records: []journal.TradeRecord{
		{ID: "a", Ticker: "BTC/USDT"},
		{ID: "b", Ticker: "ETH/USDT"},
	}}
	srv := newTestServer(t, store, &stubContexts{})

	w := doJSON(t, srv, http.MethodGet, "/api/trades", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []journal.TradeRecord `json:"records"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "a", resp.Records[0].ID)
}

func TestHistoryPage_NewestFirst(t *testing.T) {
	store := &stubStore{records: []journal.TradeRecord{
		{ID: "old", Ticker: "FIRST", Result: journal.ResultWin},
		{ID: "new", Ticker: "SECOND", Result: journal.ResultLose},
	}}
	srv := newTestServer(t, store, &stubContexts{})

	w := doJSON(t, srv, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "FIRST")
	assert.Contains(t, body, "SECOND")
	assert.Less(t, bytes.Index(w.Body.Bytes(), []byte("SECOND")), bytes.Index(w.Body.Bytes(), []byte("FIRST")))
}

func TestStatsPage_EmptyStore(t *testing.T) {
	srv := newTestServer(t, &stubStore{}, &stubContexts{})

	w := doJSON(t, srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough data")
}

func TestStatsPage_RendersCharts(t *testing.T) {
	store := &stubStore{records: []journal.TradeRecord{
		{ID: "a", Ticker: "BTC/USDT", PnlPercent: 12.5, Result: journal.ResultWin, FearGreed: 80, BTCTrend: market.TrendBullish},
		{ID: "b", Ticker: "ETH/USDT", PnlPercent: -4.2, Result: journal.ResultLose, FearGreed: 22, BTCTrend: market.TrendBearish},
	}}
	srv := newTestServer(t, store, &stubContexts{})

	w := doJSON(t, srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echarts")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubStore{}, &stubContexts{})
	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFormPage(t *testing.T) {
	srv := newTestServer(t, &stubStore{}, &stubContexts{})
	w := doJSON(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trade-form")
}
