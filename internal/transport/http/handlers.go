package journalhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cosmosider/O-bok-wan/internal/analysis/visual"
	"github.com/cosmosider/O-bok-wan/internal/journal"
	"github.com/cosmosider/O-bok-wan/internal/logger"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	snapshotWidthPx  = 1600
	snapshotHeightPx = 620
)

type handler struct {
	store    RecordStore
	contexts ContextProvider
}

func (h *handler) register(router *gin.Engine) {
	router.GET("/", h.formPage)
	router.GET("/history", h.historyPage)
	router.GET("/stats", h.statsPage)
	router.GET("/stats/snapshot.png", h.statsSnapshot)

	api := router.Group("/api")
	api.POST("/trades", h.submitTrade)
	api.GET("/trades", h.listTrades)
}

type tradeRequest struct {
	Ticker     string  `json:"ticker"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Position   string  `json:"position"`
	Leverage   float64 `json:"leverage"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
}

// entryTime 把表单的日期/时间合并成进入时刻；日期缺省用当天。
func (r tradeRequest) entryTime() time.Time {
	now := time.Now()
	day := now
	if raw := strings.TrimSpace(r.Date); raw != "" {
		if parsed, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
			day = parsed
		}
	}
	hour, minute := 0, 0
	if raw := strings.TrimSpace(r.Time); raw != "" {
		if parsed, err := time.Parse(timeLayout, raw); err == nil {
			hour, minute = parsed.Hour(), parsed.Minute()
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func (h *handler) submitTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	metrics, err := journal.Compute(journal.TradeInput{
		Position:   journal.ParsePosition(req.Position),
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Leverage:   req.Leverage,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entryTime := req.entryTime()
	mctx := h.contexts.Get(c.Request.Context(), entryTime)

	leverage := req.Leverage
	if leverage <= 0 {
		leverage = 1
	}
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		ticker = "BTC/USDT"
	}
	rec := journal.TradeRecord{
		ID:         uuid.NewString(),
		EntryTime:  journal.NewDateTime(entryTime),
		Ticker:     ticker,
		Position:   journal.ParsePosition(req.Position),
		Leverage:   leverage,
		PnlPercent: metrics.PnlPercent,
		Result:     metrics.Result,
		RiskReward: metrics.RiskReward,
		FearGreed:  mctx.FearGreedValue,
		Sentiment:  mctx.FearGreedLabel,
		BTCTrend:   mctx.BTCTrend,
	}
	if err := h.store.Append(rec); err != nil {
		logger.Errorf("journal: 写入记录失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving record failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

func (h *handler) listTrades(c *gin.Context) {
	records := h.store.LoadAll()
	if records == nil {
		records = []journal.TradeRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

func (h *handler) formPage(c *gin.Context) {
	now := time.Now()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Today": now.Format(dateLayout),
		"Now":   now.Format(timeLayout),
	})
}

func (h *handler) historyPage(c *gin.Context) {
	records := h.store.LoadAll()
	// 最近的记录排在最上面
	reversed := make([]journal.TradeRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	c.HTML(http.StatusOK, "history.html", gin.H{
		"Records": reversed,
		"Count":   len(records),
	})
}

func (h *handler) statsPage(c *gin.Context) {
	records := h.store.LoadAll()
	if len(records) == 0 {
		c.HTML(http.StatusOK, "message.html", gin.H{
			"Title":   "Stats",
			"Message": "Not enough data to chart yet.",
		})
		return
	}
	html, err := visual.RenderStatsHTML(records)
	if err != nil {
		logger.Errorf("stats: 渲染图表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering charts failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *handler) statsSnapshot(c *gin.Context) {
	records := h.store.LoadAll()
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records to chart"})
		return
	}
	html, err := visual.RenderStatsHTML(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rendering charts failed"})
		return
	}
	png, err := visual.RenderHTMLToPNG(c.Request.Context(), html, snapshotWidthPx, snapshotHeightPx)
	if err != nil {
		logger.Errorf("stats: 截图失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
