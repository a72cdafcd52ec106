package visual

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/cosmosider/O-bok-wan/internal/journal"
	"github.com/cosmosider/O-bok-wan/internal/market"
)

const (
	colorBackground    = "#060c1b"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"
	colorWin           = "#34d399"
	colorLose          = "#f87171"

	chartWidthPx  = 760
	chartHeightPx = 480
)

// BuildStatsPage 把交易历史汇总成两张图：
// 恐惧贪婪指数 vs 收益率的散点图，以及 BTC 趋势下的胜负计数柱状图。
func BuildStatsPage(records []journal.TradeRecord) *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(buildSentimentScatter(records), buildTrendBar(records))
	return page
}

// RenderStatsHTML 渲染整页 HTML，供 HTTP 响应与 PNG 截图复用。
func RenderStatsHTML(records []journal.TradeRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to chart")
	}
	var buf bytes.Buffer
	if err := BuildStatsPage(records).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chartInit() opts.Initialization {
	return opts.Initialization{
		Theme:           types.ThemeWesteros,
		Width:           fmt.Sprintf("%dpx", chartWidthPx),
		Height:          fmt.Sprintf("%dpx", chartHeightPx),
		BackgroundColor: colorBackground,
	}
}

func buildSentimentScatter(records []journal.TradeRecord) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit()),
		charts.WithTitleOpts(opts.Title{
			Title:      "Fear & Greed vs Return",
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), TextStyle: &opts.TextStyle{Color: colorTextPrimary}}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "value",
			Name:      "Fear & Greed",
			Min:       0,
			Max:       100,
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.15)}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Name:      "PnL %",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.15)}},
		}),
	)

	winData := make([]opts.ScatterData, 0, len(records))
	loseData := make([]opts.ScatterData, 0, len(records))
	for _, rec := range records {
		point := opts.ScatterData{
			Name:       rec.Ticker,
			Value:      []interface{}{rec.FearGreed, rec.PnlPercent},
			SymbolSize: 12,
		}
		if rec.Result == journal.ResultWin {
			winData = append(winData, point)
		} else {
			loseData = append(loseData, point)
		}
	}
	scatter.AddSeries("Win", winData, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorWin}))
	scatter.AddSeries("Lose", loseData, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorLose}))
	return scatter
}

func buildTrendBar(records []journal.TradeRecord) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit()),
		charts.WithTitleOpts(opts.Title{
			Title:      "Outcome by BTC Trend",
			Left:       "left",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), TextStyle: &opts.TextStyle{Color: colorTextPrimary}}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.15)}},
		}),
	)

	categories, wins, loses := countByTrend(records)
	winData := make([]opts.BarData, len(categories))
	loseData := make([]opts.BarData, len(categories))
	for i := range categories {
		winData[i] = opts.BarData{Value: wins[i], ItemStyle: &opts.ItemStyle{Color: colorWin}}
		loseData[i] = opts.BarData{Value: loses[i], ItemStyle: &opts.ItemStyle{Color: colorLose}}
	}
	bar.SetXAxis(categories)
	bar.AddSeries("Win", winData, charts.WithBarChartOpts(opts.BarChart{Stack: "outcome"}))
	bar.AddSeries("Lose", loseData, charts.WithBarChartOpts(opts.BarChart{Stack: "outcome"}))
	return bar
}

// countByTrend 统计各趋势分类下的胜负次数。
// 分类按固定展示顺序输出，历史文件里出现的未知趋势值按首次出现顺序排在末尾。
func countByTrend(records []journal.TradeRecord) (categories []string, wins, loses []int) {
	seen := make(map[string]bool)
	var extras []string
	for _, rec := range records {
		trend := normalizeTrend(rec.BTCTrend)
		if seen[trend] {
			continue
		}
		seen[trend] = true
		if !knownTrend(trend) {
			extras = append(extras, trend)
		}
	}
	for _, trend := range []string{market.TrendBullish, market.TrendBearish, market.TrendNoData, market.TrendUnknown} {
		if seen[trend] {
			categories = append(categories, trend)
		}
	}
	categories = append(categories, extras...)

	index := make(map[string]int, len(categories))
	for i, trend := range categories {
		index[trend] = i
	}
	wins = make([]int, len(categories))
	loses = make([]int, len(categories))
	for _, rec := range records {
		i := index[normalizeTrend(rec.BTCTrend)]
		if rec.Result == journal.ResultWin {
			wins[i]++
		} else {
			loses[i]++
		}
	}
	return categories, wins, loses
}

func normalizeTrend(trend string) string {
	if trend == "" {
		return market.TrendUnknown
	}
	return trend
}

func knownTrend(trend string) bool {
	switch trend {
	case market.TrendBullish, market.TrendBearish, market.TrendNoData, market.TrendUnknown:
		return true
	}
	return false
}
