package journal

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPricesRequired 表示进出场价格缺失，调用方应拒绝本次提交。
var ErrPricesRequired = errors.New("prices required")

// TradeInput 是一次提交的原始交易参数。
type TradeInput struct {
	Position   Position
	EntryPrice float64
	ExitPrice  float64
	StopLoss   float64
	TakeProfit float64
	Leverage   float64
}

// TradeMetrics 是计算结果，数值均已四舍五入到两位小数。
type TradeMetrics struct {
	PnlPercent float64
	Result     Result
	RiskReward float64
}

var dec100 = decimal.NewFromInt(100)

// Compute 计算收益率、胜负与盈亏比。纯函数，无副作用。
//
// Long:  pnl% = (exit-entry)/entry * leverage * 100
// Short: pnl% = (entry-exit)/entry * leverage * 100
// 胜负以四舍五入前的收益率判定，0 记为 Lose。
// 止损价为 0 时风险未定义，盈亏比按 0 上报。
func Compute(in TradeInput) (TradeMetrics, error) {
	if in.EntryPrice <= 0 || in.ExitPrice <= 0 {
		return TradeMetrics{}, ErrPricesRequired
	}
	lev := in.Leverage
	if lev <= 0 {
		lev = 1
	}
	entry := decimal.NewFromFloat(in.EntryPrice)
	exit := decimal.NewFromFloat(in.ExitPrice)

	move := exit.Sub(entry)
	if in.Position == PositionShort {
		move = entry.Sub(exit)
	}
	pnl := move.Div(entry).Mul(decimal.NewFromFloat(lev)).Mul(dec100)

	result := ResultLose
	if pnl.IsPositive() {
		result = ResultWin
	}

	risk := decimal.Zero
	if in.StopLoss > 0 {
		risk = entry.Sub(decimal.NewFromFloat(in.StopLoss)).Abs()
	}
	reward := decimal.Zero
	if in.TakeProfit > 0 {
		reward = decimal.NewFromFloat(in.TakeProfit).Sub(entry).Abs()
	}
	rr := decimal.Zero
	if risk.IsPositive() {
		rr = reward.Div(risk)
	}

	pnlOut, _ := pnl.Round(2).Float64()
	rrOut, _ := rr.Round(2).Float64()
	return TradeMetrics{
		PnlPercent: pnlOut,
		Result:     result,
		RiskReward: rrOut,
	}, nil
}
