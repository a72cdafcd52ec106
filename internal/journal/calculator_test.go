package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Long(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionLong,
		EntryPrice: 100,
		ExitPrice:  110,
		Leverage:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 20.00, metrics.PnlPercent)
	assert.Equal(t, ResultWin, metrics.Result)
	assert.Equal(t, 0.0, metrics.RiskReward)
}

func TestCompute_ShortWithRiskReward(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionShort,
		EntryPrice: 100,
		ExitPrice:  90,
		StopLoss:   105,
		TakeProfit: 80,
		Leverage:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.00, metrics.PnlPercent)
	assert.Equal(t, ResultWin, metrics.Result)
	// risk=5 reward=20
	assert.Equal(t, 4.00, metrics.RiskReward)
}

func TestCompute_ZeroPnlCountsAsLose(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionLong,
		EntryPrice: 100,
		ExitPrice:  100,
		Leverage:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, metrics.PnlPercent)
	assert.Equal(t, ResultLose, metrics.Result)
}

func TestCompute_LosingShort(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionShort,
		EntryPrice: 100,
		ExitPrice:  110,
		Leverage:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, -10.00, metrics.PnlPercent)
	assert.Equal(t, ResultLose, metrics.Result)
}

func TestCompute_RiskRewardUndefinedWithoutStop(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionLong,
		EntryPrice: 100,
		ExitPrice:  120,
		TakeProfit: 150,
		Leverage:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.RiskReward, "止损缺失时盈亏比应上报 0")
}

func TestCompute_Rounding(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionLong,
		EntryPrice: 3,
		ExitPrice:  4,
		Leverage:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 33.33, metrics.PnlPercent)
}

func TestCompute_DefaultLeverage(t *testing.T) {
	metrics, err := Compute(TradeInput{
		Position:   PositionLong,
		EntryPrice: 100,
		ExitPrice:  110,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.00, metrics.PnlPercent)
}

func TestCompute_PricesRequired(t *testing.T) {
	cases := []struct {
		name  string
		entry float64
		exit  float64
	}{
		{"zero entry", 0, 100},
		{"zero exit", 100, 0},
		{"both zero", 0, 0},
		{"negative entry", -1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(TradeInput{
				Position:   PositionLong,
				EntryPrice: tc.entry,
				ExitPrice:  tc.exit,
				Leverage:   1,
			})
			assert.ErrorIs(t, err, ErrPricesRequired)
		})
	}
}

func TestParsePosition(t *testing.T) {
	assert.Equal(t, PositionShort, ParsePosition("short"))
	assert.Equal(t, PositionShort, ParsePosition(" Short "))
	assert.Equal(t, PositionLong, ParsePosition("Long"))
	assert.Equal(t, PositionLong, ParsePosition(""))
	assert.Equal(t, PositionLong, ParsePosition("whatever"))
}
