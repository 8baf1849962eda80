package analytics

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/DragosCt10/trading-tracker/internal/types"
)

func sampleTrades() []types.Trade {
	return []types.Trade{
		{Market: "EURUSD", Direction: types.Long, Outcome: types.Win, RiskReward: 3, Session: "London", ProfitLoss: decimal.NewFromInt(300)},
		{Market: "EURUSD", Direction: types.Short, Outcome: types.Loss, ProfitLoss: decimal.NewFromInt(-100)},
		{Market: "GBPUSD", Direction: types.Long, Outcome: types.BreakEven, Session: "London", ProfitLoss: decimal.Zero},
		{Market: "GBPUSD", Direction: types.Long, Outcome: types.Win, RiskReward: 2, Session: "New York", ProfitLoss: decimal.NewFromInt(100)},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTrades())

	if s.Trades != 4 || s.Wins != 2 || s.Losses != 1 || s.BreakEvens != 1 {
		t.Fatalf("Unexpected counts: %+v", s)
	}
	// Break-evens do not dilute the win rate.
	if !almostEqual(s.WinRate, 2.0/3.0) {
		t.Errorf("Expected win rate 2/3, got %f", s.WinRate)
	}
	if !almostEqual(s.ProfitFactor, 4.0) {
		t.Errorf("Expected profit factor 4, got %f", s.ProfitFactor)
	}
	// (+3R, -1R, 0R, +2R) over 4 trades.
	if !almostEqual(s.Expectancy, 1.0) {
		t.Errorf("Expected expectancy 1R, got %f", s.Expectancy)
	}
	if !s.NetPnL.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected net 300, got %s", s.NetPnL)
	}
	if !s.AvgWin.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected avg win 200, got %s", s.AvgWin)
	}
	if !s.AvgLoss.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected avg loss 100, got %s", s.AvgLoss)
	}
	if !s.MaxDrawdown.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected max drawdown 100, got %s", s.MaxDrawdown)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Trades != 0 || s.WinRate != 0 || s.ProfitFactor != 0 || s.Expectancy != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
	if !s.MaxDrawdown.Equal(decimal.Zero) {
		t.Errorf("Expected zero drawdown, got %s", s.MaxDrawdown)
	}
}

func TestEquityCurve(t *testing.T) {
	curve := EquityCurve(sampleTrades())
	want := []int64{300, 200, 200, 300}
	if len(curve) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(curve))
	}
	for i, w := range want {
		if !curve[i].Equal(decimal.NewFromInt(w)) {
			t.Errorf("Point %d: expected %d, got %s", i, w, curve[i])
		}
	}
}

func TestMaxDrawdown(t *testing.T) {
	curve := []decimal.Decimal{
		decimal.NewFromInt(100),
		decimal.NewFromInt(500),
		decimal.NewFromInt(200),
		decimal.NewFromInt(400),
		decimal.NewFromInt(150),
	}
	if dd := MaxDrawdown(curve); !dd.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Expected drawdown 350, got %s", dd)
	}
	// Monotonic equity never draws down.
	up := []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(20)}
	if dd := MaxDrawdown(up); !dd.Equal(decimal.Zero) {
		t.Errorf("Expected zero drawdown, got %s", dd)
	}
}

func TestBreakdowns(t *testing.T) {
	trades := sampleTrades()

	byMarket := ByMarket(trades)
	if len(byMarket) != 2 {
		t.Fatalf("Expected 2 markets, got %v", byMarket)
	}
	if s := byMarket["EURUSD"]; s.Trades != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Errorf("Unexpected EURUSD summary: %+v", s)
	}

	byDir := ByDirection(trades)
	if s := byDir[string(types.Long)]; s.Trades != 3 {
		t.Errorf("Expected 3 long trades, got %+v", s)
	}
	if s := byDir[string(types.Short)]; s.Trades != 1 {
		t.Errorf("Expected 1 short trade, got %+v", s)
	}

	bySession := BySession(trades)
	if len(bySession) != 2 {
		t.Fatalf("Expected trades without a session skipped, got %v", bySession)
	}
	if s := bySession["London"]; s.Trades != 2 {
		t.Errorf("Unexpected London summary: %+v", s)
	}
}
