// Package analytics aggregates imported trades into the dashboard numbers:
// win rate, profit factor, expectancy, equity curve, drawdown. Pure
// computation over in-memory slices.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/DragosCt10/trading-tracker/internal/types"
)

type Summary struct {
	Trades     int `json:"trades"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	BreakEvens int `json:"break_evens"`

	// WinRate is wins over decided trades; break-evens do not count
	// against it.
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	// Expectancy is the average R multiple per trade: +R:R on a win, -1
	// on a loss, 0 on break-even.
	Expectancy float64 `json:"expectancy"`

	NetPnL      decimal.Decimal `json:"net_pnl"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`
	Commission  decimal.Decimal `json:"commission"`
	AvgWin      decimal.Decimal `json:"avg_win"`
	AvgLoss     decimal.Decimal `json:"avg_loss"`
	MaxDrawdown decimal.Decimal `json:"max_drawdown"`
}

func Summarize(trades []types.Trade) Summary {
	s := Summary{Trades: len(trades)}
	rSum := 0.0
	for _, t := range trades {
		switch t.Outcome {
		case types.Win:
			s.Wins++
			rSum += t.RiskReward
		case types.Loss:
			s.Losses++
			rSum -= 1
		case types.BreakEven:
			s.BreakEvens++
		}
		s.NetPnL = s.NetPnL.Add(t.ProfitLoss)
		s.Commission = s.Commission.Add(t.Commission)
		if t.ProfitLoss.IsPositive() {
			s.GrossProfit = s.GrossProfit.Add(t.ProfitLoss)
		} else {
			s.GrossLoss = s.GrossLoss.Add(t.ProfitLoss.Abs())
		}
	}
	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinRate = float64(s.Wins) / float64(decided)
	}
	if s.Trades > 0 {
		s.Expectancy = rSum / float64(s.Trades)
	}
	if s.GrossLoss.IsPositive() {
		s.ProfitFactor = s.GrossProfit.Div(s.GrossLoss).InexactFloat64()
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit.Div(decimal.NewFromInt(int64(s.Wins)))
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss.Div(decimal.NewFromInt(int64(s.Losses)))
	}
	s.MaxDrawdown = MaxDrawdown(EquityCurve(trades))
	return s
}

// EquityCurve returns cumulative P&L after each trade, in input order.
func EquityCurve(trades []types.Trade) []decimal.Decimal {
	curve := make([]decimal.Decimal, len(trades))
	total := decimal.Zero
	for i, t := range trades {
		total = total.Add(t.ProfitLoss)
		curve[i] = total
	}
	return curve
}

// MaxDrawdown is the largest peak-to-trough fall of the equity curve,
// returned as a positive number.
func MaxDrawdown(curve []decimal.Decimal) decimal.Decimal {
	peak := decimal.Zero
	maxDD := decimal.Zero
	for _, v := range curve {
		if v.GreaterThan(peak) {
			peak = v
		}
		if dd := peak.Sub(v); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

// ByMarket breaks the summary down per instrument.
func ByMarket(trades []types.Trade) map[string]Summary {
	return breakdown(trades, func(t types.Trade) string { return t.Market })
}

// ByDirection breaks the summary down into long and short performance.
func ByDirection(trades []types.Trade) map[string]Summary {
	return breakdown(trades, func(t types.Trade) string { return string(t.Direction) })
}

// BySession breaks the summary down per trading session, skipping trades
// without one.
func BySession(trades []types.Trade) map[string]Summary {
	return breakdown(trades, func(t types.Trade) string { return t.Session })
}

func breakdown(trades []types.Trade, key func(types.Trade) string) map[string]Summary {
	groups := make(map[string][]types.Trade)
	for _, t := range trades {
		k := key(t)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], t)
	}
	out := make(map[string]Summary, len(groups))
	for k, g := range groups {
		out[k] = Summarize(g)
	}
	return out
}
