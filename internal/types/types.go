package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

type Outcome string

const (
	Win       Outcome = "WIN"
	Loss      Outcome = "LOSS"
	BreakEven Outcome = "BREAK_EVEN"
)

// Trade is one imported journal entry after column mapping and coercion.
type Trade struct {
	Date        time.Time       `json:"date"`
	Time        string          `json:"time,omitempty"`
	Market      string          `json:"market"`
	Direction   Direction       `json:"direction"`
	Outcome     Outcome         `json:"outcome"`
	RiskPercent float64         `json:"risk_percent,omitempty"`
	RiskReward  float64         `json:"risk_reward,omitempty"`
	EntryPrice  float64         `json:"entry_price,omitempty"`
	ExitPrice   float64         `json:"exit_price,omitempty"`
	StopLoss    float64         `json:"stop_loss,omitempty"`
	TakeProfit  float64         `json:"take_profit,omitempty"`
	Size        float64         `json:"size,omitempty"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	Commission  decimal.Decimal `json:"commission"`

	Setup     string `json:"setup,omitempty"`
	Strategy  string `json:"strategy,omitempty"`
	Session   string `json:"session,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
	Account   string `json:"account,omitempty"`
	Notes     string `json:"notes,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

// ImportBatch groups the trades produced by one CSV import attempt.
type ImportBatch struct {
	ID         string  `json:"id"`
	SourceFile string  `json:"source_file,omitempty"`
	Rows       int     `json:"rows"`
	Imported   int     `json:"imported"`
	Skipped    int     `json:"skipped"`
	Trades     []Trade `json:"-"`
}
