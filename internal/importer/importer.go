// Package importer applies a confirmed header→field mapping to parsed CSV
// rows and coerces the cells into Trade values. It is the server-side half of
// the import wizard: the matcher proposes a mapping, the user confirms it,
// this package turns rows into trades.
package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DragosCt10/trading-tracker/internal/match"
	"github.com/DragosCt10/trading-tracker/internal/schema"
	"github.com/DragosCt10/trading-tracker/internal/types"
)

type Options struct {
	SourceFile string
	// KeepUnmapped retains cells from unmapped columns in Trade.Extra so
	// nothing the user exported is silently lost.
	KeepUnmapped bool
}

// Apply converts rows into an ImportBatch. A row is skipped, never fatal,
// when its date, market, direction or outcome cell cannot be coerced;
// optional numeric fields that fail to parse are left zero.
func Apply(mapping map[string]string, rows []map[string]string, opts Options) types.ImportBatch {
	batch := types.ImportBatch{
		ID:         uuid.NewString(),
		SourceFile: opts.SourceFile,
		Rows:       len(rows),
	}
	byField := make(map[string]string, len(mapping)) // field key -> header
	for header, field := range mapping {
		byField[field] = header
	}
	cell := func(row map[string]string, field string) string {
		return strings.TrimSpace(row[byField[field]])
	}

	for _, row := range rows {
		date, ok := ParseDate(cell(row, schema.KeyTradeDate))
		if !ok {
			batch.Skipped++
			continue
		}
		market := normalizeMarket(cell(row, schema.KeyMarket))
		if market == "" {
			batch.Skipped++
			continue
		}
		dir, ok := parseDirection(cell(row, schema.KeyDirection))
		if !ok {
			batch.Skipped++
			continue
		}
		outcome, ok := parseOutcome(cell(row, schema.KeyTradeOutcome))
		if !ok {
			batch.Skipped++
			continue
		}

		t := types.Trade{
			Date:      date,
			Time:      ParseTimeOfDay(cell(row, schema.KeyTradeTime)),
			Market:    market,
			Direction: dir,
			Outcome:   outcome,
			Setup:     cell(row, "setup"),
			Strategy:  cell(row, "strategy"),
			Session:   cell(row, "session"),
			Timeframe: cell(row, "timeframe"),
			Account:   cell(row, "account"),
			Notes:     cell(row, "notes"),
		}
		if f, ok := parseFloatCell(cell(row, schema.KeyRiskPerTrade)); ok {
			t.RiskPercent = f
		}
		if f, ok := match.ParseRatio(cell(row, schema.KeyRiskRewardRatio)); ok {
			t.RiskReward = f
		}
		if f, ok := parseFloatCell(cell(row, "entry_price")); ok {
			t.EntryPrice = f
		}
		if f, ok := parseFloatCell(cell(row, "exit_price")); ok {
			t.ExitPrice = f
		}
		if f, ok := parseFloatCell(cell(row, "stop_loss_price")); ok {
			t.StopLoss = f
		}
		if f, ok := parseFloatCell(cell(row, "take_profit_price")); ok {
			t.TakeProfit = f
		}
		if f, ok := parseFloatCell(cell(row, "position_size")); ok {
			t.Size = f
		}
		t.ProfitLoss = parseMoney(cell(row, "profit_loss"))
		t.Commission = parseMoney(cell(row, "commission"))

		if opts.KeepUnmapped {
			for header, v := range row {
				if _, mapped := mapping[header]; mapped {
					continue
				}
				if v == "" {
					continue
				}
				if t.Extra == nil {
					t.Extra = make(map[string]string)
				}
				t.Extra[header] = v
			}
		}

		batch.Trades = append(batch.Trades, t)
		batch.Imported++
	}
	return batch
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006", "2/1/2006", "02/01/06",
	"01/02/2006", "1/2/2006",
	"02.01.2006", "2.1.2006",
	"02-01-2006", "2-1-2006",
	"2 Jan 2006", "2 January 2006", "2 Jan, 2006",
	"Jan 2, 2006", "January 2, 2006", "Jan 2 2006",
}

// ParseDate tries the same shapes the matcher's date detector recognizes.
// Day-first layouts are tried before month-first, so "15/01/2024" resolves
// as January 15th and unambiguous month-first values still parse. A combined
// datetime cell falls back to its date prefix.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	if i := strings.IndexAny(v, " T"); i > 0 {
		return ParseDate(v[:i])
	}
	return time.Time{}, false
}

var timeLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm"}

// ParseTimeOfDay normalizes a time cell to HH:MM, or returns "" when the
// cell does not look like a time.
func ParseTimeOfDay(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}

func normalizeMarket(v string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(v)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '/', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseDirection(v string) (types.Direction, bool) {
	switch d, ok := match.ClassifyDirection(v); {
	case !ok:
		return "", false
	case d == "long":
		return types.Long, true
	default:
		return types.Short, true
	}
}

func parseOutcome(v string) (types.Outcome, bool) {
	o, ok := match.ClassifyOutcome(v)
	if !ok {
		return "", false
	}
	switch o {
	case "win":
		return types.Win, true
	case "loss":
		return types.Loss, true
	default:
		return types.BreakEven, true
	}
}

func parseFloatCell(v string) (float64, bool) {
	d, ok := parseDecimal(v)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// parseMoney is lenient: anything unparseable is zero, not an error, so a
// missing P&L column never blocks an import.
func parseMoney(v string) decimal.Decimal {
	d, _ := parseDecimal(v)
	return d
}

func parseDecimal(v string) (decimal.Decimal, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, false
	}
	neg := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		neg = true
		v = v[1 : len(v)-1]
	}
	v = strings.NewReplacer("$", "", "€", "", "£", "", "%", "", ",", "", " ", "").Replace(v)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}
