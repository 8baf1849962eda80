package match

import (
	"strings"
	"testing"
)

func TestScoreDate(t *testing.T) {
	samples := []string{"2024-01-15", "15/01/2024", "15.01.2024", "Jan 15, 2024", "15 Jan 2024"}
	if s := scoreDate(samples); s != 1.0 {
		t.Errorf("Expected all date shapes to match, got %f", s)
	}
	if s := scoreDate([]string{"hello", "world"}); s != 0 {
		t.Errorf("Expected non-dates to score 0, got %f", s)
	}
}

func TestScoreDateExcludesDatetimes(t *testing.T) {
	s := scoreDate([]string{"2024-01-15 09:30:00", "2024-02-01 14:05:00"})
	if s != 0 {
		t.Errorf("Expected combined datetime values to score 0 as pure dates, got %f", s)
	}
}

func TestScoreTime(t *testing.T) {
	if s := scoreTime([]string{"09:30", "14:05:22", "9:30 AM", "11:45pm"}); s != 1.0 {
		t.Errorf("Expected time shapes to match, got %f", s)
	}
	if s := scoreTime([]string{"2024-01-15", "banana"}); s != 0 {
		t.Errorf("Expected non-times to score 0, got %f", s)
	}
}

func TestIsCombinedDateTime(t *testing.T) {
	if !isCombinedDateTime([]string{"2024-01-15 09:30:00", "2024-01-16T14:00:00"}, 0.5) {
		t.Error("Expected datetime column to be flagged combined")
	}
	if isCombinedDateTime([]string{"2024-01-15", "2024-01-16"}, 0.5) {
		t.Error("Expected pure date column not to be flagged")
	}
	if isCombinedDateTime([]string{"2024-01-15 09:30", "x", "y", "z"}, 0.5) {
		t.Error("Expected below-threshold fraction not to be flagged")
	}
	if isCombinedDateTime(nil, 0.5) {
		t.Error("Expected empty column not to be flagged")
	}
}

func TestScoreMarketKnownSymbols(t *testing.T) {
	o := DefaultOptions().withDefaults()
	if s := scoreMarket([]string{"EURUSD", "XAUUSD", "EUR/USD", "🇪🇺 EURUSD"}, o); s != 1.0 {
		t.Errorf("Expected known symbols to score 1.0, got %f", s)
	}
}

func TestScoreMarketStructural(t *testing.T) {
	o := DefaultOptions().withDefaults()
	if s := scoreMarket([]string{"ABCD", "QQ/WW"}, o); s != 0.75 {
		t.Errorf("Expected symbol-shaped values to score 0.75, got %f", s)
	}
	if s := scoreMarket([]string{"this is a long sentence not a symbol"}, o); s != 0 {
		t.Errorf("Expected prose to score 0, got %f", s)
	}
}

func TestScoreMarketExtraSymbols(t *testing.T) {
	o := Options{ExtraSymbols: []string{"MYSTONK"}}.withDefaults()
	if s := scoreMarket([]string{"MYSTONK"}, o); s != 1.0 {
		t.Errorf("Expected configured symbol to score 1.0, got %f", s)
	}
}

func TestScoreDirectionShortcut(t *testing.T) {
	// Whole unique value set inside the vocabulary: full score no matter
	// the sample count or order.
	s := scoreDirection([]string{"Long", "Short", "Short", "Long", "Long"})
	if s != 1.0 {
		t.Errorf("Expected enumerated direction column to score 1.0, got %f", s)
	}
	if s := scoreDirection([]string{"Buy", "Sell"}); s != 1.0 {
		t.Errorf("Expected buy/sell to score 1.0, got %f", s)
	}
}

func TestScoreDirectionFraction(t *testing.T) {
	s := scoreDirection([]string{"long", "short", "banana", "apple", "pear", "kiwi"})
	if s >= 1.0 || s <= 0 {
		t.Errorf("Expected fractional score for mixed column, got %f", s)
	}
}

func TestScoreOutcome(t *testing.T) {
	if s := scoreOutcome([]string{"Win", "Lose", "BE", "win"}); s != 1.0 {
		t.Errorf("Expected outcome vocabulary to score 1.0, got %f", s)
	}
	if s := scoreOutcome([]string{"banana", "apple"}); s != 0 {
		t.Errorf("Expected non-outcomes to score 0, got %f", s)
	}
}

func TestScoreRisk(t *testing.T) {
	if s := scoreRisk([]string{"1", "0.5", "2"}); s != 1.0 {
		t.Errorf("Expected typical risk values to score 1.0, got %f", s)
	}
	// Percent sign is strong evidence: bonus applies even with band hits.
	if s := scoreRisk([]string{"1%", "0.5%"}); s != 1.0 {
		t.Errorf("Expected percent risk values to cap at 1.0, got %f", s)
	}
	// Ratios are not percentages.
	if s := scoreRisk([]string{"1:3", "2:1"}); s != 0 {
		t.Errorf("Expected ratio values to score 0 as risk, got %f", s)
	}
	// Out-of-band values get half credit.
	if s := scoreRisk([]string{"15", "18"}); s != 0.5 {
		t.Errorf("Expected loose-band values to score 0.5, got %f", s)
	}
}

func TestParseRatio(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1:3", 3.0, true},
		{"2:1", 0.5, true},
		{"2.5", 2.5, true},
		{"abc", 0, false},
		{"3%", 0, false},
		{":", 0, false},
		{"0:5", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseRatio(c.in)
		if ok != c.ok {
			t.Errorf("ParseRatio(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseRatio(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestScoreRiskReward(t *testing.T) {
	if s := scoreRiskReward([]string{"1:3", "2:1"}); s != 1.0 {
		t.Errorf("Expected colon ratios to cap at 1.0, got %f", s)
	}
	if s := scoreRiskReward([]string{"2.5", "3"}); s != 1.0 {
		t.Errorf("Expected bare ratios in band to score 1.0, got %f", s)
	}
	if s := scoreRiskReward([]string{"1%", "2%"}); s != 0 {
		t.Errorf("Expected percent values to score 0 as ratios, got %f", s)
	}
}

func TestClassify(t *testing.T) {
	if d, ok := ClassifyDirection(" BUY "); !ok || d != "long" {
		t.Errorf("Expected BUY to classify long, got %q ok=%v", d, ok)
	}
	if d, ok := ClassifyDirection("sell"); !ok || d != "short" {
		t.Errorf("Expected sell to classify short, got %q ok=%v", d, ok)
	}
	if _, ok := ClassifyDirection("sideways"); ok {
		t.Error("Expected sideways not to classify")
	}
	if o, ok := ClassifyOutcome("B/E"); !ok || o != "break_even" {
		t.Errorf("Expected B/E to classify break_even, got %q ok=%v", o, ok)
	}
}

// Every detector must be total: arbitrary strings may never panic and the
// score stays in [0,1].
func TestDetectorsNeverPanic(t *testing.T) {
	nasty := []string{
		"", " ", "::::", "%%%", "NaN", "Inf", "-Inf", "1e309", "-1e309",
		strings.Repeat("x", 10000), "🇪🇺🇺🇸", "'; DROP TABLE trades;--",
		"\x00\x01\x02", "1:0", "0:0", ":::1", "%:%", "  \t\n  ",
	}
	o := DefaultOptions().withDefaults()
	scorers := map[string]func([]string) float64{
		"date":      scoreDate,
		"time":      scoreTime,
		"direction": scoreDirection,
		"outcome":   scoreOutcome,
		"risk":      scoreRisk,
		"rr":        scoreRiskReward,
		"market":    func(s []string) float64 { return scoreMarket(s, o) },
	}
	for name, fn := range scorers {
		s := fn(nasty)
		if s < 0 || s > 1 {
			t.Errorf("Detector %s returned out-of-range score %f", name, s)
		}
	}
	isCombinedDateTime(nasty, 0.5)
	for _, v := range nasty {
		ParseRatio(v)
		ClassifyDirection(v)
		ClassifyOutcome(v)
	}
}
