package match

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

// Value detectors score a column's sample cells against one canonical field,
// independent of the header text. Each returns matched/valid over the
// non-empty samples, so consistency across rows is rewarded. Every detector
// is total: any string input yields a score, never a panic.

var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`),          // 2024-01-15
	regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`),          // 2024/01/15
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),        // 15/01/2024
	regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`),      // 15.01.2024
	regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`),        // 15-01-2024
	regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3,9}\.?,?\s+\d{4}$`), // 15 Jan 2024
	regexp.MustCompile(`^[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}$`), // Jan 15, 2024
}

var (
	timeShape    = regexp.MustCompile(`^\d{1,2}:\d{2}(?::\d{2})?(?:\s*[AaPp][Mm])?$`)
	embeddedTime = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

func matchesDateShape(v string) bool {
	for _, re := range dateShapes {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// scoreDate scores pure-date columns. A cell with an embedded time component
// is a combined datetime, not a date, so it counts against the column here
// and feeds the combined-column suggestion instead.
func scoreDate(samples []string) float64 {
	valid, matched := 0, 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		valid++
		if embeddedTime.MatchString(s) {
			continue
		}
		if matchesDateShape(s) {
			matched++
		}
	}
	return ratio(matched, valid)
}

func scoreTime(samples []string) float64 {
	valid, matched := 0, 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		valid++
		if timeShape.MatchString(s) {
			matched++
		}
	}
	return ratio(matched, valid)
}

// isCombinedDateTime reports whether a column looks like it carries both a
// date and a time in one cell ("2024-01-15 09:30:00"). Flagged when at least
// minFraction of the samples have a date-shaped prefix before a space or 'T'
// plus an embedded time component.
func isCombinedDateTime(samples []string, minFraction float64) bool {
	valid, combined := 0, 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		valid++
		if !embeddedTime.MatchString(s) {
			continue
		}
		prefix := s
		if i := strings.IndexAny(s, " T"); i > 0 {
			prefix = s[:i]
		}
		if matchesDateShape(prefix) {
			combined++
		}
	}
	if valid == 0 {
		return false
	}
	return float64(combined)/float64(valid) >= minFraction
}

// Instruments a journal commonly holds: major FX pairs, metals, indices,
// energies and large-cap crypto. Normalized form, no separators.
var knownSymbols = map[string]struct{}{}

func init() {
	for _, s := range []string{
		"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "USDCAD", "AUDUSD", "NZDUSD",
		"EURGBP", "EURJPY", "GBPJPY", "EURAUD", "EURCHF", "GBPCHF", "AUDJPY",
		"AUDNZD", "CADJPY", "CHFJPY", "NZDJPY",
		"XAUUSD", "XAGUSD", "XPTUSD",
		"US30", "US100", "US500", "NAS100", "SPX500", "SPX", "NDX", "DJI",
		"GER30", "GER40", "DAX", "DAX40", "UK100", "FTSE100", "JPN225",
		"HK50", "AUS200",
		"USOIL", "UKOIL", "WTI", "XTIUSD", "NATGAS",
		"BTCUSD", "BTCUSDT", "ETHUSD", "ETHUSDT", "SOLUSD", "XRPUSD",
	} {
		knownSymbols[s] = struct{}{}
	}
}

var marketShapes = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z0-9]{2,10}$`),
	regexp.MustCompile(`^[A-Z0-9]{2,6}/[A-Z0-9]{2,6}$`),
	regexp.MustCompile(`^[A-Z0-9]{2,6}-[A-Z0-9]{2,6}$`),
}

// normalizeSymbol uppercases and keeps only A-Z, 0-9, '/' and '-', dropping
// spaces, flag emoji and other decoration.
func normalizeSymbol(v string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(v) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '/', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scoreMarket gives full credit for instruments in the known-symbols set and
// partial credit for values that are merely symbol-shaped within the
// configured length band.
func scoreMarket(samples []string, o Options) float64 {
	valid := 0
	sum := 0.0
	for _, s := range samples {
		if strings.TrimSpace(s) == "" {
			continue
		}
		valid++
		norm := normalizeSymbol(s)
		bare := strings.NewReplacer("/", "", "-", "").Replace(norm)
		if _, ok := knownSymbols[bare]; ok {
			sum += 1.0
			continue
		}
		if _, ok := o.extraSymbols[bare]; ok {
			sum += 1.0
			continue
		}
		if len(bare) < o.MarketMinLen || len(bare) > o.MarketMaxLen {
			continue
		}
		for _, re := range marketShapes {
			if re.MatchString(norm) {
				sum += 0.75
				break
			}
		}
	}
	if valid == 0 {
		return 0
	}
	return sum / float64(valid)
}

var (
	longWords  = wordSet("long", "buy", "l", "b", "bto", "buy to open", "bought", "up")
	shortWords = wordSet("short", "sell", "s", "st", "sto", "sell to open", "sold", "down")

	winWords  = wordSet("win", "w", "won", "winner", "profit", "tp", "target", "target hit", "green")
	lossWords = wordSet("loss", "lose", "l", "lost", "loser", "sl", "stop", "stopped", "stop hit", "red")
	beWords   = wordSet("be", "b/e", "breakeven", "break even", "break-even", "scratch", "push", "flat")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func inAny(v string, sets ...map[string]struct{}) bool {
	for _, set := range sets {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// scoreVocabulary implements the shared two-tier strategy for enumerated
// columns: if the column's whole unique value set fits inside the vocabulary
// and stays small it is an enumerated column, full score. Otherwise score the
// fraction of samples in the vocabulary.
func scoreVocabulary(samples []string, maxDistinct int, sets ...map[string]struct{}) float64 {
	valid, matched := 0, 0
	distinct := make(map[string]struct{})
	allIn := true
	for _, s := range samples {
		v := strings.ToLower(strings.TrimSpace(s))
		if v == "" {
			continue
		}
		valid++
		distinct[v] = struct{}{}
		if inAny(v, sets...) {
			matched++
		} else {
			allIn = false
		}
	}
	if valid == 0 {
		return 0
	}
	if allIn && len(distinct) <= maxDistinct {
		return 1
	}
	return float64(matched) / float64(valid)
}

func scoreDirection(samples []string) float64 {
	return scoreVocabulary(samples, 4, longWords, shortWords)
}

func scoreOutcome(samples []string) float64 {
	return scoreVocabulary(samples, 5, winWords, lossWords, beWords)
}

// ClassifyDirection resolves a cell to "long" or "short" using the same
// vocabulary the detector scores with.
func ClassifyDirection(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case inAny(v, longWords):
		return "long", true
	case inAny(v, shortWords):
		return "short", true
	}
	return "", false
}

// ClassifyOutcome resolves a cell to "win", "loss" or "break_even".
func ClassifyOutcome(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case inAny(v, winWords):
		return "win", true
	case inAny(v, lossWords):
		return "loss", true
	case inAny(v, beWords):
		return "break_even", true
	}
	return "", false
}

// parseNumber is the strict float parse shared by the numeric detectors:
// strips percent signs, thousands separators and whitespace, and rejects
// NaN/Inf so a bad parse can never leak into a score.
func parseNumber(v string) (float64, bool) {
	v = strings.NewReplacer("%", "", ",", "", " ", "").Replace(strings.TrimSpace(v))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// scoreRisk scores risk-per-trade percentages. Values with a colon are
// ratios, not percentages. Typical journals risk 0.25-10% per trade; values
// outside that but inside [0.05,20] get half credit. An explicit percent sign
// anywhere in the column is strong evidence, worth a flat bonus.
func scoreRisk(samples []string) float64 {
	valid := 0
	sum := 0.0
	sawPercent := false
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		valid++
		if strings.Contains(s, "%") {
			sawPercent = true
		}
		if strings.Contains(s, ":") {
			continue
		}
		f, ok := parseNumber(s)
		if !ok {
			continue
		}
		switch {
		case f >= 0.25 && f <= 10:
			sum += 1.0
		case f >= 0.05 && f <= 20:
			sum += 0.5
		}
	}
	if valid == 0 {
		return 0
	}
	score := sum / float64(valid)
	if sawPercent {
		score = math.Min(1, score+0.2)
	}
	return score
}

// ParseRatio parses a risk:reward cell. "L:R" yields R/L ("1:3" is 3.0 reward
// per unit risk, "2:1" is 0.5), a bare float is taken as-is. Percent values
// and malformed ratios do not parse.
func ParseRatio(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, "%") {
		return 0, false
	}
	if i := strings.Index(v, ":"); i >= 0 {
		l, okL := parseNumber(v[:i])
		r, okR := parseNumber(v[i+1:])
		if !okL || !okR || l == 0 {
			return 0, false
		}
		out := r / l
		if math.IsNaN(out) || math.IsInf(out, 0) {
			return 0, false
		}
		return out, true
	}
	return parseNumber(v)
}

// scoreRiskReward mirrors scoreRisk with the ratio bands: full credit in
// [0.5,10], half in [0.1,20], and a bonus when the column uses the explicit
// colon format.
func scoreRiskReward(samples []string) float64 {
	valid := 0
	sum := 0.0
	sawColon := false
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		valid++
		if strings.Contains(s, ":") {
			sawColon = true
		}
		f, ok := ParseRatio(s)
		if !ok {
			continue
		}
		switch {
		case f >= 0.5 && f <= 10:
			sum += 1.0
		case f >= 0.1 && f <= 20:
			sum += 0.5
		}
	}
	if valid == 0 {
		return 0
	}
	score := sum / float64(valid)
	if sawColon {
		score = math.Min(1, score+0.2)
	}
	return score
}

func ratio(matched, valid int) float64 {
	if valid == 0 {
		return 0
	}
	return float64(matched) / float64(valid)
}

// valueScore dispatches to the detector for a field key. Fields without a
// detector are matched on header text alone.
func valueScore(key string, samples []string, o Options) float64 {
	switch key {
	case schema.KeyTradeDate:
		return scoreDate(samples)
	case schema.KeyTradeTime:
		return scoreTime(samples)
	case schema.KeyMarket:
		return scoreMarket(samples, o)
	case schema.KeyDirection:
		return scoreDirection(samples)
	case schema.KeyTradeOutcome:
		return scoreOutcome(samples)
	case schema.KeyRiskPerTrade:
		return scoreRisk(samples)
	case schema.KeyRiskRewardRatio:
		return scoreRiskReward(samples)
	}
	return 0
}
