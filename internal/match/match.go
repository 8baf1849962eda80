// Package match deduces which CSV column corresponds to which canonical
// trade field when importing an arbitrary trading-journal export. Headers are
// scored fuzzily against the schema synonyms, cell samples are scored by
// field-specific pattern detectors, and a greedy one-to-one assignment merges
// the two signals. The whole package is pure computation: no I/O, no clock,
// no randomness, so identical input always yields an identical Result.
package match

import (
	"strings"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

// Options tune the matcher. The zero value means "use defaults", so callers
// can pass Options{} or override single knobs.
type Options struct {
	// MinConfidence is the composite score floor below which a (column,
	// field) pair is never assigned. Scores are on a 0..1 scale.
	MinConfidence float64
	// MinHeaderScore gates the header-text signal: fuzzy header scores
	// below it do not participate in assignment on their own.
	MinHeaderScore float64
	// HintBonus is the flat tie-breaker added to a positive value score
	// when the header contains one of the field's hint words. Negative
	// disables the bonus.
	HintBonus float64
	// SampleCap bounds how many non-empty cells per column are inspected.
	SampleCap int
	// CombinedMin is the fraction of samples that must look like a
	// datetime before a column is flagged as combined date+time. Negative
	// disables combined-datetime detection.
	CombinedMin float64
	// MarketMinLen and MarketMaxLen bound the structural symbol check.
	MarketMinLen int
	MarketMaxLen int
	// MaxCandidates caps how many column names an ambiguity suggestion
	// lists.
	MaxCandidates int
	// ExtraSymbols extends the known-instruments set (user watchlist).
	ExtraSymbols []string
	// ExtraSynonyms extends a field's synonym list, keyed by field key.
	ExtraSynonyms map[string][]string

	extraSymbols map[string]struct{}
}

// DefaultOptions returns the tuning the import wizard ships with.
func DefaultOptions() Options {
	return Options{
		MinConfidence:  0.25,
		MinHeaderScore: 0.75,
		HintBonus:      0.1,
		SampleCap:      20,
		CombinedMin:    0.5,
		MarketMinLen:   2,
		MarketMaxLen:   10,
		MaxCandidates:  3,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MinConfidence <= 0 {
		o.MinConfidence = def.MinConfidence
	}
	if o.MinHeaderScore <= 0 {
		o.MinHeaderScore = def.MinHeaderScore
	}
	// Zero means default; HintBonus and CombinedMin accept a negative to
	// switch the feature off outright.
	if o.HintBonus == 0 {
		o.HintBonus = def.HintBonus
	} else if o.HintBonus < 0 {
		o.HintBonus = 0
	}
	if o.SampleCap <= 0 {
		o.SampleCap = def.SampleCap
	}
	if o.CombinedMin == 0 {
		o.CombinedMin = def.CombinedMin
	}
	if o.MarketMinLen <= 0 {
		o.MarketMinLen = def.MarketMinLen
	}
	if o.MarketMaxLen <= 0 {
		o.MarketMaxLen = def.MarketMaxLen
	}
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = def.MaxCandidates
	}
	o.extraSymbols = make(map[string]struct{}, len(o.ExtraSymbols))
	for _, s := range o.ExtraSymbols {
		o.extraSymbols[normalizeSymbol(s)] = struct{}{}
	}
	return o
}

// Column is one CSV column: the raw header as it appeared in the file plus up
// to SampleCap non-empty cell values. Column order follows the file and is
// part of the deterministic tie-break.
type Column struct {
	Header  string
	Samples []string
}

// SamplesFromRows derives ordered columns from parsed row maps. Empty cells
// are skipped, at most limit non-empty samples are kept per column.
func SamplesFromRows(headers []string, rows []map[string]string, limit int) []Column {
	if limit <= 0 {
		limit = DefaultOptions().SampleCap
	}
	cols := make([]Column, 0, len(headers))
	for _, h := range headers {
		col := Column{Header: h}
		for _, row := range rows {
			v := strings.TrimSpace(row[h])
			if v == "" {
				continue
			}
			col.Samples = append(col.Samples, v)
			if len(col.Samples) >= limit {
				break
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// FieldMatch is one accepted claim, with the schema attributes denormalized
// for the import-preview UI.
type FieldMatch struct {
	Field      string           `json:"field"`
	Confidence float64          `json:"confidence"`
	Label      string           `json:"label"`
	Required   bool             `json:"required"`
	ValueType  schema.ValueType `json:"value_type"`
}

// Result is the complete outcome of one matching pass. It is plain data the
// caller owns for the duration of the import wizard; nothing here persists.
type Result struct {
	Matches         map[string]FieldMatch `json:"matches"`
	UnmappedColumns []string              `json:"unmapped_columns"`
	MissingRequired []string              `json:"missing_required"`
	Suggestions     []Suggestion          `json:"suggestions"`
}

// Mapping flattens the result into the header→field map the row importer
// consumes.
func (r Result) Mapping() map[string]string {
	m := make(map[string]string, len(r.Matches))
	for header, fm := range r.Matches {
		m[header] = fm.Field
	}
	return m
}

// Match runs the full pipeline over the sampled columns. Bad or empty input
// degrades to an empty mapping with every required field missing; it is a
// valid "ambiguous input" result, never an error.
func Match(columns []Column, opts Options) Result {
	o := opts.withDefaults()
	cands := buildCandidates(columns, o)
	assigned, discarded := assign(cands, o)

	res := Result{Matches: make(map[string]FieldMatch, len(assigned))}
	for _, c := range assigned {
		f, _ := schema.Get(c.field)
		res.Matches[c.header] = FieldMatch{
			Field:      c.field,
			Confidence: c.score,
			Label:      f.Label,
			Required:   f.Required,
			ValueType:  f.ValueType,
		}
	}
	for i, col := range columns {
		if _, ok := assigned[i]; !ok {
			res.UnmappedColumns = append(res.UnmappedColumns, col.Header)
		}
	}
	claimedFields := make(map[string]struct{}, len(assigned))
	for _, c := range assigned {
		claimedFields[c.field] = struct{}{}
	}
	for _, f := range schema.Required() {
		if _, ok := claimedFields[f.Key]; !ok {
			res.MissingRequired = append(res.MissingRequired, f.Key)
		}
	}
	res.Suggestions = buildSuggestions(columns, res.MissingRequired, discarded, o)
	return res
}

// ColumnMatch is the header-only view of one column, used by the import
// preview before any data rows are available.
type ColumnMatch struct {
	CSVHeader string           `json:"csv_header"`
	Field     string           `json:"field,omitempty"`
	Score     float64          `json:"score"`
	Label     string           `json:"label,omitempty"`
	Required  bool             `json:"required,omitempty"`
	ValueType schema.ValueType `json:"value_type,omitempty"`
}

// HeaderMatches maps headers to fields on header text alone, with the same
// one-to-one guarantee as the full pipeline. Headers that clear no field
// come back with an empty Field and their best score.
func HeaderMatches(headers []string, opts Options) []ColumnMatch {
	o := opts.withDefaults()
	type cand struct {
		col   int
		field string
		score float64
	}
	var cands []cand
	for i, h := range headers {
		for _, f := range schema.Fields() {
			s := ScoreField(h, f, o.ExtraSynonyms[f.Key])
			if s > 0 {
				cands = append(cands, cand{col: i, field: f.Key, score: s})
			}
		}
	}
	stableSortByScore(cands, func(c cand) float64 { return c.score })

	out := make([]ColumnMatch, len(headers))
	for i, h := range headers {
		out[i] = ColumnMatch{CSVHeader: h}
	}
	usedCol := make(map[int]struct{})
	usedField := make(map[string]struct{})
	for _, c := range cands {
		if _, ok := usedCol[c.col]; ok {
			continue
		}
		if out[c.col].Score == 0 {
			out[c.col].Score = c.score // best score even when below gate
		}
		if c.score < o.MinHeaderScore {
			continue
		}
		if _, ok := usedField[c.field]; ok {
			continue
		}
		usedCol[c.col] = struct{}{}
		usedField[c.field] = struct{}{}
		f, _ := schema.Get(c.field)
		out[c.col] = ColumnMatch{
			CSVHeader: headers[c.col],
			Field:     c.field,
			Score:     c.score,
			Label:     f.Label,
			Required:  f.Required,
			ValueType: f.ValueType,
		}
	}
	return out
}
