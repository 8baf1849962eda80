package match

import (
	"fmt"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

// SuggestionKind classifies a diagnostic hint.
type SuggestionKind string

const (
	// KindCombinedDateTime flags a column whose cells carry both a date
	// and a time; it can feed trade_date and trade_time after splitting.
	KindCombinedDateTime SuggestionKind = "combined_datetime"
	// KindAmbiguousRequired flags a required field left unmapped even
	// though several columns looked plausible for it.
	KindAmbiguousRequired SuggestionKind = "ambiguous_required"
)

// Suggestion is a human-actionable hint decorating the result. Suggestions
// never alter the mapping decision itself.
type Suggestion struct {
	Kind       SuggestionKind `json:"kind"`
	Column     string         `json:"column,omitempty"`
	Field      string         `json:"field,omitempty"`
	Fields     []string       `json:"fields,omitempty"`
	Candidates []string       `json:"candidates,omitempty"`
	Reason     string         `json:"reason"`
}

// buildSuggestions runs after assignment. Combined datetime columns are
// reported regardless of how they were mapped; unresolved required fields get
// an ambiguity hint when two or more discarded columns had any positive score
// for them.
func buildSuggestions(columns []Column, missingRequired []string, discarded []candidate, o Options) []Suggestion {
	var out []Suggestion
	if o.CombinedMin >= 0 {
		for _, col := range columns {
			if isCombinedDateTime(col.Samples, o.CombinedMin) {
				out = append(out, Suggestion{
					Kind:   KindCombinedDateTime,
					Column: col.Header,
					Fields: []string{schema.KeyTradeDate, schema.KeyTradeTime},
					Reason: fmt.Sprintf("column %q holds combined date and time values; split it to fill both fields", col.Header),
				})
			}
		}
	}
	for _, key := range missingRequired {
		var candidates []string
		seen := make(map[string]struct{})
		// discarded is still sorted by score, so candidates come out
		// best-first.
		for _, c := range discarded {
			if c.field != key || c.score <= 0 {
				continue
			}
			if _, dup := seen[c.header]; dup {
				continue
			}
			seen[c.header] = struct{}{}
			candidates = append(candidates, c.header)
			if len(candidates) >= o.MaxCandidates {
				break
			}
		}
		if len(candidates) >= 2 {
			f, _ := schema.Get(key)
			out = append(out, Suggestion{
				Kind:       KindAmbiguousRequired,
				Field:      key,
				Candidates: candidates,
				Reason:     fmt.Sprintf("several columns look plausible for %s; select one manually", f.Label),
			})
		}
	}
	return out
}
