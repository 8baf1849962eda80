package match

import (
	"sort"
	"strings"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

// candidate is one scored (column, field) pair. Columns are tracked by
// position, not header text, so duplicate headers in a sloppy export stay
// distinct columns.
type candidate struct {
	col    int
	header string
	field  string
	score  float64
}

// buildCandidates computes the composite score for every (column, field)
// pair with any signal. Columns are walked in file order and fields in
// registry order, so the candidate list and therefore the stable sort below
// are deterministic.
//
// Two signals feed the composite. The value-pattern score, when positive,
// gets a flat hint bonus if the header contains one of the field's hint
// words; the hint is a tie-breaker, never a primary signal. The header fuzzy
// score participates on its own only above MinHeaderScore, which is what lets
// fields without a value detector (entry price, notes, ...) be mapped at all,
// and lets a header-only CSV still produce a mapping.
func buildCandidates(columns []Column, o Options) []candidate {
	var cands []candidate
	for i, col := range columns {
		for _, f := range schema.Fields() {
			score := 0.0
			if v := valueScore(f.Key, col.Samples, o); v > 0 {
				if headerHasHint(col.Header, f) {
					v += o.HintBonus
				}
				if v > 1 {
					v = 1
				}
				score = v
			}
			if h := ScoreField(col.Header, f, o.ExtraSynonyms[f.Key]); h >= o.MinHeaderScore && h > score {
				score = h
			}
			if score > 0 {
				cands = append(cands, candidate{col: i, header: col.Header, field: f.Key, score: score})
			}
		}
	}
	stableSortByScore(cands, func(c candidate) float64 { return c.score })
	return cands
}

func headerHasHint(header string, f schema.Field) bool {
	h := strings.ToLower(header)
	for _, hint := range f.Hints {
		if strings.Contains(h, hint) {
			return true
		}
	}
	return false
}

// assign walks the sorted candidates and claims greedily: each column maps to
// at most one field and each field is claimed by at most one column. Triples
// below MinConfidence never claim but stay in the discarded list so the
// diagnostics layer can surface near misses. Ties keep list order, which is
// deterministic but otherwise arbitrary.
func assign(cands []candidate, o Options) (map[int]candidate, []candidate) {
	assigned := make(map[int]candidate)
	usedField := make(map[string]struct{})
	var discarded []candidate
	for _, c := range cands {
		if c.score < o.MinConfidence {
			discarded = append(discarded, c)
			continue
		}
		if _, ok := assigned[c.col]; ok {
			discarded = append(discarded, c)
			continue
		}
		if _, ok := usedField[c.field]; ok {
			discarded = append(discarded, c)
			continue
		}
		assigned[c.col] = c
		usedField[c.field] = struct{}{}
	}
	return assigned, discarded
}

// stableSortByScore sorts descending by score, preserving input order for
// equal scores.
func stableSortByScore[T any](items []T, score func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}
