package match

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

// ScoreSynonym returns a similarity in [0,1] between a raw CSV header and one
// schema synonym. Token-set similarity handles reordered words ("trade
// outcome" vs "outcome trade") and containment ("rr" inside "rr potential"),
// then a length-coverage multiplier pulls back matches between strings of very
// different lengths: token containment alone would score "rr" against
// "rr potential" as high as an exact match.
func ScoreSynonym(header, synonym string) float64 {
	h := normalizeText(header)
	s := normalizeText(synonym)
	if h == "" || s == "" {
		return 0
	}
	raw := tokenSetSimilarity(h, s)
	cov := coverage(h, s)
	return raw * (0.4 + 0.6*cov)
}

// tokenSetSimilarity is order-insensitive: identical or subset token sets
// score 1, otherwise the best of token Jaccard overlap and a Levenshtein
// ratio over the sorted token strings. The Levenshtein leg catches typos and
// abbreviations that share no whole token ("direcion" vs "direction").
func tokenSetSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ta := tokenSet(a)
	tb := tokenSet(b)
	inter := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			inter++
		}
	}
	if inter == len(ta) || inter == len(tb) {
		return 1
	}
	union := len(ta) + len(tb) - inter
	jaccard := float64(inter) / float64(union)
	lev := levenshteinRatio(sortedJoin(ta), sortedJoin(tb))
	return math.Max(jaccard, lev)
}

func sortedJoin(set map[string]struct{}) string {
	toks := make([]string, 0, len(set))
	for t := range set {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(maxLen)
}

// coverage is the ratio of the shorter to the longer alphanumeric length.
// The scoring floor of 0.4 in ScoreSynonym keeps genuine abbreviations alive
// while still ranking an exact-length match strictly higher.
func coverage(a, b string) float64 {
	la := alnumLen(a)
	lb := alnumLen(b)
	lo, hi := la, lb
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 1 {
		hi = 1
	}
	return float64(lo) / float64(hi)
}

// ScoreField scores a header against every synonym of a field and keeps the
// best one.
func ScoreField(header string, f schema.Field, extra []string) float64 {
	best := 0.0
	for _, syn := range f.Synonyms {
		if s := ScoreSynonym(header, syn); s > best {
			best = s
		}
	}
	for _, syn := range extra {
		if s := ScoreSynonym(header, syn); s > best {
			best = s
		}
	}
	return best
}
