package match

import (
	"strings"
	"unicode"
)

// normalizeText lowercases a header or synonym and strips everything that is
// not a letter or digit. Real exports decorate headers with flag emoji,
// currency signs and punctuation ("📅 Date", "Risk %"), all of that is noise
// for matching. Runs of stripped characters collapse to a single space.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		} else {
			space = true
		}
	}
	return b.String()
}

// alnumLen counts letters and digits only, so punctuation and emoji do not
// skew the length-coverage penalty.
func alnumLen(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		set[t] = struct{}{}
	}
	return set
}
