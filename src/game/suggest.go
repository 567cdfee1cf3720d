package game

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// editOptions weighs a substitution the same as an insertion or deletion.
var editOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// similar returns the candidates within maxDistance edits of name, closest first.
// Comparison ignores case; exact matches are included at distance zero.
func similar(name string, candidates []string, maxDistance int) []string {
	type match struct {
		text     string
		distance int
	}
	target := []rune(strings.ToLower(name))
	matches := []match{}
	for _, c := range candidates {
		d := levenshtein.DistanceForStrings(target, []rune(strings.ToLower(c)), editOptions)
		if d <= maxDistance {
			matches = append(matches, match{text: c, distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].distance < matches[j].distance })
	ret := make([]string, len(matches))
	for i, m := range matches {
		ret[i] = m.text
	}
	return ret
}
