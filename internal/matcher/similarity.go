package matcher

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio 2*M/T of a and b, compared
// rune by rune. Identical strings score 1, disjoint strings score 0.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// best folds over items and returns the index and score of the earliest item
// with the highest score. The index is -1 when nothing scored above zero.
func best[T any](items []T, score func(T) float64) (int, float64) {
	idx, top := -1, 0.0
	for i, item := range items {
		if s := score(item); s > top {
			idx, top = i, s
		}
	}
	return idx, top
}

// BestOf returns the candidate that best matches text. ok is false when the
// best score is below threshold; the score is returned either way.
func BestOf(text string, candidates []string, threshold float64) (match string, ok bool, score float64) {
	idx, score := best(candidates, func(c string) float64 { return Similarity(text, c) })
	if idx < 0 || score < threshold {
		return "", false, score
	}
	return candidates[idx], true, score
}
