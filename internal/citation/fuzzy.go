// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pmezard/go-difflib/difflib"

// similarity returns the character-level SequenceMatcher ratio in [0, 1].
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// bestMatch finds the candidate most similar to target, requiring at least
// cutoff. Ties break toward the earlier candidate.
func bestMatch(target string, candidates []string, cutoff float64) (string, bool) {
	var best string
	score := cutoff
	found := false
	for _, c := range candidates {
		if r := similarity(c, target); r > score || (!found && r == score) {
			best, score, found = c, r, true
		}
	}
	return best, found
}
