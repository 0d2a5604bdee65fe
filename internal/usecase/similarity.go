package usecase

import (
	"strings"

	"golang.org/x/text/cases"
)

// Similarity returns a normalized edit ratio in [0,1] over case-folded, trimmed strings.
// It equals 2*LCS/(len(a)+len(b)) in runes; an empty side always scores 0.
func Similarity(a, b string) float64 {
	// A Caser keeps state, so each call gets its own
	fold := cases.Fold()
	a = fold.String(strings.TrimSpace(a))
	b = fold.String(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	r1 := []rune(a)
	r2 := []rune(b)
	total := len(r1) + len(r2)

	return float64(total-indelDistance(r1, r2)) / float64(total)
}

// indelDistance counts the insertions and deletions needed to turn r1 into r2
func indelDistance(r1, r2 []rune) int {
	m := len(r1)
	n := len(r2)

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(
				prev[j]+1,   // deletion
				curr[j-1]+1, // insertion
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
