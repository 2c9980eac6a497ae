package alerr

import "fmt"

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// ClosestMatch returns the candidate nearest to input within an edit distance of 3.
func ClosestMatch(input string, candidates []string) (string, bool) {
	const maxDistance = 3

	best := ""
	bestDist := maxDistance + 1
	for _, c := range candidates {
		if d := editDistance(input, c); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist <= maxDistance
}

// SuggestSimilar returns "did you mean 'X'?" when a close candidate exists, else "".
func SuggestSimilar(input string, candidates []string) string {
	if match, ok := ClosestMatch(input, candidates); ok {
		return fmt.Sprintf("did you mean '%s'?", match)
	}
	return ""
}
