package util

// LevenshteinDistance calculates the Levenshtein distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
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
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = Min(Min(prev[j], curr[j-1]), prev[j-1]) + 1
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Closest returns the candidate nearest to s within maxDistance edits.
func Closest(s string, candidates []string, maxDistance int) (string, bool) {
	best, bestDistance := "", maxDistance+1
	for _, c := range candidates {
		if d := LevenshteinDistance(s, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}

	return best, bestDistance <= maxDistance
}
