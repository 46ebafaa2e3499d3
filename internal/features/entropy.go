package features

import "math"

// Entropy computes the Shannon entropy in bits of a string, over the
// histogram of its byte values. An empty string has entropy 0, as does
// a string of a single repeated byte. The value depends only on the
// multiset of bytes, not their order.
func Entropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	var counts [256]int
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	total := float64(len(s))
	entropy := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy += -p * math.Log2(p)
	}
	return entropy
}
