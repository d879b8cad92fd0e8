package usecase

// Scoring adjustments for TitleSimilarity.
const (
	brandCloseDice        = 0.80 // brand strings this similar count as agreeing
	brandAgreementBonus   = 0.05 // flat bonus when brands agree
	missingStrongTokenCap = 0.91 // ceiling when the candidate lacks a strong token
)

// bigramCounts builds the character-bigram multiset of a string. Spaces are
// included so word boundaries contribute to the signature.
func bigramCounts(s string) map[string]int {
	runes := []rune(s)
	counts := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		counts[string(runes[i:i+2])]++
	}
	return counts
}

// DiceSimilarity computes the Sørensen-Dice coefficient over character
// bigrams: 2*|shared| / (|a|+|b|), with multiset overlap so each shared
// bigram is consumed once.
func DiceSimilarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}

	countsA := bigramCounts(a)
	countsB := bigramCounts(b)

	totalA := 0
	for _, n := range countsA {
		totalA += n
	}
	totalB := 0
	for _, n := range countsB {
		totalB += n
	}
	if totalA+totalB == 0 {
		return 0
	}

	shared := 0
	for bg, n := range countsA {
		if m := countsB[bg]; m < n {
			shared += m
		} else {
			shared += n
		}
	}

	return 2 * float64(shared) / float64(totalA+totalB)
}

// TitleSimilarity scores two raw titles in [0,1]. The base is bigram Dice
// over the brand-stripped main titles; brand agreement adds a small bonus,
// and a strong token present in the source but missing from the candidate
// caps the score below the confident-match range.
func TitleSimilarity(source, candidate string) float64 {
	score := DiceSimilarity(MainTitle(source), MainTitle(candidate))

	if srcBrand := ExtractBrand(source); srcBrand != "" && brandsClose(srcBrand, ExtractBrand(candidate)) {
		score += brandAgreementBonus
		if score > 1 {
			score = 1
		}
	}

	candStrong := tokenSet(StrongTokens(candidate))
	for _, tok := range StrongTokens(source) {
		if !candStrong[tok] {
			if score > missingStrongTokenCap {
				score = missingStrongTokenCap
			}
			break
		}
	}

	return score
}

// brandsClose reports whether two canonicalized brands refer to the same
// house: equal outright, or near-equal under bigram Dice.
func brandsClose(a, b string) bool {
	if b == "" {
		return false
	}
	if a == b {
		return true
	}
	return DiceSimilarity(a, b) >= brandCloseDice
}
