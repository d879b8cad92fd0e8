package usecase

import (
	"log"

	"github.com/fragancia/backend/internal/domain"
)

// defaultMatchThreshold is the fuzzy score a best candidate must exceed to
// be accepted as a confident match. At or below it the record stays an
// orphan carrying the candidate as a suggestion.
const defaultMatchThreshold = 0.70

// strongTokenJaccardMin is the minimum strong-token Jaccard overlap that
// lets a short title pass the strong-token rule.
const strongTokenJaccardMin = 0.5

// mustMatchTokens are discriminators that reject a candidate outright when
// present in the source title but absent from the candidate.
var mustMatchTokens = []string{"rouge", "noir", "elixir", "intense", "oud"}

// MatcherConfig holds configuration for the matcher.
type MatcherConfig struct {
	MatchThreshold     float64
	EnableDebugLogging bool
}

// Matcher resolves scraped records against a CandidateIndex. Resolve is a
// pure function of (record, index): no retries, no shared mutable state, so
// records may be resolved concurrently.
type Matcher struct {
	index     *CandidateIndex
	threshold float64
	debugLog  bool
}

// NewMatcher creates a matcher over a built index.
func NewMatcher(index *CandidateIndex, config MatcherConfig) *Matcher {
	threshold := config.MatchThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultMatchThreshold
	}
	return &Matcher{
		index:     index,
		threshold: threshold,
		debugLog:  config.EnableDebugLogging,
	}
}

// Resolve attempts exact-then-fuzzy resolution of one scraped record.
// A record that fails every stage becomes an orphan; Resolve never errors.
func (m *Matcher) Resolve(rec domain.ScrapedRecord) domain.MatchOutcome {
	name := Canonicalize(rec.Title)

	// Exact name+gender, then alias+gender.
	if id, ok := m.index.exactByNameGender[nameGenderKey{name, rec.Gender}]; ok {
		return m.matched(rec, id, "exact-name")
	}
	if id, ok := m.index.exactByAliasGender[nameGenderKey{name, rec.Gender}]; ok {
		return m.matched(rec, id, "exact-alias")
	}

	// Exact name ignoring gender. The ambiguity sentinel and declared-gender
	// conflicts both reject the hit instead of silently mispairing.
	if id, ok := m.index.byName[name]; ok && id != ambiguousProductID {
		if p, found := m.index.products[id]; found && rec.Gender.Compatible(p.Gender) {
			return m.matched(rec, id, "exact-any-gender")
		}
	}

	// Main-title + brand group, accepted only with a single gender-compatible
	// survivor. Zero or several survivors fall through to fuzzy.
	key := titleBrandKey{MainTitle(rec.Title), ExtractBrand(rec.Title)}
	if group := m.index.byTitleBrand[key]; len(group) > 0 {
		var survivor *Candidate
		count := 0
		for i := range group {
			if rec.Gender.Compatible(group[i].Gender) {
				survivor = &group[i]
				count++
			}
		}
		if count == 1 {
			return m.matched(rec, survivor.ID, "title-brand-group")
		}
	}

	return m.resolveFuzzy(rec)
}

// resolveFuzzy scans the flat candidate list for the best-scoring candidate
// that survives the variant-keyword and strong-token hard rejects.
func (m *Matcher) resolveFuzzy(rec domain.ScrapedRecord) domain.MatchOutcome {
	// A title that canonicalizes to nothing has no tokens to score against;
	// any similarity would be noise, so no suggestion is attached either.
	if len(Tokens(rec.Title)) == 0 {
		return domain.MatchOutcome{Record: rec}
	}

	candidates := m.index.flat
	var sameGender []Candidate
	for _, c := range candidates {
		if c.Gender == rec.Gender {
			sameGender = append(sameGender, c)
		}
	}
	if len(sameGender) > 0 {
		candidates = sameGender
	}

	srcVariants := VariantKeywords(rec.Title)
	srcStrong := StrongTokens(rec.Title)

	best := -1.0
	tied := false
	var bestCand *Candidate
	for i := range candidates {
		c := &candidates[i]
		if !variantsCompatible(srcVariants, c.Name) {
			continue
		}
		if !strongTokenRuleSatisfied(srcStrong, c.Name) {
			continue
		}
		score := TitleSimilarity(rec.Title, c.Name)
		if score > best {
			best = score
			bestCand = c
			tied = false
		} else if score == best && c.ID != bestCand.ID {
			tied = true
		}
	}

	if bestCand == nil {
		if m.debugLog {
			log.Printf("[MATCH] no candidate survived for %q", rec.Title)
		}
		return domain.MatchOutcome{Record: rec}
	}

	if m.debugLog {
		log.Printf("[MATCH] best fuzzy for %q: %q score=%.3f", rec.Title, bestCand.Name, best)
	}

	// The threshold decides accepted match vs orphan; the suggestion rides
	// along whenever a best candidate exists. Cross-gender pairs and exact
	// score ties between distinct products are never promoted.
	if best > m.threshold && !tied && rec.Gender.Compatible(bestCand.Gender) {
		return m.matched(rec, bestCand.ID, "fuzzy")
	}
	return domain.MatchOutcome{
		Record:     rec,
		Suggestion: &domain.Suggestion{ProductID: bestCand.ID, Score: best},
	}
}

func (m *Matcher) matched(rec domain.ScrapedRecord, id, stage string) domain.MatchOutcome {
	p, ok := m.index.products[id]
	if !ok {
		// Index invariant violated; downgrade to an unsuggested orphan.
		return domain.MatchOutcome{Record: rec}
	}
	if m.debugLog {
		log.Printf("[MATCH] %q -> %q (%s)", rec.Title, p.Name, stage)
	}
	return domain.MatchOutcome{Record: rec, Product: &p}
}

// variantsCompatible requires every variant keyword of the source title to
// appear in the candidate title, so a base fragrance never lands on a named
// variant.
func variantsCompatible(srcVariants []string, candidateTitle string) bool {
	if len(srcVariants) == 0 {
		return true
	}
	candSet := tokenSet(VariantKeywords(candidateTitle))
	for _, v := range srcVariants {
		if !candSet[v] {
			return false
		}
	}
	return true
}

// strongTokenRuleSatisfied is the hard reject on discriminating words: the
// source's strong tokens must be sufficiently present in the candidate, and
// the must-match discriminators may never go missing.
func strongTokenRuleSatisfied(srcStrong []string, candidateTitle string) bool {
	if len(srcStrong) == 0 {
		return true
	}

	candSet := tokenSet(StrongTokens(candidateTitle))

	srcSet := tokenSet(srcStrong)
	for _, d := range mustMatchTokens {
		if srcSet[d] && !candSet[d] {
			return false
		}
	}

	overlap := 0
	for tok := range srcSet {
		if candSet[tok] {
			overlap++
		}
	}

	if len(srcSet) >= 2 && overlap >= 2 {
		return true
	}
	if len(srcSet) <= 3 {
		union := len(candSet)
		for tok := range srcSet {
			if !candSet[tok] {
				union++
			}
		}
		if union > 0 && float64(overlap)/float64(union) >= strongTokenJaccardMin {
			return true
		}
	}
	return false
}
