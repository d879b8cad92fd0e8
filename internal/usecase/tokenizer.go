package usecase

import (
	"regexp"
	"strings"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// stopTokens are words too common to discriminate between fragrances:
// prepositions in the catalog's languages, gender words, and generic
// perfume vocabulary. "chanel"/"channel" are listed because the brand
// appears inside many titles and causes false negatives when treated as a
// discriminating token.
var stopTokens = map[string]bool{
	// prepositions and articles
	"de": true, "del": true, "la": true, "le": true, "el": true,
	"los": true, "las": true, "un": true, "una": true, "y": true,
	"en": true, "the": true, "of": true, "and": true, "for": true,
	"by": true, "pour": true, "par": true, "du": true, "des": true,
	// gender words
	"hombre": true, "mujer": true, "homme": true, "femme": true,
	"man": true, "men": true, "woman": true, "women": true,
	"masculino": true, "femenino": true, "unisex": true,
	// generic perfume vocabulary
	"eau": true, "agua": true, "perfume": true, "parfum": true,
	"fragancia": true, "fragrance": true, "cologne": true,
	"colonia": true, "toilette": true, "spray": true,
	"vaporisateur": true, "natural": true,
	// brand words that misfire as discriminators
	"chanel": true, "channel": true,
}

// variantMarkers are line/intensity qualifiers that name a distinct product
// variant rather than a different spelling of the base fragrance. Multi-word
// phrases are matched against the joined token sequence.
var variantMarkers = []string{
	"intense",
	"intenso",
	"noir",
	"elixir",
	"rouge",
	"absolu",
	"extreme",
	"sport",
	"nuit",
	"night",
	"oud",
	"bleu",
	"blue",
	"black",
	"gold",
	"summer",
	"le male",
	"ultra male",
}

// singleVariantMarkers indexes the one-word markers for token lookups.
var singleVariantMarkers = func() map[string]bool {
	set := make(map[string]bool, len(variantMarkers))
	for _, m := range variantMarkers {
		if !strings.Contains(m, " ") {
			set[m] = true
		}
	}
	return set
}()

// stemToken strips a single trailing plural "s" from longer tokens, so
// "flowers"/"flower" and "nights"/"night" compare equal.
func stemToken(tok string) string {
	if len(tok) >= 5 && strings.HasSuffix(tok, "s") {
		return tok[:len(tok)-1]
	}
	return tok
}

// Tokens splits the canonical main title (brand removed) into stemmed word
// tokens. Non-alphanumerics act as separators.
func Tokens(raw string) []string {
	cleaned := nonAlnumRegex.ReplaceAllString(MainTitle(raw), " ")
	words := strings.Fields(cleaned)
	toks := make([]string, 0, len(words))
	for _, w := range words {
		toks = append(toks, stemToken(w))
	}
	return toks
}

// StrongTokens filters Tokens down to the words discriminating enough to
// demand presence in any true match: length >= 3 and not a stop word.
func StrongTokens(raw string) []string {
	var strong []string
	for _, tok := range Tokens(raw) {
		if len(tok) >= 3 && !stopTokens[tok] {
			strong = append(strong, tok)
		}
	}
	return strong
}

// VariantKeywords returns the variant markers present in the title, in
// marker-list order.
func VariantKeywords(raw string) []string {
	joined := " " + strings.Join(Tokens(raw), " ") + " "
	var found []string
	for _, marker := range variantMarkers {
		if strings.Contains(joined, " "+marker+" ") {
			found = append(found, marker)
		}
	}
	return found
}

// isVariantPhrase reports whether a candidate brand string is actually a
// variant qualifier ("Intense", "Le Male") rather than a brand name.
func isVariantPhrase(s string) bool {
	canonical := Canonicalize(s)
	for _, marker := range variantMarkers {
		if canonical == marker {
			return true
		}
	}
	for _, tok := range strings.Fields(canonical) {
		if singleVariantMarkers[tok] {
			return true
		}
	}
	return false
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
