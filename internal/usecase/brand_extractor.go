package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// brandCanon maps known supplier misspellings and formatting variants to
// canonical brand names. Keys are in canonical (lowercase, unaccented) form.
var brandCanon = map[string]string{
	"channel":           "chanel",
	"chanell":           "chanel",
	"chanele":           "chanel",
	"bvlgari":           "bulgari",
	"bulgary":           "bulgari",
	"carolina herrara":  "carolina herrera",
	"c herrera":         "carolina herrera",
	"herrera":           "carolina herrera",
	"d&g":               "dolce gabbana",
	"dolce & gabbana":   "dolce gabbana",
	"dolce and gabbana": "dolce gabbana",
	"armani":            "giorgio armani",
	"georgio armani":    "giorgio armani",
	"emporio armani":    "giorgio armani",
	"jean p gaultier":   "jean paul gaultier",
	"jpg":               "jean paul gaultier",
	"gaultier":          "jean paul gaultier",
	"ysl":               "yves saint laurent",
	"saint laurent":     "yves saint laurent",
	"yves st laurent":   "yves saint laurent",
	"boss":              "hugo boss",
	"cacharrel":         "cacharel",
	"paco rabane":       "paco rabanne",
	"rabanne":           "paco rabanne",
	"tomy hilfiger":     "tommy hilfiger",
	"tommy":             "tommy hilfiger",
	"calvin clein":      "calvin klein",
	"ck":                "calvin klein",
	"victor rolf":       "viktor rolf",
	"viktor & rolf":     "viktor rolf",
	"lancom":            "lancome",
	"ralph":             "ralph lauren",
}

// titleBrands resolves fragrance lines that imply their house even when the
// supplier omits the brand. Keys are canonical main titles.
var titleBrands = map[string]string{
	"sauvage":            "dior",
	"fahrenheit":         "dior",
	"hypnotic poison":    "dior",
	"j adore":            "dior",
	"light blue":         "dolce gabbana",
	"acqua di gio":       "giorgio armani",
	"la vie est belle":   "lancome",
	"le male":            "jean paul gaultier",
	"one million":        "paco rabanne",
	"lady million":       "paco rabanne",
	"invictus":           "paco rabanne",
	"olympea":            "paco rabanne",
	"eros":               "versace",
	"dylan blue":         "versace",
	"bright crystal":     "versace",
	"good girl":          "carolina herrera",
	"212 vip":            "carolina herrera",
	"212":                "carolina herrera",
	"can can":            "paris hilton",
	"fantasy":            "britney spears",
	"goddess":            "burberry",
	"black opium":        "yves saint laurent",
	"la nuit de l homme": "yves saint laurent",
	"no 5":               "chanel",
	"coco mademoiselle":  "chanel",
	"bleu de chanel":     "chanel",
}

// Alias keys sorted longest-first so multi-word aliases win over their own
// substrings, and lookups stay deterministic.
var (
	brandCanonKeys = sortedKeysLongestFirst(brandCanon)
	titleBrandKeys = sortedKeysLongestFirst(titleBrands)
)

func sortedKeysLongestFirst(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

var (
	trailingParenRegex = regexp.MustCompile(`\(([^()]*)\)\s*$`)
	genderMarkerRegex  = regexp.MustCompile(`(?i)^\s*[fm]\s*$`)
)

// NormalizeBrandName canonicalizes a brand string through the alias table,
// checking each alias as exact match, suffix, prefix, or word-boundary
// substring. Unknown brands come back canonicalized but otherwise untouched.
func NormalizeBrandName(raw string) string {
	name := Canonicalize(raw)
	for _, key := range brandCanonKeys {
		if name == key ||
			strings.HasSuffix(name, " "+key) ||
			strings.HasPrefix(name, key+" ") ||
			containsPhrase(name, key) {
			return brandCanon[key]
		}
	}
	return name
}

// ExtractBrand heuristically isolates the brand from a raw title: a trailing
// parenthetical, then the title-to-brand lookup, then a trailing run of
// uppercase letters. Variant qualifiers are never accepted as brands.
// Returns "" when no brand can be determined.
func ExtractBrand(raw string) string {
	title, brand := splitBrand(raw)
	if brand != "" {
		return NormalizeBrandName(brand)
	}

	main := Canonicalize(title)
	if b, ok := titleBrands[main]; ok {
		return b
	}
	for _, key := range titleBrandKeys {
		if containsPhrase(main, key) {
			return titleBrands[key]
		}
	}
	return ""
}

// MainTitle returns the canonical title with the brand substring removed.
// Brands implied by the lookup table are not substrings, so only the
// parenthetical and uppercase-run forms shorten the title.
func MainTitle(raw string) string {
	title, _ := splitBrand(raw)
	return Canonicalize(title)
}

// splitBrand removes an in-title brand marker and returns (rest, brandText).
// When no such marker exists the original title comes back with "".
func splitBrand(raw string) (string, string) {
	title := strings.TrimSpace(raw)

	if m := trailingParenRegex.FindStringSubmatchIndex(title); m != nil {
		inner := strings.TrimSpace(title[m[2]:m[3]])
		if inner != "" && !genderMarkerRegex.MatchString(inner) {
			if isVariantPhrase(inner) {
				// Product-line qualifier, not a brand. Keep it in the title.
				return title, ""
			}
			return strings.TrimSpace(title[:m[0]]), inner
		}
	}

	if run, rest := trailingUpperRun(title); run != "" && !isVariantPhrase(run) {
		return rest, run
	}

	return title, ""
}

// trailingUpperRun detects a trailing sequence of all-uppercase words with
// at least three letters in total ("PACO RABANNE", "D&G"). Punctuation
// inside the words is allowed. A fully uppercase title yields no run: there
// would be no main title left.
func trailingUpperRun(s string) (run, rest string) {
	words := strings.Fields(s)
	i := len(words)
	letters := 0
	for i > 0 && isUpperWord(words[i-1]) {
		letters += countLetters(words[i-1])
		i--
	}
	if letters < 3 || i == 0 || i == len(words) {
		return "", s
	}
	return strings.Join(words[i:], " "), strings.Join(words[:i], " ")
}

func isUpperWord(w string) bool {
	hasLetter := false
	for _, r := range w {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return false
		case strings.ContainsRune("&.'-", r):
			// embedded punctuation is fine
		default:
			return false
		}
	}
	return hasLetter
}

func countLetters(w string) int {
	n := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}
