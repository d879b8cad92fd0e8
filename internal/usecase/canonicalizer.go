package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// textFix is one ordered textual substitution applied before the generic
// normalization steps. Order matters: later fixes assume earlier ones ran.
type textFix struct {
	pattern *regexp.Regexp
	repl    string
}

// textFixes repairs known scrape/OCR artifacts in supplier titles: curly
// quotes, slashes used as separators, spelled-out accented constructs,
// degree signs in "N°5"-style names, inline gender markers, and recurring
// supplier misspellings.
var textFixes = []textFix{
	{regexp.MustCompile("[’‘`´]"), "'"},
	{regexp.MustCompile(`[/\\]+`), " "},
	{regexp.MustCompile(`(?i)\bl'\s*eau\b`), "l eau"},
	{regexp.MustCompile(`(?i)n\s*[°º]\s*`), "no "},
	{regexp.MustCompile(`(?i)\(\s*[fm]\s*\)`), " "},
	{regexp.MustCompile(`(?i)\bgodness\b`), "goddess"},
	{regexp.MustCompile(`(?i)\bspeel\b`), "spell"},
	{regexp.MustCompile(`(?i)\bfantazy\b`), "fantasy"},
}

// editionNoise are concentration/format tokens that carry no product
// identity and only add bigram noise.
var editionNoise = map[string]bool{
	"edp":    true,
	"edt":    true,
	"edc":    true,
	"tester": true,
}

var multiSpaceRegex = regexp.MustCompile(`\s+`)

// stripMarks removes combining marks after NFD decomposition, so "Chloé"
// and "Chloe" canonicalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonicalize normalizes a raw product title into its comparable form.
// The function is idempotent: canonicalizing an already-canonical string
// returns it unchanged.
func Canonicalize(raw string) string {
	s := raw
	for _, fix := range textFixes {
		s = fix.pattern.ReplaceAllString(s, fix.repl)
	}

	s = strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
	s = strings.ToLower(s)

	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !editionNoise[strings.Trim(w, "().")] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
