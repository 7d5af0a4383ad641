package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Compiled patterns for text normalization
var (
	disallowedCharsRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRegex      = regexp.MustCompile(`\s+`)
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dashReplacer maps the Unicode hyphen and dash variants to an ASCII hyphen
var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// Normalize canonicalizes free text for matching: lower case, accents
// stripped, dashes unified, anything outside [a-z0-9 -] turned into a space,
// whitespace collapsed and trimmed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	out := strings.ToLower(s)
	if folded, _, err := transform.String(stripMarks, out); err == nil {
		out = folded
	}
	out = dashReplacer.Replace(out)
	out = disallowedCharsRegex.ReplaceAllString(out, " ")
	out = whitespaceRegex.ReplaceAllString(out, " ")

	return strings.TrimSpace(out)
}
