// Package normalize holds the text and number canonicalization shared by
// the identity resolver and the price table lookup. Both sides must use
// the exact same forms; any divergence silently breaks dedup or pricing.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	streetNumberRe = regexp.MustCompile(`\b(\d{1,6})\b`)
	areaRe         = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9 ]+`)

	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Text lower-cases, strips diacritics, collapses whitespace and trims.
// Idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Currency parses Brazilian formatted money ("R$ 123.456,78"): dot is the
// thousands separator, comma the decimal separator. Unparseable input
// yields 0, which every downstream stage treats as missing, never as free.
func Currency(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Area extracts a numeric area in m² from free text like "50m²",
// "Área: 123,45 m2" or a bare number. Returns 0 when nothing usable.
func Area(s string) float64 {
	s = Text(s)
	if m := areaRe.FindStringSubmatch(s); m != nil {
		return parseDecimal(m[1])
	}
	// Bare number with no unit still counts.
	trimmed := strings.TrimSpace(s)
	if v := parseDecimal(trimmed); v > 0 {
		return v
	}
	return 0
}

func parseDecimal(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// addressNoise maps abbreviations and filler found in scraped addresses to
// one canonical token (or drops them) before similarity comparison.
var addressNoise = map[string]string{
	"r":        "rua",
	"av":       "avenida",
	"al":       "alameda",
	"trav":     "travessa",
	"pc":       "praca",
	"rod":      "rodovia",
	"estr":     "estrada",
	"n":        "",
	"no":       "",
	"num":      "",
	"numero":   "",
	"apto":     "ap",
	"apt":      "ap",
	"ap":       "ap",
	"casa":     "",
	"lote":     "lote",
	"quadra":   "quadra",
	"esquina":  "",
	"com":      "",
	"de":       "",
	"do":       "",
	"da":       "",
	"dos":      "",
	"das":      "",
	"e":        "",
}

// AddressTokens canonicalizes an address into a deduplicated token set:
// normalized text, punctuation dropped, abbreviations expanded, filler
// words removed. Order is not meaningful.
func AddressTokens(s string) []string {
	s = Text(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")

	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if repl, ok := addressNoise[tok]; ok {
			tok = repl
		}
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// StreetNumber returns the first plausible street number in an address,
// or "" when the address carries none.
func StreetNumber(s string) string {
	s = Text(s)
	if m := streetNumberRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
