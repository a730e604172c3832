package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Symbol normalization tables for the degree/minute/second punctuation zoo
// found in operator PDFs. PyMuPDF-style text extraction preserves whatever
// the typesetter used, so the same report family can mix an acute accent,
// a prime and a curly quote as the minute mark.
//
// Observed variants:
//
//	´  U+00B4 ACUTE ACCENT          → minutes
//	′  U+2032 PRIME                 → minutes
//	‘  U+2018 LEFT SINGLE QUOTE     → minutes
//	’  U+2019 RIGHT SINGLE QUOTE    → minutes
//	ʼ  U+02BC MODIFIER APOSTROPHE   → minutes
//	″  U+2033 DOUBLE PRIME          → seconds
//	“  U+201C LEFT DOUBLE QUOTE     → seconds
//	”  U+201D RIGHT DOUBLE QUOTE    → seconds
//	'' two consecutive apostrophes  → seconds
var (
	minuteMarkRe = regexp.MustCompile("[´′‘’ʼ]")
	secondMarkRe = regexp.MustCompile("[″“”]")
	doubleMarkRe = regexp.MustCompile("'{2}|′{2}|´{2}")
	decimalComma = regexp.MustCompile(`(\d),(\d)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// The three DMS shapes, tried in order. Full DMS is deliberately tried before
// the decimal-minutes shortcut: a value like 33°30'57.62" structurally matches
// both, and the full reading is the correct one.
var (
	// 33°30'57.62" — compact, optional closing quote
	dmsFullRe = regexp.MustCompile(`^(\d+)\s*[°º]\s*(\d+)\s*'\s*([\d.]+)\s*"?`)
	// 37°20.936' — degrees and decimal minutes, no seconds
	dmsDecMinRe = regexp.MustCompile(`^(\d+)\s*[°º]\s*([\d.]+)\s*'`)
	// 37 ° / 20 ' / 56.2 — slash-separated PDF table layout; seconds optional
	dmsSlashRe = regexp.MustCompile(`^(\d+)\s*[°º]\s*/\s*([\d.]+)\s*'(?:\s*/\s*([\d.]+))?`)
	// complete DMS anywhere in the string (degrees, minutes AND seconds)
	dmsCompleteRe = regexp.MustCompile(`\d+\s*[°º]\s*\d+\s*'\s*[\d.]+\s*"?`)
)

// NormalizeDMSSymbols collapses every observed minute/second symbol variant
// to plain ASCII and fixes the decimal comma. Must run before any DMS regex:
// the shape patterns only know about ° ' ".
func NormalizeDMSSymbols(text string) string {
	text = minuteMarkRe.ReplaceAllString(text, "'")
	text = secondMarkRe.ReplaceAllString(text, `"`)
	text = doubleMarkRe.ReplaceAllString(text, `"`)
	text = decimalComma.ReplaceAllString(text, "$1.$2")
	return text
}

// DMSToDD converts degrees/minutes/seconds to decimal degrees, negating for
// the southern and western hemispheres. Rounded to 6 decimals (~0.11 m).
func DMSToDD(degrees, minutes, seconds float64, hemisphere string) float64 {
	dd := degrees + minutes/60.0 + seconds/3600.0
	switch strings.ToUpper(strings.TrimSpace(hemisphere)) {
	case "S", "W", "O": // O = Oeste
		dd = -dd
	}
	return math.Round(dd*1e6) / 1e6
}

// ParseDMSString parses a raw coordinate string in any supported DMS shape
// into decimal degrees (unsigned hemisphere defaults to S). Returns nil when
// no shape matches.
func ParseDMSString(raw string) *float64 {
	if raw == "" {
		return nil
	}
	normalized := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	normalized = NormalizeDMSSymbols(normalized)

	if m := dmsFullRe.FindStringSubmatch(normalized); m != nil {
		return dmsGroups(m[1], m[2], m[3])
	}
	if m := dmsDecMinRe.FindStringSubmatch(normalized); m != nil {
		return dmsGroups(m[1], m[2], "")
	}
	if m := dmsSlashRe.FindStringSubmatch(normalized); m != nil {
		return dmsGroups(m[1], m[2], m[3])
	}

	logger.Warn("unparsable DMS coordinate", "raw", raw)
	return nil
}

// IsCompleteDMS reports whether s already holds a full degrees+minutes+seconds
// value after symbol normalization. Used by the PetSud extractor to decide
// when to stop accumulating coordinate fragments across lines.
func IsCompleteDMS(s string) bool {
	n := whitespaceRe.ReplaceAllString(s, " ")
	n = NormalizeDMSSymbols(n)
	return dmsCompleteRe.MatchString(n)
}

func dmsGroups(deg, min, sec string) *float64 {
	d, errD := strconv.ParseFloat(deg, 64)
	m, errM := strconv.ParseFloat(min, 64)
	s := 0.0
	var errS error
	if sec != "" {
		s, errS = strconv.ParseFloat(sec, 64)
	}
	if errD != nil || errM != nil || errS != nil {
		return nil
	}
	dd := DMSToDD(d, m, s, "S")
	return &dd
}
