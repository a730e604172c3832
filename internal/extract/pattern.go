package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Find searches text with re and returns the requested capture group, trimmed
// of surrounding whitespace. If the group does not exist in the pattern the
// full match is returned instead. Returns nil when there is no match.
//
// This is the safety contract every extractor relies on: a missing field
// degrades to nil instead of aborting the document, so extractors can assign
// every field unconditionally.
func Find(re *regexp.Regexp, text string, group int) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if group < 0 || group >= len(m) {
		group = 0
	}
	s := strings.TrimSpace(m[group])
	return &s
}

// FindFloat searches like Find and parses the result as a float, accepting
// the Argentine decimal comma. Returns nil on no match or unparsable input.
func FindFloat(re *regexp.Regexp, text string, group int) *float64 {
	raw := Find(re, text, group)
	if raw == nil {
		return nil
	}
	return ParseFloat(*raw)
}

// ParseFloat converts a raw numeric string to a float, replacing a decimal
// comma with a dot first. Returns nil when the value is not a number.
func ParseFloat(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		logger.Warn("unparsable numeric field", "raw", raw)
		return nil
	}
	return &v
}
