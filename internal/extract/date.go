package extract

import (
	"strings"
	"time"
)

// dateLayouts lists the date shapes observed across operator reports, tried
// in order. Two-digit years follow Go's 2006 pivot (69 → 1969, 25 → 2025).
var dateLayouts = []string{
	"2/1/2006", // also covers zero-padded 02/01/2006
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2006-1-2",
}

// canonicalDate is the single output shape for all incident dates.
const canonicalDate = "02-01-2006"

// NormalizeDate converts any supported date shape to dd-mm-yyyy.
// Returns nil when the input is nil or matches no known shape.
func NormalizeDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		out := t.Format(canonicalDate)
		return &out
	}
	logger.Warn("unrecognized date format", "raw", trimmed)
	return nil
}
