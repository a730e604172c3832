package domain

import "log/slog"

// Mendoza operating-region bounding box, WGS84 decimal degrees. Process-wide
// and immutable: every operator extractor and the pipeline gate check against
// the same rectangle.
const (
	LatMin = -39.0
	LatMax = -32.0
	LonMin = -70.0
	LonMax = -67.0
)

// Magnitude labels. Spanish by regulation: the downstream registry stores the
// classification exactly as Res. 24-04 names it.
const (
	MagnitudeMayor        = "Mayor"
	MagnitudeMenor        = "Menor"
	MagnitudeUndetermined = "No determinado"
)

// ValidateCoordinates reports whether a coordinate pair falls inside the
// regional bounding box. Nil in either slot fails: a record is never
// half-located. The box is deliberately tight — it catches the common OCR
// failure where a dropped leading digit turns -37.42 into -3.742.
func ValidateCoordinates(lat, lon *float64) bool {
	if lat == nil || lon == nil {
		return false
	}
	return LatMin <= *lat && *lat <= LatMax && LonMin <= *lon && *lon <= LonMax
}

// ValidateExtraction is the data-integrity gate applied before a record may
// be persisted. Out-of-range coordinates are a hard failure. A recovered
// volume exceeding the spilled volume is physically suspect but only logged:
// partial recovery figures are routinely corrected in follow-up reports, so
// the record is kept.
func ValidateExtraction(e Extraction, logger *slog.Logger) bool {
	id := derefOr(e.IncidentID, "<sin id>")

	if !ValidateCoordinates(e.Lat, e.Lon) {
		logger.Error("coordinates out of range",
			"incident", id,
			"lat", floatOrNil(e.Lat),
			"lon", floatOrNil(e.Lon),
		)
		return false
	}

	spilled := derefFloat(e.SpilledM3)
	recovered := derefFloat(e.RecoveredM3)
	if recovered > spilled {
		logger.Warn("recovered volume exceeds spilled volume",
			"incident", id,
			"spilled_m3", spilled,
			"recovered_m3", recovered,
		)
	}

	return true
}

// InferMagnitude classifies incident severity from spill volume and
// hydrocarbon concentration per Res. 24-04 / Dec. 437-93 thresholds:
//
//	HC > 50 ppm: volume > 5 m³  → Mayor, else Menor
//	HC ≤ 50 ppm: volume > 10 m³ → Mayor, else Menor
//
// Unknown PPM uses the stricter threshold (HC > 50 assumed). Unknown volume
// cannot be classified at all. This is a fallback for formats that omit an
// explicit magnitude; a stated magnitude always wins.
func InferMagnitude(volumeM3, ppm *float64) string {
	if volumeM3 == nil {
		return MagnitudeUndetermined
	}

	threshold := 5.0
	if ppm != nil && *ppm <= 50 {
		threshold = 10.0
	}

	if *volumeM3 > threshold {
		return MagnitudeMayor
	}
	return MagnitudeMenor
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// floatOrNil renders an optional float for logging without formatting noise.
func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
