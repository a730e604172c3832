// Command validate performs end-to-end data integrity checks on the mock
// incident fixtures: it re-runs identification, extraction, validation, and
// projection on the raw report documents and verifies the normalized JSON
// fixture against the result.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/raw_reports.json \
//	  -normalized-json data/mock/normalized_incidents.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
	"github.com/FedericoMusa/incident-data-etl/internal/extract"
	"github.com/FedericoMusa/incident-data-etl/internal/geo"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw reports JSON fixture")
	normalizedJSON := flag.String("normalized-json", "", "path to normalized incidents JSON fixture")
	flag.Parse()

	if *rawJSON == "" || *normalizedJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *normalizedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawJSONPath, normalizedJSONPath string) int {
	// Set a fixed clock matching genmock for ProcessedAt reproducibility.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 6, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	// Parse warnings are re-derived noise here; the phase report is the output.
	extract.SetLogger(discardLogger())
	defer extract.SetLogger(nil)

	fmt.Println("=== Incident Data Integrity Validation ===")
	fmt.Println()

	docs, err := loadJSON[domain.Document](rawJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw reports: %v\n", err)
		return 1
	}

	normalized, err := loadJSON[domain.Incident](normalizedJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load normalized incidents: %v\n", err)
		return 1
	}

	extractions, identPhase := validateIdentification(docs)
	phases := []*phase{
		identPhase,
		validateExtraction(extractions),
		validateProjection(extractions),
		validateNormalizationParity(extractions, normalized),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw documents, %d normalized incidents\n", len(docs), len(normalized))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// docExtraction pairs a source document with its extraction result.
type docExtraction struct {
	file       string
	extraction domain.Extraction
}

// ── Phase 1: Identification ──
// Every raw document must match exactly one operator extractor.

func validateIdentification(docs []domain.Document) ([]docExtraction, *phase) {
	p := &phase{name: "Phase 1: Operator Identification"}

	extractions := make([]docExtraction, 0, len(docs))
	for _, doc := range docs {
		extractor := extract.Identify(doc.Text)
		if extractor == nil {
			p.errorf("%s: no extractor matched", doc.File)
			continue
		}
		extractions = append(extractions, docExtraction{
			file:       doc.File,
			extraction: extractor.Extract(doc.Text),
		})
	}
	return extractions, p
}

// ── Phase 2: Extraction Integrity ──
// Required fields are present and the record passes the validation gate.

func validateExtraction(extractions []docExtraction) *phase {
	p := &phase{name: "Phase 2: Extraction Integrity"}

	validMagnitudes := map[string]bool{
		domain.MagnitudeMayor: true, domain.MagnitudeMenor: true,
		domain.MagnitudeUndetermined: true,
		"Baja":                       true, "Media": true, "Alta": true,
		"Bajo": true, "Medio": true, "Grave": true,
	}

	for _, de := range extractions {
		e := de.extraction
		if e.IncidentID == nil || *e.IncidentID == "" {
			p.errorf("%s: missing incident identifier", de.file)
		}
		if e.Operator == "" {
			p.errorf("%s: missing operator", de.file)
		}
		if e.Date == nil {
			p.errorf("%s: missing occurrence date", de.file)
		} else if _, err := time.Parse("02-01-2006", *e.Date); err != nil {
			p.errorf("%s: date %q is not dd-mm-yyyy", de.file, *e.Date)
		}
		if e.Magnitude != nil && !validMagnitudes[*e.Magnitude] {
			p.errorf("%s: magnitude %q not a known label", de.file, *e.Magnitude)
		}
		if !domain.ValidateExtraction(e, discardLogger()) {
			p.errorf("%s: extraction fails the validation gate", de.file)
		}
	}
	return p
}

// ── Phase 3: Projection Consistency ──
// Both grid projections must compute and land in plausible regional ranges.

func validateProjection(extractions []docExtraction) *phase {
	p := &phase{name: "Phase 3: Projection Consistency"}

	for _, de := range extractions {
		e := de.extraction

		utm, err := geo.ToUTM(e.Lat, e.Lon)
		if err != nil {
			p.errorf("%s: utm: %v", de.file, err)
		} else {
			if utm.Zone != 19 && utm.Zone != 20 {
				p.errorf("%s: utm zone %d outside the region", de.file, utm.Zone)
			}
			if utm.Easting < 166000 || utm.Easting > 834000 {
				p.errorf("%s: utm easting %.2f out of range", de.file, utm.Easting)
			}
		}

		gk, err := geo.ToGaussKruger(e.Lat, e.Lon)
		if err != nil {
			p.errorf("%s: gauss-kruger: %v", de.file, err)
			continue
		}
		if gk.Easting < 2200000 || gk.Easting > 2800000 {
			p.errorf("%s: gk easting %.2f out of range for faja 2", de.file, gk.Easting)
		}
		if gk.Northing < 5600000 || gk.Northing > 6500000 {
			p.errorf("%s: gk northing %.2f out of range for the region", de.file, gk.Northing)
		}
	}
	return p
}

// ── Phase 4: Normalization Parity ──
// The normalized fixture must match a fresh run of the same pipeline stages.

func validateNormalizationParity(extractions []docExtraction, normalized []domain.Incident) *phase {
	p := &phase{name: "Phase 4: Normalization Parity"}

	byID := map[string]*domain.Incident{}
	for i := range normalized {
		if normalized[i].ID == "" {
			p.errorf("normalized record %d: missing NUM_INC", i)
			continue
		}
		byID[normalized[i].ID] = &normalized[i]
	}

	for _, de := range extractions {
		expected := domain.Normalize(de.extraction)
		if utm, err := geo.ToUTM(de.extraction.Lat, de.extraction.Lon); err == nil {
			expected.UTM = &utm
		}
		if gk, err := geo.ToGaussKruger(de.extraction.Lat, de.extraction.Lon); err == nil {
			expected.GaussKruger = &gk
		}

		actual, ok := byID[expected.ID]
		if !ok {
			p.errorf("%s: ID %q not found in normalized fixture", de.file, expected.ID)
			continue
		}
		compareIncidents(p, expected, actual)
	}
	return p
}

func compareIncidents(p *phase, expected domain.Incident, actual *domain.Incident) {
	id := expected.ID

	if actual.Operator != expected.Operator {
		p.errorf("ID %s: operator: expected %q, got %q", id, expected.Operator, actual.Operator)
	}
	if !ptrStrEq(actual.Magnitude, expected.Magnitude) {
		p.errorf("ID %s: magnitude: expected %s, got %s", id, ptrStr(expected.Magnitude), ptrStr(actual.Magnitude))
	}
	if !ptrStrEq(actual.Date, expected.Date) {
		p.errorf("ID %s: date: expected %s, got %s", id, ptrStr(expected.Date), ptrStr(actual.Date))
	}
	if !ptrFloatEq(actual.Lat, expected.Lat) || !ptrFloatEq(actual.Lon, expected.Lon) {
		p.errorf("ID %s: coordinate mismatch", id)
	}
	compareProjection(p, id, "utm", expected.UTM, actual.UTM)
	compareProjection(p, id, "gauss-kruger", expected.GaussKruger, actual.GaussKruger)

	if actual.Summary != nil && len([]rune(*actual.Summary)) > 123 {
		p.errorf("ID %s: summary exceeds the abbreviation limit", id)
	}
}

func compareProjection(p *phase, id, name string, expected, actual *domain.Projection) {
	if expected == nil && actual == nil {
		return
	}
	if expected == nil || actual == nil {
		p.errorf("ID %s: %s: expected %v, got %v", id, name, expected, actual)
		return
	}
	// Centimeter tolerance; both sides round to cm already.
	if math.Abs(expected.Easting-actual.Easting) > 0.011 ||
		math.Abs(expected.Northing-actual.Northing) > 0.011 {
		p.errorf("ID %s: %s: expected %.2f/%.2f, got %.2f/%.2f",
			id, name, expected.Easting, expected.Northing, actual.Easting, actual.Northing)
	}
	if expected.Zone != actual.Zone {
		p.errorf("ID %s: %s zone: expected %d, got %d", id, name, expected.Zone, actual.Zone)
	}
}

// ── Helpers ──

// discardLogger silences the validation gate's own logging; the phase report
// is the output that matters here.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func ptrStrEq(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func ptrFloatEq(a, b *float64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return math.Abs(*a-*b) < 1e-9
}

func ptrStr(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
