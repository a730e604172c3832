package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RawReport represents an unprocessed message from the source topic: one
// incident-report document as extracted upstream from the operator's PDF.
type RawReport struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Document is the decoded payload of a RawReport: the source file name and
// the concatenated page text (pages separated by form-feed characters).
type Document struct {
	File string `json:"file"`
	Text string `json:"text"`
}

// ParseRawReport decodes a RawReport's value into a Document. The collector
// publishes a JSON envelope; bare text payloads are accepted as a fallback so
// hand-fed documents (cmd/validate, replays) work too.
func ParseRawReport(raw RawReport) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw.Value, &doc); err != nil {
		doc = Document{File: string(raw.Key), Text: string(raw.Value)}
	}
	if strings.TrimSpace(doc.Text) == "" {
		return Document{}, fmt.Errorf("parse raw report: empty document text")
	}
	return doc, nil
}

// Extraction is the raw field set produced by one operator extractor.
// Every field except Operator is optional: a field the document does not
// carry (or that fails to parse) is nil, never a zero value, so downstream
// code can tell "absent" from "zero". An Extraction is immutable once
// returned by an extractor.
type Extraction struct {
	Operator   string  // always set, static per extractor
	IncidentID *string // operator-prefixed (YPF-, PP-, PETSUD-, ACO-, PCR-)

	ConcessionArea *string
	OperativeArea  *string
	OilField       *string
	Basin          *string
	Location       *string

	Facility        *string
	FacilityType    *string
	IncidentSubtype *string
	Cause           *string
	Magnitude       *string
	Description     *string
	Measures        *string
	Responsible     *string
	Code            *string

	Date          *string // canonical dd-mm-yyyy
	Time          *string // hh:mm as printed
	EstimatedTime *string // PCR reports a second, estimated hour

	Lat       *float64 // WGS84 decimal degrees, negative south
	Lon       *float64 // WGS84 decimal degrees, negative west
	SRIDOrig  string   // provenance of the coordinate representation
	GKX       *float64 // Gauss-Krüger provenance pair as printed (Pluspetrol)
	GKY       *float64
	SRIDGauss string

	SpilledM3      *float64
	RecoveredM3    *float64
	WaterPct       *float64
	AffectedAreaM2 *float64
	GasM3          *float64
	HydrocarbonPPM *string // free text in most formats ("menor a 50")

	Resources *string // comma-joined affected resources
}

// Projection is a derived cartesian pair in meters.
type Projection struct {
	Easting  float64 `json:"easting_m"`
	Northing float64 `json:"northing_m"`
	Zone     int     `json:"zone,omitempty"`
}

// Incident is the canonical normalized record handed to the sinks, keyed by
// the fixed field-name set the downstream store expects.
type Incident struct {
	ID                string   `json:"NUM_INC"`
	Operator          string   `json:"OPERADOR"`
	ConcessionArea    *string  `json:"AREA_CONCESION"`
	OilField          *string  `json:"YACIMIENTO"`
	Magnitude         *string  `json:"MAGNITUD"`
	FacilityType      *string  `json:"TIPO_INSTALACION"`
	Subtype           *string  `json:"SUBTIPO"`
	Date              *string  `json:"FECHA"`
	Summary           *string  `json:"DESC_ABREV"`
	Lat               *float64 `json:"LAT"`
	Lon               *float64 `json:"LON"`
	VolumeM3          *float64 `json:"VOL_M3"`
	WaterPct          *float64 `json:"AGUA_PCT"`
	AffectedAreaM2    *float64 `json:"AREA_AFECT_m2"`
	AffectedResources *string  `json:"RECURSOS_AFECTADOS"`

	// Projection enrichment, present when coordinates validated.
	UTM         *Projection `json:"UTM,omitempty"`
	GaussKruger *Projection `json:"GAUSS_KRUGER,omitempty"`

	SourceFile  string    `json:"source_file,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`

	RawPayload []byte `json:"-"`
}

// maxSummaryLen is the truncation threshold for the abbreviated description.
const maxSummaryLen = 120

// Normalize maps a raw extraction to the canonical incident record,
// truncating long descriptions and stamping the processing time.
func Normalize(e Extraction) Incident {
	return Incident{
		ID:                derefOr(e.IncidentID, ""),
		Operator:          e.Operator,
		ConcessionArea:    e.ConcessionArea,
		OilField:          e.OilField,
		Magnitude:         e.Magnitude,
		FacilityType:      e.FacilityType,
		Subtype:           e.IncidentSubtype,
		Date:              e.Date,
		Summary:           abbreviate(e.Description),
		Lat:               e.Lat,
		Lon:               e.Lon,
		VolumeM3:          e.SpilledM3,
		WaterPct:          e.WaterPct,
		AffectedAreaM2:    e.AffectedAreaM2,
		AffectedResources: e.Resources,
		ProcessedAt:       clock.Now(),
	}
}

// abbreviate truncates a description to maxSummaryLen runes plus an ellipsis
// marker. Truncation counts runes, not bytes: descriptions carry accented
// Spanish text and must not be cut mid-character.
func abbreviate(desc *string) *string {
	if desc == nil {
		return nil
	}
	runes := []rune(*desc)
	if len(runes) <= maxSummaryLen {
		return desc
	}
	short := string(runes[:maxSummaryLen]) + "..."
	return &short
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
