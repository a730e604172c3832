package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
	"github.com/FedericoMusa/incident-data-etl/internal/extract"
	"github.com/FedericoMusa/incident-data-etl/internal/geo"
	"github.com/FedericoMusa/incident-data-etl/internal/observability"
)

// Transformation rejection reasons. These are per-document conditions: the
// pipeline skips and commits the message instead of retrying it.
var (
	ErrUnknownFormat      = errors.New("no extractor matches the document")
	ErrInvalidCoordinates = errors.New("coordinates outside the operating region")
)

// ReportTransformer implements Transformer: it identifies the operator format,
// extracts the raw field set, validates it and produces the normalized
// incident with its grid projections.
type ReportTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *ReportTransformer {
	return &ReportTransformer{logger: logger, metrics: metrics}
}

func (t *ReportTransformer) Transform(_ context.Context, raw domain.RawReport) (domain.Incident, error) {
	doc, err := domain.ParseRawReport(raw)
	if err != nil {
		t.metrics.Extractions.WithLabelValues("unknown", "empty_document").Inc()
		return domain.Incident{}, err
	}

	extractor := extract.Identify(doc.Text)
	if extractor == nil {
		t.metrics.Extractions.WithLabelValues("unknown", "unknown_format").Inc()
		return domain.Incident{}, fmt.Errorf("%w: %s", ErrUnknownFormat, doc.File)
	}
	operator := extractor.Operator()

	extraction := extractor.Extract(doc.Text)
	if !domain.ValidateExtraction(extraction, t.logger) {
		t.metrics.Extractions.WithLabelValues(operator, "invalid_coordinates").Inc()
		return domain.Incident{}, fmt.Errorf("%w: %s", ErrInvalidCoordinates, doc.File)
	}

	incident := domain.Normalize(extraction)
	incident.SourceFile = doc.File
	incident.RawPayload = raw.Value

	t.project(&incident, extraction)

	t.metrics.Extractions.WithLabelValues(operator, "ok").Inc()
	return incident, nil
}

// project attaches the UTM and Gauss-Krüger pairs. Projection failures are
// not fatal: the incident already passed coordinate validation, so a failure
// here is an internal inconsistency worth a metric and a log line, but the
// record still flows.
func (t *ReportTransformer) project(incident *domain.Incident, e domain.Extraction) {
	utm, err := geo.ToUTM(e.Lat, e.Lon)
	if err != nil {
		t.metrics.ProjectionErrors.WithLabelValues("utm").Inc()
		t.logger.Warn("utm projection failed", "incident", incident.ID, "error", err)
	} else {
		incident.UTM = &utm
	}

	gk, err := geo.ToGaussKruger(e.Lat, e.Lon)
	if err != nil {
		t.metrics.ProjectionErrors.WithLabelValues("gauss_kruger").Inc()
		t.logger.Warn("gauss-kruger projection failed", "incident", incident.ID, "error", err)
	} else {
		incident.GaussKruger = &gk
	}
}
