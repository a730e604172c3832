package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FedericoMusa/incident-data-etl/internal/config"
	"github.com/FedericoMusa/incident-data-etl/internal/domain"
	"github.com/FedericoMusa/incident-data-etl/internal/observability"
)

// Sink persists normalized incidents to Postgres. It implements
// pipeline.BatchLoader and is optional: the service runs Kafka-only when no
// DSN is configured.
type Sink struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *observability.Metrics
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS incidents (
	num_inc            TEXT PRIMARY KEY,
	operator           TEXT NOT NULL,
	concession_area    TEXT,
	oil_field          TEXT,
	magnitude          TEXT,
	facility_type      TEXT,
	subtype            TEXT,
	incident_date      TEXT,
	summary            TEXT,
	lat                DOUBLE PRECISION,
	lon                DOUBLE PRECISION,
	volume_m3          DOUBLE PRECISION,
	water_pct          DOUBLE PRECISION,
	affected_area_m2   DOUBLE PRECISION,
	affected_resources TEXT,
	utm_easting        DOUBLE PRECISION,
	utm_northing       DOUBLE PRECISION,
	utm_zone           INTEGER,
	gk_easting         DOUBLE PRECISION,
	gk_northing        DOUBLE PRECISION,
	source_file        TEXT,
	processed_at       TIMESTAMPTZ NOT NULL
)`

// Reprocessed documents produce the same num_inc; first write wins and the
// duplicate is counted, not treated as an error.
const insertSQL = `
INSERT INTO incidents (
	num_inc, operator, concession_area, oil_field, magnitude, facility_type,
	subtype, incident_date, summary, lat, lon, volume_m3, water_pct,
	affected_area_m2, affected_resources, utm_easting, utm_northing, utm_zone,
	gk_easting, gk_northing, source_file, processed_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
ON CONFLICT (num_inc) DO NOTHING`

// NewSink opens the connection pool and ensures the incidents table exists.
func NewSink(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Sink, error) {
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres sink: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres sink: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres sink: ensure schema: %w", err)
	}

	metrics.StoreEnabled.Set(1)
	return &Sink{pool: pool, logger: logger, metrics: metrics}, nil
}

// LoadBatch inserts the incidents in one round trip. Records without an
// identifier are skipped with a warning; they cannot be keyed.
func (s *Sink) LoadBatch(ctx context.Context, incidents []domain.Incident) error {
	start := time.Now()

	batch := &pgx.Batch{}
	queued := 0
	for i := range incidents {
		if incidents[i].ID == "" {
			s.logger.Warn("skipping incident without identifier",
				"source_file", incidents[i].SourceFile)
			continue
		}
		batch.Queue(insertSQL, insertArgs(incidents[i])...)
		queued++
	}
	if queued == 0 {
		return nil
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < queued; i++ {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("postgres sink: insert: %w", err)
		}
		if tag.RowsAffected() == 0 {
			s.metrics.StoreInserts.WithLabelValues("duplicate").Inc()
		} else {
			s.metrics.StoreInserts.WithLabelValues("inserted").Inc()
		}
	}

	s.metrics.StoreDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (s *Sink) Close() {
	s.pool.Close()
}

// insertArgs flattens an incident into the insert parameter list. Nil
// pointers map to SQL NULLs.
func insertArgs(inc domain.Incident) []any {
	utmEasting, utmNorthing, utmZone := projectionCols(inc.UTM)
	gkEasting, gkNorthing, _ := projectionCols(inc.GaussKruger)

	return []any{
		inc.ID,
		inc.Operator,
		inc.ConcessionArea,
		inc.OilField,
		inc.Magnitude,
		inc.FacilityType,
		inc.Subtype,
		inc.Date,
		inc.Summary,
		inc.Lat,
		inc.Lon,
		inc.VolumeM3,
		inc.WaterPct,
		inc.AffectedAreaM2,
		inc.AffectedResources,
		utmEasting,
		utmNorthing,
		utmZone,
		gkEasting,
		gkNorthing,
		inc.SourceFile,
		inc.ProcessedAt,
	}
}

func projectionCols(p *domain.Projection) (easting, northing *float64, zone *int) {
	if p == nil {
		return nil, nil, nil
	}
	return &p.Easting, &p.Northing, &p.Zone
}
