package domain

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon *float64
		expected bool
	}{
		{"inside the box", fp(-37.42), fp(-68.40), true},
		{"lat lower edge", fp(-39.0), fp(-68.0), true},
		{"lat upper edge", fp(-32.0), fp(-68.0), true},
		{"lon lower edge", fp(-35.0), fp(-70.0), true},
		{"lon upper edge", fp(-35.0), fp(-67.0), true},
		{"dropped leading digit", fp(-3.742), fp(-68.40), false},
		{"too far south", fp(-41.5), fp(-68.2), false},
		{"too far east", fp(-35.0), fp(-58.4), false},
		{"positive hemisphere", fp(37.42), fp(68.40), false},
		{"nil latitude", nil, fp(-68.40), false},
		{"nil longitude", fp(-37.42), nil, false},
		{"both nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestValidateExtraction(t *testing.T) {
	logger := slog.Default()

	t.Run("valid record passes", func(t *testing.T) {
		e := Extraction{
			IncidentID:  sp("YPF-1"),
			Lat:         fp(-37.33),
			Lon:         fp(-69.05),
			SpilledM3:   fp(8.5),
			RecoveredM3: fp(1.0),
		}
		assert.True(t, ValidateExtraction(e, logger))
	})

	t.Run("out-of-range coordinates rejected", func(t *testing.T) {
		e := Extraction{
			IncidentID: sp("PP-02/26"),
			Lat:        fp(-41.5),
			Lon:        fp(-68.2),
		}
		assert.False(t, ValidateExtraction(e, logger))
	})

	t.Run("missing coordinates rejected", func(t *testing.T) {
		e := Extraction{IncidentID: sp("PCR-MDZ-1")}
		assert.False(t, ValidateExtraction(e, logger))
	})

	t.Run("recovered above spilled is kept", func(t *testing.T) {
		e := Extraction{
			IncidentID:  sp("ACO-CH-28"),
			Lat:         fp(-33.34),
			Lon:         fp(-68.98),
			SpilledM3:   fp(1.0),
			RecoveredM3: fp(3.0),
		}
		assert.True(t, ValidateExtraction(e, logger))
	})

	t.Run("no id still validates", func(t *testing.T) {
		e := Extraction{Lat: fp(-35.0), Lon: fp(-68.5)}
		assert.True(t, ValidateExtraction(e, logger))
	})
}

func TestInferMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		volume   *float64
		ppm      *float64
		expected string
	}{
		{"nil volume", nil, fp(100), MagnitudeUndetermined},
		{"nil volume nil ppm", nil, nil, MagnitudeUndetermined},
		{"high ppm over threshold", fp(6), fp(60), MagnitudeMayor},
		{"high ppm under threshold", fp(4), fp(60), MagnitudeMenor},
		{"low ppm under relaxed threshold", fp(6), fp(20), MagnitudeMenor},
		{"low ppm over relaxed threshold", fp(11), fp(20), MagnitudeMayor},
		{"ppm exactly 50 uses relaxed threshold", fp(8), fp(50), MagnitudeMenor},
		{"unknown ppm uses strict threshold", fp(6), nil, MagnitudeMayor},
		{"unknown ppm small volume", fp(4), nil, MagnitudeMenor},
		{"volume exactly at threshold", fp(5), fp(60), MagnitudeMenor},
		{"zero volume", fp(0), fp(60), MagnitudeMenor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferMagnitude(tt.volume, tt.ppm))
		})
	}
}
