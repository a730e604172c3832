package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

func TestInsertArgs_FullRecord(t *testing.T) {
	lat, lon := -37.348933, -69.0534
	vol := 1.2
	area := "Llancanelo"
	inc := domain.Incident{
		ID:             "YPF-77",
		Operator:       "YPF S.A.",
		ConcessionArea: &area,
		Lat:            &lat,
		Lon:            &lon,
		VolumeM3:       &vol,
		UTM:            &domain.Projection{Easting: 495270.48, Northing: 5866416.88, Zone: 19},
		GaussKruger:    &domain.Projection{Easting: 2495252.26, Northing: 5866848.34, Zone: 2},
		SourceFile:     "ypf_77.pdf",
		ProcessedAt:    time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
	}

	args := insertArgs(inc)
	require.Len(t, args, 22)

	assert.Equal(t, "YPF-77", args[0])
	assert.Equal(t, "YPF S.A.", args[1])
	assert.Equal(t, &area, args[2])
	assert.Equal(t, &lat, args[9])
	assert.Equal(t, &lon, args[10])
	assert.Equal(t, &vol, args[11])

	utmEasting, ok := args[15].(*float64)
	require.True(t, ok)
	assert.InDelta(t, 495270.48, *utmEasting, 1e-9)
	utmZone, ok := args[17].(*int)
	require.True(t, ok)
	assert.Equal(t, 19, *utmZone)

	gkEasting, ok := args[18].(*float64)
	require.True(t, ok)
	assert.InDelta(t, 2495252.26, *gkEasting, 1e-9)

	assert.Equal(t, "ypf_77.pdf", args[20])
}

func TestInsertArgs_SparseRecordProducesNulls(t *testing.T) {
	inc := domain.Incident{ID: "PCR-MDZ-99", Operator: "Petroquímica Comodoro Rivadavia"}

	args := insertArgs(inc)
	require.Len(t, args, 22)

	// optional fields land as typed nil pointers, which pgx binds as NULL
	assert.Nil(t, args[2])
	assert.Nil(t, args[9])
	assert.Nil(t, args[15])
	assert.Nil(t, args[17])
	assert.Nil(t, args[18])
}

func TestProjectionCols(t *testing.T) {
	e, n, z := projectionCols(nil)
	assert.Nil(t, e)
	assert.Nil(t, n)
	assert.Nil(t, z)

	p := &domain.Projection{Easting: 1, Northing: 2, Zone: 19}
	e, n, z = projectionCols(p)
	require.NotNil(t, e)
	require.NotNil(t, n)
	require.NotNil(t, z)
	assert.Equal(t, 1.0, *e)
	assert.Equal(t, 2.0, *n)
	assert.Equal(t, 19, *z)
}
