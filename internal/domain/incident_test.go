package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawReport(t *testing.T) {
	t.Run("JSON envelope", func(t *testing.T) {
		raw := RawReport{Value: []byte(`{"file":"comunicado_99.pdf","text":"Operador: YPF S.A."}`)}
		doc, err := ParseRawReport(raw)

		require.NoError(t, err)
		assert.Equal(t, "comunicado_99.pdf", doc.File)
		assert.Equal(t, "Operador: YPF S.A.", doc.Text)
	})

	t.Run("bare text fallback", func(t *testing.T) {
		raw := RawReport{
			Key:   []byte("informe.pdf"),
			Value: []byte("COMUNICADO N°: 99/26\nOPERADOR: PLUSPETROL S.A."),
		}
		doc, err := ParseRawReport(raw)

		require.NoError(t, err)
		assert.Equal(t, "informe.pdf", doc.File)
		assert.Contains(t, doc.Text, "PLUSPETROL")
	})

	t.Run("empty text", func(t *testing.T) {
		raw := RawReport{Value: []byte(`{"file":"vacio.pdf","text":"  "}`)}
		_, err := ParseRawReport(raw)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty document")
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := ParseRawReport(RawReport{})
		require.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	fixedTime := time.Date(2026, 2, 10, 19, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("full extraction", func(t *testing.T) {
		e := Extraction{
			Operator:        "Pluspetrol S.A.",
			IncidentID:      sp("PP-99/26"),
			ConcessionArea:  sp("MOCK"),
			OilField:        sp("MOCK"),
			Magnitude:       sp("Baja"),
			FacilityType:    sp("Línea de conducción"),
			IncidentSubtype: sp("Derrame de agua de producción"),
			Date:            sp("10-02-2026"),
			Description:     sp("Se detecta pérdida sobre la línea."),
			Lat:             fp(-37.42),
			Lon:             fp(-68.40),
			SpilledM3:       fp(0.015),
			WaterPct:        fp(97.0),
			AffectedAreaM2:  fp(0.5),
			Resources:       sp("Suelo"),
		}

		inc := Normalize(e)

		assert.Equal(t, "PP-99/26", inc.ID)
		assert.Equal(t, "Pluspetrol S.A.", inc.Operator)
		assert.Equal(t, "MOCK", *inc.ConcessionArea)
		assert.Equal(t, "Baja", *inc.Magnitude)
		assert.Equal(t, "10-02-2026", *inc.Date)
		assert.Equal(t, "Se detecta pérdida sobre la línea.", *inc.Summary)
		assert.Equal(t, -37.42, *inc.Lat)
		assert.Equal(t, 0.015, *inc.VolumeM3)
		assert.Equal(t, fixedTime, inc.ProcessedAt)
	})

	t.Run("missing id becomes empty string", func(t *testing.T) {
		inc := Normalize(Extraction{Operator: "YPF S.A."})
		assert.Equal(t, "", inc.ID)
		assert.Nil(t, inc.Summary)
		assert.Nil(t, inc.Lat)
	})

	t.Run("canonical JSON field names", func(t *testing.T) {
		inc := Normalize(Extraction{
			Operator:   "YPF S.A.",
			IncidentID: sp("YPF-1"),
			Lat:        fp(-37.33),
			Lon:        fp(-69.05),
		})

		data, err := json.Marshal(inc)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Contains(t, fields, "NUM_INC")
		assert.Contains(t, fields, "OPERADOR")
		assert.Contains(t, fields, "LAT")
		assert.Contains(t, fields, "LON")
		assert.Contains(t, fields, "VOL_M3")
		assert.Contains(t, fields, "RECURSOS_AFECTADOS")
		assert.NotContains(t, fields, "UTM") // omitted until projected
	})
}

func TestAbbreviate(t *testing.T) {
	t.Run("short description untouched", func(t *testing.T) {
		d := sp("Pérdida menor en línea de conducción.")
		assert.Equal(t, *d, *abbreviate(d))
	})

	t.Run("long description truncated with marker", func(t *testing.T) {
		long := strings.Repeat("a", 300)
		out := abbreviate(&long)

		require.NotNil(t, out)
		assert.Len(t, *out, maxSummaryLen+3)
		assert.True(t, strings.HasSuffix(*out, "..."))
	})

	t.Run("exactly at the limit untouched", func(t *testing.T) {
		exact := strings.Repeat("x", maxSummaryLen)
		assert.Equal(t, exact, *abbreviate(&exact))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("ñ", 200)
		out := abbreviate(&long)

		require.NotNil(t, out)
		runes := []rune(*out)
		assert.Len(t, runes, maxSummaryLen+3)
		assert.Equal(t, "ñ", string(runes[maxSummaryLen-1]))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, abbreviate(nil))
	})
}
