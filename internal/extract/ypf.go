package extract

import (
	"math"
	"regexp"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// YPF extracts the "Comunicado Incidente / Informe Preliminar Mendoza"
// format of YPF S.A., the richest of the five layouts.
//
// The report prints the coordinates three times: DMS, degrees-decimal-minutes
// and plain decimal degrees. The decimal form is preferred — it needs no
// conversion, only the sign: YPF prints unsigned magnitudes with a
// hemisphere label, so south and west are negated explicitly.
type YPF struct{}

var (
	ypfNumIncRe    = regexp.MustCompile(`(?i)Comunicado Incidente\s+N[°º]\s*(\d+)`)
	ypfAreaConceRe = regexp.MustCompile(`(?i)Área concesionada:\s*(.+)`)
	ypfAreaOperRe  = regexp.MustCompile(`(?i)Área operativa:\s*(.+)`)
	ypfOilFieldRe  = regexp.MustCompile(`(?i)Yacimiento:\s*(.+)`)
	ypfBasinRe     = regexp.MustCompile(`(?i)Cuenca:\s*(.+)`)
	ypfFacilityRe  = regexp.MustCompile(`(?i)Nombre de la instalación:\s*(.+)`)
	ypfFacTypeRe   = regexp.MustCompile(`(?i)Tipo de instalación:\s*(.+)`)
	ypfSubtypeRe   = regexp.MustCompile(`(?i)Subtipo de incidente:\s*(.+)`)
	ypfCauseRe     = regexp.MustCompile(`(?i)Subtipo de evento causante:\s*(.+)`)
	ypfMagnitudeRe = regexp.MustCompile(`(?i)Magnitud del Incidente:\s*(.+)`)
	ypfDescRe      = regexp.MustCompile(`(?i)Descripción:\s*(.+)`)
	ypfDateRe      = regexp.MustCompile(`(?i)Fecha de ocurrencia:\s*(\d{2}/\d{2}/\d{4})`)
	ypfTimeRe      = regexp.MustCompile(`(?i)Hora de ocurrencia:\s*(\d{2}:\d{2})`)

	// The label and value can land on separate lines, and the same labels
	// appear earlier for the DMS and decimal-minutes representations; the
	// tight [\d.]+° shape only matches the plain decimal line.
	ypfLatDDRe = regexp.MustCompile(`(?is)Grados y decimales:.*?Latitud\s*\(S\):\s*([\d.]+)°`)
	ypfLonDDRe = regexp.MustCompile(`(?i)Latitud\s*\(S\):\s*[\d.]+°\s*Longitud\s*\(W\):\s*([\d.]+)°`)

	ypfSpilledRe   = regexp.MustCompile(`(?i)Volumen m3 derramado:\s*([\d.,]+)`)
	ypfRecoveredRe = regexp.MustCompile(`(?i)Volumen m3 recuperado:\s*([\d.,]+)`)
	ypfWaterRe     = regexp.MustCompile(`(?i)%\s*Agua contenido:\s*([\d.,]+)`)
	ypfAreaM2Re    = regexp.MustCompile(`(?i)Área m2:\s*([\d.,]+)`)
	ypfPPMRe       = regexp.MustCompile(`(?i)Concentración de hidrocarburo \(ppm\):\s*(.+)`)
	ypfResourcesRe = regexp.MustCompile(`(?i)Recursos afectados:\s*(.+)`)
)

func (YPF) Operator() string { return "YPF S.A." }

func (y YPF) Extract(text string) domain.Extraction {
	e := domain.Extraction{Operator: y.Operator()}

	e.IncidentID = prefixID("YPF-", Find(ypfNumIncRe, text, 1))

	e.ConcessionArea = Find(ypfAreaConceRe, text, 1)
	e.OperativeArea = Find(ypfAreaOperRe, text, 1)
	e.OilField = Find(ypfOilFieldRe, text, 1)
	e.Basin = Find(ypfBasinRe, text, 1)

	e.Facility = Find(ypfFacilityRe, text, 1)
	e.FacilityType = Find(ypfFacTypeRe, text, 1)

	e.IncidentSubtype = Find(ypfSubtypeRe, text, 1)
	e.Cause = Find(ypfCauseRe, text, 1)
	e.Magnitude = Find(ypfMagnitudeRe, text, 1)
	e.Description = Find(ypfDescRe, text, 1)

	e.Date = NormalizeDate(Find(ypfDateRe, text, 1))
	e.Time = Find(ypfTimeRe, text, 1)

	e.Lat = negate(FindFloat(ypfLatDDRe, text, 1))
	e.Lon = negate(FindFloat(ypfLonDDRe, text, 1))
	e.SRIDOrig = "WGS84-DD"

	if !domain.ValidateCoordinates(e.Lat, e.Lon) {
		logger.Warn("invalid coordinates", "operator", "YPF", "incident", idForLog(e.IncidentID))
	}

	e.SpilledM3 = FindFloat(ypfSpilledRe, text, 1)
	e.RecoveredM3 = FindFloat(ypfRecoveredRe, text, 1)
	e.WaterPct = FindFloat(ypfWaterRe, text, 1)
	e.AffectedAreaM2 = FindFloat(ypfAreaM2Re, text, 1)
	e.HydrocarbonPPM = Find(ypfPPMRe, text, 1)

	e.Resources = Find(ypfResourcesRe, text, 1)

	return e
}

// prefixID builds the operator-scoped incident identifier, or nil when the
// raw number was not found.
func prefixID(prefix string, raw *string) *string {
	if raw == nil {
		return nil
	}
	id := prefix + *raw
	return &id
}

// negate forces a coordinate into the southern/western hemisphere. Used by
// formats that print unsigned magnitudes next to a hemisphere label.
func negate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := -math.Abs(*v)
	return &n
}

func idForLog(id *string) string {
	if id == nil {
		return "<sin id>"
	}
	return *id
}
