package extract

import (
	"regexp"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// Aconcagua extracts the "Informe de Incidente" two-column table of Aconcagua
// Energía S.A. — the cleanest format of the five: coordinates come as signed
// decimal degrees and every field is labeled. Two quirks remain: the report
// carries no communication number, so the facility subtype code (e.g. "CH-28")
// stands in as the incident identifier, and it never states a magnitude, so
// the severity is always inferred from volume and concentration.
type Aconcagua struct{}

// acoDefaultArea is used when the report omits the concession field; all
// Aconcagua activity in the region runs on this block.
const acoDefaultArea = "Chañares Herrados"

var (
	acoFacSubtypeRe = regexp.MustCompile(`(?i)Subtipo de instalación involucrada\s+(\S+)`)
	acoAreaRe       = regexp.MustCompile(`(?i)Nombre del área en recepción o\s+(.+)`)
	acoOilFieldRe   = regexp.MustCompile(`(?i)Nombre del yacimiento\s+(.+)`)
	acoFacTypeRe    = regexp.MustCompile(`(?i)Tipo de instalación involucrada\s+(.+)`)

	acoSubtypeRe = regexp.MustCompile(`(?i)Tipo de Incidente\s+([^\n]+)`)
	acoDescRe    = regexp.MustCompile(`(?is)Detalle del incidente\s+(.+?)Tipo de instalación`)
	acoCauseRe   = regexp.MustCompile(`(?i)Subtipo del evento causante\s+([^\n]+)`)
	// "Reponsable" is how the form itself spells it.
	acoResponsibleRe = regexp.MustCompile(`(?i)Reponsable de la Instalación\s+(.+)`)

	acoDateRe = regexp.MustCompile(`(?i)Fecha de Ocurrencia\s+(\d{2}/\d{2}/\d{4})`)
	acoTimeRe = regexp.MustCompile(`(?i)Hora de Ocurrencia\s+(\d{2}:\d{2})`)

	acoLatRe = regexp.MustCompile(`(?i)Latitud Decimal\s+(-?[\d.]+)`)
	acoLonRe = regexp.MustCompile(`(?i)Longitud Decimal\s+(-?[\d.]+)`)

	acoSpilledRe   = regexp.MustCompile(`(?i)Volumen\s+de\s+líquido\s+derramado\s+([\d.,]+)`)
	acoRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+de\s+fluido\s+recuperado\s+([\d.,]+)`)
	acoWaterRe     = regexp.MustCompile(`(?i)%\s+de\s+Agua\s+([\d.,]+)`)
	acoAreaM2Re    = regexp.MustCompile(`(?i)Superficie aprox\.\s+afectada\s+([\d.,]+)`)
	acoPPMRe       = regexp.MustCompile(`(?i)PPM\s+([\d.,]+)`)
	acoGasRe       = regexp.MustCompile(`(?i)Volumen de gas\s+([\d.,]+)`)

	acoMeasuresRe = regexp.MustCompile(`(?is)Medidas adoptadas\s+(.+?)(?:Dirección de e-mail|\z)`)
)

func (Aconcagua) Operator() string { return "Aconcagua Energía S.A." }

func (a Aconcagua) Extract(text string) domain.Extraction {
	e := domain.Extraction{Operator: a.Operator()}

	facSubtype := Find(acoFacSubtypeRe, text, 1)
	e.IncidentID = prefixID("ACO-", facSubtype)
	e.Facility = facSubtype

	e.ConcessionArea = Find(acoAreaRe, text, 1)
	if e.ConcessionArea == nil {
		area := acoDefaultArea
		e.ConcessionArea = &area
	}
	e.OilField = Find(acoOilFieldRe, text, 1)
	e.FacilityType = Find(acoFacTypeRe, text, 1)

	e.IncidentSubtype = findOr(acoSubtypeRe, text, "No especificado")
	e.Description = Find(acoDescRe, text, 1)
	e.Cause = findOr(acoCauseRe, text, "No especificado")
	e.Responsible = Find(acoResponsibleRe, text, 1)

	e.Date = NormalizeDate(Find(acoDateRe, text, 1))
	e.Time = Find(acoTimeRe, text, 1)

	e.Lat = FindFloat(acoLatRe, text, 1)
	e.Lon = FindFloat(acoLonRe, text, 1)
	e.SRIDOrig = "WGS84-DD"

	if !domain.ValidateCoordinates(e.Lat, e.Lon) {
		logger.Warn("invalid coordinates", "operator", "Aconcagua", "incident", idForLog(e.IncidentID))
	}

	e.SpilledM3 = FindFloat(acoSpilledRe, text, 1)
	e.RecoveredM3 = FindFloat(acoRecoveredRe, text, 1)
	e.WaterPct = FindFloat(acoWaterRe, text, 1)
	e.AffectedAreaM2 = FindFloat(acoAreaM2Re, text, 1)
	e.GasM3 = FindFloat(acoGasRe, text, 1)
	e.HydrocarbonPPM = Find(acoPPMRe, text, 1)

	e.Measures = Find(acoMeasuresRe, text, 1)

	// The form has no magnitude field at all.
	ppm := FindFloat(acoPPMRe, text, 1)
	magnitude := domain.InferMagnitude(e.SpilledM3, ppm)
	e.Magnitude = &magnitude
	logger.Info("magnitude inferred from volume",
		"operator", "Aconcagua",
		"incident", idForLog(e.IncidentID),
		"magnitude", magnitude,
	)

	return e
}

// findOr is Find with a fallback for table cells that may come empty.
func findOr(re *regexp.Regexp, text, fallback string) *string {
	if v := Find(re, text, 1); v != nil && *v != "" {
		return v
	}
	return &fallback
}
