package extract

import (
	"regexp"
	"strings"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// PCR extracts the "Informe Preliminar de Incidente Ambiental" of
// Petroquímica Comodoro Rivadavia S.A. — a marked-table layout close to the
// Pluspetrol one, with narrative volume figures. Its coordinates are DMS with
// an acute accent (´) as the minute mark and a trailing hemisphere letter:
// "Lat. S= 34°57´51,5" S".
type PCR struct{}

var (
	pcrNumIncRe   = regexp.MustCompile(`(?i)Comunicado\s+(MDZ-[\w-]+)`)
	pcrAreaRe     = regexp.MustCompile(`(?i)Concesión[:\s]+(.+)`)
	pcrFacilityRe = regexp.MustCompile(`(?i)Zona[:\s]+(.+)`)
	pcrLocationRe = regexp.MustCompile(`(?i)Ubicación específica[:\s]+(.+)`)

	pcrDescRe = regexp.MustCompile(`(?is)Descripción del accidente.*?\n(.+?)(?:Superficie Afectada|Necesidad)`)

	pcrDateRe    = regexp.MustCompile(`(?i)Fecha[:\s]+(\d{2}[-/]\d{2}[-/]\d{4})`)
	pcrTimeRe    = regexp.MustCompile(`(?i)Hora de Detección[:\s]+(\d{1,2}:\d{2})`)
	pcrEstTimeRe = regexp.MustCompile(`(?i)Hora Estimada[:\s]+(\d{1,2}:\d{2})`)

	pcrLatRe = regexp.MustCompile(`(?i)Lat\.\s*S=\s*([\d°º´'".,]+)`)
	pcrLonRe = regexp.MustCompile(`(?i)Long\.\s*O=\s*([\d°º´'".,]+)`)

	pcrSpilledRe   = regexp.MustCompile(`(?i)Volumen derramado neto.*?[:\s]+([\d.,]+)\s*m3`)
	pcrRecoveredRe = regexp.MustCompile(`(?i)Volumen recuperado neto.*?[:\s]+([\d.,]+)\s*m3`)
	pcrWaterRe     = regexp.MustCompile(`(?i)(\d+)\s*%\s*de\s*agua`)
	pcrAreaM2Re    = regexp.MustCompile(`(?i)unos\s+([\d.,]+)\s*m2`)

	pcrResponsibleRe = regexp.MustCompile(`(?i)Responsable del comunicado[:\s]+(.+)`)
	pcrMeasuresRe    = regexp.MustCompile(`(?is)Medidas adoptadas[:\s]+(.+?)(?:El tiempo estimado|\z)`)
)

// pcrSubtypes is the marked incident-type table, in fixed priority order.
// PCR uses █ as a fourth mark glyph next to the usual three.
var pcrSubtypes = []markedRow{
	{"Derrames de agua de producción", regexp.MustCompile(`(?i)Derrames de agua.*?[■✓X█]`)},
	{"Derrames de hidrocarburos", regexp.MustCompile(`(?i)Derrames de hidrocarburo.*?[■✓X█]`)},
	{"Incendio y/o explosiones", regexp.MustCompile(`(?i)Incendio.*?[■✓X█]`)},
	{"Escapes de gases", regexp.MustCompile(`(?i)Escapes de gas.*?[■✓X█]`)},
	{"Descontrol de pozos", regexp.MustCompile(`(?i)Descontrol.*?[■✓X█]`)},
	{"Material radioactivo", regexp.MustCompile(`(?i)material radioactivo.*?[■✓X█]`)},
}

// pcrMagnitudes maps the marked severity column to its label. The GRAVE
// column is labeled ">10m3" in the form.
var pcrMagnitudes = []markedRow{
	{"Bajo", regexp.MustCompile(`(?i)BAJO\s*\n[^\n]*[■█]`)},
	{"Medio", regexp.MustCompile(`(?i)MEDIO\s*\n[^\n]*[■█]`)},
	{"Grave", regexp.MustCompile(`(?i)GRAVE\s*\n[^\n]*[■█]`)},
}

func (PCR) Operator() string { return "Petroquímica Comodoro Rivadavia S.A." }

func (p PCR) Extract(text string) domain.Extraction {
	e := domain.Extraction{Operator: p.Operator()}

	e.IncidentID = prefixID("PCR-", Find(pcrNumIncRe, text, 1))

	e.ConcessionArea = Find(pcrAreaRe, text, 1)
	e.Facility = Find(pcrFacilityRe, text, 1)
	e.Location = Find(pcrLocationRe, text, 1)

	e.IncidentSubtype = firstMarked(pcrSubtypes, text)
	e.Description = Find(pcrDescRe, text, 1)

	e.Date = NormalizeDate(Find(pcrDateRe, text, 1))
	e.Time = Find(pcrTimeRe, text, 1)
	e.EstimatedTime = Find(pcrEstTimeRe, text, 1)

	e.Lat = p.parseCoord(pcrLatRe, text, "latitud")
	e.Lon = p.parseCoord(pcrLonRe, text, "longitud")
	e.SRIDOrig = "WGS84-DMS→DD"

	if !domain.ValidateCoordinates(e.Lat, e.Lon) {
		logger.Warn("invalid coordinates", "operator", "PCR", "incident", idForLog(e.IncidentID))
	}

	e.SpilledM3 = FindFloat(pcrSpilledRe, text, 1)
	e.RecoveredM3 = FindFloat(pcrRecoveredRe, text, 1)
	e.WaterPct = FindFloat(pcrWaterRe, text, 1)
	e.AffectedAreaM2 = FindFloat(pcrAreaM2Re, text, 1)
	// This format does not report a hydrocarbon concentration.

	e.Responsible = Find(pcrResponsibleRe, text, 1)
	e.Measures = Find(pcrMeasuresRe, text, 1)

	e.Magnitude = firstMarked(pcrMagnitudes, text)
	if e.Magnitude == nil {
		magnitude := domain.InferMagnitude(e.SpilledM3, nil)
		e.Magnitude = &magnitude
		logger.Info("magnitude inferred from volume",
			"operator", "PCR",
			"incident", idForLog(e.IncidentID),
			"magnitude", magnitude,
		)
	}

	return e
}

// parseCoord converts a raw PCR DMS value to signed decimal degrees. The
// acute accent is mapped to a plain apostrophe before parsing, and the sign
// is forced negative for this hemisphere.
func (PCR) parseCoord(re *regexp.Regexp, text, name string) *float64 {
	raw := Find(re, text, 1)
	if raw == nil {
		return nil
	}
	normalized := strings.TrimSpace(strings.ReplaceAll(*raw, "´", "'"))
	dd := ParseDMSString(normalized)
	if dd == nil {
		logger.Warn("unparsable coordinate", "operator", "PCR", "coordinate", name, "raw", *raw)
		return nil
	}
	return negate(dd)
}
