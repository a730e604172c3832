package extract

import (
	"regexp"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// Pluspetrol extracts the "Planilla de Comunicación de Accidentes" format of
// Pluspetrol S.A., the loosest of the five layouts: quantitative data is
// embedded in narrative text, and the incident subtype and magnitude are
// encoded as a mark glyph (■, ✓ or X) in a contingency table rather than as
// labeled fields.
//
// The report carries two coordinate systems. The WGS84 decimal pair is
// authoritative (already signed in source); the Gauss-Krüger Faja 2 pair in
// meters is retained untouched as provenance.
type Pluspetrol struct{}

var (
	ppNumIncRe   = regexp.MustCompile(`(?i)COMUNICADO\s+N[°º]?[:\s]+(\S+)`)
	ppCodeRe     = regexp.MustCompile(`(?i)CÓDIGO[:\s]+(\S+)`)
	ppAreaRe     = regexp.MustCompile(`(?i)CONCESION[:\s]+(\S+)`)
	ppOilFieldRe = regexp.MustCompile(`(?i)YACIMIENTO[:\s]+(\S+)`)
	ppFacilityRe = regexp.MustCompile(`(?i)OTROS[:\s]+(.+)`)
	ppLocationRe = regexp.MustCompile(`(?i)UBICACIÓN ESPECÍFICA[:\s]+(.+)`)
	ppDescRe     = regexp.MustCompile(`(?is)DESCRIPCIÓN[:\s]*\n(.+?)(?:\n\n|\z)`)
	ppDateRe     = regexp.MustCompile(`(?i)FECHA[:\s]+(\d{2}/\d{2}/\d{4})`)
	ppTimeRe     = regexp.MustCompile(`(?i)HORA[:\s]+(\d{2}:\d{2})`)

	ppGKXRe = regexp.MustCompile(`(?i)X[:\s]+([\d.,]+)\s+Y[:\s]`)
	ppGKYRe = regexp.MustCompile(`(?i)Y[:\s]+([\d.,]+)\s+\(Gauss`)
	ppLonRe = regexp.MustCompile(`(?i)Long\.\s*:\s*(-?[\d.,]+)`)
	ppLatRe = regexp.MustCompile(`(?i)Lat\.\s*:\s*(-?[\d.,]+)`)

	ppSpilledRe   = regexp.MustCompile(`(?i)Vol\.?\s*derramado[:\s]+([\d.,]+)\s*m3`)
	ppRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+recuperado[:\s]+([\d.,]+)\s*m3`)
	ppWaterRe     = regexp.MustCompile(`(?i)\((\d+)\s*%\s*agua`)
	ppAreaM2Re    = regexp.MustCompile(`(?i)Sup\.?\s*Afectada[:\s]+([\d.,]+)\s*m2`)

	ppMagFallbackRe = regexp.MustCompile(`(?i)Magnitud[:\s]+(\w+)`)
)

// ppSubtypes pairs each incident category with the pattern that detects its
// marked table row, in fixed priority order — the first marked row wins.
var ppSubtypes = []markedRow{
	{"Derrame de agua de producción", regexp.MustCompile(`(?i)Derrame de agua de producción.*?[■✓X]`)},
	{"Derrame de hidrocarburos", regexp.MustCompile(`(?i)Derrame de hidrocarburos.*?[■✓X]`)},
	{"Incendio / explosión", regexp.MustCompile(`(?i)Incendio.*?[■✓X]`)},
	{"Escape de gases", regexp.MustCompile(`(?i)Escape de gases.*?[■✓X]`)},
	{"Descontrol de pozos", regexp.MustCompile(`(?i)Descontrol.*?[■✓X]`)},
}

// ppMagnitudes maps the marked severity column (BAJA / MEDIA / ALTA) to the
// reported magnitude label.
var ppMagnitudes = []markedRow{
	{"Baja", regexp.MustCompile(`(?is)BAJA\s*\n.*?[■✓]`)},
	{"Media", regexp.MustCompile(`(?is)MEDIA\s*\n.*?[■✓]`)},
	{"Alta", regexp.MustCompile(`(?is)ALTA\s*\n.*?[■✓]`)},
}

// markedRow is one candidate row of a checkbox-style table.
type markedRow struct {
	label string
	re    *regexp.Regexp
}

// firstMarked returns the label of the first row whose mark pattern matches.
func firstMarked(rows []markedRow, text string) *string {
	for _, row := range rows {
		if row.re.MatchString(text) {
			label := row.label
			return &label
		}
	}
	return nil
}

func (Pluspetrol) Operator() string { return "Pluspetrol S.A." }

func (p Pluspetrol) Extract(text string) domain.Extraction {
	e := domain.Extraction{Operator: p.Operator()}

	e.IncidentID = prefixID("PP-", Find(ppNumIncRe, text, 1))
	e.Code = Find(ppCodeRe, text, 1)

	e.ConcessionArea = Find(ppAreaRe, text, 1)
	e.OilField = Find(ppOilFieldRe, text, 1)
	e.Facility = Find(ppFacilityRe, text, 1)
	e.Location = Find(ppLocationRe, text, 1)

	e.IncidentSubtype = firstMarked(ppSubtypes, text)
	e.Magnitude = firstMarked(ppMagnitudes, text)
	if e.Magnitude == nil {
		// Some communications state the magnitude in narrative text instead.
		e.Magnitude = Find(ppMagFallbackRe, text, 1)
	}
	e.Description = Find(ppDescRe, text, 1)

	e.Date = NormalizeDate(Find(ppDateRe, text, 1))
	e.Time = Find(ppTimeRe, text, 1)

	e.GKX = FindFloat(ppGKXRe, text, 1)
	e.GKY = FindFloat(ppGKYRe, text, 1)
	e.SRIDGauss = "Gauss-Krüger Faja 2 Campo Inchauspe 69'"

	e.Lon = FindFloat(ppLonRe, text, 1)
	e.Lat = FindFloat(ppLatRe, text, 1)
	e.SRIDOrig = "WGS84-DD"

	if !domain.ValidateCoordinates(e.Lat, e.Lon) {
		logger.Warn("invalid coordinates", "operator", "Pluspetrol", "incident", idForLog(e.IncidentID))
	}

	e.SpilledM3 = FindFloat(ppSpilledRe, text, 1)
	e.RecoveredM3 = FindFloat(ppRecoveredRe, text, 1)
	e.WaterPct = FindFloat(ppWaterRe, text, 1)
	e.AffectedAreaM2 = FindFloat(ppAreaM2Re, text, 1)

	return e
}
