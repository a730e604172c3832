package extract

import (
	"regexp"
	"strings"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// PetSud extracts the "Informe Preliminar Mendoza" table format of Petróleos
// Sudamericanos. The tricky part is the coordinates: compact DMS values whose
// symbols vary between reports (acute accent or doubled apostrophes) and
// that sometimes wrap onto the next line of the table cell, so the raw value
// must be accumulated line by line until a full degrees+minutes+seconds
// reading is assembled.
type PetSud struct{}

var (
	psNumIncRe   = regexp.MustCompile(`(?i)N[°º]\s*DE\s*COMUNICADO\s+(\d+)`)
	psAreaRe     = regexp.MustCompile(`(?i)Área operativa\s*/\s*concesión\s+(.+)`)
	psOilFieldRe = regexp.MustCompile(`(?i)Yacimiento\s+(.+)`)
	psBasinRe    = regexp.MustCompile(`(?i)Cuenca\s+(.+)`)
	psFacilityRe = regexp.MustCompile(`(?i)Instalación asociada\s+(.+)`)
	psFacTypeRe  = regexp.MustCompile(`(?i)Tipo de instalación\s+(.+)`)

	psSubtypeRe   = regexp.MustCompile(`(?i)Subtipo de incidente\s+(.+)`)
	psCauseRe     = regexp.MustCompile(`(?i)Tipo de evento causante\s+(.+)`)
	psMagnitudeRe = regexp.MustCompile(`(?i)Magnitud del Incidente\s+(.+)`)
	psDescRe      = regexp.MustCompile(`(?i)Descripción de la rotura y afectación\s*\n(.+)`)
	psMeasuresRe  = regexp.MustCompile(`(?is)Medidas adoptadas\s+(.+?)(?:\n\n|\z)`)

	psDateRe = regexp.MustCompile(`(?i)Fecha de ocurrencia\s+(\d{1,2}/\d{1,2}/\d{4})`)
	psTimeRe = regexp.MustCompile(`(?i)Hora de ocurrencia\s+(\d{1,2}:\d{2})`)

	psLatLabelRe = regexp.MustCompile(`(?i)Coordenadas x\s*\(latitud\s*-\s*S\)`)
	psLonLabelRe = regexp.MustCompile(`(?i)Coordenadas y\s*\(Longitud\s*-\s*O\)`)

	psSpilledRe   = regexp.MustCompile(`(?i)Volumen\s+m3?\s+derramado\s+([\d.,]+)`)
	psRecoveredRe = regexp.MustCompile(`(?i)Volumen\s+m3?\s+recuperado\s+([\d.,]+)`)
	psWaterRe     = regexp.MustCompile(`(?i)%\s*AGUA\s+DERRAMAD[OA]\s+([\d.,]+)`)
	psAreaM2Re    = regexp.MustCompile(`(?i)Área\s+m2\s+([\d.,]+)`)
	psPPMRe       = regexp.MustCompile(`(?i)Concentración de hidrocarburo\s*\(ppm\)\s+(.+)`)

	// A line matching this is the start of another table field; it ends the
	// coordinate accumulation unless it also carries a degree symbol.
	psStopFieldRe = regexp.MustCompile(`(?i)Coordenadas|Concentraci|Volumen|rea|Medidas|Suelo|Fecha|Hora|Operador|Tipo|Subtipo|Magnitud|Descripci`)
	psDegreeRe    = regexp.MustCompile(`\d+\s*[°º]`)
	psDMSCharsRe  = regexp.MustCompile(`[^\d°º'".,′″´\s]`)
)

// psResources is the affected-resources checklist; a row is checked when an
// "x" mark follows its label.
var psResources = []string{"Suelo", "Cauce aluvional", "Agua superficial", "Vegetacion", "Otros"}

// psCoordWindow bounds how far past a coordinate label the accumulator looks.
const psCoordWindow = 150

func (PetSud) Operator() string { return "Petróleos Sudamericanos" }

func (p PetSud) Extract(text string) domain.Extraction {
	e := domain.Extraction{Operator: p.Operator()}

	e.IncidentID = prefixID("PETSUD-", Find(psNumIncRe, text, 1))

	e.ConcessionArea = Find(psAreaRe, text, 1)
	e.OilField = Find(psOilFieldRe, text, 1)
	e.Basin = Find(psBasinRe, text, 1)

	e.Facility = Find(psFacilityRe, text, 1)
	e.FacilityType = Find(psFacTypeRe, text, 1)

	e.IncidentSubtype = Find(psSubtypeRe, text, 1)
	e.Cause = Find(psCauseRe, text, 1)
	e.Magnitude = Find(psMagnitudeRe, text, 1)
	e.Description = Find(psDescRe, text, 1)
	e.Measures = Find(psMeasuresRe, text, 1)

	e.Date = NormalizeDate(Find(psDateRe, text, 1))
	e.Time = Find(psTimeRe, text, 1)

	e.Lat = p.parseCoord(psLatLabelRe, text, "latitud")
	e.Lon = p.parseCoord(psLonLabelRe, text, "longitud")
	e.SRIDOrig = "WGS84-DMS→DD"

	if !domain.ValidateCoordinates(e.Lat, e.Lon) {
		logger.Warn("invalid coordinates, check the source report for typos",
			"operator", "PetSud", "incident", idForLog(e.IncidentID))
	}

	e.SpilledM3 = FindFloat(psSpilledRe, text, 1)
	e.RecoveredM3 = FindFloat(psRecoveredRe, text, 1)
	e.WaterPct = FindFloat(psWaterRe, text, 1)
	e.AffectedAreaM2 = FindFloat(psAreaM2Re, text, 1)
	e.HydrocarbonPPM = Find(psPPMRe, text, 1)

	e.Resources = checkedResources(text)

	return e
}

// parseCoord locates a coordinate label, accumulates the raw DMS value that
// follows it and converts it to signed decimal degrees. South and west are
// always negative in this operating region, so the sign is forced.
func (PetSud) parseCoord(label *regexp.Regexp, text, name string) *float64 {
	raw := collectDMSAfter(label, text)
	if raw == nil {
		logger.Warn("coordinate not found", "operator", "PetSud", "coordinate", name)
		return nil
	}
	return negate(ParseDMSString(*raw))
}

// collectDMSAfter gathers the raw coordinate text following a table label.
//
// It walks the lines inside a short window after the label, accumulating until
// the combined text holds a complete degrees+minutes+seconds value, and stops
// early when a line starts another table field (unless that line itself
// carries a degree symbol, which means the value and the next label share a
// line in the PDF text flow). This covers the observed variants:
//
//	one line:  33°34'39,63"
//	one line:  33° 03' 54''   (spaces, doubled apostrophes)
//	one line:  33° 35´15,04'' (acute accent)
//	two lines: 33°  /  34'39,63"
func collectDMSAfter(label *regexp.Regexp, text string) *string {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	end := loc[1] + psCoordWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[loc[1]:end]

	var collected []string
	for _, line := range strings.Split(window, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if psStopFieldRe.MatchString(line) && !psDegreeRe.MatchString(line) {
			break
		}
		collected = append(collected, line)
		if IsCompleteDMS(strings.Join(collected, " ")) {
			break
		}
	}

	combined := strings.Join(collected, " ")
	clean := strings.TrimSpace(psDMSCharsRe.ReplaceAllString(combined, ""))
	if !psDegreeRe.MatchString(clean) {
		return nil
	}
	return &clean
}

// checkedResources returns the comma-joined labels of the checked rows in the
// affected-resources table, or nil when none is checked.
func checkedResources(text string) *string {
	var checked []string
	for _, resource := range psResources {
		re := regexp.MustCompile(`(?i)` + resource + `\s+x`)
		if re.MatchString(text) {
			checked = append(checked, resource)
		}
	}
	if len(checked) == 0 {
		return nil
	}
	joined := strings.Join(checked, ", ")
	return &joined
}
