// Command genmock generates mock data fixtures from sample incident-report
// documents, one per supported operator layout. It runs the actual extraction,
// validation, and projection code so the transformed output matches real
// pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
	"github.com/FedericoMusa/incident-data-etl/internal/extract"
	"github.com/FedericoMusa/incident-data-etl/internal/geo"
)

const ypfSample = `YPF S.A.
Comunicado Incidente N° 77
Área concesionada: Llancanelo
Área operativa: Llancanelo
Yacimiento: Llancanelo
Cuenca: Neuquina
Nombre de la instalación: Línea de conducción LL-14
Tipo de instalación: Ducto
Subtipo de incidente: Derrame de petróleo
Subtipo de evento causante: Corrosión
Magnitud del Incidente: Menor
Descripción: Pérdida en línea de conducción por corrosión externa.
Fecha de ocurrencia: 05/03/2026
Hora de ocurrencia: 09:30
Grados y decimales:
Latitud (S): 37.348933° Longitud (W): 69.053400°
Volumen m3 derramado: 1,2
Volumen m3 recuperado: 1,0
% Agua contenido: 80
Área m2: 25
Concentración de hidrocarburo (ppm): mayor a 50
Recursos afectados: Suelo
`

const pluspetrolSample = `PLUSPETROL S.A.
PLANILLA DE COMUNICACIÓN DE ACCIDENTES
COMUNICADO N°: 12/26
CÓDIGO: DC_DR_1234_26
CONCESION: Chato
YACIMIENTO: La Ventana
UBICACIÓN ESPECÍFICA: progresiva 2+300 de la línea general
BAJA
Derrame de agua de producción ■
DESCRIPCIÓN:
Rotura de línea de agua de producción por corrosión interna.
Vol. derramado: 0,2 m3 (95 % agua). Volumen recuperado: 0,2 m3. Sup. Afectada: 10 m2

FECHA: 04/03/2026
HORA: 07:45
X: 5858363 Y: 2552763 (Gauss-Krüger)
Lat.: -37.4246588 Long.: -68.4049142
`

const petsudSample = `PETRÓLEOS SUDAMERICANOS
INFORME PRELIMINAR MENDOZA
N° DE COMUNICADO 18
Área operativa / concesión Cañadón Amarillo
Yacimiento Cañadón Amarillo
Subtipo de incidente Derrame de petróleo
Magnitud del Incidente Menor
Descripción de la rotura y afectación
Pérdida de petróleo en línea de 4 pulgadas.
Fecha de ocurrencia 3/3/2026
Hora de ocurrencia 06:15
Coordenadas x (latitud - S)
36°46'22,5"
Coordenadas y (Longitud - O)
68°21'13,2"
Volumen m3 derramado 0,8
Volumen m3 recuperado 0,8
% AGUA DERRAMADA 70
Área m2 60
Concentración de hidrocarburo (ppm) menor a 50
Suelo x
Medidas adoptadas Se delimitó el área y se recuperó el fluido derramado.
`

const aconcaguaSample = `ACONCAGUA ENERGIA S.A.
INFORME DE INCIDENTE
Tipo de Incidente Derrame de petróleo
Detalle del incidente Pérdida por corrosión en cañería de conducción.
Tipo de instalación involucrada Cañería de conducción
Subtipo de instalación involucrada CH-31
Nombre del yacimiento Chañares Herrados
Fecha de Ocurrencia 02/03/2026
Hora de Ocurrencia 11:20
Latitud Decimal -33.3465
Longitud Decimal -68.9873
Volumen de líquido derramado 0,9
Volumen de fluido recuperado 0,9
% de Agua 45
Superficie aprox. afectada 30
PPM 30000
Volumen de gas 0
Reponsable de la Instalación Ing. J. Fernández
Medidas adoptadas Se reparó el tramo afectado y se saneó el suelo.
Dirección de e-mail contacto@aconcagua.example
`

const pcrSample = `PETROQUIMICA COMODORO RIVADAVIA S.A.
INFORME PRELIMINAR DE INCIDENTE AMBIENTAL
Comunicado MDZ-07-2026-EP
Concesión: El Sosneado
Zona: Batería 3
Ubicación específica: Línea de conducción a planta
Derrames de hidrocarburos ■
BAJO
 ■
Fecha: 01-03-2026
Hora Estimada: 05:30
Hora de Detección: 06:10
Lat. S= 34°57´51,5" S
Long. O= 69°34´30,0" O
Descripción del accidente
Se detectó una pérdida de petróleo sobre la traza de la línea, afectando unos 25 m2.
Superficie Afectada
Volumen derramado neto estimado: 0,6 m3 con un 35 % de agua. Volumen recuperado neto: 0,5 m3.
Responsable del comunicado: Sr. L. Díaz
Medidas adoptadas: Se excavó y retiró el suelo afectado.
El tiempo estimado de saneamiento es de 10 días.
`

var samples = []domain.Document{
	{File: "ypf_comunicado_77.pdf", Text: ypfSample},
	{File: "pluspetrol_comunicado_12_26.pdf", Text: pluspetrolSample},
	{File: "petsud_comunicado_18.pdf", Text: petsudSample},
	{File: "aconcagua_ch_31.pdf", Text: aconcaguaSample},
	{File: "pcr_mdz_07_2026.pdf", Text: pcrSample},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for JSON fixtures")
	flag.Parse()

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 6, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	logger := slog.Default()

	incidents := make([]domain.Incident, 0, len(samples))
	for _, doc := range samples {
		extractor := extract.Identify(doc.Text)
		if extractor == nil {
			return fmt.Errorf("%s: no extractor matched", doc.File)
		}

		e := extractor.Extract(doc.Text)
		if !domain.ValidateExtraction(e, logger) {
			return fmt.Errorf("%s: extraction failed validation", doc.File)
		}

		incident := domain.Normalize(e)
		incident.SourceFile = doc.File
		if utm, err := geo.ToUTM(e.Lat, e.Lon); err == nil {
			incident.UTM = &utm
		}
		if gk, err := geo.ToGaussKruger(e.Lat, e.Lon); err == nil {
			incident.GaussKruger = &gk
		}

		incidents = append(incidents, incident)
		log.Printf("%s: %s (%s)", doc.File, incident.ID, incident.Operator)
	}

	rawOut := filepath.Join(*outDir, "raw_reports.json")
	if err := writeJSON(rawOut, samples); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", rawOut)

	normOut := filepath.Join(*outDir, "normalized_incidents.json")
	if err := writeJSON(normOut, incidents); err != nil {
		return fmt.Errorf("writing normalized fixture: %w", err)
	}
	log.Printf("wrote normalized fixture: %s", normOut)

	printStats(incidents)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(incidents []domain.Incident) {
	magnitudes := map[string]int{}
	located := 0
	projected := 0

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(incidents))
	for i := range incidents {
		inc := &incidents[i]
		if inc.Magnitude != nil {
			magnitudes[*inc.Magnitude]++
		}
		if inc.Lat != nil && inc.Lon != nil {
			located++
		}
		if inc.UTM != nil && inc.GaussKruger != nil {
			projected++
		}
		fmt.Printf("  %s: operator=%q date=%v", inc.ID, inc.Operator, strOrDash(inc.Date))
		if inc.UTM != nil {
			fmt.Printf(" utm=%d/%.2f/%.2f", inc.UTM.Zone, inc.UTM.Easting, inc.UTM.Northing)
		}
		if inc.GaussKruger != nil {
			fmt.Printf(" gk=%.2f/%.2f", inc.GaussKruger.Easting, inc.GaussKruger.Northing)
		}
		fmt.Println()
	}
	fmt.Printf("With coordinates: %d\n", located)
	fmt.Printf("With both projections: %d\n", projected)
	fmt.Printf("By magnitude: %v\n", magnitudes)
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
