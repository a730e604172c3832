package geo

import (
	"math"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// UTM grid parameters. The region is entirely in the southern hemisphere, so
// the southern false northing always applies.
const (
	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0
)

// DetectZone returns the UTM zone for a longitude in degrees. The operating
// region sits in zone 19 (72°W to 66°W); zone 20 starts east of 66°W.
func DetectZone(lon float64) int {
	return int(math.Floor((lon+180)/6)) + 1
}

// ToUTM projects a WGS84 coordinate pair to UTM, auto-detecting the zone.
// Ordinates are rounded to the centimeter.
func ToUTM(lat, lon *float64) (domain.Projection, error) {
	la, lo, err := checkCoords(lat, lon)
	if err != nil {
		return domain.Projection{}, err
	}

	zone := DetectZone(lo)
	centralMeridian := float64((zone-1)*6 - 180 + 3)

	e, n := transverseMercator(la, lo, 0, centralMeridian, wgs84,
		utmScale, utmFalseEasting, utmFalseNorthing)

	return domain.Projection{
		Easting:  roundCM(e),
		Northing: roundCM(n),
		Zone:     zone,
	}, nil
}
