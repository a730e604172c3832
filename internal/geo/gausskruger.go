package geo

import (
	"math"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// Gauss-Krüger Faja 2 (Campo Inchauspe), the official cadastral grid for the
// 69°W band. Origin at the south pole on the central meridian, unit scale,
// and a false easting of faja·10⁶ + 500 km.
const (
	faja2Number          = 2
	faja2CentralMeridian = -69.0
	faja2FalseEasting    = 2500000.0
)

// WGS84 → Campo Inchauspe datum shift, meters (the published Campo Inchauspe
// → WGS84 shift is −148, +136, +90).
const (
	inchauspeDX = 148.0
	inchauspeDY = -136.0
	inchauspeDZ = -90.0
)

// ToGaussKruger projects a WGS84 coordinate pair to Gauss-Krüger Faja 2 on
// the Campo Inchauspe datum. Ordinates are rounded to the centimeter; the
// Zone field carries the faja number.
func ToGaussKruger(lat, lon *float64) (domain.Projection, error) {
	la, lo, err := checkCoords(lat, lon)
	if err != nil {
		return domain.Projection{}, err
	}

	la, lo = toInchauspe(la, lo)
	e, n := transverseMercator(la, lo, -90, faja2CentralMeridian, intl924,
		1.0, faja2FalseEasting, 0)

	return domain.Projection{
		Easting:  roundCM(e),
		Northing: roundCM(n),
		Zone:     faja2Number,
	}, nil
}

// toInchauspe shifts a WGS84 geodetic coordinate onto the Campo Inchauspe
// datum with the abridged Molodensky transformation at ellipsoid height zero.
func toInchauspe(lat, lon float64) (float64, float64) {
	a := wgs84.a
	f := wgs84.f
	e2 := wgs84.e2()
	da := intl924.a - a
	df := intl924.f - f

	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180
	sinLat := math.Sin(latR)
	cosLat := math.Cos(latR)
	sinLon := math.Sin(lonR)
	cosLon := math.Cos(lonR)

	// radii of curvature in the prime vertical and the meridian
	rn := a / math.Sqrt(1-e2*sinLat*sinLat)
	rm := a * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)

	dLat := (-inchauspeDX*sinLat*cosLon - inchauspeDY*sinLat*sinLon +
		inchauspeDZ*cosLat + (a*df+f*da)*math.Sin(2*latR)) / rm
	dLon := (-inchauspeDX*sinLon + inchauspeDY*cosLon) / (rn * cosLat)

	return lat + dLat*180/math.Pi, lon + dLon*180/math.Pi
}
