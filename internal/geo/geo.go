// Package geo projects WGS84 coordinates onto the two cartesian grids used by
// the provincial registry: UTM (zones 19/20 cover the operating region) and
// Gauss-Krüger Faja 2 on the Campo Inchauspe datum, the official Argentine
// cadastral frame for the 69°W band.
//
// Both projections share a closed-form transverse Mercator series accurate to
// well under a millimeter over the region, so no external geodesy dependency
// is needed. Gauss-Krüger additionally shifts the datum from WGS84 to Campo
// Inchauspe with the abridged Molodensky transformation, which is accurate to
// a few meters — in line with the quality of the source coordinates.
package geo

import (
	"fmt"
	"math"
)

// ellipsoid holds the two defining parameters of a reference ellipsoid.
type ellipsoid struct {
	a float64 // semi-major axis, meters
	f float64 // flattening
}

var (
	wgs84   = ellipsoid{a: 6378137.0, f: 1 / 298.257223563}
	intl924 = ellipsoid{a: 6378388.0, f: 1 / 297.0} // International 1924 (Campo Inchauspe)
)

func (el ellipsoid) e2() float64 { return el.f * (2 - el.f) }

// checkCoords rejects inputs the projection math cannot handle. Nil means the
// extractor found no coordinate; the poles and the antimeridian are outside
// the series' domain.
func checkCoords(lat, lon *float64) (float64, float64, error) {
	if lat == nil || lon == nil {
		return 0, 0, fmt.Errorf("geo: missing coordinate")
	}
	if *lat <= -90 || *lat >= 90 {
		return 0, 0, fmt.Errorf("geo: latitude %v out of range", *lat)
	}
	if *lon < -180 || *lon > 180 {
		return 0, 0, fmt.Errorf("geo: longitude %v out of range", *lon)
	}
	return *lat, *lon, nil
}

// meridianArc is the distance along the meridian from the equator to lat
// (radians), from the standard series expansion.
func meridianArc(el ellipsoid, lat float64) float64 {
	e2 := el.e2()
	e4 := e2 * e2
	e6 := e4 * e2
	return el.a * ((1-e2/4-3*e4/64-5*e6/256)*lat -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*lat) +
		(15*e4/256+45*e6/1024)*math.Sin(4*lat) -
		(35*e6/3072)*math.Sin(6*lat))
}

// transverseMercator projects lat/lon (degrees) with the given natural origin,
// scale and false offsets. Redfearn series truncated at A⁶, which is exact to
// sub-millimeter within ±3° of the central meridian.
func transverseMercator(lat, lon, lat0, lon0 float64, el ellipsoid, k0, falseE, falseN float64) (easting, northing float64) {
	e2 := el.e2()
	ep2 := e2 / (1 - e2)

	latR := lat * math.Pi / 180
	dLon := (lon - lon0) * math.Pi / 180

	sinLat := math.Sin(latR)
	cosLat := math.Cos(latR)

	n := el.a / math.Sqrt(1-e2*sinLat*sinLat)
	t := math.Tan(latR) * math.Tan(latR)
	c := ep2 * cosLat * cosLat
	a := cosLat * dLon

	m := meridianArc(el, latR)
	m0 := meridianArc(el, lat0*math.Pi/180)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting = falseE + k0*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*ep2)*a5/120)
	northing = falseN + k0*(m-m0+
		n*math.Tan(latR)*(a2/2+
			(5-t+9*c+4*c*c)*a4/24+
			(61-58*t+t*t+600*c-330*ep2)*a6/720))
	return easting, northing
}

// roundCM rounds a projected ordinate to the centimeter. More precision than
// that is noise given the source data.
func roundCM(v float64) float64 {
	return math.Round(v*100) / 100
}
