package geo

import (
	"errors"
	"math"
)

// EarthRadiusMeters is the mean earth radius used for haversine distances.
const EarthRadiusMeters = 6371000

// ErrInvalidGeometry is returned when a polygon has fewer than 3 vertices.
var ErrInvalidGeometry = errors.New("polygon must have at least 3 vertices")

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. Inputs are decimal degrees; out-of-range values
// are not rejected, callers validate.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// onSegment epsilon for boundary detection, in degrees.
const boundaryEpsilon = 1e-12

// PointInPolygon reports whether p lies inside the simple polygon given as an
// ordered vertex sequence (implicitly closed). Points on the boundary count as
// inside. Polygons with fewer than 3 vertices return ErrInvalidGeometry.
func PointInPolygon(p Point, polygon []Point) (bool, error) {
	if len(polygon) < 3 {
		return false, ErrInvalidGeometry
	}

	// Boundary convention: on an edge means inside.
	for i := 0; i < len(polygon); i++ {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]
		if onSegment(p, a, b) {
			return true, nil
		}
	}

	// Ray casting: count crossings of a ray extending in +lng direction.
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		vi, vj := polygon[i], polygon[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			cross := (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if p.Lng < cross {
				inside = !inside
			}
		}
	}

	return inside, nil
}

// onSegment reports whether p lies on the segment a-b.
func onSegment(p, a, b Point) bool {
	cross := (b.Lat-a.Lat)*(p.Lng-a.Lng) - (b.Lng-a.Lng)*(p.Lat-a.Lat)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	if p.Lat < math.Min(a.Lat, b.Lat)-boundaryEpsilon || p.Lat > math.Max(a.Lat, b.Lat)+boundaryEpsilon {
		return false
	}
	if p.Lng < math.Min(a.Lng, b.Lng)-boundaryEpsilon || p.Lng > math.Max(a.Lng, b.Lng)+boundaryEpsilon {
		return false
	}
	return true
}
