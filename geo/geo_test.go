package geo_test

import (
	"testing"

	"wardwatch-be/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"origin", 0, 0},
		{"bengaluru", 12.9716, 77.5946},
		{"southern hemisphere", -33.8688, 151.2093},
		{"near pole", 89.9, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 0.0, geo.DistanceMeters(tc.lat, tc.lon, tc.lat, tc.lon))
		})
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"city block", 12.9716, 77.5946, 12.9720, 77.5950},
		{"across equator", -1.5, 36.8, 1.5, 36.8},
		{"antimeridian", 10, 179.9, 10, -179.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			forward := geo.DistanceMeters(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			backward := geo.DistanceMeters(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			assert.InDelta(t, forward, backward, 1e-9)
		})
	}
}

func TestDistanceMeters_KnownFixture(t *testing.T) {
	// One-hundredth-degree longitude step at Bengaluru's latitude is a bit
	// under 1.09 km.
	dist := geo.DistanceMeters(12.9716, 77.5946, 12.9716, 77.6046)
	assert.InDelta(t, 1085, dist, 10)
	assert.Greater(t, dist, 0.0)
}

var squarePolygon = []geo.Point{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 10},
	{Lat: 10, Lng: 10},
	{Lat: 10, Lng: 0},
}

func TestPointInPolygon_Square(t *testing.T) {
	cases := []struct {
		name   string
		point  geo.Point
		inside bool
	}{
		{"center", geo.Point{Lat: 5, Lng: 5}, true},
		{"outside", geo.Point{Lat: 15, Lng: 15}, false},
		{"just outside edge", geo.Point{Lat: 5, Lng: 10.001}, false},
		{"near corner inside", geo.Point{Lat: 9.999, Lng: 9.999}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inside, err := geo.PointInPolygon(tc.point, squarePolygon)
			require.NoError(t, err)
			assert.Equal(t, tc.inside, inside)
		})
	}
}

// Boundary convention: points on an edge or vertex count as inside.
func TestPointInPolygon_BoundaryIsInside(t *testing.T) {
	cases := []struct {
		name  string
		point geo.Point
	}{
		{"edge midpoint", geo.Point{Lat: 0, Lng: 5}},
		{"vertex", geo.Point{Lat: 0, Lng: 0}},
		{"closing edge", geo.Point{Lat: 5, Lng: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inside, err := geo.PointInPolygon(tc.point, squarePolygon)
			require.NoError(t, err)
			assert.True(t, inside)
		})
	}
}

func TestPointInPolygon_NonConvex(t *testing.T) {
	// L-shaped ward: the notch at the top right is outside.
	lShape := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 5, Lng: 10},
		{Lat: 5, Lng: 5},
		{Lat: 10, Lng: 5},
		{Lat: 10, Lng: 0},
	}

	inside, err := geo.PointInPolygon(geo.Point{Lat: 2, Lng: 8}, lShape)
	require.NoError(t, err)
	assert.True(t, inside)

	inside, err = geo.PointInPolygon(geo.Point{Lat: 8, Lng: 8}, lShape)
	require.NoError(t, err)
	assert.False(t, inside)
}

func TestPointInPolygon_DegenerateGeometry(t *testing.T) {
	cases := []struct {
		name    string
		polygon []geo.Point
	}{
		{"empty", nil},
		{"single vertex", []geo.Point{{Lat: 1, Lng: 1}}},
		{"two vertices", []geo.Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 10}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geo.PointInPolygon(geo.Point{Lat: 1, Lng: 1}, tc.polygon)
			assert.ErrorIs(t, err, geo.ErrInvalidGeometry)
		})
	}
}
