package services

import (
	"context"
	"errors"
	"log"

	"wardwatch-be/geo"
	"wardwatch-be/models"
	"wardwatch-be/storage"
)

// WardResolver maps a coordinate to the administrative ward containing it.
type WardResolver struct {
	Wards storage.WardStore
}

func NewWardResolver(wards storage.WardStore) *WardResolver {
	return &WardResolver{Wards: wards}
}

// Resolve returns the first ward, in store order, whose boundary polygon
// contains the point, or nil if none does. Callers treat nil as "unassigned",
// not an error. Overlapping ward boundaries are a data defect; first match in
// iteration order wins, which keeps resolution deterministic. Wards with
// degenerate polygons are logged and skipped.
func (r *WardResolver) Resolve(ctx context.Context, lat, lon float64) (*models.Ward, error) {
	wards, err := r.Wards.All(ctx)
	if err != nil {
		return nil, err
	}

	point := geo.Point{Lat: lat, Lng: lon}
	for i := range wards {
		ward := &wards[i]
		inside, err := geo.PointInPolygon(point, ward.Boundaries)
		if err != nil {
			if errors.Is(err, geo.ErrInvalidGeometry) {
				log.Printf("ward %s has a degenerate boundary polygon, skipping: %v", ward.ID, err)
				continue
			}
			return nil, err
		}
		if inside {
			return ward, nil
		}
	}

	return nil, nil
}
