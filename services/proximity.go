package services

import (
	"context"

	"wardwatch-be/geo"
	"wardwatch-be/models"
	"wardwatch-be/storage"
)

// Radius defaults in meters. The creation-time similar count is deliberately
// tighter than the caller-facing radii.
const (
	DuplicateCheckRadiusMeters = 100
	NearbyQueryRadiusMeters    = 500
	SimilarCountRadiusMeters   = 50
)

// ProximityIndex answers radius queries over the full issue set with a linear
// scan. The backing store stays small enough that a spatial index is not
// worth it yet; a grid or geohash bucket index would be the drop-in
// replacement and must keep the inclusive-radius semantics.
type ProximityIndex struct {
	Issues storage.IssueStore
}

func NewProximityIndex(issues storage.IssueStore) *ProximityIndex {
	return &ProximityIndex{Issues: issues}
}

// FindNearby returns every issue within radiusMeters of the target, inclusive
// (distance == radius qualifies), annotated with its computed distance.
// Issues without coordinates are skipped. Result order is unspecified.
func (p *ProximityIndex) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]models.NearbyIssue, error) {
	issues, err := p.Issues.All(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []models.NearbyIssue
	for _, issue := range issues {
		if !issue.HasLocation() {
			continue
		}

		distance := geo.DistanceMeters(lat, lon, *issue.Latitude, *issue.Longitude)
		if distance <= radiusMeters {
			nearby = append(nearby, models.NearbyIssue{
				IssueID:     issue.ID,
				Location:    geo.Point{Lat: *issue.Latitude, Lng: *issue.Longitude},
				Category:    issue.Category,
				Description: issue.Description,
				Status:      issue.Status,
				Distance:    distance,
			})
		}
	}

	return nearby, nil
}

// CountSameCategory counts the matches whose category equals the queried one.
// Exact string match, no fuzziness.
func CountSameCategory(matches []models.NearbyIssue, category models.IssueCategory) int {
	count := 0
	for _, m := range matches {
		if m.Category == category {
			count++
		}
	}
	return count
}

// FilterSameCategory returns the subset of matches with the queried category,
// for client display alongside the duplicate flag.
func FilterSameCategory(matches []models.NearbyIssue, category models.IssueCategory) []models.NearbyIssue {
	filtered := make([]models.NearbyIssue, 0, len(matches))
	for _, m := range matches {
		if m.Category == category {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
