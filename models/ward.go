package models

import "wardwatch-be/geo"

// Ward is an administrative sub-region with a responsible officer. Boundaries
// is an ordered polygon, implicitly closed (last vertex connects to first).
// Ward documents are read-only reference data.
type Ward struct {
	ID           string      `bson:"_id" json:"ward_id"`
	Name         string      `bson:"name" json:"name"`
	Boundaries   []geo.Point `bson:"boundaries" json:"boundaries"`
	OfficerEmail string      `bson:"officer_email" json:"officer_email"`
}
