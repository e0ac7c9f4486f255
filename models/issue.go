package models

import (
	"time"

	"wardwatch-be/geo"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole     IssueCategory = "pothole"
	Garbage     IssueCategory = "garbage"
	Streetlight IssueCategory = "streetlight"
	Unknown     IssueCategory = "unknown"
	None        IssueCategory = "none"
)

// ValidCategories is the closed category set accepted from reports.
var ValidCategories = map[string]bool{
	"pothole": true, "garbage": true, "streetlight": true,
	"unknown": true, "none": true,
}

// IssueStatus enum
type IssueStatus string

const (
	Open   IssueStatus = "open"
	Closed IssueStatus = "closed"
)

// Issue represents a civic issue reported by a citizen. Latitude and Longitude
// are pointers so records with a missing location can be told apart from (0,0).
type Issue struct {
	ID                 string        `bson:"_id" json:"id"`
	Latitude           *float64      `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude          *float64      `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Category           IssueCategory `bson:"category" json:"category"`
	CategoryKannada    string        `bson:"category_kannada" json:"category_kannada"`
	Description        string        `bson:"description" json:"description"`
	DescriptionKannada string        `bson:"description_kannada" json:"description_kannada"`
	UserID             string        `bson:"user_id" json:"user_id"`
	Image              string        `bson:"image,omitempty" json:"-"`
	Status             IssueStatus   `bson:"status" json:"status"`
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
	SimilarCount       int           `bson:"similar_count" json:"similar_count"`
	WardAssigned       bool          `bson:"ward_assigned" json:"ward_assigned"`
	WardID             string        `bson:"ward_id,omitempty" json:"ward_id,omitempty"`
	WardName           string        `bson:"ward_name,omitempty" json:"ward_name,omitempty"`
	NotificationSent   bool          `bson:"notification_sent" json:"notification_sent"`
	NotificationTime   *time.Time    `bson:"notification_time,omitempty" json:"notification_time,omitempty"`
}

// HasLocation reports whether the issue carries usable coordinates.
func (i *Issue) HasLocation() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// NearbyIssue is an issue annotated with its distance from a query point,
// as returned by the proximity scan.
type NearbyIssue struct {
	IssueID     string        `json:"issue_id"`
	Location    geo.Point     `json:"location"`
	Category    IssueCategory `json:"category"`
	Description string        `json:"description"`
	Status      IssueStatus   `json:"status"`
	Distance    float64       `json:"distance"`
}
