package services

import (
	"context"
	"log"
	"time"

	"wardwatch-be/models"
	"wardwatch-be/storage"

	"github.com/google/uuid"
)

// Dispatcher sends the outbound notification for a ward assignment. A false
// return means "not sent", a normal workflow outcome.
type Dispatcher interface {
	Notify(ctx context.Context, officerEmail string, issue *models.Issue, ward *models.Ward) bool
}

// ReportInput is a validated-on-entry citizen report.
type ReportInput struct {
	Latitude           *float64
	Longitude          *float64
	Category           string
	CategoryKannada    string
	Description        string
	DescriptionKannada string
	Image              string
	UserID             string
}

// AssignResult reports the outcome of a ward-assignment attempt.
type AssignResult struct {
	Assigned bool `json:"assigned"`
	Notified bool `json:"notified"`
}

// Lifecycle drives an issue from creation through ward assignment and
// notification. Ward and notification fields are write-once per transition:
// once an issue is assigned, a retried AssignWard short-circuits and never
// dispatches a second notification.
type Lifecycle struct {
	Issues     storage.IssueStore
	Proximity  *ProximityIndex
	Resolver   *WardResolver
	Dispatcher Dispatcher
}

func NewLifecycle(issues storage.IssueStore, proximity *ProximityIndex, resolver *WardResolver, dispatcher Dispatcher) *Lifecycle {
	return &Lifecycle{
		Issues:     issues,
		Proximity:  proximity,
		Resolver:   resolver,
		Dispatcher: dispatcher,
	}
}

// Create validates the report, computes the similar-issue count at the fixed
// 50 m radius, and persists the issue as open and unassigned. A storage
// failure degrades rather than fails: the locally generated id is still
// returned so the caller always gets a usable issue id.
func (l *Lifecycle) Create(ctx context.Context, report ReportInput) (*models.Issue, error) {
	if report.Latitude == nil {
		return nil, &ValidationError{Field: "latitude"}
	}
	if report.Longitude == nil {
		return nil, &ValidationError{Field: "longitude"}
	}
	if report.Category == "" {
		return nil, &ValidationError{Field: "category"}
	}
	if !models.ValidCategories[report.Category] {
		return nil, &ValidationError{Field: "category"}
	}

	similarCount := 0
	matches, err := l.Proximity.FindNearby(ctx, *report.Latitude, *report.Longitude, SimilarCountRadiusMeters)
	if err != nil {
		log.Printf("similar-count scan failed, defaulting to 0: %v", err)
	} else {
		similarCount = CountSameCategory(matches, models.IssueCategory(report.Category))
	}

	issue := &models.Issue{
		ID:                 uuid.NewString(),
		Latitude:           report.Latitude,
		Longitude:          report.Longitude,
		Category:           models.IssueCategory(report.Category),
		CategoryKannada:    report.CategoryKannada,
		Description:        report.Description,
		DescriptionKannada: report.DescriptionKannada,
		UserID:             report.UserID,
		Image:              report.Image,
		Status:             models.Open,
		CreatedAt:          time.Now(),
		SimilarCount:       similarCount,
		WardAssigned:       false,
		NotificationSent:   false,
	}

	if err := l.Issues.Insert(ctx, issue); err != nil {
		log.Printf("failed to store issue %s, continuing with local id: %v", issue.ID, err)
	}

	return issue, nil
}

// AssignWard resolves the ward containing the issue's location, persists the
// assignment, and dispatches the officer notification at most once. Calling
// it again for an already-assigned issue returns the recorded outcome without
// touching the dispatcher. Resolver or dispatcher failures leave the stored
// issue intact and are recorded as unassigned/unsent.
func (l *Lifecycle) AssignWard(ctx context.Context, issueID string) (AssignResult, error) {
	issue, err := l.Issues.Get(ctx, issueID)
	if err != nil {
		return AssignResult{}, err
	}

	// Idempotency guard: an assigned issue has already had its one dispatch.
	if issue.WardAssigned {
		return AssignResult{Assigned: true, Notified: issue.NotificationSent}, nil
	}

	if !issue.HasLocation() {
		log.Printf("issue %s has no location, cannot assign ward", issueID)
		l.markUnassigned(ctx, issueID)
		return AssignResult{}, nil
	}

	ward, err := l.Resolver.Resolve(ctx, *issue.Latitude, *issue.Longitude)
	if err != nil {
		log.Printf("ward resolution failed for issue %s: %v", issueID, err)
		l.markUnassigned(ctx, issueID)
		return AssignResult{}, nil
	}
	if ward == nil {
		log.Printf("no ward found for location: %v, %v", *issue.Latitude, *issue.Longitude)
		l.markUnassigned(ctx, issueID)
		return AssignResult{}, nil
	}

	if err := l.Issues.Update(ctx, issueID, map[string]interface{}{
		"ward_id":       ward.ID,
		"ward_name":     ward.Name,
		"ward_assigned": true,
	}); err != nil {
		log.Printf("failed to persist ward assignment for issue %s: %v", issueID, err)
		return AssignResult{}, nil
	}

	sent := l.Dispatcher.Notify(ctx, ward.OfficerEmail, issue, ward)

	if err := l.Issues.Update(ctx, issueID, map[string]interface{}{
		"notification_sent": sent,
		"notification_time": time.Now(),
	}); err != nil {
		log.Printf("failed to persist notification status for issue %s: %v", issueID, err)
	}

	log.Printf("issue %s assigned to ward %s, notification sent: %v", issueID, ward.Name, sent)
	return AssignResult{Assigned: true, Notified: sent}, nil
}

func (l *Lifecycle) markUnassigned(ctx context.Context, issueID string) {
	if err := l.Issues.Update(ctx, issueID, map[string]interface{}{
		"ward_assigned":     false,
		"notification_sent": false,
	}); err != nil {
		log.Printf("failed to mark issue %s unassigned: %v", issueID, err)
	}
}
