package services

import (
	"context"
	"testing"
	"time"

	"wardwatch-be/models"

	"github.com/stretchr/testify/assert"
)

func TestNotify_MissingCredentialsFailsClosed(t *testing.T) {
	issue := &models.Issue{ID: "issue-1", Category: models.Pothole, CreatedAt: time.Now()}
	ward := &models.Ward{ID: "ward-1", Name: "Central Ward", OfficerEmail: "officer@example.gov"}

	cases := []struct {
		name       string
		dispatcher *EmailDispatcher
	}{
		{"no sender", &EmailDispatcher{Password: "secret", Host: "smtp.example.com", Port: 587}},
		{"no password", &EmailDispatcher{Sender: "noreply@example.gov", Host: "smtp.example.com", Port: 587}},
		{"neither", &EmailDispatcher{Host: "smtp.example.com", Port: 587}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.dispatcher.Notify(context.Background(), ward.OfficerEmail, issue, ward))
		})
	}
}

func TestBuildBody_ContainsIssueDetails(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	issue := &models.Issue{
		ID:          "7f3a2b1c",
		Latitude:    ptr(12.9716),
		Longitude:   ptr(77.5946),
		Category:    models.Pothole,
		Description: "deep pothole near the bus stop",
		CreatedAt:   created,
	}
	ward := &models.Ward{ID: "ward-42", Name: "Jayanagar", OfficerEmail: "officer@example.gov"}

	body := (&EmailDispatcher{}).buildBody(issue, ward)

	assert.Contains(t, body, "Jayanagar")
	assert.Contains(t, body, "ward-42")
	assert.Contains(t, body, "pothole")
	assert.Contains(t, body, "deep pothole near the bus stop")
	assert.Contains(t, body, "12.9716")
	assert.Contains(t, body, "77.5946")
	assert.Contains(t, body, "2026-03-14 09:30:00")
	assert.Contains(t, body, "7f3a2b1c")
}

func TestBuildBody_DefaultsForMissingFields(t *testing.T) {
	issue := &models.Issue{ID: "bare", Category: models.Unknown, CreatedAt: time.Now()}
	ward := &models.Ward{ID: "w", Name: "W"}

	body := (&EmailDispatcher{}).buildBody(issue, ward)

	assert.Contains(t, body, "No description provided")
	assert.Contains(t, body, "N/A")
}
