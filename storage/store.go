package storage

import (
	"context"
	"errors"

	"wardwatch-be/models"
)

// ErrNotFound is returned when an issue id has no backing document.
var ErrNotFound = errors.New("issue not found")

// IssueStore is the document-store contract for issue records: create/get/update
// keyed by issue id, plus a stream-all read used by the proximity scan.
type IssueStore interface {
	Insert(ctx context.Context, issue *models.Issue) error
	Get(ctx context.Context, id string) (*models.Issue, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	All(ctx context.Context) ([]models.Issue, error)
}

// WardStore provides read-only access to ward reference data. All must return
// wards in a stable order; resolution tie-breaks depend on it.
type WardStore interface {
	All(ctx context.Context) ([]models.Ward, error)
}
