package storage

import (
	"context"
	"sync"
	"time"

	"wardwatch-be/models"
)

// MemoryIssueStore is an in-process IssueStore. It backs the server when
// MongoDB is unreachable at startup (degraded mode) and doubles as the test
// store. Safe for concurrent use.
type MemoryIssueStore struct {
	mu     sync.RWMutex
	issues map[string]models.Issue
	order  []string
}

func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{issues: make(map[string]models.Issue)}
}

func (s *MemoryIssueStore) Insert(ctx context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.issues[issue.ID]; !exists {
		s.order = append(s.order, issue.ID)
	}
	s.issues[issue.ID] = *issue
	return nil
}

func (s *MemoryIssueStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &issue, nil
}

func (s *MemoryIssueStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		applyField(&issue, k, v)
	}
	s.issues[id] = issue
	return nil
}

func (s *MemoryIssueStore) All(ctx context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Issue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.issues[id])
	}
	return out, nil
}

// applyField mirrors the document-store field names the Mongo implementation
// persists with $set.
func applyField(issue *models.Issue, field string, value interface{}) {
	switch field {
	case "ward_id":
		if v, ok := value.(string); ok {
			issue.WardID = v
		}
	case "ward_name":
		if v, ok := value.(string); ok {
			issue.WardName = v
		}
	case "ward_assigned":
		if v, ok := value.(bool); ok {
			issue.WardAssigned = v
		}
	case "notification_sent":
		if v, ok := value.(bool); ok {
			issue.NotificationSent = v
		}
	case "notification_time":
		if v, ok := value.(time.Time); ok {
			issue.NotificationTime = &v
		}
	case "status":
		if v, ok := value.(models.IssueStatus); ok {
			issue.Status = v
		}
	}
}

// MemoryWardStore is a fixed, ordered ward list.
type MemoryWardStore struct {
	wards []models.Ward
}

func NewMemoryWardStore(wards []models.Ward) *MemoryWardStore {
	return &MemoryWardStore{wards: wards}
}

func (s *MemoryWardStore) All(ctx context.Context) ([]models.Ward, error) {
	out := make([]models.Ward, len(s.wards))
	copy(out, s.wards)
	return out, nil
}
