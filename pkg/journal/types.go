package journal

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Record is one journaled containment decision.
type Record struct {
	ID            string        `json:"id"`
	Time          time.Time     `json:"time"`
	Document      string        `json:"document,omitempty"`
	Operation     string        `json:"operation"`
	ContainerID   string        `json:"container_id"`
	ContainerType string        `json:"container_type,omitempty"`
	Slot          string        `json:"slot"`
	ElementID     string        `json:"element_id,omitempty"`
	ElementType   string        `json:"element_type"`
	ElementName   string        `json:"element_name,omitempty"`
	Allowed       bool          `json:"allowed"`
	Codes         []string      `json:"codes,omitempty"`
	Message       string        `json:"message,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// NewRecord returns a record with a fresh ID stamped with the current time.
func NewRecord(operation string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Time:      time.Now().UTC(),
		Operation: operation,
	}
}

// Query filters journal records. Zero-valued fields do not filter.
type Query struct {
	StartTime *time.Time `json:"start_time,omitempty"` // inclusive
	EndTime   *time.Time `json:"end_time,omitempty"`   // inclusive

	Operation   string `json:"operation,omitempty"`
	Document    string `json:"document,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
	ElementType string `json:"element_type,omitempty"`
	Allowed     *bool  `json:"allowed,omitempty"`
	Code        string `json:"code,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// SortOrder is "asc" or "desc" by time. Default: "desc"
	SortOrder string `json:"sort_order,omitempty"`
}

// Ascending reports whether results are ordered oldest first.
func (q *Query) Ascending() bool {
	return q != nil && q.SortOrder == "asc"
}

// Matches reports whether r satisfies every filter of q.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.StartTime != nil && r.Time.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && r.Time.After(*q.EndTime) {
		return false
	}
	if q.Operation != "" && r.Operation != q.Operation {
		return false
	}
	if q.Document != "" && r.Document != q.Document {
		return false
	}
	if q.ContainerID != "" && r.ContainerID != q.ContainerID {
		return false
	}
	if q.ElementType != "" && r.ElementType != q.ElementType {
		return false
	}
	if q.Allowed != nil && r.Allowed != *q.Allowed {
		return false
	}
	if q.Code != "" && !slices.Contains(r.Codes, q.Code) {
		return false
	}
	return true
}

// Storage persists journal records. Implementations are safe for
// concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the query, or an empty slice.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query and returns how many
	// were removed. Limit, Offset and SortOrder are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Backend names the implementation for logs and metrics.
	Backend() string

	// Close releases resources held by the backend.
	Close() error
}
