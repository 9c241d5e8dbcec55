package models

import "time"

// ContentStatus tracks moderation of a content item.
type ContentStatus string

const (
	ContentPending  ContentStatus = "pending"
	ContentApproved ContentStatus = "approved"
	ContentRejected ContentStatus = "rejected"
)

// ContentItem is a learning resource submitted for review.
type ContentItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	URL         string        `json:"url"`
	Description string        `json:"description"`
	Status      ContentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CreatedBy   string        `json:"created_by"`
	ReviewedBy  string        `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty"`
}

// AuditEntry records an administrative action.
type AuditEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	User        string    `json:"user"`
	Timestamp   time.Time `json:"timestamp"`
}
