package models

import "time"

// Event severity levels, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// EventLog is one observed proctoring incident. Rows are immutable once
// written. InterviewID is not foreign-keyed: in degraded mode the referenced
// session may never have been persisted.
type EventLog struct {
	ID          int64          `json:"id"`
	InterviewID int64          `json:"interviewId"`
	EventType   string         `json:"eventType"`
	Severity    string         `json:"severity"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Confidence  float64        `json:"confidence"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
}
