// Package store is the persistence adapter for interviews and event logs.
// Exactly one implementation is selected at startup: Postgres when the
// database is reachable, Disabled otherwise. Handlers check Available()
// before any store call and substitute synthetic responses when it is false.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/proctorai/backend/internal/models"
)

var (
	// ErrNotFound is returned when a looked-up entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned by the Disabled store for any operation.
	ErrUnavailable = errors.New("store unavailable")
)

// CreateInterviewParams holds fields for a new interview session.
type CreateInterviewParams struct {
	CandidateName     string
	CandidateEmail    string
	CandidatePhone    string
	CandidateLocation string
	InterviewerID     int64
	StartTime         time.Time
}

// UpdateInterviewParams holds fields written when a session is stopped.
type UpdateInterviewParams struct {
	EndTime               time.Time
	Duration              int64
	IntegrityScore        int
	TotalEvents           int
	FocusLostCount        int
	SuspiciousEventsCount int
	Status                string
}

// CreateEventParams holds fields for a new event log entry.
type CreateEventParams struct {
	InterviewID int64
	EventType   string
	Severity    string
	Description string
	Timestamp   time.Time
	Confidence  float64
	Metadata    map[string]any
}

// Store persists interviews and event logs.
type Store interface {
	// Available reports whether a backing store exists. All other methods
	// fail with ErrUnavailable when it returns false.
	Available() bool

	CreateInterview(ctx context.Context, p CreateInterviewParams) (*models.Interview, error)
	FindInterview(ctx context.Context, id int64) (*models.Interview, error)
	UpdateInterview(ctx context.Context, id int64, p UpdateInterviewParams) (*models.Interview, error)

	CreateEvent(ctx context.Context, p CreateEventParams) (*models.EventLog, error)
	// ListRecentEvents returns up to limit events for the interview,
	// newest first.
	ListRecentEvents(ctx context.Context, interviewID int64, limit int) ([]models.EventLog, error)
}
