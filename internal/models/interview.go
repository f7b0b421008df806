package models

import "time"

// Interview status values. A session transitions active -> completed exactly
// once, via the stop endpoint.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Interview is one proctored interview session.
type Interview struct {
	ID                    int64      `json:"id"`
	CandidateName         string     `json:"candidateName"`
	CandidateEmail        string     `json:"candidateEmail"`
	CandidatePhone        string     `json:"candidatePhone,omitempty"`
	CandidateLocation     string     `json:"candidateLocation,omitempty"`
	InterviewerID         int64      `json:"interviewerId"`
	StartTime             time.Time  `json:"startTime"`
	EndTime               *time.Time `json:"endTime,omitempty"`
	Duration              int64      `json:"duration"` // seconds
	Status                string     `json:"status"`
	IntegrityScore        int        `json:"integrityScore"`
	TotalEvents           int        `json:"totalEvents"`
	FocusLostCount        int        `json:"focusLostCount"`
	SuspiciousEventsCount int        `json:"suspiciousEventsCount"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}
