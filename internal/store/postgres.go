package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/proctorai/backend/internal/models"
)

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store on an established pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Available always reports true for a live pool.
func (s *Postgres) Available() bool { return true }

// CreateInterview inserts a new session row and returns it with its
// assigned identifier.
func (s *Postgres) CreateInterview(ctx context.Context, p CreateInterviewParams) (*models.Interview, error) {
	const q = `INSERT INTO interviews
		(candidate_name, candidate_email, candidate_phone, candidate_location, interviewer_id, start_time, status, integrity_score, total_events, focus_lost_count, suspicious_events_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 100, 0, 0, 0)
		RETURNING id, candidate_name, candidate_email, candidate_phone, candidate_location, interviewer_id, start_time, end_time, duration, status, integrity_score, total_events, focus_lost_count, suspicious_events_count, created_at, updated_at`
	var iv models.Interview
	err := s.pool.QueryRow(ctx, q,
		p.CandidateName, p.CandidateEmail, p.CandidatePhone, p.CandidateLocation,
		p.InterviewerID, p.StartTime, models.StatusActive).
		Scan(&iv.ID, &iv.CandidateName, &iv.CandidateEmail, &iv.CandidatePhone, &iv.CandidateLocation,
			&iv.InterviewerID, &iv.StartTime, &iv.EndTime, &iv.Duration, &iv.Status, &iv.IntegrityScore,
			&iv.TotalEvents, &iv.FocusLostCount, &iv.SuspiciousEventsCount, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// FindInterview returns the session with the given id, or ErrNotFound.
func (s *Postgres) FindInterview(ctx context.Context, id int64) (*models.Interview, error) {
	const q = `SELECT id, candidate_name, candidate_email, candidate_phone, candidate_location, interviewer_id, start_time, end_time, duration, status, integrity_score, total_events, focus_lost_count, suspicious_events_count, created_at, updated_at
		FROM interviews WHERE id = $1`
	var iv models.Interview
	err := s.pool.QueryRow(ctx, q, id).
		Scan(&iv.ID, &iv.CandidateName, &iv.CandidateEmail, &iv.CandidatePhone, &iv.CandidateLocation,
			&iv.InterviewerID, &iv.StartTime, &iv.EndTime, &iv.Duration, &iv.Status, &iv.IntegrityScore,
			&iv.TotalEvents, &iv.FocusLostCount, &iv.SuspiciousEventsCount, &iv.CreatedAt, &iv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// UpdateInterview writes the stop-time fields. Updating an already completed
// session succeeds and overwrites the previous values.
func (s *Postgres) UpdateInterview(ctx context.Context, id int64, p UpdateInterviewParams) (*models.Interview, error) {
	const q = `UPDATE interviews SET
		end_time = $2, duration = $3, integrity_score = $4, total_events = $5,
		focus_lost_count = $6, suspicious_events_count = $7, status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING id, candidate_name, candidate_email, candidate_phone, candidate_location, interviewer_id, start_time, end_time, duration, status, integrity_score, total_events, focus_lost_count, suspicious_events_count, created_at, updated_at`
	var iv models.Interview
	err := s.pool.QueryRow(ctx, q, id,
		p.EndTime, p.Duration, p.IntegrityScore, p.TotalEvents,
		p.FocusLostCount, p.SuspiciousEventsCount, p.Status).
		Scan(&iv.ID, &iv.CandidateName, &iv.CandidateEmail, &iv.CandidatePhone, &iv.CandidateLocation,
			&iv.InterviewerID, &iv.StartTime, &iv.EndTime, &iv.Duration, &iv.Status, &iv.IntegrityScore,
			&iv.TotalEvents, &iv.FocusLostCount, &iv.SuspiciousEventsCount, &iv.CreatedAt, &iv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// CreateEvent inserts one event log row.
func (s *Postgres) CreateEvent(ctx context.Context, p CreateEventParams) (*models.EventLog, error) {
	const q = `INSERT INTO event_logs
		(interview_id, event_type, severity, description, "timestamp", confidence, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, interview_id, event_type, severity, description, "timestamp", confidence, metadata, created_at`
	var ev models.EventLog
	err := s.pool.QueryRow(ctx, q,
		p.InterviewID, p.EventType, p.Severity, p.Description, p.Timestamp, p.Confidence, p.Metadata).
		Scan(&ev.ID, &ev.InterviewID, &ev.EventType, &ev.Severity, &ev.Description,
			&ev.Timestamp, &ev.Confidence, &ev.Metadata, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListRecentEvents returns up to limit events for the interview, newest first.
func (s *Postgres) ListRecentEvents(ctx context.Context, interviewID int64, limit int) ([]models.EventLog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, interview_id, event_type, severity, description, "timestamp", confidence, metadata, created_at
		 FROM event_logs WHERE interview_id = $1 ORDER BY "timestamp" DESC LIMIT $2`,
		interviewID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventLog
	for rows.Next() {
		var ev models.EventLog
		if err := rows.Scan(&ev.ID, &ev.InterviewID, &ev.EventType, &ev.Severity, &ev.Description,
			&ev.Timestamp, &ev.Confidence, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}
