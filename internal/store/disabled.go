package store

import (
	"context"

	"github.com/proctorai/backend/internal/models"
)

// Disabled is the null-object Store used when no database is reachable.
// Handlers check Available() and never call the other methods; they fail
// with ErrUnavailable if called anyway.
type Disabled struct{}

// NewDisabled creates the degraded-mode store.
func NewDisabled() Disabled { return Disabled{} }

func (Disabled) Available() bool { return false }

func (Disabled) CreateInterview(context.Context, CreateInterviewParams) (*models.Interview, error) {
	return nil, ErrUnavailable
}

func (Disabled) FindInterview(context.Context, int64) (*models.Interview, error) {
	return nil, ErrUnavailable
}

func (Disabled) UpdateInterview(context.Context, int64, UpdateInterviewParams) (*models.Interview, error) {
	return nil, ErrUnavailable
}

func (Disabled) CreateEvent(context.Context, CreateEventParams) (*models.EventLog, error) {
	return nil, ErrUnavailable
}

func (Disabled) ListRecentEvents(context.Context, int64, int) ([]models.EventLog, error) {
	return nil, ErrUnavailable
}
