// Package events implements the proctoring event log endpoints.
package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/proctorai/backend/internal/models"
	"github.com/proctorai/backend/internal/store"
	"github.com/proctorai/backend/pkg/response"
)

const (
	defaultInterviewID = 1
	defaultEventType   = "focus_lost"
	defaultDescription = "Event occurred"
	defaultConfidence  = 0.8
)

// LogRequest is the body for POST /api/events/log. Every field is optional;
// omissions are masked by defaults, never rejected.
type LogRequest struct {
	InterviewID int64          `json:"interviewId"`
	EventType   string         `json:"eventType"`
	Severity    string         `json:"severity"`
	Description string         `json:"description"`
	Timestamp   *time.Time     `json:"timestamp"`
	Confidence  float64        `json:"confidence"`
	Metadata    map[string]any `json:"metadata"`
}

// Handler handles event logging HTTP endpoints.
type Handler struct {
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates an event logging handler.
func NewHandler(st store.Store, logger *zap.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Log handles POST /api/events/log. Without a store the raw payload is
// echoed back unpersisted.
func (h *Handler) Log(c *gin.Context) {
	var req LogRequest
	_ = c.ShouldBindBodyWith(&req, binding.JSON)

	if !h.store.Available() {
		// Echo the raw payload, not the typed struct: absent fields stay
		// absent instead of appearing as zero values.
		var raw map[string]any
		_ = c.ShouldBindBodyWith(&raw, binding.JSON)
		response.OK(c, "Event logged (database not available)", gin.H{"eventLog": raw})
		return
	}

	p := store.CreateEventParams{
		InterviewID: req.InterviewID,
		EventType:   req.EventType,
		Severity:    req.Severity,
		Description: req.Description,
		Confidence:  req.Confidence,
		Metadata:    req.Metadata,
	}
	if p.InterviewID == 0 {
		p.InterviewID = defaultInterviewID
	}
	if p.EventType == "" {
		p.EventType = defaultEventType
	}
	if p.Severity == "" {
		p.Severity = models.SeverityMedium
	}
	if p.Description == "" {
		p.Description = defaultDescription
	}
	if req.Timestamp != nil {
		p.Timestamp = *req.Timestamp
	} else {
		p.Timestamp = time.Now()
	}
	if p.Confidence == 0 {
		p.Confidence = defaultConfidence
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}

	ev, err := h.store.CreateEvent(c.Request.Context(), p)
	if err != nil {
		h.logger.Error("log event", zap.Int64("interview_id", p.InterviewID), zap.Error(err))
		response.Internal(c, "Failed to log event", err)
		return
	}

	response.OK(c, "Event logged successfully", gin.H{
		"eventId":   ev.ID,
		"eventType": ev.EventType,
		"timestamp": ev.Timestamp,
	})
}

// LogLegacy handles POST /api/logs, the old path kept for existing clients.
// It accepts any payload and echoes it back without persisting.
func (h *Handler) LogLegacy(c *gin.Context) {
	var payload map[string]any
	_ = c.ShouldBindJSON(&payload)
	h.logger.Info("event logged", zap.Any("payload", payload))
	response.OK(c, "Event logged successfully", gin.H{"eventLog": payload})
}
