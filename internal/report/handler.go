package report

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorai/backend/internal/models"
	"github.com/proctorai/backend/internal/store"
	"github.com/proctorai/backend/pkg/response"
)

const recentEventsLimit = 10

// EventInput is one caller-supplied recent event, used when the store holds
// none for the session.
type EventInput struct {
	EventType   string     `json:"eventType"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

// SendRequest is the body for POST /api/whatsapp/send. Every field is
// optional.
type SendRequest struct {
	CandidateName         string       `json:"candidateName"`
	CandidateEmail        string       `json:"candidateEmail"`
	CandidatePhone        string       `json:"candidatePhone"`
	CandidateLocation     string       `json:"candidateLocation"`
	IntegrityScore        int          `json:"integrityScore"`
	InterviewID           int64        `json:"interviewId"`
	Duration              int64        `json:"duration"`
	TotalEvents           int          `json:"totalEvents"`
	FocusLostCount        int          `json:"focusLostCount"`
	SuspiciousEventsCount int          `json:"suspiciousEventsCount"`
	RecentEvents          []EventInput `json:"recentEvents"`
	InterviewStartTime    string       `json:"interviewStartTime"`
	InterviewEndTime      string       `json:"interviewEndTime"`
}

// Handler handles the WhatsApp report endpoints.
type Handler struct {
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates a report handler.
func NewHandler(st store.Store, logger *zap.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Send handles POST /api/whatsapp/send: renders the report and returns it
// together with the deep-link URL. Delivery is the caller's business; this
// endpoint only constructs the link.
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	_ = c.ShouldBindJSON(&req)

	now := time.Now()

	// Stored events win over the caller-supplied list; the list is the
	// fallback when the fetch yields none.
	events := h.resolveEvents(c, req, now)

	stats := Stats{
		CandidateName:     req.CandidateName,
		CandidateEmail:    req.CandidateEmail,
		CandidatePhone:    req.CandidatePhone,
		CandidateLocation: req.CandidateLocation,
		IntegrityScore:    req.IntegrityScore,
		Duration:          req.Duration,
		TotalEvents:       req.TotalEvents,
		FocusLostCount:    req.FocusLostCount,
		SuspiciousCount:   req.SuspiciousEventsCount,
		StartTime:         req.InterviewStartTime,
		EndTime:           req.InterviewEndTime,
	}
	text := Build(stats, events, now)

	name := req.CandidateName
	if name == "" {
		name = defaultName
	}
	score := req.IntegrityScore
	if score == 0 {
		score = defaultScore
	}
	h.logger.Info("whatsapp report generated",
		zap.String("candidate", name),
		zap.Int("integrity_score", score),
		zap.Int("total_events", req.TotalEvents),
	)

	response.OK(c, "Detailed WhatsApp report generated successfully", gin.H{
		"whatsappUrl":    DeepLink(text),
		"message":        text,
		"phoneNumber":    DefaultPhoneNumber,
		"candidateName":  name,
		"integrityScore": score,
		"totalEvents":    req.TotalEvents,
	})
}

func (h *Handler) resolveEvents(c *gin.Context, req SendRequest, now time.Time) []models.EventLog {
	if req.InterviewID != 0 && h.store.Available() {
		stored, err := h.store.ListRecentEvents(c.Request.Context(), req.InterviewID, recentEventsLimit)
		if err != nil {
			h.logger.Warn("fetch recent events", zap.Int64("interview_id", req.InterviewID), zap.Error(err))
		} else if len(stored) > 0 {
			return stored
		}
	}
	events := make([]models.EventLog, 0, len(req.RecentEvents))
	for _, in := range req.RecentEvents {
		ev := models.EventLog{
			EventType:   in.EventType,
			Severity:    in.Severity,
			Description: in.Description,
		}
		if in.Timestamp != nil {
			ev.Timestamp = *in.Timestamp
		} else {
			ev.Timestamp = now
		}
		events = append(events, ev)
	}
	return events
}

// Test handles GET /api/whatsapp/test: a fixed message and its deep link.
func (h *Handler) Test(c *gin.Context) {
	text := "🎯 *ProctorAI Test Message*\n\nThis is a test message from ProctorAI system!\n\n✅ Backend is working correctly\n📅 Time: " +
		time.Now().Format(dateTimeLayout)

	response.OK(c, "WhatsApp test URL generated", gin.H{
		"whatsappUrl":  DeepLink(text),
		"message":      text,
		"instructions": "Click the URL to test WhatsApp integration",
	})
}
