// Package interviews implements the interview session lifecycle endpoints.
package interviews

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorai/backend/internal/models"
	"github.com/proctorai/backend/internal/store"
	"github.com/proctorai/backend/pkg/response"
)

const (
	defaultCandidateName  = "Demo Candidate"
	defaultCandidateEmail = "demo@example.com"
	defaultInterviewerID  = 1

	// Score written when a stop request carries none. The report formatter
	// uses its own, lower default; the two are intentionally independent.
	defaultIntegrityScore = 100
)

// StartRequest is the body for POST /api/interviews/start. Every field is
// optional; missing fields take demo defaults.
type StartRequest struct {
	CandidateName     string `json:"candidateName"`
	CandidateEmail    string `json:"candidateEmail"`
	CandidatePhone    string `json:"candidatePhone"`
	CandidateLocation string `json:"candidateLocation"`
}

// StopRequest is the body for POST /api/interviews/stop. Counters default to
// zero, the integrity score to 100.
type StopRequest struct {
	InterviewID           int64 `json:"interviewId"`
	Duration              int64 `json:"duration"`
	IntegrityScore        int   `json:"integrityScore"`
	TotalEvents           int   `json:"totalEvents"`
	FocusLostCount        int   `json:"focusLostCount"`
	SuspiciousEventsCount int   `json:"suspiciousEventsCount"`
}

// Handler handles interview lifecycle HTTP endpoints.
type Handler struct {
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates an interview lifecycle handler.
func NewHandler(st store.Store, logger *zap.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// Start handles POST /api/interviews/start. Without a store it returns a
// synthetic session with a random identifier and persists nothing.
func (h *Handler) Start(c *gin.Context) {
	var req StartRequest
	_ = c.ShouldBindJSON(&req) // all fields optional; defaults mask omissions

	if req.CandidateName == "" {
		req.CandidateName = defaultCandidateName
	}
	if req.CandidateEmail == "" {
		req.CandidateEmail = defaultCandidateEmail
	}

	if !h.store.Available() {
		response.OK(c, "Interview started (database not available)", gin.H{
			"interviewId":   rand.Intn(1000),
			"candidateName": req.CandidateName,
			"startTime":     time.Now(),
		})
		return
	}

	iv, err := h.store.CreateInterview(c.Request.Context(), store.CreateInterviewParams{
		CandidateName:     req.CandidateName,
		CandidateEmail:    req.CandidateEmail,
		CandidatePhone:    req.CandidatePhone,
		CandidateLocation: req.CandidateLocation,
		InterviewerID:     defaultInterviewerID,
		StartTime:         time.Now(),
	})
	if err != nil {
		h.logger.Error("start interview", zap.Error(err))
		response.Internal(c, "Failed to start interview", err)
		return
	}

	response.OK(c, "Interview started successfully", gin.H{
		"interviewId":   iv.ID,
		"candidateName": iv.CandidateName,
		"startTime":     iv.StartTime,
	})
}

// Stop handles POST /api/interviews/stop. Without a store it echoes the
// supplied values. Stopping an already completed session is not rejected:
// the update is re-applied and succeeds again.
func (h *Handler) Stop(c *gin.Context) {
	var req StopRequest
	_ = c.ShouldBindJSON(&req)

	if !h.store.Available() {
		response.OK(c, "Interview completed (database not available)", gin.H{
			"interviewId":    req.InterviewID,
			"duration":       req.Duration,
			"integrityScore": req.IntegrityScore,
			"totalEvents":    req.TotalEvents,
		})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.FindInterview(ctx, req.InterviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c, "Interview not found")
			return
		}
		h.logger.Error("find interview", zap.Int64("interview_id", req.InterviewID), zap.Error(err))
		response.Internal(c, "Failed to stop interview", err)
		return
	}

	score := req.IntegrityScore
	if score == 0 {
		score = defaultIntegrityScore
	}
	iv, err := h.store.UpdateInterview(ctx, req.InterviewID, store.UpdateInterviewParams{
		EndTime:               time.Now(),
		Duration:              req.Duration,
		IntegrityScore:        score,
		TotalEvents:           req.TotalEvents,
		FocusLostCount:        req.FocusLostCount,
		SuspiciousEventsCount: req.SuspiciousEventsCount,
		Status:                models.StatusCompleted,
	})
	if err != nil {
		h.logger.Error("stop interview", zap.Int64("interview_id", req.InterviewID), zap.Error(err))
		response.Internal(c, "Failed to stop interview", err)
		return
	}

	response.OK(c, "Interview completed successfully", gin.H{
		"interviewId":    iv.ID,
		"duration":       iv.Duration,
		"integrityScore": iv.IntegrityScore,
		"totalEvents":    iv.TotalEvents,
	})
}
