package interviews

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proctorai/backend/internal/models"
	"github.com/proctorai/backend/internal/store"
	"github.com/proctorai/backend/pkg/response"
)

type mockStore struct {
	available          bool
	createInterviewFn  func(store.CreateInterviewParams) (*models.Interview, error)
	findInterviewFn    func(int64) (*models.Interview, error)
	updateInterviewFn  func(int64, store.UpdateInterviewParams) (*models.Interview, error)
	createEventFn      func(store.CreateEventParams) (*models.EventLog, error)
	listRecentEventsFn func(int64, int) ([]models.EventLog, error)
}

func (m *mockStore) Available() bool { return m.available }

func (m *mockStore) CreateInterview(_ context.Context, p store.CreateInterviewParams) (*models.Interview, error) {
	if m.createInterviewFn == nil {
		panic("unexpected call to CreateInterview")
	}
	return m.createInterviewFn(p)
}

func (m *mockStore) FindInterview(_ context.Context, id int64) (*models.Interview, error) {
	if m.findInterviewFn == nil {
		panic("unexpected call to FindInterview")
	}
	return m.findInterviewFn(id)
}

func (m *mockStore) UpdateInterview(_ context.Context, id int64, p store.UpdateInterviewParams) (*models.Interview, error) {
	if m.updateInterviewFn == nil {
		panic("unexpected call to UpdateInterview")
	}
	return m.updateInterviewFn(id, p)
}

func (m *mockStore) CreateEvent(_ context.Context, p store.CreateEventParams) (*models.EventLog, error) {
	if m.createEventFn == nil {
		panic("unexpected call to CreateEvent")
	}
	return m.createEventFn(p)
}

func (m *mockStore) ListRecentEvents(_ context.Context, interviewID int64, limit int) ([]models.EventLog, error) {
	if m.listRecentEventsFn == nil {
		panic("unexpected call to ListRecentEvents")
	}
	return m.listRecentEventsFn(interviewID, limit)
}

func newTestRouter(st store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(st, zap.NewNop())
	r := gin.New()
	r.POST("/api/interviews/start", h.Start)
	r.POST("/api/interviews/stop", h.Stop)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Body {
	t.Helper()
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStart_DegradedMode(t *testing.T) {
	// No store method set: any persistence attempt panics the test.
	r := newTestRouter(&mockStore{available: false})

	w := doJSON(t, r, http.MethodPost, "/api/interviews/start", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "Interview started (database not available)", body.Message)

	data := body.Data.(map[string]any)
	id := data["interviewId"].(float64)
	assert.GreaterOrEqual(t, id, float64(0))
	assert.Less(t, id, float64(1000))
	assert.Equal(t, "Demo Candidate", data["candidateName"])
}

func TestStart_StoreBacked(t *testing.T) {
	var created store.CreateInterviewParams
	st := &mockStore{
		available: true,
		createInterviewFn: func(p store.CreateInterviewParams) (*models.Interview, error) {
			created = p
			return &models.Interview{
				ID:            42,
				CandidateName: p.CandidateName,
				StartTime:     p.StartTime,
				Status:        models.StatusActive,
			}, nil
		},
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/start", gin.H{
		"candidateName": "Alice", "candidateEmail": "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "Interview started successfully", body.Message)

	data := body.Data.(map[string]any)
	assert.Equal(t, float64(42), data["interviewId"])
	assert.Equal(t, "Alice", data["candidateName"])
	assert.Equal(t, "alice@example.com", created.CandidateEmail)
	assert.Equal(t, int64(defaultInterviewerID), created.InterviewerID)
}

func TestStart_MissingFieldsTakeDefaults(t *testing.T) {
	st := &mockStore{
		available: true,
		createInterviewFn: func(p store.CreateInterviewParams) (*models.Interview, error) {
			assert.Equal(t, "Demo Candidate", p.CandidateName)
			assert.Equal(t, "demo@example.com", p.CandidateEmail)
			return &models.Interview{ID: 1, CandidateName: p.CandidateName, StartTime: p.StartTime}, nil
		},
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/start", gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody(t, w).Success)
}

func TestStop_NotFound(t *testing.T) {
	st := &mockStore{
		available:       true,
		findInterviewFn: func(int64) (*models.Interview, error) { return nil, store.ErrNotFound },
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{"interviewId": 999})

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Interview not found", body.Message)
}

func TestStop_DegradedModeEchoes(t *testing.T) {
	r := newTestRouter(&mockStore{available: false})

	w := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{
		"interviewId": 7, "duration": 300, "integrityScore": 88, "totalEvents": 4,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "Interview completed (database not available)", body.Message)

	data := body.Data.(map[string]any)
	assert.Equal(t, float64(7), data["interviewId"])
	assert.Equal(t, float64(300), data["duration"])
	assert.Equal(t, float64(88), data["integrityScore"])
	assert.Equal(t, float64(4), data["totalEvents"])
}

func TestStop_StoreBacked(t *testing.T) {
	existing := &models.Interview{ID: 7, Status: models.StatusActive, StartTime: time.Now()}
	var updated store.UpdateInterviewParams
	st := &mockStore{
		available:       true,
		findInterviewFn: func(id int64) (*models.Interview, error) { return existing, nil },
		updateInterviewFn: func(id int64, p store.UpdateInterviewParams) (*models.Interview, error) {
			updated = p
			return &models.Interview{
				ID: id, Duration: p.Duration, IntegrityScore: p.IntegrityScore,
				TotalEvents: p.TotalEvents, Status: p.Status,
			}, nil
		},
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{
		"interviewId": 7, "duration": 600, "integrityScore": 91,
		"totalEvents": 12, "focusLostCount": 2, "suspiciousEventsCount": 1,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "Interview completed successfully", body.Message)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, 91, updated.IntegrityScore)
	assert.Equal(t, 2, updated.FocusLostCount)
	assert.False(t, updated.EndTime.IsZero())
}

func TestStop_MissingScoreDefaultsTo100(t *testing.T) {
	st := &mockStore{
		available:       true,
		findInterviewFn: func(int64) (*models.Interview, error) { return &models.Interview{ID: 7}, nil },
		updateInterviewFn: func(id int64, p store.UpdateInterviewParams) (*models.Interview, error) {
			assert.Equal(t, 100, p.IntegrityScore)
			assert.Zero(t, p.TotalEvents)
			return &models.Interview{ID: id, IntegrityScore: p.IntegrityScore, Status: p.Status}, nil
		},
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{"interviewId": 7})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStop_NotIdempotentButRepeatable(t *testing.T) {
	// Stopping twice is allowed: the second call re-applies the update and
	// succeeds again.
	iv := &models.Interview{ID: 7, Status: models.StatusActive}
	updates := 0
	st := &mockStore{
		available:       true,
		findInterviewFn: func(int64) (*models.Interview, error) { return iv, nil },
		updateInterviewFn: func(id int64, p store.UpdateInterviewParams) (*models.Interview, error) {
			updates++
			iv.Status = p.Status
			iv.Duration = p.Duration
			return iv, nil
		},
	}
	r := newTestRouter(st)

	first := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{"interviewId": 7, "duration": 100})
	second := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{"interviewId": 7, "duration": 200})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 2, updates)
	assert.Equal(t, int64(200), iv.Duration)
}

func TestStop_StoreFailure(t *testing.T) {
	st := &mockStore{
		available:       true,
		findInterviewFn: func(int64) (*models.Interview, error) { return &models.Interview{ID: 7}, nil },
		updateInterviewFn: func(int64, store.UpdateInterviewParams) (*models.Interview, error) {
			return nil, assert.AnError
		},
	}
	r := newTestRouter(st)

	w := doJSON(t, r, http.MethodPost, "/api/interviews/stop", gin.H{"interviewId": 7})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to stop interview", body.Message)
	assert.NotEmpty(t, body.Error)
}
