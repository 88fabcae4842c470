// internal/server/handlers_test.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/explain"
	"credit-scoring-service/internal/history"
	"credit-scoring-service/internal/pipeline"
	"credit-scoring-service/internal/scorecache"
	"credit-scoring-service/pkg/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Test Helper Functions
// ==========================

type stubScorer struct {
	raw float64
	err error
}

func (s *stubScorer) Predict(_ context.Context, _ codec.FeatureVector) (float64, error) {
	return s.raw, s.err
}

func testTables() codec.EncodingTables {
	return codec.EncodingTables{
		Gender:     map[string]int{"female": 0, "male": 1},
		Occupation: map[string]int{"entry-level": 0, "professional": 1},
	}
}

func newTestServer(t *testing.T, scorer *stubScorer, opts Options) *gin.Engine {
	pl := pipeline.New(testTables(), scorer, explain.DefaultConfig(), logger.NewTestLogger(t))
	return New(pl, opts, logger.NewTestLogger(t)).Router()
}

const workingPayload = `{
	"userType": "working",
	"age": 35,
	"gender": "male",
	"educationLevel": "bachelors",
	"occupation": "software engineer",
	"monthlyIncome": [50000, 52000, 48000, 51000, 49000, 55000],
	"rentPayment": "on-time",
	"utility1Payment": "on-time",
	"utility2Payment": "on-time"
}`

func postScore(router *gin.Engine, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==========================
// Score Endpoint Tests
// ==========================

func TestHandleScore_Success(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 87.2}, Options{})

	w := postScore(router, workingPayload)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var result api.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 87, result.Score)
	assert.Equal(t, api.RiskBandLow, result.RiskBand)
	assert.Equal(t, "You have an excellent credit profile.", result.Explanation)
	require.NotEmpty(t, result.TopFactors)
	assert.Equal(t, "Payment History", result.TopFactors[0].Name)
}

func TestHandleScore_MessyInputStillScores(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 55}, Options{})

	payload := `{
		"userType": "student",
		"age": "not a number",
		"monthlyIncome": ["oops", 2000],
		"rentPayment": "whenever",
		"gpa": "8.1"
	}`

	w := postScore(router, payload)

	require.Equal(t, http.StatusOK, w.Code)

	var result api.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, api.RiskBandMedium, result.RiskBand)
}

func TestHandleScore_UnknownProfileVariant(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 50}, Options{})

	w := postScore(router, `{"userType": "retired"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body api.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNKNOWN_PROFILE_VARIANT", body.Error.Code)
}

func TestHandleScore_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing userType", `{"age": 30}`},
		{"userType not a string", `{"userType": 7}`},
		{"not an object", `[1, 2, 3]`},
		{"not JSON", `hello`},
		{"monthlyIncome not an array", `{"userType": "working", "monthlyIncome": 5000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestServer(t, &stubScorer{raw: 50}, Options{})

			w := postScore(router, tt.payload)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var body api.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "INVALID_REQUEST", body.Error.Code)
		})
	}
}

func TestHandleScore_ScoringUnavailable(t *testing.T) {
	router := newTestServer(t, &stubScorer{err: fmt.Errorf("model process gone")}, Options{})

	w := postScore(router, workingPayload)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body api.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SCORING_UNAVAILABLE", body.Error.Code)
}

func TestHandleScore_CacheServesRepeatRequests(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := scorecache.New(client, time.Minute, logger.NewTestLogger(t))

	router := newTestServer(t, &stubScorer{raw: 87.2}, Options{Cache: cache})

	first := postScore(router, workingPayload)
	require.Equal(t, http.StatusOK, first.Code)

	second := postScore(router, workingPayload)
	require.Equal(t, http.StatusOK, second.Code)

	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, len(mr.Keys()))
}

// ==========================
// Other Endpoint Tests
// ==========================

func TestHandleHealth(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 50}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 50}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"request_id", "user_type", "score", "risk_band", "explanation", "created_at"}).
		AddRow("req-1", "working", 87, "Low", "You have an excellent credit profile.", now)

	mock.ExpectQuery("SELECT request_id").WithArgs(5).WillReturnRows(rows)

	store := history.NewStore(db, logger.NewTestLogger(t))
	router := newTestServer(t, &stubScorer{raw: 50}, Options{History: store})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		History []struct {
			RequestID string `json:"requestId"`
			Score     int    `json:"score"`
			RiskBand  string `json:"riskBand"`
			CreatedAt string `json:"createdAt"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.History, 1)
	assert.Equal(t, "req-1", body.History[0].RequestID)
	assert.Equal(t, "Low", body.History[0].RiskBand)
	assert.Equal(t, "2026-08-30T12:00:00Z", body.History[0].CreatedAt)
}

func TestHistoryRouteAbsentWhenDisabled(t *testing.T) {
	router := newTestServer(t, &stubScorer{raw: 50}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==========================
// Payload Validation Tests
// ==========================

func TestValidateApplicantPayload(t *testing.T) {
	assert.NoError(t, validateApplicantPayload([]byte(workingPayload)))
	assert.Error(t, validateApplicantPayload([]byte(`{}`)))
	assert.Error(t, validateApplicantPayload([]byte(`"just a string"`)))
}
