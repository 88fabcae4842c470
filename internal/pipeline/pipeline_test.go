// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/explain"
	"credit-scoring-service/pkg/api"
)

// ==========================
// Test Helper Functions
// ==========================

// stubScorer returns a fixed raw score or a fixed error.
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

func newTestPipeline(scorer *stubScorer) *Pipeline {
	return New(testTables(), scorer, explain.DefaultConfig(), logger.NewNoOpLogger())
}

func workingRecord() *api.ApplicantRecord {
	return &api.ApplicantRecord{
		UserType:       "working",
		Age:            json.RawMessage("35"),
		Gender:         "male",
		EducationLevel: "bachelors",
		Occupation:     "software engineer",
		MonthlyIncome: []json.RawMessage{
			json.RawMessage("50000"), json.RawMessage("52000"), json.RawMessage("48000"),
			json.RawMessage("51000"), json.RawMessage("49000"), json.RawMessage("55000"),
		},
		RentPayment: "on-time",
		Utility1Pay: "on-time",
		Utility2Pay: "on-time",
	}
}

// ==========================
// Clamp Tests
// ==========================

func TestClamp(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{-50, 0},
		{-0.4, 0},
		{0, 0},
		{49.4, 49},
		{49.5, 50},
		{87.2, 87},
		{100, 100},
		{100.6, 100},
		{400, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.raw), "raw %.1f", tt.raw)
	}
}

// ==========================
// Score Tests
// ==========================

func TestScore_EndToEnd(t *testing.T) {
	p := newTestPipeline(&stubScorer{raw: 87.2})

	result, err := p.Score(context.Background(), workingRecord())

	require.NoError(t, err)
	assert.Equal(t, 87, result.Score)
	assert.Equal(t, api.RiskBandLow, result.RiskBand)
	assert.Equal(t, "You have an excellent credit profile.", result.Explanation)
	require.NotEmpty(t, result.TopFactors)
	assert.Equal(t, "Payment History", result.TopFactors[0].Name)
}

func TestScore_OutOfRangeRawIsClamped(t *testing.T) {
	tests := []struct {
		raw      float64
		want     int
		wantBand api.RiskBand
	}{
		{400, 100, api.RiskBandLow},
		{-50, 0, api.RiskBandHigh},
	}

	for _, tt := range tests {
		p := newTestPipeline(&stubScorer{raw: tt.raw})

		result, err := p.Score(context.Background(), workingRecord())

		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Score)
		assert.Equal(t, tt.wantBand, result.RiskBand)
	}
}

func TestScore_UnknownProfileVariant(t *testing.T) {
	p := newTestPipeline(&stubScorer{raw: 50})

	for _, userType := range []string{"retired", "", "WORKING"} {
		rec := workingRecord()
		rec.UserType = userType

		_, err := p.Score(context.Background(), rec)

		se, ok := errors.AsScoringError(err)
		require.True(t, ok, "userType %q", userType)
		assert.Equal(t, errors.ErrCodeUnknownProfileVariant, se.Code)
	}
}

func TestScore_ScorerFailureIsServerError(t *testing.T) {
	p := newTestPipeline(&stubScorer{err: fmt.Errorf("model process gone")})

	_, err := p.Score(context.Background(), workingRecord())

	se, ok := errors.AsScoringError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeScoringUnavailable, se.Code)
	assert.True(t, se.Retryable)
}

func TestScore_MalformedInputsStillScore(t *testing.T) {
	p := newTestPipeline(&stubScorer{raw: 55})

	rec := &api.ApplicantRecord{
		UserType:      "student",
		Age:           json.RawMessage(`"unknown"`),
		MonthlyIncome: []json.RawMessage{json.RawMessage(`"oops"`)},
		RentPayment:   "whenever",
		GPA:           json.RawMessage(`{"bad":1}`),
	}

	result, err := p.Score(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, 55, result.Score)
	assert.Equal(t, api.RiskBandMedium, result.RiskBand)
}

func TestEncode_ReportsDefaultedFields(t *testing.T) {
	p := newTestPipeline(&stubScorer{raw: 50})

	rec := workingRecord()
	rec.Age = nil
	rec.RentPayment = "whenever"

	vec, defaulted := p.Encode(rec)

	require.Len(t, vec, codec.NumFeatures)
	assert.Contains(t, defaulted, "age")
	assert.Contains(t, defaulted, "rentPayment")
}
