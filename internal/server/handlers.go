// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/metrics"
	"credit-scoring-service/internal/history"
	"credit-scoring-service/pkg/api"
)

const requestIDKey = "requestID"

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleScore(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString(requestIDKey)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.respondError(c, errors.NewInvalidRequestError("failed to read request body"))
		return
	}

	if err := validateApplicantPayload(body); err != nil {
		s.respondError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	var rec api.ApplicantRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		s.respondError(c, errors.NewInvalidRequestError(err.Error()))
		return
	}

	if !api.KnownUserType(rec.UserType) {
		s.respondError(c, errors.NewUnknownProfileVariantError(rec.UserType))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.scoringTimeout)
	defer cancel()

	vec, _ := s.pipeline.Encode(&rec)

	if s.cache != nil {
		if cached := s.cache.Get(ctx, vec); cached != nil {
			s.respondResult(c, requestID, rec.UserType, cached, start, true)
			return
		}
	}

	result, err := s.pipeline.ScoreVector(ctx, vec)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if s.cache != nil {
		s.cache.Put(ctx, vec, result)
	}

	s.respondResult(c, requestID, rec.UserType, result, start, false)
}

func (s *Server) respondResult(c *gin.Context, requestID, userType string, result *api.ScoreResult, start time.Time, fromCache bool) {
	metrics.PredictionsTotal.WithLabelValues(string(result.RiskBand), userType).Inc()
	metrics.PredictionDuration.WithLabelValues(userType).Observe(time.Since(start).Seconds())

	if s.history != nil && !fromCache {
		s.history.RecordAsync(history.Entry{
			RequestID:   requestID,
			UserType:    userType,
			Score:       result.Score,
			RiskBand:    result.RiskBand,
			Explanation: result.Explanation,
		})
	}

	s.logger.Info("score served", map[string]interface{}{
		"requestId": requestID,
		"userType":  userType,
		"score":     result.Score,
		"riskBand":  result.RiskBand,
		"fromCache": fromCache,
	})

	c.JSON(http.StatusOK, result)
}

func (s *Server) respondError(c *gin.Context, err error) {
	se, ok := errors.AsScoringError(err)
	if !ok {
		se = errors.NewScoringUnavailableError(err)
	}

	metrics.PredictionFailures.WithLabelValues(string(se.Code)).Inc()

	s.logger.Warn("scoring request failed", map[string]interface{}{
		"requestId": c.GetString(requestIDKey),
		"code":      se.Code,
		"details":   se.Details,
	})

	c.JSON(errors.HTTPStatus(se.Code), api.ErrorBody{
		Error: api.ErrorDetail{
			Code:    string(se.Code),
			Message: se.Message,
		},
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.scoringTimeout)
	defer cancel()

	entries, err := s.history.Latest(ctx, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	type historyItem struct {
		RequestID string `json:"requestId"`
		UserType  string `json:"userType"`
		Score     int    `json:"score"`
		RiskBand  string `json:"riskBand"`
		CreatedAt string `json:"createdAt"`
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			RequestID: e.RequestID,
			UserType:  e.UserType,
			Score:     e.Score,
			RiskBand:  string(e.RiskBand),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": items})
}
