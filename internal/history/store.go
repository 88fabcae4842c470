// Package history records scoring outcomes in Postgres. Writes are best
// effort: a failed insert is logged and counted, never surfaced to the
// client, because the score itself was already computed successfully.
package history

import (
	"context"
	"database/sql"
	"time"

	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/metrics"
	"credit-scoring-service/pkg/api"
)

// Entry is one recorded scoring outcome.
type Entry struct {
	RequestID   string
	UserType    string
	Score       int
	RiskBand    api.RiskBand
	Explanation string
	CreatedAt   time.Time
}

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "history"}),
	}
}

const insertQuery = `
	INSERT INTO score_history (request_id, user_type, score, risk_band, explanation, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Record inserts one scoring outcome.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, insertQuery,
		e.RequestID, e.UserType, e.Score, string(e.RiskBand), e.Explanation, e.CreatedAt)
	if err != nil {
		return errors.NewHistoryWriteFailedError(err)
	}
	return nil
}

// RecordAsync records an outcome without blocking the response path. Errors
// are observed via logs and metrics only.
func (s *Store) RecordAsync(e Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.Record(ctx, e); err != nil {
			metrics.HistoryWriteFailures.Inc()
			s.logger.Warn("failed to record score history", map[string]interface{}{
				"requestId": e.RequestID,
				"error":     err.Error(),
			})
		}
	}()
}

const latestQuery = `
	SELECT request_id, user_type, score, risk_band, explanation, created_at
	FROM score_history
	ORDER BY created_at DESC
	LIMIT $1`

// Latest returns the most recent scoring outcomes, newest first.
func (s *Store) Latest(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, latestQuery, limit)
	if err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var band string
		if err := rows.Scan(&e.RequestID, &e.UserType, &e.Score, &band, &e.Explanation, &e.CreatedAt); err != nil {
			return nil, errors.NewHistoryQueryFailedError(err)
		}
		e.RiskBand = api.RiskBand(band)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}

	return entries, nil
}
