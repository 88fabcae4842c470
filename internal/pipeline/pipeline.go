// Package pipeline orchestrates one scoring request end to end: validate the
// profile variant, encode, predict, clamp, explain. All dependencies are
// injected once at startup and read-only afterwards, so requests run fully
// in parallel with no coordination.
package pipeline

import (
	"context"
	"math"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/metrics"
	"credit-scoring-service/internal/explain"
	"credit-scoring-service/internal/scoring"
	"credit-scoring-service/pkg/api"
)

type Pipeline struct {
	tables  codec.EncodingTables
	scorer  scoring.Scorer
	explain explain.Config
	logger  logger.Logger
}

func New(tables codec.EncodingTables, scorer scoring.Scorer, explainCfg explain.Config, log logger.Logger) *Pipeline {
	return &Pipeline{
		tables:  tables,
		scorer:  scorer,
		explain: explainCfg,
		logger:  log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Score runs the full pipeline for one applicant record. Returns a client
// error for unknown profile variants and a server error when the scoring
// function cannot be invoked; data-quality problems never fail the request.
func (p *Pipeline) Score(ctx context.Context, rec *api.ApplicantRecord) (*api.ScoreResult, error) {
	if !api.KnownUserType(rec.UserType) {
		return nil, errors.NewUnknownProfileVariantError(rec.UserType)
	}

	vec, defaulted := p.Encode(rec)

	result, err := p.ScoreVector(ctx, vec)
	if err != nil {
		return nil, err
	}

	p.logger.Info("score computed", map[string]interface{}{
		"userType":        rec.UserType,
		"score":           result.Score,
		"riskBand":        result.RiskBand,
		"defaultedFields": len(defaulted),
	})

	return result, nil
}

// ScoreVector runs the predict-clamp-explain tail for an already encoded
// vector. Exposed so the serving layer can cache by vector without encoding
// twice.
func (p *Pipeline) ScoreVector(ctx context.Context, vec codec.FeatureVector) (*api.ScoreResult, error) {
	raw, err := p.scorer.Predict(ctx, vec)
	if err != nil {
		return nil, errors.NewScoringUnavailableError(err)
	}

	score := Clamp(raw)
	band, explanation, factors := explain.Explain(score, vec, p.explain)

	return &api.ScoreResult{
		Score:       score,
		RiskBand:    band,
		Explanation: explanation,
		TopFactors:  factors,
	}, nil
}

// Encode runs the feature codec and records defaulted fields for
// data-quality monitoring.
func (p *Pipeline) Encode(rec *api.ApplicantRecord) (codec.FeatureVector, []string) {
	vec, defaulted := codec.Encode(rec, p.tables)
	for _, field := range defaulted {
		metrics.CoercionDefaults.WithLabelValues(field).Inc()
	}
	if len(defaulted) > 0 {
		p.logger.Debug("input fields defaulted", map[string]interface{}{
			"fields": defaulted,
		})
	}
	return vec, defaulted
}

// Clamp bounds a raw model output into [0, 100] and rounds it to an integer.
// Mandatory: the scoring function's output is not guaranteed to be bounded.
func Clamp(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
