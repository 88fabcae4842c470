// internal/scoring/linear.go
package scoring

import (
	"context"
	"fmt"

	"credit-scoring-service/internal/codec"
)

// LinearScorer scores a feature vector as intercept + w·x. Weights are keyed
// by feature name in the artifact bundle and resolved to vector slots once,
// at construction.
type LinearScorer struct {
	intercept float64
	weights   []float64
}

func NewLinearScorer(intercept float64, weights map[string]float64) (*LinearScorer, error) {
	resolved := make([]float64, codec.NumFeatures)
	names := codec.FeatureNames()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	for name, w := range weights {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("weight for unknown feature %q", name)
		}
		resolved[i] = w
	}

	return &LinearScorer{intercept: intercept, weights: resolved}, nil
}

func (s *LinearScorer) Predict(_ context.Context, vec codec.FeatureVector) (float64, error) {
	if len(vec) != codec.NumFeatures {
		return 0, fmt.Errorf("feature vector has %d slots, want %d", len(vec), codec.NumFeatures)
	}

	score := s.intercept
	for i, w := range s.weights {
		score += w * vec[i]
	}
	return score, nil
}
