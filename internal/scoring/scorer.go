// Package scoring defines the contract the pipeline consumes the regression
// model through. The model itself is opaque: the pipeline only calls Predict
// and clamps whatever comes back.
package scoring

import (
	"context"
	"fmt"

	"credit-scoring-service/internal/codec"
)

// Scorer is the black-box scoring function. Implementations receive the full
// canonical feature vector and return an unbounded raw score; the pipeline
// owns clamping into [0, 100].
type Scorer interface {
	Predict(ctx context.Context, vec codec.FeatureVector) (float64, error)
}

// ModelSpec is the serialized form of a scorer inside the artifact bundle.
type ModelSpec struct {
	Type      string             `json:"type"`
	Intercept float64            `json:"intercept"`
	Weights   map[string]float64 `json:"weights"`
}

// ModelTypeLinear is the only model type this build knows how to load.
const ModelTypeLinear = "linear"

// FromSpec constructs a Scorer from an artifact model spec. An unknown model
// type is a startup failure, not a runtime degradation.
func FromSpec(spec ModelSpec) (Scorer, error) {
	switch spec.Type {
	case ModelTypeLinear:
		return NewLinearScorer(spec.Intercept, spec.Weights)
	default:
		return nil, fmt.Errorf("unsupported model type %q", spec.Type)
	}
}
