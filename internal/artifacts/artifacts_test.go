// internal/artifacts/artifacts_test.go
package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/scoring"
)

func testBundle() *Bundle {
	return New(
		codec.EncodingTables{
			Gender:     map[string]int{"female": 0, "male": 1},
			Occupation: map[string]int{"entry-level": 0, "professional": 1},
		},
		scoring.ModelSpec{
			Type:      scoring.ModelTypeLinear,
			Intercept: 10,
			Weights:   map[string]float64{"avg_income": 0.001},
		},
	)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bundle.json")

	require.NoError(t, Save(path, testBundle()))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, codec.SchemaVersion, loaded.SchemaVersion)
	assert.Equal(t, codec.FeatureNames(), loaded.FeatureNames)
	assert.Equal(t, 1, loaded.Tables.Gender["male"])
	assert.Equal(t, scoring.ModelTypeLinear, loaded.Model.Type)
	assert.Equal(t, 0.001, loaded.Model.Weights["avg_income"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	se, ok := errors.AsScoringError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeArtifactLoadFailed, se.Code)
}

func TestLoad_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)

	se, ok := errors.AsScoringError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeArtifactLoadFailed, se.Code)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Bundle)
	}{
		{
			name:   "wrong version",
			mutate: func(b *Bundle) { b.SchemaVersion = "v0" },
		},
		{
			name:   "truncated feature list",
			mutate: func(b *Bundle) { b.FeatureNames = b.FeatureNames[:5] },
		},
		{
			name:   "reordered features",
			mutate: func(b *Bundle) { b.FeatureNames[0], b.FeatureNames[1] = b.FeatureNames[1], b.FeatureNames[0] },
		},
		{
			name:   "missing tables",
			mutate: func(b *Bundle) { b.Tables.Occupation = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBundle()
			tt.mutate(b)

			path := filepath.Join(t.TempDir(), "bundle.json")
			require.NoError(t, Save(path, b))

			_, err := Load(path)

			se, ok := errors.AsScoringError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeSchemaMismatch, se.Code)
		})
	}
}
