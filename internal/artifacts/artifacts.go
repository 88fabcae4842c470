// Package artifacts persists and loads the trained scoring bundle: the
// encoding tables, the canonical feature-name order and the model
// parameters. The bundle is written once by artifact-builder and loaded
// unchanged by the server; Load refuses anything that disagrees with the
// codec's compiled schema so a stale bundle can never silently truncate or
// reorder the feature vector at runtime.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/scoring"
)

// Bundle is the single serialized artifact the server depends on.
type Bundle struct {
	SchemaVersion string               `json:"schemaVersion"`
	FeatureNames  []string             `json:"featureNames"`
	Tables        codec.EncodingTables `json:"encodingTables"`
	Model         scoring.ModelSpec    `json:"model"`
	BuiltAt       time.Time            `json:"builtAt"`
}

// New assembles a bundle from freshly fitted tables and a model spec,
// stamping the codec's compiled schema.
func New(tables codec.EncodingTables, model scoring.ModelSpec) *Bundle {
	return &Bundle{
		SchemaVersion: codec.SchemaVersion,
		FeatureNames:  codec.FeatureNames(),
		Tables:        tables,
		Model:         model,
		BuiltAt:       time.Now().UTC(),
	}
}

// Save writes the bundle as JSON, creating parent directories as needed.
func Save(path string, b *Bundle) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// Load reads and validates the bundle. It fails when the file is absent or
// unreadable (ARTIFACT_LOAD_FAILED) and when the stored schema disagrees
// with the compiled codec schema (SCHEMA_MISMATCH). Both are fatal at
// startup.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewArtifactLoadFailedError(err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.NewArtifactLoadFailedError(err)
	}

	if err := validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func validate(b *Bundle) error {
	if b.SchemaVersion != codec.SchemaVersion {
		return errors.NewSchemaMismatchError(fmt.Sprintf(
			"bundle schema %q, codec schema %q", b.SchemaVersion, codec.SchemaVersion))
	}

	want := codec.FeatureNames()
	if len(b.FeatureNames) != len(want) {
		return errors.NewSchemaMismatchError(fmt.Sprintf(
			"bundle has %d features, codec has %d", len(b.FeatureNames), len(want)))
	}
	for i, name := range want {
		if b.FeatureNames[i] != name {
			return errors.NewSchemaMismatchError(fmt.Sprintf(
				"feature %d is %q in bundle, %q in codec", i, b.FeatureNames[i], name))
		}
	}

	if b.Tables.Gender == nil || b.Tables.Occupation == nil {
		return errors.NewSchemaMismatchError("bundle is missing encoding tables")
	}

	return nil
}
