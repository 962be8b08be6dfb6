package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/service"
)

// Model artifact kinds.
const (
	KindRandomForest       = "random_forest"
	KindLogisticRegression = "logistic_regression"
)

// modelArtifact is the on-disk JSON form of a trained classifier.
type modelArtifact struct {
	Encoding     *service.EncodingTable `json:"encoding,omitempty"`
	Kind         string                 `json:"kind"`
	Version      string                 `json:"version"`
	Columns      []string               `json:"columns"`
	Trees        []treeArtifact         `json:"trees,omitempty"`
	Coefficients []float64              `json:"coefficients,omitempty"`
	Intercept    float64                `json:"intercept,omitempty"`
}

type treeArtifact struct {
	Nodes []treeNode `json:"nodes"`
}

// treeNode is either a split (Leaf false) sending x[Feature] <= Threshold to
// Left and everything else to Right, or a leaf carrying the class-1
// probability in Value.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// LoadModel reads and validates a model artifact from path. Any decode or
// validation failure wraps model.ErrArtifactCorrupt.
func LoadModel(path string) (port.ProbabilityModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read model %s: %v", model.ErrArtifactUnavailable, path, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes a model artifact.
func ParseModel(data []byte) (port.ProbabilityModel, error) {
	var a modelArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrArtifactCorrupt, err)
	}
	if err := a.validateColumns(); err != nil {
		return nil, err
	}

	var enc *service.TableEncoder
	if a.Encoding != nil {
		var err error
		if enc, err = service.NewTableEncoder(*a.Encoding, a.Columns); err != nil {
			return nil, fmt.Errorf("%w: embedded encoding: %v", model.ErrArtifactCorrupt, err)
		}
	}
	base := baseModel{version: a.Version, columns: a.Columns, encoder: enc}

	switch a.Kind {
	case KindRandomForest:
		return newForestModel(base, a.Trees)
	case KindLogisticRegression:
		return newLogisticModel(base, a.Coefficients, a.Intercept)
	default:
		return nil, fmt.Errorf("%w: unsupported model kind %q", model.ErrArtifactCorrupt, a.Kind)
	}
}

func (a modelArtifact) validateColumns() error {
	if a.Version == "" {
		return fmt.Errorf("%w: model has no version", model.ErrArtifactCorrupt)
	}
	if len(a.Columns) == 0 {
		return fmt.Errorf("%w: model declares no columns", model.ErrArtifactCorrupt)
	}
	seen := make(map[string]bool, len(a.Columns))
	for _, c := range a.Columns {
		if seen[c] {
			return fmt.Errorf("%w: duplicate column %q", model.ErrArtifactCorrupt, c)
		}
		seen[c] = true
	}
	return nil
}

// baseModel carries what every model kind shares: its columns and the
// optional pipeline encoding applied before feature selection.
type baseModel struct {
	encoder *service.TableEncoder
	version string
	columns []string
}

func (b baseModel) Version() string   { return b.version }
func (b baseModel) Columns() []string { return slices.Clone(b.columns) }

// EncodingVersion is the version of the embedded encoding, if any.
func (b baseModel) EncodingVersion() string {
	if b.encoder == nil {
		return ""
	}
	return b.encoder.Version()
}

// features encodes text through the embedded pipeline, if any, and selects
// the model's columns in order.
func (b baseModel) features(record model.Record) ([]float64, error) {
	if b.encoder != nil {
		var err error
		if record, err = b.encoder.Encode(record); err != nil {
			return nil, err
		}
	}
	return record.Select(b.columns)
}
