package ml

import (
	"context"
	"fmt"
	"math"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// LogisticModel is a binary logistic regression classifier.
type LogisticModel struct {
	baseModel
	coefficients []float64
	intercept    float64
}

func newLogisticModel(base baseModel, coefficients []float64, intercept float64) (*LogisticModel, error) {
	if len(coefficients) != len(base.columns) {
		return nil, fmt.Errorf("%w: %d coefficients for %d columns",
			model.ErrArtifactCorrupt, len(coefficients), len(base.columns))
	}
	return &LogisticModel{baseModel: base, coefficients: coefficients, intercept: intercept}, nil
}

func (m *LogisticModel) PredictProba(_ context.Context, record model.Record) (float64, error) {
	x, err := m.features(record)
	if err != nil {
		return 0, err
	}
	z := m.intercept
	for i, c := range m.coefficients {
		z += c * x[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}
