package ml

import (
	"context"
	"log/slog"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// StubModel implements port.ProbabilityModel with a fixed probability.
// Selected with MODEL_STUB_PROBABILITY for local development and used in tests.
type StubModel struct {
	logger      *slog.Logger
	probability float64
}

// NewStubModel creates a stub that always returns probability.
func NewStubModel(probability float64, logger *slog.Logger) *StubModel {
	return &StubModel{probability: probability, logger: logger}
}

func (m *StubModel) PredictProba(_ context.Context, record model.Record) (float64, error) {
	m.logger.Debug("stub model prediction requested",
		slog.Int("column_count", record.Len()),
	)
	return m.probability, nil
}

func (m *StubModel) Columns() []string { return model.Columns() }
func (m *StubModel) Version() string   { return "stub" }
