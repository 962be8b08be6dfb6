package ml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

// Predictor composes an encoder, an optional scaler and a model into the
// per-request prediction path. It holds no mutable state after
// construction and is safe for concurrent use.
type Predictor struct {
	model   port.ProbabilityModel
	encoder port.Encoder
	scaler  port.Scaler
	logger  *slog.Logger
}

// NewPredictor checks that the model only reads columns a booking record
// provides. scaler may be nil.
func NewPredictor(m port.ProbabilityModel, encoder port.Encoder, scaler port.Scaler, logger *slog.Logger) (*Predictor, error) {
	if m == nil {
		return nil, fmt.Errorf("model is required")
	}
	if encoder == nil {
		return nil, fmt.Errorf("encoder is required")
	}
	known := model.Columns()
	for _, c := range m.Columns() {
		if !slices.Contains(known, c) {
			return nil, fmt.Errorf("%w: model %s reads unknown column %q", model.ErrSchemaMismatch, m.Version(), c)
		}
	}
	return &Predictor{model: m, encoder: encoder, scaler: scaler, logger: logger}, nil
}

// Predict assembles the record for query, encodes it, scales it when a
// scaler is configured and returns the model's class-1 probability.
func (p *Predictor) Predict(ctx context.Context, query model.BookingQuery) (port.Classification, error) {
	record, err := p.encoder.Encode(query.Record())
	if err != nil {
		return port.Classification{}, fmt.Errorf("failed to encode record: %w", err)
	}

	if p.scaler != nil {
		if record, err = p.scaler.Transform(record); err != nil {
			if !errors.Is(err, model.ErrScaling) {
				err = fmt.Errorf("%w: %v", model.ErrScaling, err)
			}
			return port.Classification{}, fmt.Errorf("failed to scale record: %w", err)
		}
	}

	raw, err := p.model.PredictProba(ctx, record)
	if err != nil {
		return port.Classification{}, fmt.Errorf("failed to predict: %w", err)
	}
	probability, err := valueobject.NewProbability(raw)
	if err != nil {
		return port.Classification{}, fmt.Errorf("model %s returned an invalid probability: %w", p.model.Version(), err)
	}

	p.logger.DebugContext(ctx, "prediction computed",
		slog.String("model_version", p.model.Version()),
		slog.Float64("probability", raw),
	)

	return port.Classification{
		Probability:     probability,
		ModelVersion:    p.model.Version(),
		EncodingVersion: p.EncodingVersion(),
	}, nil
}

// Ready reports whether a model is loaded. Backs the readiness endpoint.
func (p *Predictor) Ready(context.Context) error {
	if p == nil || p.model == nil || p.encoder == nil {
		return errors.New("predictor not loaded")
	}
	if p.model.Version() == "" {
		return errors.New("loaded model has no version")
	}
	return nil
}

// ModelVersion reports the loaded model's version.
func (p *Predictor) ModelVersion() string { return p.model.Version() }

// EncodingVersion reports the encoder's version, falling back to the
// encoding embedded in a pipeline model.
func (p *Predictor) EncodingVersion() string {
	if v := p.encoder.Version(); v != "" {
		return v
	}
	if ev, ok := p.model.(interface{ EncodingVersion() string }); ok {
		return ev.EncodingVersion()
	}
	return ""
}

// UsesScaler reports whether a scaler runs before the model.
func (p *Predictor) UsesScaler() bool { return p.scaler != nil }
