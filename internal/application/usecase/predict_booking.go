package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

const tracerName = "github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"

// MetricsRecorder receives prediction outcomes. Satisfied by
// observability.PredictionMetrics.
type MetricsRecorder interface {
	RecordPrediction(ctx context.Context, profile, outcome string, elapsed time.Duration)
	RecordFailure(ctx context.Context, profile, reason string)
}

type noopRecorder struct{}

func (noopRecorder) RecordPrediction(context.Context, string, string, time.Duration) {}
func (noopRecorder) RecordFailure(context.Context, string, string)                   {}

// PredictBooking is the use case for predicting whether a booking completes.
type PredictBooking struct {
	predictor port.Predictor
	repo      port.PredictionRepository
	publisher port.EventPublisher
	metrics   MetricsRecorder
	tracer    trace.Tracer
	logger    *slog.Logger
	profile   valueobject.Profile
	threshold valueobject.Threshold
}

// NewPredictBooking creates a new PredictBooking use case. metrics may be nil.
func NewPredictBooking(
	predictor port.Predictor,
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	profile valueobject.Profile,
	threshold valueobject.Threshold,
	metrics MetricsRecorder,
	logger *slog.Logger,
) *PredictBooking {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &PredictBooking{
		predictor: predictor,
		repo:      repo,
		publisher: publisher,
		profile:   profile,
		threshold: threshold,
		metrics:   metrics,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Threshold returns the decision threshold in effect.
func (uc *PredictBooking) Threshold() valueobject.Threshold { return uc.threshold }

// Profile returns the active profile.
func (uc *PredictBooking) Profile() valueobject.Profile { return uc.profile }

// Execute builds the query, runs the predictor, decides against the
// threshold, persists the prediction and publishes its events. A publish
// failure is logged and does not fail the request.
func (uc *PredictBooking) Execute(ctx context.Context, req dto.PredictBookingRequest) (dto.PredictionResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "PredictBooking.Execute",
		trace.WithAttributes(attribute.String("booking.profile", uc.profile.String())))
	defer span.End()
	start := time.Now()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		uc.metrics.RecordFailure(ctx, uc.profile.String(), FailureReason(err))
		return dto.PredictionResponse{}, err
	}

	span.SetAttributes(
		attribute.String("booking.prediction_id", resp.ID.String()),
		attribute.String("booking.outcome", resp.Outcome),
		attribute.Float64("booking.probability", resp.Probability),
	)
	uc.metrics.RecordPrediction(ctx, uc.profile.String(), resp.Outcome, time.Since(start))
	return resp, nil
}

func (uc *PredictBooking) execute(ctx context.Context, req dto.PredictBookingRequest) (dto.PredictionResponse, error) {
	// 1. Build and validate the query.
	query, err := req.ToQuery()
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	prediction, err := model.NewPrediction(query, uc.profile)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to create prediction: %w", err)
	}

	// 2. Run the model.
	classification, err := uc.predictor.Predict(ctx, query)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	// 3. Decide against the threshold.
	if err := prediction.Decide(
		classification.Probability,
		uc.threshold,
		classification.ModelVersion,
		classification.EncodingVersion,
	); err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to decide prediction: %w", err)
	}

	// 4. Persist.
	if err := uc.repo.Save(ctx, prediction); err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to save prediction: %w", err)
	}

	// 5. Publish domain events.
	if evts := prediction.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish prediction events",
				"prediction_id", prediction.ID().String(), "error", err)
		}
	}

	uc.logger.InfoContext(ctx, "booking prediction",
		"prediction_id", prediction.ID().String(),
		"profile", uc.profile.String(),
		"probability", prediction.Probability().Value(),
		"threshold", uc.threshold.Value(),
		"outcome", prediction.Outcome().String(),
	)

	return dto.FromModel(prediction), nil
}

// FailureReason maps an error to a low-cardinality metric label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, model.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, model.ErrScaling):
		return "scaling"
	case errors.Is(err, model.ErrSchemaMismatch):
		return "schema_mismatch"
	default:
		return "internal"
	}
}
