package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/events"
)

// PredictionRepository defines the persistence port for predictions.
type PredictionRepository interface {
	// Save persists a decided prediction.
	Save(ctx context.Context, prediction *model.Prediction) error

	// FindByID retrieves a prediction by its unique identifier. Returns an
	// error wrapping model.ErrPredictionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)

	// ListRecent returns the most recent predictions, newest first.
	ListRecent(ctx context.Context, limit, offset int) ([]*model.Prediction, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
