package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/event"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/events"
)

// Prediction is the aggregate root for a single booking completion prediction.
type Prediction struct {
	predictedAt     time.Time
	createdAt       time.Time
	profile         valueobject.Profile
	outcome         valueobject.Outcome
	modelVersion    string
	encodingVersion string
	query           BookingQuery
	probability     valueobject.Probability
	threshold       valueobject.Threshold
	events          events.EventCollector
	id              uuid.UUID
}

// NewPrediction creates an undecided prediction for a validated query.
// Call Decide() once the model has produced a probability.
func NewPrediction(query BookingQuery, profile valueobject.Profile) (*Prediction, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if profile.IsZero() {
		return nil, fmt.Errorf("profile is required")
	}

	return &Prediction{
		id:        uuid.New(),
		query:     query,
		profile:   profile,
		createdAt: time.Now().UTC(),
	}, nil
}

// Decide records the model's probability and classifies it against the
// threshold. A prediction can only be decided once.
func (p *Prediction) Decide(
	probability valueobject.Probability,
	threshold valueobject.Threshold,
	modelVersion, encodingVersion string,
) error {
	if p.IsDecided() {
		return fmt.Errorf("prediction %s already decided", p.id)
	}

	p.probability = probability
	p.threshold = threshold
	p.outcome = valueobject.Decide(probability, threshold)
	p.modelVersion = modelVersion
	p.encodingVersion = encodingVersion
	p.predictedAt = time.Now().UTC()

	p.events.Record(event.NewPredictionCompleted(event.PredictionCompletedData{
		PredictionID:    p.id,
		Profile:         p.profile.String(),
		Probability:     probability.Value(),
		Threshold:       threshold.Value(),
		Outcome:         p.outcome.String(),
		ModelVersion:    modelVersion,
		EncodingVersion: encodingVersion,
		Route:           p.query.Route,
		BookingOrigin:   p.query.BookingOrigin,
		PredictedAt:     p.predictedAt,
	}))

	return nil
}

// Reconstruct rebuilds a Prediction from persisted data (no validation, no events).
func Reconstruct(
	id uuid.UUID,
	query BookingQuery,
	profile valueobject.Profile,
	probability valueobject.Probability,
	threshold valueobject.Threshold,
	outcome valueobject.Outcome,
	modelVersion, encodingVersion string,
	predictedAt, createdAt time.Time,
) *Prediction {
	return &Prediction{
		id:              id,
		query:           query,
		profile:         profile,
		probability:     probability,
		threshold:       threshold,
		outcome:         outcome,
		modelVersion:    modelVersion,
		encodingVersion: encodingVersion,
		predictedAt:     predictedAt,
		createdAt:       createdAt,
	}
}

// --- Accessors ---

func (p *Prediction) ID() uuid.UUID                        { return p.id }
func (p *Prediction) Query() BookingQuery                  { return p.query }
func (p *Prediction) Profile() valueobject.Profile         { return p.profile }
func (p *Prediction) Probability() valueobject.Probability { return p.probability }
func (p *Prediction) Threshold() valueobject.Threshold     { return p.threshold }
func (p *Prediction) Outcome() valueobject.Outcome         { return p.outcome }
func (p *Prediction) ModelVersion() string                 { return p.modelVersion }
func (p *Prediction) EncodingVersion() string              { return p.encodingVersion }
func (p *Prediction) PredictedAt() time.Time               { return p.predictedAt }
func (p *Prediction) CreatedAt() time.Time                 { return p.createdAt }
func (p *Prediction) IsDecided() bool                      { return !p.outcome.IsZero() }

// DomainEvents returns all accumulated domain events and clears them.
func (p *Prediction) DomainEvents() []events.DomainEvent {
	return p.events.Drain()
}
