package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/pkg/events"
)

const (
	// EventTypePredictionCompleted is emitted when a booking prediction is decided.
	EventTypePredictionCompleted = "booking.prediction.completed"

	// AggregateTypePrediction names the aggregate that raises prediction events.
	AggregateTypePrediction = "prediction"
)

// PredictionCompletedData is the payload of PredictionCompleted.
type PredictionCompletedData struct {
	PredictedAt     time.Time `json:"predicted_at"`
	Profile         string    `json:"profile"`
	Outcome         string    `json:"outcome"`
	ModelVersion    string    `json:"model_version"`
	EncodingVersion string    `json:"encoding_version,omitempty"`
	Route           string    `json:"route"`
	BookingOrigin   string    `json:"booking_origin"`
	Probability     float64   `json:"probability"`
	Threshold       float64   `json:"threshold"`
	PredictionID    uuid.UUID `json:"prediction_id"`
}

// PredictionCompleted is published when a prediction has been classified
// against its threshold.
type PredictionCompleted struct {
	events.BaseEvent
	Data PredictionCompletedData
}

// NewPredictionCompleted builds the event with its JSON payload.
func NewPredictionCompleted(data PredictionCompletedData) PredictionCompleted {
	// Plain fields only; Marshal cannot fail here.
	payload, _ := json.Marshal(data)
	return PredictionCompleted{
		BaseEvent: events.NewBaseEvent(EventTypePredictionCompleted, data.PredictionID, AggregateTypePrediction, payload),
		Data:      data,
	}
}
