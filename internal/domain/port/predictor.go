package port

import (
	"context"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

// ProbabilityModel is a deserialized classifier artifact.
type ProbabilityModel interface {
	// PredictProba returns the class-1 probability for a single record.
	PredictProba(ctx context.Context, record model.Record) (float64, error)

	// Columns lists the record columns the model reads, in model order.
	Columns() []string

	// Version identifies the artifact.
	Version() string
}

// Scaler standardizes numeric features before prediction.
type Scaler interface {
	Transform(record model.Record) (model.Record, error)
}

// Encoder maps categorical text to whatever the model consumes.
type Encoder interface {
	Encode(record model.Record) (model.Record, error)

	// Version identifies the encoding. Empty for passthrough.
	Version() string
}

// Classification is the raw output of a Predictor before the decision.
type Classification struct {
	ModelVersion    string
	EncodingVersion string
	Probability     valueobject.Probability
}

// Predictor turns a booking query into a class-1 probability. Implementations
// are built once at startup and are safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, query model.BookingQuery) (Classification, error)
}
