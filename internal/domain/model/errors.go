package model

import "errors"

var (
	// ErrArtifactUnavailable means a model or scaler artifact is absent
	// locally and could not be fetched.
	ErrArtifactUnavailable = errors.New("artifact unavailable")

	// ErrArtifactCorrupt means an artifact was present but could not be
	// deserialized into a usable predictor.
	ErrArtifactCorrupt = errors.New("artifact corrupt")

	// ErrSchemaMismatch means the record's columns or value types do not
	// match what the model expects.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnknownCategory means a categorical value has no code in the
	// encoding table and the column declares no default.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrScaling means the scaler rejected the record.
	ErrScaling = errors.New("scaling failed")

	ErrInvalidQuery       = errors.New("invalid booking query")
	ErrPredictionNotFound = errors.New("prediction not found")
)
