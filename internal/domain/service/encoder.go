package service

import (
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// PassthroughEncoder leaves categorical text unchanged. It serves models
// whose artifact embeds its own encoding step.
type PassthroughEncoder struct{}

func (PassthroughEncoder) Encode(record model.Record) (model.Record, error) { return record, nil }
func (PassthroughEncoder) Version() string                                  { return "" }
