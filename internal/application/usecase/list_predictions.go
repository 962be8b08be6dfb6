package usecase

import (
	"context"
	"fmt"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListPredictions is the use case for paging through recent predictions.
type ListPredictions struct {
	repo port.PredictionRepository
}

// NewListPredictions creates a new ListPredictions use case.
func NewListPredictions(repo port.PredictionRepository) *ListPredictions {
	return &ListPredictions{repo: repo}
}

// Execute returns a page of predictions, newest first. The limit defaults
// to 20 and is capped at 100.
func (uc *ListPredictions) Execute(ctx context.Context, req dto.ListPredictionsRequest) (dto.ListPredictionsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset := max(req.Offset, 0)

	predictions, err := uc.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		return dto.ListPredictionsResponse{}, fmt.Errorf("failed to list predictions: %w", err)
	}

	out := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, dto.FromModel(p))
	}
	return dto.ListPredictionsResponse{Predictions: out, Limit: limit, Offset: offset}, nil
}
