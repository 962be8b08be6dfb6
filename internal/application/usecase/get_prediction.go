package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
)

// GetPrediction is the use case for retrieving a stored prediction.
type GetPrediction struct {
	repo port.PredictionRepository
}

// NewGetPrediction creates a new GetPrediction use case.
func NewGetPrediction(repo port.PredictionRepository) *GetPrediction {
	return &GetPrediction{repo: repo}
}

// Execute retrieves a prediction by ID.
func (uc *GetPrediction) Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionResponse, error) {
	if req.ID == uuid.Nil {
		return dto.PredictionResponse{}, fmt.Errorf("%w: prediction ID is required", model.ErrInvalidQuery)
	}

	prediction, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to find prediction: %w", err)
	}

	return dto.FromModel(prediction), nil
}
