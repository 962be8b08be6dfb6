package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// Compile-time assertion that PredictionServiceHandler implements PredictionServiceServer.
var _ PredictionServiceServer = (*PredictionServiceHandler)(nil)

// PredictionServiceHandler implements the gRPC PredictionServiceServer interface.
type PredictionServiceHandler struct {
	UnimplementedPredictionServiceServer
	predictBooking *usecase.PredictBooking
	getPrediction  *usecase.GetPrediction
	logger         *slog.Logger
}

// NewPredictionServiceHandler creates a new gRPC handler.
func NewPredictionServiceHandler(
	predictBooking *usecase.PredictBooking,
	getPrediction *usecase.GetPrediction,
	logger *slog.Logger,
) *PredictionServiceHandler {
	return &PredictionServiceHandler{
		predictBooking: predictBooking,
		getPrediction:  getPrediction,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// PredictRequest represents the proto PredictRequest message.
type PredictRequest struct {
	SalesChannel       string  `json:"sales_channel"`
	TripType           string  `json:"trip_type"`
	FlightDay          string  `json:"flight_day"`
	Route              string  `json:"route"`
	BookingOrigin      string  `json:"booking_origin"`
	FlightDuration     float64 `json:"flight_duration"`
	NumPassengers      int32   `json:"num_passengers"`
	PurchaseLead       int32   `json:"purchase_lead"`
	LengthOfStay       int32   `json:"length_of_stay"`
	FlightHour         int32   `json:"flight_hour"`
	WantsExtraBaggage  bool    `json:"wants_extra_baggage"`
	WantsPreferredSeat bool    `json:"wants_preferred_seat"`
	WantsInFlightMeals bool    `json:"wants_in_flight_meals"`
}

// PredictionMsg represents the proto Prediction message.
type PredictionMsg struct {
	ID               string  `json:"id"`
	Profile          string  `json:"profile"`
	Outcome          string  `json:"outcome"`
	Message          string  `json:"message"`
	Headline         string  `json:"headline"`
	ModelVersion     string  `json:"model_version"`
	EncodingVersion  string  `json:"encoding_version"`
	PredictedAt      string  `json:"predicted_at"`
	Probability      float64 `json:"probability"`
	Threshold        float64 `json:"threshold"`
	LikelyToComplete bool    `json:"likely_to_complete"`
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	Prediction *PredictionMsg `json:"prediction"`
}

// GetPredictionRequest represents the proto GetPredictionRequest message.
type GetPredictionRequest struct {
	ID string `json:"id"`
}

// GetPredictionResponse represents the proto GetPredictionResponse message.
type GetPredictionResponse struct {
	Prediction *PredictionMsg `json:"prediction"`
}

// Predict scores a booking. Out of range values are rejected.
func (h *PredictionServiceHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predictBooking.Execute(ctx, dto.PredictBookingRequest{
		NumPassengers:      int(req.NumPassengers),
		SalesChannel:       req.SalesChannel,
		TripType:           req.TripType,
		PurchaseLead:       int(req.PurchaseLead),
		LengthOfStay:       int(req.LengthOfStay),
		FlightHour:         int(req.FlightHour),
		FlightDay:          req.FlightDay,
		Route:              req.Route,
		BookingOrigin:      req.BookingOrigin,
		WantsExtraBaggage:  req.WantsExtraBaggage,
		WantsPreferredSeat: req.WantsPreferredSeat,
		WantsInFlightMeals: req.WantsInFlightMeals,
		FlightDuration:     req.FlightDuration,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to predict booking", err)
	}

	return &PredictResponse{Prediction: toPredictionMsg(result)}, nil
}

// GetPrediction returns a stored prediction.
func (h *PredictionServiceHandler) GetPrediction(ctx context.Context, req *GetPredictionRequest) (*GetPredictionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getPrediction.Execute(ctx, dto.GetPredictionRequest{ID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to get prediction", err)
	}

	return &GetPredictionResponse{Prediction: toPredictionMsg(result)}, nil
}

func (h *PredictionServiceHandler) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidQuery), errors.Is(err, model.ErrUnknownCategory):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrPredictionNotFound):
		return status.Error(codes.NotFound, "prediction not found")
	case errors.Is(err, model.ErrScaling), errors.Is(err, model.ErrSchemaMismatch):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		h.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

func toPredictionMsg(r dto.PredictionResponse) *PredictionMsg {
	return &PredictionMsg{
		ID:               r.ID.String(),
		Profile:          r.Profile,
		Probability:      r.Probability,
		Threshold:        r.Threshold,
		Outcome:          r.Outcome,
		LikelyToComplete: r.LikelyToComplete,
		Message:          r.Message,
		Headline:         r.Headline(),
		ModelVersion:     r.ModelVersion,
		EncodingVersion:  r.EncodingVersion,
		PredictedAt:      r.PredictedAt.Format(time.RFC3339Nano),
	}
}
