package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

// PredictBookingRequest is the input DTO for the PredictBooking use case.
type PredictBookingRequest struct {
	SalesChannel       string  `json:"sales_channel"`
	TripType           string  `json:"trip_type"`
	FlightDay          string  `json:"flight_day"`
	Route              string  `json:"route"`
	BookingOrigin      string  `json:"booking_origin"`
	FlightDuration     float64 `json:"flight_duration"`
	NumPassengers      int     `json:"num_passengers"`
	PurchaseLead       int     `json:"purchase_lead"`
	LengthOfStay       int     `json:"length_of_stay"`
	FlightHour         int     `json:"flight_hour"`
	WantsExtraBaggage  bool    `json:"wants_extra_baggage"`
	WantsPreferredSeat bool    `json:"wants_preferred_seat"`
	WantsInFlightMeals bool    `json:"wants_in_flight_meals"`
	// ClampToBounds pins numeric fields into their widget ranges instead of
	// rejecting them. Set by the HTML form handler.
	ClampToBounds bool `json:"-"`
}

// ToQuery parses the categorical fields and builds a BookingQuery. Errors
// wrap model.ErrInvalidQuery. Range checks happen in the domain.
func (r PredictBookingRequest) ToQuery() (model.BookingQuery, error) {
	var errs []error

	channel, err := valueobject.SalesChannelFromString(r.SalesChannel)
	if err != nil {
		errs = append(errs, err)
	}
	tripType, err := valueobject.TripTypeFromString(r.TripType)
	if err != nil {
		errs = append(errs, err)
	}
	day, err := valueobject.FlightDayFromString(r.FlightDay)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return model.BookingQuery{}, fmt.Errorf("%w: %w", model.ErrInvalidQuery, errors.Join(errs...))
	}

	q := model.BookingQuery{
		NumPassengers:      r.NumPassengers,
		SalesChannel:       channel,
		TripType:           tripType,
		PurchaseLead:       r.PurchaseLead,
		LengthOfStay:       r.LengthOfStay,
		FlightHour:         r.FlightHour,
		FlightDay:          day,
		Route:              r.Route,
		BookingOrigin:      r.BookingOrigin,
		WantsExtraBaggage:  r.WantsExtraBaggage,
		WantsPreferredSeat: r.WantsPreferredSeat,
		WantsInFlightMeals: r.WantsInFlightMeals,
		FlightDuration:     r.FlightDuration,
	}
	if r.ClampToBounds {
		q = q.Clamp()
	}
	return q, nil
}

// RequestFromQuery converts a domain query back to its DTO form.
func RequestFromQuery(q model.BookingQuery) PredictBookingRequest {
	return PredictBookingRequest{
		NumPassengers:      q.NumPassengers,
		SalesChannel:       q.SalesChannel.String(),
		TripType:           q.TripType.String(),
		PurchaseLead:       q.PurchaseLead,
		LengthOfStay:       q.LengthOfStay,
		FlightHour:         q.FlightHour,
		FlightDay:          q.FlightDay.String(),
		Route:              q.Route,
		BookingOrigin:      q.BookingOrigin,
		WantsExtraBaggage:  q.WantsExtraBaggage,
		WantsPreferredSeat: q.WantsPreferredSeat,
		WantsInFlightMeals: q.WantsInFlightMeals,
		FlightDuration:     q.FlightDuration,
	}
}

// PredictionResponse is the output DTO returned after a prediction.
type PredictionResponse struct {
	PredictedAt      time.Time             `json:"predicted_at"`
	Query            PredictBookingRequest `json:"query"`
	Profile          string                `json:"profile"`
	Outcome          string                `json:"outcome"`
	Message          string                `json:"message"`
	ProbabilityText  string                `json:"probability_text"`
	ModelVersion     string                `json:"model_version"`
	EncodingVersion  string                `json:"encoding_version,omitempty"`
	Probability      float64               `json:"probability"`
	Threshold        float64               `json:"threshold"`
	ID               uuid.UUID             `json:"id"`
	LikelyToComplete bool                  `json:"likely_to_complete"`
}

// FromModel converts a Prediction aggregate into a response DTO.
func FromModel(p *model.Prediction) PredictionResponse {
	return PredictionResponse{
		ID:               p.ID(),
		Query:            RequestFromQuery(p.Query()),
		Profile:          p.Profile().String(),
		Probability:      p.Probability().Value(),
		ProbabilityText:  p.Probability().String(),
		Threshold:        p.Threshold().Value(),
		Outcome:          p.Outcome().String(),
		LikelyToComplete: p.Outcome().IsPositive(),
		Message:          p.Outcome().Message(),
		ModelVersion:     p.ModelVersion(),
		EncodingVersion:  p.EncodingVersion(),
		PredictedAt:      p.PredictedAt(),
	}
}

// Headline is the rendered probability line, e.g. "Booking Probability: 0.62".
func (r PredictionResponse) Headline() string {
	return "Booking Probability: " + r.ProbabilityText
}

// GetPredictionRequest is the input DTO for retrieving a prediction.
type GetPredictionRequest struct {
	ID uuid.UUID `json:"id"`
}

// ListPredictionsRequest is the input DTO for listing recent predictions.
type ListPredictionsRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListPredictionsResponse is the output DTO for a page of predictions.
type ListPredictionsResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}
