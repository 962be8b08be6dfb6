package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

const selectColumns = `
	id, profile,
	num_passengers, sales_channel, trip_type, purchase_lead, length_of_stay,
	flight_hour, flight_day, route, booking_origin,
	wants_extra_baggage, wants_preferred_seat, wants_in_flight_meals, flight_duration,
	probability, threshold, outcome, model_version, encoding_version,
	predicted_at, created_at
`

// probabilityPlaces matches the NUMERIC(7,6) columns.
const probabilityPlaces = 6

// PredictionRepository implements port.PredictionRepository using PostgreSQL.
type PredictionRepository struct {
	pool *pgxpool.Pool
}

// NewPredictionRepository creates a new PostgreSQL-backed prediction repository.
func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{pool: pool}
}

// Save persists a decided prediction. Predictions are immutable once
// decided, so saving an existing ID is a no-op.
func (r *PredictionRepository) Save(ctx context.Context, p *model.Prediction) error {
	q := p.Query()

	query := `
		INSERT INTO booking_predictions (
			id, profile,
			num_passengers, sales_channel, trip_type, purchase_lead, length_of_stay,
			flight_hour, flight_day, route, booking_origin,
			wants_extra_baggage, wants_preferred_seat, wants_in_flight_meals, flight_duration,
			probability, threshold, outcome, model_version, encoding_version,
			predicted_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID(),
		p.Profile().String(),
		q.NumPassengers,
		q.SalesChannel.String(),
		q.TripType.String(),
		q.PurchaseLead,
		q.LengthOfStay,
		q.FlightHour,
		q.FlightDay.String(),
		q.Route,
		q.BookingOrigin,
		q.WantsExtraBaggage,
		q.WantsPreferredSeat,
		q.WantsInFlightMeals,
		q.FlightDuration,
		decimal.NewFromFloat(p.Probability().Value()).Round(probabilityPlaces),
		decimal.NewFromFloat(p.Threshold().Value()).Round(probabilityPlaces),
		p.Outcome().String(),
		p.ModelVersion(),
		p.EncodingVersion(),
		p.PredictedAt(),
		p.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// FindByID retrieves a prediction by its unique identifier.
func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	query := `SELECT ` + selectColumns + ` FROM booking_predictions WHERE id = $1`

	p, err := scanPrediction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrPredictionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListRecent returns the most recent predictions, newest first.
func (r *PredictionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*model.Prediction, error) {
	query := `SELECT ` + selectColumns + `
		FROM booking_predictions
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*model.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

func scanPrediction(row pgx.Row) (*model.Prediction, error) {
	var (
		id              uuid.UUID
		profileStr      string
		numPassengers   int
		salesChannelStr string
		tripTypeStr     string
		purchaseLead    int
		lengthOfStay    int
		flightHour      int
		flightDayStr    string
		route           string
		bookingOrigin   string
		extraBaggage    bool
		preferredSeat   bool
		inFlightMeals   bool
		flightDuration  float64
		probabilityDec  decimal.Decimal
		thresholdDec    decimal.Decimal
		outcomeStr      string
		modelVersion    string
		encodingVersion string
		predictedAt     time.Time
		createdAt       time.Time
	)

	err := row.Scan(
		&id, &profileStr,
		&numPassengers, &salesChannelStr, &tripTypeStr, &purchaseLead, &lengthOfStay,
		&flightHour, &flightDayStr, &route, &bookingOrigin,
		&extraBaggage, &preferredSeat, &inFlightMeals, &flightDuration,
		&probabilityDec, &thresholdDec, &outcomeStr, &modelVersion, &encodingVersion,
		&predictedAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	profile, err := valueobject.ProfileFromString(profileStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	salesChannel, err := valueobject.SalesChannelFromString(salesChannelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sales channel: %w", err)
	}
	tripType, err := valueobject.TripTypeFromString(tripTypeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trip type: %w", err)
	}
	flightDay, err := valueobject.FlightDayFromString(flightDayStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flight day: %w", err)
	}
	outcome, err := valueobject.OutcomeFromString(outcomeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse outcome: %w", err)
	}
	probability, err := valueobject.NewProbability(probabilityDec.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("failed to parse probability: %w", err)
	}
	threshold, err := valueobject.NewThreshold(thresholdDec.InexactFloat64())
	if err != nil {
		return nil, fmt.Errorf("failed to parse threshold: %w", err)
	}

	query := model.BookingQuery{
		NumPassengers:      numPassengers,
		SalesChannel:       salesChannel,
		TripType:           tripType,
		PurchaseLead:       purchaseLead,
		LengthOfStay:       lengthOfStay,
		FlightHour:         flightHour,
		FlightDay:          flightDay,
		Route:              route,
		BookingOrigin:      bookingOrigin,
		WantsExtraBaggage:  extraBaggage,
		WantsPreferredSeat: preferredSeat,
		WantsInFlightMeals: inFlightMeals,
		FlightDuration:     flightDuration,
	}

	return model.Reconstruct(
		id, query, profile, probability, threshold, outcome,
		modelVersion, encodingVersion, predictedAt, createdAt,
	), nil
}
