package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/events"
)

// --- Mock implementations ---

type mockPredictor struct {
	err         error
	lastQuery   model.BookingQuery
	probability float64
	calls       int
}

func (m *mockPredictor) Predict(_ context.Context, q model.BookingQuery) (port.Classification, error) {
	m.calls++
	m.lastQuery = q
	if m.err != nil {
		return port.Classification{}, m.err
	}
	p, err := valueobject.NewProbability(m.probability)
	if err != nil {
		return port.Classification{}, err
	}
	return port.Classification{Probability: p, ModelVersion: "mock-1"}, nil
}

type mockPredictionRepository struct {
	saveErr error
	listErr error
	saved   map[uuid.UUID]*model.Prediction
	order   []*model.Prediction
	mu      sync.Mutex
}

func newMockRepo() *mockPredictionRepository {
	return &mockPredictionRepository{saved: make(map[uuid.UUID]*model.Prediction)}
}

func (m *mockPredictionRepository) Save(_ context.Context, p *model.Prediction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[p.ID()] = p
	m.order = append(m.order, p)
	return nil
}

func (m *mockPredictionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.saved[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPredictionNotFound, id)
	}
	return p, nil
}

func (m *mockPredictionRepository) ListRecent(_ context.Context, limit, offset int) ([]*model.Prediction, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*model.Prediction
	for i := len(m.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.order[i])
	}
	return out, nil
}

type mockEventPublisher struct {
	err       error
	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockRecorder struct {
	outcomes []string
	failures []string
}

func (m *mockRecorder) RecordPrediction(_ context.Context, _, outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}

func (m *mockRecorder) RecordFailure(_ context.Context, _, reason string) {
	m.failures = append(m.failures, reason)
}

func referenceRequest() dto.PredictBookingRequest {
	return dto.PredictBookingRequest{
		NumPassengers:      2,
		SalesChannel:       "Internet",
		TripType:           "RoundTrip",
		PurchaseLead:       15,
		LengthOfStay:       7,
		FlightHour:         17,
		FlightDay:          "Fri",
		Route:              "AKLKUL",
		BookingOrigin:      "India",
		WantsExtraBaggage:  true,
		WantsPreferredSeat: false,
		WantsInFlightMeals: true,
		FlightDuration:     8.0,
	}
}
