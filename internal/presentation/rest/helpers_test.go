package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/service"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/memory"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/messaging"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/ml"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/observability"
)

type failingPredictor struct {
	err error
}

func (f failingPredictor) Predict(context.Context, model.BookingQuery) (port.Classification, error) {
	return port.Classification{}, f.err
}

type testServer struct {
	mux  *http.ServeMux
	repo *memory.PredictionRepository
}

// newTestServer wires the handlers around a stub model with the given
// probability and threshold.
func newTestServer(t *testing.T, probability float64, threshold valueobject.Threshold) *testServer {
	t.Helper()
	logger := observability.DiscardLogger()
	predictor, err := ml.NewPredictor(ml.NewStubModel(probability, logger), service.PassthroughEncoder{}, nil, logger)
	require.NoError(t, err)
	return newTestServerWith(predictor, threshold)
}

func newTestServerWith(predictor port.Predictor, threshold valueobject.Threshold) *testServer {
	logger := observability.DiscardLogger()
	repo := memory.NewPredictionRepository(memory.DefaultCapacity)
	predict := usecase.NewPredictBooking(
		predictor, repo, messaging.NewLogPublisher(logger),
		valueobject.ProfilePipeline, threshold, nil, logger,
	)

	mux := http.NewServeMux()
	NewFormHandler(predict, logger).RegisterRoutes(mux)
	NewPredictionHandler(predict, usecase.NewGetPrediction(repo), usecase.NewListPredictions(repo), logger).RegisterRoutes(mux)
	NewHealthHandler(logger).RegisterRoutes(mux)
	return &testServer{mux: mux, repo: repo}
}
