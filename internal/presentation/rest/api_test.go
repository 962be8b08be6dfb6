package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

func referenceJSON(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()
	m := map[string]any{
		"num_passengers":        2,
		"sales_channel":         "Internet",
		"trip_type":             "RoundTrip",
		"purchase_lead":         15,
		"length_of_stay":        7,
		"flight_hour":           17,
		"flight_day":            "Fri",
		"route":                 "AKLKUL",
		"booking_origin":        "India",
		"wants_extra_baggage":   true,
		"wants_preferred_seat":  false,
		"wants_in_flight_meals": true,
		"flight_duration":       8.0,
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func do(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPredictionHandler_PredictAndGet(t *testing.T) {
	srv := newTestServer(t, 0.62, valueobject.DefaultThreshold)

	rec := do(srv.mux, http.MethodPost, "/api/v1/predictions", referenceJSON(t, nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.PredictionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "0.62", created.ProbabilityText)
	assert.True(t, created.LikelyToComplete)
	assert.Equal(t, "stub", created.ModelVersion)
	assert.Equal(t, "pipeline", created.Profile)

	rec = do(srv.mux, http.MethodGet, "/api/v1/predictions/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched dto.PredictionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "AKLKUL", fetched.Query.Route)

	rec = do(srv.mux, http.MethodGet, "/api/v1/predictions?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.ListPredictionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Predictions, 1)
	assert.Equal(t, 5, list.Limit)
}

func TestPredictionHandler_PredictRejectsOutOfRange(t *testing.T) {
	srv := newTestServer(t, 0.62, valueobject.DefaultThreshold)

	rec := do(srv.mux, http.MethodPost, "/api/v1/predictions", referenceJSON(t, func(m map[string]any) {
		m["num_passengers"] = 11
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "num_passengers must be between 1 and 10")
}

func TestPredictionHandler_PredictErrors(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantBody string
		wantCode int
	}{
		{name: "unknown category", err: model.ErrUnknownCategory, wantCode: http.StatusUnprocessableEntity, wantBody: "unknown category"},
		{name: "schema mismatch", err: model.ErrSchemaMismatch, wantCode: http.StatusUnprocessableEntity, wantBody: "schema mismatch"},
		{name: "scaling", err: model.ErrScaling, wantCode: http.StatusUnprocessableEntity, wantBody: "Error during scaling"},
		{name: "internal", err: errors.New("disk on fire"), wantCode: http.StatusInternalServerError, wantBody: "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServerWith(failingPredictor{err: tt.err}, valueobject.DefaultThreshold)

			rec := do(srv.mux, http.MethodPost, "/api/v1/predictions", referenceJSON(t, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "disk on fire")
		})
	}
}

func TestPredictionHandler_BadRequests(t *testing.T) {
	srv := newTestServer(t, 0.62, valueobject.DefaultThreshold)

	tests := []struct {
		name     string
		method   string
		path     string
		body     []byte
		wantCode int
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/v1/predictions", body: []byte(`{"num_passengers":`), wantCode: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/v1/predictions", body: []byte(`{"seat_class":"first"}`), wantCode: http.StatusBadRequest},
		{name: "invalid id", method: http.MethodGet, path: "/api/v1/predictions/not-a-uuid", wantCode: http.StatusBadRequest},
		{name: "missing prediction", method: http.MethodGet, path: "/api/v1/predictions/" + uuid.NewString(), wantCode: http.StatusNotFound},
		{name: "bad limit", method: http.MethodGet, path: "/api/v1/predictions?limit=ten", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv.mux, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
