//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/pkg/testutil"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("PREDICTOR_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for the predictor to be ready
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}

	os.Exit(m.Run())
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(baseURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestFormFlow(t *testing.T) {
	resp, err := http.PostForm(baseURL+"/predict", testutil.ReferenceBookingForm())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "Booking Probability: ")
	assert.True(t,
		strings.Contains(page, "This customer is likely to complete the booking.") ||
			strings.Contains(page, "This customer may not complete the booking."),
		"result panel carries one of the two outcome messages")
}

func TestAPIFlow(t *testing.T) {
	// Step 1: Score a booking
	predictReq := map[string]any{
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
	resp := postJSON(t, "/api/v1/predictions", predictReq)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID          string  `json:"id"`
		Probability float64 `json:"probability"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.GreaterOrEqual(t, created.Probability, 0.0)
	assert.LessOrEqual(t, created.Probability, 1.0)

	// Step 2: Read it back
	got, err := http.Get(baseURL + "/api/v1/predictions/" + created.ID)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	resp, err := http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}
