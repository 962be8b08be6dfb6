package testutil

import (
	"net/url"

	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestPredictionID1 = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	TestPredictionID2 = uuid.MustParse("00000000-0000-0000-0000-000000000102")
)

// ReferenceBookingForm is the worked example from the product brief as the
// browser would submit it.
func ReferenceBookingForm() url.Values {
	return url.Values{
		"num_passengers":        {"2"},
		"sales_channel":         {"Internet"},
		"trip_type":             {"RoundTrip"},
		"purchase_lead":         {"15"},
		"length_of_stay":        {"7"},
		"flight_hour":           {"17"},
		"flight_day":            {"Fri"},
		"route":                 {"AKLKUL"},
		"booking_origin":        {"India"},
		"wants_extra_baggage":   {"Yes"},
		"wants_preferred_seat":  {"No"},
		"wants_in_flight_meals": {"Yes"},
		"flight_duration":       {"8.0"},
	}
}
